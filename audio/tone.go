// ABOUTME: Minimal sine tone streamer with a linear decay envelope for the board's sound effects.
// ABOUTME: Implements beep.Streamer directly; no samples are allocated up front.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is a decaying sine oscillator of fixed length.
type tone struct {
	freq     float64
	phase    float64
	duration int
	position int
}

// newTone creates a streamer producing freq hertz for the given duration,
// fading linearly to silence so clicks do not pop.
func newTone(freq float64, d time.Duration) beep.Streamer {
	return &tone{
		freq:     freq,
		duration: sampleRate.N(d),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, false
		}
		envelope := 1.0 - float64(t.position)/float64(t.duration)
		val := math.Sin(2*math.Pi*t.phase) * envelope * 0.4
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
