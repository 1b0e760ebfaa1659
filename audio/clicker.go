// ABOUTME: Fire-and-forget sound hooks: a typewriter click per revealed character, a chime per card.
// ABOUTME: Speaker init failure switches to silent mode; audio can never affect card state.
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Clicker plays the board's two side-effect sounds. All methods are safe to
// call in any state; when the speaker is unavailable they do nothing.
type Clicker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	silent bool
	ready  bool
}

// NewClicker creates a Clicker. Call Init before playing.
func NewClicker() *Clicker {
	return &Clicker{mixer: &beep.Mixer{}}
}

// Init opens the speaker. Failure is logged and puts the clicker in silent
// mode rather than returning an error; a board without sound still works.
func (c *Clicker) Init(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready || c.silent {
		return
	}
	if !enabled {
		c.silent = true
		return
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		log.Printf("component=audio action=speaker_init_failed err=%v", err)
		c.silent = true
		return
	}
	speaker.Play(c.mixer)
	c.ready = true
}

// KeyClick plays a short percussive tick, fired on each revealed character.
func (c *Clicker) KeyClick() {
	c.play(newTone(1800, 12*time.Millisecond))
}

// Chime plays a two-note ding, fired when a card commit finishes printing.
func (c *Clicker) Chime() {
	c.play(beep.Seq(
		newTone(880, 70*time.Millisecond),
		newTone(1320, 110*time.Millisecond),
	))
}

// Close stops all playing sounds.
func (c *Clicker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		speaker.Lock()
		c.mixer.Clear()
		speaker.Unlock()
	}
}

func (c *Clicker) play(s beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}
