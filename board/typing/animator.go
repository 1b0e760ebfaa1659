// ABOUTME: Animator is the per-card typewriter state machine revealing text one rune per tick.
// ABOUTME: Long text is animated only up to a truncation limit; the full text renders once Done.
package typing

import "unicode/utf8"

// State is the animator's lifecycle phase.
type State int

const (
	// Typing means more runes remain to reveal.
	Typing State = iota
	// Done means the full animated target has been revealed.
	Done
)

// Ellipsis is appended to the animated target when the source text exceeds
// the truncation limit. The stored card text is never truncated.
const Ellipsis = "…"

// Animator reveals a target string one rune per tick. The caller drives the
// cadence (evenly spaced sub-50ms ticks); the animator guarantees runes are
// revealed monotonically, none skipped, and that ticks past Done do nothing.
type Animator struct {
	target    []rune
	revealed  int
	state     State
	truncated bool
}

// NewAnimator creates an animator for the given text. When the rune count
// exceeds maxRunes (and maxRunes > 0), only the first maxRunes runes plus an
// ellipsis are animated.
func NewAnimator(text string, maxRunes int) *Animator {
	target := []rune(text)
	truncated := maxRunes > 0 && utf8.RuneCountInString(text) > maxRunes
	if truncated {
		target = append(target[:maxRunes:maxRunes], []rune(Ellipsis)...)
	}
	a := &Animator{target: target, truncated: truncated}
	if len(a.target) == 0 {
		a.state = Done
	}
	return a
}

// Tick reveals the next rune. It returns the committed rune and true while
// typing; once the target is exhausted it transitions to Done and every
// later call returns false. The returned rune is the hook point for
// character-reveal side effects.
func (a *Animator) Tick() (rune, bool) {
	if a.state == Done {
		return 0, false
	}
	r := a.target[a.revealed]
	a.revealed++
	if a.revealed == len(a.target) {
		a.state = Done
	}
	return r, true
}

// Revealed returns the currently visible prefix of the animated target.
func (a *Animator) Revealed() string {
	return string(a.target[:a.revealed])
}

// State returns the current lifecycle phase.
func (a *Animator) State() State {
	return a.state
}

// Truncated reports whether the animated target is a shortened form of the
// source text. Checklist-aware cards switch to the full-text render path
// once Done, so truncation only affects the animation.
func (a *Animator) Truncated() bool {
	return a.truncated
}

// Remaining returns how many ticks are left before Done.
func (a *Animator) Remaining() int {
	return len(a.target) - a.revealed
}
