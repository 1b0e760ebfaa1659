// ABOUTME: Pure geometry for the card board: spawn placement, rotation jitter, and zone hit-testing.
// ABOUTME: All functions are stateless; randomness comes from a caller-supplied source for deterministic tests.
package geom

import "math/rand"

// Position is a 2D coordinate in board cells, origin at the board's top-left.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a width/height pair in board cells.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Min  Position `json:"min"`
	Size Size     `json:"size"`
}

// SpawnPosition returns a fresh spawn coordinate for a new card: centered
// horizontally, anchored near the bottom of the viewport (paper emerging from
// a print slot), with independent uniform jitter in [-jitter, +jitter] added
// to each axis. Each call re-randomizes.
func SpawnPosition(r *rand.Rand, viewport Size, card Size, jitter int) Position {
	x := (viewport.Width - card.Width) / 2
	y := viewport.Height - card.Height - viewport.Height/8
	if y < 0 {
		y = 0
	}
	if jitter > 0 {
		x += r.Intn(2*jitter+1) - jitter
		y += r.Intn(2*jitter+1) - jitter
	}
	return Clamp(Position{X: x, Y: y}, viewport, card)
}

// SpawnRotation returns a decorative rotation angle in degrees, uniform in
// [-max, +max]. Fixed once per card at creation.
func SpawnRotation(r *rand.Rand, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return (r.Float64()*2 - 1) * max
}

// WithinZone reports whether p falls inside zone expanded by tolerance cells
// in every direction. Used to detect drags hovering over the archive target
// without requiring exact pixel alignment.
func WithinZone(p Position, zone Rect, tolerance int) bool {
	return p.X >= zone.Min.X-tolerance &&
		p.X < zone.Min.X+zone.Size.Width+tolerance &&
		p.Y >= zone.Min.Y-tolerance &&
		p.Y < zone.Min.Y+zone.Size.Height+tolerance
}

// Clamp constrains a card origin so the card stays at least partially inside
// the viewport. A fully off-screen card cannot be grabbed again.
func Clamp(p Position, viewport Size, card Size) Position {
	maxX := viewport.Width - card.Width
	maxY := viewport.Height - card.Height
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	if p.X < 0 {
		p.X = 0
	}
	if p.X > maxX {
		p.X = maxX
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y > maxY {
		p.Y = maxY
	}
	return p
}

// Contains reports whether p falls inside the rectangle with no tolerance.
func Contains(p Position, zone Rect) bool {
	return WithinZone(p, zone, 0)
}

// Sub returns the component-wise difference a - b.
func Sub(a, b Position) Position {
	return Position{X: a.X - b.X, Y: a.Y - b.Y}
}

// Add returns the component-wise sum a + b.
func Add(a, b Position) Position {
	return Position{X: a.X + b.X, Y: a.Y + b.Y}
}
