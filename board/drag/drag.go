// ABOUTME: Controller turns a pointer event stream into exclusive single-card drag sessions.
// ABOUTME: Live-drag positions are transient view state; the store is written only on End.
package drag

import (
	"github.com/oklog/ulid/v2"

	"github.com/2389-research/cardpress/board/core"
	"github.com/2389-research/cardpress/board/geom"
)

// State is the controller's phase. Exactly one card may be tracked at a
// time; a second Begin while Dragging is ignored.
type State int

const (
	// Idle means no drag session is active.
	Idle State = iota
	// Dragging means one card is actively tracked.
	Dragging
)

// Controller manages at most one drag session against the live card store.
// Begin records the grab offset so every later position is relative to the
// original grab point, not cumulative per move.
type Controller struct {
	store     *core.CardStore
	zone      geom.Rect
	tolerance int

	state  State
	cardID ulid.ULID
	offset geom.Position
}

// NewController creates an idle controller dropping into the given archive
// zone. The zone may be updated later when the viewport resizes.
func NewController(store *core.CardStore, zone geom.Rect, tolerance int) *Controller {
	return &Controller{
		store:     store,
		zone:      zone,
		tolerance: tolerance,
	}
}

// SetZone replaces the archive drop zone, typically after a viewport resize.
func (c *Controller) SetZone(zone geom.Rect) {
	c.zone = zone
}

// State returns the controller's current phase.
func (c *Controller) State() State {
	return c.state
}

// DraggingID returns the tracked card's id while Dragging.
func (c *Controller) DraggingID() (ulid.ULID, bool) {
	if c.state != Dragging {
		return ulid.ULID{}, false
	}
	return c.cardID, true
}

// Begin starts a drag session for the card under the pointer. Valid only
// from Idle; a Begin while another card is tracked is ignored. The card is
// brought to front so the actively dragged card is always topmost.
func (c *Controller) Begin(id ulid.ULID, pointer geom.Position) bool {
	if c.state != Idle {
		return false
	}
	card, ok := c.store.Get(id)
	if !ok {
		return false
	}
	c.cardID = id
	c.offset = geom.Sub(pointer, card.Pos)
	c.state = Dragging
	c.store.BringToFront(id)
	return true
}

// Move reports the card origin the pointer implies plus whether the pointer
// hovers over the archive zone. Nothing is committed to the store; the
// caller renders the returned position as transient view state. Ignored
// while Idle.
func (c *Controller) Move(pointer geom.Position) (geom.Position, bool, bool) {
	if c.state != Dragging {
		return geom.Position{}, false, false
	}
	pos := geom.Sub(pointer, c.offset)
	over := geom.WithinZone(pointer, c.zone, c.tolerance)
	return pos, over, true
}

// End finishes the session: the final position is computed exactly as Move
// would, committed to the store, and the controller returns to Idle. The
// returned flag tells the caller whether the release point was inside the
// archive zone, in which case the caller archives the card. Ignored while
// Idle.
func (c *Controller) End(pointer geom.Position) (ulid.ULID, bool, bool) {
	if c.state != Dragging {
		return ulid.ULID{}, false, false
	}
	id := c.cardID
	pos := geom.Sub(pointer, c.offset)
	over := geom.WithinZone(pointer, c.zone, c.tolerance)
	c.state = Idle
	c.cardID = ulid.ULID{}
	c.store.UpdatePosition(id, pos)
	return id, over, true
}

// Cancel forces the controller back to Idle without committing a position.
// Used when the tracked card disappears mid-drag; a later End must not write
// to a nonexistent card.
func (c *Controller) Cancel() {
	c.state = Idle
	c.cardID = ulid.ULID{}
}
