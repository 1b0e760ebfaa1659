// ABOUTME: CardStore is the live ordered card collection with FIFO overflow eviction.
// ABOUTME: Owns z-order assignment; all not-found operations are silent no-ops.
package core

import (
	"github.com/oklog/ulid/v2"

	"github.com/2389-research/cardpress/board/geom"
)

// CardStore holds the cards currently visible on the board, ordered by
// insertion. It is the only component allowed to insert, evict, or remove
// cards, and it owns the board's current maximum z value.
type CardStore struct {
	cards *OrderedMap[ulid.ULID, Card]
	zMax  int
}

// NewCardStore creates an empty live collection.
func NewCardStore() *CardStore {
	return &CardStore{
		cards: NewOrderedMap[ulid.ULID, Card](),
	}
}

// Insert appends a card to the back of the live collection. When the
// collection then exceeds maxCards, cards are evicted from the front
// (oldest-inserted first) until the size equals maxCards. Evicted cards are
// returned in removal order for the caller to archive. Drag activity never
// protects a card; eviction is strictly FIFO by insertion call order.
func (s *CardStore) Insert(card Card, maxCards int) []Card {
	s.cards.Set(card.ID, card)
	if maxCards < 1 {
		maxCards = 1
	}
	var evicted []Card
	for s.cards.Len() > maxCards {
		_, c, ok := s.cards.PopFront()
		if !ok {
			break
		}
		evicted = append(evicted, c)
	}
	return evicted
}

// Get returns the card with the given id.
func (s *CardStore) Get(id ulid.ULID) (Card, bool) {
	return s.cards.Get(id)
}

// Cards returns all live cards in insertion order.
func (s *CardStore) Cards() []Card {
	return s.cards.Values()
}

// Len returns the number of live cards.
func (s *CardStore) Len() int {
	return s.cards.Len()
}

// ZMax returns the current maximum assigned z value.
func (s *CardStore) ZMax() int {
	return s.zMax
}

// UpdatePosition replaces the position of the matching card. Only the drag
// commit path and the spawn/restore path call this. No-op when id is absent.
func (s *CardStore) UpdatePosition(id ulid.ULID, pos geom.Position) {
	card, ok := s.cards.Get(id)
	if !ok {
		return
	}
	card.Pos = pos
	s.cards.Set(id, card)
}

// BringToFront assigns the card the next z value above the tracked maximum.
// Calling it twice in a row still strictly increases z; the card stays the
// unique maximum either way. No-op when id is absent.
func (s *CardStore) BringToFront(id ulid.ULID) {
	card, ok := s.cards.Get(id)
	if !ok {
		return
	}
	s.zMax++
	card.Z = s.zMax
	s.cards.Set(id, card)
}

// Remove deletes the card permanently without archiving. No-op when absent.
func (s *CardStore) Remove(id ulid.ULID) {
	s.cards.Delete(id)
}

// MoveToHistory removes the card from the live collection and returns it for
// the caller to archive. The second return is false when id is absent.
func (s *CardStore) MoveToHistory(id ulid.ULID) (Card, bool) {
	card, ok := s.cards.Get(id)
	if !ok {
		return Card{}, false
	}
	s.cards.Delete(id)
	return card, true
}

// SetChecklistLine sets the completion state of one checklist line. Toggling
// a line that is not a checklist line in the card's text never creates an
// entry. No-op when id is absent.
func (s *CardStore) SetChecklistLine(id ulid.ULID, line int, completed bool) {
	card, ok := s.cards.Get(id)
	if !ok || !card.IsChecklistLine(line) {
		return
	}
	card.Checklist[line] = completed
	s.cards.Set(id, card)
}
