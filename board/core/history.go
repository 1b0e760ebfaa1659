// ABOUTME: HistoryStore is the append-only archive of cards retired from the board.
// ABOUTME: Entries are stored oldest-first and consumed exactly once on restore.
package core

import "github.com/oklog/ulid/v2"

// HistoryStore keeps retired cards in archival order, newest last. Restoring
// an entry removes it; an id can be restored at most once.
type HistoryStore struct {
	entries []Card
}

// NewHistoryStore creates an empty archive.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Archive appends a card to the end of the archive.
func (h *HistoryStore) Archive(card Card) {
	h.entries = append(h.entries, card)
}

// Restore removes and returns the entry with the given id. The second return
// is false when no such entry exists; restoring an unknown id changes nothing.
func (h *HistoryStore) Restore(id ulid.ULID) (Card, bool) {
	for i, c := range h.entries {
		if c.ID == id {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// Len returns the number of archived entries.
func (h *HistoryStore) Len() int {
	return len(h.entries)
}

// Entries returns archived cards in storage order, oldest first.
func (h *HistoryStore) Entries() []Card {
	out := make([]Card, len(h.entries))
	copy(out, h.entries)
	return out
}

// Newest returns archived cards newest-first for display. This is a
// read-time transform; storage order is untouched.
func (h *HistoryStore) Newest() []Card {
	out := make([]Card, len(h.entries))
	for i, c := range h.entries {
		out[len(h.entries)-1-i] = c
	}
	return out
}
