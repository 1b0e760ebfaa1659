// ABOUTME: Tests for CardStore capacity enforcement, FIFO eviction, z-order, and checklist toggles.
// ABOUTME: Covers the restore re-eviction cascade where re-inserting an archived card evicts another.
package core_test

import (
	"testing"

	"github.com/2389-research/cardpress/board/core"
	"github.com/2389-research/cardpress/board/geom"
)

func TestInsertStaysWithinCapacity(t *testing.T) {
	s := core.NewCardStore()
	h := core.NewHistoryStore()

	for i := 0; i < 10; i++ {
		for _, evicted := range s.Insert(core.NewCard("note"), 3) {
			h.Archive(evicted)
		}
		if s.Len() > 3 {
			t.Fatalf("live size %d exceeds maxCards 3 after insert %d", s.Len(), i)
		}
	}
	if s.Len() != 3 {
		t.Errorf("live size = %d, want 3", s.Len())
	}
	if h.Len() != 7 {
		t.Errorf("history size = %d, want 7", h.Len())
	}
}

func TestEvictionIsStrictlyFIFO(t *testing.T) {
	s := core.NewCardStore()
	h := core.NewHistoryStore()

	a := core.NewCard("A")
	b := core.NewCard("B")
	c := core.NewCard("C")
	d := core.NewCard("D")

	for _, card := range []core.Card{a, b, c, d} {
		for _, evicted := range s.Insert(card, 2) {
			h.Archive(evicted)
		}
	}

	live := s.Cards()
	if len(live) != 2 || live[0].ID != c.ID || live[1].ID != d.ID {
		t.Fatalf("live = %v, want [C D]", texts(live))
	}
	hist := h.Entries()
	if len(hist) != 2 || hist[0].ID != a.ID || hist[1].ID != b.ID {
		t.Fatalf("history = %v, want [A B]", texts(hist))
	}
}

func TestDragActivityDoesNotProtectFromEviction(t *testing.T) {
	s := core.NewCardStore()

	a := core.NewCard("A")
	b := core.NewCard("B")
	s.Insert(a, 2)
	s.Insert(b, 2)

	// Touch A: move it and bring it to front. FIFO ignores both.
	s.UpdatePosition(a.ID, geom.Position{X: 50, Y: 5})
	s.BringToFront(a.ID)

	evicted := s.Insert(core.NewCard("C"), 2)
	if len(evicted) != 1 || evicted[0].ID != a.ID {
		t.Fatalf("evicted = %v, want [A]", texts(evicted))
	}
}

func TestBringToFrontStrictlyIncreases(t *testing.T) {
	s := core.NewCardStore()
	a := core.NewCard("A")
	b := core.NewCard("B")
	s.Insert(a, 10)
	s.Insert(b, 10)

	s.BringToFront(a.ID)
	s.BringToFront(b.ID)
	first, _ := s.Get(b.ID)

	// Second call in a row still strictly increases z and keeps b the max.
	s.BringToFront(b.ID)
	second, _ := s.Get(b.ID)

	if second.Z <= first.Z {
		t.Errorf("second z = %d, want > %d", second.Z, first.Z)
	}
	if second.Z != s.ZMax() {
		t.Errorf("card z = %d, zMax = %d; card should be the maximum", second.Z, s.ZMax())
	}
	other, _ := s.Get(a.ID)
	if other.Z >= second.Z {
		t.Errorf("a.Z = %d should be below b.Z = %d", other.Z, second.Z)
	}
}

func TestUpdatePositionUnknownIDIsNoop(t *testing.T) {
	s := core.NewCardStore()
	a := core.NewCard("A")
	s.Insert(a, 5)

	s.UpdatePosition(core.NewULID(), geom.Position{X: 99, Y: 99})
	s.BringToFront(core.NewULID())
	s.Remove(core.NewULID())
	s.SetChecklistLine(core.NewULID(), 0, true)

	if s.Len() != 1 {
		t.Errorf("live size = %d, want 1", s.Len())
	}
	got, _ := s.Get(a.ID)
	if got.Pos != a.Pos || got.Z != a.Z {
		t.Error("no-op operations mutated an unrelated card")
	}
}

func TestRemoveDeletesWithoutArchiving(t *testing.T) {
	s := core.NewCardStore()
	a := core.NewCard("A")
	s.Insert(a, 5)

	s.Remove(a.ID)

	if s.Len() != 0 {
		t.Errorf("live size = %d, want 0", s.Len())
	}
	if _, ok := s.Get(a.ID); ok {
		t.Error("removed card still present")
	}
}

func TestMoveToHistory(t *testing.T) {
	s := core.NewCardStore()
	h := core.NewHistoryStore()
	a := core.NewCard("A")
	s.Insert(a, 5)

	card, ok := s.MoveToHistory(a.ID)
	if !ok {
		t.Fatal("MoveToHistory should find the card")
	}
	h.Archive(card)

	if s.Len() != 0 {
		t.Errorf("live size = %d, want 0", s.Len())
	}
	if h.Len() != 1 {
		t.Errorf("history size = %d, want 1", h.Len())
	}
	if _, ok := s.MoveToHistory(a.ID); ok {
		t.Error("second MoveToHistory should report not found")
	}
}

func TestRestoreReevictsUnderCapacityOne(t *testing.T) {
	s := core.NewCardStore()
	h := core.NewHistoryStore()

	x := core.NewCard("X")
	y := core.NewCard("Y")

	for _, evicted := range s.Insert(x, 1) {
		h.Archive(evicted)
	}
	for _, evicted := range s.Insert(y, 1) {
		h.Archive(evicted)
	}

	live := s.Cards()
	if len(live) != 1 || live[0].ID != y.ID {
		t.Fatalf("live = %v, want [Y]", texts(live))
	}
	if hist := h.Entries(); len(hist) != 1 || hist[0].ID != x.ID {
		t.Fatalf("history = %v, want [X]", texts(hist))
	}

	// Restoring X exceeds maxCards=1 and immediately re-evicts Y.
	restored, ok := h.Restore(x.ID)
	if !ok {
		t.Fatal("restore should find X")
	}
	for _, evicted := range s.Insert(restored, 1) {
		h.Archive(evicted)
	}

	live = s.Cards()
	if len(live) != 1 || live[0].ID != x.ID {
		t.Fatalf("after restore live = %v, want [X]", texts(live))
	}
	if hist := h.Entries(); len(hist) != 1 || hist[0].ID != y.ID {
		t.Fatalf("after restore history = %v, want [Y]", texts(hist))
	}
}

func TestRestorePreservesIdentityAndChecklist(t *testing.T) {
	s := core.NewCardStore()
	h := core.NewHistoryStore()

	card := core.NewCard("todo\n- [ ] one\n- [x] two")
	s.Insert(card, 5)
	s.SetChecklistLine(card.ID, 1, true)

	archived, _ := s.MoveToHistory(card.ID)
	h.Archive(archived)

	restored, ok := h.Restore(card.ID)
	if !ok {
		t.Fatal("restore should find the card")
	}
	if restored.ID != card.ID {
		t.Error("restore changed the card ID")
	}
	if restored.Text != card.Text {
		t.Error("restore changed the card text")
	}
	if !restored.Checklist[1] || !restored.Checklist[2] {
		t.Errorf("checklist state lost across archive/restore: %v", restored.Checklist)
	}
	if h.Len() != 0 {
		t.Errorf("history size = %d, want 0 after restore", h.Len())
	}
}

func TestSetChecklistLineRoundTrip(t *testing.T) {
	s := core.NewCardStore()
	card := core.NewCard("list\n- [ ] a\n- [ ] b")
	s.Insert(card, 5)

	before, _ := s.Get(card.ID)
	orig := before.Checklist[2]

	s.SetChecklistLine(card.ID, 2, true)
	mid, _ := s.Get(card.ID)
	if !mid.Checklist[2] {
		t.Fatal("toggle true did not stick")
	}

	s.SetChecklistLine(card.ID, 2, false)
	after, _ := s.Get(card.ID)
	if after.Checklist[2] != orig {
		t.Errorf("round-trip left checklist[2] = %v, want %v", after.Checklist[2], orig)
	}
}

func TestSetChecklistLineRejectsNonChecklistLines(t *testing.T) {
	s := core.NewCardStore()
	card := core.NewCard("title line\n- [ ] item")
	s.Insert(card, 5)

	s.SetChecklistLine(card.ID, 0, true)  // plain line
	s.SetChecklistLine(card.ID, 99, true) // out of range

	got, _ := s.Get(card.ID)
	if _, ok := got.Checklist[0]; ok {
		t.Error("toggling a plain line created a checklist entry")
	}
	if _, ok := got.Checklist[99]; ok {
		t.Error("toggling an out-of-range line created a checklist entry")
	}
	if len(got.Checklist) != 1 {
		t.Errorf("checklist has %d entries, want 1", len(got.Checklist))
	}
}

func texts(cards []core.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Text
	}
	return out
}
