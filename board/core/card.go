// ABOUTME: Card is the central entity of the board: immutable text plus mutable placement state.
// ABOUTME: The plain/checklist variant is decided once at creation by sniffing checklist markers.
package core

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/2389-research/cardpress/board/geom"
)

// Kind tags the two card variants. The variant is fixed at creation from the
// text content; render paths dispatch on it instead of re-sniffing.
type Kind int

const (
	// PlainCard renders its text as-is.
	PlainCard Kind = iota
	// ChecklistCard has togglable completion markers on some lines.
	ChecklistCard
)

// Card is a single note on the board. Text, Rotation, Timestamp, and the
// origin fields never change after creation; Pos, Z, and Checklist do.
type Card struct {
	ID          ulid.ULID     `json:"card_id"`
	Text        string        `json:"text"`
	Pos         geom.Position `json:"pos"`
	Z           int           `json:"z"`
	Rotation    float64       `json:"rotation"`
	Timestamp   string        `json:"timestamp"`
	OriginID    string        `json:"origin_id,omitempty"`
	OriginLabel string        `json:"origin_label,omitempty"`
	Kind        Kind          `json:"kind"`
	Checklist   map[int]bool  `json:"checklist,omitempty"`
}

// NewCard creates a Card with a fresh ULID and a human-readable timestamp.
// Position, rotation, and z are assigned by the spawn path, not here.
func NewCard(text string) Card {
	c := Card{
		ID:        NewULID(),
		Text:      text,
		Timestamp: time.Now().Format("Jan 2, 2006 3:04 PM"),
	}
	if lines := ChecklistLines(text); len(lines) > 0 {
		c.Kind = ChecklistCard
		c.Checklist = make(map[int]bool, len(lines))
		for _, idx := range lines {
			c.Checklist[idx] = checklistLineChecked(strings.Split(text, "\n")[idx])
		}
	}
	return c
}

// ChecklistLines returns the indices of lines in text that carry a checklist
// marker, in line order. An empty result means the text is a plain card.
func ChecklistLines(text string) []int {
	var out []int
	for i, line := range strings.Split(text, "\n") {
		if isChecklistLine(line) {
			out = append(out, i)
		}
	}
	return out
}

// IsChecklistLine reports whether the line at idx in the card's text is a
// checklist line. Used to enforce that Checklist keys stay valid.
func (c Card) IsChecklistLine(idx int) bool {
	_, ok := c.Checklist[idx]
	return ok
}

// isChecklistLine matches "- [ ]" and "- [x]" prefixes after leading spaces.
func isChecklistLine(line string) bool {
	s := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(s, "- [") || len(s) < 5 {
		return false
	}
	mark := s[3]
	return (mark == ' ' || mark == 'x' || mark == 'X') && s[4] == ']'
}

// checklistLineChecked reports whether a checklist line starts checked.
func checklistLineChecked(line string) bool {
	s := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(s, "- [x]") || strings.HasPrefix(s, "- [X]")
}
