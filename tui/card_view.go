// ABOUTME: Renders a single card: typing reveal while animating, checklist-aware full text once done.
// ABOUTME: Tracks which source line produced each display row so clicks can toggle checklist lines.
package tui

import (
	"strings"

	"github.com/2389-research/cardpress/board/core"
	"github.com/2389-research/cardpress/board/geom"
	"github.com/2389-research/cardpress/board/typing"
	"github.com/2389-research/cardpress/export"
)

const (
	cardWidth     = 28 // total width including borders
	cardMaxHeight = 10 // total height including borders
	contentWidth  = cardWidth - 2
)

// cardLayout is a card's display rows plus, per row, the index of the source
// text line that produced it (wrapping can spread one line over many rows).
type cardLayout struct {
	lines   []string
	sources []int
}

// layoutCard returns the rows to display for a card. While the animator is
// typing, the revealed prefix is shown verbatim; once done, the full text is
// rendered through the checklist-aware path with marker glyphs.
func layoutCard(card core.Card, anim *typing.Animator) cardLayout {
	var text string
	if anim != nil && anim.State() == typing.Typing {
		text = anim.Revealed()
	} else {
		text = export.RenderedText(card)
		if card.Kind == core.ChecklistCard {
			text = checklistGlyphs(text)
		}
	}

	var l cardLayout
	for srcIdx, line := range strings.Split(text, "\n") {
		for _, chunk := range wrapLine(line, contentWidth) {
			l.lines = append(l.lines, chunk)
			l.sources = append(l.sources, srcIdx)
		}
	}
	if len(l.lines) == 0 {
		l.lines = []string{""}
		l.sources = []int{0}
	}
	if max := cardMaxHeight - 2; len(l.lines) > max {
		l.lines = l.lines[:max]
		l.sources = l.sources[:max]
	}
	return l
}

// rect returns the card's bounding box when anchored at pos.
func (l cardLayout) rect(pos geom.Position) geom.Rect {
	return geom.Rect{
		Min:  pos,
		Size: geom.Size{Width: cardWidth, Height: len(l.lines) + 2},
	}
}

// sourceLineAt maps a board-space point to the source text line under it.
// Returns false when the point is on the border or outside the card.
func (l cardLayout) sourceLineAt(pos geom.Position, p geom.Position) (int, bool) {
	row := p.Y - pos.Y - 1
	if row < 0 || row >= len(l.sources) {
		return 0, false
	}
	if p.X <= pos.X || p.X >= pos.X+cardWidth-1 {
		return 0, false
	}
	return l.sources[row], true
}

// draw composites the card onto the canvas.
func (l cardLayout) draw(c *Canvas, pos geom.Position, style paletteIndex) {
	c.DrawBox(l.rect(pos), style)
	for i, line := range l.lines {
		c.DrawText(geom.Position{X: pos.X + 1, Y: pos.Y + 1 + i}, contentWidth, line, style)
	}
}

// checklistGlyphs swaps markdown checklist markers for box glyphs.
func checklistGlyphs(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]
		switch {
		case strings.HasPrefix(trimmed, "- [ ]"):
			lines[i] = indent + "☐" + trimmed[5:]
		case strings.HasPrefix(trimmed, "- [x]"), strings.HasPrefix(trimmed, "- [X]"):
			lines[i] = indent + "☑" + trimmed[5:]
		}
	}
	return strings.Join(lines, "\n")
}

// wrapLine hard-wraps a line into chunks of at most width runes.
func wrapLine(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}
	var out []string
	for len(runes) > width {
		out = append(out, string(runes[:width]))
		runes = runes[width:]
	}
	return append(out, string(runes))
}
