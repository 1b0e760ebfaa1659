// ABOUTME: Full-screen overlay listing archived cards newest-first with a selection cursor.
// ABOUTME: Enter restores the selected card; display order is a read-time reverse of storage.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/cardpress/board/core"
)

// HistoryPanel is the archive browser overlay.
type HistoryPanel struct {
	cursor int
}

// Reset clamps the cursor into the current entry range.
func (p *HistoryPanel) Reset(n int) {
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Up moves the cursor toward the newest entry.
func (p *HistoryPanel) Up() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// Down moves the cursor toward the oldest entry.
func (p *HistoryPanel) Down(n int) {
	if p.cursor < n-1 {
		p.cursor++
	}
}

// View renders the archive, newest first.
func (p HistoryPanel) View(history *core.HistoryStore, width, height int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(" archive "))
	b.WriteString(BackgroundStyle.Render("enter: restore · esc: back"))
	b.WriteString("\n\n")

	entries := history.Newest()
	if len(entries) == 0 {
		b.WriteString(ValueStyle.Render("  nothing archived yet"))
		return b.String()
	}

	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	for i := start; i < len(entries) && i < start+visible; i++ {
		entry := entries[i]
		marker := "  "
		style := ValueStyle
		if i == p.cursor {
			marker = "> "
			style = CardActiveStyle
		}
		line := fmt.Sprintf("%s%s  %s", marker, firstLine(entry.Text, width-24), entry.Timestamp)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// firstLine truncates a card's text to a single display line.
func firstLine(text string, max int) string {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	runes := []rune(line)
	if max > 1 && len(runes) > max {
		return string(runes[:max-1]) + "…"
	}
	return line
}
