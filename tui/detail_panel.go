// ABOUTME: Read-only inspect overlay for one card: metadata labels plus the full scrollable text.
// ABOUTME: Opened by double-press; digits toggle checklist lines, a/x archive or discard.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"github.com/2389-research/cardpress/board/core"
	"github.com/2389-research/cardpress/export"
)

// DetailPanel shows a single card in full.
type DetailPanel struct {
	vp   viewport.Model
	card core.Card
}

// NewDetailPanel creates an empty detail overlay.
func NewDetailPanel() DetailPanel {
	return DetailPanel{vp: viewport.New(0, 0)}
}

// SetSize resizes the scroll area.
func (p *DetailPanel) SetSize(width, height int) {
	p.vp.Width = width - 6
	p.vp.Height = height - 10
	if p.vp.Height < 3 {
		p.vp.Height = 3
	}
}

// Show loads a card into the panel.
func (p *DetailPanel) Show(card core.Card) {
	p.card = card
	text := export.RenderedText(card)
	if card.Kind == core.ChecklistCard {
		text = checklistGlyphs(text)
	}
	p.vp.SetContent(text)
	p.vp.GotoTop()
}

// CardID returns the inspected card's id.
func (p DetailPanel) CardID() ulid.ULID {
	return p.card.ID
}

// Update forwards scroll keys to the viewport.
func (p DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return p, cmd
}

// View renders the metadata header and card text.
func (p DetailPanel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(" card "))
	b.WriteString(BackgroundStyle.Render("a: archive · x: discard · s: export · 1-9: toggle line · esc: back"))
	b.WriteString("\n\n")

	rows := []struct{ label, value string }{
		{"id", p.card.ID.String()},
		{"created", p.card.Timestamp},
	}
	if p.card.OriginLabel != "" {
		rows = append(rows, struct{ label, value string }{"origin", p.card.OriginLabel})
	}
	if p.card.Kind == core.ChecklistCard {
		done := 0
		for _, v := range p.card.Checklist {
			if v {
				done++
			}
		}
		rows = append(rows, struct{ label, value string }{
			"checklist", fmt.Sprintf("%d/%d done", done, len(p.card.Checklist)),
		})
	}
	for _, row := range rows {
		b.WriteString(LabelStyle.Render(row.label))
		b.WriteString(ValueStyle.Render(row.value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(PanelStyle.Render(p.vp.View()))
	return b.String()
}
