// ABOUTME: Snapshot export renders a card into Markdown and HTML artifacts on disk.
// ABOUTME: Export failures are reported to the caller and never touch card state.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/2389-research/cardpress/board/core"
)

// Meta is the YAML front matter attached to an exported card.
type Meta struct {
	ID          string  `yaml:"id"`
	Timestamp   string  `yaml:"timestamp"`
	OriginID    string  `yaml:"origin_id,omitempty"`
	OriginLabel string  `yaml:"origin_label,omitempty"`
	Rotation    float64 `yaml:"rotation"`
}

// Snapshot writes card artifacts into a directory.
type Snapshot struct {
	Dir string
}

// Write renders the card and writes <id>.md and <id>.html into the snapshot
// directory, creating it if needed. Returns the Markdown artifact path.
func (s Snapshot) Write(card core.Card) (string, error) {
	if s.Dir == "" {
		return "", fmt.Errorf("snapshot dir not configured")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	md, err := Markdown(card)
	if err != nil {
		return "", err
	}
	mdPath := filepath.Join(s.Dir, card.ID.String()+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write markdown artifact: %w", err)
	}

	html, err := HTML(card)
	if err != nil {
		return "", err
	}
	htmlPath := filepath.Join(s.Dir, card.ID.String()+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write html artifact: %w", err)
	}

	return mdPath, nil
}

// Markdown renders the card as a Markdown document with YAML front matter.
// Checklist state is folded into the text so exported markers reflect the
// toggles made on the board.
func Markdown(card core.Card) (string, error) {
	meta, err := yaml.Marshal(Meta{
		ID:          card.ID.String(),
		Timestamp:   card.Timestamp,
		OriginID:    card.OriginID,
		OriginLabel: card.OriginLabel,
		Rotation:    card.Rotation,
	})
	if err != nil {
		return "", fmt.Errorf("marshal card meta: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(RenderedText(card))
	b.WriteString("\n")
	return b.String(), nil
}

// HTML converts the card's rendered text to HTML via goldmark.
func HTML(card core.Card) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(RenderedText(card)), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// RenderedText returns the card text with checklist toggles applied. The
// card's stored Text is immutable; this is a read-time projection.
func RenderedText(card core.Card) string {
	if card.Kind != core.ChecklistCard {
		return card.Text
	}
	lines := strings.Split(card.Text, "\n")
	for idx, done := range card.Checklist {
		if idx < 0 || idx >= len(lines) {
			continue
		}
		lines[idx] = setMarker(lines[idx], done)
	}
	return strings.Join(lines, "\n")
}

// setMarker rewrites the "- [ ]"/"- [x]" marker on a checklist line.
func setMarker(line string, done bool) string {
	i := strings.Index(line, "- [")
	if i < 0 || i+4 >= len(line) {
		return line
	}
	mark := " "
	if done {
		mark = "x"
	}
	return line[:i+3] + mark + line[i+4:]
}
