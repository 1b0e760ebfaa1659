// ABOUTME: Tests for card layout: typing reveal, checklist glyphs, wrapping, and row-to-line mapping.
// ABOUTME: The wrap-aware source index is what makes click-to-toggle land on the right line.
package tui

import (
	"strings"
	"testing"

	"github.com/2389-research/cardpress/board/core"
	"github.com/2389-research/cardpress/board/geom"
	"github.com/2389-research/cardpress/board/typing"
)

func TestLayoutShowsRevealedPrefixWhileTyping(t *testing.T) {
	card := core.NewCard("hello world")
	anim := typing.NewAnimator(card.Text, 280)
	for i := 0; i < 5; i++ {
		anim.Tick()
	}

	l := layoutCard(card, anim)
	if len(l.lines) != 1 || l.lines[0] != "hello" {
		t.Errorf("lines = %v, want [hello]", l.lines)
	}
}

func TestLayoutShowsFullTextWhenSettled(t *testing.T) {
	card := core.NewCard("one\ntwo")
	l := layoutCard(card, nil)
	if len(l.lines) != 2 || l.lines[0] != "one" || l.lines[1] != "two" {
		t.Errorf("lines = %v", l.lines)
	}
	if l.sources[0] != 0 || l.sources[1] != 1 {
		t.Errorf("sources = %v", l.sources)
	}
}

func TestLayoutChecklistGlyphs(t *testing.T) {
	card := core.NewCard("plan\n- [ ] pack\n- [x] book flights")
	l := layoutCard(card, nil)
	if !strings.HasPrefix(l.lines[1], "☐") {
		t.Errorf("unchecked line = %q, want ☐ prefix", l.lines[1])
	}
	if !strings.HasPrefix(l.lines[2], "☑") {
		t.Errorf("checked line = %q, want ☑ prefix", l.lines[2])
	}
}

func TestLayoutChecklistReflectsToggles(t *testing.T) {
	card := core.NewCard("plan\n- [ ] pack")
	card.Checklist[1] = true
	l := layoutCard(card, nil)
	if !strings.HasPrefix(l.lines[1], "☑") {
		t.Errorf("toggled line = %q, want ☑ prefix", l.lines[1])
	}
}

func TestLayoutWrapsLongLines(t *testing.T) {
	long := strings.Repeat("a", contentWidth+5)
	card := core.NewCard(long + "\nshort")
	l := layoutCard(card, nil)

	if len(l.lines) != 3 {
		t.Fatalf("rows = %d, want 3", len(l.lines))
	}
	// Both wrapped rows come from source line 0.
	if l.sources[0] != 0 || l.sources[1] != 0 || l.sources[2] != 1 {
		t.Errorf("sources = %v, want [0 0 1]", l.sources)
	}
	if got := len([]rune(l.lines[0])); got != contentWidth {
		t.Errorf("first chunk width = %d, want %d", got, contentWidth)
	}
}

func TestLayoutCapsHeight(t *testing.T) {
	card := core.NewCard(strings.Repeat("line\n", 30) + "line")
	l := layoutCard(card, nil)
	if len(l.lines) != cardMaxHeight-2 {
		t.Errorf("rows = %d, want %d", len(l.lines), cardMaxHeight-2)
	}
}

func TestSourceLineAtMapsWrappedRows(t *testing.T) {
	long := strings.Repeat("a", contentWidth+5)
	card := core.NewCard(long + "\n- [ ] item")
	l := layoutCard(card, nil)
	pos := geom.Position{X: 10, Y: 10}

	tests := []struct {
		name    string
		p       geom.Position
		want    int
		wantHit bool
	}{
		{"first wrapped row", geom.Position{X: 12, Y: 11}, 0, true},
		{"second wrapped row", geom.Position{X: 12, Y: 12}, 0, true},
		{"checklist row", geom.Position{X: 12, Y: 13}, 1, true},
		{"top border", geom.Position{X: 12, Y: 10}, 0, false},
		{"left border", geom.Position{X: 10, Y: 11}, 0, false},
		{"below card", geom.Position{X: 12, Y: 20}, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, hit := l.sourceLineAt(pos, tc.p)
			if hit != tc.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tc.wantHit)
			}
			if hit && got != tc.want {
				t.Errorf("line = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRectTracksLineCount(t *testing.T) {
	card := core.NewCard("a\nb\nc")
	r := layoutCard(card, nil).rect(geom.Position{X: 5, Y: 7})
	if r.Size.Width != cardWidth || r.Size.Height != 5 {
		t.Errorf("rect = %+v", r)
	}
	if r.Min.X != 5 || r.Min.Y != 7 {
		t.Errorf("rect origin = %+v", r.Min)
	}
}

func TestChecklistGlyphsPreserveIndent(t *testing.T) {
	got := checklistGlyphs("  - [ ] nested")
	if got != "  ☐ nested" {
		t.Errorf("got %q", got)
	}
}
