// ABOUTME: Cell canvas that composites free-floating cards onto the board in z-order.
// ABOUTME: Each cell carries a rune plus a palette index; styling is applied per run at render time.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/cardpress/board/geom"
)

// paletteIndex selects a style for a canvas cell.
type paletteIndex int

const (
	styleBackground paletteIndex = iota
	styleCard
	styleCardActive
	styleZone
	styleZoneHot
)

type cell struct {
	r     rune
	style paletteIndex
}

// Canvas is a fixed-size grid of styled cells. Later draws overwrite earlier
// ones, so callers draw in ascending z-order.
type Canvas struct {
	width  int
	height int
	cells  [][]cell
}

// NewCanvas creates a blank canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	cells := make([][]cell, height)
	for y := range cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' ', style: styleBackground}
		}
		cells[y] = row
	}
	return &Canvas{width: width, height: height, cells: cells}
}

// DrawBox draws a rounded border box with a blank interior. Cells outside
// the canvas are clipped.
func (c *Canvas) DrawBox(r geom.Rect, style paletteIndex) {
	x0, y0 := r.Min.X, r.Min.Y
	x1 := x0 + r.Size.Width - 1
	y1 := y0 + r.Size.Height - 1
	if r.Size.Width < 2 || r.Size.Height < 2 {
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			var glyph rune
			switch {
			case y == y0 && x == x0:
				glyph = '╭'
			case y == y0 && x == x1:
				glyph = '╮'
			case y == y1 && x == x0:
				glyph = '╰'
			case y == y1 && x == x1:
				glyph = '╯'
			case y == y0 || y == y1:
				glyph = '─'
			case x == x0 || x == x1:
				glyph = '│'
			default:
				glyph = ' '
			}
			c.set(x, y, glyph, style)
		}
	}
}

// DrawText writes a single line starting at pos, clipped to maxWidth runes
// and to the canvas bounds.
func (c *Canvas) DrawText(pos geom.Position, maxWidth int, text string, style paletteIndex) {
	x := pos.X
	for _, r := range text {
		if x >= pos.X+maxWidth {
			break
		}
		if r == '\n' {
			break
		}
		c.set(x, pos.Y, r, style)
		x++
	}
}

// View renders the canvas to a styled string using the given palette.
// Adjacent cells sharing a style are batched into one lipgloss render call.
func (c *Canvas) View(palette map[paletteIndex]lipgloss.Style) string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		runStart := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].style == row[runStart].style {
				continue
			}
			var run strings.Builder
			for _, cl := range row[runStart:x] {
				run.WriteRune(cl.r)
			}
			b.WriteString(palette[row[runStart].style].Render(run.String()))
			runStart = x
		}
	}
	return b.String()
}

func (c *Canvas) set(x, y int, r rune, style paletteIndex) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = cell{r: r, style: style}
}

// runeAt returns the rune at a position, for tests.
func (c *Canvas) runeAt(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0
	}
	return c.cells[y][x].r
}
