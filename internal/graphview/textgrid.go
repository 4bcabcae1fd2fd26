package graphview

import (
	"strings"

	"github.com/phenixrizen/asciiflow/internal/textwidth"
)

const (
	blank = " "
	// wide marks the trailing cells of a double-width glyph.
	wide = ""
)

// textGrid is a raster of terminal cells.
type textGrid struct {
	w, h  int
	cells [][]string
}

func newTextGrid(w, h int) *textGrid {
	g := &textGrid{w: w, h: h, cells: make([][]string, h)}
	for y := range g.cells {
		g.cells[y] = make([]string, w)
		for x := range g.cells[y] {
			g.cells[y][x] = blank
		}
	}
	return g
}

func (g *textGrid) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

func (g *textGrid) get(x, y int) string {
	if !g.in(x, y) {
		return ""
	}
	return g.cells[y][x]
}

func (g *textGrid) set(x, y int, s string) {
	if g.in(x, y) {
		g.cells[y][x] = s
	}
}

// stroke draws a shaft or corner glyph, merging crossings into "+".
// Arrowheads are never overwritten.
func (g *textGrid) stroke(x, y int, s string) {
	if !g.in(x, y) {
		return
	}
	cur := g.cells[y][x]
	switch cur {
	case blank, wide, s:
		g.cells[y][x] = s
	case "<", ">", "^", "v", "+":
	default:
		g.cells[y][x] = "+"
	}
}

func (g *textGrid) hline(x0, x1, y int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		g.stroke(x, y, "-")
	}
}

func (g *textGrid) vline(x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		g.stroke(x, y, "|")
	}
}

// text writes s from (x, y), giving double-width runes two cells and folding
// zero-width runes into the previous cell.
func (g *textGrid) text(x, y int, s string) {
	last := -1
	for _, r := range s {
		w := textwidth.RuneWidth(r)
		if w == 0 {
			if last >= 0 && g.in(last, y) {
				g.cells[y][last] += string(r)
			}
			continue
		}
		g.set(x, y, string(r))
		for k := 1; k < w; k++ {
			g.set(x+k, y, wide)
		}
		last = x
		x += w
	}
}

// blankRun reports whether width cells from (x, y) are empty.
func (g *textGrid) blankRun(x, y, width int) bool {
	for k := 0; k < width; k++ {
		if !g.in(x+k, y) || g.cells[y][x+k] != blank {
			return false
		}
	}
	return true
}

func (g *textGrid) line(y int) string {
	return strings.TrimRight(strings.Join(g.cells[y], ""), " ")
}
