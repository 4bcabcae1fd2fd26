package graphview

import (
	"strings"

	"github.com/phenixrizen/asciiflow/internal/textwidth"
)

// rightGutter and downGutter size a gutter from the largest fan-out of the
// nodes that own it.
func rightGutter(fan int) int {
	switch {
	case fan <= 0:
		return 0
	case fan == 1:
		return 3
	default:
		return 5
	}
}

func downGutter(fan int) int {
	switch {
	case fan <= 0:
		return 0
	case fan == 1:
		return 2
	case fan == 2:
		return 3
	default:
		return 4
	}
}

// metrics is the character geometry negotiated for one map.
type metrics struct {
	colW, gutW, colX []int
	rowH, gutH, rowY []int
	mid              []int
	// gutterLine marks output lines that belong to a down gutter.
	gutterLine []bool
	width      int
	height     int
}

func (m *Map) measure() *metrics {
	cols, rows := m.Canvas.Width(), m.Canvas.Height()
	mt := &metrics{
		colW: make([]int, cols),
		gutW: make([]int, cols),
		colX: make([]int, cols+1),
		rowH: make([]int, rows),
		gutH: make([]int, rows),
		rowY: make([]int, rows+1),
		mid:  make([]int, rows),
	}

	minBox := make([]int, rows)
	for i, c := range m.Cells {
		p := m.Pos[i]
		mt.colW[p.X] = max(mt.colW[p.X], c.BoxWidth())
		mt.rowH[p.Y] = max(mt.rowH[p.Y], c.BoxHeight())
		if minBox[p.Y] == 0 || c.BoxHeight() < minBox[p.Y] {
			minBox[p.Y] = c.BoxHeight()
		}
	}
	for y := range mt.mid {
		mt.mid[y] = minBox[y] / 2
	}

	rightFan := make([]int, len(m.Cells))
	downFan := make([]int, len(m.Cells))
	for _, l := range m.Links {
		if l.Hidden {
			continue
		}
		pa, pb := m.Pos[l.A], m.Pos[l.B]
		if l.Axis == AxisRight {
			rightFan[l.A]++
			for x := pa.X; x < pb.X; x++ {
				mt.gutW[x] = max(mt.gutW[x], 3)
			}
			if pa.X == pb.X {
				mt.gutW[pa.X] = max(mt.gutW[pa.X], 3)
			}
			if l.Label != "" && pa.Y == pb.Y && pb.X == pa.X+1 {
				mt.gutW[pa.X] = max(mt.gutW[pa.X], textwidth.Width(l.Label)+2)
			}
			continue
		}
		downFan[l.A]++
		for y := pa.Y; y < pb.Y; y++ {
			mt.gutH[y] = max(mt.gutH[y], 2)
		}
		if l.Lane > 0 {
			mt.gutH[l.Turn] = max(mt.gutH[l.Turn], 3)
		}
	}
	for i := range m.Cells {
		p := m.Pos[i]
		mt.gutW[p.X] = max(mt.gutW[p.X], rightGutter(rightFan[i]))
		mt.gutH[p.Y] = max(mt.gutH[p.Y], downGutter(downFan[i]))
	}
	// keep neighboring boxes from touching
	for x := 0; x+1 < cols; x++ {
		if mt.colW[x] > 0 && mt.colW[x+1] > 0 {
			mt.gutW[x] = max(mt.gutW[x], 1)
		}
	}

	for x := 0; x < cols; x++ {
		mt.colX[x+1] = mt.colX[x] + mt.colW[x] + mt.gutW[x]
	}
	mt.width = mt.colX[cols]

	starts := map[int]bool{}
	for _, s := range m.Starts {
		if s > 0 {
			starts[s] = true
		}
	}
	y := 0
	for row := 0; row < rows; row++ {
		if starts[row] {
			for k := 0; k < m.opts.ComponentGap; k++ {
				mt.gutterLine = append(mt.gutterLine, false)
			}
			y += m.opts.ComponentGap
		}
		mt.rowY[row] = y
		for k := 0; k < mt.rowH[row]; k++ {
			mt.gutterLine = append(mt.gutterLine, false)
		}
		for k := 0; k < mt.gutH[row]; k++ {
			mt.gutterLine = append(mt.gutterLine, true)
		}
		y += mt.rowH[row] + mt.gutH[row]
	}
	mt.rowY[rows] = y
	mt.height = y
	return mt
}

// bandEnd is the last line of a row including its down gutter.
func (mt *metrics) bandEnd(row int) int {
	return mt.rowY[row] + mt.rowH[row] + mt.gutH[row] - 1
}

// midline is the line the right-like shafts of a row run on.
func (mt *metrics) midline(row int) int {
	return mt.rowY[row] + mt.mid[row]
}

func (mt *metrics) center(col int) int {
	return mt.colX[col] + mt.colW[col]/2
}

// bend is where a turning link changes direction: a column for right-like
// links, a line for down-like ones.
func (mt *metrics) bend(l Link) int {
	if l.Axis == AxisRight {
		return mt.colX[l.Turn] + mt.colW[l.Turn] + lane(l, mt.gutW[l.Turn])
	}
	return mt.rowY[l.Turn] + mt.rowH[l.Turn] + lane(l, mt.gutH[l.Turn])
}

// Render draws the map. Shafts go down first so boxes cover anything that
// runs behind them; labels only fill blank space.
func (m *Map) Render() string {
	if len(m.Cells) == 0 {
		return ""
	}
	mt := m.measure()
	g := newTextGrid(mt.width, mt.height)

	for i, l := range m.Links {
		if !l.Hidden {
			m.drawTerminals(g, mt, i)
		}
	}
	for at, passes := range m.Board {
		for _, p := range passes {
			m.drawPass(g, mt, at, p)
		}
	}
	for i, l := range m.Links {
		if !l.Hidden {
			m.drawHeads(g, mt, i)
		}
	}
	for i, c := range m.Cells {
		drawBox(g, c, mt.colX[m.Pos[i].X], mt.rowY[m.Pos[i].Y], mt.colW[m.Pos[i].X])
	}
	for i, l := range m.Links {
		if !l.Hidden {
			m.drawLabel(g, mt, i)
		}
	}

	lines := make([]string, 0, mt.height)
	for y := 0; y < mt.height; y++ {
		line := g.line(y)
		if line == "" && mt.gutterLine[y] {
			continue
		}
		lines = append(lines, line)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// drawBox draws c as a box of the given width at (x, y).
func drawBox(g *textGrid, c *Cell, x, y, width int) {
	inner := width - 2
	fill := strings.Repeat("-", inner)
	top, bottom := "."+fill+".", "'"+fill+"'"
	left, right := "|", "|"
	switch c.Shape {
	case Square:
		top, bottom = "+"+fill+"+", "+"+fill+"+"
	case Circle:
		left, right = "(", ")"
	}
	g.text(x, y, top)
	for i, line := range c.Lines {
		g.text(x, y+1+i, left+textwidth.PadCenter(line, inner)+right)
	}
	g.text(x, y+c.Height+1, bottom)
}

// lane clamps a link's turn offset into a gutter of size n, leaving the first
// and last positions for arrowheads.
func lane(l Link, n int) int {
	return max(1, min(l.Lane, n-2))
}

func (m *Map) drawTerminals(g *textGrid, mt *metrics, i int) {
	l := m.Links[i]
	pa, pb := m.Pos[l.A], m.Pos[l.B]
	if l.Axis == AxisRight {
		srcX := mt.colX[pa.X] + mt.colW[pa.X]
		gx := mt.colX[l.Turn] + mt.colW[l.Turn]
		gw := mt.gutW[l.Turn]
		midA, midB := mt.midline(pa.Y), mt.midline(pb.Y)
		if l.Lane == 0 {
			g.hline(srcX, srcX+mt.gutW[pa.X]-1, midA)
			return
		}
		lx := mt.bend(l)
		g.hline(srcX, lx-1, midA)
		top, bottom := pa.Y, pb.Y
		topMid, bottomMid := midA, midB
		if pb.Y > pa.Y {
			g.stroke(lx, midA, ".")
			g.stroke(lx, midB, "'")
		} else {
			g.stroke(lx, midA, "'")
			g.stroke(lx, midB, ".")
			top, bottom = pb.Y, pa.Y
			topMid, bottomMid = midB, midA
		}
		g.vline(lx, topMid+1, mt.bandEnd(top))
		g.vline(lx, mt.rowY[bottom], bottomMid-1)
		if pb.X > pa.X {
			g.hline(lx+1, gx+gw-1, midB)
		} else {
			g.hline(gx, lx-1, midB)
		}
		return
	}

	ca, cb := mt.center(pa.X), mt.center(pb.X)
	startA := mt.rowY[pa.Y] + m.Cells[l.A].BoxHeight()
	if l.Lane == 0 {
		g.vline(ca, startA, mt.bandEnd(pa.Y))
		return
	}
	ly := mt.bend(l)
	g.vline(ca, startA, ly-1)
	g.stroke(ca, ly, "'")
	if ca < cb {
		g.hline(ca+1, cb-1, ly)
	} else {
		g.hline(cb+1, ca-1, ly)
	}
	if pb.Y > pa.Y {
		g.stroke(cb, ly, ".")
		g.vline(cb, ly+1, mt.bandEnd(l.Turn))
		return
	}
	g.stroke(cb, ly, "'")
	g.vline(cb, mt.rowY[pb.Y]+m.Cells[l.B].BoxHeight(), ly-1)
}

// drawPass draws the part of a link that crosses the board coordinate at.
// A crossing in the turn's own column or row stops short of the bend.
func (m *Map) drawPass(g *textGrid, mt *metrics, at Point, p Pass) {
	l := m.Links[p.Link]
	switch p.Kind {
	case GutterVertical:
		g.vline(mt.bend(l), mt.rowY[at.Y], mt.bandEnd(at.Y))
	case CellHorizontal:
		x1 := mt.colX[at.X+1] - 1
		if at.X == l.Turn {
			x1 = mt.bend(l) - 1
		}
		g.hline(mt.colX[at.X], x1, mt.midline(at.Y))
	case CellVertical:
		y1 := mt.bandEnd(at.Y)
		if at.Y == l.Turn {
			y1 = mt.bend(l) - 1
		}
		g.vline(mt.center(at.X), mt.rowY[at.Y], y1)
	}
}

func (m *Map) drawHeads(g *textGrid, mt *metrics, i int) {
	l := m.Links[i]
	pa, pb := m.Pos[l.A], m.Pos[l.B]
	if l.Axis == AxisRight {
		gx := mt.colX[pa.X] + mt.colW[pa.X]
		if l.HeadA {
			g.set(gx, mt.midline(pa.Y), "<")
		}
		if l.HeadB {
			if pb.X > pa.X {
				g.set(mt.colX[pb.X]-1, mt.midline(pb.Y), ">")
			} else {
				g.set(gx, mt.midline(pb.Y), "<")
			}
		}
		return
	}
	if l.HeadA {
		g.set(mt.center(pa.X), mt.rowY[pa.Y]+m.Cells[l.A].BoxHeight(), "^")
	}
	if l.HeadB {
		if pb.Y > pa.Y {
			g.set(mt.center(pb.X), mt.rowY[pb.Y]-1, "v")
		} else {
			g.set(mt.center(pb.X), mt.rowY[pb.Y]+m.Cells[l.B].BoxHeight(), "^")
		}
	}
}

// drawLabel writes an edge label next to its shaft if the space is free.
func (m *Map) drawLabel(g *textGrid, mt *metrics, i int) {
	l := m.Links[i]
	if l.Label == "" {
		return
	}
	pa, pb := m.Pos[l.A], m.Pos[l.B]
	width := textwidth.Width(l.Label)
	var x, y int
	switch {
	case l.Axis == AxisRight && l.Lane == 0:
		gx := mt.colX[pa.X] + mt.colW[pa.X]
		x = gx + (mt.gutW[pa.X]-width)/2
		y = mt.midline(pa.Y) - 1
	case l.Axis == AxisRight:
		x = mt.bend(l) + 1
		y = mt.midline(pb.Y) - 1
	case l.Lane == 0:
		x = mt.center(pa.X) + 2
		y = mt.rowY[pa.Y] + mt.rowH[pa.Y]
	default:
		x = mt.center(pb.X) + 2
		y = mt.bend(l) + 1
	}
	if g.blankRun(x, y, width) {
		g.text(x, y, l.Label)
	}
}
