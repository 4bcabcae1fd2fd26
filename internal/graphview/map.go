package graphview

import (
	"log/slog"
	"strings"
)

// Map owns everything one conversion produces. Build a new one per input.
type Map struct {
	Cells      []*Cell
	Edges      []Edge
	Components []*Graph
	// Starts holds the first map row of each component.
	Starts []int
	W, H   int
	Pos    []Point
	Canvas Canvas
	Links  []Link
	Board  Board

	opts     Options
	log      *slog.Logger
	index    map[string]int
	edgeKeys map[string]struct{}
}

func NewMap(opts Options) *Map {
	opts = opts.withDefaults()
	return &Map{
		opts:     opts,
		log:      opts.Logger,
		index:    map[string]int{},
		edgeKeys: map[string]struct{}{},
		Board:    Board{},
	}
}

// Cell returns the cell registered under id, or nil.
func (m *Map) Cell(id string) *Cell {
	if i, ok := m.index[id]; ok {
		return m.Cells[i]
	}
	return nil
}

// Index returns the arena index of id, or -1.
func (m *Map) Index(id string) int {
	if i, ok := m.index[id]; ok {
		return i
	}
	return -1
}

// Parse runs the parser over every non-blank line of text.
func (m *Map) Parse(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m.AddStatement(ParseLine(line))
	}
}

// AddStatement registers the statement's cells (first write wins) and edges.
func (m *Map) AddStatement(st Statement) {
	for _, c := range st.Nodes {
		m.addCell(c)
	}
	for _, e := range st.Edges {
		m.addEdge(e)
	}
}

func (m *Map) addCell(c *Cell) int {
	if i, ok := m.index[c.ID]; ok {
		return i
	}
	m.index[c.ID] = len(m.Cells)
	m.Cells = append(m.Cells, c)
	return len(m.Cells) - 1
}

func (m *Map) addEdge(e Edge) {
	if e.SelfLoop() {
		m.log.Debug("self loop dropped", "id", e.Src)
		return
	}
	if _, ok := m.edgeKeys[e.Key()]; ok {
		m.log.Debug("duplicate edge dropped", "edge", e.String())
		return
	}
	m.edgeKeys[e.Key()] = struct{}{}
	m.Edges = append(m.Edges, e)
}

// Partition groups cells into connected components. Orphan cells become
// singleton components after every edge has been seen.
func (m *Map) Partition() {
	m.Components = nil
	owner := map[int]int{}
	for _, e := range m.Edges {
		src, dst := m.index[e.Src], m.index[e.Dst]
		cs, okSrc := owner[src]
		cd, okDst := owner[dst]
		switch {
		case !okSrc && !okDst:
			g := NewGraph(m.opts.ProbeLimit, m.log)
			g.AddEdge(e, src, dst)
			m.Components = append(m.Components, g)
			owner[src] = len(m.Components) - 1
			owner[dst] = len(m.Components) - 1
		case okSrc && !okDst:
			m.Components[cs].AddEdge(e, src, dst)
			owner[dst] = cs
		case !okSrc && okDst:
			m.Components[cd].AddEdge(e, src, dst)
			owner[src] = cd
		case cs != cd:
			lo, hi := min(cs, cd), max(cs, cd)
			m.Components[lo].Merge(m.Components[hi])
			m.Components = append(m.Components[:hi], m.Components[hi+1:]...)
			for cell, c := range owner {
				switch {
				case c == hi:
					owner[cell] = lo
				case c > hi:
					owner[cell] = c - 1
				}
			}
			m.Components[lo].AddEdge(e, src, dst)
		default:
			m.Components[cs].AddEdge(e, src, dst)
		}
	}
	for i := range m.Cells {
		if _, ok := owner[i]; ok {
			continue
		}
		g := NewGraph(m.opts.ProbeLimit, m.log)
		g.Add(i)
		m.Components = append(m.Components, g)
		owner[i] = len(m.Components) - 1
	}
}

// Layout places every component and stacks them top to bottom.
func (m *Map) Layout() {
	m.Pos = make([]Point, len(m.Cells))
	m.Starts = m.Starts[:0]
	m.W, m.H = 0, 0
	for _, g := range m.Components {
		g.Place()
		m.Starts = append(m.Starts, m.H)
		for _, n := range g.Nodes {
			m.Pos[n.Cell] = Point{X: n.X, Y: n.Y + m.H}
		}
		m.W = max(m.W, g.Width())
		m.H += g.Height()
	}
}

// Build fills the canvas, flattens placed edges into links and records every
// coordinate a link crosses without ending there.
func (m *Map) Build() {
	m.Canvas = newCanvas(m.W+1, m.H+1)
	for i, p := range m.Pos {
		m.Canvas[p.Y][p.X] = i
	}
	m.Links = m.Links[:0]
	m.Board = Board{}
	for ci, g := range m.Components {
		for slot := range g.Nodes {
			n := &g.Nodes[slot]
			turns := 0
			for _, ec := range n.RightEdges {
				l := m.newLink(ci, g, n, ec, AxisRight)
				m.route(&l)
				if !l.Hidden && m.rightTurns(l) {
					turns++
					l.Lane = turns
				}
				m.addLink(l)
			}
			turns = 0
			for _, ec := range n.DownEdges {
				l := m.newLink(ci, g, n, ec, AxisDown)
				m.route(&l)
				if !l.Hidden && m.downTurns(l) {
					turns++
					l.Lane = turns
				}
				m.addLink(l)
			}
		}
	}
}

func (m *Map) newLink(component int, g *Graph, n *PlacedNode, ec EdgeCell, axis Axis) Link {
	near, far := n.Cell, g.Neighbor(ec).Cell
	l := Link{
		Axis:      axis,
		A:         near,
		B:         far,
		HeadA:     ec.Dir.HeadAtSource(),
		HeadB:     ec.Dir.HeadAtTarget(),
		Label:     g.Edges[ec.Edge].Label,
		Component: component,
		Edge:      ec.Edge,
	}
	pa, pb := m.Pos[near], m.Pos[far]
	swap := pb.X < pa.X
	if axis == AxisDown {
		swap = pb.Y < pa.Y
	}
	if swap {
		l.A, l.B = l.B, l.A
		l.HeadA, l.HeadB = l.HeadB, l.HeadA
	}
	return l
}

// route picks the gutter a link bends in. The far run normally follows B's
// row or column; when a box sits on it the link bends next to B instead, and
// a link with neither run clear is hidden.
func (m *Map) route(l *Link) {
	pa, pb := m.Pos[l.A], m.Pos[l.B]
	if l.Axis == AxisRight {
		l.Turn = pa.X
		switch {
		case m.clearRow(pb.Y, pa.X+1, pb.X-1):
		case pa.Y != pb.Y && m.clearRow(pa.Y, pa.X+1, pb.X-1):
			l.Turn = pb.X - 1
		default:
			l.Hidden = true
		}
	} else {
		l.Turn = pa.Y
		switch {
		case m.clearColumn(pb.X, pa.Y+1, pb.Y-1):
		case pa.X != pb.X && m.clearColumn(pa.X, pa.Y+1, pb.Y-1):
			l.Turn = pb.Y - 1
		default:
			l.Hidden = true
		}
	}
	if l.Hidden {
		m.log.Debug("link hidden behind a box", "from", m.Cells[l.A].ID, "to", m.Cells[l.B].ID)
	}
}

func (m *Map) clearRow(y, x0, x1 int) bool {
	for x := x0; x <= x1; x++ {
		if m.Canvas.At(x, y) != Empty {
			return false
		}
	}
	return true
}

func (m *Map) clearColumn(x, y0, y1 int) bool {
	for y := y0; y <= y1; y++ {
		if m.Canvas.At(x, y) != Empty {
			return false
		}
	}
	return true
}

func (m *Map) rightTurns(l Link) bool {
	pa, pb := m.Pos[l.A], m.Pos[l.B]
	return pa.Y != pb.Y || pa.X == pb.X
}

func (m *Map) downTurns(l Link) bool {
	pa, pb := m.Pos[l.A], m.Pos[l.B]
	return pa.X != pb.X || pa.Y == pb.Y
}

// addLink stores l and records the coordinates it crosses. Runs before the
// turn follow A's row or column, runs after it follow B's.
func (m *Map) addLink(l Link) {
	idx := len(m.Links)
	m.Links = append(m.Links, l)
	if l.Hidden {
		return
	}
	pa, pb := m.Pos[l.A], m.Pos[l.B]
	if l.Axis == AxisRight {
		for y := min(pa.Y, pb.Y) + 1; y < max(pa.Y, pb.Y); y++ {
			m.Board.add(Point{X: l.Turn, Y: y}, Pass{Link: idx, Kind: GutterVertical})
		}
		for x := pa.X + 1; x < pb.X; x++ {
			y := pb.Y
			if x <= l.Turn {
				y = pa.Y
			}
			m.Board.add(Point{X: x, Y: y}, Pass{Link: idx, Kind: CellHorizontal})
		}
		return
	}
	for y := pa.Y + 1; y < pb.Y; y++ {
		x := pb.X
		if y <= l.Turn {
			x = pa.X
		}
		m.Board.add(Point{X: x, Y: y}, Pass{Link: idx, Kind: CellVertical})
	}
}

// Undrawn lists the edges that appear nowhere in the output: those placement
// left unresolved and those whose link is hidden.
func (m *Map) Undrawn() []Edge {
	var out []Edge
	for _, g := range m.Components {
		for _, i := range g.Unresolved {
			out = append(out, g.Edges[i])
		}
	}
	for _, l := range m.Links {
		if l.Hidden {
			out = append(out, m.Components[l.Component].Edges[l.Edge])
		}
	}
	return out
}

// ComponentOf returns the index of the component that owns cell, or -1.
func (m *Map) ComponentOf(cell int) int {
	for i, g := range m.Components {
		if g.Has(cell) {
			return i
		}
	}
	return -1
}
