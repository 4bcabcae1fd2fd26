package graphview

import (
	"log/slog"
	"sort"
)

// Point is a grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EdgeCell records one placed edge on the node that anchored it. Neighbor is
// a slot in Graph.Nodes, so its position is always read live.
type EdgeCell struct {
	Neighbor int
	Dir      Direction
	Edge     int
}

// PlacedNode is a member's grid seat.
type PlacedNode struct {
	Cell       int
	X, Y       int
	Level      int
	Locked     bool
	RightEdges []EdgeCell
	DownEdges  []EdgeCell
}

func (n *PlacedNode) Point() Point {
	return Point{X: n.X, Y: n.Y}
}

// Graph is one connected component and its placement.
type Graph struct {
	Nodes      []PlacedNode
	Edges      []Edge
	Unresolved []int
	// Overflow lists slots that no edge could seat.
	Overflow []int

	limit    int
	slots    map[int]int
	ends     [][2]int
	keys     map[string]struct{}
	resolved []bool
	occupied map[Point]int
	log      *slog.Logger
}

// NewGraph returns an empty component. A limit <= 0 probes members+1 slots.
func NewGraph(limit int, logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Graph{
		limit:    limit,
		slots:    map[int]int{},
		keys:     map[string]struct{}{},
		occupied: map[Point]int{},
		log:      logger,
	}
}

// Add makes cell a member; it is a no-op for existing members.
func (g *Graph) Add(cell int) int {
	if slot, ok := g.slots[cell]; ok {
		return slot
	}
	g.slots[cell] = len(g.Nodes)
	g.Nodes = append(g.Nodes, PlacedNode{Cell: cell})
	return len(g.Nodes) - 1
}

func (g *Graph) Has(cell int) bool {
	_, ok := g.slots[cell]
	return ok
}

// AddEdge adds e between the member cells src and dst, adding them if needed.
// Duplicates and self loops are ignored.
func (g *Graph) AddEdge(e Edge, src, dst int) bool {
	if src == dst {
		return false
	}
	if _, ok := g.keys[e.Key()]; ok {
		return false
	}
	g.keys[e.Key()] = struct{}{}
	g.Edges = append(g.Edges, e)
	g.ends = append(g.ends, [2]int{g.Add(src), g.Add(dst)})
	return true
}

// Merge absorbs every member and edge of other.
func (g *Graph) Merge(other *Graph) {
	for _, n := range other.Nodes {
		g.Add(n.Cell)
	}
	for i, e := range other.Edges {
		src := other.Nodes[other.ends[i][0]].Cell
		dst := other.Nodes[other.ends[i][1]].Cell
		g.AddEdge(e, src, dst)
	}
}

// Members returns the member cell indices in insertion order.
func (g *Graph) Members() []int {
	out := make([]int, len(g.Nodes))
	for i, n := range g.Nodes {
		out[i] = n.Cell
	}
	return out
}

func (g *Graph) Limit() int {
	if g.limit > 0 {
		return g.limit
	}
	return len(g.Nodes) + 1
}

// Neighbor dereferences an edge cell.
func (g *Graph) Neighbor(ec EdgeCell) *PlacedNode {
	return &g.Nodes[ec.Neighbor]
}

func (g *Graph) Width() int {
	w := 0
	for _, n := range g.Nodes {
		if n.Locked && n.X+1 > w {
			w = n.X + 1
		}
	}
	return w
}

func (g *Graph) Height() int {
	h := 0
	for _, n := range g.Nodes {
		if n.Locked && n.Y+1 > h {
			h = n.Y + 1
		}
	}
	return h
}

// Place seats every member on the grid. It is deterministic for a given
// member and edge order.
func (g *Graph) Place() {
	g.reset()
	if len(g.Nodes) == 0 {
		return
	}
	if len(g.Edges) == 0 {
		for i := range g.Nodes {
			g.lock(i, Point{X: 0, Y: i}, 1)
		}
		return
	}

	g.lock(g.ends[0][0], Point{}, 1)
	for pass := 0; pass < len(g.Edges); pass++ {
		for i := range g.Edges {
			if !g.resolved[i] {
				g.resolved[i] = g.seat(i)
			}
		}
		if g.unlocked() == 0 {
			break
		}
	}
	g.settle()
	g.overflow()

	for i, ok := range g.resolved {
		if !ok {
			g.Unresolved = append(g.Unresolved, i)
			g.log.Debug("edge left unresolved", "edge", g.Edges[i].String())
		}
	}
}

func (g *Graph) reset() {
	for i := range g.Nodes {
		cell := g.Nodes[i].Cell
		g.Nodes[i] = PlacedNode{Cell: cell}
	}
	g.resolved = make([]bool, len(g.Edges))
	g.occupied = map[Point]int{}
	g.Unresolved = nil
	g.Overflow = nil
}

func (g *Graph) unlocked() int {
	count := 0
	for _, n := range g.Nodes {
		if !n.Locked {
			count++
		}
	}
	return count
}

func (g *Graph) lock(slot int, at Point, level int) {
	n := &g.Nodes[slot]
	n.X, n.Y = at.X, at.Y
	n.Level = level
	n.Locked = true
	g.occupied[at] = slot
}

// seat tries to place the unlocked end of edge i next to its locked end.
func (g *Graph) seat(i int) bool {
	anchor, far := g.ends[i][0], g.ends[i][1]
	dir := g.Edges[i].Dir
	negated := false
	if !g.Nodes[anchor].Locked {
		if !g.Nodes[far].Locked {
			return false
		}
		anchor, far = far, anchor
		dir = dir.Flip()
		negated = true
	}
	if g.Nodes[far].Locked {
		g.link(anchor, far, dir, i)
		return true
	}

	step := 1
	if negated {
		step = -1
	}
	var target, probe Point
	if dir.Axis() == AxisRight {
		if g.Nodes[anchor].X+step < 0 {
			g.shift(1, 0)
		}
		if g.Nodes[anchor].Y+dir.RowOffset() < 0 {
			g.shift(0, 1)
		}
		a := g.Nodes[anchor]
		target = Point{X: a.X + step, Y: a.Y + dir.RowOffset()}
		probe = Point{Y: 1}
	} else {
		if g.Nodes[anchor].Y+step < 0 {
			g.shift(0, 1)
		}
		a := g.Nodes[anchor]
		target = Point{X: a.X, Y: a.Y + step}
		probe = Point{X: 1}
	}

	for p := 0; p < g.Limit(); p++ {
		at := Point{X: target.X + p*probe.X, Y: target.Y + p*probe.Y}
		if _, taken := g.occupied[at]; taken {
			continue
		}
		g.lock(far, at, 1+2*p)
		g.link(anchor, far, dir, i)
		return true
	}
	return false
}

func (g *Graph) link(anchor, far int, dir Direction, edge int) {
	ec := EdgeCell{Neighbor: far, Dir: dir, Edge: edge}
	n := &g.Nodes[anchor]
	if dir.Axis() == AxisRight {
		n.RightEdges = append(n.RightEdges, ec)
	} else {
		n.DownEdges = append(n.DownEdges, ec)
	}
}

// shift moves every placed member by (dx, dy).
func (g *Graph) shift(dx, dy int) {
	g.occupied = make(map[Point]int, len(g.occupied))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if !n.Locked {
			continue
		}
		n.X += dx
		n.Y += dy
		g.occupied[n.Point()] = i
	}
}

// settle registers edges whose ends were both seated by other edges.
func (g *Graph) settle() {
	for i := range g.Edges {
		if g.resolved[i] {
			continue
		}
		src, dst := g.ends[i][0], g.ends[i][1]
		if g.Nodes[src].Locked && g.Nodes[dst].Locked {
			g.link(src, dst, g.Edges[i].Dir, i)
			g.resolved[i] = true
		}
	}
}

// overflow seats members that no edge reached on a fresh row below the
// component.
func (g *Graph) overflow() {
	row := g.Height()
	col := 0
	for i := range g.Nodes {
		if g.Nodes[i].Locked {
			continue
		}
		g.lock(i, Point{X: col, Y: row}, 0)
		g.Overflow = append(g.Overflow, i)
		g.log.Debug("member placed on overflow row", "slot", i, "x", col, "y", row)
		col++
	}
}

// Collisions returns every pair of slots sharing a coordinate.
func (g *Graph) Collisions() [][2]int {
	seen := map[Point]int{}
	var out [][2]int
	for i, n := range g.Nodes {
		if !n.Locked {
			continue
		}
		if j, ok := seen[n.Point()]; ok {
			out = append(out, [2]int{j, i})
			continue
		}
		seen[n.Point()] = i
	}
	sort.Slice(out, func(a, b int) bool { return out[a][0] < out[b][0] })
	return out
}
