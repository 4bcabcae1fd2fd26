package graphview

// Empty marks a canvas slot with no node.
const Empty = -1

// Link is a placed edge in map coordinates. A is the left (right-like axis) or
// top (down-like axis) end; on ties A is the node that anchored the edge.
type Link struct {
	Axis  Axis
	A, B  int
	HeadA bool
	HeadB bool
	Label string
	// Lane is the gutter offset of the turn, 0 for straight links.
	Lane int
	// Turn is the column (right-like) or row (down-like) whose gutter holds
	// the bend. It is A's unless that route would run behind a box.
	Turn int
	// Hidden links have no route clear of boxes and are not drawn.
	Hidden bool
	// Component and Edge locate the edge the link was built from.
	Component int
	Edge      int
}

// PassKind says how a link crosses a board coordinate.
type PassKind int

const (
	// GutterVertical is the vertical run of a right-like link inside the
	// gutter to the right of the coordinate.
	GutterVertical PassKind = iota
	// CellHorizontal is a right-like link crossing the cell and its gutter.
	CellHorizontal
	// CellVertical is a down-like link crossing the cell and its gutter below.
	CellVertical
)

// Pass is one link crossing a coordinate without ending there.
type Pass struct {
	Link int
	Kind PassKind
}

// Board maps coordinates to the links passing through them.
type Board map[Point][]Pass

func (b Board) add(at Point, p Pass) {
	b[at] = append(b[at], p)
}

// Canvas is the finished grid of cell indices, Empty where no node sits.
type Canvas [][]int

func newCanvas(w, h int) Canvas {
	c := make(Canvas, h)
	for y := range c {
		c[y] = make([]int, w)
		for x := range c[y] {
			c[y][x] = Empty
		}
	}
	return c
}

func (c Canvas) At(x, y int) int {
	if y < 0 || y >= len(c) || x < 0 || x >= len(c[y]) {
		return Empty
	}
	return c[y][x]
}

func (c Canvas) Width() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

func (c Canvas) Height() int {
	return len(c)
}
