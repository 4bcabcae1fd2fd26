package graphview

import "testing"

func TestMapFirstDefinitionWins(t *testing.T) {
	m := NewMap(Options{})
	m.Parse("a[first]\na{second} -> b")
	c := m.Cell("a")
	if c == nil || c.Label != "first" || c.Shape != Square {
		t.Fatalf("cell a=%+v want first/square", c)
	}
	if len(m.Cells) != 2 || len(m.Edges) != 1 {
		t.Fatalf("cells=%d edges=%d want 2/1", len(m.Cells), len(m.Edges))
	}
}

func TestMapDropsSelfLoopsAndDuplicates(t *testing.T) {
	m := NewMap(Options{})
	m.Parse("a -> a\na -> b\r\na -> b\na <- b")
	if len(m.Cells) != 2 {
		t.Fatalf("cells=%d want 2", len(m.Cells))
	}
	if len(m.Edges) != 2 {
		t.Fatalf("edges=%v want right and left", m.Edges)
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		members []int
		edges   []int
	}{
		{name: "single", text: "a", members: []int{1}, edges: []int{0}},
		{name: "disjoint", text: "a -> b\nc -> d", members: []int{2, 2}, edges: []int{1, 1}},
		{name: "join", text: "a -> b\nc -> d\nb -> c", members: []int{4}, edges: []int{3}},
		{name: "join into lower", text: "a -> b\nc -> d\nd -> a", members: []int{4}, edges: []int{3}},
		{
			name:    "renumbers after merge",
			text:    "a -> b\nc -> d\ne -> f\nd -> a\ne -> b",
			members: []int{6},
			edges:   []int{5},
		},
		{name: "orphans last", text: "z\na -> b\ny", members: []int{2, 1, 1}, edges: []int{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMap(Options{})
			m.Parse(tt.text)
			m.Partition()
			if len(m.Components) != len(tt.members) {
				t.Fatalf("components=%d want %d", len(m.Components), len(tt.members))
			}
			for i, g := range m.Components {
				if len(g.Members()) != tt.members[i] || len(g.Edges) != tt.edges[i] {
					t.Fatalf("component %d: members=%d edges=%d want %d/%d",
						i, len(g.Members()), len(g.Edges), tt.members[i], tt.edges[i])
				}
			}
		})
	}
}

func TestPartitionCoversEveryCellOnce(t *testing.T) {
	m := NewMap(Options{})
	m.Parse("a -> b\nc\nd -> e\ne ---v a\nf")
	m.Partition()
	for i := range m.Cells {
		owners := 0
		for _, g := range m.Components {
			if g.Has(i) {
				owners++
			}
		}
		if owners != 1 {
			t.Fatalf("cell %q owned by %d components", m.Cells[i].ID, owners)
		}
	}
	if got := m.ComponentOf(m.Index("f")); got != 2 {
		t.Fatalf("ComponentOf(f)=%d want 2", got)
	}
	if got := m.ComponentOf(99); got != -1 {
		t.Fatalf("ComponentOf(99)=%d want -1", got)
	}
}

func TestLayoutStacksComponents(t *testing.T) {
	m := Layout("a -> b\nc ---v d\ne", Options{})
	if len(m.Starts) != 3 || m.Starts[0] != 0 || m.Starts[1] != 1 || m.Starts[2] != 3 {
		t.Fatalf("Starts=%v want [0 1 3]", m.Starts)
	}
	if m.W != 2 || m.H != 4 {
		t.Fatalf("size=%dx%d want 2x4", m.W, m.H)
	}
	want := map[string]Point{"a": {0, 0}, "b": {1, 0}, "c": {0, 1}, "d": {0, 2}, "e": {0, 3}}
	for id, p := range want {
		if got := m.Pos[m.Index(id)]; got != p {
			t.Fatalf("%s at %+v want %+v", id, got, p)
		}
	}
}

func TestBuildCanvasAndLinks(t *testing.T) {
	m := Layout("a -> b\nb ---v c", Options{})
	if m.Canvas.Width() != m.W+1 || m.Canvas.Height() != m.H+1 {
		t.Fatalf("canvas %dx%d want %dx%d", m.Canvas.Width(), m.Canvas.Height(), m.W+1, m.H+1)
	}
	if got := m.Canvas.At(1, 1); got != m.Index("c") {
		t.Fatalf("canvas(1,1)=%d want c", got)
	}
	if got := m.Canvas.At(0, 1); got != Empty {
		t.Fatalf("canvas(0,1)=%d want empty", got)
	}
	if got := m.Canvas.At(-1, 0); got != Empty {
		t.Fatalf("out of range At=%d want empty", got)
	}
	if len(m.Links) != 2 {
		t.Fatalf("links=%d want 2", len(m.Links))
	}
	for _, l := range m.Links {
		if l.Lane != 0 {
			t.Fatalf("straight link got lane %d", l.Lane)
		}
		if l.HeadA || !l.HeadB {
			t.Fatalf("link %+v should only point at B", l)
		}
	}
}

func TestBuildSwapsLinkEnds(t *testing.T) {
	m := Layout("a -> b\nc -> a", Options{})
	var found bool
	for _, l := range m.Links {
		if l.B == m.Index("a") {
			found = true
			if l.A != m.Index("c") || l.HeadA || !l.HeadB {
				t.Fatalf("link into a = %+v", l)
			}
		}
	}
	if !found {
		t.Fatalf("no link ends at a: %+v", m.Links)
	}
}

func TestBuildRecordsPassThroughs(t *testing.T) {
	tests := []struct {
		name string
		text string
		at   Point
		kind PassKind
	}{
		{name: "horizontal", text: "a -> b -> c\nc ---v d\na ---v e\ne -> d", at: Point{1, 1}, kind: CellHorizontal},
		{name: "vertical", text: "a ---v b\nb ---v c\nc <- d\na ---v d", at: Point{1, 1}, kind: CellVertical},
		{name: "gutter", text: "a -> b\na -> c\na -> d", at: Point{0, 1}, kind: GutterVertical},
		{name: "late bend", text: "a ---v b\nb ---v c\na -> d\nd ---v c", at: Point{1, 1}, kind: CellVertical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Layout(tt.text, Options{})
			passes := m.Board[tt.at]
			if len(passes) != 1 || passes[0].Kind != tt.kind {
				t.Fatalf("board at %+v=%+v want one %v pass", tt.at, passes, tt.kind)
			}
			if passes[0].Link < 0 || passes[0].Link >= len(m.Links) {
				t.Fatalf("pass refers to link %d", passes[0].Link)
			}
		})
	}
}

func TestBuildRoutesAroundBoxes(t *testing.T) {
	m := Layout("a ---v b\nb ---v c\na -> d\nd ---v c", Options{})
	var l *Link
	for i := range m.Links {
		if m.Links[i].A == m.Index("d") {
			l = &m.Links[i]
		}
	}
	if l == nil {
		t.Fatalf("no link from d: %+v", m.Links)
	}
	if l.Hidden || l.Turn != 1 || l.Lane != 1 {
		t.Fatalf("d->c=%+v want a visible bend in row 1", *l)
	}
	if len(m.Undrawn()) != 0 {
		t.Fatalf("Undrawn=%+v want none", m.Undrawn())
	}
}

func TestBuildHidesBlockedLinks(t *testing.T) {
	m := Layout("a -> b\nb -> c\na -> c", Options{})
	hidden := 0
	for _, l := range m.Links {
		if l.Hidden {
			hidden++
			if l.Lane != 0 || l.A != m.Index("a") || l.B != m.Index("c") {
				t.Fatalf("hidden link=%+v want a->c without a lane", l)
			}
		}
	}
	if hidden != 1 {
		t.Fatalf("hidden=%d want 1", hidden)
	}
	if len(m.Board) != 0 {
		t.Fatalf("board=%v want no passes", m.Board)
	}
}

func TestTurningLinksGetLanes(t *testing.T) {
	m := Layout("a -> b\na -> c\na -> d", Options{})
	lanes := map[int]bool{}
	for _, l := range m.Links {
		if l.Lane > 0 {
			lanes[l.Lane] = true
		}
	}
	if !lanes[1] || !lanes[2] || len(lanes) != 2 {
		t.Fatalf("lanes=%v want 1 and 2", lanes)
	}
}
