package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phenixrizen/asciiflow/internal/graphview"
)

func TestFromMap(t *testing.T) {
	m := graphview.Layout("b <- a\nc[Orphan]", graphview.Options{})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	st := FromMap(m, "src", now)

	if !st.GeneratedAt.Equal(now) || st.GeneratedAt.Location() != time.UTC {
		t.Fatalf("GeneratedAt=%v want %v in UTC", st.GeneratedAt, now)
	}
	if st.Width != 2 || st.Height != 2 {
		t.Fatalf("size=%dx%d want 2x2", st.Width, st.Height)
	}
	if len(st.Components) != 2 {
		t.Fatalf("components=%d want 2", len(st.Components))
	}
	first := st.Components[0]
	if len(first.Nodes) != 2 || first.Nodes[0].ID != "b" || first.Nodes[1].ID != "a" {
		t.Fatalf("nodes=%+v want b then a", first.Nodes)
	}
	if len(first.Edges) != 1 || first.Edges[0].Dir != graphview.Left || !first.Edges[0].Resolved {
		t.Fatalf("edges=%+v", first.Edges)
	}
	second := st.Components[1]
	if second.StartRow != 1 || second.Nodes[0].Shape != graphview.Square || second.Nodes[0].Y != 1 {
		t.Fatalf("orphan component=%+v", second)
	}
	if got := len(st.Nodes()); got != 3 {
		t.Fatalf("Nodes()=%d want 3", got)
	}
}

func TestFromMapRecordsUnresolved(t *testing.T) {
	m := graphview.Layout("a -> b\na -> c", graphview.Options{ProbeLimit: 1})
	st := FromMap(m, "", time.Now())
	un := st.Undrawn()
	if len(un) != 1 || un[0].Dst != "c" || un[0].Resolved {
		t.Fatalf("Undrawn=%+v want unresolved a->c", un)
	}
	for _, n := range st.Nodes() {
		if n.ID == "c" && !n.Overflow {
			t.Fatalf("c should be marked overflow")
		}
	}
}

func TestFromMapRecordsHiddenLinks(t *testing.T) {
	m := graphview.Layout("a ---v b\nb ---v c\na ---v c", graphview.Options{})
	st := FromMap(m, "", time.Now())
	un := st.Undrawn()
	if len(un) != 1 || un[0].Src != "a" || un[0].Dst != "c" {
		t.Fatalf("Undrawn=%+v want a->c", un)
	}
	if !un[0].Resolved || !un[0].Hidden || un[0].Drawn() {
		t.Fatalf("a->c=%+v want placed but hidden", un[0])
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "layout.json")
	m := graphview.Layout("x ---v y\ny --|ok|--> z", graphview.Options{})
	st := FromMap(m, "x ---v y\ny --|ok|--> z", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	if err := Save(path, st); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !loaded.GeneratedAt.Equal(st.GeneratedAt) || loaded.Source != st.Source {
		t.Fatalf("header mismatch: %+v", loaded)
	}
	if len(loaded.Components) != 1 || len(loaded.Components[0].Edges) != 2 {
		t.Fatalf("components=%+v", loaded.Components)
	}
	var label string
	dirs := map[graphview.Direction]bool{}
	for _, e := range loaded.Components[0].Edges {
		label += e.Label
		dirs[e.Dir] = true
	}
	if label != "ok" {
		t.Fatalf("edge labels=%q want ok", label)
	}
	if !dirs[graphview.Down] || !dirs[graphview.Right] {
		t.Fatalf("edge directions=%v want down and right", dirs)
	}
}

func TestMarshalWritesNames(t *testing.T) {
	m := graphview.Layout("a[box] <-> b{ring}", graphview.Options{})
	data, err := Marshal(FromMap(m, "", time.Now()))
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	for _, want := range []string{`"dir": "double"`, `"shape": "square"`, `"shape": "circle"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("snapshot missing %s:\n%s", want, data)
		}
	}
}

func TestLoadRejectsUnknownDirection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	content := `{"components":[{"index":0,"nodes":[],"edges":[{"src":"a","dst":"b","dir":"sideways"}]}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write state: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}

func TestNormalizeSortsNodes(t *testing.T) {
	st := State{Components: []ComponentRecord{
		{Index: 1},
		{Index: 0, Nodes: []NodeRecord{{ID: "z", X: 1}, {ID: "b", Y: 1}, {ID: "a"}}},
	}}
	st.Normalize()
	if st.Components[0].Index != 0 {
		t.Fatalf("components not sorted: %+v", st.Components)
	}
	got := st.Components[0].Nodes
	if got[0].ID != "a" || got[1].ID != "z" || got[2].ID != "b" {
		t.Fatalf("nodes=%+v want a, z, b", got)
	}
	if st.Components[1].Nodes == nil || st.Components[1].Edges == nil {
		t.Fatalf("empty lists should encode as []")
	}
}
