package tableview

import (
	"strings"
	"testing"

	"github.com/phenixrizen/asciiflow/internal/graphview"
	"github.com/phenixrizen/asciiflow/internal/state"
	"github.com/phenixrizen/asciiflow/internal/textwidth"
)

func TestRenderNodesAlignsWideLabels(t *testing.T) {
	out := RenderNodes([]state.ComponentRecord{{
		Index: 0,
		Nodes: []state.NodeRecord{
			{ID: "a", Label: "漢字", Shape: graphview.Round, Level: 1},
			{ID: "bb", Label: "two\nlines", Shape: graphview.Square, X: 1, Level: 3, Overflow: true},
		},
	}})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%d want 3:\n%s", len(lines), out)
	}
	col := func(line, field string) int {
		i := strings.Index(line, field)
		if i < 0 {
			t.Fatalf("%q not in %q", field, line)
		}
		return textwidth.Width(line[:i])
	}
	want := col(lines[0], "Shape")
	if got := col(lines[1], "round"); got != want {
		t.Fatalf("round at cell %d want %d\n%s", got, want, out)
	}
	if got := col(lines[2], "square"); got != want {
		t.Fatalf("square at cell %d want %d\n%s", got, want, out)
	}
	if !strings.Contains(lines[2], "two / lines") || !strings.HasSuffix(lines[2], "overflow") {
		t.Fatalf("row=%q", lines[2])
	}
}

func TestRenderEdges(t *testing.T) {
	out := RenderEdges([]state.ComponentRecord{{
		Index: 2,
		Edges: []state.EdgeRecord{
			{Src: "a", Dst: "b", Dir: graphview.Right, Resolved: true},
			{Src: "a", Dst: "c", Dir: graphview.Down, Label: "no room"},
			{Src: "b", Dst: "d", Dir: graphview.Down, Resolved: true, Hidden: true},
		},
	}})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines=%d want 4", len(lines))
	}
	if !strings.HasSuffix(lines[1], "yes") || !strings.HasSuffix(lines[2], "no") || !strings.HasSuffix(lines[3], "no") {
		t.Fatalf("drawn column wrong:\n%s", out)
	}
	if !strings.Contains(lines[1], "right") || !strings.Contains(lines[3], "down") {
		t.Fatalf("direction column wrong:\n%s", out)
	}
	if !strings.HasPrefix(lines[1], "2 ") {
		t.Fatalf("component column wrong: %q", lines[1])
	}
}
