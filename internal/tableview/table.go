package tableview

import (
	"fmt"
	"strings"

	"github.com/phenixrizen/asciiflow/internal/state"
	"github.com/phenixrizen/asciiflow/internal/textwidth"
)

// RenderNodes lists the nodes of every component. Columns are padded by
// display width so wide labels stay aligned.
func RenderNodes(components []state.ComponentRecord) string {
	rows := [][]string{{"Component", "ID", "Label", "Shape", "X", "Y", "Level"}}
	for _, c := range components {
		for _, n := range c.Nodes {
			level := fmt.Sprint(n.Level)
			if n.Overflow {
				level = "overflow"
			}
			rows = append(rows, []string{
				fmt.Sprint(c.Index),
				n.ID,
				flatten(n.Label),
				n.Shape.String(),
				fmt.Sprint(n.X),
				fmt.Sprint(n.Y),
				level,
			})
		}
	}
	return render(rows)
}

func RenderEdges(components []state.ComponentRecord) string {
	rows := [][]string{{"Component", "Source", "Target", "Direction", "Label", "Drawn"}}
	for _, c := range components {
		for _, e := range c.Edges {
			drawn := "yes"
			if !e.Drawn() {
				drawn = "no"
			}
			rows = append(rows, []string{fmt.Sprint(c.Index), e.Src, e.Dst, e.Dir.String(), e.Label, drawn})
		}
	}
	return render(rows)
}

func flatten(label string) string {
	return strings.ReplaceAll(label, "\n", " / ")
}

func render(rows [][]string) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], textwidth.Width(cell))
		}
	}
	var b strings.Builder
	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(textwidth.PadRight(cell, widths[i]))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
