// Package graphview turns the box-and-arrow line grammar into ASCII art.
//
// A conversion parses every line into cells and edges, groups them into
// connected components, seats each component on a grid, stacks the
// components, and draws the grid as text. It never fails: input it cannot
// make sense of degrades to plain boxes.
package graphview

import "log/slog"

// DefaultComponentGap is the number of blank lines between stacked components.
const DefaultComponentGap = 1

// Options tune a conversion. The zero value is ready to use.
type Options struct {
	// ProbeLimit bounds the collision probe; 0 sizes it to the component.
	ProbeLimit int
	// ComponentGap is the blank lines between components; negative means none.
	ComponentGap int
	Logger       *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.ComponentGap == 0 {
		o.ComponentGap = DefaultComponentGap
	}
	if o.ComponentGap < 0 {
		o.ComponentGap = 0
	}
	if o.ProbeLimit < 0 {
		o.ProbeLimit = 0
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Render converts diagram text with default options.
func Render(text string) string {
	return Convert(text, Options{})
}

// Convert converts diagram text using a fresh Map.
func Convert(text string, opts Options) string {
	return Layout(text, opts).Render()
}

// Layout parses, partitions, places and builds text without drawing it.
func Layout(text string, opts Options) *Map {
	m := NewMap(opts)
	m.Parse(text)
	m.Partition()
	m.Layout()
	m.Build()
	return m
}
