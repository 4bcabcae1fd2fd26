package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/phenixrizen/asciiflow/internal/graphview"
)

type NodeRecord struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Shape graphview.Shape `json:"shape"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Level int    `json:"level"`
	// Overflow marks nodes no edge could seat.
	Overflow bool `json:"overflow,omitempty"`
}

type EdgeRecord struct {
	Src      string              `json:"src"`
	Dst      string              `json:"dst"`
	Dir      graphview.Direction `json:"dir"`
	Label    string              `json:"label,omitempty"`
	Resolved bool                `json:"resolved"`
	// Hidden marks placed edges with no route clear of boxes.
	Hidden bool `json:"hidden,omitempty"`
}

// Drawn reports whether the edge shows up in the rendered output.
func (e EdgeRecord) Drawn() bool {
	return e.Resolved && !e.Hidden
}

type ComponentRecord struct {
	Index    int          `json:"index"`
	StartRow int          `json:"start_row"`
	Nodes    []NodeRecord `json:"nodes"`
	Edges    []EdgeRecord `json:"edges"`
}

// State is a snapshot of a finished layout.
type State struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Source      string            `json:"source"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Components  []ComponentRecord `json:"components"`
	// Output is the rendered diagram, when the snapshot was taken for it.
	Output string `json:"output,omitempty"`
}

// FromMap captures the layout of m in map coordinates.
func FromMap(m *graphview.Map, source string, now time.Time) State {
	st := State{
		GeneratedAt: now.UTC(),
		Source:      source,
		Width:       m.W,
		Height:      m.H,
		Components:  make([]ComponentRecord, 0, len(m.Components)),
	}
	hidden := map[[2]int]bool{}
	for _, l := range m.Links {
		if l.Hidden {
			hidden[[2]int{l.Component, l.Edge}] = true
		}
	}
	for ci, g := range m.Components {
		rec := ComponentRecord{Index: ci}
		if ci < len(m.Starts) {
			rec.StartRow = m.Starts[ci]
		}
		overflow := map[int]bool{}
		for _, slot := range g.Overflow {
			overflow[slot] = true
		}
		for slot, n := range g.Nodes {
			c := m.Cells[n.Cell]
			p := m.Pos[n.Cell]
			rec.Nodes = append(rec.Nodes, NodeRecord{
				ID:       c.ID,
				Label:    c.Label,
				Shape:    c.Shape,
				X:        p.X,
				Y:        p.Y,
				Level:    n.Level,
				Overflow: overflow[slot],
			})
		}
		unresolved := map[int]bool{}
		for _, i := range g.Unresolved {
			unresolved[i] = true
		}
		for i, e := range g.Edges {
			rec.Edges = append(rec.Edges, EdgeRecord{
				Src:      e.Src,
				Dst:      e.Dst,
				Dir:      e.Dir,
				Label:    e.Label,
				Resolved: !unresolved[i],
				Hidden:   hidden[[2]int{ci, i}],
			})
		}
		st.Components = append(st.Components, rec)
	}
	st.Normalize()
	return st
}

// Nodes flattens every component's nodes.
func (s State) Nodes() []NodeRecord {
	var out []NodeRecord
	for _, c := range s.Components {
		out = append(out, c.Nodes...)
	}
	return out
}

// Undrawn lists the edges missing from the rendered output.
func (s State) Undrawn() []EdgeRecord {
	var out []EdgeRecord
	for _, c := range s.Components {
		for _, e := range c.Edges {
			if !e.Drawn() {
				out = append(out, e)
			}
		}
	}
	return out
}

func (s *State) Normalize() {
	sort.SliceStable(s.Components, func(i, j int) bool {
		return s.Components[i].Index < s.Components[j].Index
	})
	for ci := range s.Components {
		c := &s.Components[ci]
		if c.Nodes == nil {
			c.Nodes = []NodeRecord{}
		}
		if c.Edges == nil {
			c.Edges = []EdgeRecord{}
		}
		sort.SliceStable(c.Nodes, func(i, j int) bool {
			a, b := c.Nodes[i], c.Nodes[j]
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			if a.X != b.X {
				return a.X < b.X
			}
			return a.ID < b.ID
		})
		sort.SliceStable(c.Edges, func(i, j int) bool {
			left := strings.Join([]string{c.Edges[i].Src, c.Edges[i].Dst, c.Edges[i].Dir.String()}, "|")
			right := strings.Join([]string{c.Edges[j].Src, c.Edges[j].Dst, c.Edges[j].Dir.String()}, "|")
			return left < right
		})
	}
}

func Load(path string) (State, error) {
	var s State
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse state: %w", err)
	}
	s.Normalize()
	return s, nil
}

// Marshal encodes s the way Save writes it.
func Marshal(s State) ([]byte, error) {
	s.Normalize()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func Save(path string, s State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
