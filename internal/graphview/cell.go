package graphview

import (
	"fmt"
	"strings"

	"github.com/phenixrizen/asciiflow/internal/textwidth"
)

// Shape is the border style of a box.
type Shape int

const (
	Round Shape = iota
	Square
	Circle
)

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	switch string(text) {
	case "round":
		*s = Round
	case "square":
		*s = Square
	case "circle":
		*s = Circle
	default:
		return fmt.Errorf("unknown shape %q", text)
	}
	return nil
}

func (s Shape) String() string {
	switch s {
	case Square:
		return "square"
	case Circle:
		return "circle"
	default:
		return "round"
	}
}

// Cell is the visual box of one node.
type Cell struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Lines  []string `json:"-"`
	Width  int      `json:"-"`
	Height int      `json:"-"`
	Shape  Shape    `json:"shape"`
}

// NewCell trims id and label and measures the label. A literal `\n` in the
// label starts a new line.
func NewCell(id, label string, shape Shape) *Cell {
	label = strings.TrimSpace(strings.ReplaceAll(label, `\n`, "\n"))
	lines := strings.Split(label, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return &Cell{
		ID:     strings.TrimSpace(id),
		Label:  label,
		Lines:  lines,
		Width:  textwidth.MaxWidth(lines),
		Height: len(lines),
		Shape:  shape,
	}
}

func (c *Cell) Equal(other *Cell) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.ID == other.ID && c.Label == other.Label
}

// BoxWidth is the narrowest column that fits the box: border plus one space
// of padding on each side.
func (c *Cell) BoxWidth() int {
	return c.Width + 4
}

func (c *Cell) BoxHeight() int {
	return c.Height + 2
}
