package graphview

import "fmt"

// Direction is the arrow kind of an edge as written in the source line.
type Direction int

const (
	None Direction = iota
	Double
	Left
	Right
	Up
	Down
	LeftUp
	LeftDown
	RightUp
	RightDown
)

// Axis selects which gutter a link is drawn in.
type Axis int

const (
	AxisRight Axis = iota
	AxisDown
)

var directionNames = [...]string{
	None:      "none",
	Double:    "double",
	Left:      "left",
	Right:     "right",
	Up:        "up",
	Down:      "down",
	LeftUp:    "left-up",
	LeftDown:  "left-down",
	RightUp:   "right-up",
	RightDown: "right-down",
}

func (d Direction) String() string {
	if d < None || d > RightDown {
		return "unknown"
	}
	return directionNames[d]
}

// Flip returns the direction as seen from the other end of the edge.
func (d Direction) Flip() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	case LeftUp:
		return RightDown
	case RightDown:
		return LeftUp
	case LeftDown:
		return RightUp
	case RightUp:
		return LeftDown
	default:
		return d
	}
}

func (d Direction) Axis() Axis {
	if d == Up || d == Down {
		return AxisDown
	}
	return AxisRight
}

// RowOffset is the extra row step a diagonal adds to a right-like move.
func (d Direction) RowOffset() int {
	switch d {
	case LeftUp, RightUp:
		return -1
	case LeftDown, RightDown:
		return 1
	default:
		return 0
	}
}

// HeadAtSource reports whether the arrowhead points into the source node.
func (d Direction) HeadAtSource() bool {
	switch d {
	case Double, Left, Up, LeftUp, LeftDown:
		return true
	default:
		return false
	}
}

// HeadAtTarget reports whether the arrowhead points into the destination node.
func (d Direction) HeadAtTarget() bool {
	switch d {
	case Double, Right, Down, RightUp, RightDown:
		return true
	default:
		return false
	}
}

// Directions lists every value in declaration order.
func Directions() []Direction {
	return []Direction{None, Double, Left, Right, Up, Down, LeftUp, LeftDown, RightUp, RightDown}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	for _, v := range Directions() {
		if v.String() == string(text) {
			*d = v
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", text)
}
