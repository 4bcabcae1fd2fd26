// Package textwidth measures and pads strings by their monospace display width.
package textwidth

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// cond ignores the locale so ambiguous-width runes always count as one cell.
var cond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	if s == "" {
		return 0
	}
	return cond.StringWidth(s)
}

func RuneWidth(r rune) int {
	return cond.RuneWidth(r)
}

// MaxWidth returns the widest of lines.
func MaxWidth(lines []string) int {
	max := 0
	for _, line := range lines {
		if w := Width(line); w > max {
			max = w
		}
	}
	return max
}

func PadRight(s string, width int) string {
	return cond.FillRight(s, width)
}

// PadCenter centers s within width cells; the odd cell goes to the right.
func PadCenter(s string, width int) string {
	gap := width - Width(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

func Truncate(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	return cond.Truncate(s, width, tail)
}
