// Package svgexport draws rendered diagram text as rows of monospace SVG text.
package svgexport

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/phenixrizen/asciiflow/internal/textwidth"
)

type Options struct {
	FontSize   int
	FontFamily string
	Background string
	Foreground string
}

func DefaultOptions() Options {
	return Options{FontSize: 14, FontFamily: "monospace", Background: "#ffffff", Foreground: "#1f2328"}
}

// geometry is derived from the font size: a monospace cell is about 0.6em
// wide and lines sit 1.2em apart.
type geometry struct {
	cellW, lineH, pad int
}

func measure(opts Options) geometry {
	size := max(opts.FontSize, 1)
	return geometry{
		cellW: max(size*3/5, 1),
		lineH: max(size*6/5, 1),
		pad:   size,
	}
}

// Size returns the canvas size Render uses for text.
func Size(text string, opts Options) (int, int) {
	g := measure(opts)
	lines := splitLines(text)
	return textwidth.MaxWidth(lines)*g.cellW + 2*g.pad, len(lines)*g.lineH + 2*g.pad
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Render writes text as an SVG document to w.
func Render(w io.Writer, text string, opts Options) error {
	data := Bytes(text, opts)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func Bytes(text string, opts Options) []byte {
	defaults := DefaultOptions()
	if opts.FontSize <= 0 {
		opts.FontSize = defaults.FontSize
	}
	if opts.FontFamily == "" {
		opts.FontFamily = defaults.FontFamily
	}
	if opts.Background == "" {
		opts.Background = defaults.Background
	}
	if opts.Foreground == "" {
		opts.Foreground = defaults.Foreground
	}

	g := measure(opts)
	width, height := Size(text, opts)
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+opts.Background)
	canvas.Gstyle(fmt.Sprintf("font-family:%s;font-size:%dpx;fill:%s", opts.FontFamily, opts.FontSize, opts.Foreground))
	for i, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// baseline sits a fifth of a line above the next line's top
		y := g.pad + (i+1)*g.lineH - g.lineH/5
		canvas.Text(g.pad, y, line, `xml:space="preserve"`)
	}
	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}
