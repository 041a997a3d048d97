package monitor

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/bitmeter/internal/prefs"
)

// Braille character rendering for pixel-addressed terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '\u2800'

// brailleDots maps [row][col] within a cell to the dot's bit offset.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// Dots per character cell.
const (
	cellDotsX = 2
	cellDotsY = 4
)

type cell struct {
	bits    uint8
	color   prefs.RGB
	painted bool
}

// Canvas is a pixel grid backed by braille characters. Each terminal cell
// holds 2x4 pixels but only one foreground colour, so when two colours land
// in the same cell the one drawn last wins.
type Canvas struct {
	cols, rows int
	cells      [][]cell
}

// NewCanvas creates a blank canvas of cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	cells := make([][]cell, rows)
	for i := range cells {
		cells[i] = make([]cell, cols)
	}
	return &Canvas{cols: cols, rows: rows, cells: cells}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.cols * cellDotsX }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.rows * cellDotsY }

// Set lights one pixel. Out-of-range pixels are ignored.
func (c *Canvas) Set(x, y int, color prefs.RGB) {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return
	}
	ce := &c.cells[y/cellDotsY][x/cellDotsX]
	ce.bits |= 1 << brailleDots[y%cellDotsY][x%cellDotsX]
	ce.color = color
	ce.painted = true
}

// Draw rasterises a vertical segment, clipping anything outside the canvas.
// A pixel row is lit when its centre lies within the segment.
func (c *Canvas) Draw(seg Segment) {
	if seg.X < 0 || seg.X >= c.Width() {
		return
	}
	lo, hi := seg.YStart, seg.YEnd
	if lo > hi {
		lo, hi = hi, lo
	}
	first := int(math.Ceil(lo - 0.5))
	last := int(math.Floor(hi - 0.5))
	if first < 0 {
		first = 0
	}
	if last >= c.Height() {
		last = c.Height() - 1
	}
	for y := first; y <= last; y++ {
		c.Set(seg.X, y, seg.Color)
	}
}

// Render returns the canvas as coloured text on bg. Runs of cells sharing a
// colour are rendered with a single style.
func (c *Canvas) Render(bg prefs.RGB) string {
	background := lipgloss.Color(bg.Hex())
	blank := lipgloss.NewStyle().Background(background)

	lines := make([]string, c.rows)
	for r, row := range c.cells {
		var b strings.Builder
		var run strings.Builder
		var runColor prefs.RGB
		runPainted := false

		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := blank
			if runPainted {
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(runColor.Hex())).
					Background(background)
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}

		for _, ce := range row {
			if ce.painted != runPainted || (ce.painted && ce.color != runColor) {
				flush()
				runPainted = ce.painted
				runColor = ce.color
			}
			if ce.painted {
				run.WriteRune(brailleBase + rune(ce.bits))
			} else {
				run.WriteRune(' ')
			}
		}
		flush()
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}
