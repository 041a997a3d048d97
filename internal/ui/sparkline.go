package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderSparkline draws the most recent width values as block characters.
// Values are mapped onto 8 levels between 0 and ceiling; anything above the
// ceiling is drawn full height. A non-positive ceiling falls back to the
// largest value in the window.
func RenderSparkline(data []float64, width int, ceiling float64, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	if ceiling <= 0 {
		for _, v := range data {
			ceiling = max(ceiling, v)
		}
	}

	numLevels := len(sparklineBlockRunes)
	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for _, v := range data {
		sb.WriteRune(sparklineBlockRunes[sparkLevel(v, ceiling, numLevels)])
	}

	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

// sparkLevel maps v onto [0, levels).
func sparkLevel(v, ceiling float64, levels int) int {
	if ceiling <= 0 || v <= 0 {
		return 0
	}
	level := int(v / ceiling * float64(levels-1))
	if level >= levels {
		level = levels - 1
	}
	return level
}

// RateColor picks a chrome colour for a rate as a fraction of the graph
// scale: green when comfortably inside it, yellow near the top, red once
// the graph would clip.
func RateColor(fraction float64) lipgloss.Color {
	switch {
	case fraction >= 1:
		return ColorError
	case fraction >= 0.6:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
