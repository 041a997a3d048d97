package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/bitmeter/internal/prefs"
)

// render lays out the graph, the caption line and the key hints.
func (m Model) render() string {
	if m.width == 0 {
		return ""
	}
	if m.TooSmall() {
		return m.renderTooSmall()
	}

	var b strings.Builder
	switch {
	case m.prefsErr != nil:
		b.WriteString(m.renderPrefsError())
	default:
		b.WriteString(m.graph)
	}
	b.WriteString("\n")
	b.WriteString(m.renderCaption())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderCaption renders the DL/UL caption with the scale on the right.
func (m Model) renderCaption() string {
	left := CaptionStyle.Render(m.caption)
	if m.lastErr != nil {
		left += StaleStyle.Render(" (stale)")
	}

	right := ""
	if scale, err := m.prefs.Number(prefs.Scale); err == nil {
		right = ScaleStyle.Render(fmt.Sprintf("%d kB/s", scale))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderPrefsError() string {
	msg := ErrorStyle.Render(m.prefsErr.Error())
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.graphRows()).
		Render(msg)
}

// renderTooSmall replaces the whole view when the terminal is below the
// configured minimum.
func (m Model) renderTooSmall() string {
	notice := NoticeStyle.Render(fmt.Sprintf("Terminal too small\nneed %dx%d", m.minWidth, m.minHeight))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, notice)
}

func footerHeight(footer string) int {
	if footer == "" {
		return 0
	}
	return lipgloss.Height(footer)
}
