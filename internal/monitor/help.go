package monitor

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = " | "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	h.Styles.ShortDesc = FooterStyle
	h.Styles.ShortSeparator = FooterStyle
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	h.Styles.FullSeparator = FooterStyle
	return h
}

// renderFooter renders the key hints, expanded when help is toggled on.
func (m Model) renderFooter() string {
	return m.help.View(m.keys)
}
