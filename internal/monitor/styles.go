package monitor

import "github.com/charmbracelet/lipgloss"

// Chrome colours. Graph colours come from preferences.
const (
	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")
	ColorAccent        = lipgloss.Color("#FF2E97")
	ColorWarning       = lipgloss.Color("#FFAA00")
	ColorCritical      = lipgloss.Color("#FF0055")
)

var (
	CaptionStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	// ScaleStyle renders the full-scale indicator next to the caption.
	ScaleStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StaleStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)
