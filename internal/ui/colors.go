package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary lipgloss.Color = "7" // White/default
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

var (
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	labelStyle   = lipgloss.NewStyle().Foreground(ColorInfo)
)

// Success renders s in the success colour.
func Success(s string) string { return successStyle.Render(s) }

// Error renders s in the error colour.
func Error(s string) string { return errorStyle.Render(s) }

// Warning renders s in the warning colour.
func Warning(s string) string { return warningStyle.Render(s) }

// Muted renders s as secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// Label renders a field label.
func Label(s string) string { return labelStyle.Render(s) }
