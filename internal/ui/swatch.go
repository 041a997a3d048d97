package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Swatch renders a two-cell block in the given colour followed by its hex
// value. Without colour support only the hex value carries information.
func Swatch(r, g, b uint8) string {
	hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
	block := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	return block + " " + hex
}
