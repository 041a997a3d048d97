// Package ui provides the styled text used by bitmeter's non-interactive
// commands.
//
// # Components Overview
//
//	RenderPrefsTable - preference listing with stored/default source
//	RenderSparkline  - one-line throughput history for 'bitmeter status'
//	Swatch           - a coloured block previewing an RGB preference
//
// # Color Scheme
//
// Chrome colours are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess (green)  - stored values, healthy state
//	ColorError   (red)    - invalid values
//	ColorWarning (yellow) - stale data
//	ColorMuted   (gray)   - defaults, secondary text
//
// Swatches use the preference's own RGB value and degrade to plain text
// when the terminal has no colour support.
package ui
