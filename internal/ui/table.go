package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// newTable builds a non-focused bubbles table sized to hold every row.
func newTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2), // header plus its bottom border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	// Nothing is focused, so the cursor row must look like any other.
	s.Selected = s.Cell
	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	return strings.TrimRight(newTable(columns, tableRows).View(), " \n")
}

// PrefRow is one line of 'bitmeter prefs list'.
type PrefRow struct {
	Name   string
	Value  string
	Stored bool // false when the value is the built-in default
	Err    error
}

// RenderPrefsTable renders preferences with their source. Values that fail
// validation are flagged with the error.
func RenderPrefsTable(rows []PrefRow) string {
	if len(rows) == 0 {
		return "No preferences"
	}

	nameWidth, valueWidth := len("NAME"), len("VALUE")
	for _, r := range rows {
		nameWidth = max(nameWidth, len(r.Name))
		valueWidth = max(valueWidth, len(r.Value))
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		source := "default"
		if r.Stored {
			source = "stored"
		}
		if r.Err != nil {
			source = SymbolFail + " invalid"
		}
		cells[i] = []string{r.Name, r.Value, source}
	}

	out := RenderSimpleTable([]TableColumn{
		{Title: "NAME", Width: nameWidth + 2},
		{Title: "VALUE", Width: valueWidth + 2},
		{Title: "SOURCE", Width: 12},
	}, cells)

	var problems []string
	for _, r := range rows {
		if r.Err != nil {
			problems = append(problems, Error(SymbolFail+" "+r.Err.Error()))
		}
	}
	if len(problems) > 0 {
		out += "\n\n" + strings.Join(problems, "\n")
	}
	return out
}

// Field is a labelled line of status output.
type Field struct {
	Label string
	Value string
}

// RenderFields renders fields one per line with the labels aligned.
func RenderFields(fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = padRight(Label(f.Label+":"), width+2) + f.Value
	}
	return strings.Join(lines, "\n")
}

// padRight pads a string to the specified visible width.
func padRight(s string, width int) string {
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}
