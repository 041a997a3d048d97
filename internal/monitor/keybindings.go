package monitor

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the graph view's key bindings. It implements help.KeyMap.
type keyMap struct {
	Quit      key.Binding
	Refresh   key.Binding
	ScaleUp   key.Binding
	ScaleDown key.Binding
	Help      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ScaleUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom out (scale x2)"),
		),
		ScaleDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom in (scale /2)"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.ScaleUp, k.ScaleDown, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScaleUp, k.ScaleDown, k.Refresh},
		{k.Help, k.Quit},
	}
}
