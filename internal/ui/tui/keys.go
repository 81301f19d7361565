package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Response key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Response: key.NewBinding(
			key.WithKeys("r", "tab"),
			key.WithHelp("r", "toggle response"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "close"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Response, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
