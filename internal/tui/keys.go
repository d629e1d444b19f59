package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Refresh  key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Examples key.Binding
	Diagnose key.Binding
	Quit     key.Binding
}

func newKeyMap(diagnostics bool) keyMap {
	k := keyMap{
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Examples: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "examples")),
		Diagnose: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "trigger error")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	// disabled bindings never match and are hidden from help
	k.Diagnose.SetEnabled(diagnostics)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Add, k.Edit, k.Delete, k.Examples, k.Diagnose, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type modalKeyMap struct {
	Close key.Binding
	Copy  key.Binding
	Up    key.Binding
	Down  key.Binding
}

func newModalKeyMap() modalKeyMap {
	return modalKeyMap{
		Close: key.NewBinding(key.WithKeys("esc", "enter", "c"), key.WithHelp("esc/enter", "close")),
		Copy:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy response")),
		Up:    key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑", "scroll")),
		Down:  key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓", "scroll")),
	}
}

func (k modalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Close, k.Copy, k.Up, k.Down}
}

func (k modalKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
