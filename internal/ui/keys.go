package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// List mode
	Add    key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Theme  key.Binding
	Help   key.Binding
	Quit   key.Binding

	// Input mode
	Submit    key.Binding
	NextField key.Binding
	Back      key.Binding
	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("a", "i", "tab"), key.WithHelp("a", "add task")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "move up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "move down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x", "enter"), key.WithHelp("space", "toggle done")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete completed")),
		Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dark/light")),
		Help:   key.NewBinding(key.WithKeys("?", "h"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		NextField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "task/date")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "list")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// listHelp and inputHelp adapt keyMap to help.KeyMap for each mode.
type listHelp struct{ keyMap }

func (h listHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Add, h.Toggle, h.Delete, h.Theme, h.Help, h.Quit}
}

func (h listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.Up, h.Down, h.Toggle, h.Delete},
		{h.Add, h.Theme, h.Help, h.Quit},
	}
}

type inputHelp struct{ keyMap }

func (h inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Submit, h.NextField, h.Back, h.ForceQuit}
}

func (h inputHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
