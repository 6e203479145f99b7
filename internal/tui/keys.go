package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Search key.Binding
	Detail key.Binding
	Rename key.Binding
	Reply  key.Binding
	Delete key.Binding
	Toggle key.Binding
	Quit   key.Binding

	ForceQuit key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Yes     key.Binding
	No      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Detail:  key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "detail")),
		Rename:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		Reply:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reply")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "done")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:     key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),

		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Search, k.Detail, k.Rename, k.Reply, k.Toggle, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail, k.Toggle},
		{k.Add, k.Search, k.Rename, k.Reply, k.Delete, k.Quit},
	}
}
