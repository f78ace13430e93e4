package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the offer browser key bindings.
type KeyMap struct {
	Compare key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Reset   key.Binding
	Primary key.Binding
	Filter  key.Binding
	Close   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Compare: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Primary: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "your offer")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Compare, k.Reset, k.Primary, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Compare, k.Up, k.Down, k.Select},
		{k.Filter, k.Close, k.Reset, k.Primary},
		{k.Help, k.Quit},
	}
}
