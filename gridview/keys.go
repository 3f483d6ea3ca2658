package gridview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of a Model.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	ExtendUp    key.Binding
	ExtendDown  key.Binding
	ExtendLeft  key.Binding
	ExtendRight key.Binding
	SelectRow   key.Binding
	SelectCol   key.Binding
	Sort        key.Binding
	Edit        key.Binding
	Commit      key.Binding
	Cancel      key.Binding
	Copy        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		ExtendUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑", "extend up")),
		ExtendDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("shift+↓", "extend down")),
		ExtendLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←", "extend left")),
		ExtendRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+→", "extend right")),
		SelectRow:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "select row")),
		SelectCol:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "select column")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by column")),
		Edit:        key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Commit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy as CSV")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
