package ui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the size picker key bindings.
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	Confirm, Cancel       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "fewer columns")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "more columns")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "fewer rows")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "more rows")),

		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "insert table")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	}
}

func normalizeKeyMap(km KeyMap) KeyMap {
	if reflect.DeepEqual(km, KeyMap{}) {
		return DefaultKeyMap()
	}
	return km
}
