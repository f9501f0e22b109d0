package view

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the table view key bindings. Structural bindings act on
// the current selection.
type KeyMap struct {
	Merge, Split key.Binding

	InsertRowAbove, InsertRowBelow     key.Binding
	InsertColumnLeft, InsertColumnRight key.Binding
	DeleteRows, DeleteColumns          key.Binding
	DeleteTable                        key.Binding

	Background key.Binding
	Cancel     key.Binding

	Undo, Redo  key.Binding
	Copy, Paste key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Merge: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge")),
		Split: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "split")),

		InsertRowAbove:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r/R", "row above/below")),
		InsertRowBelow:    key.NewBinding(key.WithKeys("R")),
		InsertColumnLeft:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c/C", "column left/right")),
		InsertColumnRight: key.NewBinding(key.WithKeys("C")),
		DeleteRows:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x/X", "delete rows/columns")),
		DeleteColumns:     key.NewBinding(key.WithKeys("X")),
		DeleteTable:       key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete table")),

		Background: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "background")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	}
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Merge, km.Split, km.InsertRowAbove, km.InsertColumnLeft, km.DeleteRows, km.Background, km.Undo}
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Merge, km.Split, km.Background},
		{km.InsertRowAbove, km.InsertColumnLeft, km.DeleteRows, km.DeleteTable},
		{km.Undo, km.Redo, km.Copy, km.Paste, km.Cancel},
	}
}

func normalizeKeyMap(km KeyMap) KeyMap {
	if reflect.DeepEqual(km, KeyMap{}) {
		return DefaultKeyMap()
	}
	return km
}
