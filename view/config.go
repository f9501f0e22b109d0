package view

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/tableup/engine"
)

// History is the host's undo stack. doc.Tree implements it.
type History interface {
	Undo() bool
	Redo() bool
}

// Config configures the table view Model.
type Config struct {
	// Engine is required.
	Engine *engine.Engine
	// History drives the undo/redo bindings. They are ignored when nil.
	History History

	// Table is the id of the table to show.
	Table string

	Scale  Scale
	Style  Style
	KeyMap KeyMap // default: DefaultKeyMap()

	// Palette of the background picker. Defaults to ui.DefaultPalette.
	Palette []string

	// Clipboard backs the copy/paste bindings. They are ignored when nil.
	Clipboard Clipboard

	// ResizeDebounce is the minimum interval between live resize commits.
	ResizeDebounce time.Duration

	Logger logrus.FieldLogger // default: discard

	// OnChange is called after an update that changed the table or the
	// selection.
	OnChange func(ChangeEvent)
}
