// Package tableup adds editable tables to a doc.Tree.
//
// New registers the table node kinds with the tree and wires the node
// registry, the operation engine and the widgets:
//
//	tree := doc.New(doc.Options{})
//	mod := tableup.New(tree, tableup.Options{})
//	defer mod.Close()
//	id, err := mod.InsertAtFocus(ui.CreateTableMsg{Rows: 3, Cols: 3})
package tableup

import (
	"io"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/engine"
	"github.com/iw2rmb/tableup/formats"
	"github.com/iw2rmb/tableup/registry"
	"github.com/iw2rmb/tableup/selection"
	"github.com/iw2rmb/tableup/table"
	"github.com/iw2rmb/tableup/ui"
	"github.com/iw2rmb/tableup/view"
)

// Options configures the module. Zero values take the defaults.
type Options struct {
	DefaultColumnWidth int // default: 100
	MinColumnWidth     int // default: 26
	DefaultRowHeight   int // default: 36
	MinRowHeight       int // default: 36

	// Palette of the cell background picker. Defaults to ui.DefaultPalette.
	Palette []string

	// Size picker grid. Defaults to 8×8.
	SelectBoxRows int
	SelectBoxCols int

	ResizeDebounce time.Duration // default: 50ms

	Logger logrus.FieldLogger // default: discard
}

func (o Options) withDefaults() Options {
	if len(o.Palette) == 0 {
		o.Palette = slices.Clone(ui.DefaultPalette)
	}
	if o.SelectBoxRows <= 0 {
		o.SelectBoxRows = 8
	}
	if o.SelectBoxCols <= 0 {
		o.SelectBoxCols = 8
	}
	if o.ResizeDebounce <= 0 {
		o.ResizeDebounce = 50 * time.Millisecond
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	return o
}

// Table returns the geometry options handed to every table.
func (o Options) Table() table.Options {
	return table.Options{
		DefaultColumnWidth: o.DefaultColumnWidth,
		MinColumnWidth:     o.MinColumnWidth,
		DefaultRowHeight:   o.DefaultRowHeight,
		MinRowHeight:       o.MinRowHeight,
	}
}

type Module struct {
	tree *doc.Tree
	reg  *registry.Registry
	eng  *engine.Engine
	opt  Options
}

// New installs the table module into tree. Tables already in the tree are
// not adopted until they are edited.
func New(tree *doc.Tree, opt Options) *Module {
	opt = opt.withDefaults()
	tree.Register(formats.Kinds()...)
	reg := registry.New()
	eng := engine.New(tree, reg, engine.Options{
		Table:  opt.Table(),
		Logger: opt.Logger.WithField("component", "engine"),
	})
	opt.Logger.WithField("version", Version()).Debug("table module installed")
	return &Module{tree: tree, reg: reg, eng: eng, opt: opt}
}

// Close detaches the module from the tree.
func (m *Module) Close() { m.eng.Close() }

func (m *Module) Tree() *doc.Tree { return m.tree }

func (m *Module) Registry() *registry.Registry { return m.reg }

func (m *Module) Engine() *engine.Engine { return m.eng }

func (m *Module) Options() Options { return m.opt }

// InsertAtFocus inserts the table requested by msg next to the focused
// node: after the enclosing table when the focus is inside one, otherwise
// after the focused node. Without focus the table is appended to the root.
func (m *Module) InsertAtFocus(msg ui.CreateTableMsg) (string, error) {
	parent, index := m.tree.Root(), -1
	anchor := m.tree.Focus()
	if res := m.reg.FindParent(m.tree, anchor, registry.KindTable); res.Found() {
		anchor = res.Node
	}
	if p, ok := m.tree.Parent(anchor); ok && anchor != doc.NoNode {
		pn, _ := m.tree.Node(p)
		parent, index = p, slices.Index(pn.Children, anchor)+1
	}
	return m.eng.InsertTable(parent, index, msg.Rows, msg.Cols)
}

// NewCoordinator returns a gesture coordinator driving the module's engine.
func (m *Module) NewCoordinator() *selection.Coordinator {
	return selection.New(m.eng, selection.Options{
		Debounce: m.opt.ResizeDebounce,
		Logger:   m.opt.Logger.WithField("component", "selection"),
	})
}

// NewSelectBox returns the table size picker.
func (m *Module) NewSelectBox(style ui.Style) ui.SelectBox {
	return ui.NewSelectBox(ui.SelectBoxConfig{
		Rows:  m.opt.SelectBoxRows,
		Cols:  m.opt.SelectBoxCols,
		Style: style,
	})
}

// NewView returns a view of tableID. Engine, History, Palette, debounce
// and logger are taken from the module unless cfg sets them.
func (m *Module) NewView(tableID string, cfg view.Config) view.Model {
	cfg.Engine = m.eng
	cfg.Table = tableID
	if cfg.History == nil {
		cfg.History = m.tree
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = m.opt.Palette
	}
	if cfg.ResizeDebounce == 0 {
		cfg.ResizeDebounce = m.opt.ResizeDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = m.opt.Logger.WithField("component", "view")
	}
	return view.New(cfg)
}
