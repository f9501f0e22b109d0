// Package engine applies table operations to a host document.
//
// Every operation is one transaction: the committed model is cloned, the
// operation runs on the clone, the result is checked, the difference is
// planned as host edits, and the edits are applied as a single undo step.
// The clone becomes the committed model only after the host accepted the
// edits, so a failure at any stage leaves model, registry and document
// unchanged.
package engine

import (
	"fmt"
	"io"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/formats"
	"github.com/iw2rmb/tableup/registry"
	"github.com/iw2rmb/tableup/table"
)

// Host is the document the engine edits. doc.Tree implements it.
type Host interface {
	Node(id doc.NodeID) (doc.Node, bool)
	Parent(id doc.NodeID) (doc.NodeID, bool)
	NewID() doc.NodeID
	// Apply applies edits atomically as one undo step.
	Apply(edits ...doc.Edit) (doc.Change, error)
	Subscribe(fn func(doc.Change)) func()
}

type Options struct {
	Table  table.Options
	Logger logrus.FieldLogger // default: discard
}

type Engine struct {
	host Host
	reg  *registry.Registry
	opt  table.Options
	log  logrus.FieldLogger

	applying    bool
	unsubscribe func()
}

// New returns an engine editing host. The engine subscribes to host changes
// so that undo, redo and foreign edits of table nodes are reflected in reg.
func New(host Host, reg *registry.Registry, opt Options) *Engine {
	if opt.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opt.Logger = l
	}
	e := &Engine{
		host: host,
		reg:  reg,
		opt:  opt.Table,
		log:  opt.Logger,
	}
	e.unsubscribe = host.Subscribe(e.onChange)
	return e
}

// Close stops following host changes.
func (e *Engine) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

func (e *Engine) Registry() *registry.Registry { return e.reg }

func (e *Engine) Host() Host { return e.host }

// Table returns the committed model of a table.
func (e *Engine) Table(tableID string) (*table.Table, bool) { return e.reg.Table(tableID) }

// CellData returns the content of a cell.
func (e *Engine) CellData(tableID string, cell table.CellID) formats.CellData {
	n, ok := e.reg.CellNode(tableID, cell)
	if !ok {
		return formats.CellData{}
	}
	return formats.ReadCellData(e.host, n)
}

// txn is one structural transaction on a table.
type txn struct {
	op   string
	cur  *table.Table
	next *table.Table
	bind formats.Binding

	// absorb maps a destroyed cell to the cell receiving its content.
	absorb map[table.CellID]table.CellID
	// background overrides the background of live cells.
	background map[table.CellID]string
}

func (e *Engine) begin(op, tableID string) (*txn, error) {
	cur, ok := e.reg.Table(tableID)
	if !ok {
		return nil, unknownTable(op, tableID)
	}
	bind, _ := e.reg.Binding(tableID)
	return &txn{op: op, cur: cur, next: cur.Clone(), bind: bind}, nil
}

func unknownTable(op, tableID string) error {
	return fmt.Errorf("%s: %w: unknown table %q", op, registry.ErrNotInTable, tableID)
}

// mutate runs fn on a clone of the table and commits the result.
func (e *Engine) mutate(op, tableID string, fn func(tx *txn) error) error {
	tx, err := e.begin(op, tableID)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		e.reject(tx, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.next.Check(); err != nil {
		e.reject(tx, err)
		return fmt.Errorf("%s: %w", op, err)
	}

	edits, nb, err := e.plan(tx)
	if err != nil {
		e.reject(tx, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	change, err := e.apply(edits)
	if err != nil {
		e.reject(tx, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	e.commit(tx, nb)

	e.log.WithFields(logrus.Fields{
		"op":      op,
		"table":   tableID,
		"edits":   len(edits),
		"version": change.VersionAfter,
	}).Debug("table operation committed")
	return nil
}

func (e *Engine) apply(edits []doc.Edit) (doc.Change, error) {
	if len(edits) == 0 {
		return doc.Change{}, nil
	}
	e.applying = true
	defer func() { e.applying = false }()
	return e.host.Apply(edits...)
}

func (e *Engine) reject(tx *txn, err error) {
	e.log.WithFields(logrus.Fields{
		"op":    tx.op,
		"table": tx.cur.ID(),
	}).WithError(err).Debug("table operation rejected")
}

// commit makes tx.next the committed model and updates the registry
// bindings that changed.
func (e *Engine) commit(tx *txn, nb formats.Binding) {
	id := tx.next.ID()
	e.reg.Replace(tx.next)
	for rid, n := range tx.bind.Rows {
		if _, ok := nb.Rows[rid]; !ok {
			e.reg.Unbind(n)
		}
	}
	for cid, n := range tx.bind.Cells {
		if _, ok := nb.Cells[cid]; !ok {
			e.reg.Unbind(n)
		}
	}
	for rid, n := range nb.Rows {
		if old, ok := tx.bind.Rows[rid]; !ok || old != n {
			e.reg.BindRow(id, rid, n)
		}
	}
	for cid, n := range nb.Cells {
		if old, ok := tx.bind.Cells[cid]; !ok || old != n {
			e.reg.BindCell(id, cid, n)
		}
	}
	if !slices.Equal(tx.bind.Cols, nb.Cols) {
		e.reg.SetCols(id, nb.Cols)
	}
}
