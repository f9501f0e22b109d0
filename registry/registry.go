// Package registry maps document nodes to the table models they store.
//
// The registry is an index, not a source of truth: the engine keeps it in
// step with each committed transaction, and resynchronizes it from the
// document after undo and redo.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/formats"
	"github.com/iw2rmb/tableup/table"
)

// ErrNotInTable reports a node that is not inside a registered table.
var ErrNotInTable = errors.New("registry: node is not in a table")

// Kind classifies a registered node.
type Kind uint8

const (
	KindNone Kind = iota
	KindTable
	KindRow
	KindCell
	KindCol
)

func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindRow:
		return "row"
	case KindCell:
		return "cell"
	case KindCol:
		return "col"
	default:
		return "none"
	}
}

// Result is the outcome of a lookup. A zero Result (Kind == KindNone) means
// the node is not registered.
type Result struct {
	Kind  Kind
	Node  doc.NodeID
	Table *table.Table

	// Set for KindRow and KindCell.
	Row      table.RowID
	RowIndex int
	// Set for KindCell.
	Cell table.CellID
	Pos  table.Pos
	Span table.Span
	// Set for KindCol.
	Col int
}

func (r Result) Found() bool { return r.Kind != KindNone }

// Parents resolves node parents. doc.Tree implements it.
type Parents interface {
	Parent(id doc.NodeID) (doc.NodeID, bool)
}

type ref struct {
	kind  Kind
	table string
	row   table.RowID
	cell  table.CellID
	col   int
}

type entry struct {
	model *table.Table
	node  doc.NodeID
	rows  map[table.RowID]doc.NodeID
	cells map[table.CellID]doc.NodeID
	cols  []doc.NodeID
}

// Registry indexes table nodes by node id and table id.
type Registry struct {
	tables map[string]*entry
	nodes  map[doc.NodeID]ref
}

func New() *Registry {
	return &Registry{
		tables: map[string]*entry{},
		nodes:  map[doc.NodeID]ref{},
	}
}

// Add registers model as stored in the nodes of b.
func (r *Registry) Add(model *table.Table, b formats.Binding) {
	r.AddTable(model, b.Main)
	r.SetCols(model.ID(), b.Cols)
	for rid, n := range b.Rows {
		r.BindRow(model.ID(), rid, n)
	}
	for cid, n := range b.Cells {
		r.BindCell(model.ID(), cid, n)
	}
}

// AddTable registers model under its main node, replacing any table with
// the same id.
func (r *Registry) AddTable(model *table.Table, node doc.NodeID) {
	r.RemoveTable(model.ID())
	r.tables[model.ID()] = &entry{
		model: model,
		node:  node,
		rows:  map[table.RowID]doc.NodeID{},
		cells: map[table.CellID]doc.NodeID{},
	}
	r.nodes[node] = ref{kind: KindTable, table: model.ID()}
}

func (r *Registry) BindRow(tableID string, row table.RowID, node doc.NodeID) {
	e, ok := r.tables[tableID]
	if !ok {
		return
	}
	if old, ok := e.rows[row]; ok {
		delete(r.nodes, old)
	}
	e.rows[row] = node
	r.nodes[node] = ref{kind: KindRow, table: tableID, row: row}
}

func (r *Registry) BindCell(tableID string, cell table.CellID, node doc.NodeID) {
	e, ok := r.tables[tableID]
	if !ok {
		return
	}
	if old, ok := e.cells[cell]; ok {
		delete(r.nodes, old)
	}
	e.cells[cell] = node
	r.nodes[node] = ref{kind: KindCell, table: tableID, cell: cell}
}

// SetCols replaces the col nodes of a table, in column order.
func (r *Registry) SetCols(tableID string, nodes []doc.NodeID) {
	e, ok := r.tables[tableID]
	if !ok {
		return
	}
	for _, n := range e.cols {
		delete(r.nodes, n)
	}
	e.cols = slices.Clone(nodes)
	for i, n := range e.cols {
		r.nodes[n] = ref{kind: KindCol, table: tableID, col: i}
	}
}

// Unbind forgets a row or cell node.
func (r *Registry) Unbind(node doc.NodeID) {
	ref, ok := r.nodes[node]
	if !ok {
		return
	}
	e := r.tables[ref.table]
	switch ref.kind {
	case KindRow:
		delete(e.rows, ref.row)
	case KindCell:
		delete(e.cells, ref.cell)
	case KindTable:
		r.RemoveTable(ref.table)
		return
	case KindCol:
		e.cols = slices.DeleteFunc(e.cols, func(n doc.NodeID) bool { return n == node })
		r.reindexCols(ref.table)
	}
	delete(r.nodes, node)
}

func (r *Registry) reindexCols(tableID string) {
	e := r.tables[tableID]
	for i, n := range e.cols {
		r.nodes[n] = ref{kind: KindCol, table: tableID, col: i}
	}
}

// RemoveTable forgets a table and every node bound to it.
func (r *Registry) RemoveTable(tableID string) {
	e, ok := r.tables[tableID]
	if !ok {
		return
	}
	delete(r.nodes, e.node)
	for _, n := range e.rows {
		delete(r.nodes, n)
	}
	for _, n := range e.cells {
		delete(r.nodes, n)
	}
	for _, n := range e.cols {
		delete(r.nodes, n)
	}
	delete(r.tables, tableID)
}

// Replace swaps the committed model of a table. Row and cell handles of the
// new model must be bound separately if they changed.
func (r *Registry) Replace(model *table.Table) {
	if e, ok := r.tables[model.ID()]; ok {
		e.model = model
	}
}

// Lookup classifies node.
func (r *Registry) Lookup(node doc.NodeID) Result {
	ref, ok := r.nodes[node]
	if !ok {
		return Result{}
	}
	e := r.tables[ref.table]
	res := Result{Kind: ref.kind, Node: node, Table: e.model, Row: table.NoRow, Cell: table.NoCell, Col: -1}
	switch ref.kind {
	case KindRow:
		row, ok := e.model.Row(ref.row)
		if !ok {
			return Result{}
		}
		res.Row, res.RowIndex = row.ID, row.Index
	case KindCell:
		c, ok := e.model.Cell(ref.cell)
		if !ok {
			return Result{}
		}
		res.Cell, res.Pos, res.Span = c.ID, c.Pos, c.Span
		res.Row = c.Row
		res.RowIndex = c.Pos.Row
	case KindCol:
		res.Col = ref.col
	}
	return res
}

// FindParent returns the nearest node of kind at or above node.
func (r *Registry) FindParent(tree Parents, node doc.NodeID, kind Kind) Result {
	for cur := node; cur != doc.NoNode; {
		if res := r.Lookup(cur); res.Kind == kind {
			return res
		}
		p, ok := tree.Parent(cur)
		if !ok {
			break
		}
		cur = p
	}
	return Result{}
}

// FindParents returns every registered node at or above node whose kind is
// in kinds, innermost first. No kinds means all kinds.
func (r *Registry) FindParents(tree Parents, node doc.NodeID, kinds ...Kind) []Result {
	var out []Result
	for cur := node; cur != doc.NoNode; {
		if res := r.Lookup(cur); res.Found() && (len(kinds) == 0 || slices.Contains(kinds, res.Kind)) {
			out = append(out, res)
		}
		p, ok := tree.Parent(cur)
		if !ok {
			break
		}
		cur = p
	}
	return out
}

// Resolve is FindParent that reports a missing parent as ErrNotInTable.
func (r *Registry) Resolve(tree Parents, node doc.NodeID, kind Kind) (Result, error) {
	res := r.FindParent(tree, node, kind)
	if !res.Found() {
		return Result{}, fmt.Errorf("%w: node %d has no enclosing %s", ErrNotInTable, node, kind)
	}
	return res, nil
}

func (r *Registry) CellNode(tableID string, cell table.CellID) (doc.NodeID, bool) {
	e, ok := r.tables[tableID]
	if !ok {
		return doc.NoNode, false
	}
	n, ok := e.cells[cell]
	return n, ok
}

func (r *Registry) RowNode(tableID string, row table.RowID) (doc.NodeID, bool) {
	e, ok := r.tables[tableID]
	if !ok {
		return doc.NoNode, false
	}
	n, ok := e.rows[row]
	return n, ok
}

func (r *Registry) TableNode(tableID string) (doc.NodeID, bool) {
	e, ok := r.tables[tableID]
	if !ok {
		return doc.NoNode, false
	}
	return e.node, true
}

// ColNodes returns the col nodes of a table in column order.
func (r *Registry) ColNodes(tableID string) []doc.NodeID {
	e, ok := r.tables[tableID]
	if !ok {
		return nil
	}
	return slices.Clone(e.cols)
}

// Binding returns the node binding of a table. Colgroup and Body are not
// tracked and are left zero.
func (r *Registry) Binding(tableID string) (formats.Binding, bool) {
	e, ok := r.tables[tableID]
	if !ok {
		return formats.Binding{}, false
	}
	return formats.Binding{
		Main:  e.node,
		Cols:  slices.Clone(e.cols),
		Rows:  maps.Clone(e.rows),
		Cells: maps.Clone(e.cells),
	}, true
}

func (r *Registry) Table(tableID string) (*table.Table, bool) {
	e, ok := r.tables[tableID]
	if !ok {
		return nil, false
	}
	return e.model, true
}

// Tables returns the ids of all registered tables, sorted.
func (r *Registry) Tables() []string {
	return slices.Sorted(maps.Keys(r.tables))
}

// Len returns the number of indexed nodes.
func (r *Registry) Len() int { return len(r.nodes) }
