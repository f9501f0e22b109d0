package registry

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/formats"
	"github.com/iw2rmb/tableup/table"
)

func setup(t *testing.T, rows, cols int) (*doc.Tree, *Registry, *table.Table, formats.Binding) {
	t.Helper()
	tr := doc.New(doc.Options{})
	tr.Register(formats.Kinds()...)
	model := table.New(rows, cols, table.Options{})
	b, edits := formats.BuildTable(tr, tr.Root(), -1, model, nil)
	if _, err := tr.Apply(edits...); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	reg := New()
	reg.Add(model, b)
	return tr, reg, model, b
}

func TestLookup_Kinds(t *testing.T) {
	_, reg, model, b := setup(t, 2, 3)

	if got := reg.Lookup(b.Main); got.Kind != KindTable || got.Table != model {
		t.Fatalf("main: got %+v", got)
	}

	c, _ := model.CellAt(table.Pos{Row: 1, Col: 2})
	got := reg.Lookup(b.Cells[c.ID])
	want := Result{
		Kind:     KindCell,
		Node:     b.Cells[c.ID],
		Table:    model,
		Row:      c.Row,
		RowIndex: 1,
		Cell:     c.ID,
		Pos:      table.Pos{Row: 1, Col: 2},
		Span:     table.Span{Rows: 1, Cols: 1},
		Col:      -1,
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b *table.Table) bool { return a == b })); diff != "" {
		t.Fatalf("cell lookup mismatch (-want +got):\n%s", diff)
	}

	row, _ := model.RowAt(1)
	if got := reg.Lookup(b.Rows[row.ID]); got.Kind != KindRow || got.RowIndex != 1 {
		t.Fatalf("row: got %+v", got)
	}
	if got := reg.Lookup(b.Cols[2]); got.Kind != KindCol || got.Col != 2 {
		t.Fatalf("col: got %+v", got)
	}
	if got := reg.Lookup(b.Body); got.Found() {
		t.Fatalf("body should not be indexed: %+v", got)
	}
	if got := reg.Len(); got != 1+2+6+3 {
		t.Fatalf("len: got %d, want %d", got, 1+2+6+3)
	}
}

func TestFindParent_FromContentBlock(t *testing.T) {
	tr, reg, model, b := setup(t, 2, 2)
	c, _ := model.CellAt(table.Pos{Row: 0, Col: 1})
	cell, _ := tr.Node(b.Cells[c.ID])
	block := cell.Children[0]

	if got := reg.FindParent(tr, block, KindCell); got.Cell != c.ID {
		t.Fatalf("cell: got %+v, want cell %d", got, c.ID)
	}
	if got := reg.FindParent(tr, block, KindTable); got.Node != b.Main {
		t.Fatalf("table: got %+v", got)
	}

	parents := reg.FindParents(tr, block)
	var kinds []Kind
	for _, p := range parents {
		kinds = append(kinds, p.Kind)
	}
	if diff := cmp.Diff([]Kind{KindCell, KindRow, KindTable}, kinds); diff != "" {
		t.Fatalf("parents mismatch (-want +got):\n%s", diff)
	}
	if got := reg.FindParents(tr, block, KindTable); len(got) != 1 {
		t.Fatalf("filtered parents: got %d, want 1", len(got))
	}
}

func TestResolve_NotInTable(t *testing.T) {
	tr, reg, _, _ := setup(t, 1, 1)
	outside := tr.NewID()
	if _, err := tr.Apply(doc.InsertText(tr.Root(), -1, outside, formats.KindBlock, "x")); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := reg.Resolve(tr, outside, KindCell); !errors.Is(err, ErrNotInTable) {
		t.Fatalf("got %v, want ErrNotInTable", err)
	}
	if _, err := reg.Resolve(tr, 9999, KindCell); !errors.Is(err, ErrNotInTable) {
		t.Fatalf("unknown node: got %v, want ErrNotInTable", err)
	}
}

func TestUnbindAndRemoveTable(t *testing.T) {
	_, reg, model, b := setup(t, 2, 2)
	c, _ := model.CellAt(table.Pos{})
	node := b.Cells[c.ID]

	reg.Unbind(node)
	if got := reg.Lookup(node); got.Found() {
		t.Fatalf("unbound cell still found: %+v", got)
	}
	if _, ok := reg.CellNode(model.ID(), c.ID); ok {
		t.Fatalf("reverse lookup still bound")
	}

	reg.Unbind(b.Cols[0])
	if got := reg.Lookup(b.Cols[1]); got.Col != 0 {
		t.Fatalf("cols not reindexed: %+v", got)
	}

	reg.RemoveTable(model.ID())
	if reg.Len() != 0 {
		t.Fatalf("len after remove: %d", reg.Len())
	}
	if _, ok := reg.Table(model.ID()); ok {
		t.Fatalf("table still registered")
	}
}

func TestReplace_SwapsModel(t *testing.T) {
	_, reg, model, b := setup(t, 2, 2)
	next := model.Clone()
	if _, err := next.ResizeColumn(0, 150); err != nil {
		t.Fatalf("ResizeColumn: %v", err)
	}
	reg.Replace(next)
	if got := reg.Lookup(b.Main).Table; got != next {
		t.Fatalf("model not replaced")
	}
	if diff := cmp.Diff([]string{model.ID()}, reg.Tables()); diff != "" {
		t.Fatalf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup_StaleHandle(t *testing.T) {
	_, reg, model, b := setup(t, 2, 1)
	row, _ := model.RowAt(1)
	next := model.Clone()
	if err := next.DeleteRow(1); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	reg.Replace(next)
	if got := reg.Lookup(b.Rows[row.ID]); got.Found() {
		t.Fatalf("row deleted from model still found: %+v", got)
	}
}
