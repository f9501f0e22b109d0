package table

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInsertColumn_DefaultWidths(t *testing.T) {
	tb := New(2, 2, Options{DefaultColumnWidth: 80})
	if err := tb.InsertColumn(1, 2); err != nil {
		t.Fatalf("InsertColumn: %v", err)
	}
	mustCheck(t, tb)

	if diff := cmp.Diff([]int{80, 80, 80, 80}, tb.ColumnWidths()); diff != "" {
		t.Fatalf("widths mismatch (-want +got):\n%s", diff)
	}
	if got, want := tb.Width(), 320; got != want {
		t.Fatalf("width: got %d, want %d", got, want)
	}
	if diff := cmp.Diff(unitCells(2, 4), tb.Snapshot().Cells); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertColumn_ExtendsCrossingSpan(t *testing.T) {
	tb := New(2, 3, Options{})
	merged, err := tb.MergeCells([]CellID{cellAt(t, tb, 0, 0).ID, cellAt(t, tb, 0, 1).ID})
	if err != nil {
		t.Fatalf("MergeCells: %v", err)
	}

	if err := tb.InsertColumn(1, 1); err != nil {
		t.Fatalf("InsertColumn: %v", err)
	}
	mustCheck(t, tb)

	c, _ := tb.Cell(merged)
	if c.Span != (Span{Rows: 1, Cols: 3}) {
		t.Fatalf("merged span: got %+v, want 1x3", c.Span)
	}
	if got := cellAt(t, tb, 0, 3).Pos; got != (Pos{Row: 0, Col: 3}) {
		t.Fatalf("shifted cell pos: got %+v", got)
	}
	// Row 1 is not crossed, so it gains one new cell.
	if got, want := tb.CellCount(), 2+4; got != want {
		t.Fatalf("cells: got %d, want %d", got, want)
	}
}

func TestInsertColumn_Bounds(t *testing.T) {
	tb := New(1, 2, Options{})
	for _, at := range []int{-1, 3} {
		if err := tb.InsertColumn(at, 1); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("InsertColumn(%d): got %v, want ErrOutOfBounds", at, err)
		}
	}
	if err := tb.InsertColumn(2, 1); err != nil {
		t.Fatalf("InsertColumn(end): %v", err)
	}
	if err := tb.InsertColumn(0, MaxColumns); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("InsertColumn past MaxColumns: got %v, want ErrOutOfBounds", err)
	}
	if got := tb.ColCount(); got != 3 {
		t.Fatalf("cols after rejected insert: got %d, want 3", got)
	}
	mustCheck(t, tb)
}

func TestDeleteColumn_ShrinksSpan(t *testing.T) {
	tb := New(2, 3, Options{})
	merged, err := tb.MergeCells(tb.CellsIn(Rect{Top: 0, Left: 1, Bottom: 2, Right: 3}))
	if err != nil {
		t.Fatalf("MergeCells: %v", err)
	}

	if err := tb.DeleteColumn(1); err != nil {
		t.Fatalf("DeleteColumn: %v", err)
	}
	mustCheck(t, tb)

	c, _ := tb.Cell(merged)
	if c.Pos != (Pos{Row: 0, Col: 1}) || c.Span != (Span{Rows: 2, Cols: 1}) {
		t.Fatalf("merged cell: got pos %+v span %+v", c.Pos, c.Span)
	}
	if got, want := tb.Width(), 200; got != want {
		t.Fatalf("width: got %d, want %d", got, want)
	}
}

func TestDeleteColumn_RejectsOnlyColumn(t *testing.T) {
	tb := New(3, 1, Options{})
	before := tb.Snapshot()
	if err := tb.DeleteColumn(0); !errors.Is(err, ErrInvalidSpan) {
		t.Fatalf("DeleteColumn: got %v, want ErrInvalidSpan", err)
	}
	if diff := cmp.Diff(before, tb.Snapshot()); diff != "" {
		t.Fatalf("table changed (-want +got):\n%s", diff)
	}
}

func TestInsertThenDeleteColumn_RestoresShape(t *testing.T) {
	tb := New(3, 3, Options{})
	if _, err := tb.MergeCells(tb.CellsIn(Rect{Top: 1, Left: 1, Bottom: 3, Right: 3})); err != nil {
		t.Fatalf("MergeCells: %v", err)
	}
	for at := 0; at <= tb.ColCount(); at++ {
		before := tb.Snapshot()
		if err := tb.InsertColumn(at, 1); err != nil {
			t.Fatalf("InsertColumn(%d): %v", at, err)
		}
		if err := tb.DeleteColumn(at); err != nil {
			t.Fatalf("DeleteColumn(%d): %v", at, err)
		}
		mustCheck(t, tb)
		if diff := cmp.Diff(before, tb.Snapshot()); diff != "" {
			t.Fatalf("at=%d: shape changed (-want +got):\n%s", at, diff)
		}
	}
}
