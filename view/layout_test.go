package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/tableup/selection"
	"github.com/iw2rmb/tableup/table"
)

func TestLayout_GridLines(t *testing.T) {
	m := table.New(2, 3, table.Options{})
	if _, err := m.ResizeColumn(0, 150); err != nil {
		t.Fatalf("ResizeColumn: %v", err)
	}
	if _, err := m.ResizeRow(1, 80); err != nil {
		t.Fatalf("ResizeRow: %v", err)
	}
	l := newLayout(m, Scale{}.withDefaults())
	if diff := cmp.Diff([]int{0, 16, 22, 33}, l.xs); diff != "" {
		t.Fatalf("xs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2, 5}, l.ys); diff != "" {
		t.Fatalf("ys (-want +got):\n%s", diff)
	}
	if l.Width() != 34 || l.Height() != 6 {
		t.Fatalf("size=%dx%d, want 34x6", l.Width(), l.Height())
	}
}

func TestLayout_Hit(t *testing.T) {
	m := table.New(2, 2, table.Options{})
	merged, err := m.MergeCells([]table.CellID{cellAt(t, m, 0, 0), cellAt(t, m, 0, 1)})
	if err != nil {
		t.Fatalf("MergeCells: %v", err)
	}
	l := newLayout(m, Scale{}.withDefaults())

	col := func(i int) selection.Target {
		return selection.BoundaryTarget("t", selection.Boundary{Axis: selection.AxisColumn, Index: i})
	}
	row := func(i int) selection.Target {
		return selection.BoundaryTarget("t", selection.Boundary{Axis: selection.AxisRow, Index: i})
	}

	cases := []struct {
		name string
		x, y int
		want selection.Target
	}{
		{"merged interior", 5, 1, selection.CellTarget("t", merged)},
		{"line hidden by merge", 11, 1, selection.CellTarget("t", merged)},
		{"unit cell", 16, 3, selection.CellTarget("t", cellAt(t, m, 1, 1))},
		{"column line", 11, 3, col(0)},
		{"crossing", 11, 2, col(0)},
		{"row line", 5, 2, row(0)},
		{"outer right", 22, 1, col(1)},
		{"outer bottom", 5, 4, row(1)},
		{"outer left", 0, 1, selection.None},
		{"outer top", 5, 0, selection.None},
		{"outside", 30, 1, selection.None},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, l.hit("t", tc.x, tc.y)); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", tc.name, diff)
		}
	}
}

func cellAt(t *testing.T, m *table.Table, row, col int) table.CellID {
	t.Helper()
	c, ok := m.CellAt(table.Pos{Row: row, Col: col})
	if !ok {
		t.Fatalf("no cell at (%d,%d)", row, col)
	}
	return c.ID
}
