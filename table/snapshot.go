package table

import (
	"fmt"
	"strings"
)

// CellShape is the identity-free shape of a cell.
type CellShape struct {
	Pos  Pos
	Span Span
}

// Snapshot is an identity-free structural view of a table. Two tables with
// equal snapshots have the same grid shape and geometry, regardless of the
// handles their cells carry.
type Snapshot struct {
	Rows    int
	Cols    int
	Widths  []int
	Heights []int
	Cells   []CellShape
}

func (t *Table) Snapshot() Snapshot {
	s := Snapshot{
		Rows:    t.RowCount(),
		Cols:    t.ColCount(),
		Widths:  t.ColumnWidths(),
		Heights: t.RowHeights(),
	}
	for _, c := range t.Cells() {
		s.Cells = append(s.Cells, CellShape{Pos: c.Pos, Span: c.Span})
	}
	return s
}

// String renders the occupancy grid, one line per row, with each slot
// labelled by the handle of its covering cell.
func (t *Table) String() string {
	var sb strings.Builder
	for r, row := range t.grid() {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, id := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%3d", id)
		}
	}
	return sb.String()
}
