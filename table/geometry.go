package table

import (
	"fmt"
	"slices"
)

func (t *Table) ColumnWidths() []int { return slices.Clone(t.widths) }

// RowHeights returns row heights in row order.
func (t *Table) RowHeights() []int {
	out := make([]int, len(t.order))
	for i, id := range t.order {
		out[i] = t.rows[id].height
	}
	return out
}

// Width returns the table width: the sum of column widths.
func (t *Table) Width() int { return sum(t.widths) }

// Height returns the table height: the sum of row heights.
func (t *Table) Height() int { return sum(t.RowHeights()) }

// ResizeColumn sets the width of column col and returns the applied width.
//
// The width is clamped to MinColumnWidth. For every column but the last,
// the delta is taken from the right neighbour, which never drops below the
// minimum either, so the table width is unchanged. Resizing the last
// column changes the table width.
func (t *Table) ResizeColumn(col, width int) (int, error) {
	if col < 0 || col >= t.ColCount() {
		return 0, fmt.Errorf("%w: resize column %d (cols=%d)", ErrOutOfBounds, col, t.ColCount())
	}
	return resizeTrack(t.widths, col, width, t.opt.MinColumnWidth), nil
}

// ResizeRow sets the height of the row at index and returns the applied
// height, following the same rules as ResizeColumn.
func (t *Table) ResizeRow(index, height int) (int, error) {
	if index < 0 || index >= t.RowCount() {
		return 0, fmt.Errorf("%w: resize row %d (rows=%d)", ErrOutOfBounds, index, t.RowCount())
	}
	heights := t.RowHeights()
	applied := resizeTrack(heights, index, height, t.opt.MinRowHeight)
	for i, id := range t.order {
		t.rows[id].height = heights[i]
	}
	return applied, nil
}

// resizeTrack resizes sizes[i] in place, redistributing against sizes[i+1].
func resizeTrack(sizes []int, i, size, minSize int) int {
	size = max(size, minSize)
	if i == len(sizes)-1 {
		sizes[i] = size
		return size
	}
	limit := sizes[i] + sizes[i+1] - minSize
	size = min(size, max(limit, minSize))
	delta := size - sizes[i]
	sizes[i] = size
	sizes[i+1] -= delta
	return size
}

func sum(v []int) int {
	n := 0
	for _, x := range v {
		n += x
	}
	return n
}
