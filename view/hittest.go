package view

import (
	"github.com/iw2rmb/tableup/selection"
	"github.com/iw2rmb/tableup/table"
)

// hitTest maps viewport-local mouse coordinates to what lies under the
// pointer. (0,0) is the top-left of the visible content region.
func (m *Model) hitTest(x, y int) selection.Target {
	t, ok := m.table()
	if !ok {
		return selection.None
	}
	return newLayout(t, m.cfg.Scale).hit(m.tableID, x, y+m.viewport.YOffset)
}

// hit maps content coordinates to a target. A grid line is a resize handle
// for the track it ends, unless a merged cell covers it. Crossings resolve
// to the column handle.
func (l layout) hit(tableID string, x, y int) selection.Target {
	if x < 0 || y < 0 || x >= l.Width() || y >= l.Height() {
		return selection.None
	}
	col, onCol := track(l.xs, x)
	row, onRow := track(l.ys, y)
	if col < 0 || row < 0 {
		return selection.None
	}

	switch {
	case onCol && onRow:
		if !l.joined(row, col, row+1, col+1) {
			return selection.BoundaryTarget(tableID, selection.Boundary{Axis: selection.AxisColumn, Index: col})
		}
	case onCol:
		if !l.joined(row, col, row, col+1) {
			return selection.BoundaryTarget(tableID, selection.Boundary{Axis: selection.AxisColumn, Index: col})
		}
	case onRow:
		if !l.joined(row, col, row+1, col) {
			return selection.BoundaryTarget(tableID, selection.Boundary{Axis: selection.AxisRow, Index: row})
		}
	}

	c, ok := l.t.CellAt(table.Pos{Row: row, Col: col})
	if !ok {
		return selection.None
	}
	return selection.CellTarget(tableID, c.ID)
}

// joined reports whether one cell covers both grid positions.
func (l layout) joined(r1, c1, r2, c2 int) bool {
	a, ok := l.t.CellAt(table.Pos{Row: r1, Col: c1})
	if !ok {
		return false
	}
	b, ok := l.t.CellAt(table.Pos{Row: r2, Col: c2})
	return ok && a.ID == b.ID
}
