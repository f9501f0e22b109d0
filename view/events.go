package view

import (
	"github.com/iw2rmb/tableup/selection"
	"github.com/iw2rmb/tableup/table"
)

// ChangeEvent reports a change of the shown table or of the selection.
type ChangeEvent struct {
	Table      string
	Rows, Cols int
	// Widths and Heights are the table geometry in pixels.
	Widths, Heights []int

	State     selection.State
	Selection struct {
		Rect   table.Rect
		Cells  []table.CellID
		Active bool
	}
}

// changeKey identifies what a ChangeEvent was built from. Committed models
// are never mutated, so pointer identity tracks table changes.
type changeKey struct {
	model *table.Table
	state selection.State
	rect  table.Rect
	sel   bool
}

func (m *Model) currentChangeKey() changeKey {
	k := changeKey{state: m.coord.State()}
	k.model, _ = m.table()
	if sel, ok := m.coord.Selection(); ok {
		k.rect, k.sel = sel.Rect, true
	}
	return k
}

func (m *Model) buildChangeEvent() ChangeEvent {
	ev := ChangeEvent{Table: m.tableID, State: m.coord.State()}
	if t, ok := m.table(); ok {
		ev.Rows, ev.Cols = t.RowCount(), t.ColCount()
		ev.Widths, ev.Heights = t.ColumnWidths(), t.RowHeights()
	}
	if sel, ok := m.coord.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Rect = sel.Rect
		ev.Selection.Cells = sel.Cells
	}
	return ev
}

// notifyChange calls OnChange when the shown state moved since the last
// event.
func (m *Model) notifyChange() {
	k := m.currentChangeKey()
	if k == m.lastChange {
		return
	}
	m.lastChange = k
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(m.buildChangeEvent())
	}
}
