package table

import (
	"fmt"
	"slices"
)

// InsertRow inserts count empty rows before index at (0..RowCount).
//
// Cells spanning across the insertion line grow by count; every other
// column of the new rows gets a fresh unit cell. It returns the new rows.
func (t *Table) InsertRow(at, count int) ([]RowID, error) {
	if at < 0 || at > t.RowCount() {
		return nil, fmt.Errorf("%w: insert row at %d (rows=%d)", ErrOutOfBounds, at, t.RowCount())
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: insert %d rows", ErrOutOfBounds, count)
	}

	g := t.grid()
	crossing := make([]bool, t.ColCount())
	extended := map[CellID]bool{}
	if at > 0 && at < t.RowCount() {
		for c := range crossing {
			if above := g[at-1][c]; above == g[at][c] {
				crossing[c] = true
				extended[above] = true
			}
		}
	}

	added := make([]RowID, 0, count)
	for i := 0; i < count; i++ {
		rid := t.newRow(t.opt.DefaultRowHeight)
		added = append(added, rid)
		for c := range crossing {
			if !crossing[c] {
				t.newCell(rid, c, 1, 1)
			}
		}
	}
	for id := range extended {
		t.cells[id].rowSpan += count
	}
	t.order = slices.Insert(t.order, at, added...)
	t.reindex()
	return added, nil
}

// DeleteRow removes the row at index.
//
// Cells lying entirely on the row are destroyed; cells spanning beyond it
// shrink by one. A spanning cell anchored on the removed row moves its
// anchor to the following row. The last remaining row cannot be deleted.
func (t *Table) DeleteRow(index int) error {
	if index < 0 || index >= t.RowCount() {
		return fmt.Errorf("%w: delete row %d (rows=%d)", ErrOutOfBounds, index, t.RowCount())
	}
	if t.RowCount() == 1 {
		return fmt.Errorf("%w: cannot delete the only row", ErrInvalidSpan)
	}

	g := t.grid()
	removed := t.order[index]
	seen := map[CellID]bool{}
	for _, id := range g[index] {
		if seen[id] {
			continue
		}
		seen[id] = true
		rec := &t.cells[id]
		if rec.rowSpan == 1 {
			t.destroyCell(id)
			continue
		}
		rec.rowSpan--
		if rec.row == removed {
			t.detach(removed, id)
			t.attach(t.order[index+1], id)
		}
	}

	t.rows[removed].live = false
	t.rows[removed].cells = nil
	t.order = slices.Delete(t.order, index, index+1)
	t.reindex()
	return nil
}
