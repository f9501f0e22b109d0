package table

import (
	"fmt"
	"slices"
)

// InsertColumn inserts count empty columns before index at (0..ColCount).
//
// Cells spanning across the insertion line grow by count; every other row
// gets fresh unit cells in the new columns. New columns take the default
// width, so the table grows by count*DefaultColumnWidth.
func (t *Table) InsertColumn(at, count int) error {
	if at < 0 || at > t.ColCount() {
		return fmt.Errorf("%w: insert column at %d (cols=%d)", ErrOutOfBounds, at, t.ColCount())
	}
	if count < 1 {
		return fmt.Errorf("%w: insert %d columns", ErrOutOfBounds, count)
	}
	if t.ColCount()+count > MaxColumns {
		return fmt.Errorf("%w: insert %d columns past %d", ErrOutOfBounds, count, MaxColumns)
	}

	g := t.grid()
	crossing := make([]bool, t.RowCount())
	extended := map[CellID]bool{}
	if at > 0 && at < t.ColCount() {
		for r := range crossing {
			if left := g[r][at-1]; left == g[r][at] {
				crossing[r] = true
				extended[left] = true
			}
		}
	}

	for id := range t.cells {
		rec := &t.cells[id]
		if rec.live && rec.col >= at {
			rec.col += count
		}
	}
	for id := range extended {
		t.cells[id].colSpan += count
	}
	for r, rid := range t.order {
		if crossing[r] {
			continue
		}
		for k := 0; k < count; k++ {
			t.newCell(rid, at+k, 1, 1)
		}
	}

	added := make([]int, count)
	for i := range added {
		added[i] = t.opt.DefaultColumnWidth
	}
	t.widths = slices.Insert(t.widths, at, added...)
	return nil
}

// DeleteColumn removes the column at index.
//
// Cells lying entirely in the column are destroyed; cells spanning beyond
// it shrink by one. The last remaining column cannot be deleted.
func (t *Table) DeleteColumn(index int) error {
	if index < 0 || index >= t.ColCount() {
		return fmt.Errorf("%w: delete column %d (cols=%d)", ErrOutOfBounds, index, t.ColCount())
	}
	if t.ColCount() == 1 {
		return fmt.Errorf("%w: cannot delete the only column", ErrInvalidSpan)
	}

	g := t.grid()
	seen := map[CellID]bool{}
	for r := range g {
		id := g[r][index]
		if seen[id] {
			continue
		}
		seen[id] = true
		if t.cells[id].colSpan == 1 {
			t.destroyCell(id)
			continue
		}
		t.cells[id].colSpan--
	}
	for id := range t.cells {
		rec := &t.cells[id]
		if rec.live && rec.col > index {
			rec.col--
		}
	}

	t.widths = slices.Delete(t.widths, index, index+1)
	return nil
}
