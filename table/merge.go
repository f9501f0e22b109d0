package table

import (
	"fmt"
	"slices"
)

// MergeCells merges cells into one cell covering their union.
//
// The cells must tile an exact rectangle: every grid slot of the bounding
// rectangle is covered by one of them. The top-left cell survives and the
// others are destroyed. Merging a single cell is a no-op.
func (t *Table) MergeCells(ids []CellID) (CellID, error) {
	if len(ids) == 0 {
		return NoCell, fmt.Errorf("%w: empty selection", ErrNonRectangularSelection)
	}
	set := make(map[CellID]bool, len(ids))
	var bounds Rect
	for _, id := range ids {
		c, ok := t.Cell(id)
		if !ok {
			return NoCell, fmt.Errorf("%w: cell %d", ErrOutOfBounds, id)
		}
		set[id] = true
		bounds = bounds.Union(c.Rect())
	}

	g := t.grid()
	if !coveredExactly(g, bounds, set) {
		return NoCell, fmt.Errorf("%w: cells do not tile rows %d-%d, cols %d-%d",
			ErrNonRectangularSelection, bounds.Top, bounds.Bottom-1, bounds.Left, bounds.Right-1)
	}

	survivor := g[bounds.Top][bounds.Left]
	if len(set) == 1 {
		return survivor, nil
	}
	for id := range set {
		if id != survivor {
			t.destroyCell(id)
		}
	}
	t.cells[survivor].rowSpan = bounds.Rows()
	t.cells[survivor].colSpan = bounds.Cols()
	return survivor, nil
}

// SplitCell splits a merged cell back into unit cells and returns the newly
// created cells in document order. Splitting a unit cell is a no-op.
func (t *Table) SplitCell(id CellID) ([]CellID, error) {
	c, ok := t.Cell(id)
	if !ok {
		return nil, fmt.Errorf("%w: cell %d", ErrOutOfBounds, id)
	}
	if c.Span.Unit() {
		return nil, nil
	}

	rect := c.Rect()
	var added []CellID
	for r := rect.Top; r < rect.Bottom; r++ {
		rid := t.order[r]
		for col := rect.Left; col < rect.Right; col++ {
			if r == rect.Top && col == rect.Left {
				continue
			}
			added = append(added, t.newCell(rid, col, 1, 1))
		}
	}
	t.cells[id].rowSpan = 1
	t.cells[id].colSpan = 1
	return added, nil
}

// CellsIn returns the cells intersecting r in document order.
func (t *Table) CellsIn(r Rect) []CellID {
	g := t.grid()
	seen := map[CellID]bool{}
	var out []CellID
	for row := max(r.Top, 0); row < min(r.Bottom, t.RowCount()); row++ {
		for col := max(r.Left, 0); col < min(r.Right, t.ColCount()); col++ {
			id := g[row][col]
			if id == NoCell || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	slices.SortFunc(out, func(a, b CellID) int {
		pa, pb := t.cells[a], t.cells[b]
		if ra, rb := t.rowIndex[pa.row], t.rowIndex[pb.row]; ra != rb {
			return ra - rb
		}
		return pa.col - pb.col
	})
	return out
}

// IsExactRect reports whether the cells intersecting r lie entirely inside r.
func (t *Table) IsExactRect(r Rect) bool {
	if r.IsEmpty() || r.Top < 0 || r.Left < 0 || r.Bottom > t.RowCount() || r.Right > t.ColCount() {
		return false
	}
	for _, id := range t.CellsIn(r) {
		c, _ := t.Cell(id)
		cr := c.Rect()
		if cr.Top < r.Top || cr.Left < r.Left || cr.Bottom > r.Bottom || cr.Right > r.Right {
			return false
		}
	}
	return true
}

// ClampSelection returns the largest exact rectangle containing anchor and
// growing towards focus, bounded by the union of both cells.
//
// A drag whose bounding rectangle cuts through a merged cell is clamped
// back towards the anchor until the rectangle is exact again. The anchor
// cell alone is always a valid result.
func (t *Table) ClampSelection(anchor, focus CellID) (Rect, bool) {
	a, ok := t.Cell(anchor)
	if !ok {
		return Rect{}, false
	}
	f, ok := t.Cell(focus)
	if !ok {
		return a.Rect(), true
	}
	ar := a.Rect()
	bounds := ar.Union(f.Rect())
	if t.IsExactRect(bounds) {
		return bounds, true
	}

	rowRanges := spanCandidates(ar.Top, ar.Bottom, bounds.Top, bounds.Bottom)
	colRanges := spanCandidates(ar.Left, ar.Right, bounds.Left, bounds.Right)

	best := ar
	for _, rr := range rowRanges {
		for _, cr := range colRanges {
			cand := Rect{Top: rr[0], Bottom: rr[1], Left: cr[0], Right: cr[1]}
			if cand.Area() <= best.Area() {
				continue
			}
			if t.IsExactRect(cand) {
				best = cand
			}
		}
	}
	return best, true
}

// spanCandidates enumerates [lo, hi) ranges that contain [alo, ahi) and
// extend only towards the side of bounds that lies beyond the anchor.
func spanCandidates(alo, ahi, blo, bhi int) [][2]int {
	var out [][2]int
	for lo := alo; lo >= blo; lo-- {
		for hi := ahi; hi <= bhi; hi++ {
			out = append(out, [2]int{lo, hi})
		}
	}
	return out
}

func coveredExactly(g [][]CellID, r Rect, set map[CellID]bool) bool {
	if r.IsEmpty() || r.Bottom > len(g) {
		return false
	}
	for row := r.Top; row < r.Bottom; row++ {
		if r.Right > len(g[row]) {
			return false
		}
		for col := r.Left; col < r.Right; col++ {
			if !set[g[row][col]] {
				return false
			}
		}
	}
	return true
}
