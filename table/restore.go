package table

import (
	"fmt"

	"github.com/google/uuid"
)

// RowSpec describes one serialized row: its height and the spans of the
// cells anchored in it, left to right.
type RowSpec struct {
	Height int
	Cells  []Span
}

type placement struct {
	row, col         int
	rowSpan, colSpan int
}

// Restore rebuilds a table from its serialized form.
//
// Cells are placed the way HTML places <td rowspan colspan>: each cell takes
// the first free column of its row. ids[r][k] is the handle of
// rows[r].Cells[k]. Any gap, overlap, or span leaving the grid is rejected
// with ErrInvalidSpan.
func Restore(id string, widths []int, rows []RowSpec, opt Options) (*Table, [][]CellID, error) {
	return restore(id, widths, rows, opt, false)
}

// MaxColumns bounds the column count of a restored table. Restore rejects
// wider input; RestoreLenient clamps it.
const MaxColumns = 1000

// RestoreLenient is like Restore but repairs malformed input: spans are
// clamped to the grid, missing columns are appended up to
// MaxColumns, and gaps are filled with unit cells that have no entry
// in ids. Cells starting past the last column are dropped, so ids[r] may
// be a prefix of rows[r].Cells.
func RestoreLenient(id string, widths []int, rows []RowSpec, opt Options) (*Table, [][]CellID, error) {
	return restore(id, widths, rows, opt, true)
}

func restore(id string, widths []int, rows []RowSpec, opt Options, lenient bool) (*Table, [][]CellID, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: no rows", ErrInvalidSpan)
	}
	opt = opt.withDefaults()
	if id == "" {
		id = uuid.NewString()
	}

	if len(widths) > MaxColumns {
		if !lenient {
			return nil, nil, fmt.Errorf("%w: %d columns", ErrInvalidSpan, len(widths))
		}
		widths = widths[:MaxColumns]
	}
	fixedCols := len(widths)
	occupied := map[Pos]bool{}
	places := make([][]placement, len(rows))
	maxRight := 0

	for r, spec := range rows {
		col := 0
		for k, s := range spec.Cells {
			for occupied[Pos{Row: r, Col: col}] {
				col++
			}
			if lenient && col >= MaxColumns {
				break
			}
			rs, cs := s.Rows, s.Cols
			if rs < 1 || cs < 1 {
				if !lenient {
					return nil, nil, fmt.Errorf("%w: row %d cell %d has span %dx%d", ErrInvalidSpan, r, k, rs, cs)
				}
				rs, cs = max(rs, 1), max(cs, 1)
			}
			if r+rs > len(rows) {
				if !lenient {
					return nil, nil, fmt.Errorf("%w: row %d cell %d spans past the last row", ErrInvalidSpan, r, k)
				}
				rs = len(rows) - r
			}
			if col+cs > MaxColumns {
				if !lenient {
					return nil, nil, fmt.Errorf("%w: row %d cell %d spans past column %d", ErrInvalidSpan, r, k, MaxColumns)
				}
				cs = MaxColumns - col
			}
			if fixedCols > 0 && col+cs > fixedCols && !lenient {
				return nil, nil, fmt.Errorf("%w: row %d cell %d spans past the last column", ErrInvalidSpan, r, k)
			}
			if fixedCols > 0 && col >= fixedCols && !lenient {
				return nil, nil, fmt.Errorf("%w: row %d has too many cells", ErrInvalidSpan, r)
			}
			for c := col + 1; c < col+cs; c++ {
				if occupied[Pos{Row: r, Col: c}] {
					if !lenient {
						return nil, nil, fmt.Errorf("%w: row %d cell %d overlaps a spanning cell", ErrInvalidSpan, r, k)
					}
					cs = c - col
					break
				}
			}
			for dr := 0; dr < rs; dr++ {
				for dc := 0; dc < cs; dc++ {
					occupied[Pos{Row: r + dr, Col: col + dc}] = true
				}
			}
			places[r] = append(places[r], placement{row: r, col: col, rowSpan: rs, colSpan: cs})
			maxRight = max(maxRight, col+cs)
			col += cs
		}
	}

	cols := max(fixedCols, maxRight)
	if cols == 0 {
		return nil, nil, fmt.Errorf("%w: no columns", ErrInvalidSpan)
	}

	t := &Table{id: id, opt: opt}
	t.widths = make([]int, cols)
	for c := range t.widths {
		w := opt.DefaultColumnWidth
		if c < len(widths) && widths[c] > 0 {
			w = widths[c]
		}
		t.widths[c] = max(w, opt.MinColumnWidth)
	}
	for _, spec := range rows {
		h := spec.Height
		if h <= 0 {
			h = opt.DefaultRowHeight
		}
		t.order = append(t.order, t.newRow(max(h, opt.MinRowHeight)))
	}

	ids := make([][]CellID, len(rows))
	for r := range places {
		for _, p := range places[r] {
			ids[r] = append(ids[r], t.newCell(t.order[r], p.col, p.rowSpan, p.colSpan))
		}
	}
	for r := range rows {
		for c := 0; c < cols; c++ {
			if occupied[Pos{Row: r, Col: c}] {
				continue
			}
			if !lenient {
				return nil, nil, fmt.Errorf("%w: gap at (%d,%d)", ErrInvalidSpan, r, c)
			}
			t.newCell(t.order[r], c, 1, 1)
		}
	}
	t.reindex()

	if err := t.Check(); err != nil {
		return nil, nil, err
	}
	return t, ids, nil
}
