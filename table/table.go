package table

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

type cellRec struct {
	live    bool
	row     RowID
	col     int
	rowSpan int
	colSpan int
}

type rowRec struct {
	live   bool
	height int
	cells  []CellID
}

// Table is the authoritative structure of one table: ordered rows, column
// widths, and the cells tiling the grid.
//
// Handles are never reused within a table, so a CellID or RowID keeps
// identifying the same cell or row across operations until it is destroyed.
type Table struct {
	id  string
	opt Options

	order  []RowID
	rows   []rowRec
	cells  []cellRec
	widths []int

	rowIndex map[RowID]int
}

// New returns a rows x cols table of unit cells with default geometry.
func New(rows, cols int, opt Options) *Table {
	return newWithID(uuid.NewString(), rows, cols, opt)
}

func newWithID(id string, rows, cols int, opt Options) *Table {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	t := &Table{id: id, opt: opt.withDefaults()}
	t.widths = make([]int, cols)
	for c := range t.widths {
		t.widths[c] = t.opt.DefaultColumnWidth
	}
	for r := 0; r < rows; r++ {
		rid := t.newRow(t.opt.DefaultRowHeight)
		t.order = append(t.order, rid)
		for c := 0; c < cols; c++ {
			t.newCell(rid, c, 1, 1)
		}
	}
	t.reindex()
	return t
}

func (t *Table) ID() string { return t.id }

func (t *Table) Options() Options { return t.opt }

func (t *Table) RowCount() int { return len(t.order) }

func (t *Table) ColCount() int { return len(t.widths) }

// Cell returns the cell for id.
func (t *Table) Cell(id CellID) (Cell, bool) {
	if !t.liveCell(id) {
		return Cell{}, false
	}
	rec := t.cells[id]
	return Cell{
		ID:   id,
		Row:  rec.row,
		Pos:  Pos{Row: t.rowIndex[rec.row], Col: rec.col},
		Span: Span{Rows: rec.rowSpan, Cols: rec.colSpan},
	}, true
}

// RectOf returns the grid rectangle covered by cell id.
func (t *Table) RectOf(id CellID) (Rect, bool) {
	c, ok := t.Cell(id)
	if !ok {
		return Rect{}, false
	}
	return c.Rect(), true
}

// CellAt returns the cell covering grid position p.
func (t *Table) CellAt(p Pos) (Cell, bool) {
	if p.Row < 0 || p.Row >= t.RowCount() || p.Col < 0 || p.Col >= t.ColCount() {
		return Cell{}, false
	}
	id := t.grid()[p.Row][p.Col]
	if id == NoCell {
		return Cell{}, false
	}
	return t.Cell(id)
}

// Row returns the row for id.
func (t *Table) Row(id RowID) (Row, bool) {
	if !t.liveRow(id) {
		return Row{}, false
	}
	rec := t.rows[id]
	return Row{
		ID:     id,
		Index:  t.rowIndex[id],
		Height: rec.height,
		Cells:  slices.Clone(rec.cells),
	}, true
}

// RowAt returns the row at index i.
func (t *Table) RowAt(i int) (Row, bool) {
	if i < 0 || i >= len(t.order) {
		return Row{}, false
	}
	return t.Row(t.order[i])
}

// Rows returns all rows in order.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.order))
	for _, id := range t.order {
		r, _ := t.Row(id)
		out = append(out, r)
	}
	return out
}

// Cells returns all cells in document order (row, then column).
func (t *Table) Cells() []Cell {
	var out []Cell
	for _, rid := range t.order {
		for _, cid := range t.rows[rid].cells {
			c, _ := t.Cell(cid)
			out = append(out, c)
		}
	}
	return out
}

// CellCount returns the number of live cells.
func (t *Table) CellCount() int {
	n := 0
	for _, rid := range t.order {
		n += len(t.rows[rid].cells)
	}
	return n
}

// Clone returns a deep copy sharing no state with t.
func (t *Table) Clone() *Table {
	out := &Table{
		id:     t.id,
		opt:    t.opt,
		order:  slices.Clone(t.order),
		rows:   make([]rowRec, len(t.rows)),
		cells:  slices.Clone(t.cells),
		widths: slices.Clone(t.widths),
	}
	for i, r := range t.rows {
		r.cells = slices.Clone(r.cells)
		out.rows[i] = r
	}
	out.reindex()
	return out
}

// CloneAs is Clone with a different table id. Handles are preserved.
func (t *Table) CloneAs(id string) *Table {
	out := t.Clone()
	out.id = id
	return out
}

// Check verifies the partition invariant and geometry.
func (t *Table) Check() error {
	rows, cols := t.RowCount(), t.ColCount()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("%w: empty table", ErrInvalidSpan)
	}
	covered := make([][]CellID, rows)
	for r := range covered {
		covered[r] = make([]CellID, cols)
		for c := range covered[r] {
			covered[r][c] = NoCell
		}
	}
	for _, rid := range t.order {
		prevCol := -1
		for _, cid := range t.rows[rid].cells {
			c, ok := t.Cell(cid)
			if !ok {
				return fmt.Errorf("%w: row %d references dead cell %d", ErrInvalidSpan, t.rowIndex[rid], cid)
			}
			if c.Row != rid {
				return fmt.Errorf("%w: cell %d anchored to another row", ErrInvalidSpan, cid)
			}
			if c.Pos.Col <= prevCol {
				return fmt.Errorf("%w: row %d cells out of column order", ErrInvalidSpan, c.Pos.Row)
			}
			prevCol = c.Pos.Col
			if c.Span.Rows < 1 || c.Span.Cols < 1 {
				return fmt.Errorf("%w: cell %d has span %dx%d", ErrInvalidSpan, cid, c.Span.Rows, c.Span.Cols)
			}
			rect := c.Rect()
			if rect.Bottom > rows || rect.Right > cols || rect.Left < 0 {
				return fmt.Errorf("%w: cell %d exceeds the grid", ErrInvalidSpan, cid)
			}
			for r := rect.Top; r < rect.Bottom; r++ {
				for col := rect.Left; col < rect.Right; col++ {
					if covered[r][col] != NoCell {
						return fmt.Errorf("%w: cells %d and %d overlap at (%d,%d)", ErrInvalidSpan, covered[r][col], cid, r, col)
					}
					covered[r][col] = cid
				}
			}
		}
	}
	for r := range covered {
		for c := range covered[r] {
			if covered[r][c] == NoCell {
				return fmt.Errorf("%w: gap at (%d,%d)", ErrInvalidSpan, r, c)
			}
		}
	}
	for c, w := range t.widths {
		if w <= 0 {
			return fmt.Errorf("%w: column %d width %d", ErrInvalidSpan, c, w)
		}
	}
	for _, rid := range t.order {
		if t.rows[rid].height <= 0 {
			return fmt.Errorf("%w: row %d height %d", ErrInvalidSpan, t.rowIndex[rid], t.rows[rid].height)
		}
	}
	return nil
}

func (t *Table) liveCell(id CellID) bool {
	return id >= 0 && int(id) < len(t.cells) && t.cells[id].live
}

func (t *Table) liveRow(id RowID) bool {
	return id >= 0 && int(id) < len(t.rows) && t.rows[id].live
}

func (t *Table) newRow(height int) RowID {
	id := RowID(len(t.rows))
	t.rows = append(t.rows, rowRec{live: true, height: height})
	return id
}

func (t *Table) newCell(row RowID, col, rowSpan, colSpan int) CellID {
	id := CellID(len(t.cells))
	t.cells = append(t.cells, cellRec{live: true, row: row, col: col, rowSpan: rowSpan, colSpan: colSpan})
	t.attach(row, id)
	return id
}

// attach inserts cell into row keeping column order.
func (t *Table) attach(row RowID, cell CellID) {
	rec := &t.rows[row]
	col := t.cells[cell].col
	i, _ := slices.BinarySearchFunc(rec.cells, col, func(id CellID, col int) int {
		return t.cells[id].col - col
	})
	rec.cells = slices.Insert(rec.cells, i, cell)
	t.cells[cell].row = row
}

func (t *Table) detach(row RowID, cell CellID) {
	rec := &t.rows[row]
	if i := slices.Index(rec.cells, cell); i >= 0 {
		rec.cells = slices.Delete(rec.cells, i, i+1)
	}
}

func (t *Table) destroyCell(id CellID) {
	t.detach(t.cells[id].row, id)
	t.cells[id].live = false
}

func (t *Table) reindex() {
	t.rowIndex = make(map[RowID]int, len(t.order))
	for i, id := range t.order {
		t.rowIndex[id] = i
	}
}

// grid returns the occupancy grid: grid[row][col] is the covering cell.
func (t *Table) grid() [][]CellID {
	rows, cols := t.RowCount(), t.ColCount()
	g := make([][]CellID, rows)
	for r := range g {
		g[r] = make([]CellID, cols)
		for c := range g[r] {
			g[r][c] = NoCell
		}
	}
	for ri, rid := range t.order {
		for _, cid := range t.rows[rid].cells {
			rec := t.cells[cid]
			for r := ri; r < ri+rec.rowSpan && r < rows; r++ {
				for c := rec.col; c < rec.col+rec.colSpan && c < cols; c++ {
					g[r][c] = cid
				}
			}
		}
	}
	return g
}
