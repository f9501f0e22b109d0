package table

// CellID is a handle into a table's cell arena.
type CellID int32

// RowID is a handle into a table's row arena.
type RowID int32

const (
	NoCell CellID = -1
	NoRow  RowID  = -1
)

// Pos is a 0-based grid position.
type Pos struct {
	Row int
	Col int
}

// Span is the number of grid rows and columns a cell covers.
type Span struct {
	Rows int
	Cols int
}

// Unit reports whether the span covers exactly one grid slot.
func (s Span) Unit() bool { return s.Rows == 1 && s.Cols == 1 }

// Rect is a half-open grid rectangle: [Top, Bottom) x [Left, Right).
type Rect struct {
	Top, Left     int
	Bottom, Right int
}

// RectAt returns the rectangle covered by a cell at p with span s.
func RectAt(p Pos, s Span) Rect {
	return Rect{Top: p.Row, Left: p.Col, Bottom: p.Row + s.Rows, Right: p.Col + s.Cols}
}

func (r Rect) Rows() int { return r.Bottom - r.Top }

func (r Rect) Cols() int { return r.Right - r.Left }

func (r Rect) Area() int { return r.Rows() * r.Cols() }

func (r Rect) IsEmpty() bool { return r.Bottom <= r.Top || r.Right <= r.Left }

func (r Rect) Contains(p Pos) bool {
	return p.Row >= r.Top && p.Row < r.Bottom && p.Col >= r.Left && p.Col < r.Right
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect{
		Top:    min(r.Top, o.Top),
		Left:   min(r.Left, o.Left),
		Bottom: max(r.Bottom, o.Bottom),
		Right:  max(r.Right, o.Right),
	}
}

// Cell is a read-only view of a cell.
type Cell struct {
	ID   CellID
	Row  RowID
	Pos  Pos
	Span Span
}

// Rect returns the grid rectangle the cell covers.
func (c Cell) Rect() Rect { return RectAt(c.Pos, c.Span) }

// Row is a read-only view of a row.
type Row struct {
	ID     RowID
	Index  int
	Height int
	// Cells anchored in this row, ordered by column.
	Cells []CellID
}

// Options controls default and minimum geometry.
type Options struct {
	DefaultColumnWidth int // default: 100
	MinColumnWidth     int // default: 26
	DefaultRowHeight   int // default: 36
	MinRowHeight       int // default: 36
}

func (o Options) withDefaults() Options {
	if o.DefaultColumnWidth <= 0 {
		o.DefaultColumnWidth = 100
	}
	if o.MinColumnWidth <= 0 {
		o.MinColumnWidth = 26
	}
	if o.DefaultRowHeight <= 0 {
		o.DefaultRowHeight = 36
	}
	if o.MinRowHeight <= 0 {
		o.MinRowHeight = 36
	}
	if o.DefaultColumnWidth < o.MinColumnWidth {
		o.DefaultColumnWidth = o.MinColumnWidth
	}
	if o.DefaultRowHeight < o.MinRowHeight {
		o.DefaultRowHeight = o.MinRowHeight
	}
	return o
}
