package table

import "errors"

var (
	// ErrOutOfBounds reports a row, column, or cell handle outside the table.
	ErrOutOfBounds = errors.New("table: out of bounds")
	// ErrNonRectangularSelection reports a merge target that is not an exact
	// rectangular set of cells.
	ErrNonRectangularSelection = errors.New("table: non-rectangular selection")
	// ErrInvalidSpan reports a change that would break the partition of the grid.
	ErrInvalidSpan = errors.New("table: invalid span")
)
