// Package selection turns pointer gestures over tables into selections and
// table operations.
//
// A Coordinator is an explicit state machine:
//
//	Idle -> Selecting -> Selected -> DraggingMerge -> Idle
//	Idle/Selected -> DraggingResize -> Idle
//
// It is synchronous and not safe for concurrent use.
package selection

import (
	"time"

	"github.com/iw2rmb/tableup/table"
)

type State uint8

const (
	StateIdle State = iota
	StateSelecting
	StateSelected
	StateDraggingResize
	StateDraggingMerge
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateSelected:
		return "selected"
	case StateDraggingResize:
		return "dragging-resize"
	case StateDraggingMerge:
		return "dragging-merge"
	default:
		return "unknown"
	}
}

// Axis is the direction of a resize handle.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisColumn
	AxisRow
)

// Boundary is the trailing edge of column or row Index.
type Boundary struct {
	Axis  Axis
	Index int
}

type Modifiers uint8

const (
	// ModMerge turns a drag started inside a selection into a merge drag
	// growing from that selection. Outside it, the press selects anew.
	ModMerge Modifiers = 1 << iota
	// ModExtend extends the current selection to the pressed cell.
	ModExtend
)

// Target is what lies under the pointer.
type Target struct {
	// Table is empty when the pointer is outside every table.
	Table string
	// Cell is table.NoCell when the pointer is not over a cell.
	Cell     table.CellID
	Boundary Boundary
}

// None is the target of a pointer outside every table.
var None = Target{Cell: table.NoCell}

// CellTarget returns the target of a pointer over cell.
func CellTarget(tableID string, cell table.CellID) Target {
	return Target{Table: tableID, Cell: cell}
}

// BoundaryTarget returns the target of a pointer over a resize handle.
func BoundaryTarget(tableID string, b Boundary) Target {
	return Target{Table: tableID, Cell: table.NoCell, Boundary: b}
}

type PointerEvent struct {
	Target Target
	// Coord is the pointer position along the resize axis, in the same
	// units as column widths and row heights. Only resize drags read it.
	Coord int
	Mods  Modifiers
	// Time defaults to the coordinator clock when zero.
	Time time.Time
}

// Selection is a rectangular cell selection in one table.
type Selection struct {
	Table string
	Rect  table.Rect
	// Cells are the cells inside Rect in document order.
	Cells []table.CellID
}

// Ops is the subset of the engine the coordinator drives.
type Ops interface {
	Table(tableID string) (*table.Table, bool)
	MergeCells(tableID string, cells []table.CellID) (table.CellID, error)
	ResizeColumn(tableID string, col, width int) (int, error)
	ResizeRow(tableID string, index, height int) (int, error)
}
