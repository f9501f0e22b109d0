package selection

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/tableup/table"
)

// ErrStaleSelection reports a gesture whose table or cells no longer exist.
var ErrStaleSelection = errors.New("selection: table changed under the gesture")

type Options struct {
	// Debounce is the minimum interval between live resize commits.
	Debounce time.Duration // default: 50ms
	// OnError receives errors of operations the coordinator commits.
	OnError func(error)
	Logger  logrus.FieldLogger // default: discard
	// Now is the clock used for events without a timestamp.
	Now func() time.Time // default: time.Now
}

type Coordinator struct {
	ops Ops
	opt Options

	state   State
	tableID string

	// Selecting, Selected, DraggingMerge.
	anchor, focus table.CellID
	rect          table.Rect
	mergeAnchor   table.CellID
	mergeRect     table.Rect

	// DraggingResize.
	boundary   Boundary
	startCoord int
	startSize  int
	committed  int
	pending    int
	hasPending bool
	lastCommit time.Time

	lastErr error
}

func New(ops Ops, opt Options) *Coordinator {
	if opt.Debounce == 0 {
		opt.Debounce = 50 * time.Millisecond
	}
	if opt.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opt.Logger = l
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Coordinator{ops: ops, opt: opt}
}

func (c *Coordinator) State() State { return c.state }

// LastError returns the error of the most recent committed operation, or nil.
func (c *Coordinator) LastError() error { return c.lastErr }

// Selection returns the current selection while selecting or selected.
func (c *Coordinator) Selection() (Selection, bool) {
	var r table.Rect
	switch c.state {
	case StateSelecting, StateSelected:
		r = c.rect
	case StateDraggingMerge:
		r = c.mergeRect
	default:
		return Selection{}, false
	}
	t, ok := c.ops.Table(c.tableID)
	if !ok {
		return Selection{}, false
	}
	return Selection{Table: c.tableID, Rect: r, Cells: t.CellsIn(r)}, true
}

// ResizeTarget returns the boundary being dragged.
func (c *Coordinator) ResizeTarget() (string, Boundary, bool) {
	if c.state != StateDraggingResize {
		return "", Boundary{}, false
	}
	return c.tableID, c.boundary, true
}

func (c *Coordinator) PointerDown(ev PointerEvent) {
	tg := ev.Target
	if tg.Table == "" {
		c.reset()
		return
	}
	t, ok := c.ops.Table(tg.Table)
	if !ok {
		c.fail(fmt.Errorf("%w: table %q", ErrStaleSelection, tg.Table))
		c.reset()
		return
	}

	if tg.Boundary.Axis != AxisNone && c.state != StateDraggingMerge {
		c.beginResize(t, ev)
		return
	}
	if tg.Cell == table.NoCell {
		c.reset()
		return
	}

	sameTable := tg.Table == c.tableID
	switch {
	case c.state == StateSelected && sameTable && ev.Mods&ModMerge != 0 && c.inSelection(t, tg.Cell):
		c.state = StateDraggingMerge
		c.mergeAnchor = c.anchor
		c.mergeRect = c.rect
	case c.state == StateSelected && sameTable && ev.Mods&ModExtend != 0:
		c.state = StateSelecting
		c.extend(t, tg.Cell)
	default:
		r, ok := t.RectOf(tg.Cell)
		if !ok {
			c.reset()
			return
		}
		c.state = StateSelecting
		c.tableID = tg.Table
		c.anchor, c.focus, c.rect = tg.Cell, tg.Cell, r
	}
}

func (c *Coordinator) PointerMove(ev PointerEvent) {
	switch c.state {
	case StateSelecting:
		if t, ok := c.targetCell(ev); ok {
			c.extend(t, ev.Target.Cell)
		}
	case StateDraggingMerge:
		if t, ok := c.targetCell(ev); ok {
			if r, ok := t.ClampSelection(c.mergeAnchor, ev.Target.Cell); ok {
				c.mergeRect = r
			}
		}
	case StateDraggingResize:
		c.pending = c.startSize + ev.Coord - c.startCoord
		c.hasPending = true
		now := c.eventTime(ev)
		if now.Sub(c.lastCommit) >= c.opt.Debounce {
			c.commitResize(now)
		}
	}
}

func (c *Coordinator) PointerUp(ev PointerEvent) {
	switch c.state {
	case StateSelecting:
		if t, ok := c.targetCell(ev); ok {
			c.extend(t, ev.Target.Cell)
		}
		c.state = StateSelected
	case StateDraggingMerge:
		if t, ok := c.targetCell(ev); ok {
			if r, ok := t.ClampSelection(c.mergeAnchor, ev.Target.Cell); ok {
				c.mergeRect = r
			}
		}
		c.commitMerge()
		c.reset()
	case StateDraggingResize:
		c.pending = c.startSize + ev.Coord - c.startCoord
		c.hasPending = true
		c.commitResize(c.eventTime(ev))
		c.reset()
	}
}

// Cancel abandons the current gesture and drops any pending resize.
func (c *Coordinator) Cancel() {
	c.reset()
}

// Reset drops the selection, e.g. after the table was rebuilt.
func (c *Coordinator) Reset() { c.reset() }

func (c *Coordinator) reset() {
	*c = Coordinator{ops: c.ops, opt: c.opt, lastErr: c.lastErr}
}

func (c *Coordinator) targetCell(ev PointerEvent) (*table.Table, bool) {
	if ev.Target.Table != c.tableID || ev.Target.Cell == table.NoCell {
		return nil, false
	}
	return c.ops.Table(c.tableID)
}

// inSelection reports whether the anchor of cell lies in the selected
// rectangle.
func (c *Coordinator) inSelection(t *table.Table, cell table.CellID) bool {
	tc, ok := t.Cell(cell)
	return ok && c.rect.Contains(tc.Pos)
}

func (c *Coordinator) extend(t *table.Table, focus table.CellID) {
	r, ok := t.ClampSelection(c.anchor, focus)
	if !ok {
		c.fail(fmt.Errorf("%w: anchor cell %d", ErrStaleSelection, c.anchor))
		c.reset()
		return
	}
	c.focus, c.rect = focus, r
}

func (c *Coordinator) beginResize(t *table.Table, ev PointerEvent) {
	b := ev.Target.Boundary
	var sizes []int
	if b.Axis == AxisColumn {
		sizes = t.ColumnWidths()
	} else {
		sizes = t.RowHeights()
	}
	if b.Index < 0 || b.Index >= len(sizes) {
		c.fail(fmt.Errorf("%w: boundary %d", table.ErrOutOfBounds, b.Index))
		c.reset()
		return
	}
	c.reset()
	c.state = StateDraggingResize
	c.tableID = ev.Target.Table
	c.boundary = b
	c.startCoord = ev.Coord
	c.startSize = sizes[b.Index]
	c.committed = c.startSize
	c.lastCommit = c.eventTime(ev)
}

func (c *Coordinator) commitResize(now time.Time) {
	if !c.hasPending {
		return
	}
	c.hasPending = false
	c.lastCommit = now
	if c.pending == c.committed {
		return
	}
	var (
		applied int
		err     error
	)
	if c.boundary.Axis == AxisColumn {
		applied, err = c.ops.ResizeColumn(c.tableID, c.boundary.Index, c.pending)
	} else {
		applied, err = c.ops.ResizeRow(c.tableID, c.boundary.Index, c.pending)
	}
	if err != nil {
		c.fail(err)
		return
	}
	c.lastErr = nil
	c.committed = c.pending
	c.opt.Logger.WithFields(logrus.Fields{
		"table":   c.tableID,
		"index":   c.boundary.Index,
		"applied": applied,
	}).Debug("resize committed")
}

func (c *Coordinator) commitMerge() {
	t, ok := c.ops.Table(c.tableID)
	if !ok {
		c.fail(fmt.Errorf("%w: table %q", ErrStaleSelection, c.tableID))
		return
	}
	cells := t.CellsIn(c.mergeRect)
	if len(cells) < 2 {
		return
	}
	if _, err := c.ops.MergeCells(c.tableID, cells); err != nil {
		c.fail(err)
		return
	}
	c.lastErr = nil
}

func (c *Coordinator) fail(err error) {
	c.lastErr = err
	c.opt.Logger.WithError(err).Debug("table gesture failed")
	if c.opt.OnError != nil {
		c.opt.OnError(err)
	}
}

func (c *Coordinator) eventTime(ev PointerEvent) time.Time {
	if ev.Time.IsZero() {
		return c.opt.Now()
	}
	return ev.Time
}
