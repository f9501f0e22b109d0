package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/formats"
	"github.com/iw2rmb/tableup/table"
)

// InsertTable inserts a rows x cols table of empty cells under parent at
// index (-1 appends) and returns its id.
func (e *Engine) InsertTable(parent doc.NodeID, index, rows, cols int) (string, error) {
	if rows < 1 || cols < 1 {
		return "", fmt.Errorf("insert table: %w: %dx%d", table.ErrOutOfBounds, rows, cols)
	}
	model := table.New(rows, cols, e.opt)
	b, edits := formats.BuildTable(e.host, parent, index, model, nil)
	change, err := e.apply(edits)
	if err != nil {
		return "", fmt.Errorf("insert table: %w", err)
	}
	e.reg.Add(model, b)
	e.log.WithFields(logrus.Fields{
		"op":      "insert-table",
		"table":   model.ID(),
		"edits":   len(edits),
		"version": change.VersionAfter,
	}).Debug("table operation committed")
	return model.ID(), nil
}

// DeleteTable removes a table and its content.
func (e *Engine) DeleteTable(tableID string) error {
	tx, err := e.begin("delete-table", tableID)
	if err != nil {
		return err
	}
	if _, err := e.apply([]doc.Edit{doc.Remove(tx.bind.Main)}); err != nil {
		e.reject(tx, err)
		return fmt.Errorf("delete table: %w", err)
	}
	e.reg.RemoveTable(tableID)
	e.log.WithFields(logrus.Fields{"op": tx.op, "table": tableID}).Debug("table operation committed")
	return nil
}

// InsertRow inserts count rows before row index at (at == RowCount
// appends).
func (e *Engine) InsertRow(tableID string, at, count int) error {
	return e.mutate("insert-row", tableID, func(tx *txn) error {
		_, err := tx.next.InsertRow(at, count)
		return err
	})
}

// InsertColumn inserts count columns before column at.
func (e *Engine) InsertColumn(tableID string, at, count int) error {
	return e.mutate("insert-column", tableID, func(tx *txn) error {
		return tx.next.InsertColumn(at, count)
	})
}

func (e *Engine) DeleteRow(tableID string, index int) error {
	return e.mutate("delete-row", tableID, func(tx *txn) error {
		return tx.next.DeleteRow(index)
	})
}

func (e *Engine) DeleteColumn(tableID string, index int) error {
	return e.mutate("delete-column", tableID, func(tx *txn) error {
		return tx.next.DeleteColumn(index)
	})
}

// DeleteRows deletes the rows in [from, to) as one undo step.
func (e *Engine) DeleteRows(tableID string, from, to int) error {
	return e.mutate("delete-rows", tableID, func(tx *txn) error {
		if from < 0 || to > tx.next.RowCount() || from >= to {
			return fmt.Errorf("%w: rows [%d,%d)", table.ErrOutOfBounds, from, to)
		}
		for i := to - 1; i >= from; i-- {
			if err := tx.next.DeleteRow(i); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteColumns deletes the columns in [from, to) as one undo step.
func (e *Engine) DeleteColumns(tableID string, from, to int) error {
	return e.mutate("delete-columns", tableID, func(tx *txn) error {
		if from < 0 || to > tx.next.ColCount() || from >= to {
			return fmt.Errorf("%w: columns [%d,%d)", table.ErrOutOfBounds, from, to)
		}
		for i := to - 1; i >= from; i-- {
			if err := tx.next.DeleteColumn(i); err != nil {
				return err
			}
		}
		return nil
	})
}

// MergeCells merges cells into their top-left cell, which keeps the
// content of all of them. It returns the surviving cell.
func (e *Engine) MergeCells(tableID string, cells []table.CellID) (table.CellID, error) {
	survivor := table.NoCell
	err := e.mutate("merge-cells", tableID, func(tx *txn) error {
		id, err := tx.next.MergeCells(cells)
		if err != nil {
			return err
		}
		survivor = id
		tx.absorb = map[table.CellID]table.CellID{}
		for _, c := range cells {
			if c != id {
				tx.absorb[c] = id
			}
		}
		return nil
	})
	if err != nil {
		return table.NoCell, err
	}
	return survivor, nil
}

// MergeRect merges the cells covering r.
func (e *Engine) MergeRect(tableID string, r table.Rect) (table.CellID, error) {
	t, ok := e.reg.Table(tableID)
	if !ok {
		return table.NoCell, unknownTable("merge-cells", tableID)
	}
	return e.MergeCells(tableID, t.CellsIn(r))
}

// SplitCell splits a merged cell back into unit cells and returns the
// cells created. The original cell keeps its content.
func (e *Engine) SplitCell(tableID string, cell table.CellID) ([]table.CellID, error) {
	var created []table.CellID
	err := e.mutate("split-cell", tableID, func(tx *txn) error {
		ids, err := tx.next.SplitCell(cell)
		created = ids
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ResizeColumn sets the width of column col and returns the width applied
// after clamping.
func (e *Engine) ResizeColumn(tableID string, col, width int) (int, error) {
	applied := 0
	err := e.mutate("resize-column", tableID, func(tx *txn) error {
		w, err := tx.next.ResizeColumn(col, width)
		applied = w
		return err
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// ResizeRow sets the height of row index and returns the height applied
// after clamping.
func (e *Engine) ResizeRow(tableID string, index, height int) (int, error) {
	applied := 0
	err := e.mutate("resize-row", tableID, func(tx *txn) error {
		h, err := tx.next.ResizeRow(index, height)
		applied = h
		return err
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// SetCellBackground sets the background of cells. An empty color clears it.
func (e *Engine) SetCellBackground(tableID string, cells []table.CellID, color string) error {
	return e.mutate("set-background", tableID, func(tx *txn) error {
		tx.background = map[table.CellID]string{}
		for _, c := range cells {
			if _, ok := tx.next.Cell(c); !ok {
				return fmt.Errorf("%w: cell %d", table.ErrOutOfBounds, c)
			}
			tx.background[c] = color
		}
		return nil
	})
}
