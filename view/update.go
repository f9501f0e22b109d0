package view

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tableup/selection"
	"github.com/iw2rmb/tableup/table"
)

var (
	errNoClipboard = errors.New("view: no clipboard configured")
	errNoTable     = errors.New("view: no table shown")
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	m.status = ""

	switch {
	case key.Matches(msg, km.Cancel):
		m.coord.Cancel()
		m.err = nil
		m.pickerOpen = false
		m.layoutFooter()
	case key.Matches(msg, km.Undo):
		if m.cfg.History != nil && m.cfg.History.Undo() {
			m.coord.Reset()
		}
	case key.Matches(msg, km.Redo):
		if m.cfg.History != nil && m.cfg.History.Redo() {
			m.coord.Reset()
		}
	case key.Matches(msg, km.Copy):
		m.setError(m.copyTable())
	case key.Matches(msg, km.Paste):
		m.setError(m.pasteTables())
	case key.Matches(msg, km.DeleteTable):
		m.structural(m.cfg.Engine.DeleteTable(m.tableID))
	default:
		m.updateSelectionKey(msg)
	}

	m.rebuildContent()
	return m, nil
}

// updateSelectionKey runs bindings that act on a settled selection.
func (m *Model) updateSelectionKey(msg tea.KeyMsg) {
	sel, ok := m.coord.Selection()
	if !ok || m.coord.State() != selection.StateSelected {
		return
	}
	km, e, id, r := m.cfg.KeyMap, m.cfg.Engine, sel.Table, sel.Rect

	switch {
	case key.Matches(msg, km.Merge):
		if len(sel.Cells) > 1 {
			_, err := e.MergeCells(id, sel.Cells)
			m.structural(err)
		}
	case key.Matches(msg, km.Split):
		m.structural(m.split(sel))
	case key.Matches(msg, km.InsertRowAbove):
		m.structural(e.InsertRow(id, r.Top, 1))
	case key.Matches(msg, km.InsertRowBelow):
		m.structural(e.InsertRow(id, r.Bottom, 1))
	case key.Matches(msg, km.InsertColumnLeft):
		m.structural(e.InsertColumn(id, r.Left, 1))
	case key.Matches(msg, km.InsertColumnRight):
		m.structural(e.InsertColumn(id, r.Right, 1))
	case key.Matches(msg, km.DeleteRows):
		m.structural(e.DeleteRows(id, r.Top, r.Bottom))
	case key.Matches(msg, km.DeleteColumns):
		m.structural(e.DeleteColumns(id, r.Left, r.Right))
	case key.Matches(msg, km.Background):
		m.pickerOpen = !m.pickerOpen
		m.layoutFooter()
	}
}

// structural records the outcome of an operation that changes the grid.
// Success invalidates the selection.
func (m *Model) structural(err error) {
	m.setError(err)
	if err == nil {
		m.coord.Reset()
	}
}

func (m *Model) split(sel selection.Selection) error {
	t, ok := m.table()
	if !ok {
		return errNoTable
	}
	var merged []table.CellID
	for _, id := range sel.Cells {
		if c, ok := t.Cell(id); ok && !c.Span.Unit() {
			merged = append(merged, id)
		}
	}
	for _, id := range merged {
		if _, err := m.cfg.Engine.SplitCell(sel.Table, id); err != nil {
			return err
		}
	}
	return nil
}

// applyBackground colors the selected cells and closes the picker.
func (m *Model) applyBackground(color string) {
	m.pickerOpen = false
	m.layoutFooter()
	sel, ok := m.coord.Selection()
	if !ok {
		return
	}
	m.setError(m.cfg.Engine.SetCellBackground(sel.Table, sel.Cells, color))
}

func (m *Model) copyTable() error {
	if m.cfg.Clipboard == nil {
		return errNoClipboard
	}
	var buf bytes.Buffer
	if err := m.cfg.Engine.ExportHTML(m.tableID, &buf); err != nil {
		return err
	}
	if err := m.cfg.Clipboard.WriteText(buf.String()); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	m.status = "copied table"
	return nil
}

// pasteTables inserts the clipboard's HTML tables after the shown table
// and shows the first of them.
func (m *Model) pasteTables() error {
	if m.cfg.Clipboard == nil {
		return errNoClipboard
	}
	text, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	e := m.cfg.Engine
	main, ok := e.Registry().TableNode(m.tableID)
	if !ok {
		return errNoTable
	}
	parent, _ := e.Host().Parent(main)
	pn, _ := e.Host().Node(parent)
	index := slices.Index(pn.Children, main) + 1

	ids, err := e.PasteHTML(parent, index, strings.NewReader(text))
	if err != nil {
		return err
	}
	m.tableID = ids[0]
	m.coord.Reset()
	m.status = fmt.Sprintf("pasted %d table(s)", len(ids))
	return nil
}
