package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tableup/selection"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if isWheelMouse(msg) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if !m.focused {
		return m, nil
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.pickerOpen {
			if color, ok := m.picker().ColorAt(msg.X, msg.Y-m.viewport.Height-1); ok {
				m.applyBackground(color)
				m.rebuildContent()
				return m, nil
			}
		}
		tg := selection.None
		if m.mouseInBounds(msg.X, msg.Y) {
			tg = m.hitTest(msg.X, msg.Y)
		}
		m.status = ""
		m.coord.PointerDown(m.pointerEvent(tg, msg.X, msg.Y, msg))
		m.err = m.coord.LastError()

	case tea.MouseActionMotion:
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		tg := m.hitTest(x, y)
		switch m.coord.State() { //nolint:exhaustive
		case selection.StateSelecting, selection.StateDraggingMerge, selection.StateDraggingResize:
			m.coord.PointerMove(m.pointerEvent(tg, x, y, msg))
		}
		m.hover, m.hoverX, m.hoverY = tg, x, y

	case tea.MouseActionRelease:
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		m.coord.PointerUp(m.pointerEvent(m.hitTest(x, y), x, y, msg))
		m.err = m.coord.LastError()
	}

	m.rebuildContent()
	return m, nil
}

// pointerEvent converts a mouse message at viewport-local (x, y) into a
// coordinator event. Resize coordinates are in pixels.
func (m *Model) pointerEvent(tg selection.Target, x, y int, msg tea.MouseMsg) selection.PointerEvent {
	axis := tg.Boundary.Axis
	if _, b, ok := m.coord.ResizeTarget(); ok {
		axis = b.Axis
	}
	ev := selection.PointerEvent{Target: tg}
	switch axis { //nolint:exhaustive
	case selection.AxisColumn:
		ev.Coord = x * m.cfg.Scale.ColumnPx
	case selection.AxisRow:
		ev.Coord = (y + m.viewport.YOffset) * m.cfg.Scale.RowPx
	}
	if msg.Alt {
		ev.Mods |= selection.ModMerge
	}
	if msg.Shift {
		ev.Mods |= selection.ModExtend
	}
	return ev
}

func isWheelMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = min(max(x, 0), m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = min(max(y, 0), m.viewport.Height-1)
	}
	return x, y
}
