package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultSelectBoxRows = 8
	defaultSelectBoxCols = 8

	selectBoxGlyph = "■"
	// Each grid cell is a glyph followed by a one-column gap.
	selectBoxCellWidth = 2
)

// CreateTableMsg asks the host to insert a Rows×Cols table.
type CreateTableMsg struct {
	Rows, Cols int
}

type SelectBoxState uint8

const (
	SelectBoxIdle SelectBoxState = iota
	SelectBoxHovering
)

func (s SelectBoxState) String() string {
	switch s {
	case SelectBoxIdle:
		return "idle"
	case SelectBoxHovering:
		return "hovering"
	default:
		return "unknown"
	}
}

// SelectBoxConfig configures a SelectBox.
type SelectBoxConfig struct {
	// Grid size. Defaults to 8×8.
	Rows, Cols int

	Style  Style
	KeyMap KeyMap // default: DefaultKeyMap()
}

// SelectBox is the table size picker. Hovering grid cell (r, c) previews an
// (r+1)×(c+1) table; a click or Confirm emits CreateTableMsg.
type SelectBox struct {
	cfg SelectBoxConfig

	state    SelectBoxState
	row, col int

	// Screen position of the top-left grid cell, for mouse hit-testing.
	x, y int
}

func NewSelectBox(cfg SelectBoxConfig) SelectBox {
	if cfg.Rows <= 0 {
		cfg.Rows = defaultSelectBoxRows
	}
	if cfg.Cols <= 0 {
		cfg.Cols = defaultSelectBoxCols
	}
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	return SelectBox{cfg: cfg}
}

func (m SelectBox) Init() tea.Cmd { return nil }

func (m SelectBox) State() SelectBoxState { return m.state }

// Hover returns the previewed table size while hovering.
func (m SelectBox) Hover() (rows, cols int, ok bool) {
	if m.state != SelectBoxHovering {
		return 0, 0, false
	}
	return m.row + 1, m.col + 1, true
}

// SetOffset sets the screen position the box is drawn at.
func (m SelectBox) SetOffset(x, y int) SelectBox {
	m.x, m.y = x, y
	return m
}

// Reset returns the box to idle.
func (m SelectBox) Reset() SelectBox {
	m.state = SelectBoxIdle
	m.row, m.col = 0, 0
	return m
}

func (m SelectBox) Update(msg tea.Msg) (SelectBox, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m SelectBox) updateKey(msg tea.KeyMsg) (SelectBox, tea.Cmd) {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Cancel):
		return m.Reset(), nil
	case key.Matches(msg, km.Confirm):
		return m.confirm()
	case key.Matches(msg, km.Left):
		return m.move(0, -1), nil
	case key.Matches(msg, km.Right):
		return m.move(0, 1), nil
	case key.Matches(msg, km.Up):
		return m.move(-1, 0), nil
	case key.Matches(msg, km.Down):
		return m.move(1, 0), nil
	}
	return m, nil
}

// move enters hovering at the top-left cell, or steps the hovered cell.
func (m SelectBox) move(dr, dc int) SelectBox {
	if m.state == SelectBoxIdle {
		m.state = SelectBoxHovering
		m.row, m.col = 0, 0
		return m
	}
	m.row = clamp(m.row+dr, 0, m.cfg.Rows-1)
	m.col = clamp(m.col+dc, 0, m.cfg.Cols-1)
	return m
}

func (m SelectBox) updateMouse(msg tea.MouseMsg) (SelectBox, tea.Cmd) {
	row, col, ok := m.cellAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		if !ok {
			return m.Reset(), nil
		}
		m.state = SelectBoxHovering
		m.row, m.col = row, col
		return m, nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !ok {
			return m, nil
		}
		m.state = SelectBoxHovering
		m.row, m.col = row, col
		return m.confirm()
	}
	return m, nil
}

func (m SelectBox) confirm() (SelectBox, tea.Cmd) {
	rows, cols, ok := m.Hover()
	if !ok {
		return m, nil
	}
	m = m.Reset()
	return m, func() tea.Msg { return CreateTableMsg{Rows: rows, Cols: cols} }
}

// cellAt maps screen coordinates to a grid cell.
func (m SelectBox) cellAt(x, y int) (row, col int, ok bool) {
	x -= m.x
	y -= m.y
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y, x/selectBoxCellWidth
	if row >= m.cfg.Rows || col >= m.cfg.Cols {
		return 0, 0, false
	}
	return row, col, true
}

// Label is the previewed size, e.g. "3 × 4", or empty when idle.
func (m SelectBox) Label() string {
	rows, cols, ok := m.Hover()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d × %d", rows, cols)
}

func (m SelectBox) View() string {
	st := m.cfg.Style
	var sb strings.Builder
	for r := 0; r < m.cfg.Rows; r++ {
		for c := 0; c < m.cfg.Cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := st.Cell
			if m.state == SelectBoxHovering && r <= m.row && c <= m.col {
				cell = st.CellActive
			}
			sb.WriteString(cell.Render(selectBoxGlyph))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(st.Label.Render(m.Label()))
	return sb.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
