package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/tableup/formats"
	"github.com/iw2rmb/tableup/selection"
	"github.com/iw2rmb/tableup/table"
	"github.com/iw2rmb/tableup/ui"
)

type slotKey struct {
	border bool
	hot    bool
	cell   table.CellID
}

func (m *Model) renderContent() string {
	t, ok := m.table()
	if !ok {
		return m.cfg.Style.Status.Render("no table")
	}
	st := m.cfg.Style
	l := newLayout(t, m.cfg.Scale)

	data := make(map[table.CellID]formats.CellData, t.CellCount())
	for _, c := range t.Cells() {
		data[c.ID] = m.cfg.Engine.CellData(m.tableID, c.ID)
	}
	g := l.canvas(func(id table.CellID) []string { return data[id].Lines() })

	selected := map[table.CellID]bool{}
	preview := m.coord.State() == selection.StateDraggingMerge
	if sel, ok := m.coord.Selection(); ok && sel.Table == m.tableID {
		for _, id := range sel.Cells {
			selected[id] = true
		}
	}
	hotX, hotY := -1, -1
	if id, b, ok := m.coord.ResizeTarget(); ok && id == m.tableID {
		switch b.Axis {
		case selection.AxisColumn:
			hotX = l.xs[b.Index+1]
		case selection.AxisRow:
			hotY = l.ys[b.Index+1]
		}
	}

	styleOf := func(k slotKey) lipgloss.Style {
		switch {
		case k.border && k.hot:
			return st.Resize
		case k.border:
			return st.Border
		case selected[k.cell] && preview:
			return st.MergePreview
		case selected[k.cell]:
			return st.Selection
		}
		if bg := data[k.cell].Background; bg != "" {
			return st.Text.Background(lipgloss.Color(bg))
		}
		return st.Text
	}

	lines := make([]string, len(g))
	var sb, run strings.Builder
	for y, row := range g {
		sb.Reset()
		for x := 0; x < len(row); {
			k := slotKey{border: row[x].border, cell: row[x].cell}
			k.hot = k.border && (x == hotX || y == hotY)
			run.Reset()
			for ; x < len(row); x++ {
				nk := slotKey{border: row[x].border, cell: row[x].cell}
				nk.hot = nk.border && (x == hotX || y == hotY)
				if nk != k {
					break
				}
				run.WriteString(row[x].text)
			}
			sb.WriteString(styleOf(k).Render(run.String()))
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (m Model) picker() ui.ColorPicker {
	return ui.ColorPicker{Palette: m.cfg.Palette, Style: m.cfg.Style.UI}
}

func (m Model) footerHeight() int {
	h := 1
	if m.pickerOpen {
		h += lipgloss.Height(m.picker().View())
	}
	return h
}

// layoutFooter gives the viewport whatever the footer leaves.
func (m *Model) layoutFooter() {
	m.viewport.Height = max(m.height-m.footerHeight(), 0)
}

func (m Model) footerView() string {
	st := m.cfg.Style
	var line string
	switch {
	case m.err != nil:
		line = st.Error.Render(m.err.Error())
	case m.status != "":
		line = st.Status.Render(m.status)
	default:
		if sel, ok := m.coord.Selection(); ok && m.coord.State() == selection.StateSelected {
			line = st.Status.Render(fmt.Sprintf("%d×%d selected · ", sel.Rect.Rows(), sel.Rect.Cols()))
		}
		line += m.help.View(m.cfg.KeyMap)
	}
	if w := m.viewport.Width; w > 0 {
		line = ansi.Truncate(line, w, "…")
	}
	if m.pickerOpen {
		line += "\n" + m.picker().View()
	}
	return line
}

func (m Model) tooltip() (ui.Tooltip, bool) {
	tip := ui.Tooltip{Style: m.cfg.Style.UI.Tooltip}
	switch m.coord.State() {
	case selection.StateDraggingResize:
		id, b, _ := m.coord.ResizeTarget()
		t, ok := m.cfg.Engine.Table(id)
		if !ok {
			return tip, false
		}
		sizes := t.RowHeights()
		if b.Axis == selection.AxisColumn {
			sizes = t.ColumnWidths()
		}
		if b.Index >= len(sizes) {
			return tip, false
		}
		tip.Text = fmt.Sprintf("%dpx", sizes[b.Index])
	case selection.StateDraggingMerge:
		tip.Text = "release to merge"
	case selection.StateIdle, selection.StateSelected:
		if m.hover.Boundary.Axis == selection.AxisNone {
			return tip, false
		}
		tip.Text = "drag to resize"
	default:
		return tip, false
	}
	return tip, true
}
