package view

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	overlay "github.com/rmhubbert/bubbletea-overlay"
	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/tableup/selection"
	"github.com/iw2rmb/tableup/table"
	"github.com/iw2rmb/tableup/ui"
)

// Model is a Bubble Tea component showing one table. Pointer gestures go
// through a selection.Coordinator; key bindings call the engine.
type Model struct {
	cfg   Config
	log   logrus.FieldLogger
	coord *selection.Coordinator
	help  help.Model

	tableID string
	focused bool

	viewport viewport.Model
	height   int

	// Footer state.
	status     string
	err        error
	pickerOpen bool

	// Pointer hover, in view-local coordinates.
	hover      selection.Target
	hoverX     int
	hoverY     int
	lastChange changeKey
}

func New(cfg Config) Model {
	cfg.Scale = cfg.Scale.withDefaults()
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}
	m := Model{
		cfg:      cfg,
		log:      cfg.Logger,
		help:     help.New(),
		tableID:  cfg.Table,
		focused:  true,
		viewport: viewport.New(0, 0),
		hover:    selection.None,
	}
	m.coord = selection.New(cfg.Engine, selection.Options{
		Debounce: cfg.ResizeDebounce,
		Logger:   cfg.Logger,
	})
	m.lastChange = m.currentChangeKey()
	m.rebuildContent()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Table returns the id of the shown table.
func (m Model) Table() string { return m.tableID }

// SetTable switches the view to another table and drops the selection.
func (m Model) SetTable(tableID string) Model {
	m.tableID = tableID
	m.coord.Reset()
	m.rebuildContent()
	m.notifyChange()
	return m
}

// Coordinator exposes the gesture state machine.
func (m Model) Coordinator() *selection.Coordinator { return m.coord }

// Err returns the error of the last failed action, or nil.
func (m Model) Err() error { return m.err }

// SetSize sets the size of the whole view; the last lines hold the footer.
func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.height = height
	m.layoutFooter()
	m.help.Width = width
	m.rebuildContent()
	return m
}

func (m Model) Focus() Model {
	m.focused = true
	return m
}

// Blur drops any gesture in progress.
func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.coord.Cancel()
		m.pickerOpen = false
		m.layoutFooter()
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	default:
		// The document may have changed outside the view.
		m.rebuildContent()
	}
	m.notifyChange()
	return m, cmd
}

func (m Model) View() string {
	out := m.viewport.View() + "\n" + m.footerView()
	if tip, ok := m.tooltip(); ok {
		x, y := tip.Place(ui.Rect{X: m.hoverX, Y: m.hoverY, Width: 1, Height: 1}, m.viewport.Width, m.height)
		out = overlay.Composite(tip.View(), out, overlay.Left, overlay.Top, x, y)
	}
	return out
}

func (m *Model) table() (*table.Table, bool) {
	if m.cfg.Engine == nil || m.tableID == "" {
		return nil, false
	}
	return m.cfg.Engine.Table(m.tableID)
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) setError(err error) {
	m.err = err
	if err != nil {
		m.log.WithError(err).WithField("table", m.tableID).Debug("table action failed")
	}
}
