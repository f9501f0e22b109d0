package main

import (
	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tableup"
	"github.com/iw2rmb/tableup/ui"
	"github.com/iw2rmb/tableup/view"
)

type mode uint8

const (
	modePick mode = iota
	modeEdit
)

const pickerTitle = "Insert table (arrows/mouse, enter to insert, ctrl+q to quit)"

var titleStyle = lipgloss.NewStyle().Bold(true)

// app shows the size picker until a table is created, then edits it.
type app struct {
	mod  *tableup.Module
	mode mode

	box  ui.SelectBox
	edit view.Model

	width, height int
}

func newApp(mod *tableup.Module) app {
	return app{
		mod: mod,
		// The grid starts below the title and a blank line.
		box: mod.NewSelectBox(ui.DefaultStyle()).SetOffset(0, 2),
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.mode == modeEdit {
			a.edit = a.edit.SetSize(msg.Width, msg.Height)
		}
		return a, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return a, tea.Quit
		case "ctrl+n":
			if a.mode == modeEdit {
				a.mode = modePick
				a.edit = a.edit.Blur()
				a.box = a.box.Reset()
				return a, nil
			}
		}
	case ui.CreateTableMsg:
		id, err := a.mod.InsertAtFocus(msg)
		if err != nil {
			a.mod.Options().Logger.WithError(err).Warn("insert table failed")
			return a, nil
		}
		a.mode = modeEdit
		a.edit = a.mod.NewView(id, view.Config{
			Style:     view.DefaultStyle(),
			Clipboard: view.SystemClipboard{},
		}).SetSize(a.width, a.height)
		return a, nil
	}

	var cmd tea.Cmd
	if a.mode == modePick {
		a.box, cmd = a.box.Update(msg)
	} else {
		a.edit, cmd = a.edit.Update(msg)
	}
	return a, cmd
}

func (a app) View() string {
	if a.mode == modeEdit {
		return a.edit.View()
	}
	return titleStyle.Render(pickerTitle) + "\n\n" + a.box.View()
}
