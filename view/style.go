package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/tableup/ui"
)

// Style controls the table view's rendering.
type Style struct {
	Border lipgloss.Style
	// Resize highlights the grid line being dragged.
	Resize lipgloss.Style

	Text         lipgloss.Style
	Selection    lipgloss.Style
	MergePreview lipgloss.Style

	Status lipgloss.Style
	Error  lipgloss.Style

	// Widgets: color picker and tooltip.
	UI ui.Style
}

func DefaultStyle() Style {
	return Style{
		Border:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Resize:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Text:         lipgloss.NewStyle(),
		Selection:    lipgloss.NewStyle().Background(lipgloss.Color("237")),
		MergePreview: lipgloss.NewStyle().Background(lipgloss.Color("24")),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		UI:           ui.DefaultStyle(),
	}
}
