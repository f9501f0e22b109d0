package ui

import "github.com/charmbracelet/lipgloss"

// Style controls how the widgets render.
type Style struct {
	// Size picker grid.
	Cell       lipgloss.Style
	CellActive lipgloss.Style
	Label      lipgloss.Style

	// Color picker. Swatch gets the palette color as its background.
	Swatch      lipgloss.Style
	SwatchClear lipgloss.Style

	Tooltip lipgloss.Style
}

func DefaultStyle() Style {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Cell:        muted,
		CellActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Swatch:      lipgloss.NewStyle(),
		SwatchClear: muted,
		Tooltip: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}
