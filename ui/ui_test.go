package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func testStyle(profile termenv.Profile) Style {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(true)

	muted := r.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Cell:        muted,
		CellActive:  r.NewStyle().Foreground(lipgloss.Color("39")),
		Label:       r.NewStyle(),
		Swatch:      r.NewStyle(),
		SwatchClear: muted,
		Tooltip:     r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
