package ui

import "github.com/charmbracelet/lipgloss"

// Rect is a screen rectangle in terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Tooltip is a bordered one-shot label.
type Tooltip struct {
	Text  string
	Style lipgloss.Style
}

func (t Tooltip) View() string { return t.Style.Render(t.Text) }

// Place returns where to draw the tooltip for anchor on a screen of the
// given size: centered above the anchor, or below it when there is no room
// above, and kept inside the screen horizontally.
func (t Tooltip) Place(anchor Rect, screenWidth, screenHeight int) (x, y int) {
	view := t.View()
	w, h := lipgloss.Width(view), lipgloss.Height(view)

	x = anchor.X + (anchor.Width-w)/2
	x = min(x, screenWidth-w)
	x = max(x, 0)

	y = anchor.Y - h
	if y < 0 {
		y = anchor.Y + anchor.Height
	}
	if y+h > screenHeight {
		y = max(screenHeight-h, 0)
	}
	return x, y
}
