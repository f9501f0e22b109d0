package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultPalette is the background palette offered for table cells.
var DefaultPalette = []string{
	"#000000", "#e60000", "#ff9900", "#ffff00", "#008a00", "#0066cc", "#9933ff",
	"#ffffff", "#facccc", "#ffebcc", "#ffffcc", "#cce8cc", "#cce0f5", "#ebd6ff",
	"#bbbbbb", "#f06666", "#ffc266", "#ffff66", "#66b966", "#66a3e0", "#c285ff",
	"#888888", "#a10000", "#b26b00", "#b2b200", "#006100", "#0047b2", "#6b24b2",
	"#444444", "#5c0000", "#663d00", "#666600", "#003700", "#002966", "#3d1466",
}

const (
	defaultPickerColumns = 7
	swatchGlyph          = "  "
	swatchWidth          = 3 // glyph plus gap
	clearLabel           = "× clear"
)

// ColorPicker renders a palette grid followed by a clear entry. It holds no
// state; hosts position it and resolve clicks with ColorAt.
type ColorPicker struct {
	Palette []string // default: DefaultPalette
	Columns int      // default: 7
	Style   Style
}

func (p ColorPicker) palette() []string {
	if len(p.Palette) == 0 {
		return DefaultPalette
	}
	return p.Palette
}

func (p ColorPicker) columns() int {
	if p.Columns <= 0 {
		return defaultPickerColumns
	}
	return p.Columns
}

func (p ColorPicker) paletteRows() int {
	cols := p.columns()
	return (len(p.palette()) + cols - 1) / cols
}

// ColorAt returns the color under (x, y), relative to the picker's top-left
// corner. The clear entry yields "" with ok set.
func (p ColorPicker) ColorAt(x, y int) (color string, ok bool) {
	if x < 0 || y < 0 {
		return "", false
	}
	rows := p.paletteRows()
	if y == rows {
		return "", x < lipgloss.Width(clearLabel)
	}
	if y > rows || x%swatchWidth >= lipgloss.Width(swatchGlyph) {
		return "", false
	}
	col := x / swatchWidth
	if col >= p.columns() {
		return "", false
	}
	i := y*p.columns() + col
	pal := p.palette()
	if i >= len(pal) {
		return "", false
	}
	return pal[i], true
}

func (p ColorPicker) View() string {
	pal := p.palette()
	cols := p.columns()
	var sb strings.Builder
	for i, c := range pal {
		if i%cols > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.Style.Swatch.Background(lipgloss.Color(c)).Render(swatchGlyph))
		if i%cols == cols-1 || i == len(pal)-1 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(p.Style.SwatchClear.Render(clearLabel))
	return sb.String()
}
