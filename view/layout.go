package view

import (
	"sort"

	"github.com/iw2rmb/tableup/internal/textwidth"
	"github.com/iw2rmb/tableup/table"
)

// Scale converts table geometry to terminal cells.
type Scale struct {
	ColumnPx int // pixels per terminal column; default 10
	RowPx    int // pixels per terminal line; default 36
}

func (s Scale) withDefaults() Scale {
	if s.ColumnPx <= 0 {
		s.ColumnPx = 10
	}
	if s.RowPx <= 0 {
		s.RowPx = 36
	}
	return s
}

// layout places the grid lines of a table. Column j's interior spans
// xs[j]+1 .. xs[j+1]-1; row i's interior spans ys[i]+1 .. ys[i+1]-1.
type layout struct {
	t      *table.Table
	xs, ys []int
}

func newLayout(t *table.Table, sc Scale) layout {
	l := layout{t: t}
	l.xs = gridLines(t.ColumnWidths(), sc.ColumnPx)
	l.ys = gridLines(t.RowHeights(), sc.RowPx)
	return l
}

func gridLines(sizes []int, unit int) []int {
	out := make([]int, len(sizes)+1)
	for i, s := range sizes {
		out[i+1] = out[i] + max(s/unit, 1) + 1
	}
	return out
}

func (l layout) Width() int  { return l.xs[len(l.xs)-1] + 1 }
func (l layout) Height() int { return l.ys[len(l.ys)-1] + 1 }

// track returns the track containing coordinate v and whether v lies on
// the line that ends it. v on the leading outer line yields (-1, true).
func track(lines []int, v int) (int, bool) {
	i := sort.SearchInts(lines, v)
	if i < len(lines) && lines[i] == v {
		return i - 1, true
	}
	return i - 1, false
}

// slot is one terminal cell of the rendered table.
type slot struct {
	text   string // "" continues a wide cluster
	border bool
	cell   table.CellID
}

const (
	armUp = 1 << iota
	armDown
	armLeft
	armRight
)

var boxGlyphs = map[int]string{
	armUp:                                "│",
	armDown:                              "│",
	armUp | armDown:                      "│",
	armLeft:                              "─",
	armRight:                             "─",
	armLeft | armRight:                   "─",
	armDown | armRight:                   "┌",
	armDown | armLeft:                    "┐",
	armUp | armRight:                     "└",
	armUp | armLeft:                      "┘",
	armUp | armDown | armRight:           "├",
	armUp | armDown | armLeft:            "┤",
	armDown | armLeft | armRight:         "┬",
	armUp | armLeft | armRight:           "┴",
	armUp | armDown | armLeft | armRight: "┼",
}

// canvas draws every cell's frame and content. Frames of merged cells
// cover their whole span, so inner grid lines disappear.
func (l layout) canvas(content func(table.CellID) []string) [][]slot {
	w, h := l.Width(), l.Height()
	g := make([][]slot, h)
	for y := range g {
		g[y] = make([]slot, w)
		for x := range g[y] {
			g[y][x] = slot{text: " ", cell: table.NoCell}
		}
	}

	for _, c := range l.t.Cells() {
		r := c.Rect()
		x0, x1 := l.xs[r.Left], l.xs[r.Right]
		y0, y1 := l.ys[r.Top], l.ys[r.Bottom]
		for x := x0; x <= x1; x++ {
			g[y0][x].border = true
			g[y1][x].border = true
		}
		for y := y0; y <= y1; y++ {
			g[y][x0].border = true
			g[y][x1].border = true
		}
		for y := y0 + 1; y < y1; y++ {
			for x := x0 + 1; x < x1; x++ {
				g[y][x].cell = c.ID
			}
		}
		if content != nil {
			placeText(g, x0+1, y0+1, x1-x0-1, y1-y0-1, content(c.ID))
		}
	}

	for y := range g {
		for x := range g[y] {
			if !g[y][x].border {
				continue
			}
			arms := 0
			if y > 0 && g[y-1][x].border {
				arms |= armUp
			}
			if y+1 < h && g[y+1][x].border {
				arms |= armDown
			}
			if x > 0 && g[y][x-1].border {
				arms |= armLeft
			}
			if x+1 < w && g[y][x+1].border {
				arms |= armRight
			}
			g[y][x].text = boxGlyphs[arms]
		}
	}
	return g
}

func placeText(g [][]slot, x, y, width, height int, lines []string) {
	for i, line := range lines {
		if i >= height {
			return
		}
		cx := x
		for _, cl := range textwidth.Clusters(textwidth.Truncate(line, width)) {
			if cl.Width == 0 {
				continue
			}
			g[y+i][cx].text = cl.Text
			for k := 1; k < cl.Width; k++ {
				g[y+i][cx+k].text = ""
			}
			cx += cl.Width
		}
	}
}
