// Package textwidth measures and fits text in terminal cells.
package textwidth

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Width returns the number of terminal cells text occupies.
func Width(text string) int {
	if text == "" {
		return 0
	}
	n := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		n += clusterWidth(g.Str())
	}
	return n
}

// Cluster is one grapheme cluster and the cells it occupies.
type Cluster struct {
	Text  string
	Width int
}

// Clusters splits text into grapheme clusters in visual order.
func Clusters(text string) []Cluster {
	if text == "" {
		return nil
	}
	out := make([]Cluster, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, Cluster{Text: g.Str(), Width: clusterWidth(g.Str())})
	}
	return out
}

// Truncate cuts text to at most width cells without splitting a grapheme
// cluster. A cut line ends with an ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	limit := width - runewidth.StringWidth(ellipsis)
	var sb strings.Builder
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := clusterWidth(g.Str())
		if used+w > limit {
			break
		}
		sb.WriteString(g.Str())
		used += w
	}
	if limit >= 0 {
		sb.WriteString(ellipsis)
	}
	return sb.String()
}

// Pad fits text into exactly width cells, truncating or right-padding with
// spaces.
func Pad(text string, width int) string {
	text = Truncate(text, width)
	if w := Width(text); w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return text
}

// Center fits text into width cells, centered.
func Center(text string, width int) string {
	text = Truncate(text, width)
	gap := width - Width(text)
	if gap <= 0 {
		return text
	}
	left := gap / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}

// clusterWidth treats zero-width clusters (combining marks on their own,
// control characters) as occupying no cells.
func clusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w > 2 {
		w = 2
	}
	return w
}
