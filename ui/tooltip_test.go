package ui

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestTooltip_View(t *testing.T) {
	tip := Tooltip{Text: "Merge", Style: testStyle(termenv.Ascii).Tooltip}
	want := strings.Join([]string{
		"╭───────╮",
		"│ Merge │",
		"╰───────╯",
	}, "\n")
	if got := tip.View(); got != want {
		t.Fatalf("view:\n%s\nwant:\n%s", got, want)
	}
}

func TestTooltip_Place(t *testing.T) {
	tip := Tooltip{Text: "Merge", Style: testStyle(termenv.Ascii).Tooltip}

	cases := []struct {
		name   string
		anchor Rect
		wantX  int
		wantY  int
	}{
		{"above", Rect{X: 10, Y: 5, Width: 4, Height: 1}, 8, 2},
		{"below when no room above", Rect{X: 10, Y: 1, Width: 4, Height: 1}, 8, 2},
		{"clamped right", Rect{X: 78, Y: 5, Width: 2, Height: 1}, 71, 2},
		{"clamped left", Rect{X: 0, Y: 5, Width: 1, Height: 1}, 0, 2},
		{"clamped bottom", Rect{X: 10, Y: 0, Width: 4, Height: 23}, 8, 21},
	}
	for _, tc := range cases {
		x, y := tip.Place(tc.anchor, 80, 24)
		if x != tc.wantX || y != tc.wantY {
			t.Fatalf("%s: place=(%d,%d), want (%d,%d)", tc.name, x, y, tc.wantX, tc.wantY)
		}
	}
}
