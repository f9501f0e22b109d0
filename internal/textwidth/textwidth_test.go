package textwidth

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWidth(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"é", 1},
		{"表格", 4},
		{"a表", 3},
	}
	for _, tc := range cases {
		if got := Width(tc.in); got != tc.want {
			t.Fatalf("Width(%q)=%d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"表格表格", 5, "表格…"},
		{"aéb", 2, "a…"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.width); got != tc.want {
			t.Fatalf("Truncate(%q, %d)=%q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestPadAndCenter(t *testing.T) {
	if got, want := Pad("ab", 4), "ab  "; got != want {
		t.Fatalf("Pad=%q, want %q", got, want)
	}
	if got, want := Pad("abcdef", 4), "abc…"; got != want {
		t.Fatalf("Pad overflow=%q, want %q", got, want)
	}
	if got, want := Pad("表", 3), "表 "; got != want {
		t.Fatalf("Pad wide=%q, want %q", got, want)
	}
	if got, want := Center("ab", 5), " ab  "; got != want {
		t.Fatalf("Center=%q, want %q", got, want)
	}
}

func TestClusters_MultiRune(t *testing.T) {
	got := Clusters("a" + "e\u0301" + "表")
	want := []Cluster{{"a", 1}, {"e\u0301", 1}, {"表", 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("clusters (-want +got):\n%s", diff)
	}
	if Clusters("") != nil {
		t.Fatalf("expected nil for empty text")
	}
}
