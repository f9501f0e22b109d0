package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iw2rmb/tableup"
)

func TestInspect(t *testing.T) {
	in := `<table data-table-id="t1">
  <colgroup><col width="120"><col width="80"></colgroup>
  <tr><td colspan="2">wide</td></tr>
  <tr><td>a</td><td>b</td></tr>
</table>
<table data-table-id="t2"><tr><td>x</td></tr></table>`

	var out bytes.Buffer
	if err := inspect(strings.NewReader(in), &out, tableup.Options{}); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines=%d, want header, rule and 2 rows:\n%s", len(lines), out.String())
	}
	fields := func(line string) string {
		return strings.Join(strings.Fields(strings.ReplaceAll(line, "|", " ")), " ")
	}
	if got, want := fields(lines[0]), "TABLE ROWS COLS MERGED WIDTH HEIGHT"; got != want {
		t.Fatalf("header=%q, want %q", got, want)
	}
	if got, want := fields(lines[2]), "t1 2 2 1 200 72"; got != want {
		t.Fatalf("row=%q, want %q", got, want)
	}
	if !strings.Contains(lines[3], "t2") {
		t.Fatalf("second table missing:\n%s", out.String())
	}
}
