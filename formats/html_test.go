package formats

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/iw2rmb/tableup/table"
)

func TestHTML_RoundTrip(t *testing.T) {
	tb := mergedTable(t)
	first := tb.Cells()[0].ID
	last := tb.Cells()[tb.CellCount()-1].ID
	data := map[table.CellID]CellData{
		first: {Text: "head\n\ntail", Background: "#ffff00"},
		last:  {Text: "a < b & c"},
	}

	var buf bytes.Buffer
	if err := WriteHTML(&buf, tb, data); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`data-table-id="` + tb.ID() + `"`,
		`<col width="140"/>`,
		`rowspan="2" colspan="2" style="background-color: #ffff00"`,
		`<p><br/></p>`,
		`a &lt; b &amp; c`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("html missing %q:\n%s", want, out)
		}
	}

	imps, err := ParseHTML(&buf, table.Options{})
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if len(imps) != 1 {
		t.Fatalf("tables=%d, want 1", len(imps))
	}
	got := imps[0]
	if got.Table.ID() != tb.ID() {
		t.Fatalf("id=%q, want %q", got.Table.ID(), tb.ID())
	}
	if diff := cmp.Diff(tb.Snapshot(), got.Table.Snapshot()); diff != "" {
		t.Fatalf("snapshot (-want +got):\n%s", diff)
	}
	for _, c := range tb.Cells() {
		gc, _ := got.Table.CellAt(c.Pos)
		if diff := cmp.Diff(data[c.ID], got.Cells[gc.ID]); diff != "" {
			t.Fatalf("cell %v data (-want +got):\n%s", c.Pos, diff)
		}
	}
}

func TestParseHTML_Lenient(t *testing.T) {
	const in = `<p>before</p>
<table>
  <colgroup><col style="width: 80px" span="2"><col width="120"></colgroup>
  <thead><tr height="50"><th colspan="5">Title</th></tr></thead>
  <tbody>
    <tr><td bgcolor="#00ff00">x</td></tr>
    <tr><td rowspan="9">y</td><td>z</td><td>w</td></tr>
  </tbody>
</table>`

	imps, err := ParseHTML(strings.NewReader(in), table.Options{})
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	tb := imps[0].Table
	if err := tb.Check(); err != nil {
		t.Fatalf("Check: %v\n%s", err, tb)
	}
	if tb.RowCount() != 3 || tb.ColCount() != 5 {
		t.Fatalf("size=%dx%d, want 3x5", tb.RowCount(), tb.ColCount())
	}
	if diff := cmp.Diff([]int{80, 80, 120, 100, 100}, tb.ColumnWidths()); diff != "" {
		t.Fatalf("widths (-want +got):\n%s", diff)
	}
	if h := tb.RowHeights()[0]; h != 50 {
		t.Fatalf("row 0 height=%d, want 50", h)
	}

	title, _ := tb.CellAt(table.Pos{Row: 0, Col: 4})
	if title.Span != (table.Span{Rows: 1, Cols: 5}) {
		t.Fatalf("title span=%+v, want 1x5", title.Span)
	}
	y, _ := tb.CellAt(table.Pos{Row: 2, Col: 0})
	if y.Span.Rows != 1 {
		t.Fatalf("clamped rowspan=%d, want 1", y.Span.Rows)
	}

	x, _ := tb.CellAt(table.Pos{Row: 1, Col: 0})
	if diff := cmp.Diff(CellData{Text: "x", Background: "#00ff00"}, imps[0].Cells[x.ID]); diff != "" {
		t.Fatalf("x data (-want +got):\n%s", diff)
	}
	// Gap fillers carry no content.
	filler, _ := tb.CellAt(table.Pos{Row: 1, Col: 3})
	if _, ok := imps[0].Cells[filler.ID]; ok {
		t.Fatalf("filler cell has imported content")
	}
}

func TestParseHTML_LenientCapsSpans(t *testing.T) {
	const in = `<table><tr><td colspan="50000000" rowspan="99999999">x</td><td>y</td></tr><tr><td>z</td></tr></table>`
	imps, err := ParseHTML(strings.NewReader(in), table.Options{})
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	tb := imps[0].Table
	if err := tb.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if tb.ColCount() != table.MaxColumns || tb.RowCount() != 2 {
		t.Fatalf("size=%dx%d, want 2x%d", tb.RowCount(), tb.ColCount(), table.MaxColumns)
	}
	x, _ := tb.CellAt(table.Pos{})
	if x.Span != (table.Span{Rows: 2, Cols: table.MaxColumns}) {
		t.Fatalf("span=%+v, want 2x%d", x.Span, table.MaxColumns)
	}
	// y and z start past the last column and are dropped.
	if len(imps[0].Cells) != 1 {
		t.Fatalf("imported cells=%d, want 1", len(imps[0].Cells))
	}

	const cols = `<table><colgroup><col span="50000000" width="40"></colgroup><tr><td>a</td></tr></table>`
	imps, err = ParseHTML(strings.NewReader(cols), table.Options{})
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if got := imps[0].Table.ColCount(); got != maxColSpan {
		t.Fatalf("cols=%d, want %d", got, maxColSpan)
	}
}

func TestParseHTML_MultipleTables(t *testing.T) {
	const in = `<table><tr><td>a</td></tr></table><div><table><tr><td>b</td><td>c</td></tr></table></div>`
	imps, err := ParseHTML(strings.NewReader(in), table.Options{})
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if len(imps) != 2 {
		t.Fatalf("tables=%d, want 2", len(imps))
	}
	if imps[0].Table.ID() == "" || imps[0].Table.ID() == imps[1].Table.ID() {
		t.Fatalf("ids=%q,%q, want distinct", imps[0].Table.ID(), imps[1].Table.ID())
	}
	if imps[1].Table.ColCount() != 2 {
		t.Fatalf("second table cols=%d, want 2", imps[1].Table.ColCount())
	}
}

func TestParseHTML_NoTable(t *testing.T) {
	for _, in := range []string{"", "<p>text</p>", "<table></table>"} {
		if _, err := ParseHTML(strings.NewReader(in), table.Options{}); !errors.Is(err, ErrNoTable) {
			t.Fatalf("ParseHTML(%q) err=%v, want ErrNoTable", in, err)
		}
	}
}

func firstCell(t *testing.T, frag string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader("<table><tr><td>" + frag + "</td></tr></table>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var found *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Td {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(root)
	if found == nil {
		t.Fatalf("no td in %q", frag)
	}
	return found
}

func TestCellText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"  spaced \n  out  ", "spaced out"},
		{"<p>one</p><p>two</p>", "one\ntwo"},
		{"<p>one</p><p><br></p><p>three</p>", "one\n\nthree"},
		{"a<br>b", "a\nb"},
		{"<b>bold</b> and <i>it</i>", "bold and it"},
		{"<div><div>nested</div></div>", "nested"},
		{"lead<p>block</p>trail", "lead\nblock\ntrail"},
		{"<p>x</p><script>ignored()</script>", "x"},
		{"cafe\u0301", "caf\u00e9"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cellText(firstCell(t, tt.in)); got != tt.want {
			t.Fatalf("cellText(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStyleProp(t *testing.T) {
	tests := []struct {
		style, prop string
		want        string
	}{
		{"height: 40px", "height", "40px"},
		{"color: red; Background-Color : #fff ;", "background-color", "#fff"},
		{"width:10px", "height", ""},
		{"", "width", ""},
		{"broken", "broken", ""},
	}
	for _, tt := range tests {
		if got := styleProp(tt.style, tt.prop); got != tt.want {
			t.Fatalf("styleProp(%q, %q)=%q, want %q", tt.style, tt.prop, got, tt.want)
		}
	}
}
