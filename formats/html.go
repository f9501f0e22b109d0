package formats

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/iw2rmb/tableup/table"
)

// Imported is one table read from HTML together with its cell content.
type Imported struct {
	Table *table.Table
	Cells map[table.CellID]CellData
}

// WriteHTML renders t as an HTML <table>. data supplies cell content.
func WriteHTML(w io.Writer, t *table.Table, data map[table.CellID]CellData) error {
	root := element(atom.Table, html.Attribute{Key: AttrTableID, Val: t.ID()})

	cg := element(atom.Colgroup)
	for _, width := range t.ColumnWidths() {
		cg.AppendChild(element(atom.Col, html.Attribute{Key: "width", Val: FormatSize(width)}))
	}
	root.AppendChild(cg)

	body := element(atom.Tbody)
	for _, r := range t.Rows() {
		tr := element(atom.Tr, html.Attribute{Key: "style", Val: fmt.Sprintf("height: %dpx", r.Height)})
		for _, cid := range r.Cells {
			c, _ := t.Cell(cid)
			d := data[cid]
			var attrs []html.Attribute
			if c.Span.Rows > 1 {
				attrs = append(attrs, html.Attribute{Key: AttrRowSpan, Val: fmt.Sprint(c.Span.Rows)})
			}
			if c.Span.Cols > 1 {
				attrs = append(attrs, html.Attribute{Key: AttrColSpan, Val: fmt.Sprint(c.Span.Cols)})
			}
			if d.Background != "" {
				attrs = append(attrs, html.Attribute{Key: "style", Val: "background-color: " + d.Background})
			}
			td := element(atom.Td, attrs...)
			for _, line := range d.Lines() {
				p := element(atom.P)
				if line == "" {
					p.AppendChild(element(atom.Br))
				} else {
					p.AppendChild(textNode(line))
				}
				td.AppendChild(p)
			}
			tr.AppendChild(td)
		}
		body.AppendChild(tr)
	}
	root.AppendChild(body)

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("render table %s: %w", t.ID(), err)
	}
	return nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// ParseHTML reads every top-level <table> in r. Malformed span structure is
// repaired: spans are clamped to the grid and gaps become empty cells.
// Input without a table yields ErrNoTable.
func ParseHTML(r io.Reader, opt table.Options) ([]Imported, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var tables []*html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tables = append(tables, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(root)

	var out []Imported
	for _, tn := range tables {
		imp, ok, err := parseTable(tn, opt)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, imp)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoTable
	}
	return out, nil
}

// Span limits applied to imported cells, as browsers do.
const (
	maxColSpan = 1000
	maxRowSpan = 65534
)

type parsedCell struct {
	span table.Span
	data CellData
}

func parseTable(tn *html.Node, opt table.Options) (Imported, bool, error) {
	var (
		widths []int
		specs  []table.RowSpec
		cells  [][]parsedCell
	)

	addRow := func(tr *html.Node) {
		spec := table.RowSpec{Height: rowHeight(tr)}
		var row []parsedCell
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
				continue
			}
			pc := parsedCell{
				span: table.Span{
					Rows: min(ParseSpan(attr(c, "rowspan")), maxRowSpan),
					Cols: min(ParseSpan(attr(c, "colspan")), maxColSpan),
				},
				data: CellData{Text: cellText(c), Background: cellBackground(c)},
			}
			spec.Cells = append(spec.Cells, pc.span)
			row = append(row, pc)
		}
		specs = append(specs, spec)
		cells = append(cells, row)
	}

	for c := tn.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Colgroup:
			for col := c.FirstChild; col != nil; col = col.NextSibling {
				if col.Type == html.ElementNode && col.DataAtom == atom.Col {
					w := ParseSize(attr(col, "width"))
					if w == 0 {
						w = ParseSize(styleProp(attr(col, "style"), "width"))
					}
					n := min(ParseSpan(attr(col, "span")), maxColSpan, table.MaxColumns-len(widths))
					for range max(n, 0) {
						widths = append(widths, w)
					}
				}
			}
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.DataAtom == atom.Tr {
					addRow(tr)
				}
			}
		case atom.Tr:
			addRow(c)
		}
	}
	if len(specs) == 0 {
		return Imported{}, false, nil
	}

	t, ids, err := table.RestoreLenient(attr(tn, AttrTableID), widths, specs, opt)
	if err != nil {
		return Imported{}, false, fmt.Errorf("import table: %w", err)
	}
	imp := Imported{Table: t, Cells: map[table.CellID]CellData{}}
	for r, row := range cells {
		for k, pc := range row[:len(ids[r])] {
			imp.Cells[ids[r][k]] = pc.data
		}
	}
	return imp, true, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func rowHeight(tr *html.Node) int {
	if h := ParseSize(attr(tr, "height")); h > 0 {
		return h
	}
	return ParseSize(styleProp(attr(tr, "style"), "height"))
}

func cellBackground(td *html.Node) string {
	if bg := styleProp(attr(td, "style"), "background-color"); bg != "" {
		return bg
	}
	return strings.TrimSpace(attr(td, "bgcolor"))
}

// styleProp returns the value of prop in an inline style declaration list.
func styleProp(style, prop string) string {
	for decl := range strings.SplitSeq(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), prop) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// cellText returns the NFC text of a cell, one line per block element or
// <br>.
func cellText(td *html.Node) string {
	var (
		lines []string
		cur   strings.Builder
	)
	flush := func() {
		lines = append(lines, norm.NFC.String(strings.Join(strings.Fields(cur.String()), " ")))
		cur.Reset()
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Br:
				flush()
				return
			case atom.Script, atom.Style, atom.Table:
				return
			}
		}
		block := n.Type == html.ElementNode && isBlock(n.DataAtom)
		if block {
			if strings.TrimSpace(cur.String()) != "" {
				flush()
			}
			cur.Reset()
		}
		start := len(lines)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block && (strings.TrimSpace(cur.String()) != "" || len(lines) == start) {
			flush()
		}
	}
	for c := td.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	if strings.TrimSpace(cur.String()) != "" {
		flush()
	}
	for len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Pre, atom.Blockquote:
		return true
	}
	return false
}
