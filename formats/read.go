package formats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/table"
)

var (
	// ErrNotTable reports a node that is not a table-up-main node.
	ErrNotTable = errors.New("formats: not a table node")
	// ErrNoTable reports HTML input without any table.
	ErrNoTable = errors.New("formats: no table in input")
)

// Source reads document nodes.
type Source interface {
	Node(id doc.NodeID) (doc.Node, bool)
}

// ReadTable rebuilds the model of the table stored under main.
//
// The stored structure must be a valid partition; anything else is reported
// as table.ErrInvalidSpan. Nodes of unexpected kinds inside the table
// subtree are ignored.
func ReadTable(src Source, main doc.NodeID, opt table.Options) (*table.Table, Binding, error) {
	mn, ok := src.Node(main)
	if !ok || mn.Kind != KindMain {
		return nil, Binding{}, fmt.Errorf("%w: node %d", ErrNotTable, main)
	}

	b := Binding{
		Main:  main,
		Rows:  map[table.RowID]doc.NodeID{},
		Cells: map[table.CellID]doc.NodeID{},
	}
	for _, id := range mn.Children {
		n, ok := src.Node(id)
		if !ok {
			continue
		}
		switch {
		case n.Kind == KindColgroup && b.Colgroup == doc.NoNode:
			b.Colgroup = id
		case n.Kind == KindBody && b.Body == doc.NoNode:
			b.Body = id
		}
	}
	if b.Colgroup == doc.NoNode || b.Body == doc.NoNode {
		return nil, Binding{}, fmt.Errorf("%w: table %d is missing its colgroup or body", table.ErrInvalidSpan, main)
	}

	var widths []int
	cg, _ := src.Node(b.Colgroup)
	for _, id := range cg.Children {
		n, ok := src.Node(id)
		if !ok || n.Kind != KindCol {
			continue
		}
		b.Cols = append(b.Cols, id)
		widths = append(widths, ParseSize(n.Attr(AttrWidth)))
	}

	var (
		specs     []table.RowSpec
		rowNodes  []doc.NodeID
		cellNodes [][]doc.NodeID
	)
	body, _ := src.Node(b.Body)
	for _, id := range body.Children {
		rn, ok := src.Node(id)
		if !ok || rn.Kind != KindRow {
			continue
		}
		spec := table.RowSpec{Height: ParseSize(rn.Attr(AttrHeight))}
		var cells []doc.NodeID
		for _, cid := range rn.Children {
			cn, ok := src.Node(cid)
			if !ok || cn.Kind != KindCell {
				continue
			}
			spec.Cells = append(spec.Cells, table.Span{
				Rows: ParseSpan(cn.Attr(AttrRowSpan)),
				Cols: ParseSpan(cn.Attr(AttrColSpan)),
			})
			cells = append(cells, cid)
		}
		specs = append(specs, spec)
		rowNodes = append(rowNodes, id)
		cellNodes = append(cellNodes, cells)
	}

	t, ids, err := table.Restore(mn.Attr(AttrTableID), widths, specs, opt)
	if err != nil {
		return nil, Binding{}, fmt.Errorf("read table %d: %w", main, err)
	}
	if t.ColCount() != len(b.Cols) {
		return nil, Binding{}, fmt.Errorf("%w: table %d has %d col nodes for %d columns", table.ErrInvalidSpan, main, len(b.Cols), t.ColCount())
	}
	for i, rid := range rowNodes {
		r, _ := t.RowAt(i)
		b.Rows[r.ID] = rid
		for k, cid := range cellNodes[i] {
			b.Cells[ids[i][k]] = cid
		}
	}
	return t, b, nil
}

// ReadCellData returns the content of a cell node: the text of its blocks
// one per line, and its background.
func ReadCellData(src Source, cell doc.NodeID) CellData {
	n, ok := src.Node(cell)
	if !ok {
		return CellData{}
	}
	var lines []string
	for _, id := range n.Children {
		if c, ok := src.Node(id); ok {
			lines = append(lines, c.Text)
		}
	}
	return CellData{Text: strings.Join(lines, "\n"), Background: n.Attr(AttrBackground)}
}

// ReadAllCellData returns the content of every bound cell.
func ReadAllCellData(src Source, b Binding) map[table.CellID]CellData {
	out := make(map[table.CellID]CellData, len(b.Cells))
	for cid, node := range b.Cells {
		out[cid] = ReadCellData(src, node)
	}
	return out
}
