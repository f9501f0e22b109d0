package formats

import (
	"strings"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/table"
)

// IDSource reserves fresh node ids.
type IDSource interface {
	NewID() doc.NodeID
}

// Binding maps a table model onto the nodes that store it.
type Binding struct {
	Main     doc.NodeID
	Colgroup doc.NodeID
	Body     doc.NodeID
	Cols     []doc.NodeID
	Rows     map[table.RowID]doc.NodeID
	Cells    map[table.CellID]doc.NodeID
}

// CellData is the content carried by a cell node.
type CellData struct {
	// Text is the cell content; each line becomes one block.
	Text       string
	Background string
}

// Lines splits d.Text into block lines. Empty text is one empty block.
func (d CellData) Lines() []string {
	return strings.Split(d.Text, "\n")
}

// BuildTable returns the edits inserting t under parent at index, and the
// binding of the nodes it creates. data supplies optional cell content.
func BuildTable(ids IDSource, parent doc.NodeID, index int, t *table.Table, data map[table.CellID]CellData) (Binding, []doc.Edit) {
	b := Binding{
		Main:     ids.NewID(),
		Colgroup: ids.NewID(),
		Body:     ids.NewID(),
		Rows:     map[table.RowID]doc.NodeID{},
		Cells:    map[table.CellID]doc.NodeID{},
	}
	edits := []doc.Edit{
		doc.Insert(parent, index, b.Main, KindMain, TableAttrs(t.ID())),
		doc.Insert(b.Main, 0, b.Colgroup, KindColgroup, nil),
		doc.Insert(b.Main, 1, b.Body, KindBody, nil),
	}
	for i, w := range t.ColumnWidths() {
		id := ids.NewID()
		b.Cols = append(b.Cols, id)
		edits = append(edits, doc.Insert(b.Colgroup, i, id, KindCol, ColAttrs(w)))
	}
	for i, r := range t.Rows() {
		rowNode, rowEdits := RowEdits(ids, b.Body, i, r)
		b.Rows[r.ID] = rowNode
		edits = append(edits, rowEdits...)
		for k, cid := range r.Cells {
			c, _ := t.Cell(cid)
			cellNode, cellEdits := CellEdits(ids, rowNode, k, c, data[cid])
			b.Cells[cid] = cellNode
			edits = append(edits, cellEdits...)
		}
	}
	return b, edits
}

// RowEdits returns the edit inserting an empty row node for r.
func RowEdits(ids IDSource, body doc.NodeID, index int, r table.Row) (doc.NodeID, []doc.Edit) {
	id := ids.NewID()
	return id, []doc.Edit{doc.Insert(body, index, id, KindRow, RowAttrs(r.Height))}
}

// CellEdits returns the edits inserting a cell node for c with its content
// blocks.
func CellEdits(ids IDSource, row doc.NodeID, index int, c table.Cell, d CellData) (doc.NodeID, []doc.Edit) {
	id := ids.NewID()
	edits := []doc.Edit{doc.Insert(row, index, id, KindCell, CellAttrs(c.Span, d.Background))}
	for i, line := range d.Lines() {
		edits = append(edits, doc.InsertText(id, i, ids.NewID(), KindBlock, line))
	}
	return id, edits
}
