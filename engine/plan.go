package engine

import (
	"fmt"
	"slices"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/formats"
	"github.com/iw2rmb/tableup/table"
)

// planner accumulates host edits while tracking the children lists they
// produce, so that each edit is valid against the state left by the
// previous ones.
type planner struct {
	host  Host
	kids  map[doc.NodeID][]doc.NodeID
	par   map[doc.NodeID]doc.NodeID
	edits []doc.Edit
}

func newPlanner(host Host) *planner {
	return &planner{
		host: host,
		kids: map[doc.NodeID][]doc.NodeID{},
		par:  map[doc.NodeID]doc.NodeID{},
	}
}

func (p *planner) children(id doc.NodeID) []doc.NodeID {
	if k, ok := p.kids[id]; ok {
		return k
	}
	n, _ := p.host.Node(id)
	p.kids[id] = n.Children
	for _, c := range n.Children {
		p.par[c] = id
	}
	return n.Children
}

func (p *planner) parent(id doc.NodeID) doc.NodeID {
	if v, ok := p.par[id]; ok {
		return v
	}
	v, _ := p.host.Parent(id)
	p.par[id] = v
	return v
}

func (p *planner) detach(id doc.NodeID) {
	from := p.parent(id)
	p.kids[from] = slices.DeleteFunc(slices.Clone(p.children(from)), func(c doc.NodeID) bool { return c == id })
}

func (p *planner) attach(id, parent doc.NodeID, index int) {
	ch := slices.Clone(p.children(parent))
	if index < 0 || index > len(ch) {
		index = len(ch)
	}
	p.kids[parent] = slices.Insert(ch, index, id)
	p.par[id] = parent
}

func (p *planner) emit(edits ...doc.Edit) {
	for _, e := range edits {
		switch e.Op {
		case doc.OpInsert:
			p.attach(e.Node, e.Parent, e.Index)
			p.kids[e.Node] = []doc.NodeID{}
		case doc.OpMove:
			p.detach(e.Node)
			p.attach(e.Node, e.Parent, e.Index)
		case doc.OpRemove:
			p.detach(e.Node)
			delete(p.par, e.Node)
		}
		p.edits = append(p.edits, e)
	}
}

// setAttr emits an attribute edit when the host value differs.
func (p *planner) setAttr(id doc.NodeID, key, value string) {
	n, _ := p.host.Node(id)
	if n.Attr(key) == value {
		return
	}
	p.emit(doc.SetAttr(id, key, value))
}

// place reorders the children of parent so that they start with want.
func (p *planner) place(parent doc.NodeID, want []doc.NodeID) {
	for i, id := range want {
		ch := p.children(parent)
		if i < len(ch) && ch[i] == id {
			continue
		}
		p.emit(doc.Move(id, parent, i))
	}
}

// structure locates the colgroup and body nodes of a table.
func (e *Engine) structure(main doc.NodeID) (colgroup, body doc.NodeID, err error) {
	mn, ok := e.host.Node(main)
	if !ok {
		return doc.NoNode, doc.NoNode, fmt.Errorf("table node %d is gone", main)
	}
	for _, id := range mn.Children {
		n, ok := e.host.Node(id)
		if !ok {
			continue
		}
		switch n.Kind {
		case formats.KindColgroup:
			if colgroup == doc.NoNode {
				colgroup = id
			}
		case formats.KindBody:
			if body == doc.NoNode {
				body = id
			}
		}
	}
	if colgroup == doc.NoNode || body == doc.NoNode {
		return doc.NoNode, doc.NoNode, fmt.Errorf("table node %d has no colgroup or body", main)
	}
	return colgroup, body, nil
}

// plan returns the host edits turning the stored form of tx.cur into
// tx.next, and the binding of tx.next afterwards.
func (e *Engine) plan(tx *txn) ([]doc.Edit, formats.Binding, error) {
	colgroup, body, err := e.structure(tx.bind.Main)
	if err != nil {
		return nil, formats.Binding{}, err
	}
	p := newPlanner(e.host)
	nb := formats.Binding{
		Main:     tx.bind.Main,
		Colgroup: colgroup,
		Body:     body,
		Rows:     map[table.RowID]doc.NodeID{},
		Cells:    map[table.CellID]doc.NodeID{},
	}

	// Columns are anonymous: keep the existing nodes in order, grow or
	// shrink at the end, and rewrite widths.
	widths := tx.next.ColumnWidths()
	cols := slices.Clone(tx.bind.Cols)
	for len(cols) > len(widths) {
		last := cols[len(cols)-1]
		cols = cols[:len(cols)-1]
		p.emit(doc.Remove(last))
	}
	for i, w := range widths {
		if i < len(cols) {
			p.setAttr(cols[i], formats.AttrWidth, formats.FormatSize(w))
			continue
		}
		id := e.host.NewID()
		cols = append(cols, id)
		p.emit(doc.Insert(colgroup, i, id, formats.KindCol, formats.ColAttrs(w)))
	}
	nb.Cols = cols

	rows := tx.next.Rows()
	for _, r := range rows {
		if n, ok := tx.bind.Rows[r.ID]; ok {
			nb.Rows[r.ID] = n
			p.setAttr(n, formats.AttrHeight, formats.FormatSize(r.Height))
			continue
		}
		n, edits := formats.RowEdits(e.host, body, -1, r)
		nb.Rows[r.ID] = n
		p.emit(edits...)
	}

	for _, r := range rows {
		rn := nb.Rows[r.ID]
		for _, cid := range r.Cells {
			c, _ := tx.next.Cell(cid)
			n, ok := tx.bind.Cells[cid]
			if !ok {
				cn, edits := formats.CellEdits(e.host, rn, -1, c, formats.CellData{Background: tx.background[cid]})
				nb.Cells[cid] = cn
				p.emit(edits...)
				continue
			}
			nb.Cells[cid] = n
			if p.parent(n) != rn {
				p.emit(doc.Move(n, rn, -1))
			}
			rs, cs := formats.SpanAttrs(c.Span)
			p.setAttr(n, formats.AttrRowSpan, rs)
			p.setAttr(n, formats.AttrColSpan, cs)
			if bg, ok := tx.background[cid]; ok {
				p.setAttr(n, formats.AttrBackground, bg)
			}
		}
	}

	e.absorbContent(p, tx, nb)

	for _, c := range tx.cur.Cells() {
		if _, ok := nb.Cells[c.ID]; !ok {
			p.emit(doc.Remove(tx.bind.Cells[c.ID]))
		}
	}
	for _, r := range tx.cur.Rows() {
		if _, ok := nb.Rows[r.ID]; !ok {
			p.emit(doc.Remove(tx.bind.Rows[r.ID]))
		}
	}

	order := make([]doc.NodeID, 0, len(rows))
	for _, r := range rows {
		order = append(order, nb.Rows[r.ID])
	}
	p.place(body, order)
	for _, r := range rows {
		cells := make([]doc.NodeID, 0, len(r.Cells))
		for _, cid := range r.Cells {
			cells = append(cells, nb.Cells[cid])
		}
		p.place(nb.Rows[r.ID], cells)
	}
	return p.edits, nb, nil
}

// absorbContent moves the content of merged-away cells into the cells that
// absorbed them, in document order. Empty blocks are dropped, and a
// receiving cell whose own content was a single empty block loses it.
func (e *Engine) absorbContent(p *planner, tx *txn, nb formats.Binding) {
	if len(tx.absorb) == 0 {
		return
	}
	var received []doc.NodeID
	for _, c := range tx.cur.Cells() {
		to, ok := tx.absorb[c.ID]
		if !ok {
			continue
		}
		from, dst := tx.bind.Cells[c.ID], nb.Cells[to]
		for _, child := range slices.Clone(p.children(from)) {
			if n, _ := e.host.Node(child); isEmptyBlock(n) {
				continue
			}
			p.emit(doc.Move(child, dst, -1))
			if !slices.Contains(received, dst) {
				received = append(received, dst)
			}
		}
	}
	for _, dst := range received {
		ch := p.children(dst)
		if len(ch) < 2 {
			continue
		}
		if n, _ := e.host.Node(ch[0]); isEmptyBlock(n) {
			p.emit(doc.Remove(ch[0]))
		}
	}
}

func isEmptyBlock(n doc.Node) bool {
	return n.Kind == formats.KindBlock && n.Text == "" && len(n.Children) == 0
}
