package engine

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/formats"
	"github.com/iw2rmb/tableup/table"
)

// onChange resynchronizes tables touched by changes the engine did not make.
func (e *Engine) onChange(c doc.Change) {
	if e.applying || len(c.Touched) == 0 {
		return
	}

	var (
		mains   []doc.NodeID
		gone    []string
		visited = map[doc.NodeID]bool{}
	)
	for _, id := range c.Touched {
		if res := e.reg.Lookup(id); res.Found() {
			main, _ := e.reg.TableNode(res.Table.ID())
			if _, ok := e.host.Node(main); !ok {
				if !slices.Contains(gone, res.Table.ID()) {
					gone = append(gone, res.Table.ID())
				}
				continue
			}
			if !visited[main] {
				visited[main] = true
				mains = append(mains, main)
			}
			continue
		}
		n, ok := e.host.Node(id)
		if !ok || !formats.IsTableKind(n.Kind) {
			continue
		}
		if main := e.enclosingMain(id); main != doc.NoNode && !visited[main] {
			visited[main] = true
			mains = append(mains, main)
		}
	}

	for _, id := range gone {
		e.reg.RemoveTable(id)
		e.log.WithFields(logrus.Fields{"table": id, "version": c.VersionAfter}).Debug("table removed by document change")
	}
	for _, main := range mains {
		e.resync(main, c)
	}
}

func (e *Engine) enclosingMain(id doc.NodeID) doc.NodeID {
	for cur := id; cur != doc.NoNode; {
		n, ok := e.host.Node(cur)
		if !ok {
			return doc.NoNode
		}
		if n.Kind == formats.KindMain {
			return cur
		}
		p, ok := e.host.Parent(cur)
		if !ok {
			return doc.NoNode
		}
		cur = p
	}
	return doc.NoNode
}

// resync re-reads the table stored under main and registers it. When the
// stored structure still matches the committed model, handles are kept.
func (e *Engine) resync(main doc.NodeID, c doc.Change) {
	model, b, err := formats.ReadTable(e.host, main, e.opt)
	old := e.reg.Lookup(main)
	if err != nil {
		if old.Found() {
			e.reg.RemoveTable(old.Table.ID())
		}
		e.log.WithFields(logrus.Fields{"node": main, "version": c.VersionAfter}).WithError(err).Warn("table left unregistered")
		return
	}
	if old.Found() && old.Table.ID() == model.ID() {
		if ob, ok := e.reg.Binding(model.ID()); ok && sameStructure(old.Table, ob, model, b) {
			return
		}
	}
	if old.Found() {
		e.reg.RemoveTable(old.Table.ID())
	}
	if other, ok := e.reg.TableNode(model.ID()); ok && other != main {
		e.log.WithFields(logrus.Fields{"node": main, "table": model.ID(), "owner": other}).Warn("duplicate table id left unregistered")
		return
	}
	e.reg.Add(model, b)
	e.log.WithFields(logrus.Fields{
		"table":   model.ID(),
		"source":  c.Source,
		"version": c.VersionAfter,
	}).Debug("table resynchronized from document")
}

// sameStructure reports whether b stores exactly the same grid as ob, with
// every row and cell at the same place and geometry.
func sameStructure(old *table.Table, ob formats.Binding, cur *table.Table, b formats.Binding) bool {
	if !slices.Equal(ob.Cols, b.Cols) ||
		!slices.Equal(old.ColumnWidths(), cur.ColumnWidths()) ||
		!slices.Equal(old.RowHeights(), cur.RowHeights()) ||
		old.CellCount() != cur.CellCount() {
		return false
	}
	for _, r := range cur.Rows() {
		or, ok := old.RowAt(r.Index)
		if !ok || ob.Rows[or.ID] != b.Rows[r.ID] {
			return false
		}
	}
	for _, c := range cur.Cells() {
		oc, ok := old.CellAt(c.Pos)
		if !ok || oc.Pos != c.Pos || oc.Span != c.Span || ob.Cells[oc.ID] != b.Cells[c.ID] {
			return false
		}
	}
	return true
}
