package doc

type treeSnapshot struct {
	nodes map[NodeID]*Node
	focus NodeID
}

type historyState struct {
	undo []treeSnapshot
	redo []treeSnapshot
}

func (t *Tree) snapshot() treeSnapshot {
	return treeSnapshot{nodes: t.nodes, focus: t.focus}
}

func (t *Tree) restore(s treeSnapshot) {
	t.nodes = s.nodes
	t.focus = s.focus
	if _, ok := t.nodes[t.focus]; !ok {
		t.focus = NoNode
	}
}

func (t *Tree) recordUndo(prev treeSnapshot) {
	limit := t.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	t.hist.undo = append(t.hist.undo, prev)
	if len(t.hist.undo) > limit {
		t.hist.undo = t.hist.undo[len(t.hist.undo)-limit:]
	}
	t.hist.redo = nil
}

func (t *Tree) CanUndo() bool { return len(t.hist.undo) > 0 }

func (t *Tree) CanRedo() bool { return len(t.hist.redo) > 0 }

// Undo reverts the most recent Apply batch.
func (t *Tree) Undo() bool {
	if len(t.hist.undo) == 0 {
		return false
	}

	cur := t.snapshot()
	change := t.beginChange(ChangeSourceUndo)

	i := len(t.hist.undo) - 1
	prev := t.hist.undo[i]
	t.hist.undo = t.hist.undo[:i]
	t.hist.redo = append(t.hist.redo, cur)

	t.restore(prev)
	t.version++
	t.commitChange(change, nil, touchedNodes(cur.nodes, t.nodes))
	return true
}

// Redo re-applies the most recently undone batch.
func (t *Tree) Redo() bool {
	if len(t.hist.redo) == 0 {
		return false
	}

	cur := t.snapshot()
	change := t.beginChange(ChangeSourceRedo)

	i := len(t.hist.redo) - 1
	next := t.hist.redo[i]
	t.hist.redo = t.hist.redo[:i]

	limit := t.opt.HistoryLimit
	if limit > 0 {
		t.hist.undo = append(t.hist.undo, cur)
		if len(t.hist.undo) > limit {
			t.hist.undo = t.hist.undo[len(t.hist.undo)-limit:]
		}
	}

	t.restore(next)
	t.version++
	t.commitChange(change, nil, touchedNodes(cur.nodes, t.nodes))
	return true
}
