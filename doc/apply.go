package doc

import (
	"fmt"
	"maps"
	"slices"
)

// Apply applies a batch of edits in order as one undo step. Each edit is
// interpreted against the state left by the previous ones.
//
// The batch is all-or-nothing: if any edit is invalid, Apply returns the
// error and the tree, its version, and its history are unchanged. A batch
// without effect returns a zero Change.
func (t *Tree) Apply(edits ...Edit) (Change, error) {
	if len(edits) == 0 {
		return Change{}, nil
	}

	w := newWorkspace(t)
	for i, e := range edits {
		if err := w.apply(e); err != nil {
			return Change{}, fmt.Errorf("edit %d (%s node %d): %w", i, e.Op, e.Node, err)
		}
	}

	touched := touchedNodes(t.nodes, w.nodes)
	if len(touched) == 0 {
		return Change{}, nil
	}

	prev := t.snapshot()
	change := t.beginChange(ChangeSourceLocal)

	t.nodes = w.nodes
	if w.maxID > t.nextID {
		t.nextID = w.maxID
	}
	if _, ok := t.nodes[t.focus]; !ok {
		t.focus = NoNode
	}
	t.version++
	t.recordUndo(prev)
	return t.commitChange(change, edits, touched), nil
}

// workspace is a copy-on-write view over the tree's node map.
type workspace struct {
	nodes map[NodeID]*Node
	owned map[NodeID]bool
	kinds map[string]KindSpec
	root  NodeID
	maxID NodeID
}

func newWorkspace(t *Tree) *workspace {
	return &workspace{
		nodes: maps.Clone(t.nodes),
		owned: map[NodeID]bool{},
		kinds: t.kinds,
		root:  t.root,
		maxID: t.nextID,
	}
}

func (w *workspace) mut(id NodeID) *Node {
	n := w.nodes[id]
	if w.owned[id] {
		return n
	}
	cp := n.clone()
	w.nodes[id] = &cp
	w.owned[id] = true
	return &cp
}

func (w *workspace) apply(e Edit) error {
	switch e.Op {
	case OpInsert:
		return w.insert(e)
	case OpRemove:
		return w.remove(e.Node)
	case OpMove:
		return w.move(e.Node, e.Parent, e.Index)
	case OpSetAttr:
		return w.setAttr(e.Node, e.Key, e.Value)
	case OpSetText:
		return w.setText(e.Node, e.Text)
	default:
		return fmt.Errorf("unknown edit op %d", e.Op)
	}
}

func (w *workspace) insert(e Edit) error {
	if e.Node == NoNode {
		return fmt.Errorf("%w: zero id", ErrNodeNotFound)
	}
	if _, ok := w.nodes[e.Node]; ok {
		return ErrNodeExists
	}
	parent, ok := w.nodes[e.Parent]
	if !ok {
		return fmt.Errorf("%w: parent %d", ErrNodeNotFound, e.Parent)
	}
	if err := w.checkParentKind(e.Kind, parent.Kind); err != nil {
		return err
	}
	index, err := resolveIndex(e.Index, len(parent.Children))
	if err != nil {
		return err
	}

	n := &Node{
		ID:     e.Node,
		Kind:   e.Kind,
		Parent: e.Parent,
		Attrs:  maps.Clone(e.Attrs),
		Text:   e.Text,
	}
	w.nodes[e.Node] = n
	w.owned[e.Node] = true
	p := w.mut(e.Parent)
	p.Children = slices.Insert(p.Children, index, e.Node)
	w.maxID = max(w.maxID, e.Node)
	return nil
}

func (w *workspace) remove(id NodeID) error {
	n, ok := w.nodes[id]
	if !ok {
		return ErrNodeNotFound
	}
	if id == w.root {
		return ErrRootEdit
	}
	p := w.mut(n.Parent)
	p.Children = slices.DeleteFunc(p.Children, func(c NodeID) bool { return c == id })

	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cn, ok := w.nodes[cur]; ok {
			stack = append(stack, cn.Children...)
		}
		delete(w.nodes, cur)
		delete(w.owned, cur)
	}
	return nil
}

func (w *workspace) move(id, parent NodeID, index int) error {
	n, ok := w.nodes[id]
	if !ok {
		return ErrNodeNotFound
	}
	if id == w.root {
		return ErrRootEdit
	}
	np, ok := w.nodes[parent]
	if !ok {
		return fmt.Errorf("%w: parent %d", ErrNodeNotFound, parent)
	}
	for cur := parent; cur != NoNode; cur = w.nodes[cur].Parent {
		if cur == id {
			return fmt.Errorf("%w: node %d would contain itself", ErrBadParent, id)
		}
	}
	if err := w.checkParentKind(n.Kind, np.Kind); err != nil {
		return err
	}

	siblings := len(np.Children)
	if n.Parent == parent {
		siblings--
	}
	at, err := resolveIndex(index, siblings)
	if err != nil {
		return err
	}

	old := w.mut(n.Parent)
	old.Children = slices.DeleteFunc(old.Children, func(c NodeID) bool { return c == id })
	dst := w.mut(parent)
	dst.Children = slices.Insert(dst.Children, at, id)
	w.mut(id).Parent = parent
	return nil
}

func (w *workspace) setAttr(id NodeID, key, value string) error {
	n, ok := w.nodes[id]
	if !ok {
		return ErrNodeNotFound
	}
	if cur, set := n.Attrs[key]; (set && cur == value) || (!set && value == "") {
		return nil
	}
	m := w.mut(id)
	if value == "" {
		delete(m.Attrs, key)
		return nil
	}
	if m.Attrs == nil {
		m.Attrs = map[string]string{}
	}
	m.Attrs[key] = value
	return nil
}

func (w *workspace) setText(id NodeID, text string) error {
	n, ok := w.nodes[id]
	if !ok {
		return ErrNodeNotFound
	}
	if n.Text == text {
		return nil
	}
	w.mut(id).Text = text
	return nil
}

func (w *workspace) checkParentKind(kind, parentKind string) error {
	spec, ok := w.kinds[kind]
	if !ok || len(spec.Parents) == 0 {
		return nil
	}
	if !slices.Contains(spec.Parents, parentKind) {
		return fmt.Errorf("%w: %s cannot be a child of %s", ErrBadParent, kind, parentKind)
	}
	return nil
}

func resolveIndex(index, n int) (int, error) {
	if index == -1 {
		return n, nil
	}
	if index < 0 || index > n {
		return 0, fmt.Errorf("%w: %d (children=%d)", ErrBadIndex, index, n)
	}
	return index, nil
}
