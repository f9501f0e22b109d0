package doc

import (
	"maps"
	"slices"
	"strings"
)

type Options struct {
	HistoryLimit int // default: 1000
}

// Tree is the document state: nodes, focus, and undo history.
type Tree struct {
	nodes   map[NodeID]*Node
	root    NodeID
	nextID  NodeID
	version uint64
	focus   NodeID

	kinds map[string]KindSpec

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool

	subs    map[int]func(Change)
	nextSub int
}

func New(opt Options) *Tree {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	t := &Tree{
		nodes:  map[NodeID]*Node{},
		root:   1,
		nextID: 1,
		kinds:  map[string]KindSpec{},
		opt:    opt,
		subs:   map[int]func(Change){},
	}
	t.nodes[t.root] = &Node{ID: t.root, Kind: RootKind}
	return t
}

func (t *Tree) Root() NodeID { return t.root }

func (t *Tree) Version() uint64 { return t.version }

// NewID reserves a fresh node id. Ids are never reused, including across
// undo and redo.
func (t *Tree) NewID() NodeID {
	t.nextID++
	return t.nextID
}

// Register declares node kinds and their allowed parents.
func (t *Tree) Register(specs ...KindSpec) {
	for _, s := range specs {
		t.kinds[s.Name] = s
	}
}

func (t *Tree) KindSpec(name string) (KindSpec, bool) {
	s, ok := t.kinds[name]
	return s, ok
}

// Node returns a copy of the node for id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Parent returns the parent of id. The root has no parent.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	n, ok := t.nodes[id]
	if !ok || n.Parent == NoNode {
		return NoNode, false
	}
	return n.Parent, true
}

func (t *Tree) Len() int { return len(t.nodes) }

// Walk visits id and its descendants in document order until fn returns false.
func (t *Tree) Walk(id NodeID, fn func(Node) bool) {
	t.walk(id, fn)
}

func (t *Tree) walk(id NodeID, fn func(Node) bool) bool {
	n, ok := t.nodes[id]
	if !ok {
		return true
	}
	if !fn(n.clone()) {
		return false
	}
	for _, c := range n.Children {
		if !t.walk(c, fn) {
			return false
		}
	}
	return true
}

// Text returns the concatenated text of id's subtree; sibling blocks are
// separated by newlines.
func (t *Tree) Text(id NodeID) string {
	var parts []string
	t.Walk(id, func(n Node) bool {
		if len(n.Children) == 0 && n.Text != "" {
			parts = append(parts, n.Text)
		}
		return true
	})
	return strings.Join(parts, "\n")
}

func (t *Tree) Focus() NodeID { return t.focus }

// SetFocus moves the focus to id. Unknown ids clear the focus.
func (t *Tree) SetFocus(id NodeID) {
	if _, ok := t.nodes[id]; !ok {
		id = NoNode
	}
	if id == t.focus {
		return
	}
	change := t.beginChange(ChangeSourceLocal)
	t.focus = id
	t.version++
	t.commitChange(change, nil, nil)
}

// Subscribe registers fn to receive every committed change. The returned
// func unsubscribes.
func (t *Tree) Subscribe(fn func(Change)) func() {
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	return func() { delete(t.subs, id) }
}

func (t *Tree) notify(c Change) {
	for _, k := range slices.Sorted(maps.Keys(t.subs)) {
		if fn, ok := t.subs[k]; ok {
			fn(c)
		}
	}
}
