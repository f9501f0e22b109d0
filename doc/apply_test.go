package doc

import (
	"errors"
	"reflect"
	"testing"
)

func children(t *testing.T, tr *Tree, id NodeID) []NodeID {
	t.Helper()
	n, ok := tr.Node(id)
	if !ok {
		t.Fatalf("node %d not found", id)
	}
	return n.Children
}

func TestApply_InsertMoveRemove(t *testing.T) {
	tr := New(Options{})
	a, b, c := tr.NewID(), tr.NewID(), tr.NewID()

	if _, err := tr.Apply(
		Insert(tr.Root(), -1, a, "p", nil),
		Insert(tr.Root(), -1, b, "p", map[string]string{"align": "left"}),
		InsertText(a, 0, c, "text", "hello"),
	); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, want := children(t, tr, tr.Root()), []NodeID{a, b}; !reflect.DeepEqual(got, want) {
		t.Fatalf("root children: got %v, want %v", got, want)
	}
	if got := tr.Text(tr.Root()); got != "hello" {
		t.Fatalf("text: got %q, want %q", got, "hello")
	}

	if _, err := tr.Apply(Move(c, b, 0), Move(b, tr.Root(), 0)); err != nil {
		t.Fatalf("Apply(move): %v", err)
	}
	if got, want := children(t, tr, tr.Root()), []NodeID{b, a}; !reflect.DeepEqual(got, want) {
		t.Fatalf("root children after move: got %v, want %v", got, want)
	}
	if p, _ := tr.Parent(c); p != b {
		t.Fatalf("parent of c: got %d, want %d", p, b)
	}

	if _, err := tr.Apply(Remove(b)); err != nil {
		t.Fatalf("Apply(remove): %v", err)
	}
	if _, ok := tr.Node(c); ok {
		t.Fatalf("expected subtree of removed node to be gone")
	}
	if got := tr.Len(); got != 2 {
		t.Fatalf("len: got %d, want 2", got)
	}
}

func TestApply_FailedBatchLeavesTreeUntouched(t *testing.T) {
	tr := New(Options{})
	a := tr.NewID()
	if _, err := tr.Apply(Insert(tr.Root(), -1, a, "p", nil)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	v := tr.Version()
	before, _ := tr.Node(tr.Root())

	_, err := tr.Apply(
		SetAttr(a, "k", "v"),
		Insert(tr.Root(), 7, tr.NewID(), "p", nil),
	)
	if !errors.Is(err, ErrBadIndex) {
		t.Fatalf("Apply: got %v, want ErrBadIndex", err)
	}
	if tr.Version() != v {
		t.Fatalf("version changed: got %d, want %d", tr.Version(), v)
	}
	if n, _ := tr.Node(a); n.Attr("k") != "" {
		t.Fatalf("partial edit leaked: attr k=%q", n.Attr("k"))
	}
	after, _ := tr.Node(tr.Root())
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("root changed: %+v vs %+v", before, after)
	}
	if got := len(tr.hist.undo); got != 1 {
		t.Fatalf("undo depth: got %d, want 1", got)
	}
}

func TestApply_Errors(t *testing.T) {
	tr := New(Options{})
	a, b := tr.NewID(), tr.NewID()
	if _, err := tr.Apply(Insert(tr.Root(), -1, a, "p", nil), Insert(a, -1, b, "p", nil)); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	cases := []struct {
		name string
		edit Edit
		want error
	}{
		{name: "duplicate id", edit: Insert(tr.Root(), -1, a, "p", nil), want: ErrNodeExists},
		{name: "missing parent", edit: Insert(99, -1, 100, "p", nil), want: ErrNodeNotFound},
		{name: "remove root", edit: Remove(tr.Root()), want: ErrRootEdit},
		{name: "move into own subtree", edit: Move(a, b, 0), want: ErrBadParent},
		{name: "move missing", edit: Move(42, a, 0), want: ErrNodeNotFound},
		{name: "set attr missing", edit: SetAttr(42, "k", "v"), want: ErrNodeNotFound},
		{name: "bad index", edit: Move(b, tr.Root(), 5), want: ErrBadIndex},
	}
	for _, tc := range cases {
		if _, err := tr.Apply(tc.edit); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestApply_KindConstraints(t *testing.T) {
	tr := New(Options{})
	tr.Register(KindSpec{Name: "row", Parents: []string{"body"}})

	body, row := tr.NewID(), tr.NewID()
	if _, err := tr.Apply(Insert(tr.Root(), -1, row, "row", nil)); !errors.Is(err, ErrBadParent) {
		t.Fatalf("row under root: got %v, want ErrBadParent", err)
	}
	if _, err := tr.Apply(Insert(tr.Root(), -1, body, "body", nil), Insert(body, -1, row, "row", nil)); err != nil {
		t.Fatalf("row under body: %v", err)
	}
	if _, err := tr.Apply(Move(row, tr.Root(), 0)); !errors.Is(err, ErrBadParent) {
		t.Fatalf("move row to root: got %v, want ErrBadParent", err)
	}
}

func TestApply_NoOpBatchIsNotRecorded(t *testing.T) {
	tr := New(Options{})
	a := tr.NewID()
	if _, err := tr.Apply(Insert(tr.Root(), -1, a, "p", map[string]string{"k": "v"})); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	v := tr.Version()
	c, err := tr.Apply(SetAttr(a, "k", "v"), SetAttr(a, "missing", ""), SetText(a, ""))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if c.VersionAfter != 0 || tr.Version() != v {
		t.Fatalf("no-op batch bumped version: %+v", c)
	}
}

func TestApply_SetAttrDeletesOnEmpty(t *testing.T) {
	tr := New(Options{})
	a := tr.NewID()
	if _, err := tr.Apply(Insert(tr.Root(), -1, a, "p", map[string]string{"k": "v"})); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := tr.Apply(SetAttr(a, "k", "")); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	n, _ := tr.Node(a)
	if _, ok := n.Attrs["k"]; ok {
		t.Fatalf("expected attr k to be deleted")
	}
}

func TestApply_RemovingFocusedNodeClearsFocus(t *testing.T) {
	tr := New(Options{})
	a := tr.NewID()
	if _, err := tr.Apply(Insert(tr.Root(), -1, a, "p", nil)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	tr.SetFocus(a)
	if tr.Focus() != a {
		t.Fatalf("focus: got %d, want %d", tr.Focus(), a)
	}
	c, err := tr.Apply(Remove(a))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tr.Focus() != NoNode || c.FocusAfter != NoNode || c.FocusBefore != a {
		t.Fatalf("focus after remove: tree=%d change=%+v", tr.Focus(), c)
	}
}

func TestApply_HostSuppliedIDsAdvanceNewID(t *testing.T) {
	tr := New(Options{})
	if _, err := tr.Apply(Insert(tr.Root(), -1, 50, "p", nil)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if id := tr.NewID(); id <= 50 {
		t.Fatalf("NewID after host id 50: got %d", id)
	}
}
