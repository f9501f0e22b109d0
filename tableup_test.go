package tableup

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/formats"
	"github.com/iw2rmb/tableup/ui"
	"github.com/iw2rmb/tableup/view"
)

func TestNew_RegistersKinds(t *testing.T) {
	tree := doc.New(doc.Options{})
	mod := New(tree, Options{})
	t.Cleanup(mod.Close)

	for _, k := range formats.Kinds() {
		if _, ok := tree.KindSpec(k.Name); !ok {
			t.Fatalf("kind %q not registered", k.Name)
		}
	}
}

func TestOptions_Defaults(t *testing.T) {
	opt := Options{}.withDefaults()
	if opt.SelectBoxRows != 8 || opt.SelectBoxCols != 8 {
		t.Fatalf("select box=%dx%d, want 8x8", opt.SelectBoxRows, opt.SelectBoxCols)
	}
	if opt.ResizeDebounce != 50*time.Millisecond {
		t.Fatalf("debounce=%v, want 50ms", opt.ResizeDebounce)
	}
	if diff := cmp.Diff(ui.DefaultPalette, opt.Palette); diff != "" {
		t.Fatalf("palette (-want +got):\n%s", diff)
	}
}

func TestInsertAtFocus(t *testing.T) {
	tree := doc.New(doc.Options{})
	mod := New(tree, Options{DefaultColumnWidth: 120, MinColumnWidth: 40})
	t.Cleanup(mod.Close)

	p := tree.NewID()
	if _, err := tree.Apply(doc.InsertText(tree.Root(), -1, p, formats.KindBlock, "intro")); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	q := tree.NewID()
	if _, err := tree.Apply(doc.InsertText(tree.Root(), -1, q, formats.KindBlock, "outro")); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	tree.SetFocus(p)
	first, err := mod.InsertAtFocus(ui.CreateTableMsg{Rows: 2, Cols: 3})
	if err != nil {
		t.Fatalf("InsertAtFocus: %v", err)
	}
	m, ok := mod.Engine().Table(first)
	if !ok {
		t.Fatalf("table %q not registered", first)
	}
	if diff := cmp.Diff([]int{120, 120, 120}, m.ColumnWidths()); diff != "" {
		t.Fatalf("widths (-want +got):\n%s", diff)
	}
	main, _ := mod.Registry().TableNode(first)
	root, _ := tree.Node(tree.Root())
	if diff := cmp.Diff([]doc.NodeID{p, main, q}, root.Children); diff != "" {
		t.Fatalf("root children (-want +got):\n%s", diff)
	}

	// Focus inside the table: the next one goes after it.
	cell := m.Cells()[4]
	cn, _ := mod.Registry().CellNode(first, cell.ID)
	tree.SetFocus(cn)
	second, err := mod.InsertAtFocus(ui.CreateTableMsg{Rows: 1, Cols: 1})
	if err != nil {
		t.Fatalf("InsertAtFocus: %v", err)
	}
	main2, _ := mod.Registry().TableNode(second)
	root, _ = tree.Node(tree.Root())
	if diff := cmp.Diff([]doc.NodeID{p, main, main2, q}, root.Children); diff != "" {
		t.Fatalf("root children (-want +got):\n%s", diff)
	}

	tree.SetFocus(doc.NoNode)
	third, err := mod.InsertAtFocus(ui.CreateTableMsg{Rows: 1, Cols: 1})
	if err != nil {
		t.Fatalf("InsertAtFocus: %v", err)
	}
	main3, _ := mod.Registry().TableNode(third)
	root, _ = tree.Node(tree.Root())
	if got := root.Children[len(root.Children)-1]; got != main3 {
		t.Fatalf("last child=%d, want %d", got, main3)
	}
}

func TestNewSelectBox_UsesOptions(t *testing.T) {
	mod := New(doc.New(doc.Options{}), Options{SelectBoxRows: 3, SelectBoxCols: 5})
	t.Cleanup(mod.Close)
	sb := mod.NewSelectBox(ui.Style{})
	for range 10 {
		sb, _ = sb.Update(tea.KeyMsg{Type: tea.KeyRight})
		sb, _ = sb.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if rows, cols, ok := sb.Hover(); !ok || rows != 3 || cols != 5 {
		t.Fatalf("hover=%dx%d ok=%v, want 3x5", rows, cols, ok)
	}
}

func TestNewView_ShowsTable(t *testing.T) {
	tree := doc.New(doc.Options{})
	mod := New(tree, Options{})
	t.Cleanup(mod.Close)
	id, err := mod.InsertAtFocus(ui.CreateTableMsg{Rows: 1, Cols: 2})
	if err != nil {
		t.Fatalf("InsertAtFocus: %v", err)
	}
	v := mod.NewView(id, view.Config{}).SetSize(40, 10)
	if v.Table() != id {
		t.Fatalf("view table=%q, want %q", v.Table(), id)
	}
	if v.View() == "" {
		t.Fatalf("empty view")
	}

	c := mod.NewCoordinator()
	if _, ok := c.Selection(); ok {
		t.Fatalf("fresh coordinator has a selection")
	}
}
