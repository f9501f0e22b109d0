package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// FuzzTable_RandomOperationSequences drives random structural operations
// and checks the partition invariant and geometry after every step.
// Rejected operations must leave the table untouched.
func FuzzTable_RandomOperationSequences(f *testing.F) {
	seeds := [][]byte{
		{},
		{0, 1, 2, 3, 4, 5, 6, 7},
		{3, 3, 3, 3, 4, 4, 4, 4},
		{255, 0, 128, 64, 32, 16, 8, 4, 2, 1},
		[]byte("merge-split-merge"),
		[]byte("rows-and-columns"),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		r := &opReader{data: data}
		tb := New(1+r.next()%4, 1+r.next()%4, Options{})
		width := tb.Width()

		for step := 0; step < 32 && !r.done(); step++ {
			before := tb.Snapshot()
			op := r.next() % 8
			var err error
			switch op {
			case 0:
				_, err = tb.InsertRow(r.next()%(tb.RowCount()+1), 1+r.next()%2)
			case 1:
				err = tb.InsertColumn(r.next()%(tb.ColCount()+1), 1+r.next()%2)
				width = tb.Width()
			case 2:
				err = tb.DeleteRow(r.next() % tb.RowCount())
			case 3:
				err = tb.DeleteColumn(r.next() % tb.ColCount())
				width = tb.Width()
			case 4:
				top, left := r.next()%tb.RowCount(), r.next()%tb.ColCount()
				rect := Rect{Top: top, Left: left, Bottom: top + 1 + r.next()%2, Right: left + 1 + r.next()%2}
				_, err = tb.MergeCells(tb.CellsIn(rect))
			case 5:
				cells := tb.Cells()
				_, err = tb.SplitCell(cells[r.next()%len(cells)].ID)
			case 6:
				col := r.next() % tb.ColCount()
				_, err = tb.ResizeColumn(col, r.next()*3)
				if col == tb.ColCount()-1 {
					width = tb.Width()
				}
			case 7:
				_, err = tb.ResizeRow(r.next()%tb.RowCount(), r.next()*2)
			}

			if cerr := tb.Check(); cerr != nil {
				t.Fatalf("step %d op %d: partition broken: %v\n%s", step, op, cerr, tb)
			}
			if err != nil {
				if diff := cmp.Diff(before, tb.Snapshot()); diff != "" {
					t.Fatalf("step %d op %d: rejected with %v but table changed (-want +got):\n%s", step, op, err, diff)
				}
			}
			if tb.Width() != width {
				t.Fatalf("step %d op %d: width %d, want %d", step, op, tb.Width(), width)
			}
		}
	})
}

type opReader struct {
	data []byte
	pos  int
}

func (r *opReader) done() bool { return r.pos >= len(r.data) }

func (r *opReader) next() int {
	if r.pos >= len(r.data) {
		return 0
	}
	v := int(r.data[r.pos])
	r.pos++
	return v
}
