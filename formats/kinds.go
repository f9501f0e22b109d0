package formats

import "github.com/iw2rmb/tableup/doc"

// Node kinds.
const (
	KindMain     = "table-up-main"
	KindColgroup = "table-up-colgroup"
	KindCol      = "table-up-col"
	KindBody     = "table-up-body"
	KindRow      = "table-up-row"
	KindCell     = "table-up-cell"
	KindBlock    = "block"
)

// Kinds returns the node kinds a host must register before tables can be
// inserted.
func Kinds() []doc.KindSpec {
	return []doc.KindSpec{
		{Name: KindMain},
		{Name: KindColgroup, Parents: []string{KindMain}},
		{Name: KindCol, Parents: []string{KindColgroup}},
		{Name: KindBody, Parents: []string{KindMain}},
		{Name: KindRow, Parents: []string{KindBody}},
		{Name: KindCell, Parents: []string{KindRow}},
		{Name: KindBlock},
	}
}

// IsTableKind reports whether kind is one of the table structure kinds.
func IsTableKind(kind string) bool {
	switch kind {
	case KindMain, KindColgroup, KindCol, KindBody, KindRow, KindCell:
		return true
	}
	return false
}
