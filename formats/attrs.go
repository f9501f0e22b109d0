package formats

import (
	"strconv"
	"strings"

	"github.com/iw2rmb/tableup/table"
)

// Attribute keys.
const (
	AttrTableID    = "data-table-id"
	AttrWidth      = "width"
	AttrHeight     = "height"
	AttrRowSpan    = "rowspan"
	AttrColSpan    = "colspan"
	AttrBackground = "background-color"
)

// maxSize caps decoded widths and heights.
const maxSize = 100000

// FormatSize encodes a width or height attribute.
func FormatSize(v int) string { return strconv.Itoa(v) }

// ParseSize decodes a width or height attribute. A trailing "px" is
// accepted and values are capped at 100000. Missing or malformed values
// return 0.
func ParseSize(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int(min(f, maxSize) + 0.5)
	}
	return 0
}

// ParseSpan decodes a rowspan or colspan attribute; anything but a
// positive integer is 1.
func ParseSpan(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func spanAttr(n int) string {
	if n <= 1 {
		return ""
	}
	return strconv.Itoa(n)
}

// TableAttrs returns the attributes of a table-up-main node.
func TableAttrs(id string) map[string]string {
	return map[string]string{AttrTableID: id}
}

// ColAttrs returns the attributes of a table-up-col node.
func ColAttrs(width int) map[string]string {
	return map[string]string{AttrWidth: FormatSize(width)}
}

// RowAttrs returns the attributes of a table-up-row node.
func RowAttrs(height int) map[string]string {
	return map[string]string{AttrHeight: FormatSize(height)}
}

// CellAttrs returns the attributes of a table-up-cell node. Unit spans and
// an empty background are omitted.
func CellAttrs(span table.Span, background string) map[string]string {
	m := map[string]string{}
	if v := spanAttr(span.Rows); v != "" {
		m[AttrRowSpan] = v
	}
	if v := spanAttr(span.Cols); v != "" {
		m[AttrColSpan] = v
	}
	if background != "" {
		m[AttrBackground] = background
	}
	return m
}

// SpanAttrs returns the rowspan and colspan attribute values for span, ""
// meaning "unset".
func SpanAttrs(span table.Span) (rowspan, colspan string) {
	return spanAttr(span.Rows), spanAttr(span.Cols)
}
