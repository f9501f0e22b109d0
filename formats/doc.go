// Package formats defines how tables are stored in a doc.Tree.
//
// A table is a small subtree of registered node kinds:
//
//	table-up-main            data-table-id
//	  table-up-colgroup
//	    table-up-col         width
//	  table-up-body
//	    table-up-row         height
//	      table-up-cell      rowspan colspan background-color
//	        block            (cell content)
//
// The package converts between that subtree and a table.Table, and between
// a table.Table and HTML.
package formats
