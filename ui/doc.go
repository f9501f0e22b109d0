// Package ui holds the table creation widgets: a size picker that emits
// CreateTableMsg, a cell background color picker, and a tooltip.
//
// The widgets only render and hit-test. They never touch a table; hosts
// turn their results into engine calls.
package ui
