// Package table implements the pure table model for tableup.
//
// A Table is a grid of rows and columns tiled by cells. Cells may span
// several rows and columns; the union of all cells always partitions the
// grid exactly. Rows and cells are stored in table-owned arenas and are
// referenced by integer handles (RowID, CellID) instead of pointers.
//
// Coordinates are 0-based grid positions (Row, Col). Rectangles are
// half-open: [Top, Bottom) x [Left, Right).
package table
