package doc

import (
	"maps"
	"slices"
)

// NodeID identifies a node in a Tree. The zero value is never a valid node.
type NodeID uint64

const NoNode NodeID = 0

// RootKind is the kind of the tree root.
const RootKind = "root"

// Node is a read-only view of a document node.
type Node struct {
	ID       NodeID
	Kind     string
	Parent   NodeID
	Children []NodeID
	Attrs    map[string]string
	Text     string
}

// Attr returns the attribute value for key, or "" when unset.
func (n Node) Attr(key string) string { return n.Attrs[key] }

func (n Node) clone() Node {
	n.Children = slices.Clone(n.Children)
	n.Attrs = maps.Clone(n.Attrs)
	return n
}

// KindSpec registers a node kind with the tree. When Parents is non-empty a
// node of this kind may only be inserted or moved under a node whose kind is
// listed.
type KindSpec struct {
	Name    string
	Parents []string
}

// EditOp identifies the kind of an Edit.
type EditOp uint8

const (
	OpInsert EditOp = iota
	OpRemove
	OpMove
	OpSetAttr
	OpSetText
)

func (op EditOp) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpMove:
		return "move"
	case OpSetAttr:
		return "set-attr"
	case OpSetText:
		return "set-text"
	default:
		return "unknown"
	}
}

// Edit is one primitive mutation of the tree.
//
// Index is the child position under Parent; -1 appends. For OpMove the node
// is detached first and Index is interpreted against the remaining children.
type Edit struct {
	Op     EditOp
	Node   NodeID
	Parent NodeID
	Index  int

	Kind  string
	Attrs map[string]string

	Key   string
	Value string
	Text  string
}

// Insert returns an edit inserting a new node id of kind under parent.
func Insert(parent NodeID, index int, id NodeID, kind string, attrs map[string]string) Edit {
	return Edit{Op: OpInsert, Node: id, Parent: parent, Index: index, Kind: kind, Attrs: maps.Clone(attrs)}
}

// InsertText is Insert with initial text content.
func InsertText(parent NodeID, index int, id NodeID, kind, text string) Edit {
	return Edit{Op: OpInsert, Node: id, Parent: parent, Index: index, Kind: kind, Text: text}
}

// Remove returns an edit removing id and its subtree.
func Remove(id NodeID) Edit { return Edit{Op: OpRemove, Node: id} }

// Move returns an edit moving id under parent at index.
func Move(id, parent NodeID, index int) Edit {
	return Edit{Op: OpMove, Node: id, Parent: parent, Index: index}
}

// SetAttr returns an edit setting key on id. An empty value deletes the key.
func SetAttr(id NodeID, key, value string) Edit {
	return Edit{Op: OpSetAttr, Node: id, Key: key, Value: value}
}

// SetText returns an edit replacing the text content of id.
func SetText(id NodeID, text string) Edit { return Edit{Op: OpSetText, Node: id, Text: text} }
