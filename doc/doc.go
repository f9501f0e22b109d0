// Package doc implements an in-memory host document: a tree of typed nodes
// with attributes, edited through batches of primitive edits.
//
// Every effective Apply is one undo step. Node maps are copy-on-write, so
// an undo snapshot is the previous map itself and a batch that fails
// validation leaves the tree untouched.
package doc
