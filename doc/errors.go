package doc

import "errors"

var (
	ErrNodeNotFound = errors.New("doc: node not found")
	ErrNodeExists   = errors.New("doc: node already exists")
	ErrBadIndex     = errors.New("doc: child index out of range")
	ErrBadParent    = errors.New("doc: invalid parent")
	ErrRootEdit     = errors.New("doc: root cannot be removed or moved")
)
