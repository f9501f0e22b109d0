package doc

import "slices"

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceUndo
	ChangeSourceRedo
)

func (s ChangeSource) String() string {
	switch s {
	case ChangeSourceLocal:
		return "local"
	case ChangeSourceUndo:
		return "undo"
	case ChangeSourceRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// Change is a normalized, versioned mutation payload.
type Change struct {
	Source        ChangeSource
	VersionBefore uint64
	VersionAfter  uint64
	FocusBefore   NodeID
	FocusAfter    NodeID

	// Edits is the applied batch for local changes; nil for undo and redo.
	Edits []Edit
	// Touched lists every node that was added, removed, or modified.
	Touched []NodeID
}

type changeBuilder struct {
	source        ChangeSource
	versionBefore uint64
	focusBefore   NodeID
}

// LastChange returns the most recent effective change.
func (t *Tree) LastChange() (Change, bool) {
	if !t.hasLastChange {
		return Change{}, false
	}
	return cloneChange(t.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.Edits = slices.Clone(in.Edits)
	out.Touched = slices.Clone(in.Touched)
	return out
}

func (t *Tree) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:        source,
		versionBefore: t.version,
		focusBefore:   t.focus,
	}
}

func (t *Tree) commitChange(cb changeBuilder, edits []Edit, touched []NodeID) Change {
	if t.version == cb.versionBefore {
		return Change{}
	}
	t.lastChange = Change{
		Source:        cb.source,
		VersionBefore: cb.versionBefore,
		VersionAfter:  t.version,
		FocusBefore:   cb.focusBefore,
		FocusAfter:    t.focus,
		Edits:         slices.Clone(edits),
		Touched:       slices.Clone(touched),
	}
	t.hasLastChange = true
	c := cloneChange(t.lastChange)
	t.notify(c)
	return c
}

// touchedNodes lists ids whose node pointer differs between two maps.
// Maps are copy-on-write, so pointer identity means "unchanged".
func touchedNodes(before, after map[NodeID]*Node) []NodeID {
	var out []NodeID
	for id, n := range after {
		if prev, ok := before[id]; !ok || prev != n {
			out = append(out, id)
		}
	}
	for id := range before {
		if _, ok := after[id]; !ok {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
