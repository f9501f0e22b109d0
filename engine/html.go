package engine

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/formats"
)

// PasteHTML imports every table in r and inserts them under parent starting
// at index (-1 appends), as one undo step. Tables whose id is already in use
// get a fresh id. It returns the ids of the inserted tables.
func (e *Engine) PasteHTML(parent doc.NodeID, index int, r io.Reader) ([]string, error) {
	imported, err := formats.ParseHTML(r, e.opt)
	if err != nil {
		return nil, fmt.Errorf("paste html: %w", err)
	}

	var (
		edits    []doc.Edit
		ids      []string
		bindings []formats.Binding
		seen     = map[string]bool{}
	)
	for i, imp := range imported {
		model := imp.Table
		if _, taken := e.reg.Table(model.ID()); taken || seen[model.ID()] {
			model = model.CloneAs(uuid.NewString())
			imported[i].Table = model
		}
		seen[model.ID()] = true

		at := index
		if at >= 0 {
			at += i
		}
		b, te := formats.BuildTable(e.host, parent, at, model, imp.Cells)
		edits = append(edits, te...)
		ids = append(ids, model.ID())
		bindings = append(bindings, b)
	}

	change, err := e.apply(edits)
	if err != nil {
		return nil, fmt.Errorf("paste html: %w", err)
	}
	for i, imp := range imported {
		e.reg.Add(imp.Table, bindings[i])
	}
	e.log.WithFields(logrus.Fields{
		"op":      "paste-html",
		"tables":  len(ids),
		"edits":   len(edits),
		"version": change.VersionAfter,
	}).Debug("table operation committed")
	return ids, nil
}

// ExportHTML writes a table, with its content, as HTML.
func (e *Engine) ExportHTML(tableID string, w io.Writer) error {
	t, ok := e.reg.Table(tableID)
	if !ok {
		return unknownTable("export html", tableID)
	}
	b, _ := e.reg.Binding(tableID)
	return formats.WriteHTML(w, t, formats.ReadAllCellData(e.host, b))
}
