package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"slices"
	"time"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/observability"
)

// Export converts s into a Document stamped with now. Empty graphs produce
// empty arrays, never null.
func Export(s mindmap.Snapshot, now time.Time) Document {
	doc := Document{
		Version:     FormatVersion,
		Nodes:       make([]NodeDoc, len(s.Nodes)),
		Connections: make([]ConnectionDoc, len(s.Connections)),
		ExportDate:  now.UTC().Format(time.RFC3339),
	}
	for i, n := range s.Nodes {
		doc.Nodes[i] = nodeToDoc(n)
	}
	for i, c := range s.Connections {
		doc.Connections[i] = connectionToDoc(c)
	}
	return doc
}

func nodeToDoc(n mindmap.Node) NodeDoc {
	x, y := n.Position.X, n.Position.Y
	nd := NodeDoc{
		ID:       n.ID,
		Content:  n.Content,
		Position: &PositionDoc{X: &x, Y: &y},
		Color:    n.Color,
		Size:     string(n.Size),
		Children: slices.Clone(n.Children),
	}
	if n.ParentID != nil {
		pid := *n.ParentID
		nd.ParentID = &pid
	}
	if md := n.Metadata; md != nil {
		nd.Metadata = &MetadataDoc{
			Created:  md.Created.UTC(),
			Modified: md.Modified.UTC(),
			Tags:     slices.Clone(md.Tags),
			Notes:    md.Notes,
		}
	}
	return nd
}

func connectionToDoc(c mindmap.Connection) ConnectionDoc {
	cd := ConnectionDoc{
		ID:    c.ID,
		From:  c.From,
		To:    c.To,
		Type:  string(c.Type),
		Color: c.Color,
	}
	if c.Thickness != nil {
		v := *c.Thickness
		cd.Thickness = &v
	}
	if c.Label != nil {
		v := *c.Label
		cd.Label = &v
	}
	return cd
}

// WriteJSON encodes s as an indented JSON document and writes it to w.
// A successful write is reported to the globally registered editor hooks
// ([observability.SetEditorHooks]), since no store is involved.
func WriteJSON(w io.Writer, s mindmap.Snapshot, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export(s, now)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	observability.Editor().OnExport(len(s.Nodes), len(s.Connections))
	return nil
}

// MarshalJSON returns the encoded document for s.
func MarshalJSON(s mindmap.Snapshot, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, s, now); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFile writes the document for s to path, replacing any existing file.
func ExportFile(path string, s mindmap.Snapshot, now time.Time) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := MarshalJSON(s, now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
