package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/store"
)

// maxDocumentSize bounds how much ReadJSON will buffer.
const maxDocumentSize = 64 << 20

// ReadJSON decodes a document from r into a snapshot.
//
// ReadJSON returns a PARSE_ERROR if r does not contain JSON and a
// SCHEMA_ERROR if the JSON is not a valid document; see the package
// documentation for the rules. ReadJSON does not close r.
func ReadJSON(r io.Reader) (mindmap.Snapshot, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return mindmap.Snapshot{}, errors.Wrap(errors.ErrCodeParse, err, "read document")
	}
	if len(data) > maxDocumentSize {
		return mindmap.Snapshot{}, errors.New(errors.ErrCodeParse, "document exceeds %d bytes", maxDocumentSize)
	}
	return UnmarshalJSON(data)
}

// UnmarshalJSON decodes a document held in memory.
func UnmarshalJSON(data []byte) (mindmap.Snapshot, error) {
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		return mindmap.Snapshot{}, errors.Wrap(errors.ErrCodeParse, err, "document is not valid JSON")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return mindmap.Snapshot{}, errors.New(errors.ErrCodeSchema, "document must be a JSON object")
	}
	for _, key := range []string{"nodes", "connections"} {
		if err := requireArray(top, key); err != nil {
			return mindmap.Snapshot{}, err
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return mindmap.Snapshot{}, errors.Wrap(errors.ErrCodeSchema, err, "document has the wrong shape")
	}
	if err := validate.Struct(doc); err != nil {
		return mindmap.Snapshot{}, errors.New(errors.ErrCodeSchema, "%s", formatValidationError(err))
	}

	snap := fromDocument(doc)
	if err := snap.Validate(); err != nil {
		return mindmap.Snapshot{}, errors.Wrap(errors.ErrCodeSchema, err, "document violates graph integrity")
	}
	return snap, nil
}

func requireArray(top map[string]json.RawMessage, key string) error {
	raw, ok := top[key]
	if !ok {
		return errors.New(errors.ErrCodeSchema, "missing %q array", key)
	}
	if raw = bytes.TrimSpace(raw); len(raw) == 0 || raw[0] != '[' {
		return errors.New(errors.ErrCodeSchema, "%q must be an array", key)
	}
	return nil
}

// ImportFile reads and decodes the document at path.
func ImportFile(path string) (mindmap.Snapshot, error) {
	if err := errors.ValidatePath(path); err != nil {
		return mindmap.Snapshot{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return mindmap.Snapshot{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return mindmap.Snapshot{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Import decodes a document from r and installs it in st as one undoable
// step. On any error st and its history are unchanged. The attempt is
// reported to st's editor hooks.
func Import(st *store.Store, r io.Reader) error {
	hooks := st.Hooks()
	snap, err := ReadJSON(r)
	if err == nil {
		err = st.Replace(snap)
	}
	if err != nil {
		hooks.OnImport(0, 0, err)
		return err
	}
	hooks.OnImport(len(snap.Nodes), len(snap.Connections), nil)
	return nil
}

func fromDocument(doc Document) mindmap.Snapshot {
	snap := mindmap.Snapshot{
		Nodes:       make([]mindmap.Node, len(doc.Nodes)),
		Connections: make([]mindmap.Connection, len(doc.Connections)),
	}
	for i, nd := range doc.Nodes {
		snap.Nodes[i] = nodeFromDoc(nd)
	}
	for i, cd := range doc.Connections {
		snap.Connections[i] = connectionFromDoc(cd)
	}
	return snap
}

func nodeFromDoc(nd NodeDoc) mindmap.Node {
	n := mindmap.Node{
		ID:       nd.ID,
		Content:  nd.Content,
		Position: mindmap.Pt(*nd.Position.X, *nd.Position.Y),
		Color:    nd.Color,
		Size:     mindmap.Size(nd.Size),
		ParentID: nd.ParentID,
		Children: slices.Clone(nd.Children),
	}
	if n.Size == "" {
		n.Size = mindmap.SizeMedium
	}
	if md := nd.Metadata; md != nil {
		n.Metadata = &mindmap.Metadata{
			Created:  md.Created,
			Modified: md.Modified,
			Tags:     slices.Clone(md.Tags),
			Notes:    md.Notes,
		}
	}
	return n
}

func connectionFromDoc(cd ConnectionDoc) mindmap.Connection {
	c := mindmap.Connection{
		ID:        cd.ID,
		From:      cd.From,
		To:        cd.To,
		Type:      mindmap.ConnectionType(cd.Type),
		Color:     cd.Color,
		Thickness: cd.Thickness,
		Label:     cd.Label,
	}
	if c.Type == "" {
		c.Type = mindmap.ConnectionSolid
	}
	return c
}
