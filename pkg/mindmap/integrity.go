package mindmap

import (
	"errors"
	"fmt"

	mmerrors "github.com/sgazz/acai-mindmap/pkg/errors"
)

var (
	// ErrEmptyID is returned by [Snapshot.Validate] when a node or connection
	// has an empty identifier.
	ErrEmptyID = errors.New("id must not be empty")

	// ErrDuplicateNodeID is returned by [Snapshot.Validate] when two nodes
	// share an id.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrDuplicateConnectionID is returned by [Snapshot.Validate] when two
	// connections share an id.
	ErrDuplicateConnectionID = errors.New("duplicate connection id")

	// ErrDanglingConnection is returned by [Snapshot.Validate] when a
	// connection's from or to does not name an existing node.
	ErrDanglingConnection = errors.New("connection references unknown node")

	// ErrInvalidSize is returned when a node carries an unknown size class.
	ErrInvalidSize = errors.New("invalid node size")

	// ErrInvalidConnectionType is returned when a connection carries an
	// unknown stroke style.
	ErrInvalidConnectionType = errors.New("invalid connection type")

	// ErrInvalidColor is returned when a node or connection color is not a
	// hex color, CSS keyword or CSS color function.
	ErrInvalidColor = errors.New("invalid color")
)

// Validate checks the graph invariants: unique non-empty ids, known enum
// values, colors accepted by [mmerrors.ValidateColor], and every connection
// endpoint referencing an existing node.
// Parent ids are lookup-only and are not required to resolve.
func (s Snapshot) Validate() error {
	nodes := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID == "" {
			return ErrEmptyID
		}
		if _, dup := nodes[n.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		if !n.Size.Valid() {
			return fmt.Errorf("%w: node %s: %q", ErrInvalidSize, n.ID, n.Size)
		}
		if mmerrors.ValidateColor(n.Color) != nil {
			return fmt.Errorf("%w: node %s: %q", ErrInvalidColor, n.ID, n.Color)
		}
		nodes[n.ID] = struct{}{}
	}

	conns := make(map[string]struct{}, len(s.Connections))
	for _, c := range s.Connections {
		if c.ID == "" {
			return ErrEmptyID
		}
		if _, dup := conns[c.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateConnectionID, c.ID)
		}
		if !c.Type.Valid() {
			return fmt.Errorf("%w: connection %s: %q", ErrInvalidConnectionType, c.ID, c.Type)
		}
		if mmerrors.ValidateColor(c.Color) != nil {
			return fmt.Errorf("%w: connection %s: %q", ErrInvalidColor, c.ID, c.Color)
		}
		if _, ok := nodes[c.From]; !ok {
			return fmt.Errorf("%w: connection %s from %s", ErrDanglingConnection, c.ID, c.From)
		}
		if _, ok := nodes[c.To]; !ok {
			return fmt.Errorf("%w: connection %s to %s", ErrDanglingConnection, c.ID, c.To)
		}
		conns[c.ID] = struct{}{}
	}
	return nil
}
