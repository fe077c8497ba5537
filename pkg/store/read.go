package store

import (
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/observability"
)

// Nodes returns copies of all nodes in insertion order.
func (s *Store) Nodes() []mindmap.Node {
	out := make([]mindmap.Node, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = n.Clone()
	}
	return out
}

// Connections returns copies of all connections in insertion order.
func (s *Store) Connections() []mindmap.Connection {
	out := make([]mindmap.Connection, len(s.conns))
	for i, c := range s.conns {
		out[i] = c.Clone()
	}
	return out
}

// Node returns the node with the given id.
func (s *Store) Node(id string) (mindmap.Node, bool) {
	if i := s.nodeIndex(id); i >= 0 {
		return s.nodes[i].Clone(), true
	}
	return mindmap.Node{}, false
}

// Connection returns the connection with the given id.
func (s *Store) Connection(id string) (mindmap.Connection, bool) {
	if i := s.connIndex(id); i >= 0 {
		return s.conns[i].Clone(), true
	}
	return mindmap.Connection{}, false
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// ConnectionCount returns the number of connections.
func (s *Store) ConnectionCount() int { return len(s.conns) }

// SelectedNodeID returns the selected node id, or "" when nothing is selected.
func (s *Store) SelectedNodeID() string { return s.selected }

// SelectedNode returns the selected node.
func (s *Store) SelectedNode() (mindmap.Node, bool) {
	if s.selected == "" {
		return mindmap.Node{}, false
	}
	return s.Node(s.selected)
}

// Snapshot returns a deep copy of the committed graph.
func (s *Store) Snapshot() mindmap.Snapshot {
	return mindmap.Snapshot{Nodes: s.nodes, Connections: s.conns}.Clone()
}

// ConnectionsOf returns the connections that start or end at nodeID. These
// are the routes a host must recompute while the node is being dragged.
func (s *Store) ConnectionsOf(nodeID string) []mindmap.Connection {
	var out []mindmap.Connection
	for _, c := range s.conns {
		if c.Touches(nodeID) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Children returns the nodes whose parent back-reference is parentID.
func (s *Store) Children(parentID string) []mindmap.Node {
	var out []mindmap.Node
	for _, n := range s.nodes {
		if n.ParentID != nil && *n.ParentID == parentID {
			out = append(out, n.Clone())
		}
	}
	return out
}

// Hooks returns the editor hooks the store reports to.
func (s *Store) Hooks() observability.EditorHooks { return s.hooks }
