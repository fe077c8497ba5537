package mindmap

import (
	"slices"
	"time"
)

// =============================================================================
// Enumerations
// =============================================================================

// Size is the visual size class of a node.
type Size string

// Node sizes.
const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Effective node radii in model units, keyed by size.
const (
	RadiusSmall  = 30.0
	RadiusMedium = 40.0
	RadiusLarge  = 50.0
)

// Valid reports whether s is one of the known sizes.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Radius returns the effective radius used for routing and hit-testing.
// Unknown sizes use the medium radius.
func (s Size) Radius() float64 {
	switch s {
	case SizeSmall:
		return RadiusSmall
	case SizeLarge:
		return RadiusLarge
	default:
		return RadiusMedium
	}
}

// ConnectionType is the stroke style of a connection.
type ConnectionType string

// Connection stroke styles.
const (
	ConnectionSolid  ConnectionType = "solid"
	ConnectionDashed ConnectionType = "dashed"
	ConnectionDotted ConnectionType = "dotted"
)

// Valid reports whether t is one of the known stroke styles.
func (t ConnectionType) Valid() bool {
	switch t {
	case ConnectionSolid, ConnectionDashed, ConnectionDotted:
		return true
	}
	return false
}

// =============================================================================
// Node
// =============================================================================

// Metadata carries bookkeeping attached to a node.
type Metadata struct {
	Created  time.Time
	Modified time.Time
	Tags     []string
	Notes    string
}

// Node is a labeled point in the mind map.
type Node struct {
	ID       string
	Content  string
	Position Point // center, model space
	Color    string
	Size     Size

	// ParentID is a lookup-only back-reference (nil for roots).
	ParentID *string
	Children []string
	Metadata *Metadata
}

// HasParent reports whether the node has a parent back-reference.
func (n Node) HasParent() bool { return n.ParentID != nil }

// Parent returns the parent id, or "" for a root node.
func (n Node) Parent() string {
	if n.ParentID == nil {
		return ""
	}
	return *n.ParentID
}

// Radius returns the node's effective radius.
func (n Node) Radius() float64 { return n.Size.Radius() }

// Contains reports whether p lies inside the node's circle.
func (n Node) Contains(p Point) bool {
	return n.Position.Dist(p) <= n.Radius()
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	out := n
	if n.ParentID != nil {
		pid := *n.ParentID
		out.ParentID = &pid
	}
	out.Children = slices.Clone(n.Children)
	if n.Metadata != nil {
		md := *n.Metadata
		md.Tags = slices.Clone(n.Metadata.Tags)
		out.Metadata = &md
	}
	return out
}

// NodePatch is a partial node update. Nil fields are left unchanged.
type NodePatch struct {
	Content  *string
	Position *Point
	Color    *string
	Size     *Size
	ParentID *string
	Children []string
	Metadata *Metadata

	// ClearParent sets ParentID to nil. It takes precedence over ParentID.
	ClearParent bool
	// ClearChildren empties Children; needed because a nil slice means "unchanged".
	ClearChildren bool
}

// MovePatch returns a patch that only changes the node position.
func MovePatch(p Point) NodePatch { return NodePatch{Position: &p} }

// Empty reports whether the patch changes nothing.
func (p NodePatch) Empty() bool {
	return p.Content == nil && p.Position == nil && p.Color == nil && p.Size == nil &&
		p.ParentID == nil && p.Children == nil && p.Metadata == nil &&
		!p.ClearParent && !p.ClearChildren
}

// Apply returns a copy of n with the patch merged in. The receiver is not modified.
func (n Node) Apply(p NodePatch) Node {
	out := n.Clone()
	if p.Content != nil {
		out.Content = *p.Content
	}
	if p.Position != nil {
		out.Position = *p.Position
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.Size != nil {
		out.Size = *p.Size
	}
	switch {
	case p.ClearParent:
		out.ParentID = nil
	case p.ParentID != nil:
		pid := *p.ParentID
		out.ParentID = &pid
	}
	switch {
	case p.ClearChildren:
		out.Children = nil
	case p.Children != nil:
		out.Children = slices.Clone(p.Children)
	}
	if p.Metadata != nil {
		md := *p.Metadata
		md.Tags = slices.Clone(p.Metadata.Tags)
		out.Metadata = &md
	}
	return out
}

// =============================================================================
// Connection
// =============================================================================

// Connection is a directed edge between two node ids.
type Connection struct {
	ID        string
	From      string
	To        string
	Type      ConnectionType
	Color     string
	Thickness *float64
	Label     *string
}

// Touches reports whether the connection has nodeID as either endpoint.
func (c Connection) Touches(nodeID string) bool {
	return c.From == nodeID || c.To == nodeID
}

// IsLoop reports whether the connection starts and ends at the same node.
func (c Connection) IsLoop() bool { return c.From == c.To }

// Clone returns a deep copy of c.
func (c Connection) Clone() Connection {
	out := c
	if c.Thickness != nil {
		v := *c.Thickness
		out.Thickness = &v
	}
	if c.Label != nil {
		v := *c.Label
		out.Label = &v
	}
	return out
}

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot is the committed graph at one point in time.
type Snapshot struct {
	Nodes       []Node
	Connections []Connection
}

// Clone returns a deep copy of s. Empty collections stay non-nil so that
// exported documents always carry arrays.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Nodes:       make([]Node, len(s.Nodes)),
		Connections: make([]Connection, len(s.Connections)),
	}
	for i, n := range s.Nodes {
		out.Nodes[i] = n.Clone()
	}
	for i, c := range s.Connections {
		out.Connections[i] = c.Clone()
	}
	return out
}

// NodeByID returns the node with the given id.
func (s Snapshot) NodeByID(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
