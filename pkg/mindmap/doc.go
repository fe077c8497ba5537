// Package mindmap defines the data model shared by every part of the editor.
//
// # Core Types
//
//   - [Node]: a labeled point with position, styling and an optional parent id
//   - [Connection]: a directed, styled edge between two node ids
//   - [Snapshot]: a {nodes, connections} pair, the unit of undo/redo history
//   - [NodePatch]: a partial update merged into a node by the store
//   - [Point]: a 2D coordinate in model or screen space
//
// # Ownership
//
// Nodes are owned solely by the node collection of a [Snapshot] (or the store
// that holds it). [Node.ParentID] is a lookup-only back-reference by id; it is
// never a pointer to another node, so the graph can be copied freely and never
// forms ownership cycles.
//
// A node's [Node.Position] is its center. The effective radius used for
// connection routing and hit-testing comes from [Size.Radius].
//
// # Copy Semantics
//
// All types in this package are plain values, but Node and Connection carry
// pointer and slice fields. Use [Node.Clone], [Connection.Clone] and
// [Snapshot.Clone] whenever a value crosses an ownership boundary (history
// entries, store readers, exported documents).
package mindmap
