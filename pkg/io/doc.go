// Package io provides JSON import and export for mind-map documents.
//
// # Overview
//
// A document is the persisted and exchanged form of a graph: every node with
// its position and styling, every connection, and the time of export. The
// format is shared with browser hosts, so field names are camelCase and the
// layout is exactly what such a host writes when the user clicks "export".
//
// # JSON Format
//
//	{
//	  "version": "1",
//	  "nodes": [
//	    {"id": "n1", "content": "Project", "position": {"x": 0, "y": 0},
//	     "color": "#3b82f6", "size": "large", "parentId": null},
//	    {"id": "n2", "content": "Task", "position": {"x": 150, "y": 40},
//	     "color": "", "size": "medium", "parentId": "n1"}
//	  ],
//	  "connections": [
//	    {"id": "c1", "from": "n1", "to": "n2", "type": "solid", "color": "",
//	     "thickness": 3, "label": "owns"}
//	  ],
//	  "exportDate": "2024-06-01T12:00:00Z"
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//   - position: Object with finite numeric x and y (the node center)
//
// Optional:
//   - content: String, default empty
//   - color: Empty, a hex color ("#3b82f6"), a CSS keyword ("Blue") or a
//     CSS color function ("rgb(59, 130, 246)")
//   - size: "small", "medium" or "large" (default "medium")
//   - parentId: Id of a parent node or null; a lookup index only, it need
//     not resolve
//   - children: Array of child ids
//   - metadata: {created, modified (RFC 3339), tags, notes}
//
// # Connection Fields
//
// Required: id, from, to. Both endpoints must name nodes in the same
// document. Optional: type ("solid", "dashed", "dotted"; default "solid"),
// color (same rules as node colors), thickness (positive number), label.
//
// # Import
//
// [ReadJSON], [UnmarshalJSON] and [ImportFile] decode a document into a
// [mindmap.Snapshot]. [Import] additionally installs it into a store as a
// single undoable step. Failures are classified:
//
//   - PARSE_ERROR: the input is not JSON
//   - SCHEMA_ERROR: the JSON has the wrong shape (missing or non-array
//     "nodes"/"connections", missing ids, unknown enums, non-finite
//     coordinates, duplicate ids, dangling connection endpoints)
//
// On failure nothing is returned and no store is touched.
//
// # Export
//
// [Export] converts a snapshot to a [Document]. [WriteJSON], [MarshalJSON]
// and [ExportFile] encode it with two-space indentation. Re-importing an
// exported document reproduces the same nodes and connections.
package io
