// Package preview serves a read-only HTTP view of a mind-map document.
//
// The document is loaded again on every request, so a browser pointed at the
// preview follows edits saved from another terminal. Nothing can be changed
// through the server.
//
// # Routes
//
//	GET /                 HTML page showing map.svg, refreshed periodically
//	GET /healthz          {"status":"ok"}
//	GET /map.json         the document as exported by package io
//	GET /map.svg          native SVG render
//	GET /map.dot          Graphviz source with pinned positions
//	GET /nodes            all nodes
//	GET /nodes/{nodeID}   one node with the connections touching it
//
// Load failures map to status codes by error code: a missing file is 404,
// a malformed document 422, anything else 500.
package preview
