// Package pkg provides the core libraries for the mind-map editor.
//
// # Overview
//
// A mind map is a set of circular nodes joined by directed, styled
// connections. The pkg directory is organized into four areas:
//
//  1. Domain model ([mindmap]): nodes, connections, snapshots and geometry
//  2. Editing ([store], [history], [drag], [viewport]): the mutable graph,
//     its undo log, pointer-driven moves and the pan/zoom transform
//  3. Presentation ([route], [render], [render/svg], [render/nodelink]):
//     connection geometry and static output
//  4. Plumbing ([io], [config], [cache], [idgen], [errors], [observability])
//
// # Architecture
//
// The typical data flow:
//
//	JSON document
//	     ↓
//	[io] package (decode + validate)
//	     ↓
//	[store] package (mutations, selection, undo/redo)
//	     ↓
//	[route] package (curves, arrowheads, hit testing)
//	     ↓
//	[render/svg] or [render/nodelink] (SVG, DOT, PDF, PNG)
//
// # Quick Start
//
// Build a small map and render it:
//
//	st := store.New()
//	_ = st.AddNode(mindmap.Node{ID: "root", Content: "Idea", Size: mindmap.SizeLarge})
//	_ = st.AddNode(mindmap.Node{ID: "task", Content: "Task", Position: mindmap.Pt(200, 0)})
//	_ = st.AddConnection(mindmap.Connection{ID: "c1", From: "root", To: "task"})
//
//	snap := st.Snapshot()
//	out := svg.Render(snap.Nodes, snap.Connections)
//
// Every committed mutation is one undo step:
//
//	st.Undo() // removes c1
//	st.Redo() // restores it
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -run Example ./... # Examples only
//
// [mindmap]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/mindmap
// [store]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/store
// [history]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/history
// [drag]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/drag
// [viewport]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/viewport
// [route]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/route
// [render]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/io
// [config]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/config
// [cache]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/cache
// [idgen]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/idgen
// [errors]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/sgazz/acai-mindmap/pkg/observability
package pkg
