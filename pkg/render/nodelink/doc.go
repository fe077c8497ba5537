// Package nodelink renders mind maps as Graphviz node-link diagrams.
//
// # Overview
//
// This package hands a snapshot to Graphviz for styling while keeping the
// editor's layout: every node is emitted with a pinned position and the
// diagram is drawn by the neato engine, which honours pins instead of
// arranging nodes itself. It's an alternative to the native [svg] renderer
// for users who want Graphviz output or further processing of the DOT.
//
// # Usage
//
// Convert a snapshot to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(st.Snapshot(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # DOT Format
//
// Nodes become fixed-size circles whose diameter matches the node radius in
// model units (inputscale=72 makes one point equal one unit). Connection
// types map to edge styles: dashed and dotted stay as-is, solid is the
// default. Connections with a missing endpoint are left out.
//
// [svg]: github.com/sgazz/acai-mindmap/pkg/render/svg
package nodelink
