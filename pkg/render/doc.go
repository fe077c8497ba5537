// Package render provides output rendering for mind-map documents.
//
// # Overview
//
// Rendering is a host concern: the editor core only computes positions and
// connection geometry. This package and its subpackages turn that geometry
// into files:
//
//   - Native SVG drawn from the connection router (in [svg] subpackage)
//   - Graphviz node-link diagrams with pinned positions (in [nodelink] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both renderers share them.
//
//	out := svg.Render(nodes, conns)
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0)  // 2x scale
//
// # Native SVG
//
// The [svg] subpackage draws nodes as circles and connections as the curved
// strokes, dash patterns and arrowheads the interactive editor shows. Each
// connection also gets a wide transparent stroke so browser hosts can use it
// as a click target.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage emits Graphviz DOT with every node pinned to its
// stored position and renders it with the neato engine, so Graphviz styles
// the drawing without rearranging it.
//
//	dot := nodelink.ToDOT(snapshot, nodelink.Options{})
//	out, err := nodelink.RenderSVG(ctx, dot)
//
// [svg]: github.com/sgazz/acai-mindmap/pkg/render/svg
// [nodelink]: github.com/sgazz/acai-mindmap/pkg/render/nodelink
package render
