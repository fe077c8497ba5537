// Package svg renders a mind map as a standalone SVG document.
//
// Nodes are drawn at their stored positions; nothing is laid out. Each
// connection becomes a group holding the visible stroke, its arrowhead, an
// optional label, and a wide transparent "hit" stroke:
//
//	<g class="connection" data-id="c1">
//	  <path class="hit" d="..." stroke="transparent" stroke-width="12" pointer-events="stroke"/>
//	  <path class="stroke" d="..." stroke-dasharray="8,4"/>
//	  <path class="arrow" d="... Z"/>
//	</g>
//
// The output is deterministic for a given input, which keeps golden tests
// and diffs of rendered maps stable.
package svg

import (
	"bytes"
	"fmt"
	"math"

	"github.com/sgazz/acai-mindmap/pkg/buildinfo"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/render"
	"github.com/sgazz/acai-mindmap/pkg/route"
	"github.com/sgazz/acai-mindmap/pkg/viewport"
)

// Default styling.
const (
	DefaultNodeColor       = "#3b82f6"
	DefaultConnectionColor = "#64748b"
	SelectedStroke         = "#f59e0b"
	fitPadding             = 40.0
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	router    route.Router
	view      *viewport.Transform
	width     float64
	height    float64
	selected  string
	hitPaths  bool
	signature bool
}

// WithRouter sets the router used for connection geometry.
func WithRouter(r route.Router) Option { return func(rd *renderer) { rd.router = r } }

// WithViewport renders what a screen of the given size shows through t,
// instead of fitting the drawing to its content.
func WithViewport(t viewport.Transform, width, height float64) Option {
	return func(rd *renderer) {
		rd.view = &t
		rd.width, rd.height = width, height
	}
}

// WithSelected outlines the node with the given id.
func WithSelected(id string) Option { return func(rd *renderer) { rd.selected = id } }

// WithoutHitPaths omits the transparent hit-test strokes.
func WithoutHitPaths() Option { return func(rd *renderer) { rd.hitPaths = false } }

// WithoutSignature omits the generator comment.
func WithoutSignature() Option { return func(rd *renderer) { rd.signature = false } }

// Render draws nodes and the connections between them. Connections whose
// endpoints are missing from nodes are skipped.
func Render(nodes []mindmap.Node, conns []mindmap.Connection, opts ...Option) []byte {
	rd := renderer{router: route.Default(), hitPaths: true, signature: true}
	for _, opt := range opts {
		opt(&rd)
	}

	var buf bytes.Buffer
	rd.writeHeader(&buf, nodes)
	if rd.signature {
		fmt.Fprintf(&buf, "  <!-- generated by %s -->\n", render.EscapeXML(buildinfo.Generator()))
	}
	rd.writeDefs(&buf)

	if rd.view != nil {
		s := rd.view.Scale
		fmt.Fprintf(&buf, `  <g transform="matrix(%s 0 0 %s %s %s)">`+"\n",
			num(s), num(s), num(rd.view.Offset.X), num(rd.view.Offset.Y))
	} else {
		buf.WriteString("  <g>\n")
	}

	buf.WriteString(`    <g class="connections">` + "\n")
	for _, r := range rd.router.RouteAll(nodes, conns) {
		rd.writeConnection(&buf, r)
	}
	buf.WriteString("    </g>\n")

	buf.WriteString(`    <g class="nodes">` + "\n")
	for _, n := range nodes {
		rd.writeNode(&buf, n)
	}
	buf.WriteString("    </g>\n")

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (rd *renderer) writeHeader(buf *bytes.Buffer, nodes []mindmap.Node) {
	if rd.view != nil {
		fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
			num(rd.width), num(rd.height), rd.width, rd.height)
		return
	}
	minX, minY, w, h := bounds(nodes)
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(minX), num(minY), num(w), num(h), w, h)
}

func (rd *renderer) writeDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    .node-label { font-family: system-ui, sans-serif; text-anchor: middle; dominant-baseline: central; fill: #ffffff; }
    .connection-label { font-family: system-ui, sans-serif; font-size: 12px; text-anchor: middle; fill: #334155; }
    .connection .hit { fill: none; }
    .connection .stroke { fill: none; stroke-linecap: round; }
  </style>
`)
}

func (rd *renderer) writeConnection(buf *bytes.Buffer, r route.Route) {
	if r.Degenerate {
		return
	}
	color := r.Color
	if color == "" {
		color = DefaultConnectionColor
	}
	color = render.EscapeXML(color)

	fmt.Fprintf(buf, `      <g class="connection" data-id="%s">`+"\n", render.EscapeXML(r.ConnectionID))
	if rd.hitPaths {
		fmt.Fprintf(buf, `        <path class="hit" d="%s" stroke="transparent" stroke-width="%s" pointer-events="stroke"/>`+"\n",
			r.Path(), num(r.HitWidth))
	}
	fmt.Fprintf(buf, `        <path class="stroke" d="%s" stroke="%s" stroke-width="%s"`, r.Path(), color, num(r.StrokeWidth))
	if r.Dash != "" {
		fmt.Fprintf(buf, ` stroke-dasharray="%s"`, r.Dash)
	}
	buf.WriteString("/>\n")
	fmt.Fprintf(buf, `        <path class="arrow" d="%s" fill="%s"/>`+"\n", r.Arrow.Path(), color)
	if r.Label != "" {
		m := r.Midpoint()
		fmt.Fprintf(buf, `        <text class="connection-label" x="%s" y="%s">%s</text>`+"\n",
			num(m.X), num(m.Y-6), render.EscapeXML(r.Label))
	}
	buf.WriteString("      </g>\n")
}

func (rd *renderer) writeNode(buf *bytes.Buffer, n mindmap.Node) {
	fill := n.Color
	if fill == "" {
		fill = DefaultNodeColor
	}
	fmt.Fprintf(buf, `      <g class="node" data-id="%s">`+"\n", render.EscapeXML(n.ID))
	fmt.Fprintf(buf, `        <circle cx="%s" cy="%s" r="%s" fill="%s"`,
		num(n.Position.X), num(n.Position.Y), num(n.Radius()), render.EscapeXML(fill))
	if n.ID == rd.selected {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="3"`, SelectedStroke)
	}
	buf.WriteString("/>\n")
	if n.Content != "" {
		fmt.Fprintf(buf, `        <text class="node-label" x="%s" y="%s" font-size="%s">%s</text>`+"\n",
			num(n.Position.X), num(n.Position.Y), num(fontSize(n.Size)), render.EscapeXML(truncate(n.Content, n.Size)))
	}
	buf.WriteString("      </g>\n")
}

// bounds returns a padded box around every node circle.
func bounds(nodes []mindmap.Node) (minX, minY, w, h float64) {
	min, max, ok := mindmap.Bounds(nodes)
	if !ok {
		return 0, 0, 2 * fitPadding, 2 * fitPadding
	}
	// Self loops rise above their node.
	min.Y -= 2 * mindmap.RadiusLarge
	return min.X - fitPadding, min.Y - fitPadding, max.X - min.X + 2*fitPadding, max.Y - min.Y + 2*fitPadding
}

func fontSize(s mindmap.Size) float64 {
	switch s {
	case mindmap.SizeSmall:
		return 11
	case mindmap.SizeLarge:
		return 16
	default:
		return 13
	}
}

// truncate keeps a label inside its circle.
func truncate(s string, size mindmap.Size) string {
	max := int(size.Radius() / 4)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	return fmt.Sprintf("%g", v)
}
