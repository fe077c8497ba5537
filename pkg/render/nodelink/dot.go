package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/render"
)

// pointsPerInch is Graphviz's unit conversion; inputscale makes pos values
// read as points, so model units map 1:1.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds node ids and tags below the content label.
	Detailed bool
	// DefaultColor fills nodes without a color. Empty means "#3b82f6".
	DefaultColor string
}

// ToDOT converts a snapshot to Graphviz DOT source. Every node is pinned to
// its stored position, so the neato engine used by [RenderSVG] draws the map
// as-is. Graphviz's y axis points up; positions are mirrored to match the
// editor's screen orientation.
func ToDOT(snap mindmap.Snapshot, opts Options) string {
	fill := opts.DefaultColor
	if fill == "" {
		fill = "#3b82f6"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	fmt.Fprintf(&buf, "  inputscale=%g;\n", pointsPerInch)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=curved;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, fontcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [color=\"#64748b\", arrowsize=0.8];\n")
	buf.WriteString("\n")

	for _, n := range snap.Nodes {
		attrs := fmtNodeAttrs(n, fmtLabel(n, opts.Detailed), fill)
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range snap.Connections {
		if _, ok := snap.NodeByID(c.From); !ok {
			continue
		}
		if _, ok := snap.NodeByID(c.To); !ok {
			continue
		}
		attrs := fmtEdgeAttrs(c)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quote(c.From), quote(c.To))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(c.From), quote(c.To), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n mindmap.Node, detailed bool) string {
	label := n.Content
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}
	parts := []string{label, n.ID}
	if n.Metadata != nil && len(n.Metadata.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(n.Metadata.Tags, " #"))
	}
	return strings.Join(parts, "\n")
}

func fmtNodeAttrs(n mindmap.Node, label, defaultFill string) []string {
	fill := n.Color
	if fill == "" {
		fill = defaultFill
	}
	diameter := 2 * n.Radius() / pointsPerInch
	return []string{
		"label=" + quote(label),
		fmt.Sprintf("pos=\"%s,%s!\"", num(n.Position.X), num(-n.Position.Y)),
		fmt.Sprintf("width=%s", num(diameter)),
		"fillcolor=" + quote(fill),
	}
}

func fmtEdgeAttrs(c mindmap.Connection) []string {
	var attrs []string
	switch c.Type {
	case mindmap.ConnectionDashed:
		attrs = append(attrs, "style=dashed")
	case mindmap.ConnectionDotted:
		attrs = append(attrs, "style=dotted")
	}
	if c.Color != "" {
		attrs = append(attrs, "color=" + quote(c.Color))
	}
	if c.Thickness != nil {
		attrs = append(attrs, fmt.Sprintf("penwidth=%s", num(*c.Thickness)))
	}
	if c.Label != nil && *c.Label != "" {
		attrs = append(attrs, "label=" + quote(*c.Label))
	}
	return attrs
}

// quote returns s as a DOT double-quoted string. Only '"' and '\' are
// escaped; newlines become the \n line break understood in labels, and other
// control characters are dropped.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// RenderSVG renders DOT source to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
