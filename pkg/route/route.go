// Package route computes the drawable geometry of a connection.
//
// A route is a cubic Bézier curve between the borders of two node circles,
// bowed slightly to one side so that A→B and B→A do not overlap, with an
// arrowhead at the target end:
//
//	r := route.Default().Route(from, to, conn)
//	fmt.Fprintf(w, `<path d="%s" stroke-dasharray="%s"/>`, r.Path(), r.Dash)
//	fmt.Fprintf(w, `<path d="%s"/>`, r.Arrow.Path())
//
// Routing is a pure function of the two nodes and the connection, so hosts
// recompute it on every frame and for every pending drag position.
//
// # Special cases
//
// A connection from a node to itself is drawn as a loop above the node.
// Two nodes whose centers coincide produce a zero-length route with
// Degenerate set; renderers should skip it. Nodes whose circles overlap are
// joined center to center.
package route

import (
	"math"

	"github.com/sgazz/acai-mindmap/pkg/mindmap"
)

// Default routing parameters, in model units.
const (
	DefaultCurvatureFactor = 0.1
	DefaultMaxCurvature    = 30.0
	DefaultArrowSize       = 10.0
	DefaultArrowSpread     = math.Pi / 6
	DefaultStrokeWidth     = 2.0
	DefaultHitWidth        = 12.0
	DefaultSamples         = 24
)

// Dash patterns for each connection type, as SVG stroke-dasharray values.
const (
	DashSolid  = ""
	DashDashed = "8,4"
	DashDotted = "2,4"
)

// loopReach is how far a self loop's control points sit from the node
// center, in multiples of its radius.
const loopReach = 2.5

// loopSpread is the angle between a self loop's start and end points and
// the vertical.
const loopSpread = 0.5

// Router holds the routing parameters. The zero value is not useful; start
// from [Default].
type Router struct {
	CurvatureFactor float64 // bow as a fraction of center distance
	MaxCurvature    float64 // upper bound on the bow
	ArrowSize       float64
	ArrowSpread     float64 // half-angle of the arrowhead, radians
	StrokeWidth     float64 // used when a connection has no thickness
	HitWidth        float64 // width of the invisible hit-test stroke
	Samples         int     // polyline resolution for hit-testing
}

// Default returns a Router with the default parameters.
func Default() Router {
	return Router{
		CurvatureFactor: DefaultCurvatureFactor,
		MaxCurvature:    DefaultMaxCurvature,
		ArrowSize:       DefaultArrowSize,
		ArrowSpread:     DefaultArrowSpread,
		StrokeWidth:     DefaultStrokeWidth,
		HitWidth:        DefaultHitWidth,
		Samples:         DefaultSamples,
	}
}

// DashFor returns the stroke-dasharray for a connection type.
func DashFor(t mindmap.ConnectionType) string {
	switch t {
	case mindmap.ConnectionDashed:
		return DashDashed
	case mindmap.ConnectionDotted:
		return DashDotted
	default:
		return DashSolid
	}
}

// Route computes the geometry of c drawn from "from" to "to". The node ids
// are not checked against c; callers pass the nodes c references.
func (r Router) Route(from, to mindmap.Node, c mindmap.Connection) Route {
	out := Route{
		ConnectionID: c.ID,
		Dash:         DashFor(c.Type),
		Color:        c.Color,
		StrokeWidth:  r.StrokeWidth,
		HitWidth:     r.HitWidth,
		samples:      r.Samples,
	}
	if c.Thickness != nil && *c.Thickness > 0 {
		out.StrokeWidth = *c.Thickness
	}
	if c.Label != nil {
		out.Label = *c.Label
	}

	switch {
	case c.IsLoop() || from.ID == to.ID:
		out.Loop = true
		r.loop(&out, from)
	case from.Position.Dist(to.Position) < 1e-9:
		out.Degenerate = true
		p := from.Position
		out.Start, out.C1, out.C2, out.End = p, p, p, p
		out.Arrow = Arrow{Tip: p, Left: p, Right: p}
		return out
	default:
		r.curve(&out, from, to)
	}
	out.Arrow = r.arrow(out.TangentAt(1), out.End)
	return out
}

func (r Router) curve(out *Route, from, to mindmap.Node) {
	a, b := from.Position, to.Position
	d := a.Dist(b)
	dir := b.Sub(a).Scale(1 / d)

	out.Start, out.End = a, b
	if ra, rb := from.Radius(), to.Radius(); d > ra+rb {
		out.Start = a.Add(dir.Scale(ra))
		out.End = b.Sub(dir.Scale(rb))
	}

	bow := math.Min(d*r.CurvatureFactor, r.MaxCurvature)
	perp := mindmap.Pt(-dir.Y, dir.X).Scale(bow)
	chord := out.End.Sub(out.Start)
	out.C1 = out.Start.Add(chord.Scale(1.0 / 3)).Add(perp)
	out.C2 = out.Start.Add(chord.Scale(2.0 / 3)).Add(perp)
}

func (r Router) loop(out *Route, n mindmap.Node) {
	c, rad := n.Position, n.Radius()
	// Screen y grows downward, so "up" is -π/2.
	start := -math.Pi/2 - loopSpread
	end := -math.Pi/2 + loopSpread

	out.Start = c.Add(unit(start).Scale(rad))
	out.End = c.Add(unit(end).Scale(rad))
	out.C1 = c.Add(unit(start).Scale(rad * loopReach))
	out.C2 = c.Add(unit(end).Scale(rad * loopReach))
}

func (r Router) arrow(tangent, tip mindmap.Point) Arrow {
	phi := math.Atan2(tangent.Y, tangent.X)
	return Arrow{
		Tip:   tip,
		Left:  tip.Sub(unit(phi - r.ArrowSpread).Scale(r.ArrowSize)),
		Right: tip.Sub(unit(phi + r.ArrowSpread).Scale(r.ArrowSize)),
	}
}

// RouteAll routes every connection whose endpoints are present in nodes,
// preserving connection order.
func (r Router) RouteAll(nodes []mindmap.Node, conns []mindmap.Connection) []Route {
	byID := make(map[string]mindmap.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	routes := make([]Route, 0, len(conns))
	for _, c := range conns {
		from, ok1 := byID[c.From]
		to, ok2 := byID[c.To]
		if !ok1 || !ok2 {
			continue
		}
		routes = append(routes, r.Route(from, to, c))
	}
	return routes
}

// HitTest returns the id of the topmost route that p lies on. Later routes
// are drawn over earlier ones and win ties.
func (r Router) HitTest(routes []Route, p mindmap.Point) (string, bool) {
	for i := len(routes) - 1; i >= 0; i-- {
		if routes[i].Hit(p) {
			return routes[i].ConnectionID, true
		}
	}
	return "", false
}

func unit(angle float64) mindmap.Point {
	return mindmap.Pt(math.Cos(angle), math.Sin(angle))
}
