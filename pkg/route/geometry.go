package route

import (
	"math"
	"strconv"
	"strings"

	"github.com/sgazz/acai-mindmap/pkg/mindmap"
)

// Route is the computed geometry of one connection.
type Route struct {
	ConnectionID string

	Start, C1, C2, End mindmap.Point
	Arrow              Arrow

	Degenerate bool // zero length; nothing to draw
	Loop       bool // self connection

	Dash        string
	Color       string
	Label       string
	StrokeWidth float64
	HitWidth    float64

	samples int
}

// Arrow is a triangular arrowhead.
type Arrow struct {
	Tip, Left, Right mindmap.Point
}

// Path returns the arrowhead as a closed SVG path.
func (a Arrow) Path() string {
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, a.Left)
	b.WriteString(" L ")
	writePoint(&b, a.Tip)
	b.WriteString(" L ")
	writePoint(&b, a.Right)
	b.WriteString(" Z")
	return b.String()
}

// Path returns the curve as an SVG path "d" attribute.
func (r Route) Path() string {
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, r.Start)
	b.WriteString(" C ")
	writePoint(&b, r.C1)
	b.WriteString(", ")
	writePoint(&b, r.C2)
	b.WriteString(", ")
	writePoint(&b, r.End)
	return b.String()
}

// PointAt evaluates the curve at t in [0, 1].
func (r Route) PointAt(t float64) mindmap.Point {
	u := 1 - t
	return r.Start.Scale(u * u * u).
		Add(r.C1.Scale(3 * u * u * t)).
		Add(r.C2.Scale(3 * u * t * t)).
		Add(r.End.Scale(t * t * t))
}

// TangentAt returns the curve's derivative at t. When the derivative
// vanishes (control point on an endpoint) the chord direction is returned.
func (r Route) TangentAt(t float64) mindmap.Point {
	u := 1 - t
	d := r.C1.Sub(r.Start).Scale(3 * u * u).
		Add(r.C2.Sub(r.C1).Scale(6 * u * t)).
		Add(r.End.Sub(r.C2).Scale(3 * t * t))
	if d.Len() < 1e-9 {
		return r.End.Sub(r.Start)
	}
	return d
}

// Midpoint returns the point halfway along the curve parameter, used to
// anchor labels.
func (r Route) Midpoint() mindmap.Point { return r.PointAt(0.5) }

// Sample returns n+1 evenly spaced points from Start to End.
func (r Route) Sample(n int) []mindmap.Point {
	if n < 1 {
		n = 1
	}
	pts := make([]mindmap.Point, n+1)
	for i := range pts {
		pts[i] = r.PointAt(float64(i) / float64(n))
	}
	return pts
}

// Hit reports whether p lies within HitWidth/2 of the curve.
func (r Route) Hit(p mindmap.Point) bool {
	if r.Degenerate {
		return false
	}
	tol := r.HitWidth / 2
	n := r.samples
	if n <= 0 {
		n = DefaultSamples
	}
	pts := r.Sample(n)
	for i := 1; i < len(pts); i++ {
		if segmentDist(p, pts[i-1], pts[i]) <= tol {
			return true
		}
	}
	return false
}

func segmentDist(p, a, b mindmap.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}

func writePoint(b *strings.Builder, p mindmap.Point) {
	b.WriteString(num(p.X))
	b.WriteByte(' ')
	b.WriteString(num(p.Y))
}

// num formats v with at most two decimals.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
