package mindmap

import "math"

// Point is a 2D coordinate. The same type is used for model space and screen
// space; the viewport package converts between them.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p*k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Len returns the Euclidean length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// Finite reports whether both coordinates are neither NaN nor infinite.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Bounds returns the smallest rectangle containing every node circle.
// ok is false for an empty slice.
func Bounds(nodes []Node) (min, max Point, ok bool) {
	if len(nodes) == 0 {
		return Point{}, Point{}, false
	}
	min = Pt(math.Inf(1), math.Inf(1))
	max = Pt(math.Inf(-1), math.Inf(-1))
	for _, n := range nodes {
		r := n.Radius()
		min.X = math.Min(min.X, n.Position.X-r)
		min.Y = math.Min(min.Y, n.Position.Y-r)
		max.X = math.Max(max.X, n.Position.X+r)
		max.Y = math.Max(max.Y, n.Position.Y+r)
	}
	return min, max, true
}
