package route

import (
	"math"
	"strings"
	"testing"

	"github.com/sgazz/acai-mindmap/pkg/mindmap"
)

const eps = 1e-6

func nodeAt(id string, x, y float64, size mindmap.Size) mindmap.Node {
	return mindmap.Node{ID: id, Position: mindmap.Pt(x, y), Size: size}
}

func solid(from, to string) mindmap.Connection {
	return mindmap.Connection{ID: from + to, From: from, To: to, Type: mindmap.ConnectionSolid}
}

func TestEndpointsOnCircleBorders(t *testing.T) {
	a := nodeAt("a", 0, 0, mindmap.SizeSmall)
	b := nodeAt("b", 200, 0, mindmap.SizeLarge)
	r := Default().Route(a, b, solid("a", "b"))

	if math.Abs(r.Start.Dist(a.Position)-mindmap.RadiusSmall) > eps {
		t.Errorf("start %v is not on a's border", r.Start)
	}
	if math.Abs(r.End.Dist(b.Position)-mindmap.RadiusLarge) > eps {
		t.Errorf("end %v is not on b's border", r.End)
	}
	if r.Start != mindmap.Pt(30, 0) || r.End != mindmap.Pt(150, 0) {
		t.Errorf("endpoints = %v, %v", r.Start, r.End)
	}
}

func TestCurvature(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		wantBow  float64
	}{
		{"proportional", 200, 20},
		{"capped", 1000, DefaultMaxCurvature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := nodeAt("a", 0, 0, mindmap.SizeMedium)
			b := nodeAt("b", tt.distance, 0, mindmap.SizeMedium)
			r := Default().Route(a, b, solid("a", "b"))

			// Horizontal chord: the bow is purely vertical.
			if math.Abs(r.C1.Y-tt.wantBow) > eps || math.Abs(r.C2.Y-tt.wantBow) > eps {
				t.Errorf("control points %v %v, want bow %v", r.C1, r.C2, tt.wantBow)
			}
			chord := r.End.X - r.Start.X
			if math.Abs(r.C1.X-(r.Start.X+chord/3)) > eps || math.Abs(r.C2.X-(r.Start.X+2*chord/3)) > eps {
				t.Errorf("control points not at thirds: %v %v", r.C1, r.C2)
			}
		})
	}
}

func TestOppositeDirectionsDoNotOverlap(t *testing.T) {
	a := nodeAt("a", 0, 0, mindmap.SizeMedium)
	b := nodeAt("b", 300, 0, mindmap.SizeMedium)
	ab := Default().Route(a, b, solid("a", "b"))
	ba := Default().Route(b, a, solid("b", "a"))
	if ab.Midpoint().Dist(ba.Midpoint()) < 1 {
		t.Errorf("A→B and B→A share a midpoint %v", ab.Midpoint())
	}
}

func TestPointAtEndpoints(t *testing.T) {
	r := Default().Route(nodeAt("a", 0, 0, mindmap.SizeMedium), nodeAt("b", 100, 80, mindmap.SizeMedium), solid("a", "b"))
	if r.PointAt(0) != r.Start {
		t.Errorf("PointAt(0) = %v, want %v", r.PointAt(0), r.Start)
	}
	if r.PointAt(1).Dist(r.End) > eps {
		t.Errorf("PointAt(1) = %v, want %v", r.PointAt(1), r.End)
	}
	if pts := r.Sample(10); len(pts) != 11 {
		t.Errorf("Sample(10) returned %d points", len(pts))
	}
}

func TestArrowhead(t *testing.T) {
	r := Default().Route(nodeAt("a", 0, 0, mindmap.SizeMedium), nodeAt("b", 400, 0, mindmap.SizeMedium), solid("a", "b"))
	a := r.Arrow
	if a.Tip != r.End {
		t.Errorf("tip %v, want route end %v", a.Tip, r.End)
	}
	for _, p := range []mindmap.Point{a.Left, a.Right} {
		if math.Abs(p.Dist(a.Tip)-DefaultArrowSize) > eps {
			t.Errorf("wing %v is not ArrowSize from tip", p)
		}
		if p.X >= a.Tip.X {
			t.Errorf("wing %v is not behind the tip", p)
		}
	}
	if !strings.HasSuffix(a.Path(), " Z") {
		t.Errorf("Arrow.Path() = %q, want closed path", a.Path())
	}
}

func TestDashAndStroke(t *testing.T) {
	a, b := nodeAt("a", 0, 0, mindmap.SizeMedium), nodeAt("b", 200, 0, mindmap.SizeMedium)
	thick := 5.0
	label := "depends on"

	tests := []struct {
		conn      mindmap.Connection
		dash      string
		stroke    float64
		wantLabel string
	}{
		{mindmap.Connection{Type: mindmap.ConnectionSolid}, DashSolid, DefaultStrokeWidth, ""},
		{mindmap.Connection{Type: mindmap.ConnectionDashed}, DashDashed, DefaultStrokeWidth, ""},
		{mindmap.Connection{Type: mindmap.ConnectionDotted, Thickness: &thick, Label: &label}, DashDotted, 5, label},
	}
	for _, tt := range tests {
		tt.conn.From, tt.conn.To = "a", "b"
		r := Default().Route(a, b, tt.conn)
		if r.Dash != tt.dash || r.StrokeWidth != tt.stroke || r.Label != tt.wantLabel {
			t.Errorf("%s: dash=%q stroke=%v label=%q", tt.conn.Type, r.Dash, r.StrokeWidth, r.Label)
		}
	}
}

func TestSelfLoop(t *testing.T) {
	n := nodeAt("a", 100, 100, mindmap.SizeMedium)
	r := Default().Route(n, n, solid("a", "a"))
	if !r.Loop || r.Degenerate {
		t.Fatalf("Loop=%v Degenerate=%v", r.Loop, r.Degenerate)
	}
	if top := r.Midpoint(); top.Y >= n.Position.Y-mindmap.RadiusMedium {
		t.Errorf("loop midpoint %v is not above the node", top)
	}
}

func TestCoincidentCentersAreDegenerate(t *testing.T) {
	a, b := nodeAt("a", 50, 50, mindmap.SizeMedium), nodeAt("b", 50, 50, mindmap.SizeSmall)
	r := Default().Route(a, b, solid("a", "b"))
	if !r.Degenerate {
		t.Error("coincident centers should be degenerate")
	}
	for _, v := range []float64{r.Start.X, r.End.Y, r.Arrow.Left.X} {
		if math.IsNaN(v) {
			t.Fatal("degenerate route produced NaN")
		}
	}
	if r.Hit(mindmap.Pt(50, 50)) {
		t.Error("degenerate route should not be hittable")
	}
}

func TestOverlappingNodesJoinCenters(t *testing.T) {
	a, b := nodeAt("a", 0, 0, mindmap.SizeLarge), nodeAt("b", 40, 0, mindmap.SizeLarge)
	r := Default().Route(a, b, solid("a", "b"))
	if r.Start != a.Position || r.End != b.Position {
		t.Errorf("overlapping endpoints = %v, %v", r.Start, r.End)
	}
}

func TestHit(t *testing.T) {
	a, b := nodeAt("a", 0, 0, mindmap.SizeMedium), nodeAt("b", 400, 0, mindmap.SizeMedium)
	r := Default().Route(a, b, solid("a", "b"))

	mid := r.Midpoint()
	if !r.Hit(mid) {
		t.Error("midpoint should hit")
	}
	if !r.Hit(mid.Add(mindmap.Pt(0, DefaultHitWidth/2-1))) {
		t.Error("point within half hit width should hit")
	}
	if r.Hit(mid.Add(mindmap.Pt(0, DefaultHitWidth))) {
		t.Error("point beyond hit width should miss")
	}
}

func TestHitTestPrefersTopmost(t *testing.T) {
	a, b := nodeAt("a", 0, 0, mindmap.SizeMedium), nodeAt("b", 400, 0, mindmap.SizeMedium)
	router := Default()
	first := router.Route(a, b, mindmap.Connection{ID: "first", From: "a", To: "b"})
	second := router.Route(a, b, mindmap.Connection{ID: "second", From: "a", To: "b"})

	id, ok := router.HitTest([]Route{first, second}, first.Midpoint())
	if !ok || id != "second" {
		t.Errorf("HitTest = %q, %v; want second", id, ok)
	}
	if _, ok := router.HitTest([]Route{first}, mindmap.Pt(200, 300)); ok {
		t.Error("HitTest far away should miss")
	}
}

func TestRouteAllSkipsDangling(t *testing.T) {
	nodes := []mindmap.Node{nodeAt("a", 0, 0, mindmap.SizeMedium), nodeAt("b", 200, 0, mindmap.SizeMedium)}
	conns := []mindmap.Connection{solid("a", "b"), solid("a", "x"), solid("b", "a")}
	routes := Default().RouteAll(nodes, conns)
	if len(routes) != 2 || routes[0].ConnectionID != "ab" || routes[1].ConnectionID != "ba" {
		t.Errorf("RouteAll = %d routes", len(routes))
	}
}

func TestPathFormat(t *testing.T) {
	r := Route{Start: mindmap.Pt(0, 0), C1: mindmap.Pt(1.234, -0.0001), C2: mindmap.Pt(2, 2), End: mindmap.Pt(3, 3)}
	if got, want := r.Path(), "M 0 0 C 1.23 0, 2 2, 3 3"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
