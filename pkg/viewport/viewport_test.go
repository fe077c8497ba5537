package viewport

import (
	"math"
	"testing"

	"github.com/sgazz/acai-mindmap/pkg/mindmap"
)

const eps = 1e-9

func near(a, b mindmap.Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestNewBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		wantMin  float64
		wantMax  float64
	}{
		{"explicit", 0.5, 2, 0.5, 2},
		{"zero falls back", 0, 0, DefaultMinScale, DefaultMaxScale},
		{"inverted falls back", 3, 1, DefaultMinScale, DefaultMaxScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.min, tt.max)
			if tr.MinScale != tt.wantMin || tr.MaxScale != tt.wantMax || tr.Scale != 1 {
				t.Errorf("New(%v, %v) = %+v", tt.min, tt.max, tr)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tr := Transform{Scale: 1.7, Offset: mindmap.Pt(-40, 25), MinScale: 0.1, MaxScale: 3}
	for _, p := range []mindmap.Point{{}, mindmap.Pt(1, 1), mindmap.Pt(-300, 812.5)} {
		if got := tr.ToModel(tr.ToScreen(p)); !near(got, p) {
			t.Errorf("ToModel(ToScreen(%v)) = %v", p, got)
		}
		if got := tr.ToScreen(tr.ToModel(p)); !near(got, p) {
			t.Errorf("ToScreen(ToModel(%v)) = %v", p, got)
		}
	}
}

func TestToScreen(t *testing.T) {
	tr := Transform{Scale: 2, Offset: mindmap.Pt(10, 20), MinScale: 0.1, MaxScale: 3}
	if got := tr.ToScreen(mindmap.Pt(5, 5)); got != mindmap.Pt(20, 30) {
		t.Errorf("ToScreen = %v, want (20, 30)", got)
	}
	if got := tr.ToModel(mindmap.Pt(20, 30)); got != mindmap.Pt(5, 5) {
		t.Errorf("ToModel = %v, want (5, 5)", got)
	}
}

func TestPanIsValueSemantic(t *testing.T) {
	tr := Identity()
	panned := tr.Pan(mindmap.Pt(3, 4))
	if tr.Offset != (mindmap.Point{}) {
		t.Error("Pan mutated receiver")
	}
	if panned.Offset != mindmap.Pt(3, 4) {
		t.Errorf("Pan offset = %v", panned.Offset)
	}
}

func TestZoomKeepsOffset(t *testing.T) {
	tr := Identity().Pan(mindmap.Pt(50, 50))
	z := tr.Zoom(2)
	if z.Scale != 2 || z.Offset != tr.Offset {
		t.Errorf("Zoom(2) = %+v", z)
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	tr := Transform{Scale: 1.3, Offset: mindmap.Pt(17, -9), MinScale: 0.1, MaxScale: 3}
	anchor := mindmap.Pt(400, 300)
	before := tr.ToModel(anchor)

	for _, f := range []float64{1.1, 0.5, 2} {
		z := tr.ZoomAt(f, anchor)
		if got := z.ToModel(anchor); !near(got, before) {
			t.Errorf("ZoomAt(%v): model under anchor moved %v -> %v", f, before, got)
		}
	}
}

func TestZoomClamps(t *testing.T) {
	tr := New(0.5, 2)
	if got := tr.ZoomAt(10, mindmap.Pt(1, 1)).Scale; got != 2 {
		t.Errorf("zoom in clamp = %v, want 2", got)
	}
	if got := tr.Zoom(0.01).Scale; got != 0.5 {
		t.Errorf("zoom out clamp = %v, want 0.5", got)
	}

	atMax := Transform{Scale: 2, Offset: mindmap.Pt(7, 7), MinScale: 0.5, MaxScale: 2}
	if got := atMax.ZoomAt(1.5, mindmap.Pt(100, 100)); got != atMax {
		t.Errorf("ZoomAt beyond bound changed transform: %+v", got)
	}
}

func TestZoomRejectsBadFactor(t *testing.T) {
	tr := Identity()
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if got := tr.ZoomAt(f, mindmap.Pt(1, 1)); got != tr {
			t.Errorf("ZoomAt(%v) changed transform", f)
		}
	}
}

func TestReset(t *testing.T) {
	tr := New(0.5, 2).Pan(mindmap.Pt(5, 5)).Zoom(1.5).Reset()
	if tr.Scale != 1 || tr.Offset != (mindmap.Point{}) || tr.MinScale != 0.5 {
		t.Errorf("Reset() = %+v", tr)
	}
}

func TestVisibleRect(t *testing.T) {
	tr := Transform{Scale: 2, Offset: mindmap.Pt(-100, -50), MinScale: 0.1, MaxScale: 3}
	min, max := tr.VisibleRect(800, 600)
	if min != mindmap.Pt(50, 25) || max != mindmap.Pt(450, 325) {
		t.Errorf("VisibleRect = %v..%v", min, max)
	}
}

func TestZeroValueIsUsable(t *testing.T) {
	var tr Transform
	if got := tr.ToModel(mindmap.Pt(3, 4)); got != mindmap.Pt(3, 4) {
		t.Errorf("zero Transform ToModel = %v", got)
	}
}

func TestFit(t *testing.T) {
	tr := Identity().Fit(mindmap.Pt(-100, -50), mindmap.Pt(100, 50), 440, 240, 20)
	if tr.Scale != 2 {
		t.Fatalf("Fit scale = %v, want 2", tr.Scale)
	}
	if got := tr.ToScreen(mindmap.Pt(0, 0)); got != mindmap.Pt(220, 120) {
		t.Errorf("center maps to %v, want screen center", got)
	}
	if got := tr.ToScreen(mindmap.Pt(-100, -50)); got != mindmap.Pt(20, 20) {
		t.Errorf("corner maps to %v, want padding inset", got)
	}
}

func TestFitClamps(t *testing.T) {
	tr := New(0.5, 2).Fit(mindmap.Pt(0, 0), mindmap.Pt(1, 1), 1000, 1000, 0)
	if tr.Scale != 2 {
		t.Errorf("Fit scale = %v, want clamped 2", tr.Scale)
	}
	if got := tr.ToScreen(mindmap.Pt(0.5, 0.5)); got != mindmap.Pt(500, 500) {
		t.Errorf("center maps to %v", got)
	}
}
