// Package viewport maps between model space, where nodes live, and screen
// space, where pointer events arrive and pixels are drawn.
//
// A [Transform] is a uniform scale followed by a translation:
//
//	screen = model*Scale + Offset
//	model  = (screen - Offset) / Scale
//
// Transforms are values. Every operation returns a new Transform and leaves
// the receiver unchanged, which makes them safe to share between a renderer
// and an event handler.
//
// # Zoom anchoring
//
// [Transform.Zoom] changes only the scale, so the model origin keeps its
// screen position and everything else drifts toward or away from it.
// [Transform.ZoomAt] keeps the model point under a given screen position
// fixed, which is what users expect from a scroll wheel. Interactive hosts
// should use ZoomAt.
package viewport

import (
	"math"

	"github.com/sgazz/acai-mindmap/pkg/mindmap"
)

// Default scale bounds.
const (
	DefaultMinScale = 0.1
	DefaultMaxScale = 3.0
)

// Transform is a pan/zoom mapping between model and screen coordinates.
type Transform struct {
	Scale    float64
	Offset   mindmap.Point
	MinScale float64
	MaxScale float64
}

// New returns the identity transform with the given scale bounds.
// Non-positive or inverted bounds fall back to the defaults.
func New(minScale, maxScale float64) Transform {
	if minScale <= 0 || maxScale <= 0 || minScale > maxScale {
		minScale, maxScale = DefaultMinScale, DefaultMaxScale
	}
	return Transform{Scale: 1, MinScale: minScale, MaxScale: maxScale}
}

// Identity returns the identity transform with default bounds.
func Identity() Transform { return New(DefaultMinScale, DefaultMaxScale) }

// ToScreen maps a model point to screen coordinates.
func (t Transform) ToScreen(p mindmap.Point) mindmap.Point {
	return p.Scale(t.scale()).Add(t.Offset)
}

// ToModel maps a screen point to model coordinates.
func (t Transform) ToModel(p mindmap.Point) mindmap.Point {
	return p.Sub(t.Offset).Scale(1 / t.scale())
}

// Pan shifts the view by delta screen units.
func (t Transform) Pan(delta mindmap.Point) Transform {
	t.Offset = t.Offset.Add(delta)
	return t
}

// Zoom multiplies the scale by factor, leaving Offset unchanged.
// The result is clamped to the scale bounds.
func (t Transform) Zoom(factor float64) Transform {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return t
	}
	t.Scale = t.clamp(t.scale() * factor)
	return t
}

// ZoomAt multiplies the scale by factor while keeping the model point under
// anchor (screen coordinates) in place. The result is clamped to the scale
// bounds; if clamping leaves the scale unchanged the receiver is returned.
func (t Transform) ZoomAt(factor float64, anchor mindmap.Point) Transform {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return t
	}
	old := t.scale()
	next := t.clamp(old * factor)
	if next == old {
		return t
	}
	// Solve anchor = m*next + offset' for the model point m under anchor.
	m := t.ToModel(anchor)
	t.Scale = next
	t.Offset = anchor.Sub(m.Scale(next))
	return t
}

// Reset returns the identity transform with the same bounds.
func (t Transform) Reset() Transform {
	return Transform{Scale: 1, MinScale: t.MinScale, MaxScale: t.MaxScale}
}

// Fit returns a transform, with t's bounds, that centers the model
// rectangle [min, max] on a screen of the given size and scales it to fit
// inside padding. The scale is clamped, so very large or tiny maps may
// overflow or float in the middle.
func (t Transform) Fit(min, max mindmap.Point, width, height, padding float64) Transform {
	w := math.Max(max.X-min.X, 1)
	h := math.Max(max.Y-min.Y, 1)
	availW := math.Max(width-2*padding, 1)
	availH := math.Max(height-2*padding, 1)

	out := t.Reset()
	out.Scale = out.clamp(math.Min(availW/w, availH/h))
	center := mindmap.Pt((min.X+max.X)/2, (min.Y+max.Y)/2)
	out.Offset = mindmap.Pt(width/2, height/2).Sub(center.Scale(out.Scale))
	return out
}

// VisibleRect returns the model-space rectangle covered by a screen of the
// given size.
func (t Transform) VisibleRect(width, height float64) (min, max mindmap.Point) {
	return t.ToModel(mindmap.Point{}), t.ToModel(mindmap.Pt(width, height))
}

// scale guards against a zero-value Transform.
func (t Transform) scale() float64 {
	if t.Scale <= 0 {
		return 1
	}
	return t.Scale
}

func (t Transform) clamp(s float64) float64 {
	lo, hi := t.MinScale, t.MaxScale
	if lo <= 0 || hi <= 0 || lo > hi {
		lo, hi = DefaultMinScale, DefaultMaxScale
	}
	return math.Max(lo, math.Min(hi, s))
}
