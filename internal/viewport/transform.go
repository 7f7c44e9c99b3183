package viewport

import (
	"math"

	"geoquiz/internal/geom"
)

// Scale limits. The map never zooms out past the whole canvas.
const (
	MinScale = 1.0
	MaxScale = 8.0
)

// FitPadding is the margin, in logical pixels, kept around a fitted region.
const FitPadding = 24.0

// Transform maps content space to viewport space:
// screen = content*Scale + (X, Y).
type Transform struct {
	X     float64
	Y     float64
	Scale float64
}

// Identity is the reset transform.
func Identity() Transform { return Transform{Scale: MinScale} }

// ToScreen maps a content point into viewport coordinates.
func (t Transform) ToScreen(cx, cy float64) (float64, float64) {
	return cx*t.Scale + t.X, cy*t.Scale + t.Y
}

// ToContent maps a viewport point back into content space.
func (t Transform) ToContent(sx, sy float64) (float64, float64) {
	return (sx - t.X) / t.Scale, (sy - t.Y) / t.Scale
}

// ZoomAt rescales by factor keeping the content point under (ax, ay) fixed.
// The resulting scale is clamped to [MinScale, MaxScale]; negative or NaN
// factors leave the transform unchanged.
func (t Transform) ZoomAt(factor, ax, ay float64) Transform {
	if factor < 0 || math.IsNaN(factor) {
		return t
	}
	next := clampScale(t.Scale * factor)
	ratio := next / t.Scale
	return Transform{
		X:     ax - (ax-t.X)*ratio,
		Y:     ay - (ay-t.Y)*ratio,
		Scale: next,
	}
}

// FitTransform frames b (content coordinates) in a viewport of the given
// size with FitPadding on every side. Scale is the smaller per-axis fit,
// clamped.
func FitTransform(b geom.BBox, width, height float64) Transform {
	scaleX := (width - 2*FitPadding) / b.Width()
	scaleY := (height - 2*FitPadding) / b.Height()
	scale := clampScale(math.Min(scaleX, scaleY))
	cx, cy := b.Center()
	return Transform{
		X:     width/2 - cx*scale,
		Y:     height/2 - cy*scale,
		Scale: scale,
	}
}

func clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return MinScale
	}
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
