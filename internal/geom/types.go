package geom

import "github.com/paulmach/orb"

// BBox is an axis-aligned box. Depending on the caller it holds lon/lat
// degrees or projected canvas coordinates.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }
func (b BBox) Area() float64   { return b.Width() * b.Height() }

// Center returns the midpoint of the box.
func (b BBox) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Contains reports whether (x, y) lies inside or on the edge of the box.
func (b BBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// bboxBuilder accumulates points the way the loaders grow a bbox:
// the first point seeds it, later points widen it.
type bboxBuilder struct {
	b BBox
	n int
}

func (bb *bboxBuilder) add(x, y float64) {
	if bb.n == 0 {
		bb.b = BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
	} else {
		if x < bb.b.MinX {
			bb.b.MinX = x
		}
		if y < bb.b.MinY {
			bb.b.MinY = y
		}
		if x > bb.b.MaxX {
			bb.b.MaxX = x
		}
		if y > bb.b.MaxY {
			bb.b.MaxY = y
		}
	}
	bb.n++
}

func (bb *bboxBuilder) result() (BBox, bool) {
	return bb.b, bb.n > 0
}

// Kind is the geometry kind of a Region.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPolygon
	KindMultiPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "Polygon"
	case KindMultiPolygon:
		return "MultiPolygon"
	}
	return "unsupported"
}

// Region is one quiz-selectable area. Immutable once loaded.
type Region struct {
	ID          string
	Name        string // display name, localized when possible
	EnglishName string
	ISO2        string
	Geometry    orb.Geometry // orb.Polygon or orb.MultiPolygon
}

// Kind reports which supported geometry kind the region carries.
func (r Region) Kind() Kind {
	switch r.Geometry.(type) {
	case orb.Polygon:
		return KindPolygon
	case orb.MultiPolygon:
		return KindMultiPolygon
	}
	return KindUnsupported
}

// Parts returns the constituent polygons in input order.
func (r Region) Parts() []orb.Polygon {
	switch g := r.Geometry.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return []orb.Polygon(g)
	}
	return nil
}

// Fragmented reports whether the region is a multipolygon with more than one part.
func (r Region) Fragmented() bool {
	mp, ok := r.Geometry.(orb.MultiPolygon)
	return ok && len(mp) > 1
}

func (r Region) pointCount() int {
	n := 0
	for _, poly := range r.Parts() {
		for _, ring := range poly {
			n += len(ring)
		}
	}
	return n
}
