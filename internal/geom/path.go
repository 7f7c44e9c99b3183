package geom

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Path is the drawable form of a Region: its outline projected onto the
// canvas. Regenerated whenever the region collection changes.
type Path struct {
	ID   string
	Name string
	// D is the outline descriptor: one "M … L … Z" sub-path per ring.
	D string
	// Shape is the projected outline, used for rasterizing and hit testing.
	Shape  orb.MultiPolygon
	Bounds BBox
}

// BuildPaths projects every region into a Path. Regions with an empty
// outline are skipped. Order follows input order and duplicate IDs are kept.
func BuildPaths(regions []Region) []Path {
	out := make([]Path, 0, len(regions))
	for _, r := range regions {
		p, ok := BuildPath(r)
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

// BuildPath projects a single region. ok is false for a degenerate outline.
func BuildPath(r Region) (Path, bool) {
	var (
		sb    strings.Builder
		shape orb.MultiPolygon
		bb    bboxBuilder
	)
	for _, poly := range r.Parts() {
		var projected orb.Polygon
		for _, ring := range poly {
			if len(ring) == 0 {
				continue
			}
			pr := make(orb.Ring, 0, len(ring))
			for i, p := range ring {
				x, y := Project(p[0], p[1])
				if i == 0 {
					sb.WriteByte('M')
				} else {
					sb.WriteByte('L')
				}
				writePoint(&sb, x, y)
				pr = append(pr, orb.Point{x, y})
				bb.add(x, y)
			}
			sb.WriteByte('Z')
			projected = append(projected, pr)
		}
		if len(projected) > 0 {
			shape = append(shape, projected)
		}
	}
	bounds, ok := bb.result()
	if !ok || sb.Len() == 0 {
		return Path{}, false
	}
	return Path{ID: r.ID, Name: r.Name, D: sb.String(), Shape: shape, Bounds: bounds}, true
}

func writePoint(sb *strings.Builder, x, y float64) {
	sb.WriteString(strconv.FormatFloat(x, 'f', 2, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(y, 'f', 2, 64))
}

// Contains reports whether the canvas point lies inside the outline.
func (p Path) Contains(x, y float64) bool {
	if !p.Bounds.Contains(x, y) {
		return false
	}
	return planar.MultiPolygonContains(p.Shape, orb.Point{x, y})
}

// HitTest returns the index of the topmost path containing the canvas point,
// or -1. Later paths are drawn above earlier ones, so the search runs
// backwards and the last duplicate ID wins.
func HitTest(paths []Path, x, y float64) int {
	for i := len(paths) - 1; i >= 0; i-- {
		if paths[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// Index maps region IDs to path positions; the last duplicate wins.
func Index(paths []Path) map[string]int {
	idx := make(map[string]int, len(paths))
	for i, p := range paths {
		idx[p.ID] = i
	}
	return idx
}
