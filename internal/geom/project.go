package geom

// Fixed logical canvas the whole map is projected onto.
const (
	CanvasWidth  = 800.0
	CanvasHeight = 400.0
)

// Project maps lon/lat onto the logical canvas with a plain equirectangular
// formula. Rings crossing the antimeridian are not split.
func Project(lon, lat float64) (x, y float64) {
	x = (lon + 180) * (CanvasWidth / 360)
	y = (90 - lat) * (CanvasHeight / 180)
	return x, y
}

// Unproject is the inverse of Project.
func Unproject(x, y float64) (lon, lat float64) {
	lon = x/(CanvasWidth/360) - 180
	lat = 90 - y/(CanvasHeight/180)
	return lon, lat
}

// BoundsOf projects every ring point of r and returns the canvas bounds.
// ok is false when the region has no points.
func BoundsOf(r Region) (BBox, bool) {
	var bb bboxBuilder
	for _, poly := range r.Parts() {
		for _, ring := range poly {
			for _, p := range ring {
				bb.add(Project(p[0], p[1]))
			}
		}
	}
	return bb.result()
}

// GeoBounds returns the lon/lat bounds of r without projecting.
func GeoBounds(r Region) (BBox, bool) {
	var bb bboxBuilder
	for _, poly := range r.Parts() {
		for _, ring := range poly {
			for _, p := range ring {
				bb.add(p[0], p[1])
			}
		}
	}
	return bb.result()
}
