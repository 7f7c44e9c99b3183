package tui

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"geoquiz/internal/geom"
	"geoquiz/internal/viewport"
)

// canvas maps the engine's logical viewport (CanvasWidth×CanvasHeight) onto
// the braille micro-grid of a w×h cell area, keeping the aspect ratio and
// centring the map.
type canvas struct {
	w, h   int // cells
	k      float64
	ox, oy float64
}

func newCanvas(w, h int) canvas {
	mw, mh := float64(w*2), float64(h*4)
	k := math.Min(mw/geom.CanvasWidth, mh/geom.CanvasHeight)
	return canvas{
		w:  w,
		h:  h,
		k:  k,
		ox: (mw - geom.CanvasWidth*k) / 2,
		oy: (mh - geom.CanvasHeight*k) / 2,
	}
}

// toMicro maps a logical viewport point to fractional micro-pixels.
func (c canvas) toMicro(lx, ly float64) (float64, float64) {
	return lx*c.k + c.ox, ly*c.k + c.oy
}

// cellToLogical maps a map-area cell to the logical point under its centre.
func (c canvas) cellToLogical(cx, cy int) (float64, float64) {
	mx := float64(cx*2) + 1
	my := float64(cy*4) + 2
	return (mx - c.ox) / c.k, (my - c.oy) / c.k
}

// microRing is a ring in micro-pixel space.
type microRing [][2]float64

func (c canvas) projectPolygon(t viewport.Transform, poly orb.Polygon) []microRing {
	rings := make([]microRing, 0, len(poly))
	for _, ring := range poly {
		if len(ring) < 3 {
			continue
		}
		mr := make(microRing, len(ring))
		for i, p := range ring {
			lx, ly := t.ToScreen(p[0], p[1])
			mx, my := c.toMicro(lx, ly)
			mr[i] = [2]float64{mx, my}
		}
		rings = append(rings, mr)
	}
	return rings
}

// fillRings paints the interior with the even-odd rule, sampling each
// micro row at its centre. Holes stay empty.
func (b *brailleBuf) fillRings(rings []microRing) {
	if len(rings) == 0 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, r := range rings {
		for _, p := range r {
			minY = math.Min(minY, p[1])
			maxY = math.Max(maxY, p[1])
		}
	}
	hm, wm := b.h*4, b.w*2
	y0 := clampInt(int(math.Floor(minY)), 0, hm-1)
	y1 := clampInt(int(math.Ceil(maxY)), 0, hm-1)
	var xs []float64
	for y := y0; y <= y1; y++ {
		ys := float64(y) + 0.5
		xs = xs[:0]
		for _, r := range rings {
			for i := range r {
				a, c := r[i], r[(i+1)%len(r)]
				if a[1] == c[1] {
					continue
				}
				if (ys >= a[1] && ys < c[1]) || (ys >= c[1] && ys < a[1]) {
					xs = append(xs, a[0]+(ys-a[1])*(c[0]-a[0])/(c[1]-a[1]))
				}
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xa := clampInt(int(math.Ceil(xs[i]-0.5)), 0, wm)
			xb := clampInt(int(math.Floor(xs[i+1]-0.5)), -1, wm-1)
			for x := xa; x <= xb; x++ {
				b.setPixel(x, y)
			}
		}
	}
}

func (b *brailleBuf) strokeRings(rings []microRing) {
	for _, r := range rings {
		for i := range r {
			a, c := r[i], r[(i+1)%len(r)]
			b.drawLineMicro(int(math.Round(a[0])), int(math.Round(a[1])), int(math.Round(c[0])), int(math.Round(c[1])))
		}
	}
}

// pathLayer decides how a path is highlighted in the current round state.
func (m Model) pathLayer(p geom.Path) layer {
	round, ok := m.ctrl.Round()
	if ok && round.Feedback != nil {
		if p.ID == round.Target.ID {
			return layerTarget
		}
		if p.ID == round.Selected {
			return layerWrong
		}
	}
	if p.ID == m.hoverID && m.hoverID != "" {
		return layerHover
	}
	return layerOutline
}

// renderMap draws every path outline, filling highlighted regions.
func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	c := newCanvas(w, h)
	t := m.engine.Transform()
	for _, p := range m.paths {
		lay := m.pathLayer(p)
		br.pen = lay
		for _, poly := range p.Shape {
			rings := c.projectPolygon(t, poly)
			if lay != layerOutline {
				br.fillRings(rings)
			}
			br.strokeRings(rings)
		}
	}
	return br.render(mapStyles)
}

// pathAt returns the topmost path under a map-area cell.
func (m Model) pathAt(cellX, cellY, w, h int) (geom.Path, bool) {
	lx, ly := newCanvas(w, h).cellToLogical(cellX, cellY)
	cx, cy := m.engine.ToContent(lx, ly)
	i := geom.HitTest(m.paths, cx, cy)
	if i < 0 {
		return geom.Path{}, false
	}
	return m.paths[i], true
}
