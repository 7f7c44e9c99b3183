package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// layer tags a cell with what was drawn into it; the highest layer wins the
// cell's colour.
type layer uint8

const (
	layerNone layer = iota
	layerOutline
	layerHover
	layerWrong
	layerTarget
)

// brailleBuf is a w×h cell grid with 2×4 micro-pixels per cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	cls  [][]layer
	pen  layer
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	cls := make([][]layer, h)
	for i := range m {
		m[i] = make([]uint8, w)
		cls[i] = make([]layer, w)
	}
	return &brailleBuf{w: w, h: h, m: m, cls: cls, pen: layerOutline}
}

// dot bits indexed by [column][row] inside a cell
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[mx%2][my%4]
	if b.pen > b.cls[cy][cx] {
		b.cls[cy][cx] = b.pen
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham. The segment
// is clipped to the grid first so only visible pixels are walked.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	wm, hm := b.w*2, b.h*4
	fx0, fy0, fx1, fy1, ok := clipSegment(float64(x0), float64(y0), float64(x1), float64(y1), float64(wm-1), float64(hm-1))
	if !ok {
		return
	}
	x0, y0 = int(math.Round(fx0)), int(math.Round(fy0))
	x1, y1 = int(math.Round(fx1)), int(math.Round(fy1))
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment clips a segment to [0,xmax]×[0,ymax] (Liang-Barsky).
// ok is false when nothing of it is inside.
func clipSegment(x0, y0, x1, y1, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	if xmax < 0 || ymax < 0 {
		return 0, 0, 0, 0, false
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, xmax - x0},
		{-dy, y0},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// toLines returns the raw braille rows without colour.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			row[x] = cellRune(b.m[y][x])
		}
		out[y] = string(row)
	}
	return out
}

func cellRune(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}

// render colours runs of equal layer with styles; layers without a style
// are emitted plain.
func (b *brailleBuf) render(styles map[layer]lipgloss.Style) string {
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < b.w {
			cur := b.cls[y][x]
			run := make([]rune, 0, b.w-x)
			for x < b.w && b.cls[y][x] == cur {
				run = append(run, cellRune(b.m[y][x]))
				x++
			}
			if st, ok := styles[cur]; ok && cur != layerNone {
				sb.WriteString(st.Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
		}
	}
	return sb.String()
}
