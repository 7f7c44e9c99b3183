// Package viewport owns the map's pan/zoom state and turns pointer, wheel and
// fit requests into transform updates. It is not safe for concurrent use;
// callers drive it from a single event loop.
package viewport

import (
	"math"
	"slices"

	"geoquiz/internal/geom"
)

// DragThreshold is the distance, in logical pixels, a single-pointer drag
// must travel before the following click is swallowed.
const DragThreshold = 6.0

// Wheel sensitivities per input class. Coarse devices report fewer, larger
// steps so they get a stronger response.
const (
	FineWheelSensitivity   = 0.0015
	CoarseWheelSensitivity = 0.004
)

// InputClass distinguishes precise pointers (mouse) from coarse ones (touch).
type InputClass int

const (
	InputFine InputClass = iota
	InputCoarse
)

// ParseInputClass maps "coarse"/"touch" to InputCoarse and anything else to InputFine.
func ParseInputClass(s string) InputClass {
	switch s {
	case "coarse", "touch":
		return InputCoarse
	}
	return InputFine
}

func (c InputClass) sensitivity() float64 {
	if c == InputCoarse {
		return CoarseWheelSensitivity
	}
	return FineWheelSensitivity
}

// Mode is the gesture state derived from the number of active pointers.
type Mode int

const (
	Idle Mode = iota
	Panning
	Pinching
)

func (m Mode) String() string {
	switch m {
	case Panning:
		return "panning"
	case Pinching:
		return "pinching"
	}
	return "idle"
}

// Point is a viewport-local position.
type Point struct {
	X, Y float64
}

// Engine is the viewport state machine.
type Engine struct {
	t      Transform
	width  float64
	height float64

	pointers map[int]Point
	// order holds held pointer ids by press time; the first two form the pinch pair.
	order []int

	dragStart     Point
	moved         bool
	lastCentroid  Point
	pinchDistance float64
	suppressClick bool
}

// New returns an engine at the identity transform for a viewport of the
// given logical size.
func New(width, height float64) *Engine {
	return &Engine{
		t:        Identity(),
		width:    width,
		height:   height,
		pointers: make(map[int]Point),
	}
}

// Transform returns the current transform.
func (e *Engine) Transform() Transform { return e.t }

// Mode reports the current gesture state.
func (e *Engine) Mode() Mode {
	switch n := len(e.pointers); {
	case n == 0:
		return Idle
	case n == 1:
		return Panning
	}
	return Pinching
}

// ActivePointers is the number of pointers currently held down.
func (e *Engine) ActivePointers() int { return len(e.pointers) }

// Moved reports whether the current (or last) gesture passed the drag threshold.
func (e *Engine) Moved() bool { return e.moved }

// PointerDown records a new pointer.
func (e *Engine) PointerDown(id int, x, y float64) {
	p := Point{x, y}
	if _, held := e.pointers[id]; !held {
		e.order = append(e.order, id)
	}
	e.pointers[id] = p
	if len(e.pointers) == 1 {
		e.dragStart = p
		e.moved = false
		e.suppressClick = false
	}
	e.rebase()
}

// PointerMove updates a held pointer and applies pan or pinch.
// Moves for unknown pointers are ignored.
func (e *Engine) PointerMove(id int, x, y float64) {
	if _, ok := e.pointers[id]; !ok {
		return
	}
	e.pointers[id] = Point{x, y}
	switch len(e.pointers) {
	case 1:
		c := Point{x, y}
		e.t.X += c.X - e.lastCentroid.X
		e.t.Y += c.Y - e.lastCentroid.Y
		e.lastCentroid = c
		if math.Hypot(c.X-e.dragStart.X, c.Y-e.dragStart.Y) > DragThreshold {
			e.moved = true
		}
	default:
		e.moved = true
		c := e.centroid()
		d := e.pairDistance()
		if e.pinchDistance > 0 {
			e.t = e.t.ZoomAt(d/e.pinchDistance, c.X, c.Y)
		}
		e.pinchDistance = d
		e.lastCentroid = c
	}
}

// PointerUp releases a pointer. A release ending a moved gesture arms
// click suppression for the next click.
func (e *Engine) PointerUp(id int) {
	if _, ok := e.pointers[id]; !ok {
		return
	}
	e.release(id)
	if e.moved {
		e.suppressClick = true
	}
	e.rebase()
}

// PointerCancel drops a pointer without arming click suppression.
func (e *Engine) PointerCancel(id int) {
	if _, ok := e.pointers[id]; !ok {
		return
	}
	e.release(id)
	e.rebase()
}

func (e *Engine) release(id int) {
	delete(e.pointers, id)
	if i := slices.Index(e.order, id); i >= 0 {
		e.order = slices.Delete(e.order, i, i+1)
	}
}

// rebase recomputes gesture anchors for the pointers still held so the next
// move does not jump.
func (e *Engine) rebase() {
	switch len(e.pointers) {
	case 0:
		e.pinchDistance = 0
	case 1:
		e.pinchDistance = 0
		e.lastCentroid = e.centroid()
	default:
		e.pinchDistance = e.pairDistance()
		e.lastCentroid = e.centroid()
	}
}

// ConsumeClick decides whether a click may select a region. It returns false
// while two or more pointers are down, and false exactly once after a moved
// drag was released.
func (e *Engine) ConsumeClick() bool {
	if len(e.pointers) > 1 {
		return false
	}
	if e.suppressClick {
		e.suppressClick = false
		return false
	}
	return true
}

// Wheel zooms about (x, y) with an exponential response to deltaY.
// Positive deltaY zooms out.
func (e *Engine) Wheel(deltaY, x, y float64, class InputClass) {
	e.t = e.t.ZoomAt(math.Exp(-deltaY*class.sensitivity()), x, y)
}

// ZoomAt zooms by factor about (x, y).
func (e *Engine) ZoomAt(factor, x, y float64) {
	e.t = e.t.ZoomAt(factor, x, y)
}

// ZoomCenter zooms by factor about the viewport centre.
func (e *Engine) ZoomCenter(factor float64) {
	e.ZoomAt(factor, e.width/2, e.height/2)
}

// Pan translates by (dx, dy) viewport pixels.
func (e *Engine) Pan(dx, dy float64) {
	e.t.X += dx
	e.t.Y += dy
}

// Reset returns to the identity transform.
func (e *Engine) Reset() {
	e.t = Identity()
}

// Fit replaces the transform with one framing b (content coordinates).
func (e *Engine) Fit(b geom.BBox) {
	e.t = FitTransform(b, e.width, e.height)
}

// ToContent maps a viewport point into content space.
func (e *Engine) ToContent(x, y float64) (float64, float64) {
	return e.t.ToContent(x, y)
}

// ToScreen maps a content point into viewport space.
func (e *Engine) ToScreen(x, y float64) (float64, float64) {
	return e.t.ToScreen(x, y)
}

func (e *Engine) centroid() Point {
	if len(e.pointers) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range e.pointers {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(e.pointers))
	return Point{sx / n, sy / n}
}

// pairDistance is the distance between the two earliest held pointers.
// Extra fingers move the centroid but never change the pair.
func (e *Engine) pairDistance() float64 {
	if len(e.order) < 2 {
		return 0
	}
	a, b := e.pointers[e.order[0]], e.pointers[e.order[1]]
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
