package viewport

import (
	"math"
	"testing"

	. "gopkg.in/check.v1"

	"geoquiz/internal/geom"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type EngineSuite struct {
	e *Engine
}

var _ = Suite(&EngineSuite{})

func (s *EngineSuite) SetUpTest(c *C) {
	s.e = New(geom.CanvasWidth, geom.CanvasHeight)
}

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func (s *EngineSuite) TestStartsIdleAtIdentity(c *C) {
	c.Assert(s.e.Mode(), Equals, Idle)
	c.Assert(s.e.Transform(), Equals, Transform{Scale: MinScale})
	c.Assert(s.e.ConsumeClick(), Equals, true)
}

func (s *EngineSuite) TestSinglePointerPans(c *C) {
	s.e.PointerDown(1, 100, 100)
	c.Assert(s.e.Mode(), Equals, Panning)
	s.e.PointerMove(1, 130, 90)
	s.e.PointerMove(1, 150, 80)
	t := s.e.Transform()
	c.Assert(t.X, Equals, 50.0)
	c.Assert(t.Y, Equals, -20.0)
	c.Assert(t.Scale, Equals, MinScale)
	c.Assert(s.e.Moved(), Equals, true)
}

func (s *EngineSuite) TestSmallDragKeepsClick(c *C) {
	s.e.PointerDown(1, 100, 100)
	s.e.PointerMove(1, 103, 104) // distance 5
	s.e.PointerUp(1)
	c.Assert(s.e.Moved(), Equals, false)
	c.Assert(s.e.ConsumeClick(), Equals, true)
}

func (s *EngineSuite) TestLongDragSuppressesExactlyOneClick(c *C) {
	s.e.PointerDown(1, 100, 100)
	s.e.PointerMove(1, 110, 100)
	s.e.PointerUp(1)
	c.Assert(s.e.ConsumeClick(), Equals, false)
	c.Assert(s.e.ConsumeClick(), Equals, true)
}

func (s *EngineSuite) TestDragBackToStartStillSuppresses(c *C) {
	s.e.PointerDown(1, 100, 100)
	s.e.PointerMove(1, 120, 100)
	s.e.PointerMove(1, 100, 100)
	s.e.PointerUp(1)
	c.Assert(s.e.ConsumeClick(), Equals, false)
}

func (s *EngineSuite) TestNewGestureClearsStaleSuppression(c *C) {
	s.e.PointerDown(1, 100, 100)
	s.e.PointerMove(1, 150, 100)
	s.e.PointerUp(1)
	s.e.PointerDown(1, 10, 10)
	s.e.PointerUp(1)
	c.Assert(s.e.ConsumeClick(), Equals, true)
}

func (s *EngineSuite) TestPinchZoomsAboutCentroid(c *C) {
	s.e.PointerDown(1, 300, 200)
	s.e.PointerDown(2, 500, 200)
	c.Assert(s.e.Mode(), Equals, Pinching)

	// moving pointer 2 puts the new centroid at (450, 200)
	beforeX, beforeY := s.e.ToContent(450, 200)
	s.e.PointerMove(2, 600, 200)
	afterX, afterY := s.e.ToContent(450, 200)

	c.Assert(s.e.Transform().Scale > MinScale, Equals, true)
	c.Assert(near(beforeX, afterX), Equals, true, Commentf("x %v vs %v", beforeX, afterX))
	c.Assert(near(beforeY, afterY), Equals, true, Commentf("y %v vs %v", beforeY, afterY))
	c.Assert(s.e.Moved(), Equals, true)
}

func (s *EngineSuite) TestPinchDoublesScale(c *C) {
	s.e.PointerDown(1, 350, 200)
	s.e.PointerDown(2, 450, 200)
	s.e.PointerMove(2, 550, 200) // distance 100 -> 200
	c.Assert(near(s.e.Transform().Scale, 2), Equals, true, Commentf("scale %v", s.e.Transform().Scale))
}

func (s *EngineSuite) TestPinchScaleClamped(c *C) {
	s.e.PointerDown(1, 399, 200)
	s.e.PointerDown(2, 401, 200)
	s.e.PointerMove(2, 5000, 200)
	c.Assert(s.e.Transform().Scale, Equals, MaxScale)
	s.e.PointerMove(2, 399.0001, 200)
	c.Assert(s.e.Transform().Scale, Equals, MinScale)
}

func (s *EngineSuite) TestThirdPointerKeepsPinchPair(c *C) {
	s.e.ZoomCenter(4)
	s.e.PointerDown(5, 300, 200)
	s.e.PointerDown(6, 400, 200)
	// a lower id joining mid-gesture must not become part of the pair
	s.e.PointerDown(1, 310, 200)
	c.Assert(s.e.Mode(), Equals, Pinching)

	// centroid after the move: (300+401+310)/3
	ax := 1011.0 / 3
	bx, by := s.e.ToContent(ax, 200)
	s.e.PointerMove(6, 401, 200)
	sc := s.e.Transform().Scale
	c.Assert(near(sc, 4*1.01), Equals, true, Commentf("scale %v", sc))
	nx, ny := s.e.ToContent(ax, 200)
	c.Assert(near(bx, nx) && near(by, ny), Equals, true)
}

func (s *EngineSuite) TestReleasingPairPointerPromotesNext(c *C) {
	s.e.PointerDown(5, 300, 200)
	s.e.PointerDown(6, 400, 200)
	s.e.PointerDown(1, 350, 200)
	s.e.PointerUp(6)
	// pair is now 5 and 1, 50 apart; moving 1 to 100 apart doubles the scale
	s.e.PointerMove(1, 400, 200)
	c.Assert(near(s.e.Transform().Scale, 2), Equals, true, Commentf("scale %v", s.e.Transform().Scale))
}

func (s *EngineSuite) TestZeroBaselineDoesNotRescale(c *C) {
	s.e.PointerDown(1, 200, 200)
	s.e.PointerDown(2, 200, 200)
	s.e.PointerMove(2, 300, 200)
	c.Assert(s.e.Transform().Scale, Equals, MinScale)
	// the new distance becomes the baseline
	s.e.PointerMove(2, 400, 200)
	c.Assert(near(s.e.Transform().Scale, 2), Equals, true)
}

func (s *EngineSuite) TestTwoPointersBlockClicks(c *C) {
	s.e.PointerDown(1, 100, 100)
	s.e.PointerDown(2, 200, 100)
	c.Assert(s.e.ConsumeClick(), Equals, false)
	c.Assert(s.e.ActivePointers(), Equals, 2)
}

func (s *EngineSuite) TestPinchReleaseSuppressesClick(c *C) {
	s.e.PointerDown(1, 100, 100)
	s.e.PointerDown(2, 200, 100)
	s.e.PointerMove(2, 201, 100)
	s.e.PointerUp(2)
	c.Assert(s.e.Mode(), Equals, Panning)
	s.e.PointerUp(1)
	c.Assert(s.e.Mode(), Equals, Idle)
	c.Assert(s.e.ConsumeClick(), Equals, false)
	c.Assert(s.e.ConsumeClick(), Equals, true)
}

func (s *EngineSuite) TestPanAfterPinchDoesNotJump(c *C) {
	s.e.PointerDown(1, 100, 100)
	s.e.PointerDown(2, 300, 100)
	s.e.PointerUp(2)
	before := s.e.Transform()
	s.e.PointerMove(1, 105, 100)
	after := s.e.Transform()
	c.Assert(after.X-before.X, Equals, 5.0)
}

func (s *EngineSuite) TestCancelDoesNotSuppress(c *C) {
	s.e.PointerDown(1, 0, 0)
	s.e.PointerMove(1, 50, 0)
	s.e.PointerCancel(1)
	c.Assert(s.e.Mode(), Equals, Idle)
	c.Assert(s.e.ConsumeClick(), Equals, true)
}

func (s *EngineSuite) TestUnknownPointerIgnored(c *C) {
	s.e.PointerMove(9, 10, 10)
	s.e.PointerUp(9)
	c.Assert(s.e.Transform(), Equals, Identity())
	c.Assert(s.e.ConsumeClick(), Equals, true)
}

func (s *EngineSuite) TestWheelAnchorInvariant(c *C) {
	for _, class := range []InputClass{InputFine, InputCoarse} {
		s.e.Reset()
		bx, by := s.e.ToContent(123, 321)
		s.e.Wheel(-200, 123, 321, class)
		ax, ay := s.e.ToContent(123, 321)
		c.Assert(s.e.Transform().Scale > MinScale, Equals, true)
		c.Assert(near(bx, ax) && near(by, ay), Equals, true)
	}
}

func (s *EngineSuite) TestWheelResponse(c *C) {
	s.e.Wheel(-100, 0, 0, InputFine)
	c.Assert(near(s.e.Transform().Scale, math.Exp(100*FineWheelSensitivity)), Equals, true)
	s.e.Reset()
	s.e.Wheel(-100, 0, 0, InputCoarse)
	c.Assert(near(s.e.Transform().Scale, math.Exp(100*CoarseWheelSensitivity)), Equals, true)
	s.e.Wheel(1e6, 0, 0, InputCoarse)
	c.Assert(s.e.Transform().Scale, Equals, MinScale)
}

func (s *EngineSuite) TestReset(c *C) {
	s.e.Pan(40, 40)
	s.e.ZoomCenter(3)
	s.e.Reset()
	c.Assert(s.e.Transform(), Equals, Identity())
}

func (s *EngineSuite) TestFitCentresRegion(c *C) {
	b := geom.BBox{MinX: 100, MinY: 100, MaxX: 200, MaxY: 150}
	s.e.Pan(33, -12)
	s.e.Fit(b)
	t := s.e.Transform()
	// width fit: (800-48)/100 = 7.52; height fit: (400-48)/50 = 7.04
	c.Assert(near(t.Scale, 7.04), Equals, true, Commentf("scale %v", t.Scale))
	sx, sy := s.e.ToScreen(b.Center())
	c.Assert(near(sx, 400) && near(sy, 200), Equals, true, Commentf("centre at %v,%v", sx, sy))
}

func (s *EngineSuite) TestFitClampsScale(c *C) {
	boxes := []geom.BBox{
		{MinX: 0, MinY: 0, MaxX: 800, MaxY: 400},
		{MinX: 10, MinY: 10, MaxX: 11, MaxY: 11},
		{MinX: 10, MinY: 10, MaxX: 10, MaxY: 10},
		{MinX: -5000, MinY: -5000, MaxX: 5000, MaxY: 5000},
	}
	for _, b := range boxes {
		s.e.Fit(b)
		sc := s.e.Transform().Scale
		c.Assert(sc >= MinScale && sc <= MaxScale, Equals, true, Commentf("box %+v scale %v", b, sc))
	}
}

func (s *EngineSuite) TestParseInputClass(c *C) {
	c.Assert(ParseInputClass("coarse"), Equals, InputCoarse)
	c.Assert(ParseInputClass("touch"), Equals, InputCoarse)
	c.Assert(ParseInputClass("fine"), Equals, InputFine)
	c.Assert(ParseInputClass(""), Equals, InputFine)
}

func TestZoomAtAnchorInvariantSweep(t *testing.T) {
	tr := Transform{X: 17, Y: -40, Scale: 2.5}
	for _, factor := range []float64{0.01, 0.5, 0.9, 1, 1.1, 2, 50} {
		for _, anchor := range [][2]float64{{0, 0}, {400, 200}, {799, 1}, {-20, 650}} {
			bx, by := tr.ToContent(anchor[0], anchor[1])
			next := tr.ZoomAt(factor, anchor[0], anchor[1])
			if next.Scale < MinScale || next.Scale > MaxScale {
				t.Fatalf("scale %v out of range", next.Scale)
			}
			ax, ay := next.ToContent(anchor[0], anchor[1])
			if math.Abs(ax-bx) > 1e-6 || math.Abs(ay-by) > 1e-6 {
				t.Errorf("factor %v anchor %v: content moved from (%v,%v) to (%v,%v)", factor, anchor, bx, by, ax, ay)
			}
		}
	}
}

func TestZoomAtIgnoresInvalidFactor(t *testing.T) {
	tr := Transform{X: 1, Y: 2, Scale: 3}
	for _, f := range []float64{-1, math.NaN()} {
		if got := tr.ZoomAt(f, 10, 10); got != tr {
			t.Errorf("factor %v changed transform to %+v", f, got)
		}
	}
}
