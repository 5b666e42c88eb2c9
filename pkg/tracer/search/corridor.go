package search

import (
	"image"
	"math"

	"github.com/swingsight/tracer/pkg/shot"
)

// Corridor window growth: interpolation error accumulates with flight
// time, so the half-size widens from 50px to 80px over the first half
// second and holds there.
const (
	baseHalfPx    = 50.0
	maxHalfPx     = 80.0
	growWindowSec = 0.5

	// apexTimeRatio is where the flight splits into ascending and
	// descending halves when no apex timing evidence exists.
	apexTimeRatio = 0.45

	// Starting-line offset shaping: full by rampSec, gone by decaySec.
	startRampSec  = 0.1
	startDecaySec = 0.5
)

// Corridor predicts the expected ball position at a given elapsed time
// from whatever endpoint and shape constraints are currently known, and
// derives the tight base search rectangle around that prediction.
type Corridor struct {
	origin     shot.Point
	landing    shot.Point
	apex       *shot.Point
	shape      shot.ShotShape
	startLine  shot.StartingLine
	height     shot.ShotHeight
	flightTime float64
}

// NewCorridor builds a corridor from the detected origin and the current
// constraint set. flightTime must be the resolved positive duration.
func NewCorridor(origin shot.Point, cons shot.Constraints, flightTime float64) Corridor {
	cons = cons.WithDefaults()
	c := Corridor{
		origin:     origin,
		shape:      cons.Shape,
		startLine:  cons.StartLine,
		height:     cons.Height,
		flightTime: flightTime,
		apex:       cons.Apex,
	}
	if cons.Landing != nil {
		c.landing = *cons.Landing
	} else {
		// No landing yet: assume a straight carry past the origin so the
		// early corridor still points up the launch line.
		c.landing = shot.Point{X: origin.X, Y: origin.Y}
	}
	return c
}

// FlightTime returns the resolved flight duration in seconds.
func (c Corridor) FlightTime() float64 { return c.flightTime }

// ApexTime returns the time of the ascending/descending split.
func (c Corridor) ApexTime() float64 { return apexTimeRatio * c.flightTime }

// ExpectedAt interpolates the expected ball position at elapsed seconds
// after the strike. Ascent follows an ease-out curve, descent is
// near-linear; without a marked apex the height comes from the shot
// height category via a symmetric parabola.
func (c Corridor) ExpectedAt(elapsed float64) shot.Point {
	t := clampF(elapsed, 0, c.flightTime)
	u := 0.0
	if c.flightTime > 0 {
		u = t / c.flightTime
	}

	x := c.origin.X + (c.landing.X-c.origin.X)*u
	x += c.shape.CurvatureOffset() * curvatureEnvelope(u)
	x += c.startLineOffset(t)

	return shot.Point{X: x, Y: c.expectedY(t, u)}
}

func (c Corridor) expectedY(t, u float64) float64 {
	if c.apex == nil {
		// Symmetric parabola sagging upward (screen y decreases) from the
		// origin-to-landing baseline by the category rise.
		baseline := c.origin.Y + (c.landing.Y-c.origin.Y)*u
		return baseline - c.height.ApexRise()*curvatureEnvelope(u)
	}

	ta := c.ApexTime()
	if t <= ta {
		p := 1.0
		if ta > 0 {
			p = t / ta
		}
		// Ease-out: fast early rise that flattens into the apex.
		eased := 1 - (1-p)*(1-p)
		return c.origin.Y + (c.apex.Y-c.origin.Y)*eased
	}

	p := 1.0
	if c.flightTime > ta {
		p = (t - ta) / (c.flightTime - ta)
	}
	return c.apex.Y + (c.landing.Y-c.apex.Y)*p
}

// startLineOffset ramps the starting-line push in over the first tenth
// of a second and decays it to nothing by half a second, when the shot
// shape takes over.
func (c Corridor) startLineOffset(t float64) float64 {
	if t >= startDecaySec {
		return 0
	}
	ramp := math.Min(t/startRampSec, 1)
	decay := (startDecaySec - t) / (startDecaySec - startRampSec)
	if decay > 1 {
		decay = 1
	}
	return c.startLine.Offset() * ramp * decay
}

// BaseRegion returns the tight pixel search rectangle for elapsed
// seconds after the strike, centered on the expected position. This is
// the LevelTight window the expansion ladder scales up.
func (c Corridor) BaseRegion(elapsed float64, frameW, frameH int) image.Rectangle {
	p := c.ExpectedAt(elapsed)
	cx := p.X * float64(frameW)
	cy := p.Y * float64(frameH)

	growth := clampF(elapsed/growWindowSec, 0, 1)
	half := baseHalfPx + (maxHalfPx-baseHalfPx)*growth

	r := image.Rect(int(cx-half), int(cy-half), int(cx+half), int(cy+half))
	return clampRect(r, frameW, frameH)
}

// curvatureEnvelope peaks mid-flight and vanishes at both endpoints.
func curvatureEnvelope(u float64) float64 {
	return 4 * u * (1 - u)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
