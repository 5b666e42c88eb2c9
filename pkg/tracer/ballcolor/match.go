package ballcolor

import "math"

// Base tolerances before time widening. Derived from each template's
// observed spread, floored so a very uniform crop does not produce a
// brittle matcher.
const (
	minHueTol = 10.0
	minSatTol = 40.0
	minValTol = 60.0

	// whiteSatCeiling scales how far above the template saturation a
	// pixel may sit before it is rejected as non-white. Shadow darkens
	// a white ball; it does not saturate it.
	whiteSatCeiling = 1.8

	// toleranceGrowth widens tolerance per elapsed second of flight.
	toleranceGrowth = 0.5
)

// Score returns how well an HSV pixel matches the template, in [0,1].
// elapsed is seconds since the strike; tolerance widens linearly with
// it because the ball shrinks and blurs as it recedes.
func (t Template) Score(h, s, v, elapsed float64) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	factor := 1 + toleranceGrowth*elapsed

	if t.Family == FamilyWhite {
		return t.scoreWhite(s, v, factor)
	}
	return t.scoreColored(h, s, v, factor)
}

// scoreWhite scores on value proximity only, rejecting saturated pixels
// outright: a saturated pixel is a different object, not a shaded ball.
func (t Template) scoreWhite(s, v, factor float64) float64 {
	satLimit := (t.Sat + minSatTol) * whiteSatCeiling * factor
	if s > satLimit {
		return 0
	}
	valTol := math.Max(2*t.ValStd, minValTol) * factor
	diff := math.Abs(v - t.Val)
	if diff >= valTol {
		return 0
	}
	return 1 - diff/valTol
}

// scoreColored blends hue, value and saturation proximity. Hue distance
// beyond tolerance short-circuits to zero: past that point the pixel is
// another object, not a noisy observation of the ball.
func (t Template) scoreColored(h, s, v, factor float64) float64 {
	hueTol := math.Max(2*t.HueStd, minHueTol) * factor
	hueDist := circularHueDistance(h, t.Hue)
	if hueDist > hueTol {
		return 0
	}

	hueScore := 1 - hueDist/hueTol

	valTol := math.Max(2*t.ValStd, minValTol) * factor
	valScore := 1 - math.Min(math.Abs(v-t.Val)/valTol, 1)

	satTol := math.Max(2*t.SatStd, minSatTol) * factor
	satScore := 1 - math.Min(math.Abs(s-t.Sat)/satTol, 1)

	return clamp01(0.5*hueScore + 0.3*valScore + 0.2*satScore)
}

// circularHueDistance returns the shortest distance between two hues on
// the OpenCV hue circle, which wraps at 180.
func circularHueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 90 {
		d = 180 - d
	}
	return d
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
