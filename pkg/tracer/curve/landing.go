package curve

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/swingsight/tracer/internal/log"
	"github.com/swingsight/tracer/pkg/shot"
)

// nearSingularSplit is how close the apex time may sit to the parabola
// midpoint before the height solve is treated as degenerate. At exactly
// half the flight the system loses its apex-height information.
const nearSingularSplit = 0.05

// fitLandingConstrained synthesizes a single-arc trajectory through
// origin and landing with the apex at the chosen time. The vertical
// profile is the origin-to-landing baseline minus a two-half-parabola
// hump whose height comes from the constrained quadratic solve.
func (f *Fitter) fitLandingConstrained(cons shot.Constraints, origin shot.Point, track *shot.ValidatedTrack) (shot.Trajectory, error) {
	landing := *cons.Landing
	total := f.FlightTime(cons, origin)
	ratio := f.apexTimeRatio(track)
	ta := ratio * total
	dy := landing.Y - origin.Y
	dx := landing.X - origin.X

	rise := f.solveApexRise(total, ta, dy, cons.Height)

	dt := 1 / f.cfg.SampleHz
	n := int(math.Ceil(total * f.cfg.SampleHz))
	points := make([]shot.TrajectoryPoint, 0, n+1)
	for i := 0; i < n; i++ {
		points = append(points, f.landingSample(float64(i)*dt, total, ta, origin, dx, dy, rise, cons))
	}
	points = append(points, f.landingSample(total, total, ta, origin, dx, dy, rise, cons))

	return finalize(points, origin, landing, f.cfg.LandingConfidence, shot.FitLandingConstrained)
}

func (f *Fitter) landingSample(t, total, ta float64, origin shot.Point, dx, dy, rise float64, cons shot.Constraints) shot.TrajectoryPoint {
	u := t / total

	x := origin.X + dx*u
	x += cons.Shape.CurvatureOffset() * 4 * u * (1 - u)
	x += startLineOffset(cons.StartLine, t)

	baseline := origin.Y + dy*u
	y := baseline - rise*hump(t, ta, total)

	return shot.TrajectoryPoint{
		Timestamp:    t,
		Pos:          shot.Point{X: x, Y: y},
		Confidence:   f.cfg.LandingConfidence,
		Interpolated: true,
	}
}

// hump is 0 at both endpoints and 1 at the apex time, built from two
// parabolic halves meeting with zero slope.
func hump(t, ta, total float64) float64 {
	if t <= ta {
		if ta <= 0 {
			return 1
		}
		p := 1 - t/ta
		return 1 - p*p
	}
	d := total - ta
	if d <= 0 {
		return 1
	}
	p := (t - ta) / d
	return 1 - p*p
}

// solveApexRise solves the quadratic y(t) = y0 + b*t + c*t^2 for the
// coefficients pinned by y(total) = y0 + dy and a stationary point at
// ta, then back-computes the apex rise and the implied gravity. An apex
// time too close to the parabola midpoint leaves the system without
// height information; that and a vanishing rise fall back to the shot
// height category default. The rise clamps into the sane band either way.
func (f *Fitter) solveApexRise(total, ta, dy float64, height shot.ShotHeight) float64 {
	if math.Abs(total-2*ta) < nearSingularSplit*total {
		return clampF(height.ApexRise(), f.cfg.MinApexRise, f.cfg.MaxApexRise)
	}

	a := mat.NewDense(2, 2, []float64{
		total, total * total,
		1, 2 * ta,
	})
	rhs := mat.NewVecDense(2, []float64{dy, 0})
	var coef mat.VecDense
	if err := coef.SolveVec(a, rhs); err != nil {
		return clampF(height.ApexRise(), f.cfg.MinApexRise, f.cfg.MaxApexRise)
	}

	c := coef.AtVec(1)
	rise := math.Abs(c) * ta * ta
	log.Debug("landing fit solve", "implied_gravity", 2*c, "raw_rise", rise, "apex_time", ta)

	if rise < 1e-6 {
		rise = height.ApexRise()
	}
	return clampF(rise, f.cfg.MinApexRise, f.cfg.MaxApexRise)
}

// startLineOffset mirrors the corridor's starting-line shaping: ramp in
// over the first tenth of a second, gone by half a second.
func startLineOffset(line shot.StartingLine, t float64) float64 {
	const (
		ramp  = 0.1
		decay = 0.5
	)
	if t >= decay {
		return 0
	}
	r := math.Min(t/ramp, 1)
	d := (decay - t) / (decay - ramp)
	if d > 1 {
		d = 1
	}
	return line.Offset() * r * d
}
