// Package curve synthesizes the full flight path from the constraint
// set and whatever early-flight evidence exists. Detection only ever
// covers the first half second; everything after that is a constrained
// fit through the points the user confirmed.
package curve

import (
	"errors"
	"math"

	"github.com/swingsight/tracer/internal/log"
	"github.com/swingsight/tracer/pkg/shot"
)

// ErrDegenerate is returned when the solve cannot produce a usable
// trajectory: fewer than two samples or non-finite geometry.
var ErrDegenerate = errors.New("curve: degenerate fit")

// Config holds the fitter tunables.
type Config struct {
	// SampleHz is the trajectory sampling rate.
	SampleHz float64

	// Flight time derivation: base seconds plus seconds per unit of
	// normalized horizontal travel, clamped to the sane range.
	BaseFlightTime     float64
	FlightTimePerWidth float64
	MinFlightTime      float64
	MaxFlightTime      float64

	// DefaultApexTimeRatio is used when no early-track launch evidence
	// exists. Launch-derived ratios clamp into [MinApexTimeRatio,
	// MaxApexTimeRatio].
	DefaultApexTimeRatio float64
	MinApexTimeRatio     float64
	MaxApexTimeRatio     float64

	// Apex rise clamp, fraction of frame height.
	MinApexRise float64
	MaxApexRise float64

	// Bezier control point bias toward the apex, per axis.
	BezierHorizBias float64
	BezierVertBias  float64

	// Derived-trajectory confidence tags. These mark points as fitted
	// rather than detected; they are not per-point detection scores.
	LandingConfidence float64
	ApexConfidence    float64
}

// DefaultConfig returns the recommended fitter configuration.
func DefaultConfig() Config {
	return Config{
		SampleHz: 30,

		BaseFlightTime:     2.0,
		FlightTimePerWidth: 4.0,
		MinFlightTime:      2.0,
		MaxFlightTime:      5.0,

		DefaultApexTimeRatio: 0.42,
		MinApexTimeRatio:     0.35,
		MaxApexTimeRatio:     0.55,

		MinApexRise: 0.1,
		MaxApexRise: 0.6,

		BezierHorizBias: 0.5,
		BezierVertBias:  0.3,

		LandingConfidence: 0.85,
		ApexConfidence:    0.90,
	}
}

// Fitter synthesizes trajectories for one shot.
type Fitter struct {
	cfg Config
}

// NewFitter creates a fitter.
func NewFitter(cfg Config) *Fitter {
	return &Fitter{cfg: cfg}
}

// Fit selects the fitting mode from the constraints: a marked apex
// switches to the dual-Bezier apex-constrained fit, otherwise the
// single-arc landing-constrained fit runs. track may be nil when no
// early flight was detected.
func (f *Fitter) Fit(cons shot.Constraints, origin shot.Point, track *shot.ValidatedTrack) (shot.Trajectory, error) {
	if !cons.HasLanding() {
		return shot.Trajectory{}, errors.New("curve: landing constraint required")
	}
	cons = cons.WithDefaults()

	// Non-finite endpoints would otherwise poison the flight time and
	// the sample count before any sample is taken.
	if !finitePoint(origin) || !finitePoint(*cons.Landing) {
		return shot.Trajectory{}, ErrDegenerate
	}
	if cons.HasApex() && !finitePoint(*cons.Apex) {
		return shot.Trajectory{}, ErrDegenerate
	}

	if cons.HasApex() {
		return f.fitApexConstrained(cons, origin)
	}
	return f.fitLandingConstrained(cons, origin, track)
}

// flightTime resolves the total flight duration: the user's explicit
// value when given, otherwise a base scaled by horizontal travel.
func (f *Fitter) FlightTime(cons shot.Constraints, origin shot.Point) float64 {
	if cons.FlightTime > 0 {
		return clampF(cons.FlightTime, f.cfg.MinFlightTime, f.cfg.MaxFlightTime)
	}
	travel := math.Abs(cons.Landing.X - origin.X)
	t := f.cfg.BaseFlightTime + f.cfg.FlightTimePerWidth*travel
	return clampF(t, f.cfg.MinFlightTime, f.cfg.MaxFlightTime)
}

// apexTimeRatio places the apex within the flight: launch-angle
// evidence from the early track shifts it, otherwise the default holds.
// A steeper launch carries the apex later into the flight.
func (f *Fitter) apexTimeRatio(track *shot.ValidatedTrack) float64 {
	if track == nil {
		return f.cfg.DefaultApexTimeRatio
	}
	ratio := 0.35 + track.LaunchAngle/90*0.2
	return clampF(ratio, f.cfg.MinApexTimeRatio, f.cfg.MaxApexTimeRatio)
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

func finitePoint(p shot.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// finalize snaps the endpoints exactly, locates the actual apex and
// stamps the derived confidence.
func finalize(points []shot.TrajectoryPoint, origin, landing shot.Point, confidence float64, method shot.FitMethod) (shot.Trajectory, error) {
	if len(points) < 2 {
		return shot.Trajectory{}, ErrDegenerate
	}
	for _, p := range points {
		if !finitePoint(p.Pos) {
			return shot.Trajectory{}, ErrDegenerate
		}
	}

	points[0].Pos = origin
	points[len(points)-1].Pos = landing

	apex := points[0]
	for _, p := range points {
		if p.Pos.Y < apex.Pos.Y {
			apex = p
		}
	}

	log.Debug("trajectory fitted",
		"method", string(method), "points", len(points),
		"apex_y", apex.Pos.Y, "duration", points[len(points)-1].Timestamp)

	return shot.Trajectory{
		Points:     points,
		Apex:       apex,
		Confidence: confidence,
		Method:     method,
	}, nil
}
