// Package origin locates the ball at address/impact by consensus of
// independent detection methods. Two methods agreeing within a small
// pixel radius give a high-confidence origin; a single method gives a
// medium-confidence one; with nothing found detection fails and the
// caller decides whether that is fatal.
package origin

import (
	"context"
	"errors"
	"time"

	"github.com/swingsight/tracer/internal/log"
	"github.com/swingsight/tracer/pkg/debug"
	"github.com/swingsight/tracer/pkg/shot"
	"github.com/swingsight/tracer/pkg/video"
)

// ErrNotFound is returned when no method produced a position.
var ErrNotFound = errors.New("origin: no detection method produced a position")

// Candidate is one method's origin hypothesis in pixel coordinates.
type Candidate struct {
	Pos        shot.PixelPoint
	Confidence float64
	Method     shot.OriginMethod
}

// Method is a single independent origin detection strategy.
type Method interface {
	// Name identifies the method on the resulting OriginPoint.
	Name() shot.OriginMethod

	// Locate attempts to find the ball around the strike time.
	// Returns false when the method has nothing to offer; errors are
	// reserved for unreadable frames.
	Locate(ctx context.Context, src video.Source, strike time.Duration, cons shot.Constraints) (Candidate, bool, error)
}

// Config holds the consensus tunables.
type Config struct {
	// AgreementRadiusPx is how close two methods must land to count as
	// agreeing on the same ball.
	AgreementRadiusPx float64

	// PreImpactOffset is how far before the strike methods sample the
	// stationary ball.
	PreImpactOffset time.Duration

	// PostImpactOffset is how far after the strike the vacancy method
	// samples the empty tee.
	PostImpactOffset time.Duration

	// Ball radius band for circle detection, pixels.
	MinBallRadiusPx int
	MaxBallRadiusPx int
}

// DefaultConfig returns the recommended consensus configuration.
func DefaultConfig() Config {
	return Config{
		AgreementRadiusPx: 50,
		PreImpactOffset:   200 * time.Millisecond,
		PostImpactOffset:  250 * time.Millisecond,
		MinBallRadiusPx:   3,
		MaxBallRadiusPx:   25,
	}
}

// Detector runs a set of methods and merges their candidates.
type Detector struct {
	cfg     Config
	methods []Method
}

// NewDetector creates a consensus detector. With no explicit methods it
// installs the production set: Hough circle, impact vacancy, and the
// constraint prior.
func NewDetector(cfg Config, methods ...Method) *Detector {
	if len(methods) == 0 {
		methods = []Method{
			&CircleMethod{cfg: cfg},
			&VacancyMethod{cfg: cfg},
			&PriorMethod{},
		}
	}
	return &Detector{cfg: cfg, methods: methods}
}

// Detect runs every method and resolves a consensus origin.
func (d *Detector) Detect(ctx context.Context, src video.Source, strike time.Duration, cons shot.Constraints) (shot.OriginPoint, error) {
	var candidates []Candidate
	for _, m := range d.methods {
		if err := ctx.Err(); err != nil {
			return shot.OriginPoint{}, err
		}
		cand, ok, err := m.Locate(ctx, src, strike, cons)
		if err != nil {
			log.Warn("origin method failed", "method", m.Name(), "err", err)
			continue
		}
		if ok {
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 {
		return shot.OriginPoint{}, ErrNotFound
	}

	frameW, frameH := src.Size()
	resolved := Resolve(candidates, d.cfg.AgreementRadiusPx, frameW, frameH)
	debug.Log("origin: %d candidates -> %s (%.3f,%.3f) conf %.2f\n",
		len(candidates), resolved.Method, resolved.Pos.X, resolved.Pos.Y, resolved.Confidence)
	return resolved, nil
}

// Resolve merges method candidates into one origin. Two or more methods
// within radius of each other average into a high-confidence consensus;
// otherwise the best single candidate wins with medium confidence,
// capped by the method's own estimate.
func Resolve(candidates []Candidate, radiusPx float64, frameW, frameH int) shot.OriginPoint {
	best := candidates[0]
	var cluster []Candidate

	for _, c := range candidates {
		var near []Candidate
		for _, o := range candidates {
			if c.Pos.DistanceTo(o.Pos) <= radiusPx {
				near = append(near, o)
			}
		}
		if len(near) > len(cluster) {
			cluster = near
		}
		if c.Confidence > best.Confidence {
			best = c
		}
	}

	if len(cluster) >= 2 {
		var sx, sy float64
		for _, c := range cluster {
			sx += c.Pos.X
			sy += c.Pos.Y
		}
		n := float64(len(cluster))
		pos := shot.PixelPoint{X: sx / n, Y: sy / n}
		return shot.OriginPoint{
			Pos:        pos.Normalize(frameW, frameH),
			Confidence: 0.9,
			Method:     shot.OriginMethodConsensus,
		}
	}

	conf := best.Confidence
	if conf > 0.6 {
		conf = 0.6
	}
	return shot.OriginPoint{
		Pos:        best.Pos.Normalize(frameW, frameH),
		Confidence: conf,
		Method:     best.Method,
	}
}
