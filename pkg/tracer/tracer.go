// Package tracer orchestrates one shot through the full pipeline:
// origin detection, early flight tracking, and curve fitting. The
// expensive frame scans run once per shot; re-invoking Generate after
// the user moves the landing or apex point reuses the cached origin and
// early-flight evidence and only reruns the fit.
package tracer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/swingsight/tracer/internal/log"
	"github.com/swingsight/tracer/pkg/shot"
	"github.com/swingsight/tracer/pkg/tracer/curve"
	"github.com/swingsight/tracer/pkg/tracer/flight"
	"github.com/swingsight/tracer/pkg/tracer/origin"
	"github.com/swingsight/tracer/pkg/video"
)

// State is the orchestrator phase for one shot.
type State string

const (
	StateIdle                 State = "idle"
	StateOriginDetected       State = "origin_detected"
	StateEarlyFlightAttempted State = "early_flight_attempted"
	StateTrajectoryReady      State = "trajectory_ready"
	StateFailed               State = "failed"
)

// OriginDetector finds the ball at the strike.
type OriginDetector interface {
	Detect(ctx context.Context, src video.Source, strike time.Duration, cons shot.Constraints) (shot.OriginPoint, error)
}

// EarlyTracker attempts the post-impact detection ladder.
type EarlyTracker interface {
	Track(ctx context.Context, src video.Source, strike time.Duration, org shot.OriginPoint, cons shot.Constraints) (flight.Result, error)
}

// CurveFitter synthesizes the displayed trajectory.
type CurveFitter interface {
	Fit(cons shot.Constraints, origin shot.Point, track *shot.ValidatedTrack) (shot.Trajectory, error)
}

// Tracer drives one shot. Safe for sequential reuse; constraint updates
// and Generate calls may come from different goroutines.
type Tracer struct {
	cfg    Config
	src    video.Source
	strike time.Duration

	origin OriginDetector
	early  EarlyTracker
	fitter CurveFitter

	mu        sync.Mutex
	id        uuid.UUID
	state     State
	cons      shot.Constraints
	sink      Sink
	originFix *shot.OriginPoint
	earlyFly  *flight.Result
	warnings  []Warning
}

// New wires the production pipeline for one shot: consensus origin
// detection, the ladder tracker, and the constraint fitter.
func New(cfg Config, src video.Source, strike time.Duration) *Tracer {
	return NewWithComponents(cfg, src, strike,
		origin.NewDetector(cfg.Origin),
		&ladderTracker{cfg: cfg},
		curve.NewFitter(cfg.Curve))
}

// NewWithComponents wires explicit pipeline stages.
func NewWithComponents(cfg Config, src video.Source, strike time.Duration, od OriginDetector, et EarlyTracker, cf CurveFitter) *Tracer {
	return &Tracer{
		cfg:    cfg,
		src:    src,
		strike: strike,
		origin: od,
		early:  et,
		fitter: cf,
		id:     uuid.New(),
		state:  StateIdle,
	}
}

// ID identifies the shot in logs and events.
func (t *Tracer) ID() uuid.UUID { return t.id }

// State returns the current phase.
func (t *Tracer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// SetSink installs the event sink. Events are delivered synchronously
// from the goroutine running Generate.
func (t *Tracer) SetSink(s Sink) {
	t.mu.Lock()
	t.sink = s
	t.mu.Unlock()
}

// SetConstraints replaces the constraint set used by the next Generate.
// Cached origin and early-flight evidence survive the change.
func (t *Tracer) SetConstraints(cons shot.Constraints) {
	t.mu.Lock()
	t.cons = cons
	t.mu.Unlock()
}

// Generate runs the pipeline to a trajectory. Origin detection and the
// early-flight scan run at most once per shot; later invocations resume
// at the fit. The returned warnings describe quality degradations that
// did not stop generation.
func (t *Tracer) Generate(ctx context.Context) (shot.Trajectory, []Warning, error) {
	t.mu.Lock()
	cons := t.cons
	t.warnings = nil
	t.mu.Unlock()

	if !cons.HasLanding() {
		return shot.Trajectory{}, nil, ErrLandingRequired
	}
	t.progress(0, "locating ball")

	org, err := t.ensureOrigin(ctx, cons)
	if err != nil {
		t.setState(StateFailed)
		if ctx.Err() != nil {
			return shot.Trajectory{}, t.warningsCopy(), err
		}
		return shot.Trajectory{}, t.warningsCopy(), &FatalError{
			Code:    CodeOriginNotFound,
			Message: "could not locate the ball before impact",
			Hint:    "tap the ball in the frame to provide a position hint",
			Err:     err,
		}
	}
	if org.Confidence < t.cfg.LowConfidenceOrigin {
		t.warn(WarnLowConfidenceOrigin,
			fmt.Sprintf("origin confidence %.2f from %s", org.Confidence, org.Method))
	}
	t.setState(StateOriginDetected)
	t.progress(40, "tracking early flight")

	res, err := t.ensureEarlyFlight(ctx, org, cons)
	if err != nil {
		t.setState(StateFailed)
		return shot.Trajectory{}, t.warningsCopy(), err
	}
	t.setState(StateEarlyFlightAttempted)
	t.progress(70, "fitting trajectory")

	var track *shot.ValidatedTrack
	if res.Found {
		track = &res.Track
		if res.Maxed {
			t.warn(WarnExpansionMaxed, "search exhausted before a full track formed, using partial track")
		}
	} else {
		t.warn(WarnNoEarlyDetection, "no ball detected after impact, using default launch")
		track = &shot.ValidatedTrack{
			LaunchAngle:  t.cfg.DefaultLaunchAngle,
			LateralAngle: t.cfg.DefaultLateralAngle,
		}
	}

	traj, err := t.fitter.Fit(cons, org.Pos, track)
	if err != nil {
		t.setState(StateFailed)
		return shot.Trajectory{}, t.warningsCopy(), &FatalError{
			Code:    CodeDegenerateFit,
			Message: "could not fit a trajectory through the marked points",
			Hint:    "adjust the landing or apex point",
			Err:     err,
		}
	}

	t.setState(StateTrajectoryReady)
	t.progress(100, "trajectory ready")
	log.Info("trajectory generated",
		"shot", t.id.String(), "method", string(traj.Method),
		"points", len(traj.Points), "warnings", len(t.warningsCopy()))
	return traj, t.warningsCopy(), nil
}

// ensureOrigin returns the cached origin fix or runs detection once.
func (t *Tracer) ensureOrigin(ctx context.Context, cons shot.Constraints) (shot.OriginPoint, error) {
	t.mu.Lock()
	cached := t.originFix
	t.mu.Unlock()
	if cached != nil {
		return *cached, nil
	}

	org, err := t.origin.Detect(ctx, t.src, t.strike, cons)
	if err != nil {
		return shot.OriginPoint{}, err
	}
	log.Debug("origin located",
		"shot", t.id.String(), "pos_x", org.Pos.X, "pos_y", org.Pos.Y,
		"confidence", org.Confidence, "method", string(org.Method))

	t.mu.Lock()
	t.originFix = &org
	t.mu.Unlock()
	return org, nil
}

// ensureEarlyFlight returns the cached ladder result or runs the scan
// once. Context errors propagate; any other tracking failure degrades
// to an empty result so the fit can still run on defaults.
func (t *Tracer) ensureEarlyFlight(ctx context.Context, org shot.OriginPoint, cons shot.Constraints) (flight.Result, error) {
	t.mu.Lock()
	cached := t.earlyFly
	t.mu.Unlock()
	if cached != nil {
		return *cached, nil
	}

	res, err := t.early.Track(ctx, t.src, t.strike, org, cons)
	if err != nil {
		if ctx.Err() != nil {
			return flight.Result{}, err
		}
		log.Warn("early flight tracking failed", "shot", t.id.String(), "err", err)
		res = flight.Result{Maxed: true}
	}

	t.mu.Lock()
	t.earlyFly = &res
	t.mu.Unlock()
	return res, nil
}

func (t *Tracer) setState(s State) {
	t.mu.Lock()
	prev := t.state
	t.state = s
	sink := t.sink
	t.mu.Unlock()
	if prev == s {
		return
	}
	log.Debug("tracer state", "shot", t.id.String(), "from", string(prev), "to", string(s))
	if sink != nil {
		sink(Event{Shot: t.id, Type: EventState, State: s})
	}
}

func (t *Tracer) progress(pct int, msg string) {
	t.mu.Lock()
	sink := t.sink
	t.mu.Unlock()
	if sink != nil {
		sink(Event{Shot: t.id, Type: EventProgress, Percent: pct, Message: msg})
	}
}

func (t *Tracer) warn(code WarningCode, msg string) {
	w := Warning{Code: code, Message: msg}
	t.mu.Lock()
	t.warnings = append(t.warnings, w)
	sink := t.sink
	t.mu.Unlock()
	log.Warn("tracer warning", "shot", t.id.String(), "code", string(code), "msg", msg)
	if sink != nil {
		sink(Event{Shot: t.id, Type: EventWarning, Warning: &w})
	}
}

func (t *Tracer) warningsCopy() []Warning {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Warning, len(t.warnings))
	copy(out, t.warnings)
	return out
}
