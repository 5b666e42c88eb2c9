package tracer

import (
	"context"
	"fmt"
	"time"

	"github.com/swingsight/tracer/internal/log"
	"github.com/swingsight/tracer/pkg/shot"
	"github.com/swingsight/tracer/pkg/tracer/ballcolor"
	"github.com/swingsight/tracer/pkg/tracer/curve"
	"github.com/swingsight/tracer/pkg/tracer/flight"
	"github.com/swingsight/tracer/pkg/tracer/search"
	"github.com/swingsight/tracer/pkg/video"
)

// ladderTracker is the production EarlyTracker. It extracts the ball
// color template from a pre-impact frame at the origin position, builds
// the search corridor from the current constraints, and runs the
// expansion ladder over the strike window.
type ladderTracker struct {
	cfg Config
}

func (l *ladderTracker) Track(ctx context.Context, src video.Source, strike time.Duration, org shot.OriginPoint, cons shot.Constraints) (flight.Result, error) {
	if err := ctx.Err(); err != nil {
		return flight.Result{}, err
	}

	pre := strike - l.cfg.Origin.PreImpactOffset
	if pre < 0 {
		pre = 0
	}
	if err := src.SeekTimestamp(pre); err != nil {
		return flight.Result{}, fmt.Errorf("tracer: seek pre-impact frame: %w", err)
	}
	frame, err := src.Next()
	if err != nil {
		return flight.Result{}, fmt.Errorf("tracer: read pre-impact frame: %w", err)
	}

	tmpl, ok := ballcolor.Extract(frame.Mat, org.Pos.X, org.Pos.Y, l.cfg.ColorCropPx)
	if !ok {
		log.Warn("color template extraction failed", "pos_x", org.Pos.X, "pos_y", org.Pos.Y)
		return flight.Result{}, nil
	}
	log.Debug("color template extracted",
		"family", tmpl.Family.String(), "hue", tmpl.Hue, "sat", tmpl.Sat, "val", tmpl.Val)

	flightTime := curve.NewFitter(l.cfg.Curve).FlightTime(cons, org.Pos)
	corr := search.NewCorridor(org.Pos, cons.WithDefaults(), flightTime)

	tracker := flight.NewTracker(l.cfg.Flight, tmpl, corr, org.Pos)
	return tracker.Track(ctx, src, strike)
}
