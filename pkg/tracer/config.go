package tracer

import (
	"github.com/swingsight/tracer/pkg/tracer/curve"
	"github.com/swingsight/tracer/pkg/tracer/flight"
	"github.com/swingsight/tracer/pkg/tracer/origin"
)

// Config bundles the per-stage configurations with the orchestrator's
// own tunables.
type Config struct {
	Origin origin.Config
	Flight flight.Config
	Curve  curve.Config

	// ColorCropPx is the square crop edge, in pixels, used to extract
	// the ball color template around the origin.
	ColorCropPx int

	// LowConfidenceOrigin is the confidence below which an origin fix
	// raises WarnLowConfidenceOrigin.
	LowConfidenceOrigin float64

	// Launch parameters assumed when no early flight was detected,
	// degrees. Lateral is positive toward the right of the frame.
	DefaultLaunchAngle  float64
	DefaultLateralAngle float64
}

// DefaultConfig returns the recommended orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		Origin: origin.DefaultConfig(),
		Flight: flight.DefaultConfig(),
		Curve:  curve.DefaultConfig(),

		ColorCropPx:         24,
		LowConfidenceOrigin: 0.7,
		DefaultLaunchAngle:  18,
		DefaultLateralAngle: 0,
	}
}
