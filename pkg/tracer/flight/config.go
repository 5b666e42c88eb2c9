// Package flight detects and validates a short track of ball positions
// in the first half second after the strike, when the ball is still
// large enough to separate from the background by color and motion.
//
// The package splits into pixel work (candidate extraction from frame
// differences) and pure track logic (continuation, velocity validation,
// assembly), so the tracking rules are testable without OpenCV.
package flight

import "time"

// Config holds the tracker tunables. The continuation and velocity
// thresholds are empirically tuned starting points, not invariants;
// treat them as adjustable.
type Config struct {
	// Window is how long after the strike the tracker looks.
	Window time.Duration

	// Step distance gate, pixels per frame. Ball motion legitimately
	// spans a huge range, so the gate is deliberately loose; direction
	// is the real filter.
	MinStepPx float64
	MaxStepPx float64

	// MinUpwardRatio is the required ratio of upward to horizontal
	// motion for a continuation step.
	MinUpwardRatio float64

	// MaxTurnDeg is the largest single direction change a validated
	// track may contain.
	MaxTurnDeg float64

	// Continuation scoring: direction consistency vs color match.
	DirectionWeight      float64
	ColorWeight          float64
	MinContinuationScore float64

	// SpeedIncreaseLimit flags a step as accelerating when consecutive
	// speeds grow past this ratio. A ball in flight decelerates.
	SpeedIncreaseLimit float64

	// MaxAccelFraction is the fraction of steps allowed to accelerate
	// before the track is rejected.
	MaxAccelFraction float64

	// Track assembly.
	MaxTrackFrames       int // greedy extension horizon
	MaxConsecutiveMisses int
	MinTrackPoints       int // tracks shorter than this are discarded
	TargetTrackPoints    int // ladder stops at the first level reaching this

	// Contour area band for ball-sized blobs, px^2.
	MinContourArea float64
	MaxContourArea float64

	// DiffThreshold is the brightness-difference binarization cutoff.
	DiffThreshold float64
}

// DefaultConfig returns the recommended tracker configuration.
func DefaultConfig() Config {
	return Config{
		Window: 500 * time.Millisecond,

		MinStepPx:      10,
		MaxStepPx:      200,
		MinUpwardRatio: 0.5,
		MaxTurnDeg:     25,

		DirectionWeight:      0.6,
		ColorWeight:          0.4,
		MinContinuationScore: 0.3,

		SpeedIncreaseLimit: 1.3,
		MaxAccelFraction:   0.5,

		MaxTrackFrames:       20,
		MaxConsecutiveMisses: 2,
		MinTrackPoints:       3,
		TargetTrackPoints:    5,

		MinContourArea: 12,
		MaxContourArea: 1600,

		DiffThreshold: 20,
	}
}
