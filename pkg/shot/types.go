// Package shot defines the domain types shared by the tracer pipeline:
// normalized geometry, detection candidates, validated early-flight tracks
// and the final trajectory artifact.
package shot

import "math"

// Point is a position in normalized frame coordinates.
// X and Y are fractions of frame width and height in [0,1];
// Y grows downward (screen coordinates).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point) DistanceTo(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PixelPoint is a position in pixel coordinates of a concrete frame.
type PixelPoint struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance in pixels.
func (p PixelPoint) DistanceTo(o PixelPoint) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Normalize converts to normalized coordinates for a frame of the given size.
func (p PixelPoint) Normalize(frameW, frameH int) Point {
	return Point{X: p.X / float64(frameW), Y: p.Y / float64(frameH)}
}

// OriginMethod identifies which detection method produced an origin point.
type OriginMethod string

const (
	// OriginMethodCircle is Hough circle detection on the pre-impact frame.
	OriginMethodCircle OriginMethod = "circle"
	// OriginMethodVacancy is pre/post impact frame differencing: the spot
	// occupied before the strike and vacated after it.
	OriginMethodVacancy OriginMethod = "vacancy"
	// OriginMethodPrior is the constraint-derived fallback position.
	OriginMethodPrior OriginMethod = "prior"
	// OriginMethodConsensus marks an origin agreed by two or more methods.
	OriginMethodConsensus OriginMethod = "consensus"
)

// OriginPoint is the ball position at address/impact.
type OriginPoint struct {
	Pos        Point
	Confidence float64 // [0,1]
	Method     OriginMethod
}

// DetectionCandidate is a single per-frame ball hypothesis produced by the
// early flight tracker. Coordinates are pixels in the source frame.
type DetectionCandidate struct {
	FrameIdx    int
	Pos         PixelPoint
	ColorScore  float64 // [0,1]
	MotionScore float64 // [0,1]
}

// ValidatedTrack is an ordered, direction-consistent sequence of detections
// covering the first fraction of a second after the strike.
type ValidatedTrack struct {
	Points     []DetectionCandidate
	Confidence float64 // [0,1]

	// Launch parameters derived from the first points, degrees.
	// Positive LaunchAngle is upward; positive LateralAngle is rightward.
	LaunchAngle  float64
	LateralAngle float64
}

// Len returns the number of points on the track.
func (t ValidatedTrack) Len() int { return len(t.Points) }

// First returns the earliest detection. Only valid when Len() > 0.
func (t ValidatedTrack) First() DetectionCandidate { return t.Points[0] }

// Last returns the latest detection. Only valid when Len() > 0.
func (t ValidatedTrack) Last() DetectionCandidate { return t.Points[len(t.Points)-1] }

// FitMethod tags how a trajectory was synthesized.
type FitMethod string

const (
	// FitLandingConstrained is the single-parabola fit through origin and
	// landing with a chosen apex time.
	FitLandingConstrained FitMethod = "landing_constrained"
	// FitApexConstrained is the dual-Bezier fit through a user-marked apex.
	FitApexConstrained FitMethod = "apex_constrained"
)

// TrajectoryPoint is one sample of the synthesized flight path.
type TrajectoryPoint struct {
	Timestamp    float64 `json:"t"` // seconds since strike
	Pos          Point   `json:"pos"`
	Confidence   float64 `json:"confidence"`
	Interpolated bool    `json:"interpolated"`
}

// Trajectory is the final flight path artifact. It is immutable once
// produced: the renderer and the exporter both consume the identical
// point slice so preview and burned-in output cannot diverge.
type Trajectory struct {
	Points     []TrajectoryPoint
	Apex       TrajectoryPoint // minimum-y sample actually reached
	Confidence float64
	Method     FitMethod
}

// Duration returns the total flight time in seconds.
func (tr Trajectory) Duration() float64 {
	if len(tr.Points) == 0 {
		return 0
	}
	return tr.Points[len(tr.Points)-1].Timestamp
}

// PointsUntil returns the prefix of points with Timestamp <= elapsed.
// The returned slice aliases the trajectory; callers must not modify it.
func (tr Trajectory) PointsUntil(elapsed float64) []TrajectoryPoint {
	n := 0
	for n < len(tr.Points) && tr.Points[n].Timestamp <= elapsed {
		n++
	}
	return tr.Points[:n]
}
