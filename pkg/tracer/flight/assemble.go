package flight

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/swingsight/tracer/pkg/shot"
)

// assembleTracks seeds a track from every candidate of every frame and
// greedily extends each one through later frames. A track survives a
// couple of frames with no acceptable continuation before extension
// stops; short or physically implausible tracks are discarded.
func assembleTracks(byFrame map[int][]shot.DetectionCandidate, minDirection float64, cfg Config) []candidateTrack {
	frames := make([]int, 0, len(byFrame))
	for f := range byFrame {
		frames = append(frames, f)
	}
	sort.Ints(frames)

	var tracks []candidateTrack
	for _, f := range frames {
		for _, seed := range byFrame[f] {
			points := []shot.DetectionCandidate{seed}
			misses := 0
			for nf := f + 1; nf <= f+cfg.MaxTrackFrames; nf++ {
				best, _, ok := FindBestContinuation(points, byFrame[nf], minDirection, cfg)
				if !ok {
					misses++
					if misses > cfg.MaxConsecutiveMisses {
						break
					}
					continue
				}
				points = append(points, best)
				misses = 0
			}
			if len(points) < cfg.MinTrackPoints {
				continue
			}
			if !ValidateTrackVelocity(points, cfg) {
				continue
			}
			tracks = append(tracks, candidateTrack{points: points, confidence: scoreTrack(points)})
		}
	}
	return tracks
}

// bestTrack assembles, filters to a non-overlapping set, and returns
// the winner as a ValidatedTrack with derived launch parameters.
func bestTrack(byFrame map[int][]shot.DetectionCandidate, minDirection float64, fps float64, cfg Config) (shot.ValidatedTrack, bool) {
	tracks := selectNonOverlapping(assembleTracks(byFrame, minDirection, cfg))
	if len(tracks) == 0 {
		return shot.ValidatedTrack{}, false
	}

	win := tracks[0]
	vt := shot.ValidatedTrack{
		Points:     win.points,
		Confidence: win.confidence,
	}
	vt.LaunchAngle, vt.LateralAngle = DeriveLaunch(win.points, fps)
	return vt, true
}

// DeriveLaunch estimates launch and lateral angles in degrees from the
// track's pixel velocities, via linear regression of position against
// time. Positive launch is upward, positive lateral is rightward.
func DeriveLaunch(points []shot.DetectionCandidate, fps float64) (float64, float64) {
	if len(points) < 2 || fps <= 0 {
		return 0, 0
	}

	ts := make([]float64, len(points))
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		ts[i] = float64(p.FrameIdx) / fps
		xs[i] = p.Pos.X
		ys[i] = p.Pos.Y
	}

	_, vx := stat.LinearRegression(ts, xs, nil, false)
	_, vy := stat.LinearRegression(ts, ys, nil, false)

	launch := math.Atan2(-vy, math.Abs(vx)) * 180 / math.Pi
	lateral := math.Atan2(vx, -vy) * 180 / math.Pi
	return launch, lateral
}
