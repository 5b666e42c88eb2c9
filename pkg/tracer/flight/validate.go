package flight

import (
	"math"
	"sort"

	"github.com/swingsight/tracer/pkg/shot"
)

// ValidateTrackVelocity rejects tracks whose motion is physically wrong
// for a struck ball: speed should decay, not grow, and the path should
// not bend sharply. Speeds are normalized per frame gap so skipped
// frames do not register as acceleration.
func ValidateTrackVelocity(points []shot.DetectionCandidate, cfg Config) bool {
	if len(points) < 3 {
		return false
	}

	speeds := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		gap := float64(points[i].FrameIdx - points[i-1].FrameIdx)
		if gap <= 0 {
			return false
		}
		speeds = append(speeds, points[i].Pos.DistanceTo(points[i-1].Pos)/gap)
	}

	accels := 0
	for i := 1; i < len(speeds); i++ {
		if speeds[i] > cfg.SpeedIncreaseLimit*speeds[i-1] {
			accels++
		}
	}
	comparisons := len(speeds) - 1
	if comparisons > 0 && float64(accels) > cfg.MaxAccelFraction*float64(comparisons) {
		return false
	}

	maxTurn := cfg.MaxTurnDeg * math.Pi / 180
	for i := 2; i < len(points); i++ {
		ax := points[i-1].Pos.X - points[i-2].Pos.X
		ay := points[i-1].Pos.Y - points[i-2].Pos.Y
		bx := points[i].Pos.X - points[i-1].Pos.X
		by := points[i].Pos.Y - points[i-1].Pos.Y
		if turnAngle(ax, ay, bx, by) > maxTurn {
			return false
		}
	}
	return true
}

func turnAngle(ax, ay, bx, by float64) float64 {
	an := math.Hypot(ax, ay)
	bn := math.Hypot(bx, by)
	if an == 0 || bn == 0 {
		return 0
	}
	cos := (ax*bx + ay*by) / (an * bn)
	return math.Acos(clampF(cos, -1, 1))
}

// scoreTrack rates an assembled track by length, upward motion share
// and mean color match.
func scoreTrack(points []shot.DetectionCandidate) float64 {
	if len(points) == 0 {
		return 0
	}

	lengthScore := math.Min(float64(len(points))/10, 1)

	upSteps := 0
	for i := 1; i < len(points); i++ {
		if points[i].Pos.Y < points[i-1].Pos.Y {
			upSteps++
		}
	}
	upwardRatio := 1.0
	if len(points) > 1 {
		upwardRatio = float64(upSteps) / float64(len(points)-1)
	}

	colorSum := 0.0
	for _, p := range points {
		colorSum += p.ColorScore
	}
	meanColor := colorSum / float64(len(points))

	return clampF(0.4*lengthScore+0.3*upwardRatio+0.3*meanColor, 0, 1)
}

// candidateTrack is an assembled track with its confidence score.
type candidateTrack struct {
	points     []shot.DetectionCandidate
	confidence float64
}

func (t candidateTrack) firstFrame() int { return t.points[0].FrameIdx }
func (t candidateTrack) lastFrame() int  { return t.points[len(t.points)-1].FrameIdx }

// selectNonOverlapping keeps a maximal set of tracks whose frame ranges
// do not overlap, taking the highest-confidence tracks first.
func selectNonOverlapping(tracks []candidateTrack) []candidateTrack {
	sorted := make([]candidateTrack, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].confidence > sorted[j].confidence
	})

	var kept []candidateTrack
	for _, t := range sorted {
		overlaps := false
		for _, k := range kept {
			if t.firstFrame() <= k.lastFrame() && k.firstFrame() <= t.lastFrame() {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, t)
		}
	}
	return kept
}
