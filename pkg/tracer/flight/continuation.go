package flight

import (
	"math"

	"github.com/swingsight/tracer/pkg/shot"
)

// FindBestContinuation picks the candidate that best extends the track.
// The gate is direction, not distance: a ball can legitimately cover
// anything from 10 to 200 pixels between frames, but it always moves
// up-screen early in flight and it does not zig-zag.
//
// minDirection is the expansion level's direction-score floor. Returns
// false when no candidate qualifies.
func FindBestContinuation(track []shot.DetectionCandidate, cands []shot.DetectionCandidate, minDirection float64, cfg Config) (shot.DetectionCandidate, float64, bool) {
	if len(track) == 0 || len(cands) == 0 {
		return shot.DetectionCandidate{}, 0, false
	}
	last := track[len(track)-1]
	priorDX, priorDY := priorDirection(track)

	var best shot.DetectionCandidate
	bestScore := -1.0
	for _, c := range cands {
		if c.FrameIdx <= last.FrameIdx {
			continue
		}
		dx := c.Pos.X - last.Pos.X
		dy := c.Pos.Y - last.Pos.Y
		dist := math.Hypot(dx, dy)
		if dist < cfg.MinStepPx || dist > cfg.MaxStepPx {
			continue
		}
		// Early flight always rises on screen.
		if dy >= 0 {
			continue
		}
		if -dy < cfg.MinUpwardRatio*math.Abs(dx) {
			continue
		}

		dirScore := directionConsistency(priorDX, priorDY, dx, dy)
		if dirScore < minDirection {
			continue
		}

		score := cfg.DirectionWeight*dirScore + cfg.ColorWeight*c.ColorScore
		if score < cfg.MinContinuationScore {
			continue
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < 0 {
		return shot.DetectionCandidate{}, 0, false
	}
	return best, bestScore, true
}

// priorDirection is the direction of the last step, or a straight-up
// prior when the track is too short to have one.
func priorDirection(track []shot.DetectionCandidate) (float64, float64) {
	if len(track) < 2 {
		return 0, -1
	}
	a := track[len(track)-2]
	b := track[len(track)-1]
	return b.Pos.X - a.Pos.X, b.Pos.Y - a.Pos.Y
}

// directionConsistency maps the angle between the prior and proposed
// step onto [0,1]: aligned is 1, perpendicular or worse is 0.
func directionConsistency(px, py, dx, dy float64) float64 {
	pn := math.Hypot(px, py)
	dn := math.Hypot(dx, dy)
	if pn == 0 || dn == 0 {
		return 0
	}
	cos := (px*dx + py*dy) / (pn * dn)
	angle := math.Acos(clampF(cos, -1, 1))
	score := 1 - angle/(math.Pi/2)
	if score < 0 {
		return 0
	}
	return score
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
