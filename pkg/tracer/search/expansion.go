// Package search computes where to look for the ball: a corridor of
// expected positions derived from the shot constraints, and a four-level
// expansion ladder that widens the window when the corridor misses.
//
// The ladder prefers false positives over false negatives: wider levels
// admit more noise and pair with stricter validation thresholds so the
// noise is filterable downstream.
package search

import "image"

// Level is one rung of the progressive search-region ladder.
type Level int

// Expansion levels, tightest first.
const (
	LevelTight Level = iota
	LevelMedium
	LevelWide
	LevelMaximum
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelTight:
		return "tight"
	case LevelMedium:
		return "medium"
	case LevelWide:
		return "wide"
	case LevelMaximum:
		return "maximum"
	default:
		return "unknown"
	}
}

// scale returns the multiplier applied to the corridor base region.
func (l Level) scale() float64 {
	switch l {
	case LevelMedium:
		return 2
	case LevelWide:
		return 3
	default:
		return 1
	}
}

// Levels returns the ladder in ascending order. The early flight tracker
// walks this sequence explicitly and stops at the first level that
// produces a sufficient track.
func Levels() []Level {
	return []Level{LevelTight, LevelMedium, LevelWide, LevelMaximum}
}

// Thresholds are the minimum candidate scores a level requires. Wider
// windows admit more noise, so thresholds rise monotonically with level.
type Thresholds struct {
	MinColor     float64
	MinMotion    float64
	MinDirection float64
}

// ThresholdsFor returns the validation strictness for a level.
func ThresholdsFor(l Level) Thresholds {
	switch l {
	case LevelTight:
		return Thresholds{MinColor: 0.25, MinMotion: 0.20, MinDirection: 0.30}
	case LevelMedium:
		return Thresholds{MinColor: 0.35, MinMotion: 0.30, MinDirection: 0.40}
	case LevelWide:
		return Thresholds{MinColor: 0.45, MinMotion: 0.40, MinDirection: 0.50}
	default:
		return Thresholds{MinColor: 0.55, MinMotion: 0.50, MinDirection: 0.60}
	}
}

// Region computes the pixel search window for a level. Levels 0-2 scale
// the corridor-derived base rectangle about its center. LevelMaximum
// ignores the base: a fixed window one third of the frame wide, centered
// on the origin column, from the top of the frame to just below the
// origin row.
func Region(l Level, base image.Rectangle, frameW, frameH int, originPx image.Point) image.Rectangle {
	if l == LevelMaximum {
		halfW := frameW / 6
		bottom := originPx.Y + frameH/20
		r := image.Rect(originPx.X-halfW, 0, originPx.X+halfW, bottom)
		return clampRect(r, frameW, frameH)
	}

	s := l.scale()
	cx := float64(base.Min.X+base.Max.X) / 2
	cy := float64(base.Min.Y+base.Max.Y) / 2
	halfW := float64(base.Dx()) / 2 * s
	halfH := float64(base.Dy()) / 2 * s
	r := image.Rect(int(cx-halfW), int(cy-halfH), int(cx+halfW), int(cy+halfH))
	return clampRect(r, frameW, frameH)
}

func clampRect(r image.Rectangle, frameW, frameH int) image.Rectangle {
	return r.Intersect(image.Rect(0, 0, frameW, frameH))
}
