package flight

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"

	"github.com/swingsight/tracer/internal/log"
	"github.com/swingsight/tracer/pkg/debug"
	"github.com/swingsight/tracer/pkg/shot"
	"github.com/swingsight/tracer/pkg/tracer/ballcolor"
	"github.com/swingsight/tracer/pkg/tracer/search"
	"github.com/swingsight/tracer/pkg/video"
)

// Result is the outcome of one tracking attempt.
type Result struct {
	Track shot.ValidatedTrack
	Level search.Level // ladder level that produced the track
	Found bool
	Maxed bool // ladder exhausted without reaching the target length
}

// Tracker runs the early-flight detection ladder for one shot.
type Tracker struct {
	cfg      Config
	template ballcolor.Template
	corridor search.Corridor
	origin   shot.Point
}

// NewTracker creates a tracker bound to one shot's color template,
// corridor and origin.
func NewTracker(cfg Config, tmpl ballcolor.Template, corr search.Corridor, origin shot.Point) *Tracker {
	return &Tracker{cfg: cfg, template: tmpl, corridor: corr, origin: origin}
}

// Track walks the expansion ladder: each level rescans the strike
// window with a wider search region and stricter validation, stopping
// at the first level that yields a track of the target length. If no
// level reaches it, the best partial track found anywhere on the
// ladder is returned with Maxed set.
func (t *Tracker) Track(ctx context.Context, src video.Source, strike time.Duration) (Result, error) {
	var best Result
	for _, lvl := range search.Levels() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		byFrame, err := t.scanLevel(ctx, src, strike, lvl)
		if err != nil {
			return Result{}, err
		}

		th := search.ThresholdsFor(lvl)
		track, ok := bestTrack(byFrame, th.MinDirection, src.FPS(), t.cfg)
		if !ok {
			debug.TrackLog("flight: level %v produced no track\n", lvl)
			continue
		}

		log.Debug("flight track candidate",
			"level", lvl.String(), "points", track.Len(), "confidence", track.Confidence)

		if track.Len() >= t.cfg.TargetTrackPoints {
			return Result{Track: track, Level: lvl, Found: true}, nil
		}
		if !best.Found || track.Confidence > best.Track.Confidence {
			best = Result{Track: track, Level: lvl, Found: true}
		}
	}

	best.Maxed = true
	return best, nil
}

// scanLevel reads the strike window once and extracts per-frame
// detection candidates inside the level's search region.
func (t *Tracker) scanLevel(ctx context.Context, src video.Source, strike time.Duration, lvl search.Level) (map[int][]shot.DetectionCandidate, error) {
	if err := src.SeekTimestamp(strike); err != nil {
		return nil, fmt.Errorf("flight: seek strike: %w", err)
	}

	frameW, frameH := src.Size()
	originPx := image.Pt(int(t.origin.X*float64(frameW)), int(t.origin.Y*float64(frameH)))
	th := search.ThresholdsFor(lvl)

	prevGray := gocv.NewMat()
	defer prevGray.Close()
	gray := gocv.NewMat()
	defer gray.Close()
	hsv := gocv.NewMat()
	defer hsv.Close()

	byFrame := make(map[int][]shot.DetectionCandidate)
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frame, err := src.Next()
		if errors.Is(err, video.ErrEndOfStream) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flight: read frame: %w", err)
		}

		elapsed := (frame.Timestamp - strike).Seconds()
		if elapsed < 0 {
			continue
		}
		if elapsed > t.cfg.Window.Seconds() {
			break
		}

		gocv.CvtColor(frame.Mat, &gray, gocv.ColorBGRToGray)
		if first {
			gray.CopyTo(&prevGray)
			first = false
			continue
		}
		gocv.CvtColor(frame.Mat, &hsv, gocv.ColorBGRToHSV)

		base := t.corridor.BaseRegion(elapsed, frameW, frameH)
		region := search.Region(lvl, base, frameW, frameH, originPx)
		cands := t.detectCandidates(prevGray, gray, hsv, region, frame.Index, elapsed, th)
		if len(cands) > 0 {
			byFrame[frame.Index] = cands
		}

		gray.CopyTo(&prevGray)
	}
	return byFrame, nil
}

// detectCandidates builds a brightness-difference mask against the
// previous frame inside the search region, cleans it with a
// morphological open and close, and scores each ball-sized contour by
// color match and motion intensity.
func (t *Tracker) detectCandidates(prevGray, gray, hsv gocv.Mat, region image.Rectangle, frameIdx int, elapsed float64, th search.Thresholds) []shot.DetectionCandidate {
	if region.Empty() {
		return nil
	}

	prevROI := prevGray.Region(region)
	defer prevROI.Close()
	curROI := gray.Region(region)
	defer curROI.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(prevROI, curROI, &diff)
	gocv.Threshold(diff, &diff, float32(t.cfg.DiffThreshold), 255, gocv.ThresholdBinary)

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(3, 3))
	defer kernel.Close()
	gocv.MorphologyEx(diff, &diff, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(diff, &diff, gocv.MorphClose, kernel)

	contours := gocv.FindContours(diff, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var out []shot.DetectionCandidate
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		area := gocv.ContourArea(c)
		if area < t.cfg.MinContourArea || area > t.cfg.MaxContourArea {
			continue
		}
		r := gocv.BoundingRect(c)

		blob := diff.Region(r)
		motion := blob.Mean().Val1 / 255
		blob.Close()

		// Absolute pixel position of the blob center.
		cx := float64(region.Min.X) + float64(r.Min.X+r.Max.X)/2
		cy := float64(region.Min.Y) + float64(r.Min.Y+r.Max.Y)/2

		px := clampInt(int(cx), 0, hsv.Cols()-1)
		py := clampInt(int(cy), 0, hsv.Rows()-1)
		vec := hsv.GetVecbAt(py, px)
		colorScore := t.template.Score(float64(vec[0]), float64(vec[1]), float64(vec[2]), elapsed)

		if colorScore < th.MinColor || motion < th.MinMotion {
			continue
		}
		out = append(out, shot.DetectionCandidate{
			FrameIdx:    frameIdx,
			Pos:         shot.PixelPoint{X: cx, Y: cy},
			ColorScore:  colorScore,
			MotionScore: motion,
		})
	}
	debug.TrackLog("flight: frame %d elapsed %.2fs region %v -> %d candidates\n",
		frameIdx, elapsed, region, len(out))
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
