package origin

import (
	"context"
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"

	"github.com/swingsight/tracer/pkg/debug"
	"github.com/swingsight/tracer/pkg/shot"
	"github.com/swingsight/tracer/pkg/video"
)

// anchor is where the ball is expected at address: the user's origin
// hint when present, otherwise low on the center line for the
// behind-the-golfer camera angle.
func anchor(cons shot.Constraints, frameW, frameH int) shot.PixelPoint {
	if cons.Origin != nil {
		return shot.PixelPoint{
			X: cons.Origin.X * float64(frameW),
			Y: cons.Origin.Y * float64(frameH),
		}
	}
	return shot.PixelPoint{X: 0.5 * float64(frameW), Y: 0.8 * float64(frameH)}
}

func seekRead(src video.Source, ts time.Duration) (video.Frame, error) {
	if ts < 0 {
		ts = 0
	}
	if err := src.SeekTimestamp(ts); err != nil {
		return video.Frame{}, err
	}
	return src.Next()
}

// CircleMethod finds the stationary pre-impact ball as a circle: the
// ball is round and well separated from the ground plane right up to
// the strike, where classifier-style detectors still work.
type CircleMethod struct {
	cfg Config
}

// Name identifies the method.
func (m *CircleMethod) Name() shot.OriginMethod { return shot.OriginMethodCircle }

// Locate runs a Hough circle transform on the blurred pre-impact frame
// and keeps the circle closest to the expected address position.
func (m *CircleMethod) Locate(ctx context.Context, src video.Source, strike time.Duration, cons shot.Constraints) (Candidate, bool, error) {
	frame, err := seekRead(src, strike-m.cfg.PreImpactOffset)
	if err != nil {
		return Candidate{}, false, fmt.Errorf("origin: pre-impact frame: %w", err)
	}
	if frame.Mat.Empty() {
		return Candidate{}, false, fmt.Errorf("origin: empty pre-impact frame")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame.Mat, &gray, gocv.ColorBGRToGray)
	gocv.GaussianBlur(gray, &gray, image.Pt(9, 9), 2, 2, gocv.BorderDefault)

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(gray, &circles, gocv.HoughGradient,
		1.5,                                // accumulator resolution
		float64(m.cfg.MaxBallRadiusPx*4),   // min distance between centers
		100,                                // Canny high threshold
		30,                                 // accumulator threshold
		m.cfg.MinBallRadiusPx,
		m.cfg.MaxBallRadiusPx,
	)

	frameW, frameH := src.Size()
	anch := anchor(cons, frameW, frameH)

	found := false
	var best shot.PixelPoint
	bestDist := 0.0
	for i := 0; i < circles.Cols(); i++ {
		v := circles.GetVecfAt(0, i)
		if len(v) < 3 {
			continue
		}
		p := shot.PixelPoint{X: float64(v[0]), Y: float64(v[1])}
		// Ball at address sits in the lower portion of the frame.
		if p.Y < float64(frameH)/3 {
			continue
		}
		d := p.DistanceTo(anch)
		if !found || d < bestDist {
			found, best, bestDist = true, p, d
		}
	}
	if !found {
		return Candidate{}, false, nil
	}

	debug.TrackLog("origin circle at (%.0f,%.0f), %.0fpx from anchor\n", best.X, best.Y, bestDist)
	return Candidate{Pos: best, Confidence: 0.7, Method: m.Name()}, true, nil
}

// VacancyMethod compares the frame just before the strike with the one
// just after it: the one small bright blob present before and gone
// after is the vacated tee spot.
type VacancyMethod struct {
	cfg Config
}

// Name identifies the method.
func (m *VacancyMethod) Name() shot.OriginMethod { return shot.OriginMethodVacancy }

// Locate diffs pre- and post-impact frames and picks the ball-sized
// changed region closest to the expected address position.
func (m *VacancyMethod) Locate(ctx context.Context, src video.Source, strike time.Duration, cons shot.Constraints) (Candidate, bool, error) {
	pre, err := seekRead(src, strike-m.cfg.PreImpactOffset)
	if err != nil {
		return Candidate{}, false, fmt.Errorf("origin: pre-impact frame: %w", err)
	}
	preGray := gocv.NewMat()
	defer preGray.Close()
	gocv.CvtColor(pre.Mat, &preGray, gocv.ColorBGRToGray)

	post, err := seekRead(src, strike+m.cfg.PostImpactOffset)
	if err != nil {
		return Candidate{}, false, fmt.Errorf("origin: post-impact frame: %w", err)
	}
	postGray := gocv.NewMat()
	defer postGray.Close()
	gocv.CvtColor(post.Mat, &postGray, gocv.ColorBGRToGray)

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(preGray, postGray, &diff)
	gocv.Threshold(diff, &diff, 25, 255, gocv.ThresholdBinary)

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(3, 3))
	defer kernel.Close()
	gocv.MorphologyEx(diff, &diff, gocv.MorphOpen, kernel)

	contours := gocv.FindContours(diff, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	minArea := ballArea(m.cfg.MinBallRadiusPx)
	maxArea := ballArea(m.cfg.MaxBallRadiusPx)
	frameW, frameH := src.Size()
	anch := anchor(cons, frameW, frameH)

	found := false
	var best shot.PixelPoint
	bestDist := 0.0
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		area := gocv.ContourArea(c)
		if area < minArea || area > maxArea {
			continue
		}
		r := gocv.BoundingRect(c)
		p := shot.PixelPoint{
			X: float64(r.Min.X+r.Max.X) / 2,
			Y: float64(r.Min.Y+r.Max.Y) / 2,
		}
		if p.Y < float64(frameH)/2 {
			// Swing motion, not the tee.
			continue
		}
		d := p.DistanceTo(anch)
		if !found || d < bestDist {
			found, best, bestDist = true, p, d
		}
	}
	if !found {
		return Candidate{}, false, nil
	}

	debug.TrackLog("origin vacancy at (%.0f,%.0f), %.0fpx from anchor\n", best.X, best.Y, bestDist)
	return Candidate{Pos: best, Confidence: 0.6, Method: m.Name()}, true, nil
}

// PriorMethod surfaces the user's origin hint as a low-confidence
// fallback so a shot with a marked address position can never fail
// origin detection outright.
type PriorMethod struct{}

// Name identifies the method.
func (m *PriorMethod) Name() shot.OriginMethod { return shot.OriginMethodPrior }

// Locate returns the constraint hint, if any.
func (m *PriorMethod) Locate(ctx context.Context, src video.Source, strike time.Duration, cons shot.Constraints) (Candidate, bool, error) {
	if cons.Origin == nil {
		return Candidate{}, false, nil
	}
	frameW, frameH := src.Size()
	return Candidate{
		Pos:        anchor(cons, frameW, frameH),
		Confidence: 0.5,
		Method:     m.Name(),
	}, true, nil
}

func ballArea(radiusPx int) float64 {
	r := float64(radiusPx)
	return 3.14159 * r * r
}
