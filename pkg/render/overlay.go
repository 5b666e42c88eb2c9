// Package render draws the tracer overlay onto video frames: the
// trajectory polyline grown up to the current playback time, a fading
// tail behind the head, and an apex marker once the ball has passed it.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/swingsight/tracer/pkg/shot"
)

// Config holds the overlay appearance.
type Config struct {
	LineColor color.RGBA
	ApexColor color.RGBA

	// Thickness is the polyline stroke width in pixels.
	Thickness int

	// TailFade is how many segments behind the head fade toward
	// MinFade. Zero disables fading.
	TailFade int
	MinFade  float64

	// ApexRadiusPx is the apex marker radius.
	ApexRadiusPx int
	MarkApex     bool
}

// DefaultConfig returns the stock red tracer look.
func DefaultConfig() Config {
	return Config{
		LineColor:    color.RGBA{R: 255, G: 60, B: 60, A: 255},
		ApexColor:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Thickness:    3,
		TailFade:     20,
		MinFade:      0.35,
		ApexRadiusPx: 6,
		MarkApex:     true,
	}
}

// Overlay paints one trajectory. Stateless; safe to share across frames.
type Overlay struct {
	cfg Config
}

// NewOverlay creates an overlay painter.
func NewOverlay(cfg Config) *Overlay {
	return &Overlay{cfg: cfg}
}

// Draw paints the trajectory prefix up to elapsed seconds onto img.
// img must be a BGR frame matching the coordinate space the trajectory
// was normalized against.
func (o *Overlay) Draw(img *gocv.Mat, traj shot.Trajectory, elapsed float64) {
	pts := traj.PointsUntil(elapsed)
	if len(pts) < 2 {
		return
	}
	w, h := img.Cols(), img.Rows()

	for i := 1; i < len(pts); i++ {
		f := fadeFactor(len(pts)-1-i, o.cfg.TailFade, o.cfg.MinFade)
		gocv.Line(img,
			toPixel(pts[i-1].Pos, w, h),
			toPixel(pts[i].Pos, w, h),
			scaleColor(o.cfg.LineColor, f),
			o.cfg.Thickness)
	}

	if o.cfg.MarkApex && elapsed >= traj.Apex.Timestamp {
		gocv.Circle(img, toPixel(traj.Apex.Pos, w, h), o.cfg.ApexRadiusPx, o.cfg.ApexColor, 2)
	}
}

// fadeFactor maps a segment's distance behind the polyline head to a
// brightness multiplier: 1 at the head, easing down to minFade over
// fadeLen segments.
func fadeFactor(distFromHead, fadeLen int, minFade float64) float64 {
	if fadeLen <= 0 || distFromHead <= 0 {
		return 1
	}
	if distFromHead >= fadeLen {
		return minFade
	}
	return 1 - (1-minFade)*float64(distFromHead)/float64(fadeLen)
}

func scaleColor(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

func toPixel(p shot.Point, w, h int) image.Point {
	return image.Pt(int(p.X*float64(w)), int(p.Y*float64(h)))
}
