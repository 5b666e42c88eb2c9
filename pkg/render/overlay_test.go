package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/swingsight/tracer/pkg/shot"
)

func TestFadeFactor(t *testing.T) {
	if got := fadeFactor(0, 20, 0.35); got != 1 {
		t.Errorf("head factor = %v, want 1", got)
	}
	if got := fadeFactor(20, 20, 0.35); got != 0.35 {
		t.Errorf("tail factor = %v, want 0.35", got)
	}
	if got := fadeFactor(40, 20, 0.35); got != 0.35 {
		t.Errorf("beyond-tail factor = %v, want clamp at 0.35", got)
	}
	if got := fadeFactor(5, 0, 0.35); got != 1 {
		t.Errorf("fading disabled, factor = %v, want 1", got)
	}

	prev := fadeFactor(0, 20, 0.35)
	for d := 1; d <= 20; d++ {
		f := fadeFactor(d, 20, 0.35)
		if f > prev {
			t.Fatalf("fade factor rises at distance %d", d)
		}
		prev = f
	}
}

func TestScaleColor(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	half := scaleColor(c, 0.5)
	if half.R != 100 || half.G != 50 || half.B != 25 {
		t.Errorf("scaled = %+v", half)
	}
	if half.A != 255 {
		t.Error("alpha should not fade")
	}
}

func TestToPixel(t *testing.T) {
	got := toPixel(shot.Point{X: 0.5, Y: 0.25}, 1280, 720)
	if got != image.Pt(640, 180) {
		t.Errorf("toPixel = %v, want (640,180)", got)
	}
}
