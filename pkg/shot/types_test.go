package shot

import (
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	a := Point{X: 0.1, Y: 0.2}
	b := Point{X: 0.4, Y: 0.6}
	if got := a.DistanceTo(b); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("distance = %v, want 0.5", got)
	}
	if got := a.DistanceTo(a); got != 0 {
		t.Errorf("self distance = %v", got)
	}
}

func TestPixelPointNormalize(t *testing.T) {
	p := PixelPoint{X: 640, Y: 180}
	got := p.Normalize(1280, 720)
	if got.X != 0.5 || got.Y != 0.25 {
		t.Errorf("normalized = %+v", got)
	}
}

func TestTrajectoryPointsUntil(t *testing.T) {
	tr := Trajectory{Points: []TrajectoryPoint{
		{Timestamp: 0.0},
		{Timestamp: 0.5},
		{Timestamp: 1.0},
		{Timestamp: 1.5},
	}}

	if got := len(tr.PointsUntil(-1)); got != 0 {
		t.Errorf("prefix before start has %d points", got)
	}
	if got := len(tr.PointsUntil(0.5)); got != 2 {
		t.Errorf("prefix at 0.5s has %d points, want 2", got)
	}
	if got := len(tr.PointsUntil(10)); got != 4 {
		t.Errorf("prefix past end has %d points, want all 4", got)
	}

	// Always a prefix: element i of the slice is element i of the full set.
	pre := tr.PointsUntil(1.0)
	for i := range pre {
		if pre[i] != tr.Points[i] {
			t.Fatalf("prefix diverges at %d", i)
		}
	}
}

func TestTrajectoryDuration(t *testing.T) {
	if got := (Trajectory{}).Duration(); got != 0 {
		t.Errorf("empty duration = %v", got)
	}
	tr := Trajectory{Points: []TrajectoryPoint{{Timestamp: 0}, {Timestamp: 2.6}}}
	if got := tr.Duration(); got != 2.6 {
		t.Errorf("duration = %v, want 2.6", got)
	}
}

func TestConstraintsWithDefaults(t *testing.T) {
	c := Constraints{}.WithDefaults()
	if c.Shape != ShapeStraight || c.StartLine != StartStraight || c.Height != HeightMedium {
		t.Errorf("defaults = %+v", c)
	}

	c = Constraints{Shape: ShapeHook, Height: HeightHigh}.WithDefaults()
	if c.Shape != ShapeHook || c.Height != HeightHigh {
		t.Error("explicit values overwritten")
	}
}

func TestShapeCurvatureOrdering(t *testing.T) {
	shapes := []ShotShape{ShapeHook, ShapeDraw, ShapeStraight, ShapeFade, ShapeSlice}
	for i := 1; i < len(shapes); i++ {
		if shapes[i].CurvatureOffset() <= shapes[i-1].CurvatureOffset() {
			t.Errorf("curvature not increasing at %v", shapes[i])
		}
	}
	if ShapeStraight.CurvatureOffset() != 0 {
		t.Error("straight shot should not curve")
	}
}
