package video

import (
	"testing"
	"time"
)

func TestMockSource_BallAt(t *testing.T) {
	cfg := DefaultMockConfig()
	s := &MockSource{cfg: cfg}

	// Before the strike the ball sits on the tee.
	x0, y0 := s.BallAt(0)
	if x0 != cfg.OriginX*float64(cfg.Width) || y0 != cfg.OriginY*float64(cfg.Height) {
		t.Errorf("pre-strike ball at (%v,%v), want the tee", x0, y0)
	}
	xs, ys := s.BallAt(int(cfg.Strike.Seconds() * cfg.FPS))
	if xs != x0 || ys != y0 {
		t.Errorf("ball moved before the strike: (%v,%v)", xs, ys)
	}

	// Shortly after the strike it moves up and to the right.
	x1, y1 := s.BallAt(int(cfg.Strike.Seconds()*cfg.FPS) + 5)
	if x1 <= x0 {
		t.Errorf("ball x = %v, want rightward of %v", x1, x0)
	}
	if y1 >= y0 {
		t.Errorf("ball y = %v, want above %v", y1, y0)
	}

	// Gravity eventually wins: vertical velocity flips sign.
	apexFrame := int((cfg.Strike.Seconds() - cfg.LaunchVY/cfg.Gravity) * cfg.FPS)
	_, yApex := s.BallAt(apexFrame)
	_, yLater := s.BallAt(apexFrame + 20)
	if yLater <= yApex {
		t.Errorf("ball still rising after the apex: %v then %v", yApex, yLater)
	}
}

func TestMockSource_SeekTimestamp(t *testing.T) {
	cfg := DefaultMockConfig()
	s := &MockSource{cfg: cfg}

	if err := s.SeekTimestamp(time.Second); err != nil {
		t.Fatalf("seek: %v", err)
	}
	if s.nextIdx != int(cfg.FPS) {
		t.Errorf("next index = %d, want %d", s.nextIdx, int(cfg.FPS))
	}

	past := time.Duration(float64(cfg.Frames)/cfg.FPS*float64(time.Second)) + time.Second
	if err := s.SeekTimestamp(past); err != ErrSeekOutOfRange {
		t.Errorf("seek past end = %v, want ErrSeekOutOfRange", err)
	}
}
