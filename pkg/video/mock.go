package video

import (
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"
)

// MockConfig controls the synthetic shot rendered by MockSource.
type MockConfig struct {
	Width    int
	Height   int
	FPS      float64
	Frames   int
	BallR    int        // ball radius in pixels
	BallHue  color.RGBA // ball color (BGR order handled internally)
	Strike   time.Duration
	OriginX  float64 // normalized
	OriginY  float64
	LaunchVX float64 // normalized frame widths per second
	LaunchVY float64 // negative is upward
	Gravity  float64 // normalized frame heights per second^2
}

// DefaultMockConfig returns a 720p synthetic shot: white ball launched
// up-and-right at 0.5s, decelerating under gravity.
func DefaultMockConfig() MockConfig {
	return MockConfig{
		Width:    1280,
		Height:   720,
		FPS:      30,
		Frames:   120,
		BallR:    7,
		BallHue:  color.RGBA{R: 250, G: 250, B: 250, A: 255},
		Strike:   500 * time.Millisecond,
		OriginX:  0.50,
		OriginY:  0.85,
		LaunchVX: 0.10,
		LaunchVY: -0.55,
		Gravity:  0.35,
	}
}

// MockSource renders a deterministic moving ball on a flat background.
// It exists for integration tests and the CLI demo mode, so the full
// pipeline can run without a real recording.
type MockSource struct {
	cfg     MockConfig
	buf     gocv.Mat
	nextIdx int
	closed  bool
}

// NewMockSource creates a synthetic source.
func NewMockSource(cfg MockConfig) *MockSource {
	return &MockSource{
		cfg: cfg,
		buf: gocv.NewMatWithSize(cfg.Height, cfg.Width, gocv.MatTypeCV8UC3),
	}
}

// BallAt returns the ball center in pixels at frame idx.
func (s *MockSource) BallAt(idx int) (float64, float64) {
	t := float64(idx)/s.cfg.FPS - s.cfg.Strike.Seconds()
	if t <= 0 {
		return s.cfg.OriginX * float64(s.cfg.Width), s.cfg.OriginY * float64(s.cfg.Height)
	}
	x := s.cfg.OriginX + s.cfg.LaunchVX*t
	y := s.cfg.OriginY + s.cfg.LaunchVY*t + 0.5*s.cfg.Gravity*t*t
	return x * float64(s.cfg.Width), y * float64(s.cfg.Height)
}

// SeekTimestamp repositions the synthetic clock.
func (s *MockSource) SeekTimestamp(ts time.Duration) error {
	if s.closed {
		return ErrSourceClosed
	}
	frame := int(ts.Seconds() * s.cfg.FPS)
	if frame >= s.cfg.Frames {
		return ErrSeekOutOfRange
	}
	s.nextIdx = frame
	return nil
}

// Next renders and returns the next synthetic frame.
func (s *MockSource) Next() (Frame, error) {
	if s.closed {
		return Frame{}, ErrSourceClosed
	}
	if s.nextIdx >= s.cfg.Frames {
		return Frame{}, ErrEndOfStream
	}

	// Flat mid-green background, ball drawn on top.
	s.buf.SetTo(gocv.NewScalar(60, 140, 70, 0))
	bx, by := s.BallAt(s.nextIdx)
	if by > 0 && by < float64(s.cfg.Height) {
		gocv.Circle(&s.buf, image.Pt(int(bx), int(by)), s.cfg.BallR, s.cfg.BallHue, -1)
	}

	idx := s.nextIdx
	s.nextIdx++
	return Frame{
		Index:     idx,
		Timestamp: time.Duration(float64(idx) / s.cfg.FPS * float64(time.Second)),
		Mat:       s.buf,
	}, nil
}

// FPS returns the synthetic frame rate.
func (s *MockSource) FPS() float64 { return s.cfg.FPS }

// Size returns synthetic frame dimensions.
func (s *MockSource) Size() (int, int) { return s.cfg.Width, s.cfg.Height }

// Close releases the frame buffer.
func (s *MockSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.buf.Close()
	return nil
}
