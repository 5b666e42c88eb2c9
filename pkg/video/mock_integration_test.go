//go:build integration

package video

import (
	"errors"
	"testing"
	"time"
)

func TestMockSource_FramesAndTimestamps(t *testing.T) {
	cfg := DefaultMockConfig()
	s := NewMockSource(cfg)
	defer s.Close()

	var prev time.Duration = -1
	frames := 0
	for {
		f, err := s.Next()
		if errors.Is(err, ErrEndOfStream) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if f.Timestamp <= prev {
			t.Fatalf("timestamp %v not after %v at frame %d", f.Timestamp, prev, f.Index)
		}
		if f.Mat.Cols() != cfg.Width || f.Mat.Rows() != cfg.Height {
			t.Fatalf("frame size %dx%d", f.Mat.Cols(), f.Mat.Rows())
		}
		prev = f.Timestamp
		frames++
	}
	if frames != cfg.Frames {
		t.Errorf("decoded %d frames, want %d", frames, cfg.Frames)
	}

	// The gap between consecutive frames is one FPS tick.
	want := time.Duration(float64(time.Second) / cfg.FPS)
	if err := s.SeekTimestamp(0); err != nil {
		t.Fatalf("rewind: %v", err)
	}
	a, _ := s.Next()
	b, _ := s.Next()
	if gap := b.Timestamp - a.Timestamp; gap != want {
		t.Errorf("frame gap = %v, want %v", gap, want)
	}
}
