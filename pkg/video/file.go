package video

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"
)

// FileSource reads frames from a video file through gocv.VideoCapture.
type FileSource struct {
	capture *gocv.VideoCapture
	buf     gocv.Mat
	fps     float64
	width   int
	height  int
	nextIdx int
	closed  bool
}

// OpenFile opens a video file for sequential reading.
// fpsOverride replaces the container-reported rate when > 0.
func OpenFile(path string, fpsOverride float64) (*FileSource, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("video: open %s: %w", path, err)
	}

	fps := capture.Get(gocv.VideoCaptureFPS)
	if fpsOverride > 0 {
		fps = fpsOverride
	}
	if fps <= 0 {
		fps = 30
	}

	return &FileSource{
		capture: capture,
		buf:     gocv.NewMat(),
		fps:     fps,
		width:   int(capture.Get(gocv.VideoCaptureFrameWidth)),
		height:  int(capture.Get(gocv.VideoCaptureFrameHeight)),
	}, nil
}

// SeekTimestamp repositions the decoder to the frame at or after ts.
func (s *FileSource) SeekTimestamp(ts time.Duration) error {
	if s.closed {
		return ErrSourceClosed
	}
	frame := int(ts.Seconds() * s.fps)
	total := int(s.capture.Get(gocv.VideoCaptureFrameCount))
	if total > 0 && frame >= total {
		return ErrSeekOutOfRange
	}
	s.capture.Set(gocv.VideoCapturePosFrames, float64(frame))
	s.nextIdx = frame
	return nil
}

// Next decodes and returns the next frame. The returned Mat is reused
// across calls; Clone before holding on to it.
func (s *FileSource) Next() (Frame, error) {
	if s.closed {
		return Frame{}, ErrSourceClosed
	}
	if ok := s.capture.Read(&s.buf); !ok || s.buf.Empty() {
		return Frame{}, ErrEndOfStream
	}
	idx := s.nextIdx
	s.nextIdx++
	return Frame{
		Index:     idx,
		Timestamp: time.Duration(float64(idx) / s.fps * float64(time.Second)),
		Mat:       s.buf,
	}, nil
}

// FPS returns the nominal frame rate.
func (s *FileSource) FPS() float64 { return s.fps }

// Size returns frame dimensions in pixels.
func (s *FileSource) Size() (int, int) { return s.width, s.height }

// Close releases the capture and the frame buffer.
func (s *FileSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.buf.Close()
	return s.capture.Close()
}
