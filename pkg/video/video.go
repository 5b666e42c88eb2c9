// Package video defines the frame source contract the tracer pipeline
// reads from, plus a gocv-backed file adapter and a synthetic mock source.
//
// Decoding and seeking belong to the source implementation; the pipeline
// only ever performs bounded sequential reads after a seek.
package video

import (
	"errors"
	"time"

	"gocv.io/x/gocv"
)

// Sentinel errors for the video package.
var (
	// ErrEndOfStream is returned by Next when no more frames are available.
	ErrEndOfStream = errors.New("video: end of stream")

	// ErrSourceClosed is returned when reading from a closed source.
	ErrSourceClosed = errors.New("video: source closed")

	// ErrSeekOutOfRange is returned when seeking past the end of the video.
	ErrSeekOutOfRange = errors.New("video: seek out of range")
)

// Frame is one decoded video frame. The Mat is owned by the source and
// is only valid until the next call to Next; callers needing to keep
// pixels must Clone.
type Frame struct {
	Index     int
	Timestamp time.Duration
	Mat       gocv.Mat
}

// Source is a seekable sequential frame supplier.
//
// Implementations are not safe for concurrent use; the pipeline reads
// from a single goroutine.
type Source interface {
	// SeekTimestamp positions the source so the next read returns the
	// frame at or immediately after ts.
	SeekTimestamp(ts time.Duration) error

	// Next returns the next frame, or ErrEndOfStream.
	Next() (Frame, error)

	// FPS returns the nominal frame rate.
	FPS() float64

	// Size returns frame dimensions in pixels.
	Size() (width, height int)

	// Close releases decoder resources.
	Close() error
}
