package tracer

import (
	"errors"
	"fmt"

	"github.com/swingsight/tracer/pkg/tracer/curve"
	"github.com/swingsight/tracer/pkg/tracer/origin"
)

// ErrLandingRequired is returned by Generate when the constraint set
// has no landing point. Nothing runs without one.
var ErrLandingRequired = errors.New("tracer: landing constraint required")

// Stage sentinels re-exported so callers can match failures with
// errors.Is without importing the stage packages.
var (
	ErrOriginNotFound = origin.ErrNotFound
	ErrDegenerateFit  = curve.ErrDegenerate
)

// Fatal error codes, stable across releases for UI dispatch.
const (
	CodeOriginNotFound = "origin_not_found"
	CodeDegenerateFit  = "degenerate_fit"
)

// FatalError is a pipeline failure the caller must surface to the user.
// Code is stable for programmatic dispatch, Hint is the suggested
// recovery action.
type FatalError struct {
	Code    string
	Message string
	Hint    string
	Err     error
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tracer: %s: %v", e.Message, e.Err)
	}
	return "tracer: " + e.Message
}

func (e *FatalError) Unwrap() error { return e.Err }
