package tracer

import "github.com/google/uuid"

// WarningCode classifies a non-fatal pipeline condition. Warnings never
// stop trajectory generation; they tell the UI what quality to expect.
type WarningCode string

const (
	// WarnLowConfidenceOrigin means the origin came from a single
	// method instead of a consensus.
	WarnLowConfidenceOrigin WarningCode = "low_confidence_origin"

	// WarnNoEarlyDetection means no ball was found after impact and the
	// fit runs on default launch parameters.
	WarnNoEarlyDetection WarningCode = "no_early_detection"

	// WarnExpansionMaxed means the search ladder was exhausted before a
	// full-length track formed and a partial track is in use.
	WarnExpansionMaxed WarningCode = "expansion_maxed"
)

// Warning is one non-fatal condition raised during generation.
type Warning struct {
	Code    WarningCode
	Message string
}

// EventType discriminates events on the sink.
type EventType string

const (
	EventState    EventType = "state"
	EventProgress EventType = "progress"
	EventWarning  EventType = "warning"
)

// Event is one progress notification for a shot. State is set for
// EventState, Percent and Message for EventProgress, Warning for
// EventWarning.
type Event struct {
	Shot    uuid.UUID
	Type    EventType
	State   State
	Percent int
	Message string
	Warning *Warning
}

// Sink receives events synchronously on the goroutine running Generate.
// A nil sink drops everything. Sinks must not call back into the Tracer.
type Sink func(Event)
