// Package debug provides global debug logging flags
package debug

import (
	"fmt"
	"io"
	"os"
)

// Enabled controls whether debug logging is active
var Enabled bool

// Tracking controls whether verbose per-frame tracking logs are shown
// (candidates, continuation scores, ladder transitions).
// Use --debug-tracking flag to enable these very verbose logs
var Tracking bool

// out is swappable so tests can capture the output.
var out io.Writer = os.Stdout

// Log prints a message only if debug mode is enabled
func Log(format string, args ...interface{}) {
	if Enabled {
		fmt.Fprintf(out, format, args...)
	}
}

// TrackLog prints a message only if tracking debug mode is enabled
func TrackLog(format string, args ...interface{}) {
	if Tracking {
		fmt.Fprintf(out, format, args...)
	}
}
