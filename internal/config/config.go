// Package config provides configuration helpers for tracer commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for CLI tools.
const (
	DefaultLogLevel = "info"
	DefaultFPS      = 30.0
)

// LogLevel returns the log level from TRACER_LOG env var.
// Falls back to DefaultLogLevel if not set.
func LogLevel() string {
	if lvl := os.Getenv("TRACER_LOG"); lvl != "" {
		return lvl
	}
	return DefaultLogLevel
}

// FPSOverride returns the frame rate from TRACER_FPS env var, for
// videos whose container reports a bogus rate. Returns 0 if not set.
func FPSOverride() float64 {
	v := os.Getenv("TRACER_FPS")
	if v == "" {
		return 0
	}
	fps, err := strconv.ParseFloat(v, 64)
	if err != nil || fps <= 0 {
		return 0
	}
	return fps
}

// DebugEnabled reports whether TRACER_DEBUG is set.
func DebugEnabled() bool {
	return os.Getenv("TRACER_DEBUG") != ""
}
