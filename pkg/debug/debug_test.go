package debug

import (
	"bytes"
	"os"
	"testing"
)

func TestLogRespectsFlags(t *testing.T) {
	var buf bytes.Buffer
	out = &buf
	defer func() {
		out = os.Stdout
		Enabled = false
		Tracking = false
	}()

	Enabled = false
	Log("hidden %d\n", 1)
	if buf.Len() != 0 {
		t.Errorf("disabled Log wrote %q", buf.String())
	}

	Enabled = true
	Log("shown %d\n", 2)
	if buf.String() != "shown 2\n" {
		t.Errorf("enabled Log wrote %q", buf.String())
	}
}

func TestTrackLogRespectsFlags(t *testing.T) {
	var buf bytes.Buffer
	out = &buf
	defer func() {
		out = os.Stdout
		Enabled = false
		Tracking = false
	}()

	// Tracking logs are gated on their own flag, not the general one.
	Enabled = true
	Tracking = false
	TrackLog("hidden\n")
	if buf.Len() != 0 {
		t.Errorf("disabled TrackLog wrote %q", buf.String())
	}

	Tracking = true
	TrackLog("frame %d\n", 7)
	if buf.String() != "frame 7\n" {
		t.Errorf("enabled TrackLog wrote %q", buf.String())
	}
}
