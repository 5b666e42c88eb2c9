// Command tracer recovers a ball flight from a golf swing video and
// writes a copy with the tracer overlay burned in.
//
// Usage:
//
//	tracer -video swing.mp4 -strike 1.2 -landing 0.72,0.81 -out traced.mp4
//	tracer -demo -out traced.mp4
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"gocv.io/x/gocv"

	"github.com/swingsight/tracer/internal/config"
	"github.com/swingsight/tracer/internal/log"
	"github.com/swingsight/tracer/pkg/debug"
	"github.com/swingsight/tracer/pkg/render"
	"github.com/swingsight/tracer/pkg/shot"
	"github.com/swingsight/tracer/pkg/tracer"
	"github.com/swingsight/tracer/pkg/video"
)

func main() {
	videoPath := flag.String("video", "", "input video file")
	strikeSec := flag.Float64("strike", 0, "strike time in seconds")
	landing := flag.String("landing", "", "landing point as x,y in [0,1]")
	apex := flag.String("apex", "", "optional apex point as x,y in [0,1]")
	origin := flag.String("origin", "", "optional ball position hint as x,y in [0,1]")
	shape := flag.String("shape", "", "shot shape: hook, draw, straight, fade, slice")
	startLine := flag.String("start", "", "starting line: left, straight, right")
	height := flag.String("height", "", "shot height: low, medium, high")
	flightSec := flag.Float64("flight", 0, "flight time in seconds, 0 derives it")
	out := flag.String("out", "traced.mp4", "output video file")
	demo := flag.Bool("demo", false, "run on a synthetic swing instead of a file")
	dbg := flag.Bool("debug", false, "enable debug logging")
	dbgTracking := flag.Bool("debug-tracking", false, "enable very verbose per-frame tracking logs")
	flag.Parse()

	debug.Enabled = *dbg || config.DebugEnabled()
	debug.Tracking = *dbgTracking
	level := config.LogLevel()
	if debug.Enabled {
		level = "debug"
	}
	log.Init(level)

	src, strike, cons, err := setup(*videoPath, *strikeSec, *demo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	if err := applyFlags(&cons, *landing, *apex, *origin, *shape, *startLine, *height, *flightSec); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if !cons.HasLanding() {
		fmt.Fprintln(os.Stderr, "❌ -landing is required (or -demo)")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Interrupted")
		cancel()
	}()

	tr := tracer.New(tracer.DefaultConfig(), src, strike)
	tr.SetConstraints(cons)
	tr.SetSink(func(e tracer.Event) {
		switch e.Type {
		case tracer.EventProgress:
			fmt.Printf("⏳ %3d%% %s\n", e.Percent, e.Message)
		case tracer.EventWarning:
			fmt.Printf("⚠️  %s: %s\n", e.Warning.Code, e.Warning.Message)
		}
	})

	traj, _, err := tr.Generate(ctx)
	if err != nil {
		var fatal *tracer.FatalError
		if errors.As(err, &fatal) {
			fmt.Fprintf(os.Stderr, "❌ %s\n   hint: %s\n", fatal.Message, fatal.Hint)
		} else {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("✅ Trajectory: %d points, apex at %.2fs, method %s\n",
		len(traj.Points), traj.Apex.Timestamp, traj.Method)

	if err := writeOverlay(ctx, src, strike, traj, *out); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Saved to: %s\n", *out)
}

func setup(path string, strikeSec float64, demo bool) (video.Source, time.Duration, shot.Constraints, error) {
	if demo {
		cfg := video.DefaultMockConfig()
		landing := shot.Point{X: 0.78, Y: 0.80}
		cons := shot.Constraints{Landing: &landing}
		return video.NewMockSource(cfg), cfg.Strike, cons, nil
	}
	if path == "" {
		return nil, 0, shot.Constraints{}, errors.New("-video is required (or -demo)")
	}
	src, err := video.OpenFile(path, config.FPSOverride())
	if err != nil {
		return nil, 0, shot.Constraints{}, err
	}
	return src, time.Duration(strikeSec * float64(time.Second)), shot.Constraints{}, nil
}

func applyFlags(cons *shot.Constraints, landing, apex, origin, shape, startLine, height string, flightSec float64) error {
	if landing != "" {
		p, err := parsePoint(landing)
		if err != nil {
			return fmt.Errorf("bad -landing: %w", err)
		}
		cons.Landing = &p
	}
	if apex != "" {
		p, err := parsePoint(apex)
		if err != nil {
			return fmt.Errorf("bad -apex: %w", err)
		}
		cons.Apex = &p
	}
	if origin != "" {
		p, err := parsePoint(origin)
		if err != nil {
			return fmt.Errorf("bad -origin: %w", err)
		}
		cons.Origin = &p
	}
	cons.Shape = shot.ShotShape(shape)
	cons.StartLine = shot.StartingLine(startLine)
	cons.Height = shot.ShotHeight(height)
	cons.FlightTime = flightSec
	return nil
}

func parsePoint(s string) (shot.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return shot.Point{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return shot.Point{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return shot.Point{}, err
	}
	if x < 0 || x > 1 || y < 0 || y > 1 {
		return shot.Point{}, fmt.Errorf("coordinates must be in [0,1], got %q", s)
	}
	return shot.Point{X: x, Y: y}, nil
}

// writeOverlay replays the video from the start and burns the tracer
// into every frame after the strike.
func writeOverlay(ctx context.Context, src video.Source, strike time.Duration, traj shot.Trajectory, out string) error {
	w, h := src.Size()
	writer, err := gocv.VideoWriterFile(out, "avc1", src.FPS(), w, h, true)
	if err != nil {
		return fmt.Errorf("open writer: %w", err)
	}
	defer writer.Close()

	overlay := render.NewOverlay(render.DefaultConfig())

	if err := src.SeekTimestamp(0); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	frames := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := src.Next()
		if errors.Is(err, video.ErrEndOfStream) {
			break
		}
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		elapsed := (frame.Timestamp - strike).Seconds()
		if elapsed > 0 {
			overlay.Draw(&frame.Mat, traj, elapsed)
		}
		if err := writer.Write(frame.Mat); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		frames++
	}
	log.Debug("overlay written", "frames", frames, "out", out)
	return nil
}
