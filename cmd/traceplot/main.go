// Command traceplot fits a trajectory from a constraints file and
// renders it to a PNG, without touching any video. Useful for tuning
// the fitter against marked-up shots.
//
// The constraints file is JSON:
//
//	{"landing": {"x": 0.72, "y": 0.81}, "shape": "fade", "height": "high"}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/swingsight/tracer/internal/config"
	"github.com/swingsight/tracer/internal/log"
	"github.com/swingsight/tracer/pkg/shot"
	"github.com/swingsight/tracer/pkg/tracer/curve"
)

func main() {
	consPath := flag.String("constraints", "", "constraints JSON file")
	originStr := flag.String("origin", "0.5,0.85", "origin point as x,y in [0,1]")
	out := flag.String("out", "trace.png", "output PNG file")
	flag.Parse()

	log.Init(config.LogLevel())

	if *consPath == "" {
		fmt.Fprintln(os.Stderr, "❌ -constraints is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*consPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	var cons shot.Constraints
	if err := json.Unmarshal(data, &cons); err != nil {
		fmt.Fprintf(os.Stderr, "❌ parse constraints: %v\n", err)
		os.Exit(1)
	}

	var origin shot.Point
	if _, err := fmt.Sscanf(*originStr, "%f,%f", &origin.X, &origin.Y); err != nil {
		fmt.Fprintf(os.Stderr, "❌ bad -origin: %v\n", err)
		os.Exit(1)
	}

	traj, err := curve.NewFitter(curve.DefaultConfig()).Fit(cons, origin, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ fit: %v\n", err)
		os.Exit(1)
	}

	if err := renderPlot(traj, *out); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ %d points, apex (%.3f, %.3f) at %.2fs -> %s\n",
		len(traj.Points), traj.Apex.Pos.X, traj.Apex.Pos.Y, traj.Apex.Timestamp, *out)
}

// renderPlot draws the trajectory in screen orientation: normalized
// image coordinates grow downward, so y is flipped for the plot.
func renderPlot(traj shot.Trajectory, out string) error {
	p := plot.New()
	p.Title.Text = "Ball flight"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "height"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	xys := make(plotter.XYs, len(traj.Points))
	for i, pt := range traj.Points {
		xys[i].X = pt.Pos.X
		xys[i].Y = 1 - pt.Pos.Y
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("build line: %w", err)
	}
	p.Add(line)

	apex, err := plotter.NewScatter(plotter.XYs{{X: traj.Apex.Pos.X, Y: 1 - traj.Apex.Pos.Y}})
	if err != nil {
		return fmt.Errorf("build apex marker: %w", err)
	}
	p.Add(apex)

	if err := p.Save(8*vg.Inch, 4.5*vg.Inch, out); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
