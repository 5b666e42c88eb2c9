package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/swingsight/tracer/pkg/shot"
)

func TestFit_ScenarioA_LandingConstrained(t *testing.T) {
	origin := shot.Point{X: 0.50, Y: 0.85}
	landing := shot.Point{X: 0.65, Y: 0.82}
	cons := shot.Constraints{Landing: &landing, Height: shot.HeightMedium}

	tr, err := NewFitter(DefaultConfig()).Fit(cons, origin, nil)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if len(tr.Points) < 60 {
		t.Errorf("points = %d, want >= 60", len(tr.Points))
	}
	if tr.Method != shot.FitLandingConstrained {
		t.Errorf("method = %v, want landing_constrained", tr.Method)
	}

	first := tr.Points[0].Pos
	if math.Abs(first.X-origin.X) > 1e-3 || math.Abs(first.Y-origin.Y) > 1e-3 {
		t.Errorf("first point %+v, want origin %+v", first, origin)
	}
	last := tr.Points[len(tr.Points)-1].Pos
	if last != landing {
		t.Errorf("last point %+v, want landing exactly %+v", last, landing)
	}

	if tr.Apex.Pos.Y >= landing.Y || tr.Apex.Pos.Y >= origin.Y {
		t.Errorf("apex y = %v, want strictly above both endpoints", tr.Apex.Pos.Y)
	}
	if tr.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", tr.Confidence)
	}
}

func TestFit_ScenarioB_ApexConstrained(t *testing.T) {
	origin := shot.Point{X: 0.5, Y: 0.9}
	apex := shot.Point{X: 0.52, Y: 0.15}
	landing := shot.Point{X: 0.7, Y: 0.85}
	cons := shot.Constraints{Landing: &landing, Apex: &apex, FlightTime: 3.0}

	tr, err := NewFitter(DefaultConfig()).Fit(cons, origin, nil)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if len(tr.Points) < 90 {
		t.Errorf("points = %d, want >= 90", len(tr.Points))
	}
	if tr.Method != shot.FitApexConstrained {
		t.Errorf("method = %v, want apex_constrained", tr.Method)
	}

	// Split at apex time ~1.35s: ~41 ascending, ~50 descending samples.
	split := 0.45 * 3.0
	ascending := 0
	for _, p := range tr.Points {
		if p.Timestamp <= split {
			ascending++
		}
	}
	descending := len(tr.Points) - ascending
	if ascending < 40 || ascending > 42 {
		t.Errorf("ascending samples = %d, want 41 +/- 1", ascending)
	}
	if descending < 49 || descending > 51 {
		t.Errorf("descending samples = %d, want 50 +/- 1", descending)
	}

	// With the default split the minimum-y sample sits near the marked
	// apex. Larger deviations are a documented limitation of the fixed
	// bias constants, not exercised here.
	if math.Abs(tr.Apex.Pos.Y-apex.Y) > 0.02 {
		t.Errorf("actual apex y = %v, want near marked %v", tr.Apex.Pos.Y, apex.Y)
	}
	if math.Abs(tr.Apex.Pos.X-apex.X) > 0.05 {
		t.Errorf("actual apex x = %v, want near marked %v", tr.Apex.Pos.X, apex.X)
	}
}

func TestFit_RequiresLanding(t *testing.T) {
	_, err := NewFitter(DefaultConfig()).Fit(shot.Constraints{}, shot.Point{X: 0.5, Y: 0.85}, nil)
	if err == nil {
		t.Fatal("Fit without landing should fail")
	}
}

func TestFit_NonFiniteGeometryIsDegenerate(t *testing.T) {
	f := NewFitter(DefaultConfig())
	origin := shot.Point{X: 0.5, Y: 0.85}
	good := shot.Point{X: 0.7, Y: 0.8}

	cases := []struct {
		name   string
		origin shot.Point
		cons   shot.Constraints
	}{
		{
			name:   "nan landing",
			origin: origin,
			cons:   shot.Constraints{Landing: &shot.Point{X: math.NaN(), Y: 0.8}},
		},
		{
			name:   "inf landing",
			origin: origin,
			cons:   shot.Constraints{Landing: &shot.Point{X: math.Inf(1), Y: 0.8}},
		},
		{
			name:   "nan origin",
			origin: shot.Point{X: 0.5, Y: math.NaN()},
			cons:   shot.Constraints{Landing: &good},
		},
		{
			name:   "nan apex",
			origin: origin,
			cons:   shot.Constraints{Landing: &good, Apex: &shot.Point{X: 0.6, Y: math.NaN()}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Must return the sentinel, never panic: a bad marker placement
			// is a recoverable user input, not a crash.
			_, err := f.Fit(tc.cons, tc.origin, nil)
			if !errors.Is(err, ErrDegenerate) {
				t.Fatalf("err = %v, want ErrDegenerate", err)
			}
		})
	}
}

func TestFit_TimestampsNonDecreasing(t *testing.T) {
	landing := shot.Point{X: 0.8, Y: 0.8}
	cons := shot.Constraints{Landing: &landing}

	tr, err := NewFitter(DefaultConfig()).Fit(cons, shot.Point{X: 0.3, Y: 0.9}, nil)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	for i := 1; i < len(tr.Points); i++ {
		if tr.Points[i].Timestamp < tr.Points[i-1].Timestamp {
			t.Fatalf("timestamps decrease at %d", i)
		}
	}
}

func TestFlightTime_ScalesWithTravelAndClamps(t *testing.T) {
	f := NewFitter(DefaultConfig())
	origin := shot.Point{X: 0.1, Y: 0.9}

	short := shot.Point{X: 0.1, Y: 0.85}
	far := shot.Point{X: 0.99, Y: 0.85}

	tShort := f.FlightTime(shot.Constraints{Landing: &short}, origin)
	if tShort != 2.0 {
		t.Errorf("zero-travel flight time = %v, want floor 2.0", tShort)
	}

	tFar := f.FlightTime(shot.Constraints{Landing: &far}, origin)
	if tFar <= tShort {
		t.Errorf("flight time should grow with travel: %v vs %v", tFar, tShort)
	}
	if tFar > 5.0 {
		t.Errorf("flight time %v exceeds clamp", tFar)
	}

	explicit := f.FlightTime(shot.Constraints{Landing: &far, FlightTime: 9}, origin)
	if explicit != 5.0 {
		t.Errorf("explicit flight time should clamp to 5.0, got %v", explicit)
	}
}

func TestApexTimeRatio_FromLaunchEvidence(t *testing.T) {
	f := NewFitter(DefaultConfig())

	if got := f.apexTimeRatio(nil); got != 0.42 {
		t.Errorf("default ratio = %v, want 0.42", got)
	}

	flat := &shot.ValidatedTrack{
		Points:      make([]shot.DetectionCandidate, 5),
		LaunchAngle: 10,
	}
	steep := &shot.ValidatedTrack{
		Points:      make([]shot.DetectionCandidate, 5),
		LaunchAngle: 60,
	}
	rFlat := f.apexTimeRatio(flat)
	rSteep := f.apexTimeRatio(steep)
	if rSteep <= rFlat {
		t.Errorf("steeper launch should carry the apex later: %v vs %v", rSteep, rFlat)
	}
	if rFlat < 0.35 || rSteep > 0.55 {
		t.Errorf("ratios outside clamp: %v, %v", rFlat, rSteep)
	}
}

func TestHump_EndpointsAndApex(t *testing.T) {
	if got := hump(0, 1.2, 3); got != 0 {
		t.Errorf("hump(0) = %v, want 0", got)
	}
	if got := hump(1.2, 1.2, 3); got != 1 {
		t.Errorf("hump(apex) = %v, want 1", got)
	}
	if got := hump(3, 1.2, 3); math.Abs(got) > 1e-12 {
		t.Errorf("hump(T) = %v, want 0", got)
	}
}
