package origin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/swingsight/tracer/pkg/shot"
	"github.com/swingsight/tracer/pkg/video"
)

// fakeMethod returns a fixed candidate and records invocations.
type fakeMethod struct {
	name  shot.OriginMethod
	cand  Candidate
	found bool
	err   error
	calls int
}

func (f *fakeMethod) Name() shot.OriginMethod { return f.name }

func (f *fakeMethod) Locate(ctx context.Context, src video.Source, strike time.Duration, cons shot.Constraints) (Candidate, bool, error) {
	f.calls++
	return f.cand, f.found, f.err
}

// fakeSource only answers Size; consensus tests never read frames.
type fakeSource struct{}

func (fakeSource) SeekTimestamp(time.Duration) error { return nil }
func (fakeSource) Next() (video.Frame, error)        { return video.Frame{}, video.ErrEndOfStream }
func (fakeSource) FPS() float64                      { return 30 }
func (fakeSource) Size() (int, int)                  { return 1000, 500 }
func (fakeSource) Close() error                      { return nil }

func method(name shot.OriginMethod, x, y, conf float64) *fakeMethod {
	return &fakeMethod{
		name:  name,
		cand:  Candidate{Pos: shot.PixelPoint{X: x, Y: y}, Confidence: conf, Method: name},
		found: true,
	}
}

func TestDetect_ConsensusHighConfidence(t *testing.T) {
	a := method(shot.OriginMethodCircle, 500, 400, 0.7)
	b := method(shot.OriginMethodVacancy, 530, 420, 0.6)

	d := NewDetector(DefaultConfig(), a, b)
	got, err := d.Detect(context.Background(), fakeSource{}, time.Second, shot.Constraints{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if got.Method != shot.OriginMethodConsensus {
		t.Errorf("method = %v, want consensus", got.Method)
	}
	if got.Confidence < 0.85 {
		t.Errorf("confidence = %v, want high", got.Confidence)
	}
	// Averaged position: (515, 410) normalized by 1000x500.
	if got.Pos.X != 0.515 || got.Pos.Y != 0.82 {
		t.Errorf("position = %+v, want (0.515, 0.82)", got.Pos)
	}
}

func TestDetect_DisagreementFallsBackToBestSingle(t *testing.T) {
	a := method(shot.OriginMethodCircle, 100, 400, 0.7)
	b := method(shot.OriginMethodVacancy, 800, 400, 0.6)

	d := NewDetector(DefaultConfig(), a, b)
	got, err := d.Detect(context.Background(), fakeSource{}, time.Second, shot.Constraints{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if got.Method != shot.OriginMethodCircle {
		t.Errorf("method = %v, want the higher-confidence single method", got.Method)
	}
	if got.Confidence > 0.6 {
		t.Errorf("confidence = %v, want medium (<= 0.6)", got.Confidence)
	}
}

func TestDetect_SingleMethodMediumConfidence(t *testing.T) {
	a := method(shot.OriginMethodCircle, 500, 400, 0.9)
	b := &fakeMethod{name: shot.OriginMethodVacancy}

	d := NewDetector(DefaultConfig(), a, b)
	got, err := d.Detect(context.Background(), fakeSource{}, time.Second, shot.Constraints{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if got.Method != shot.OriginMethodCircle {
		t.Errorf("method = %v, want circle", got.Method)
	}
	if got.Confidence != 0.6 {
		t.Errorf("confidence = %v, want capped at 0.6", got.Confidence)
	}
	if b.calls != 1 {
		t.Errorf("vacancy method calls = %d, want 1", b.calls)
	}
}

func TestDetect_NothingFound(t *testing.T) {
	a := &fakeMethod{name: shot.OriginMethodCircle}
	b := &fakeMethod{name: shot.OriginMethodVacancy, err: errors.New("boom")}

	d := NewDetector(DefaultConfig(), a, b)
	_, err := d.Detect(context.Background(), fakeSource{}, time.Second, shot.Constraints{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDetect_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := method(shot.OriginMethodCircle, 500, 400, 0.7)
	d := NewDetector(DefaultConfig(), a)
	_, err := d.Detect(ctx, fakeSource{}, time.Second, shot.Constraints{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if a.calls != 0 {
		t.Errorf("method ran despite canceled context")
	}
}

func TestPriorMethod_RequiresHint(t *testing.T) {
	m := &PriorMethod{}

	_, ok, err := m.Locate(context.Background(), fakeSource{}, time.Second, shot.Constraints{})
	if err != nil || ok {
		t.Fatalf("Locate without hint: ok=%v err=%v, want no candidate", ok, err)
	}

	hint := shot.Point{X: 0.4, Y: 0.9}
	cand, ok, err := m.Locate(context.Background(), fakeSource{}, time.Second, shot.Constraints{Origin: &hint})
	if err != nil || !ok {
		t.Fatalf("Locate with hint: ok=%v err=%v", ok, err)
	}
	if cand.Pos.X != 400 || cand.Pos.Y != 450 {
		t.Errorf("hint position = %+v, want (400, 450)", cand.Pos)
	}
}

func TestResolve_ThreeWayCluster(t *testing.T) {
	cands := []Candidate{
		{Pos: shot.PixelPoint{X: 500, Y: 400}, Confidence: 0.7, Method: shot.OriginMethodCircle},
		{Pos: shot.PixelPoint{X: 520, Y: 410}, Confidence: 0.6, Method: shot.OriginMethodVacancy},
		{Pos: shot.PixelPoint{X: 480, Y: 395}, Confidence: 0.5, Method: shot.OriginMethodPrior},
	}
	got := Resolve(cands, 50, 1000, 500)
	if got.Method != shot.OriginMethodConsensus {
		t.Errorf("method = %v, want consensus", got.Method)
	}
	if got.Pos.X != 0.5 {
		t.Errorf("x = %v, want 0.5", got.Pos.X)
	}
}
