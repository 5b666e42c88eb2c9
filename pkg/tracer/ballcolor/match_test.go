package ballcolor

import (
	"math"
	"testing"
)

func whiteTemplate() Template {
	return Template{
		Family: FamilyWhite,
		Hue:    30, Sat: 15, Val: 230,
		HueStd: 4, SatStd: 6, ValStd: 10,
	}
}

func orangeTemplate() Template {
	return Template{
		Family: FamilyOrange,
		Hue:    12, Sat: 190, Val: 200,
		HueStd: 3, SatStd: 15, ValStd: 12,
	}
}

func TestScore_RangeInvariant(t *testing.T) {
	templates := []Template{whiteTemplate(), orangeTemplate()}
	elapsed := []float64{-1, 0, 0.25, 0.5, 2, 10}

	for _, tmpl := range templates {
		for h := 0.0; h < 180; h += 17 {
			for s := 0.0; s < 256; s += 51 {
				for v := 0.0; v < 256; v += 51 {
					for _, e := range elapsed {
						score := tmpl.Score(h, s, v, e)
						if score < 0 || score > 1 {
							t.Fatalf("Score(%v,%v,%v,%v) = %v, want [0,1]", h, s, v, e, score)
						}
					}
				}
			}
		}
	}
}

func TestScore_ToleranceWidensWithTime(t *testing.T) {
	tmpl := orangeTemplate()

	// Fixed small perturbation off the template center.
	h, s, v := tmpl.Hue+4, tmpl.Sat-20, tmpl.Val+25

	prev := -1.0
	for _, e := range []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5} {
		score := tmpl.Score(h, s, v, e)
		if score < prev {
			t.Errorf("score decreased with elapsed %.1f: %v -> %v", e, prev, score)
		}
		prev = score
	}
}

func TestScoreWhite_RejectsSaturatedPixel(t *testing.T) {
	tmpl := whiteTemplate()

	// Heavily saturated pixel can never be a white ball.
	if got := tmpl.Score(60, 250, 230, 0); got != 0 {
		t.Errorf("saturated pixel: got %v, want 0", got)
	}

	// Darkened but unsaturated pixel still scores.
	if got := tmpl.Score(60, 20, 190, 0); got <= 0 {
		t.Errorf("shaded white pixel: got %v, want > 0", got)
	}
}

func TestScoreWhite_ValueProximity(t *testing.T) {
	tmpl := whiteTemplate()

	near := tmpl.Score(30, 15, 225, 0)
	far := tmpl.Score(30, 15, 175, 0)
	if near <= far {
		t.Errorf("value proximity not ordered: near=%v far=%v", near, far)
	}
}

func TestScoreColored_HueShortCircuit(t *testing.T) {
	tmpl := orangeTemplate()

	// Green-ish hue is far outside orange tolerance at t=0.
	if got := tmpl.Score(60, 190, 200, 0); got != 0 {
		t.Errorf("distant hue: got %v, want 0", got)
	}

	// Perfect match scores high.
	if got := tmpl.Score(tmpl.Hue, tmpl.Sat, tmpl.Val, 0); got < 0.99 {
		t.Errorf("exact match: got %v, want ~1", got)
	}
}

func TestCircularHueDistance_Wraps(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{10, 20, 10},
		{175, 5, 10}, // wraps at 180
		{0, 90, 90},
		{179, 1, 2},
	}
	for _, c := range cases {
		if got := circularHueDistance(c.a, c.b); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("circularHueDistance(%v,%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestClassify_Families(t *testing.T) {
	cases := []struct {
		h, s, v float64
		want    Family
	}{
		{30, 10, 240, FamilyWhite},
		{12, 200, 210, FamilyOrange},
		{28, 200, 210, FamilyYellow},
		{60, 180, 160, FamilyGreen},
		{110, 180, 160, FamilyBlue},
		{165, 150, 200, FamilyPink},
		{90, 10, 40, FamilyOther},  // dark, desaturated
		{2, 200, 200, FamilyOther}, // below orange band, not pink
	}
	for _, c := range cases {
		if got := Classify(c.h, c.s, c.v); got != c.want {
			t.Errorf("Classify(%v,%v,%v) = %v, want %v", c.h, c.s, c.v, got, c.want)
		}
	}
}

func TestClassify_Total(t *testing.T) {
	// Every representable HSV triple must land in some family.
	for h := 0.0; h < 180; h += 3 {
		for s := 0.0; s < 256; s += 16 {
			for v := 0.0; v < 256; v += 16 {
				f := Classify(h, s, v)
				if f < FamilyWhite || f > FamilyOther {
					t.Fatalf("Classify(%v,%v,%v) = %d out of range", h, s, v, f)
				}
			}
		}
	}
}
