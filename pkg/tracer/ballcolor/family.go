// Package ballcolor extracts a ball color signature from a pre-impact
// frame and scores how well later pixels match it, with tolerance that
// widens as the ball recedes from the camera.
//
// HSV values follow OpenCV conventions: hue in [0,180), saturation and
// value in [0,256).
package ballcolor

// Family is the coarse color bucket used for lighting-robust matching.
// It is a closed set; Classify is the single source of truth and all
// scoring consumes the tag rather than re-deriving it from raw hue.
type Family int

// Color families.
const (
	FamilyWhite Family = iota
	FamilyOrange
	FamilyYellow
	FamilyPink
	FamilyGreen
	FamilyBlue
	FamilyOther
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyWhite:
		return "white"
	case FamilyOrange:
		return "orange"
	case FamilyYellow:
		return "yellow"
	case FamilyPink:
		return "pink"
	case FamilyGreen:
		return "green"
	case FamilyBlue:
		return "blue"
	default:
		return "other"
	}
}

// Classification bands. White is low saturation at high value; colored
// families are hue bands gated on minimum saturation.
const (
	whiteMaxSat   = 45.0
	whiteMinVal   = 150.0
	coloredMinSat = 45.0
	coloredMinVal = 50.0
	orangeHueLo   = 4.0
	orangeHueHi   = 20.0
	yellowHueHi   = 35.0
	greenHueHi    = 85.0
	blueHueHi     = 130.0
	pinkHueLo     = 140.0
	pinkHueHi     = 176.0
)

// Classify buckets an HSV triple into a Family.
func Classify(h, s, v float64) Family {
	if s < whiteMaxSat && v > whiteMinVal {
		return FamilyWhite
	}
	if s < coloredMinSat || v < coloredMinVal {
		return FamilyOther
	}
	switch {
	case h >= orangeHueLo && h < orangeHueHi:
		return FamilyOrange
	case h >= orangeHueHi && h < yellowHueHi:
		return FamilyYellow
	case h >= yellowHueHi && h < greenHueHi:
		return FamilyGreen
	case h >= greenHueHi && h < blueHueHi:
		return FamilyBlue
	case h >= pinkHueLo && h <= pinkHueHi:
		return FamilyPink
	default:
		return FamilyOther
	}
}
