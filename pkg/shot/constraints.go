package shot

// ShotShape is the curvature category of the flight.
type ShotShape string

// Shot shapes, from hard right-to-left curve to hard left-to-right.
const (
	ShapeHook     ShotShape = "hook"
	ShapeDraw     ShotShape = "draw"
	ShapeStraight ShotShape = "straight"
	ShapeFade     ShotShape = "fade"
	ShapeSlice    ShotShape = "slice"
)

// CurvatureOffset returns the peak lateral offset for the shape as a
// fraction of frame width. Negative curves left on screen.
func (s ShotShape) CurvatureOffset() float64 {
	switch s {
	case ShapeHook:
		return -0.08
	case ShapeDraw:
		return -0.04
	case ShapeFade:
		return 0.04
	case ShapeSlice:
		return 0.08
	default:
		return 0
	}
}

// StartingLine is the initial direction of the shot relative to the target line.
type StartingLine string

// Starting lines.
const (
	StartLeft     StartingLine = "left"
	StartStraight StartingLine = "straight"
	StartRight    StartingLine = "right"
)

// Offset returns the early lateral offset for the starting line as a
// fraction of frame width. It decays to zero over the first half second.
func (l StartingLine) Offset() float64 {
	switch l {
	case StartLeft:
		return -0.05
	case StartRight:
		return 0.05
	default:
		return 0
	}
}

// ShotHeight is the coarse apex height category used when no apex is marked.
type ShotHeight string

// Shot heights.
const (
	HeightLow    ShotHeight = "low"
	HeightMedium ShotHeight = "medium"
	HeightHigh   ShotHeight = "high"
)

// ApexRise returns the apex rise above the origin as a fraction of frame height.
func (h ShotHeight) ApexRise() float64 {
	switch h {
	case HeightLow:
		return 0.15
	case HeightHigh:
		return 0.45
	default:
		return 0.30
	}
}

// Constraints is the user-supplied constraint set for one shot.
// Coordinates are normalized [0,1]. The calling boundary validates
// ranges; this core treats the set as already sane.
type Constraints struct {
	// Origin is an optional user hint for the ball's address position.
	Origin *Point `json:"origin,omitempty"`

	// Landing is required before a trajectory can be generated.
	Landing *Point `json:"landing,omitempty"`

	// Apex optionally pins the highest point of the flight.
	Apex *Point `json:"apex,omitempty"`

	Shape     ShotShape    `json:"shape,omitempty"`
	StartLine StartingLine `json:"start_line,omitempty"`
	Height    ShotHeight   `json:"height,omitempty"`

	// FlightTime in seconds. Zero means derive from travel distance.
	FlightTime float64 `json:"flight_time,omitempty"`
}

// WithDefaults returns a copy with empty enum fields set to their defaults.
func (c Constraints) WithDefaults() Constraints {
	if c.Shape == "" {
		c.Shape = ShapeStraight
	}
	if c.StartLine == "" {
		c.StartLine = StartStraight
	}
	if c.Height == "" {
		c.Height = HeightMedium
	}
	return c
}

// HasLanding reports whether the required landing constraint is present.
func (c Constraints) HasLanding() bool { return c.Landing != nil }

// HasApex reports whether the user marked an apex.
func (c Constraints) HasApex() bool { return c.Apex != nil }
