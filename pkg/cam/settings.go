// Package cam turns CAD elements into layered contour toolpaths and
// G-code. Generation is synchronous and pure: inputs are treated as
// immutable snapshots, outputs are append-only, and no state survives
// across calls.
package cam

import "fmt"

// OffsetMode selects which side of the contour the tool center follows.
type OffsetMode int

const (
	OffsetCenter  OffsetMode = iota // tool center on the contour
	OffsetInside                    // contour shrunk by the tool radius
	OffsetOutside                   // contour grown by the tool radius
)

func (m OffsetMode) String() string {
	switch m {
	case OffsetInside:
		return "inside"
	case OffsetOutside:
		return "outside"
	case OffsetCenter:
		return "center"
	default:
		return "unknown"
	}
}

// MillDirection selects climb or conventional milling. It controls the
// traversal order of contour vertices and the winding of emitted arcs.
type MillDirection int

const (
	DirectionClimb MillDirection = iota
	DirectionConventional
)

func (d MillDirection) String() string {
	if d == DirectionConventional {
		return "conventional"
	}
	return "climb"
}

// Default machining parameters, mm and mm/min.
const (
	DefaultToolDiameter = 6.0
	DefaultStepdown     = 2.0
	DefaultFeedRate     = 800.0
	DefaultPlungeRate   = 200.0
	DefaultRapidFeed    = 3000.0
	DefaultSafeHeight   = 5.0
	DefaultSpindleRPM   = 12000.0
)

// Settings is the machining configuration consumed by every generation
// step. Distances are millimeters, feeds millimeters per minute.
type Settings struct {
	ToolDiameter float64       `json:"toolDiameter"`
	Depth        float64       `json:"depth"`
	Stepdown     float64       `json:"stepdown"`
	FeedRate     float64       `json:"feedrate"`
	PlungeRate   float64       `json:"plungerate"`
	RapidFeed    float64       `json:"rapidFeed"`
	SafeHeight   float64       `json:"safeHeight"`
	SpindleRPM   float64       `json:"spindleRPM"`
	Offset       OffsetMode    `json:"offset"`
	Direction    MillDirection `json:"direction"`
}

// DefaultSettings returns a Settings populated with the defaults above
// and zero depth (no passes until the caller sets one).
func DefaultSettings() Settings {
	return Settings{
		ToolDiameter: DefaultToolDiameter,
		Stepdown:     DefaultStepdown,
		FeedRate:     DefaultFeedRate,
		PlungeRate:   DefaultPlungeRate,
		RapidFeed:    DefaultRapidFeed,
		SafeHeight:   DefaultSafeHeight,
		SpindleRPM:   DefaultSpindleRPM,
	}
}

// Validate checks the settings preconditions. Generation entry points
// fail fast on invalid settings; the internal pipeline assumes they
// hold.
func (s Settings) Validate() error {
	if s.ToolDiameter <= 0 {
		return fmt.Errorf("tool diameter must be positive, got %.4f", s.ToolDiameter)
	}
	if s.Depth < 0 {
		return fmt.Errorf("depth must be non-negative, got %.4f", s.Depth)
	}
	if s.Stepdown <= 0 {
		return fmt.Errorf("stepdown must be positive, got %.4f", s.Stepdown)
	}
	if s.FeedRate <= 0 {
		return fmt.Errorf("feedrate must be positive, got %.4f", s.FeedRate)
	}
	if s.PlungeRate <= 0 {
		return fmt.Errorf("plungerate must be positive, got %.4f", s.PlungeRate)
	}
	if s.SafeHeight < 0 {
		return fmt.Errorf("safe height must be non-negative, got %.4f", s.SafeHeight)
	}
	return nil
}

// offsetDistance maps the offset mode to the signed contour displacement
// for the configured tool: outside grows by the tool radius, inside
// shrinks by it, center leaves the contour untouched.
func (s Settings) offsetDistance() float64 {
	switch s.Offset {
	case OffsetOutside:
		return s.ToolDiameter / 2
	case OffsetInside:
		return -s.ToolDiameter / 2
	default:
		return 0
	}
}
