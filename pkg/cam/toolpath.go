package cam

import "math"

// MoveKind distinguishes rapid positioning from cutting motion.
type MoveKind int

const (
	MoveRapid MoveKind = iota
	MoveLinear
)

func (k MoveKind) String() string {
	if k == MoveRapid {
		return "rapid"
	}
	return "linear"
}

// Toolpoint is one emitted tool position with the feed that reaches it.
type Toolpoint struct {
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	Z    float64  `json:"z"`
	Feed float64  `json:"feed"`
	Move MoveKind `json:"move"`
}

// Toolpath is the ordered, append-only sequence of emitted tool
// positions. It exists for rendering and inspection; the G-code text is
// the authoritative output.
type Toolpath struct {
	points []Toolpoint
}

// Append adds a point to the path.
func (tp *Toolpath) Append(p Toolpoint) {
	tp.points = append(tp.points, p)
}

// Len returns the number of points.
func (tp *Toolpath) Len() int {
	return len(tp.points)
}

// Points returns the emitted points in order.
func (tp *Toolpath) Points() []Toolpoint {
	return tp.points
}

// CycleTime estimates the machining time in seconds by dividing each
// move's length by its feed. Acceleration is ignored, so this is a
// lower bound.
func (tp *Toolpath) CycleTime() float64 {
	total := 0.0
	for i := 1; i < len(tp.points); i++ {
		a, b := tp.points[i-1], tp.points[i]
		dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if b.Feed > 0 {
			total += 60 * dist / b.Feed
		}
	}
	return total
}
