package cam

import (
	"math"

	"github.com/chazu/camber/pkg/gcode"
	"github.com/chazu/camber/pkg/slice"
)

// arcSegments is the polyline resolution used when a circular or
// elliptical contour cannot be emitted as a single arc.
const arcSegments = 64

// zEpsilon is the tolerance for treating two Z heights as the same level.
const zEpsilon = 1e-9

// Position is the tool location threaded through generation as an
// explicit accumulator. A nil *Position means the tool has not engaged
// yet and the emitter must approach from the safe height.
type Position struct {
	X, Y, Z float64
}

// emitter couples the G-code program with the recorded toolpath so
// every instruction is mirrored into both.
type emitter struct {
	prog *gcode.Program
	path *Toolpath
}

func (e *emitter) rapid(x, y, z, rapidFeed float64) {
	e.prog.Rapid(x, y, z)
	e.path.Append(Toolpoint{X: x, Y: y, Z: z, Feed: rapidFeed, Move: MoveRapid})
}

func (e *emitter) rapidXY(x, y, z, rapidFeed float64) {
	e.prog.RapidXY(x, y)
	e.path.Append(Toolpoint{X: x, Y: y, Z: z, Feed: rapidFeed, Move: MoveRapid})
}

func (e *emitter) plunge(x, y, z, feed float64) {
	e.prog.Plunge(z, feed)
	e.path.Append(Toolpoint{X: x, Y: y, Z: z, Feed: feed, Move: MoveLinear})
}

func (e *emitter) linear(x, y, z, feed float64) {
	e.prog.Linear(x, y, feed)
	e.path.Append(Toolpoint{X: x, Y: y, Z: z, Feed: feed, Move: MoveLinear})
}

// arcClockwise maps the milling direction to the arc winding. The climb
// setting emits G2, conventional emits G3. This mapping matches the
// original controller policy; verify against the target machine before
// relying on it for engagement direction.
func arcClockwise(dir MillDirection) bool {
	return dir == DirectionClimb
}

// approach positions the tool at (x, y) on the cutting level z. With no
// prior position it rapids above the point at the safe height and
// plunges at the plunge rate. With a prior position on the same level it
// rapids straight across; from a different level it rapids across and
// plunges down, preserving path continuity between adjacent contours.
func (e *emitter) approach(x, y, z float64, s Settings, prior *Position) {
	if prior == nil {
		e.rapid(x, y, z+s.SafeHeight, s.RapidFeed)
		e.plunge(x, y, z, s.PlungeRate)
		return
	}
	e.rapidXY(x, y, prior.Z, s.RapidFeed)
	if math.Abs(prior.Z-z) > zEpsilon {
		e.plunge(x, y, z, s.PlungeRate)
	}
}

// emitContour cuts one closed contour at height z and returns the tool's
// final position. Exact circles become a single G2/G3 interpolation;
// everything else becomes an ordered polyline, reversed first when the
// direction is conventional.
func (e *emitter) emitContour(c *slice.Contour, z float64, s Settings, prior *Position) *Position {
	if c.IsCircle() {
		return e.emitCircle(c, z, s, prior)
	}

	pts := c.Vertices(arcSegments)
	if len(pts) < 2 {
		return prior
	}
	if s.Direction == DirectionConventional {
		reversePoints(pts)
	}

	e.approach(pts[0].X, pts[0].Y, z, s, prior)
	for _, p := range pts[1:] {
		e.linear(p.X, p.Y, z, s.FeedRate)
	}
	last := pts[len(pts)-1]
	return &Position{X: last.X, Y: last.Y, Z: z}
}

// emitCircle cuts a full circle as one arc starting and ending at the
// contour's +X extreme, with the incremental center offset in I.
func (e *emitter) emitCircle(c *slice.Contour, z float64, s Settings, prior *Position) *Position {
	r := c.CircleRadius()
	startX := c.Center.X + r
	startY := c.Center.Y

	e.approach(startX, startY, z, s, prior)
	e.prog.Arc(arcClockwise(s.Direction), startX, startY, -r, 0, s.FeedRate)
	e.recordArc(c.Center, r, z, s)
	return &Position{X: startX, Y: startY, Z: z}
}

// recordArc mirrors an arc instruction into the toolpath as a polyline
// so renderers see the full sweep, not just the coincident endpoints.
func (e *emitter) recordArc(center slice.Point2, r, z float64, s Settings) {
	steps := arcSegments
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		if arcClockwise(s.Direction) {
			a = -a
		}
		e.path.Append(Toolpoint{
			X:    center.X + r*math.Cos(a),
			Y:    center.Y + r*math.Sin(a),
			Z:    z,
			Feed: s.FeedRate,
			Move: MoveLinear,
		})
	}
}

func reversePoints(pts []slice.Point2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
