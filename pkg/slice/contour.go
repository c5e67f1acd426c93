// Package slice computes planar cross-sections of CAD elements and the
// tool-compensation offsets applied to them. Contours are transient
// values: computed fresh per (element, Z) pair, consumed by the motion
// emitter, then discarded.
package slice

import "math"

// ContourKind distinguishes the closed-form contour representations.
type ContourKind int

const (
	ContourCircle ContourKind = iota
	ContourEllipse
	ContourRect
	ContourPolygon
)

func (k ContourKind) String() string {
	switch k {
	case ContourCircle:
		return "circle"
	case ContourEllipse:
		return "ellipse"
	case ContourRect:
		return "rect"
	case ContourPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Point2 is a point in the XY slicing plane.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Contour is the intersection of a solid with a horizontal plane.
// Exactly the fields for the active Kind are meaningful: Radius for
// circles, RadiusX/RadiusY for ellipses, Width/Height for rects, and
// Points/Closed for polygons. Circles, ellipses and rects keep their
// closed form so that offsetting stays exact; polygons are offset by
// centroid projection.
type Contour struct {
	Kind    ContourKind `json:"kind"`
	Center  Point2      `json:"center"`
	Radius  float64     `json:"radius,omitempty"`
	RadiusX float64     `json:"radiusX,omitempty"`
	RadiusY float64     `json:"radiusY,omitempty"`
	Width   float64     `json:"width,omitempty"`
	Height  float64     `json:"height,omitempty"`
	Points  []Point2    `json:"points,omitempty"`
	Closed  bool        `json:"closed,omitempty"`
}

// circleTolerance is the relative tolerance under which an ellipse is
// treated as an exact circle for arc emission.
const circleTolerance = 1e-9

// IsCircle reports whether the contour is an exact circle, either by
// kind or as an ellipse with equal radii within tolerance.
func (c *Contour) IsCircle() bool {
	switch c.Kind {
	case ContourCircle:
		return true
	case ContourEllipse:
		return math.Abs(c.RadiusX-c.RadiusY) <= circleTolerance*math.Max(1, math.Abs(c.RadiusX))
	default:
		return false
	}
}

// CircleRadius returns the radius for contours satisfying IsCircle.
func (c *Contour) CircleRadius() float64 {
	if c.Kind == ContourEllipse {
		return c.RadiusX
	}
	return c.Radius
}

// Vertices returns the contour as an ordered closed polyline. Circles
// and ellipses are approximated with segments chords; rects become the
// four corners plus a repeated start point. The polyline starts at the
// +X extreme of the contour.
func (c *Contour) Vertices(segments int) []Point2 {
	if segments < 3 {
		segments = 3
	}
	switch c.Kind {
	case ContourCircle:
		return ellipseVertices(c.Center, c.Radius, c.Radius, segments)
	case ContourEllipse:
		return ellipseVertices(c.Center, c.RadiusX, c.RadiusY, segments)
	case ContourRect:
		hw, hh := c.Width/2, c.Height/2
		return []Point2{
			{c.Center.X + hw, c.Center.Y + hh},
			{c.Center.X - hw, c.Center.Y + hh},
			{c.Center.X - hw, c.Center.Y - hh},
			{c.Center.X + hw, c.Center.Y - hh},
			{c.Center.X + hw, c.Center.Y + hh},
		}
	case ContourPolygon:
		pts := make([]Point2, 0, len(c.Points)+1)
		pts = append(pts, c.Points...)
		if c.Closed && len(c.Points) > 0 && c.Points[0] != c.Points[len(c.Points)-1] {
			pts = append(pts, c.Points[0])
		}
		return pts
	default:
		return nil
	}
}

func ellipseVertices(center Point2, rx, ry float64, segments int) []Point2 {
	pts := make([]Point2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts = append(pts, Point2{
			X: center.X + rx*math.Cos(a),
			Y: center.Y + ry*math.Sin(a),
		})
	}
	// Close exactly on the start point despite rounding.
	pts[len(pts)-1] = pts[0]
	return pts
}

// regularPolygon returns the vertices of a regular n-gon with the given
// circumradius, first vertex on the +X axis.
func regularPolygon(center Point2, radius float64, sides int) []Point2 {
	if sides < 3 {
		sides = 3
	}
	pts := make([]Point2, 0, sides)
	for i := 0; i < sides; i++ {
		a := 2 * math.Pi * float64(i) / float64(sides)
		pts = append(pts, Point2{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return pts
}
