package slice

import (
	"math"

	"github.com/chazu/camber/pkg/element"
)

// shapeRule bundles the two geometric queries a shape kind must answer.
// Adding a primitive means adding one entry to shapeRules; nothing else
// dispatches on the kind.
type shapeRule struct {
	bounds  func(el *element.Element) (element.Box, bool)
	section func(el *element.Element, z float64) *Contour
}

var shapeRules = map[element.ShapeKind]shapeRule{
	element.KindCube:       {cubeBounds, cubeSection},
	element.KindSphere:     {sphereBounds, sphereSection},
	element.KindCylinder:   {cylinderBounds, cylinderSection},
	element.KindCone:       {coneBounds, coneSection},
	element.KindTorus:      {torusBounds, torusSection},
	element.KindPyramid:    {pyramidBounds, pyramidSection},
	element.KindHemisphere: {hemisphereBounds, hemisphereSection},
	element.KindEllipsoid:  {ellipsoidBounds, ellipsoidSection},
	element.KindCapsule:    {capsuleBounds, capsuleSection},
	element.KindPrism:      {prismBounds, prismSection},
	element.KindPolygon:    {polygonBounds, polygonSection},
	element.KindRectangle:  {rectangleBounds, rectangleSection},
	element.KindCircle:     {circleBounds, circleSection},
}

// groupBounds calls Bounds, which reads shapeRules back, so the group
// entry registers in init to keep the map literal cycle-free.
func init() {
	shapeRules[element.KindGroup] = shapeRule{bounds: groupBounds}
}

// Supported reports whether the kind has a cross-section rule. Groups
// and lines do not; the scheduler walks groups and annotates lines.
func Supported(kind element.ShapeKind) bool {
	r, ok := shapeRules[kind]
	return ok && r.section != nil
}

// Bounds computes the axis-aligned bounding box of an element at its
// absolute position. It returns false for kinds with no defined extent
// (lines, empty groups) and for malformed elements, never panicking, so
// callers can skip silently.
func Bounds(el *element.Element) (element.Box, bool) {
	if el == nil {
		return element.Box{}, false
	}
	r, ok := shapeRules[el.Kind]
	if !ok || r.bounds == nil {
		return element.Box{}, false
	}
	return r.bounds(el)
}

// SectionAt evaluates the element's cross-section contour at height z.
// It returns nil when z lies strictly outside the element's Z-extent;
// planes exactly tangent to the surface yield a degenerate (zero radius
// or zero area) contour rather than nil, keeping per-level iteration
// continuous at the boundaries.
func SectionAt(el *element.Element, z float64) *Contour {
	if el == nil {
		return nil
	}
	r, ok := shapeRules[el.Kind]
	if !ok || r.section == nil {
		return nil
	}
	return r.section(el, z)
}

// centerBox builds a box spanning ±half extents around a center point.
func centerBox(c element.Vec3, hx, hy, hz float64) element.Box {
	return element.Box{
		Min: element.Vec3{X: c.X - hx, Y: c.Y - hy, Z: c.Z - hz},
		Max: element.Vec3{X: c.X + hx, Y: c.Y + hy, Z: c.Z + hz},
	}
}

// within reports whether z lies inside [lo, hi], boundaries included.
func within(z, lo, hi float64) bool {
	return z >= lo && z <= hi
}

// chord returns sqrt(max(0, r^2 - d^2)), the half-chord of a circle of
// radius r sampled at distance d from its center.
func chord(r, d float64) float64 {
	return math.Sqrt(math.Max(0, r*r-d*d))
}

// --- cube -------------------------------------------------------------

func cubeBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.CubeData)
	if !ok {
		return element.Box{}, false
	}
	return centerBox(el.Position, d.Width/2, d.Depth/2, d.Height/2), true
}

func cubeSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.CubeData)
	if !ok || !within(z, el.Position.Z-d.Height/2, el.Position.Z+d.Height/2) {
		return nil
	}
	return &Contour{
		Kind:   ContourRect,
		Center: Point2{X: el.Position.X, Y: el.Position.Y},
		Width:  d.Width,
		Height: d.Depth,
	}
}

// --- sphere -----------------------------------------------------------

func sphereBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.SphereData)
	if !ok {
		return element.Box{}, false
	}
	return centerBox(el.Position, d.Radius, d.Radius, d.Radius), true
}

func sphereSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.SphereData)
	if !ok || !within(z, el.Position.Z-d.Radius, el.Position.Z+d.Radius) {
		return nil
	}
	return &Contour{
		Kind:   ContourCircle,
		Center: Point2{X: el.Position.X, Y: el.Position.Y},
		Radius: chord(d.Radius, z-el.Position.Z),
	}
}

// --- cylinder ---------------------------------------------------------

func cylinderBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.CylinderData)
	if !ok {
		return element.Box{}, false
	}
	return centerBox(el.Position, d.Radius, d.Radius, d.Height/2), true
}

func cylinderSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.CylinderData)
	if !ok || !within(z, el.Position.Z-d.Height/2, el.Position.Z+d.Height/2) {
		return nil
	}
	return &Contour{
		Kind:   ContourCircle,
		Center: Point2{X: el.Position.X, Y: el.Position.Y},
		Radius: d.Radius,
	}
}

// --- cone -------------------------------------------------------------

func coneBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.ConeData)
	if !ok {
		return element.Box{}, false
	}
	return centerBox(el.Position, d.Radius, d.Radius, d.Height/2), true
}

func coneSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.ConeData)
	if !ok || d.Height <= 0 {
		return nil
	}
	bottom := el.Position.Z - d.Height/2
	top := el.Position.Z + d.Height/2
	if !within(z, bottom, top) {
		return nil
	}
	// Linear taper from the full base radius at the bottom to the apex.
	ratio := (z - bottom) / d.Height
	return &Contour{
		Kind:   ContourCircle,
		Center: Point2{X: el.Position.X, Y: el.Position.Y},
		Radius: d.Radius * (1 - ratio),
	}
}

// --- torus ------------------------------------------------------------

func torusBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.TorusData)
	if !ok {
		return element.Box{}, false
	}
	r := d.MajorRadius + d.TubeRadius
	return centerBox(el.Position, r, r, d.TubeRadius), true
}

// torusSection returns the outer wall of the torus slice. The true slice
// is an annulus; only the outer contour is machinable from outside, so
// the inner circle is dropped.
func torusSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.TorusData)
	if !ok || !within(z, el.Position.Z-d.TubeRadius, el.Position.Z+d.TubeRadius) {
		return nil
	}
	return &Contour{
		Kind:   ContourCircle,
		Center: Point2{X: el.Position.X, Y: el.Position.Y},
		Radius: d.MajorRadius + chord(d.TubeRadius, z-el.Position.Z),
	}
}

// --- pyramid ----------------------------------------------------------

func pyramidBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.PyramidData)
	if !ok {
		return element.Box{}, false
	}
	return centerBox(el.Position, d.Width/2, d.Depth/2, d.Height/2), true
}

func pyramidSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.PyramidData)
	if !ok || d.Height <= 0 {
		return nil
	}
	bottom := el.Position.Z - d.Height/2
	top := el.Position.Z + d.Height/2
	if !within(z, bottom, top) {
		return nil
	}
	ratio := (z - bottom) / d.Height
	return &Contour{
		Kind:   ContourRect,
		Center: Point2{X: el.Position.X, Y: el.Position.Y},
		Width:  d.Width * (1 - ratio),
		Height: d.Depth * (1 - ratio),
	}
}

// --- hemisphere -------------------------------------------------------

func hemisphereBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.HemisphereData)
	if !ok {
		return element.Box{}, false
	}
	b := centerBox(el.Position, d.Radius, d.Radius, 0)
	if d.Direction == element.DirectionDown {
		b.Min.Z = el.Position.Z - d.Radius
	} else {
		b.Max.Z = el.Position.Z + d.Radius
	}
	return b, true
}

func hemisphereSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.HemisphereData)
	if !ok {
		return nil
	}
	lo, hi := el.Position.Z, el.Position.Z+d.Radius
	if d.Direction == element.DirectionDown {
		lo, hi = el.Position.Z-d.Radius, el.Position.Z
	}
	if !within(z, lo, hi) {
		return nil
	}
	return &Contour{
		Kind:   ContourCircle,
		Center: Point2{X: el.Position.X, Y: el.Position.Y},
		Radius: chord(d.Radius, z-el.Position.Z),
	}
}

// --- ellipsoid --------------------------------------------------------

func ellipsoidBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.EllipsoidData)
	if !ok {
		return element.Box{}, false
	}
	return centerBox(el.Position, d.RadiusX, d.RadiusY, d.RadiusZ), true
}

func ellipsoidSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.EllipsoidData)
	if !ok || d.RadiusZ <= 0 || !within(z, el.Position.Z-d.RadiusZ, el.Position.Z+d.RadiusZ) {
		return nil
	}
	dz := (z - el.Position.Z) / d.RadiusZ
	s := math.Sqrt(math.Max(0, 1-dz*dz))
	return &Contour{
		Kind:    ContourEllipse,
		Center:  Point2{X: el.Position.X, Y: el.Position.Y},
		RadiusX: d.RadiusX * s,
		RadiusY: d.RadiusY * s,
	}
}

// --- capsule ----------------------------------------------------------

func capsuleBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.CapsuleData)
	if !ok {
		return element.Box{}, false
	}
	half := d.Height / 2
	switch d.Orientation {
	case element.AxisX:
		return centerBox(el.Position, half, d.Radius, d.Radius), true
	case element.AxisY:
		return centerBox(el.Position, d.Radius, half, d.Radius), true
	default:
		return centerBox(el.Position, d.Radius, d.Radius, half), true
	}
}

// capsuleSection slices a capsule. A Z-axis capsule has three regimes:
// top spherical cap, constant-radius midsection, bottom spherical cap.
// Horizontal capsules produce a stadium slice which is approximated by
// its bounding rectangle (full length by chord width).
func capsuleSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.CapsuleData)
	if !ok {
		return nil
	}
	center := Point2{X: el.Position.X, Y: el.Position.Y}

	if d.Orientation != element.AxisZ {
		if !within(z, el.Position.Z-d.Radius, el.Position.Z+d.Radius) {
			return nil
		}
		w := 2 * chord(d.Radius, z-el.Position.Z)
		c := &Contour{Kind: ContourRect, Center: center, Width: d.Height, Height: w}
		if d.Orientation == element.AxisY {
			c.Width, c.Height = w, d.Height
		}
		return c
	}

	top := el.Position.Z + d.Height/2
	bottom := el.Position.Z - d.Height/2
	if !within(z, bottom, top) {
		return nil
	}
	capTop := top - d.Radius
	capBottom := bottom + d.Radius

	radius := d.Radius
	switch {
	case z > capTop:
		radius = chord(d.Radius, z-capTop)
	case z < capBottom:
		radius = chord(d.Radius, capBottom-z)
	}
	return &Contour{Kind: ContourCircle, Center: center, Radius: radius}
}

// --- prism ------------------------------------------------------------

func prismBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.PrismData)
	if !ok {
		return element.Box{}, false
	}
	return centerBox(el.Position, d.Radius, d.Radius, d.Height/2), true
}

func prismSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.PrismData)
	if !ok || !within(z, el.Position.Z-d.Height/2, el.Position.Z+d.Height/2) {
		return nil
	}
	center := Point2{X: el.Position.X, Y: el.Position.Y}
	return &Contour{
		Kind:   ContourPolygon,
		Center: center,
		Points: regularPolygon(center, d.Radius, d.Sides),
		Closed: true,
	}
}

// --- 2D sketch kinds --------------------------------------------------
// Sketch shapes anchor at their top face and extrude downward by
// Thickness, matching how the editor pockets flat artwork.

func polygonBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.PolygonData)
	if !ok {
		return element.Box{}, false
	}
	b := centerBox(el.Position, d.Radius, d.Radius, 0)
	b.Min.Z = el.Position.Z - d.Thickness
	return b, true
}

func polygonSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.PolygonData)
	if !ok || !within(z, el.Position.Z-d.Thickness, el.Position.Z) {
		return nil
	}
	center := Point2{X: el.Position.X, Y: el.Position.Y}
	return &Contour{
		Kind:   ContourPolygon,
		Center: center,
		Points: regularPolygon(center, d.Radius, d.Sides),
		Closed: true,
	}
}

func rectangleBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.RectangleData)
	if !ok {
		return element.Box{}, false
	}
	b := centerBox(el.Position, d.Width/2, d.Height/2, 0)
	b.Min.Z = el.Position.Z - d.Thickness
	return b, true
}

func rectangleSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.RectangleData)
	if !ok || !within(z, el.Position.Z-d.Thickness, el.Position.Z) {
		return nil
	}
	return &Contour{
		Kind:   ContourRect,
		Center: Point2{X: el.Position.X, Y: el.Position.Y},
		Width:  d.Width,
		Height: d.Height,
	}
}

func circleBounds(el *element.Element) (element.Box, bool) {
	d, ok := el.Data.(element.CircleData)
	if !ok {
		return element.Box{}, false
	}
	b := centerBox(el.Position, d.Radius, d.Radius, 0)
	b.Min.Z = el.Position.Z - d.Thickness
	return b, true
}

func circleSection(el *element.Element, z float64) *Contour {
	d, ok := el.Data.(element.CircleData)
	if !ok || !within(z, el.Position.Z-d.Thickness, el.Position.Z) {
		return nil
	}
	return &Contour{
		Kind:   ContourCircle,
		Center: Point2{X: el.Position.X, Y: el.Position.Y},
		Radius: d.Radius,
	}
}

// --- group ------------------------------------------------------------

// groupBounds unions the children's boxes after translating them by the
// group's own position. Empty groups have no extent.
func groupBounds(el *element.Element) (element.Box, bool) {
	var acc element.Box
	found := false
	for _, child := range el.Children {
		b, ok := Bounds(child)
		if !ok {
			continue
		}
		b = b.Translate(el.Position)
		if !found {
			acc = b
			found = true
		} else {
			acc = acc.Union(b)
		}
	}
	return acc, found
}
