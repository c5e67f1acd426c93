// Package element defines the CAD element model for Camber.
// An element is a tagged variant over primitive solid kinds plus a
// group kind whose children are positioned relative to the parent.
package element

// ShapeKind enumerates the element kinds Camber can machine.
type ShapeKind int

const (
	KindCube ShapeKind = iota
	KindSphere
	KindCylinder
	KindCone
	KindTorus
	KindPyramid
	KindHemisphere
	KindEllipsoid
	KindCapsule
	KindPrism
	KindPolygon
	KindRectangle
	KindCircle
	KindLine
	KindGroup
)

func (k ShapeKind) String() string {
	switch k {
	case KindCube:
		return "cube"
	case KindSphere:
		return "sphere"
	case KindCylinder:
		return "cylinder"
	case KindCone:
		return "cone"
	case KindTorus:
		return "torus"
	case KindPyramid:
		return "pyramid"
	case KindHemisphere:
		return "hemisphere"
	case KindEllipsoid:
		return "ellipsoid"
	case KindCapsule:
		return "capsule"
	case KindPrism:
		return "prism"
	case KindPolygon:
		return "polygon"
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Axis identifies a principal axis, used by capsules.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// HemisphereDirection indicates which half of the sphere a hemisphere keeps.
type HemisphereDirection int

const (
	DirectionUp   HemisphereDirection = iota // dome above the flat face
	DirectionDown                            // dome below the flat face
)

func (d HemisphereDirection) String() string {
	if d == DirectionDown {
		return "down"
	}
	return "up"
}

// Element is a single CAD entity. Position is the solid's center for every
// kind except Hemisphere (flat-face center) and the 2D sketch kinds
// Rectangle/Circle/Line (footprint anchor at the top face, extruded
// downward by Thickness). Group children carry positions relative to the
// group's Position.
type Element struct {
	Kind     ShapeKind  `json:"kind"`
	Name     string     `json:"name,omitempty"`
	Position Vec3       `json:"position"`
	Data     ShapeData  `json:"data,omitempty"`
	Children []*Element `json:"children,omitempty"`
}

// ShapeData is the interface for kind-specific dimension payloads.
type ShapeData interface {
	shapeData() // marker method restricting implementations to this package
}

// CubeData holds the dimensions of an axis-aligned rectangular solid.
// Width spans X, Depth spans Y, Height spans Z.
type CubeData struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

func (CubeData) shapeData() {}

// SphereData holds the radius of a sphere.
type SphereData struct {
	Radius float64 `json:"radius"`
}

func (SphereData) shapeData() {}

// CylinderData holds the dimensions of a Z-axis cylinder.
type CylinderData struct {
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

func (CylinderData) shapeData() {}

// ConeData holds the dimensions of a Z-axis cone. The base circle of
// radius Radius sits at the bottom; the apex is at the top.
type ConeData struct {
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

func (ConeData) shapeData() {}

// TorusData holds the radii of a Z-axis torus. MajorRadius is the
// distance from the torus center to the tube center; TubeRadius is the
// tube's own radius.
type TorusData struct {
	MajorRadius float64 `json:"majorRadius"`
	TubeRadius  float64 `json:"tubeRadius"`
}

func (TorusData) shapeData() {}

// PyramidData holds the dimensions of a rectangular-base pyramid.
// The base sits at the bottom; the apex is at the top.
type PyramidData struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

func (PyramidData) shapeData() {}

// HemisphereData holds the radius and dome direction of a hemisphere.
// Position is the center of the flat face.
type HemisphereData struct {
	Radius    float64             `json:"radius"`
	Direction HemisphereDirection `json:"direction"`
}

func (HemisphereData) shapeData() {}

// EllipsoidData holds the semi-axes of an axis-aligned ellipsoid.
type EllipsoidData struct {
	RadiusX float64 `json:"radiusX"`
	RadiusY float64 `json:"radiusY"`
	RadiusZ float64 `json:"radiusZ"`
}

func (EllipsoidData) shapeData() {}

// CapsuleData holds the dimensions of a capsule (cylinder with
// hemispherical caps). Height is the total end-to-end length including
// both caps; Orientation selects the capsule axis.
type CapsuleData struct {
	Radius      float64 `json:"radius"`
	Height      float64 `json:"height"`
	Orientation Axis    `json:"orientation"`
}

func (CapsuleData) shapeData() {}

// PrismData holds the dimensions of a regular-polygon prism extruded
// along Z. Radius is the circumradius of the polygon footprint.
type PrismData struct {
	Sides  int     `json:"sides"`
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

func (PrismData) shapeData() {}

// PolygonData holds a flat regular polygon, extruded downward by
// Thickness for machining.
type PolygonData struct {
	Sides     int     `json:"sides"`
	Radius    float64 `json:"radius"`
	Thickness float64 `json:"thickness"`
}

func (PolygonData) shapeData() {}

// RectangleData holds a flat rectangle footprint, Width spanning X and
// Height spanning Y, extruded downward by Thickness.
type RectangleData struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Thickness float64 `json:"thickness"`
}

func (RectangleData) shapeData() {}

// CircleData holds a flat circle footprint, extruded downward by Thickness.
type CircleData struct {
	Radius    float64 `json:"radius"`
	Thickness float64 `json:"thickness"`
}

func (CircleData) shapeData() {}

// LineData holds a sketch line segment from Position to End. Lines have
// no machinable area and no bounding volume.
type LineData struct {
	End Vec3 `json:"end"`
}

func (LineData) shapeData() {}

// GroupData marks a composite element. Dimensions come entirely from the
// children.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) shapeData() {}

// Translated returns a shallow copy of the element displaced by offset.
// Children are shared, not copied; callers translating a group should
// walk the children themselves.
func (e *Element) Translated(offset Vec3) *Element {
	c := *e
	c.Position = e.Position.Add(offset)
	return &c
}

// NewGroup builds a group element from children positioned relative to pos.
func NewGroup(name string, pos Vec3, children ...*Element) *Element {
	return &Element{
		Kind:     KindGroup,
		Name:     name,
		Position: pos,
		Data:     GroupData{},
		Children: children,
	}
}
