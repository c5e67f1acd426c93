package main

import (
	"fmt"

	"github.com/chazu/camber/pkg/element"
)

// ElementSpec is the flat, JSON-friendly element description accepted
// by the Generate binding. element.Element cannot be unmarshalled
// directly because its Data field is an interface; this DTO carries
// the superset of dimension fields and the kind selects which apply.
type ElementSpec struct {
	Kind     string        `json:"kind"`
	Name     string        `json:"name,omitempty"`
	Position element.Vec3  `json:"position"`
	Children []ElementSpec `json:"children,omitempty"`

	Width       float64      `json:"width,omitempty"`
	Depth       float64      `json:"depth,omitempty"`
	Height      float64      `json:"height,omitempty"`
	Radius      float64      `json:"radius,omitempty"`
	MajorRadius float64      `json:"majorRadius,omitempty"`
	TubeRadius  float64      `json:"tubeRadius,omitempty"`
	RadiusX     float64      `json:"radiusX,omitempty"`
	RadiusY     float64      `json:"radiusY,omitempty"`
	RadiusZ     float64      `json:"radiusZ,omitempty"`
	Sides       int          `json:"sides,omitempty"`
	Thickness   float64      `json:"thickness,omitempty"`
	Direction   string       `json:"direction,omitempty"` // up or down
	Axis        string       `json:"axis,omitempty"`      // x, y, or z
	End         element.Vec3 `json:"end,omitempty"`
}

// toElement converts the DTO into the element model.
func (s ElementSpec) toElement() (*element.Element, error) {
	el := &element.Element{
		Name:     s.Name,
		Position: s.Position,
	}

	switch s.Kind {
	case "cube":
		el.Kind = element.KindCube
		el.Data = element.CubeData{Width: s.Width, Depth: s.Depth, Height: s.Height}
	case "sphere":
		el.Kind = element.KindSphere
		el.Data = element.SphereData{Radius: s.Radius}
	case "cylinder":
		el.Kind = element.KindCylinder
		el.Data = element.CylinderData{Radius: s.Radius, Height: s.Height}
	case "cone":
		el.Kind = element.KindCone
		el.Data = element.ConeData{Radius: s.Radius, Height: s.Height}
	case "torus":
		el.Kind = element.KindTorus
		el.Data = element.TorusData{MajorRadius: s.MajorRadius, TubeRadius: s.TubeRadius}
	case "pyramid":
		el.Kind = element.KindPyramid
		el.Data = element.PyramidData{Width: s.Width, Depth: s.Depth, Height: s.Height}
	case "hemisphere":
		dir := element.DirectionUp
		switch s.Direction {
		case "", "up":
		case "down":
			dir = element.DirectionDown
		default:
			return nil, fmt.Errorf("invalid hemisphere direction %q", s.Direction)
		}
		el.Kind = element.KindHemisphere
		el.Data = element.HemisphereData{Radius: s.Radius, Direction: dir}
	case "ellipsoid":
		el.Kind = element.KindEllipsoid
		el.Data = element.EllipsoidData{RadiusX: s.RadiusX, RadiusY: s.RadiusY, RadiusZ: s.RadiusZ}
	case "capsule":
		axis := element.AxisZ
		switch s.Axis {
		case "", "z":
		case "x":
			axis = element.AxisX
		case "y":
			axis = element.AxisY
		default:
			return nil, fmt.Errorf("invalid capsule axis %q", s.Axis)
		}
		el.Kind = element.KindCapsule
		el.Data = element.CapsuleData{Radius: s.Radius, Height: s.Height, Orientation: axis}
	case "prism":
		el.Kind = element.KindPrism
		el.Data = element.PrismData{Sides: s.Sides, Radius: s.Radius, Height: s.Height}
	case "polygon":
		el.Kind = element.KindPolygon
		el.Data = element.PolygonData{Sides: s.Sides, Radius: s.Radius, Thickness: s.Thickness}
	case "rectangle":
		el.Kind = element.KindRectangle
		el.Data = element.RectangleData{Width: s.Width, Height: s.Height, Thickness: s.Thickness}
	case "circle":
		el.Kind = element.KindCircle
		el.Data = element.CircleData{Radius: s.Radius, Thickness: s.Thickness}
	case "line":
		el.Kind = element.KindLine
		el.Data = element.LineData{End: s.End}
	case "group":
		el.Kind = element.KindGroup
		el.Data = element.GroupData{}
		for i, child := range s.Children {
			c, err := child.toElement()
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			el.Children = append(el.Children, c)
		}
	default:
		return nil, fmt.Errorf("unknown element kind %q", s.Kind)
	}

	if s.Kind != "group" && len(s.Children) > 0 {
		return nil, fmt.Errorf("%s cannot have children", s.Kind)
	}
	return el, nil
}
