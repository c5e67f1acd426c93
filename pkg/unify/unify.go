// Package unify merges CAD elements into a single solid with a geometry
// kernel, so overlapping parts can be machined as one contour set instead
// of element by element. The merged solid is reported back as its bounding
// box, which is what the toolpath planner slices.
package unify

import (
	"errors"
	"fmt"

	"github.com/chazu/camber/pkg/element"
	"github.com/chazu/camber/pkg/kernel"
)

// defaultSegments is the facet count for curved solids.
const defaultSegments = 64

// Failure records one element the kernel could not represent.
type Failure struct {
	Element *element.Element
	Reason  string
}

// Unifier converts elements to kernel solids and unions them. It
// satisfies the planner's merge hook; a merge error there falls back to
// per-element scheduling.
type Unifier struct {
	Kernel   kernel.Kernel
	Segments int // facets for curved solids, defaultSegments when zero

	// Failures holds the per-element conversion failures from the most
	// recent Merge call.
	Failures []Failure
}

// New returns a Unifier backed by the given kernel.
func New(k kernel.Kernel) *Unifier {
	return &Unifier{Kernel: k}
}

func (u *Unifier) segments() int {
	if u.Segments > 0 {
		return u.Segments
	}
	return defaultSegments
}

// Merge unions all leaf elements into one solid and returns a cube
// element spanning the union's bounding box. A single leaf is returned
// as-is, since no union is needed and the leaf is exact where the box is
// an approximation. Merge is all-or-nothing: if any element cannot be
// converted, it returns an error (with details in Failures) rather than
// silently machining a partial union. On that error the scheduler falls
// back to machining every element individually, so nothing is dropped.
func (u *Unifier) Merge(els []*element.Element) (*element.Element, error) {
	u.Failures = u.Failures[:0]

	leaves := collect(els, element.Vec3{}, nil)
	if len(leaves) == 0 {
		return nil, errors.New("unify: no elements to merge")
	}
	if len(leaves) == 1 {
		return leaves[0], nil
	}

	var merged kernel.Solid
	for _, el := range leaves {
		s, err := u.convert(el)
		if err != nil {
			u.Failures = append(u.Failures, Failure{Element: el, Reason: err.Error()})
			continue
		}
		if merged == nil {
			merged = s
		} else {
			merged = u.Kernel.Union(merged, s)
		}
	}
	if len(u.Failures) > 0 {
		return nil, fmt.Errorf("unify: %d of %d elements not convertible: %s",
			len(u.Failures), len(leaves), u.Failures[0].Reason)
	}

	min, max := merged.BoundingBox()
	size := [3]float64{max[0] - min[0], max[1] - min[1], max[2] - min[2]}
	if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
		return nil, errors.New("unify: union has empty bounding box")
	}

	return &element.Element{
		Kind: element.KindCube,
		Name: "union",
		Position: element.Vec3{
			X: (min[0] + max[0]) / 2,
			Y: (min[1] + max[1]) / 2,
			Z: (min[2] + max[2]) / 2,
		},
		Data: element.CubeData{Width: size[0], Depth: size[1], Height: size[2]},
	}, nil
}

// collect walks groups depth-first, accumulating translations, and
// returns every leaf positioned absolutely.
func collect(els []*element.Element, offset element.Vec3, out []*element.Element) []*element.Element {
	for _, el := range els {
		if el == nil {
			continue
		}
		if el.Kind == element.KindGroup {
			out = collect(el.Children, offset.Add(el.Position), out)
			continue
		}
		out = append(out, el.Translated(offset))
	}
	return out
}

// convert builds a kernel solid for one leaf element at its absolute
// position.
func (u *Unifier) convert(el *element.Element) (kernel.Solid, error) {
	return Convert(u.Kernel, el, u.segments())
}

// Convert builds a kernel solid for one leaf element at its absolute
// position. Kinds the kernel cannot represent return an error. It is
// shared with the mesh preview path, which needs the same
// element-to-solid mapping without the union step.
func Convert(k kernel.Kernel, el *element.Element, segments int) (kernel.Solid, error) {
	if segments <= 0 {
		segments = defaultSegments
	}

	var s kernel.Solid
	switch data := el.Data.(type) {
	case element.CubeData:
		s = k.Box(data.Width, data.Depth, data.Height)
	case element.SphereData:
		s = k.Sphere(data.Radius)
	case element.CylinderData:
		s = k.Cylinder(data.Height, data.Radius, segments)
	case element.ConeData:
		s = k.Cone(data.Height, data.Radius, segments)
	case element.CapsuleData:
		s = capsule(k, data, segments)
	case element.HemisphereData:
		s = hemisphere(k, data)
	default:
		return nil, fmt.Errorf("kernel cannot represent %s", el.Kind)
	}

	p := el.Position
	if p.X != 0 || p.Y != 0 || p.Z != 0 {
		s = k.Translate(s, p.X, p.Y, p.Z)
	}
	return s, nil
}

// capsule builds a cylinder with spherical end caps along the capsule's
// orientation axis. Height is end to end including the caps; a capsule
// no longer than its diameter degenerates to a sphere.
func capsule(k kernel.Kernel, data element.CapsuleData, segments int) kernel.Solid {
	body := data.Height - 2*data.Radius
	if body <= 0 {
		return k.Sphere(data.Radius)
	}

	s := k.Cylinder(body, data.Radius, segments)
	top := k.Translate(k.Sphere(data.Radius), 0, 0, body/2)
	bottom := k.Translate(k.Sphere(data.Radius), 0, 0, -body/2)
	s = k.Union(k.Union(s, top), bottom)

	switch data.Orientation {
	case element.AxisX:
		s = k.Rotate(s, 0, 90, 0)
	case element.AxisY:
		s = k.Rotate(s, 90, 0, 0)
	}
	return s
}

// hemisphere cuts a sphere in half with a box. The result keeps the
// flat face at the local origin, matching the element's position
// convention, with the dome on the Direction side.
func hemisphere(k kernel.Kernel, data element.HemisphereData) kernel.Solid {
	r := data.Radius
	sphere := k.Sphere(r)

	// Cutter box spans the unwanted half, oversized in X and Y to avoid
	// a coincident-surface boolean.
	cutter := k.Box(4*r, 4*r, 2*r)
	if data.Direction == element.DirectionUp {
		cutter = k.Translate(cutter, 0, 0, -r)
	} else {
		cutter = k.Translate(cutter, 0, 0, r)
	}
	return k.Difference(sphere, cutter)
}
