package cam

import (
	"errors"
	"math"

	"github.com/chazu/camber/pkg/element"
	"github.com/chazu/camber/pkg/gcode"
	"github.com/chazu/camber/pkg/slice"
)

// Unifier merges a set of elements into one solid before slicing. A
// failed merge is an ordinary error: the scheduler logs it as a comment
// and continues per element, so the fallback is an explicit branch
// rather than a swallowed exception.
type Unifier interface {
	Merge(els []*element.Element) (*element.Element, error)
}

// ComponentOptions configures the component scheduler. A nil Unifier
// skips the union attempt entirely.
type ComponentOptions struct {
	Unifier Unifier
}

// scheduled pairs a flattened leaf element with its absolute bounds.
type scheduled struct {
	el  *element.Element
	box element.Box
}

// GenerateComponent produces the toolpath for a composite: the children
// of a group, or any sibling list of elements at absolute positions.
// Nested groups are flattened with their accumulated translations. All
// intersecting elements are cut level by level across a shared Z range,
// threading the tool position between elements so adjacent contours at
// the same level avoid a full retract-and-approach.
func GenerateComponent(els []*element.Element, s Settings, opts ComponentOptions) (*Result, error) {
	if len(els) == 0 {
		return nil, errors.New("cam: empty element list")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	prog := &gcode.Program{}
	path := &Toolpath{}
	em := &emitter{prog: prog, path: path}
	prog.Preamble(s.SpindleRPM)

	if opts.Unifier != nil {
		merged, err := opts.Unifier.Merge(els)
		switch {
		case err != nil:
			prog.Comment("union failed (%v), scheduling per element", err)
		case merged == nil:
			prog.Comment("union produced no solid, scheduling per element")
		default:
			prog.Comment("machining unified solid")
			var prior *Position
			_, levels, skipped := generateElement(em, merged, s, prior)
			prog.Postamble()
			return &Result{Gcode: prog.String(), Path: path, Levels: levels, Skipped: skipped}, nil
		}
	}

	leaves := flatten(els, element.Vec3{}, nil)

	var plan []scheduled
	for _, leaf := range leaves {
		box, ok := slice.Bounds(leaf)
		if !ok || !slice.Supported(leaf.Kind) {
			prog.Comment("%s not implemented, skipped", leaf.Kind)
			continue
		}
		plan = append(plan, scheduled{el: leaf, box: box})
	}
	if len(plan) == 0 {
		prog.Comment("no machinable elements")
		prog.Postamble()
		return &Result{Gcode: prog.String(), Path: path}, nil
	}

	union := plan[0].box
	for _, sc := range plan[1:] {
		union = union.Union(sc.box)
	}
	prog.Comment("component: %d elements, X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]",
		len(plan),
		union.Min.X, union.Max.X,
		union.Min.Y, union.Max.Y,
		union.Min.Z, union.Max.Z)

	top := union.Max.Z
	total := math.Min(s.Depth, top-union.Min.Z)
	if total <= 0 {
		prog.Comment("no cutting depth, nothing to machine")
		prog.Postamble()
		return &Result{Gcode: prog.String(), Path: path}, nil
	}
	bottom := top - total

	var prior *Position
	levels, skipped := 0, 0
	for level := top - s.Stepdown; ; level -= s.Stepdown {
		if level < bottom {
			level = bottom
		}
		levels++
		for _, sc := range plan {
			if level < sc.box.Min.Z-zEpsilon || level > sc.box.Max.Z+zEpsilon {
				continue
			}
			prior = cutLevel(em, sc.el, level, s, prior, &skipped)
		}
		if level <= bottom+zEpsilon {
			break
		}
	}

	prog.Postamble()
	return &Result{Gcode: prog.String(), Path: path, Levels: levels, Skipped: skipped}, nil
}

// flatten walks groups depth-first, accumulating parent translations,
// and returns every leaf as a copy positioned absolutely. List order is
// preserved; it is part of the observable contract because it fixes the
// emitted instruction order.
func flatten(els []*element.Element, offset element.Vec3, out []*element.Element) []*element.Element {
	for _, el := range els {
		if el == nil {
			continue
		}
		if el.Kind == element.KindGroup {
			out = flatten(el.Children, offset.Add(el.Position), out)
			continue
		}
		out = append(out, el.Translated(offset))
	}
	return out
}
