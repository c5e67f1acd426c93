package cam

import (
	"errors"
	"math"

	"github.com/chazu/camber/pkg/element"
	"github.com/chazu/camber/pkg/gcode"
	"github.com/chazu/camber/pkg/slice"
)

// Result is the output of one generation call. Gcode is the
// authoritative program text; Path mirrors it for rendering. Levels
// counts the Z passes visited, Skipped the passes annotated instead of
// cut.
type Result struct {
	Gcode   string    `json:"gcode"`
	Path    *Toolpath `json:"-"`
	Levels  int       `json:"levels"`
	Skipped int       `json:"skipped"`
}

// Generate produces the toolpath for a single element. Group elements
// are routed through the component scheduler. Settings are validated
// up front; geometric problems inside the run are annotated as comments
// and never abort generation.
func Generate(el *element.Element, s Settings) (*Result, error) {
	if el == nil {
		return nil, errors.New("cam: nil element")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if el.Kind == element.KindGroup {
		return GenerateComponent([]*element.Element{el}, s, ComponentOptions{})
	}

	prog := &gcode.Program{}
	path := &Toolpath{}
	em := &emitter{prog: prog, path: path}

	prog.Preamble(s.SpindleRPM)
	var prior *Position
	_, levels, skipped := generateElement(em, el, s, prior)
	prog.Postamble()

	return &Result{Gcode: prog.String(), Path: path, Levels: levels, Skipped: skipped}, nil
}

// generateElement runs the Z-level state machine for one leaf element:
// starting one stepdown below the element top, each pass evaluates the
// cross-section, applies the tool offset, and emits motion; the final
// level is clamped to top - min(depth, height) so the boundary pass is
// never skipped. The tool position accumulator is threaded through and
// returned for the caller's next element.
func generateElement(em *emitter, el *element.Element, s Settings, prior *Position) (*Position, int, int) {
	box, ok := slice.Bounds(el)
	if !ok || !slice.Supported(el.Kind) {
		em.prog.Comment("%s not implemented, skipped", el.Kind)
		return prior, 0, 0
	}

	em.prog.Comment("%s: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]",
		el.Kind,
		box.Min.X, box.Max.X,
		box.Min.Y, box.Max.Y,
		box.Min.Z, box.Max.Z)

	top := box.Max.Z
	total := math.Min(s.Depth, box.Max.Z-box.Min.Z)
	if total <= 0 {
		em.prog.Comment("no cutting depth for %s, skipped", el.Kind)
		return prior, 0, 0
	}
	bottom := top - total

	levels, skipped := 0, 0
	for level := top - s.Stepdown; ; level -= s.Stepdown {
		if level < bottom {
			level = bottom
		}
		levels++
		prior = cutLevel(em, el, level, s, prior, &skipped)
		if level <= bottom+zEpsilon {
			break
		}
	}
	return prior, levels, skipped
}

// cutLevel evaluates, offsets and emits one element's contour at one Z
// level. Degenerate levels become comments; the skip counter is bumped.
func cutLevel(em *emitter, el *element.Element, level float64, s Settings, prior *Position, skipped *int) *Position {
	sect := slice.SectionAt(el, level)
	if sect == nil {
		em.prog.Comment("no cross-section at Z%.3f, skipped", level)
		*skipped++
		return prior
	}
	offset := slice.Offset(sect, s.offsetDistance())
	if offset == nil {
		em.prog.Comment("offset eliminates contour at Z%.3f, skipped", level)
		*skipped++
		return prior
	}
	return em.emitContour(offset, level, s, prior)
}
