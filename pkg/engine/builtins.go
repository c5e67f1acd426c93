package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/camber/pkg/cam"
	"github.com/chazu/camber/pkg/element"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Camber Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: tool-diameter -> tool_diameter
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpElement wraps an element.Element so it can be returned from shape
// builtins and consumed by group and emit.
type sexpElement struct {
	el *element.Element
}

func (e *sexpElement) SexpString(ps *zygo.PrintState) string {
	if e.el.Name != "" {
		return fmt.Sprintf("(%s %q)", e.el.Kind, e.el.Name)
	}
	return fmt.Sprintf("(%s)", e.el.Kind)
}
func (e *sexpElement) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps an element.Vec3.
type sexpVec3 struct {
	vec element.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toAxis converts a keyword or string to an element.Axis.
func toAxis(s zygo.Sexp) (element.Axis, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected axis keyword (:x, :y, :z): %w", err)
	}
	switch name {
	case "x":
		return element.AxisX, nil
	case "y":
		return element.AxisY, nil
	case "z":
		return element.AxisZ, nil
	}
	return 0, fmt.Errorf("invalid axis %q, expected x, y, or z", name)
}

// toDirection converts a keyword or string to a hemisphere direction.
func toDirection(s zygo.Sexp) (element.HemisphereDirection, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected direction keyword (:up, :down): %w", err)
	}
	switch name {
	case "up":
		return element.DirectionUp, nil
	case "down":
		return element.DirectionDown, nil
	}
	return 0, fmt.Errorf("invalid direction %q, expected up or down", name)
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (element.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return element.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toElement extracts an Element from a sexpElement.
func toElement(s zygo.Sexp) (*element.Element, error) {
	if e, ok := s.(*sexpElement); ok {
		return e.el, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// kwFloat assigns a keyword argument to dst when present.
func kwFloat(pa kwArgs, fn, key string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = f
	return nil
}

// kwInt assigns an integer keyword argument to dst when present.
func kwInt(pa kwArgs, fn, key string, dst *int) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = n
	return nil
}

// ---------------------------------------------------------------------------
// Builder
// ---------------------------------------------------------------------------

// builder accumulates the project as builtins run.
type builder struct {
	elements []*element.Element
	settings cam.Settings
}

func newBuilder() *builder {
	return &builder{settings: cam.DefaultSettings()}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// finishShape applies the :name and :at keywords common to every shape
// builtin and wraps the element for the interpreter.
func finishShape(pa kwArgs, fn string, el *element.Element) (zygo.Sexp, error) {
	if v, ok := pa.kw["name"]; ok {
		s, err := toString(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: name: %w", fn, err)
		}
		el.Name = s
	}
	if v, ok := pa.kw["at"]; ok {
		vec, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: at: %w", fn, err)
		}
		el.Position = vec
	}
	return &sexpElement{el: el}, nil
}

// registerBuiltins installs all Camber DSL builtins into a zygomys
// environment. The builtins accumulate elements and settings on the
// provided builder during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// shape registers a builtin of the common form
	// (kind :dim val ... :at (vec3 ...) :name "n"), where build fills the
	// kind-specific dimension payload from the parsed keywords.
	shape := func(fn string, build func(pa kwArgs) (element.ShapeKind, element.ShapeData, error)) {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			kind, data, err := build(pa)
			if err != nil {
				return zygo.SexpNull, err
			}
			return finishShape(pa, fn, &element.Element{Kind: kind, Data: data})
		})
	}

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: element.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (settings :tool-diameter 6 :depth 10 :stepdown 2 :feedrate 800
	//           :plungerate 200 :safe-height 5 :spindle 12000
	//           :offset :outside :direction :climb)
	// -----------------------------------------------------------------------
	env.AddFunction("settings", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		s := &b.settings

		floats := []struct {
			key string
			dst *float64
		}{
			{"tool-diameter", &s.ToolDiameter},
			{"depth", &s.Depth},
			{"stepdown", &s.Stepdown},
			{"feedrate", &s.FeedRate},
			{"plungerate", &s.PlungeRate},
			{"rapid-feed", &s.RapidFeed},
			{"safe-height", &s.SafeHeight},
			{"spindle", &s.SpindleRPM},
		}
		for _, f := range floats {
			if err := kwFloat(pa, "settings", f.key, f.dst); err != nil {
				return zygo.SexpNull, err
			}
		}

		if v, ok := pa.kw["offset"]; ok {
			mode, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("settings: offset: %w", err)
			}
			switch mode {
			case "center":
				s.Offset = cam.OffsetCenter
			case "inside":
				s.Offset = cam.OffsetInside
			case "outside":
				s.Offset = cam.OffsetOutside
			default:
				return zygo.SexpNull, fmt.Errorf("settings: invalid offset %q, expected center, inside, or outside", mode)
			}
		}
		if v, ok := pa.kw["direction"]; ok {
			dir, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("settings: direction: %w", err)
			}
			switch dir {
			case "climb":
				s.Direction = cam.DirectionClimb
			case "conventional":
				s.Direction = cam.DirectionConventional
			default:
				return zygo.SexpNull, fmt.Errorf("settings: invalid direction %q, expected climb or conventional", dir)
			}
		}

		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// Solid primitives
	// -----------------------------------------------------------------------

	// (cube :width 60 :depth 40 :height 10 :at (vec3 0 0 5))
	shape("cube", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.CubeData{}
		for _, f := range []struct {
			key string
			dst *float64
		}{{"width", &data.Width}, {"depth", &data.Depth}, {"height", &data.Height}} {
			if err := kwFloat(pa, "cube", f.key, f.dst); err != nil {
				return 0, nil, err
			}
		}
		return element.KindCube, data, nil
	})

	// (sphere :radius 10)
	shape("sphere", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.SphereData{}
		if err := kwFloat(pa, "sphere", "radius", &data.Radius); err != nil {
			return 0, nil, err
		}
		return element.KindSphere, data, nil
	})

	// (cylinder :radius 8 :height 20)
	shape("cylinder", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.CylinderData{}
		if err := kwFloat(pa, "cylinder", "radius", &data.Radius); err != nil {
			return 0, nil, err
		}
		if err := kwFloat(pa, "cylinder", "height", &data.Height); err != nil {
			return 0, nil, err
		}
		return element.KindCylinder, data, nil
	})

	// (cone :radius 10 :height 25)
	shape("cone", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.ConeData{}
		if err := kwFloat(pa, "cone", "radius", &data.Radius); err != nil {
			return 0, nil, err
		}
		if err := kwFloat(pa, "cone", "height", &data.Height); err != nil {
			return 0, nil, err
		}
		return element.KindCone, data, nil
	})

	// (torus :major-radius 15 :tube-radius 3)
	shape("torus", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.TorusData{}
		if err := kwFloat(pa, "torus", "major-radius", &data.MajorRadius); err != nil {
			return 0, nil, err
		}
		if err := kwFloat(pa, "torus", "tube-radius", &data.TubeRadius); err != nil {
			return 0, nil, err
		}
		return element.KindTorus, data, nil
	})

	// (pyramid :width 30 :depth 30 :height 20)
	shape("pyramid", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.PyramidData{}
		for _, f := range []struct {
			key string
			dst *float64
		}{{"width", &data.Width}, {"depth", &data.Depth}, {"height", &data.Height}} {
			if err := kwFloat(pa, "pyramid", f.key, f.dst); err != nil {
				return 0, nil, err
			}
		}
		return element.KindPyramid, data, nil
	})

	// (hemisphere :radius 12 :direction :up)
	shape("hemisphere", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.HemisphereData{}
		if err := kwFloat(pa, "hemisphere", "radius", &data.Radius); err != nil {
			return 0, nil, err
		}
		if v, ok := pa.kw["direction"]; ok {
			d, err := toDirection(v)
			if err != nil {
				return 0, nil, fmt.Errorf("hemisphere: direction: %w", err)
			}
			data.Direction = d
		}
		return element.KindHemisphere, data, nil
	})

	// (ellipsoid :radius-x 20 :radius-y 10 :radius-z 8)
	shape("ellipsoid", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.EllipsoidData{}
		for _, f := range []struct {
			key string
			dst *float64
		}{{"radius-x", &data.RadiusX}, {"radius-y", &data.RadiusY}, {"radius-z", &data.RadiusZ}} {
			if err := kwFloat(pa, "ellipsoid", f.key, f.dst); err != nil {
				return 0, nil, err
			}
		}
		return element.KindEllipsoid, data, nil
	})

	// (capsule :radius 5 :height 30 :axis :z)
	shape("capsule", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.CapsuleData{Orientation: element.AxisZ}
		if err := kwFloat(pa, "capsule", "radius", &data.Radius); err != nil {
			return 0, nil, err
		}
		if err := kwFloat(pa, "capsule", "height", &data.Height); err != nil {
			return 0, nil, err
		}
		if v, ok := pa.kw["axis"]; ok {
			a, err := toAxis(v)
			if err != nil {
				return 0, nil, fmt.Errorf("capsule: axis: %w", err)
			}
			data.Orientation = a
		}
		return element.KindCapsule, data, nil
	})

	// (prism :sides 6 :radius 10 :height 15)
	shape("prism", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.PrismData{}
		if err := kwInt(pa, "prism", "sides", &data.Sides); err != nil {
			return 0, nil, err
		}
		if err := kwFloat(pa, "prism", "radius", &data.Radius); err != nil {
			return 0, nil, err
		}
		if err := kwFloat(pa, "prism", "height", &data.Height); err != nil {
			return 0, nil, err
		}
		return element.KindPrism, data, nil
	})

	// -----------------------------------------------------------------------
	// 2D sketches
	// -----------------------------------------------------------------------

	// (polygon :sides 5 :radius 20 :thickness 3)
	shape("polygon", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.PolygonData{}
		if err := kwInt(pa, "polygon", "sides", &data.Sides); err != nil {
			return 0, nil, err
		}
		if err := kwFloat(pa, "polygon", "radius", &data.Radius); err != nil {
			return 0, nil, err
		}
		if err := kwFloat(pa, "polygon", "thickness", &data.Thickness); err != nil {
			return 0, nil, err
		}
		return element.KindPolygon, data, nil
	})

	// (rectangle :width 40 :height 30 :thickness 3)
	shape("rectangle", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.RectangleData{}
		for _, f := range []struct {
			key string
			dst *float64
		}{{"width", &data.Width}, {"height", &data.Height}, {"thickness", &data.Thickness}} {
			if err := kwFloat(pa, "rectangle", f.key, f.dst); err != nil {
				return 0, nil, err
			}
		}
		return element.KindRectangle, data, nil
	})

	// (circle :radius 15 :thickness 3)
	shape("circle", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.CircleData{}
		if err := kwFloat(pa, "circle", "radius", &data.Radius); err != nil {
			return 0, nil, err
		}
		if err := kwFloat(pa, "circle", "thickness", &data.Thickness); err != nil {
			return 0, nil, err
		}
		return element.KindCircle, data, nil
	})

	// (line :to (vec3 10 0 0))
	shape("line", func(pa kwArgs) (element.ShapeKind, element.ShapeData, error) {
		data := element.LineData{}
		if v, ok := pa.kw["to"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return 0, nil, fmt.Errorf("line: to: %w", err)
			}
			data.End = vec
		}
		return element.KindLine, data, nil
	})

	// -----------------------------------------------------------------------
	// (group "name" :at (vec3 0 0 0) (cube ...) (cylinder ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("group", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		el := &element.Element{Kind: element.KindGroup, Data: element.GroupData{}}

		rest := pa.positional
		if len(rest) > 0 {
			if s, ok := rest[0].(*zygo.SexpStr); ok && !strings.HasPrefix(s.S, kwPrefix) {
				el.Name = s.S
				rest = rest[1:]
			}
		}

		for i, arg := range rest {
			child, err := toElement(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("group: child %d: %w", i, err)
			}
			el.Children = append(el.Children, child)
		}

		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("group: at: %w", err)
			}
			el.Position = vec
		}
		if v, ok := pa.kw["description"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("group: description: %w", err)
			}
			el.Data = element.GroupData{Description: s}
		}

		return &sexpElement{el: el}, nil
	})

	// -----------------------------------------------------------------------
	// (emit shape ...) adds shapes to the project output.
	// -----------------------------------------------------------------------
	env.AddFunction("emit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		for i, arg := range args {
			if el, ok := arg.(*sexpElement); ok {
				b.elements = append(b.elements, el.el)
				continue
			}
			// Allow (emit (list a b c)) as well as (emit a b c).
			items, err := sexpListToSlice(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("emit: argument %d: expected shape or list, got %T", i, arg)
			}
			for j, item := range items {
				child, err := toElement(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("emit: list item %d: %w", j, err)
				}
				b.elements = append(b.elements, child)
			}
		}
		return zygo.SexpNull, nil
	})
}
