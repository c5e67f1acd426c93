package element

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a validation finding blocks
// toolpath generation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks generation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Path     string             // element path, e.g. "body/boss[1]"
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Path, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Path    string
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// Validate runs structural and dimensional checks over an element tree.
// An empty slice means the tree is valid. The walk is read-only.
func Validate(els []*Element) []ValidationError {
	var errs []ValidationError
	for i, el := range els {
		errs = append(errs, validateElement(el, pathOf("", el, i))...)
	}
	return errs
}

// ValidateAll runs structural checks plus machining advisories against
// the given tool diameter and cut depth, with findings separated by
// severity.
func ValidateAll(els []*Element, toolDiameter, depth float64) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(els) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{Path: e.Path, Message: e.Message})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	result.Warnings = append(result.Warnings, validateMachining(els, toolDiameter, depth)...)
	return result
}

func pathOf(parent string, el *Element, index int) string {
	name := el.Name
	if name == "" {
		name = fmt.Sprintf("%s[%d]", el.Kind, index)
	}
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

func validateElement(el *Element, path string) []ValidationError {
	if el == nil {
		return []ValidationError{{
			Path:     path,
			Message:  "element is nil",
			Severity: SeverityError,
		}}
	}

	var errs []ValidationError
	fail := func(format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			Path:     path,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}
	warn := func(format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			Path:     path,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityWarning,
		})
	}

	if el.Data != nil {
		if k, ok := kindOfData(el.Data); ok && k != el.Kind {
			fail("shape data %T does not match kind %s", el.Data, el.Kind)
			if el.Kind != KindGroup && len(el.Children) > 0 {
				fail("%s cannot have children", el.Kind)
			}
			return errs
		}
	}

	switch data := el.Data.(type) {
	case CubeData:
		requirePositive(fail, "width", data.Width)
		requirePositive(fail, "depth", data.Depth)
		requirePositive(fail, "height", data.Height)
	case SphereData:
		requirePositive(fail, "radius", data.Radius)
	case CylinderData:
		requirePositive(fail, "radius", data.Radius)
		requirePositive(fail, "height", data.Height)
	case ConeData:
		requirePositive(fail, "radius", data.Radius)
		requirePositive(fail, "height", data.Height)
	case TorusData:
		requirePositive(fail, "major radius", data.MajorRadius)
		requirePositive(fail, "tube radius", data.TubeRadius)
		if data.TubeRadius > data.MajorRadius && data.MajorRadius > 0 {
			warn("tube radius %.4f exceeds major radius %.4f, torus self-intersects",
				data.TubeRadius, data.MajorRadius)
		}
	case PyramidData:
		requirePositive(fail, "width", data.Width)
		requirePositive(fail, "depth", data.Depth)
		requirePositive(fail, "height", data.Height)
	case HemisphereData:
		requirePositive(fail, "radius", data.Radius)
	case EllipsoidData:
		requirePositive(fail, "radius X", data.RadiusX)
		requirePositive(fail, "radius Y", data.RadiusY)
		requirePositive(fail, "radius Z", data.RadiusZ)
	case CapsuleData:
		requirePositive(fail, "radius", data.Radius)
		requirePositive(fail, "height", data.Height)
		if data.Height > 0 && data.Height <= 2*data.Radius {
			warn("height %.4f is no longer than the diameter, capsule degenerates to a sphere", data.Height)
		}
	case PrismData:
		requireSides(fail, data.Sides)
		requirePositive(fail, "radius", data.Radius)
		requirePositive(fail, "height", data.Height)
	case PolygonData:
		requireSides(fail, data.Sides)
		requirePositive(fail, "radius", data.Radius)
		requirePositive(fail, "thickness", data.Thickness)
	case RectangleData:
		requirePositive(fail, "width", data.Width)
		requirePositive(fail, "height", data.Height)
		requirePositive(fail, "thickness", data.Thickness)
	case CircleData:
		requirePositive(fail, "radius", data.Radius)
		requirePositive(fail, "thickness", data.Thickness)
	case LineData:
		if data.End == el.Position {
			warn("line has zero length")
		}
	case GroupData:
		if len(el.Children) == 0 {
			warn("group has no children")
		}
		for i, child := range el.Children {
			errs = append(errs, validateElement(child, pathOf(path, child, i))...)
		}
	case nil:
		fail("element has no shape data")
	default:
		fail("unknown shape data %T", el.Data)
	}

	if el.Kind != KindGroup && len(el.Children) > 0 {
		fail("%s cannot have children", el.Kind)
	}

	return errs
}

// kindOfData reports the kind a ShapeData value belongs to.
func kindOfData(data ShapeData) (ShapeKind, bool) {
	switch data.(type) {
	case CubeData:
		return KindCube, true
	case SphereData:
		return KindSphere, true
	case CylinderData:
		return KindCylinder, true
	case ConeData:
		return KindCone, true
	case TorusData:
		return KindTorus, true
	case PyramidData:
		return KindPyramid, true
	case HemisphereData:
		return KindHemisphere, true
	case EllipsoidData:
		return KindEllipsoid, true
	case CapsuleData:
		return KindCapsule, true
	case PrismData:
		return KindPrism, true
	case PolygonData:
		return KindPolygon, true
	case RectangleData:
		return KindRectangle, true
	case CircleData:
		return KindCircle, true
	case LineData:
		return KindLine, true
	case GroupData:
		return KindGroup, true
	}
	return 0, false
}

func requirePositive(fail func(string, ...interface{}), field string, v float64) {
	if v <= 0 {
		fail("%s is %.4f, must be positive", field, v)
	}
}

func requireSides(fail func(string, ...interface{}), sides int) {
	if sides < 3 {
		fail("sides is %d, must be at least 3", sides)
	}
}

// validateMachining emits advisories about element and tool geometry
// that generate legal but probably unintended toolpaths.
func validateMachining(els []*Element, toolDiameter, depth float64) []ValidationWarning {
	var warnings []ValidationWarning
	for i, el := range els {
		warnings = append(warnings, machiningWarnings(el, pathOf("", el, i), toolDiameter, depth)...)
	}
	return warnings
}

func machiningWarnings(el *Element, path string, toolDiameter, depth float64) []ValidationWarning {
	if el == nil {
		return nil
	}
	if el.Kind == KindGroup {
		var warnings []ValidationWarning
		for i, child := range el.Children {
			warnings = append(warnings, machiningWarnings(child, pathOf(path, child, i), toolDiameter, depth)...)
		}
		return warnings
	}

	for _, e := range validateElement(el, path) {
		if e.Severity == SeverityError {
			return nil
		}
	}

	var warnings []ValidationWarning

	if fp, ok := minFootprint(el); ok && toolDiameter > fp {
		warnings = append(warnings, ValidationWarning{
			Path: path,
			Message: fmt.Sprintf("tool diameter %.1fmm exceeds smallest footprint dimension %.1fmm, inside passes will vanish",
				toolDiameter, fp),
		})
	}

	if h, ok := heightOf(el); ok && depth > h {
		warnings = append(warnings, ValidationWarning{
			Path: path,
			Message: fmt.Sprintf("cut depth %.1fmm exceeds element height %.1fmm, passes clamp to the bottom",
				depth, h),
		})
	}

	return warnings
}

// minFootprint returns the smallest XY extent of the element, when it
// has one.
func minFootprint(el *Element) (float64, bool) {
	switch data := el.Data.(type) {
	case CubeData:
		return math.Min(data.Width, data.Depth), true
	case SphereData:
		return 2 * data.Radius, true
	case CylinderData:
		return 2 * data.Radius, true
	case ConeData:
		return 2 * data.Radius, true
	case TorusData:
		return 2 * data.TubeRadius, true
	case PyramidData:
		return math.Min(data.Width, data.Depth), true
	case HemisphereData:
		return 2 * data.Radius, true
	case EllipsoidData:
		return 2 * math.Min(data.RadiusX, data.RadiusY), true
	case CapsuleData:
		return 2 * data.Radius, true
	case PrismData:
		return 2 * data.Radius, true
	case PolygonData:
		return 2 * data.Radius, true
	case RectangleData:
		return math.Min(data.Width, data.Height), true
	case CircleData:
		return 2 * data.Radius, true
	}
	return 0, false
}

// heightOf returns the element's Z extent, when it has one.
func heightOf(el *Element) (float64, bool) {
	switch data := el.Data.(type) {
	case CubeData:
		return data.Height, true
	case SphereData:
		return 2 * data.Radius, true
	case CylinderData:
		return data.Height, true
	case ConeData:
		return data.Height, true
	case TorusData:
		return 2 * data.TubeRadius, true
	case PyramidData:
		return data.Height, true
	case HemisphereData:
		return data.Radius, true
	case EllipsoidData:
		return 2 * data.RadiusZ, true
	case CapsuleData:
		if data.Orientation == AxisZ {
			return data.Height, true
		}
		return 2 * data.Radius, true
	case PrismData:
		return data.Height, true
	case PolygonData:
		return data.Thickness, true
	case RectangleData:
		return data.Thickness, true
	case CircleData:
		return data.Thickness, true
	}
	return 0, false
}
