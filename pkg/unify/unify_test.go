package unify

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/camber/pkg/element"
	"github.com/chazu/camber/pkg/kernel"
)

// boxSolid is a stub solid carrying only its bounding box.
type boxSolid struct {
	min, max [3]float64
}

func (s *boxSolid) BoundingBox() (min, max [3]float64) {
	return s.min, s.max
}

// stubKernel implements the kernel interface with bounding-box
// arithmetic only, so conversion and union logic can be tested without
// real geometry.
type stubKernel struct {
	unions int
}

var _ kernel.Kernel = (*stubKernel)(nil)

func centered(x, y, z float64) *boxSolid {
	return &boxSolid{
		min: [3]float64{-x / 2, -y / 2, -z / 2},
		max: [3]float64{x / 2, y / 2, z / 2},
	}
}

func (k *stubKernel) Box(x, y, z float64) kernel.Solid {
	return centered(x, y, z)
}

func (k *stubKernel) Sphere(radius float64) kernel.Solid {
	return centered(2*radius, 2*radius, 2*radius)
}

func (k *stubKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	return centered(2*radius, 2*radius, height)
}

func (k *stubKernel) Cone(height, baseRadius float64, segments int) kernel.Solid {
	return centered(2*baseRadius, 2*baseRadius, height)
}

func (k *stubKernel) Union(a, b kernel.Solid) kernel.Solid {
	k.unions++
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	out := &boxSolid{}
	for i := 0; i < 3; i++ {
		out.min[i] = math.Min(amin[i], bmin[i])
		out.max[i] = math.Max(amax[i], bmax[i])
	}
	return out
}

func (k *stubKernel) Difference(a, b kernel.Solid) kernel.Solid {
	min, max := a.BoundingBox()
	return &boxSolid{min: min, max: max}
}

func (k *stubKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	out := &boxSolid{}
	for i := 0; i < 3; i++ {
		out.min[i] = math.Max(amin[i], bmin[i])
		out.max[i] = math.Min(amax[i], bmax[i])
	}
	return out
}

func (k *stubKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	min, max := s.BoundingBox()
	d := [3]float64{x, y, z}
	out := &boxSolid{}
	for i := 0; i < 3; i++ {
		out.min[i] = min[i] + d[i]
		out.max[i] = max[i] + d[i]
	}
	return out
}

func (k *stubKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	min, max := s.BoundingBox()
	// Only right-angle rotations appear in these tests.
	switch {
	case y == 90:
		return &boxSolid{
			min: [3]float64{min[2], min[1], min[0]},
			max: [3]float64{max[2], max[1], max[0]},
		}
	case x == 90:
		return &boxSolid{
			min: [3]float64{min[0], min[2], min[1]},
			max: [3]float64{max[0], max[2], max[1]},
		}
	}
	return s
}

func (k *stubKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return &kernel.Mesh{}, nil
}

func cube(name string, pos element.Vec3, w, d, h float64) *element.Element {
	return &element.Element{
		Kind:     element.KindCube,
		Name:     name,
		Position: pos,
		Data:     element.CubeData{Width: w, Depth: d, Height: h},
	}
}

func TestMergeTwoCubes(t *testing.T) {
	k := &stubKernel{}
	u := New(k)

	els := []*element.Element{
		cube("a", element.Vec3{X: 0, Y: 0, Z: 0}, 20, 20, 10),
		cube("b", element.Vec3{X: 30, Y: 0, Z: 5}, 20, 20, 10),
	}

	merged, err := u.Merge(els)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if merged.Kind != element.KindCube {
		t.Fatalf("merged kind = %s, expected cube", merged.Kind)
	}
	if k.unions != 1 {
		t.Errorf("unions = %d, expected 1", k.unions)
	}

	// a spans X[-10,10] Z[-5,5]; b spans X[20,40] Z[0,10].
	data := merged.Data.(element.CubeData)
	if data.Width != 50 || data.Depth != 20 || data.Height != 15 {
		t.Errorf("size = %v, expected 50x20x15", data)
	}
	want := element.Vec3{X: 15, Y: 0, Z: 2.5}
	if merged.Position != want {
		t.Errorf("position = %v, expected %v", merged.Position, want)
	}
}

func TestMergeSingleElementPassthrough(t *testing.T) {
	k := &stubKernel{}
	u := New(k)

	sphere := &element.Element{
		Kind:     element.KindSphere,
		Position: element.Vec3{X: 5, Y: 5, Z: 5},
		Data:     element.SphereData{Radius: 10},
	}
	merged, err := u.Merge([]*element.Element{sphere})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if merged.Kind != element.KindSphere {
		t.Errorf("merged kind = %s, expected sphere untouched", merged.Kind)
	}
	if k.unions != 0 {
		t.Errorf("unions = %d, expected 0 for a single element", k.unions)
	}
}

func TestMergeFlattensGroups(t *testing.T) {
	u := New(&stubKernel{})

	grp := element.NewGroup("pair", element.Vec3{X: 100, Y: 0, Z: 0},
		cube("a", element.Vec3{}, 10, 10, 10),
		cube("b", element.Vec3{X: 20, Y: 0, Z: 0}, 10, 10, 10),
	)

	merged, err := u.Merge([]*element.Element{grp})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	// Children at X=100 and X=120, each 10 wide.
	if merged.Position.X != 110 {
		t.Errorf("center X = %f, expected 110", merged.Position.X)
	}
	if data := merged.Data.(element.CubeData); data.Width != 30 {
		t.Errorf("width = %f, expected 30", data.Width)
	}
}

func TestMergeUnsupportedKindFails(t *testing.T) {
	u := New(&stubKernel{})

	els := []*element.Element{
		cube("base", element.Vec3{}, 20, 20, 10),
		{
			Kind: element.KindTorus,
			Data: element.TorusData{MajorRadius: 10, TubeRadius: 2},
		},
	}

	merged, err := u.Merge(els)
	if err == nil {
		t.Fatal("expected error for torus, got nil")
	}
	if merged != nil {
		t.Errorf("expected nil merged element, got %v", merged)
	}
	if len(u.Failures) != 1 {
		t.Fatalf("failures = %d, expected 1", len(u.Failures))
	}
	if !strings.Contains(u.Failures[0].Reason, "torus") {
		t.Errorf("failure reason %q does not name the torus", u.Failures[0].Reason)
	}
}

func TestMergeEmptyList(t *testing.T) {
	u := New(&stubKernel{})
	if _, err := u.Merge(nil); err == nil {
		t.Fatal("expected error for empty list, got nil")
	}
}

func TestMergeCapsuleOrientation(t *testing.T) {
	u := New(&stubKernel{})

	capsule := func(axis element.Axis) *element.Element {
		return &element.Element{
			Kind: element.KindCapsule,
			Data: element.CapsuleData{Radius: 5, Height: 30, Orientation: axis},
		}
	}

	tests := []struct {
		name string
		axis element.Axis
		// expected half extents along X, Y, Z
		want [3]float64
	}{
		{"z axis", element.AxisZ, [3]float64{5, 5, 15}},
		{"x axis", element.AxisX, [3]float64{15, 5, 5}},
		{"y axis", element.AxisY, [3]float64{5, 15, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Pair with an inert cube so the merge path runs; the cube
			// sits inside the capsule's bounds.
			els := []*element.Element{capsule(tt.axis), cube("c", element.Vec3{}, 2, 2, 2)}
			merged, err := u.Merge(els)
			if err != nil {
				t.Fatalf("Merge failed: %v", err)
			}
			data := merged.Data.(element.CubeData)
			got := [3]float64{data.Width / 2, data.Depth / 2, data.Height / 2}
			if got != tt.want {
				t.Errorf("half extents = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestMergeFailuresResetBetweenCalls(t *testing.T) {
	u := New(&stubKernel{})

	bad := []*element.Element{
		cube("a", element.Vec3{}, 10, 10, 10),
		{Kind: element.KindLine, Data: element.LineData{End: element.Vec3{X: 5}}},
	}
	if _, err := u.Merge(bad); err == nil {
		t.Fatal("expected error for line element")
	}
	if len(u.Failures) != 1 {
		t.Fatalf("failures = %d, expected 1", len(u.Failures))
	}

	good := []*element.Element{
		cube("a", element.Vec3{}, 10, 10, 10),
		cube("b", element.Vec3{X: 5}, 10, 10, 10),
	}
	if _, err := u.Merge(good); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if len(u.Failures) != 0 {
		t.Errorf("failures not reset, got %d", len(u.Failures))
	}
}
