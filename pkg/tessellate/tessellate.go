// Package tessellate walks an element tree and produces triangle meshes
// using a geometry kernel. One mesh is produced per leaf element, for
// the 3D preview alongside the generated toolpath.
package tessellate

import (
	"fmt"

	"github.com/chazu/camber/pkg/element"
	"github.com/chazu/camber/pkg/kernel"
	"github.com/chazu/camber/pkg/unify"
)

// Result carries the meshes plus the leaves the kernel could not
// represent. Unrepresentable leaves are previewed as nothing rather
// than failing the whole tree.
type Result struct {
	Meshes  []*kernel.Mesh
	Skipped []*element.Element
}

// Tessellate walks the element tree and produces one triangle mesh per
// kernel-representable leaf. Group translations accumulate down the
// tree. The tessellator is read-only and never mutates the elements.
func Tessellate(els []*element.Element, k kernel.Kernel) (*Result, error) {
	res := &Result{}
	for i, el := range els {
		if err := walk(el, element.Vec3{}, i, k, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// walk recursively traverses an element and its children, collecting meshes.
func walk(el *element.Element, offset element.Vec3, index int, k kernel.Kernel, res *Result) error {
	if el == nil {
		return nil
	}

	if el.Kind == element.KindGroup {
		childOffset := offset.Add(el.Position)
		for i, child := range el.Children {
			if err := walk(child, childOffset, i, k, res); err != nil {
				return err
			}
		}
		return nil
	}

	leaf := el.Translated(offset)
	solid, err := unify.Convert(k, leaf, 0)
	if err != nil {
		res.Skipped = append(res.Skipped, leaf)
		return nil
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return fmt.Errorf("tessellate: ToMesh failed for %s: %w", describe(el, index), err)
	}
	mesh.Name = describe(el, index)
	res.Meshes = append(res.Meshes, mesh)
	return nil
}

// describe names a mesh after its element: the element name when set,
// otherwise kind plus position in the sibling list.
func describe(el *element.Element, index int) string {
	if el.Name != "" {
		return el.Name
	}
	return fmt.Sprintf("%s-%d", el.Kind, index)
}
