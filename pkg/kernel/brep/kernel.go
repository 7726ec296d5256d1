package brep

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/petersancho/brepkit/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// brepSolid wraps a BRep to implement kernel.Solid.
type brepSolid struct {
	b *BRep
}

// BoundingBox returns the axis-aligned bounding box.
func (s *brepSolid) BoundingBox() (min, max [3]float64) {
	return s.b.BoundingBox()
}

// Kernel implements kernel.Kernel with B-Rep solids.
type Kernel struct{}

// New returns a new B-Rep kernel.
func New() *Kernel {
	return &Kernel{}
}

// unwrap extracts the underlying BRep from a kernel.Solid.
func unwrap(s kernel.Solid) *BRep {
	return s.(*brepSolid).b
}

// wrap creates a kernel.Solid from a BRep.
func wrap(b *BRep) kernel.Solid {
	return &brepSolid{b: b}
}

// BRepOf exposes the underlying topology of a solid produced by this
// kernel, for callers that work below the kernel abstraction.
func BRepOf(s kernel.Solid) *BRep {
	return unwrap(s)
}

// Box creates a box centered on the given point.
func (k *Kernel) Box(w, h, d float64, center v3.Vec) kernel.Solid {
	return wrap(NewBox(w, h, d, center))
}

// Sphere creates a sphere centered on the given point.
func (k *Kernel) Sphere(radius float64, center v3.Vec) kernel.Solid {
	return wrap(NewSphere(radius, center))
}

// Cylinder creates a Z-axis cylinder centered on the given point.
func (k *Kernel) Cylinder(radius, height float64, center v3.Vec) kernel.Solid {
	return wrap(NewCylinder(radius, height, center))
}

// ToMesh tessellates the solid's faces into a render mesh.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return ToMesh(unwrap(s))
}

// FromMesh rebuilds a planar-faced solid from a triangle mesh.
func (k *Kernel) FromMesh(m *kernel.Mesh) (kernel.Solid, error) {
	return wrap(FromMesh(m)), nil
}
