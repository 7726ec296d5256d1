// Package kernel defines the abstract geometry kernel interface.
// Implementations (brep, sdfx) provide solid construction and mesh
// conversion behind this interface. The kernel abstraction allows
// swapping representations without changing the rest of the system.
package kernel

import (
	"errors"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrNotSupported is returned by a backend for operations its
// representation cannot express.
var ErrNotSupported = errors.New("operation not supported by this kernel")

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface. All primitives are
// centered on the given point; cylinders stand along the Z axis.
type Kernel interface {
	// Primitives
	Box(w, h, d float64, center v3.Vec) Solid
	Sphere(radius float64, center v3.Vec) Solid
	Cylinder(radius, height float64, center v3.Vec) Solid

	// Mesh conversion
	ToMesh(s Solid) (*Mesh, error)
	FromMesh(m *Mesh) (Solid, error)
}
