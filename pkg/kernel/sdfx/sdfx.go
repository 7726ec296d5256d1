// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx signed-distance-field CAD library. It is the
// reference backend for mesh generation: exact solids in, marching
// cubes out. SDFs carry no boundary topology, so FromMesh is not
// supported.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/petersancho/brepkit/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// translated moves a solid so its center sits at the given point.
// sdfx primitives are origin-centered, so a zero center is a no-op.
func translated(s sdf.SDF3, center v3.Vec) sdf.SDF3 {
	if center.Equals(v3.Vec{}, 0) {
		return s
	}
	return sdf.Transform3D(s, sdf.Translate3d(center))
}

// Box creates a box centered on the given point.
func (k *SdfxKernel) Box(w, h, d float64, center v3.Vec) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: w, Y: h, Z: d}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(translated(s, center))
}

// Sphere creates a sphere centered on the given point.
func (k *SdfxKernel) Sphere(radius float64, center v3.Vec) kernel.Solid {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Sphere3D: %v", err))
	}
	return wrap(translated(s, center))
}

// Cylinder creates a Z-axis cylinder centered on the given point.
func (k *SdfxKernel) Cylinder(radius, height float64, center v3.Vec) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(translated(s, center))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
// Marching cubes emits unwelded triangle soup, so every triangle gets
// its own three vertices with the face normal repeated; UVs are
// zero-filled.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	numVerts := len(triangles) * 3

	positions := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			positions = append(positions, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       make([]float32, numVerts*2),
		Indices:   indices,
	}, nil
}

// FromMesh is not supported: a signed distance field cannot be
// recovered from a boundary mesh by this backend.
func (k *SdfxKernel) FromMesh(_ *kernel.Mesh) (kernel.Solid, error) {
	return nil, fmt.Errorf("sdfx: FromMesh: %w", kernel.ErrNotSupported)
}
