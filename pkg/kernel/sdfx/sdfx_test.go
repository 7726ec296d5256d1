package sdfx

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/petersancho/brepkit/pkg/kernel"
)

func TestBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25, v3.Vec{})
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.VertexCount() == 0 {
		t.Fatal("expected non-zero vertex count")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify array sizes are consistent.
	if len(mesh.Positions) != len(mesh.Normals) {
		t.Fatalf("positions length %d != normals length %d", len(mesh.Positions), len(mesh.Normals))
	}
	if len(mesh.UVs) != mesh.VertexCount()*2 {
		t.Fatalf("uvs length %d != vertexCount*2 %d", len(mesh.UVs), mesh.VertexCount()*2)
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestSphere(t *testing.T) {
	k := New()
	s := k.Sphere(10, v3.Vec{})
	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	t.Logf("sphere triangle count: %d", mesh.TriangleCount())
}

func TestCylinder(t *testing.T) {
	k := New()
	cyl := k.Cylinder(10, 50, v3.Vec{})
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25, v3.Vec{})
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestCenterOffset(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10, v3.Vec{X: 100, Y: 200, Z: 300})
	min, max := box.BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestFromMeshNotSupported(t *testing.T) {
	k := New()
	_, err := k.FromMesh(&kernel.Mesh{})
	if !errors.Is(err, kernel.ErrNotSupported) {
		t.Fatalf("FromMesh error = %v, want kernel.ErrNotSupported", err)
	}
}
