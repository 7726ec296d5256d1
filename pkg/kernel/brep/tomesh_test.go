package brep

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petersancho/brepkit/pkg/geom"
	"github.com/petersancho/brepkit/pkg/kernel"
)

func requireFinite(t *testing.T, m *kernel.Mesh) {
	t.Helper()
	for _, f := range m.Positions {
		require.False(t, math.IsNaN(float64(f)) || math.IsInf(float64(f), 0))
	}
	for _, f := range m.Normals {
		require.False(t, math.IsNaN(float64(f)) || math.IsInf(float64(f), 0))
	}
}

func TestToMeshEmptyBRep(t *testing.T) {
	m, err := ToMesh(&BRep{})
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
}

func TestToMeshUnitBox(t *testing.T) {
	m, err := ToMesh(NewBox(1, 1, 1, v3.Vec{}))
	require.NoError(t, err)
	require.False(t, m.IsEmpty())
	requireFinite(t, m)

	assert.GreaterOrEqual(t, m.TriangleCount(), 12)
	for i := 0; i < m.VertexCount(); i++ {
		x, y, z := m.Position(i)
		for _, c := range []float64{x, y, z} {
			assert.GreaterOrEqual(t, c, -0.5-1e-6)
			assert.LessOrEqual(t, c, 0.5+1e-6)
		}
	}
	assert.InDelta(t, 6.0, m.Area(), 1e-6)
}

func TestToMeshSphere(t *testing.T) {
	m, err := ToMesh(NewSphere(1, v3.Vec{}))
	require.NoError(t, err)
	require.False(t, m.IsEmpty())
	requireFinite(t, m)

	// 4*pi*r^2, faceted slightly under.
	want := 4 * math.Pi
	assert.InDelta(t, want, m.Area(), want*0.02)
}

func TestToMeshCylinder(t *testing.T) {
	m, err := ToMesh(NewCylinder(1, 2, v3.Vec{}))
	require.NoError(t, err)
	require.False(t, m.IsEmpty())
	requireFinite(t, m)

	// Lateral 2*pi*r*h plus two pi*r^2 caps.
	want := 4*math.Pi + 2*math.Pi
	assert.InDelta(t, want, m.Area(), want*0.02)

	// Caps sit at z = +-1.
	var minZ, maxZ float64 = math.Inf(1), math.Inf(-1)
	for i := 0; i < m.VertexCount(); i++ {
		_, _, z := m.Position(i)
		minZ = math.Min(minZ, z)
		maxZ = math.Max(maxZ, z)
	}
	assert.InDelta(t, -1, minZ, 1e-6)
	assert.InDelta(t, 1, maxZ, 1e-6)
}

func TestToMeshPlanarFaceDropsProjectedDuplicates(t *testing.T) {
	// A spur vertex directly above a corner is distinct in 3D but
	// projects onto that corner; the contour must shed the duplicate
	// instead of feeding the triangulator a repeated point.
	bd := newBuilder()
	for _, p := range []v3.Vec{
		{}, {X: 2}, {X: 2, Y: 2}, {Y: 2}, {X: 2, Z: 3},
	} {
		bd.addVertex(p)
	}
	refs := []EdgeRef{
		bd.lineEdge(0, 1),
		bd.lineEdge(1, 4),
		bd.lineEdge(4, 2),
		bd.lineEdge(2, 3),
		bd.lineEdge(3, 0),
	}
	loop := bd.addLoop(refs)
	plane := geom.PlaneFromNormal(v3.Vec{}, v3.Vec{Z: 1})
	face := bd.addFace(PlaneSurface{Plane: plane}, loop)
	bd.addSolid([]FaceID{face})

	m, err := ToMesh(&bd.brep)
	require.NoError(t, err)
	require.False(t, m.IsEmpty())
	assert.InDelta(t, 4.0, m.Area(), 1e-6)
}

func TestToMeshDanglingRefFailsLoudly(t *testing.T) {
	box := NewBox(1, 1, 1, v3.Vec{})
	box.Loops[0].Edges[0].Edge = "nope"

	m, err := ToMesh(box)
	require.ErrorIs(t, err, ErrDanglingRef)
	assert.Nil(t, m)
}

func TestToMeshSkipsDegenerateFaces(t *testing.T) {
	// A planar face with no loop yields no geometry but no error.
	b := &BRep{
		Faces:  []Face{{ID: "f0", Surface: PlaneSurface{}}},
		Solids: []Solid{{ID: "s0", Faces: []FaceID{"f0"}}},
	}
	m, err := ToMesh(b)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
}

func TestFromMeshTopology(t *testing.T) {
	box, err := ToMesh(NewBox(1, 1, 1, v3.Vec{}))
	require.NoError(t, err)

	b := FromMesh(box)
	require.NoError(t, b.Validate())
	assert.Equal(t, box.VertexCount(), len(b.Vertices))
	assert.Len(t, b.Faces, box.TriangleCount())
	assert.Len(t, b.Loops, box.TriangleCount())
	require.Len(t, b.Solids, 1)
	assert.Len(t, b.Solids[0].Faces, box.TriangleCount())

	// Every face is a planar triangle loop.
	for _, f := range b.Faces {
		_, ok := f.Surface.(PlaneSurface)
		require.True(t, ok)
		require.Len(t, f.Loops, 1)
	}
	for _, loop := range b.Loops {
		require.Len(t, loop.Edges, 3)
	}
}

func TestFromMeshDeduplicatesSharedEdges(t *testing.T) {
	// Two triangles sharing the diagonal of a quad: 5 edges, not 6.
	quad := &kernel.Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
	b := FromMesh(quad)
	require.NoError(t, b.Validate())
	assert.Len(t, b.Vertices, 4)
	assert.Len(t, b.Edges, 5)
	assert.Len(t, b.Faces, 2)
}

func TestFromMeshEmpty(t *testing.T) {
	b := FromMesh(nil)
	assert.Empty(t, b.Faces)
	assert.Empty(t, b.Solids)

	b = FromMesh(&kernel.Mesh{})
	assert.Empty(t, b.Solids)
}

func TestMeshBRepRoundTripArea(t *testing.T) {
	box, err := ToMesh(NewBox(1, 1, 1, v3.Vec{}))
	require.NoError(t, err)

	round, err := ToMesh(FromMesh(box))
	require.NoError(t, err)
	assert.InDelta(t, box.Area(), round.Area(), 1e-5)
}

func TestKernelInterface(t *testing.T) {
	var k kernel.Kernel = New()

	s := k.Box(2, 2, 2, v3.Vec{Z: 1})
	min, max := s.BoundingBox()
	assert.InDelta(t, -1, min[0], 1e-9)
	assert.InDelta(t, 2, max[2], 1e-9)

	m, err := k.ToMesh(s)
	require.NoError(t, err)
	require.False(t, m.IsEmpty())

	back, err := k.FromMesh(m)
	require.NoError(t, err)
	assert.NotEmpty(t, BRepOf(back).Faces)

	sphere := k.Sphere(1, v3.Vec{})
	sm, err := k.ToMesh(sphere)
	require.NoError(t, err)
	assert.Greater(t, sm.TriangleCount(), 0)

	cyl := k.Cylinder(1, 2, v3.Vec{})
	cm, err := k.ToMesh(cyl)
	require.NoError(t, err)
	assert.Greater(t, cm.TriangleCount(), 0)
}
