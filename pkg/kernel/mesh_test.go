package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitTriangle() *Mesh {
	return &Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		UVs:       []float32{0, 0, 1, 0, 0, 1},
	}
}

func TestMeshCounts(t *testing.T) {
	m := unitTriangle()
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.TriangleCount())
	assert.False(t, m.IsEmpty())

	empty := &Mesh{}
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, 0, empty.TriangleCount())
	assert.Empty(t, empty.EnsureIndices())
}

func TestMeshEnsureIndices(t *testing.T) {
	m := unitTriangle()
	assert.Equal(t, []uint32{0, 1, 2}, m.EnsureIndices())

	m.Indices = []uint32{2, 1, 0}
	assert.Equal(t, []uint32{2, 1, 0}, m.EnsureIndices())
}

func TestMeshArea(t *testing.T) {
	m := unitTriangle()
	assert.InDelta(t, 0.5, m.Area(), 1e-9)

	// Indexed quad: two triangles sharing a diagonal, area 1.
	quad := &Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
	assert.InDelta(t, 1.0, quad.Area(), 1e-9)
}

func TestMerge(t *testing.T) {
	a := unitTriangle()
	b := unitTriangle()
	b.Indices = []uint32{0, 1, 2}

	m := Merge([]*Mesh{a, nil, &Mesh{}, b})
	require.Equal(t, 6, m.VertexCount())
	require.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, m.Indices)
	assert.InDelta(t, 1.0, m.Area(), 1e-9)

	assert.True(t, Merge(nil).IsEmpty())
}
