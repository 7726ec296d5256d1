package kernel

import "math"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: positions has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, uvs has 2 floats per vertex, and
// indices has 3 uint32s per triangle. An empty indices slice means
// implicit sequential indexing (index i == vertex i); EnsureIndices
// resolves it.
type Mesh struct {
	Positions []float32 `json:"positions"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals   []float32 `json:"normals"`   // [nx0,ny0,nz0, ...]
	UVs       []float32 `json:"uvs"`       // [u0,v0, u1,v1, ...]
	Indices   []uint32  `json:"indices"`   // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return m.VertexCount() / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0
}

// EnsureIndices returns the mesh's index list, materializing the
// implicit sequential indexing when the list is empty.
func (m *Mesh) EnsureIndices() []uint32 {
	if len(m.Indices) > 0 || m.IsEmpty() {
		return m.Indices
	}
	indices := make([]uint32, m.VertexCount())
	for i := range indices {
		indices[i] = uint32(i)
	}
	return indices
}

// Position returns vertex i as float64 components.
func (m *Mesh) Position(i int) (x, y, z float64) {
	return float64(m.Positions[3*i]), float64(m.Positions[3*i+1]), float64(m.Positions[3*i+2])
}

// Area returns the total surface area of the mesh, accumulated in
// float64.
func (m *Mesh) Area() float64 {
	indices := m.EnsureIndices()
	var sum float64
	for i := 0; i+2 < len(indices); i += 3 {
		ax, ay, az := m.Position(int(indices[i]))
		bx, by, bz := m.Position(int(indices[i+1]))
		cx, cy, cz := m.Position(int(indices[i+2]))

		ux, uy, uz := bx-ax, by-ay, bz-az
		vx, vy, vz := cx-ax, cy-ay, cz-az

		nx := uy*vz - uz*vy
		ny := uz*vx - ux*vz
		nz := ux*vy - uy*vx
		sum += 0.5 * length3(nx, ny, nz)
	}
	return sum
}

// Merge concatenates meshes into one, offsetting each subsequent
// mesh's indices by the running vertex count. Nil and empty meshes
// contribute nothing; merging nothing yields an empty mesh.
func Merge(meshes []*Mesh) *Mesh {
	out := &Mesh{}
	for _, m := range meshes {
		if m == nil || m.IsEmpty() {
			continue
		}
		offset := uint32(out.VertexCount())
		out.Positions = append(out.Positions, m.Positions...)
		out.Normals = append(out.Normals, m.Normals...)
		out.UVs = append(out.UVs, m.UVs...)
		for _, idx := range m.EnsureIndices() {
			out.Indices = append(out.Indices, idx+offset)
		}
	}
	return out
}

func length3(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
