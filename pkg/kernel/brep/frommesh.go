package brep

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/petersancho/brepkit/pkg/geom"
	"github.com/petersancho/brepkit/pkg/kernel"
)

// FromMesh converts an indexed triangle mesh into a planar-faced
// B-Rep: one vertex per mesh vertex, one triangular face per triangle,
// with edges deduplicated across adjacent triangles. Each face's plane
// comes from the triangle's own normal anchored at its first vertex,
// which is exact for a flat triangle. An empty mesh yields an empty
// B-Rep with no solid.
func FromMesh(m *kernel.Mesh) *BRep {
	bd := newBuilder()
	if m == nil || m.IsEmpty() {
		return &bd.brep
	}

	for i := 0; i < m.VertexCount(); i++ {
		x, y, z := m.Position(i)
		bd.addVertex(v3.Vec{X: x, Y: y, Z: z})
	}

	indices := m.EnsureIndices()
	var faces []FaceID
	for i := 0; i+2 < len(indices); i += 3 {
		ia, ib, ic := int(indices[i]), int(indices[i+1]), int(indices[i+2])
		a := bd.brep.Vertices[ia].Position
		b := bd.brep.Vertices[ib].Position
		c := bd.brep.Vertices[ic].Position

		refs := []EdgeRef{
			bd.lineEdge(ia, ib),
			bd.lineEdge(ib, ic),
			bd.lineEdge(ic, ia),
		}
		loop := bd.addLoop(refs)

		normal := b.Sub(a).Cross(c.Sub(a))
		plane := geom.PlaneFromNormal(a, normal)
		faces = append(faces, bd.addFace(PlaneSurface{Plane: plane}, loop))
	}

	if len(faces) > 0 {
		bd.addSolid(faces)
	}
	return &bd.brep
}
