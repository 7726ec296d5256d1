package brep

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/petersancho/brepkit/pkg/geom"
	"github.com/petersancho/brepkit/pkg/kernel"
	"github.com/petersancho/brepkit/pkg/tessellate"
	"github.com/petersancho/brepkit/pkg/triangulate"
)

// ToMesh tessellates every face of the B-Rep into one render mesh.
// NURBS faces go through the adaptive surface tessellator; planar
// faces have their first loop resolved to a boundary polygon,
// triangulated in plane-local coordinates, and lifted back to world
// space. Faces yielding no renderable geometry are skipped silently;
// only referential-integrity failures abort the conversion. An empty
// B-Rep yields an empty mesh.
func ToMesh(b *BRep) (*kernel.Mesh, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	l := newLookup(b)

	var chunks []*kernel.Mesh
	for _, f := range b.Faces {
		switch s := f.Surface.(type) {
		case NurbsSurface:
			chunks = append(chunks, tessellate.Surface(s.Surface))
		case PlaneSurface:
			chunks = append(chunks, tessellatePlanarFace(b, l, f, s.Plane))
		}
	}
	return kernel.Merge(chunks), nil
}

// tessellatePlanarFace triangulates a planar face's first loop. Planar
// chunks carry zero-filled normals; consumers that shade them
// recompute face normals from the triangles. Returns nil when the face
// has no loop or its boundary degenerates below a triangle.
func tessellatePlanarFace(b *BRep, l *lookup, f Face, plane geom.Plane) *kernel.Mesh {
	if len(f.Loops) == 0 {
		return nil
	}
	loop := b.Loops[l.loops[f.Loops[0]]]

	points := collectLoopPoints(b, l, loop)
	if len(points) < 3 {
		return nil
	}

	plane = plane.ResolveBasis()

	// Projection can collapse points that were distinct in 3D (a spur
	// off the plane above a boundary vertex); repeated points would
	// abort triangulation, so dedup again in plane coordinates.
	contour := make([]v2.Vec, 0, len(points))
	for _, p := range points {
		uv := plane.Project(p)
		if n := len(contour); n > 0 && geom.Distance2D(contour[n-1], uv) < geom.EpsilonDistance {
			continue
		}
		contour = append(contour, uv)
	}
	if n := len(contour); n > 1 && geom.Distance2D(contour[0], contour[n-1]) < geom.EpsilonDistance {
		contour = contour[:n-1]
	}
	if len(contour) < 3 {
		return nil
	}

	indices := triangulate.Polygon(contour, nil)
	if len(indices) == 0 {
		return nil
	}

	mesh := &kernel.Mesh{
		Positions: make([]float32, 0, 3*len(contour)),
		Normals:   make([]float32, 3*len(contour)),
		UVs:       make([]float32, 0, 2*len(contour)),
		Indices:   make([]uint32, 0, len(indices)),
	}
	for _, uv := range contour {
		p := plane.Unproject(uv)
		mesh.Positions = append(mesh.Positions, float32(p.X), float32(p.Y), float32(p.Z))
		mesh.UVs = append(mesh.UVs, float32(uv.X), float32(uv.Y))
	}
	for _, idx := range indices {
		mesh.Indices = append(mesh.Indices, uint32(idx))
	}
	return mesh
}

// collectLoopPoints walks the loop's oriented edges in order and
// resolves them to a boundary polygon. Line edges contribute their
// oriented start vertex; NURBS edges contribute their sampled
// polyline. Consecutive near-identical points collapse, and a closing
// point that duplicates the first is dropped so the polygon stays
// open for the triangulator.
func collectLoopPoints(b *BRep, l *lookup, loop Loop) []v3.Vec {
	var points []v3.Vec
	push := func(p v3.Vec) {
		if n := len(points); n > 0 && geom.Distance(points[n-1], p) < geom.EpsilonDistance {
			return
		}
		points = append(points, p)
	}

	for _, ref := range loop.Edges {
		edge := b.Edges[l.edges[ref.Edge]]

		switch c := edge.Curve.(type) {
		case LineCurve:
			start := edge.Start
			if ref.Reversed {
				start = edge.End
			}
			push(b.Vertices[l.vertices[start]].Position)

		case NurbsCurve:
			samples := tessellate.Curve(c.Curve)
			if ref.Reversed {
				for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
					samples[i], samples[j] = samples[j], samples[i]
				}
			}
			for _, p := range samples {
				push(p)
			}
		}
	}

	// Drop the closing duplicate of a closed boundary.
	if n := len(points); n > 1 && geom.Distance(points[0], points[n-1]) < geom.EpsilonDistance {
		points = points[:n-1]
	}
	return points
}
