// Package brep implements the kernel.Kernel interface with a
// boundary-representation solid model: vertices, oriented edges,
// loops, faces, and solids, with NURBS or planar geometry attached to
// each face. Unlike the sdfx backend it supports both directions of
// mesh conversion.
package brep

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/petersancho/brepkit/pkg/geom"
	"github.com/petersancho/brepkit/pkg/nurbs"
)

// Identifiers are opaque string handles scoped to one BRep value.
type (
	VertexID string
	EdgeID   string
	LoopID   string
	FaceID   string
	SolidID  string
)

// Vertex is a unique topological point.
type Vertex struct {
	ID       VertexID
	Position v3.Vec
}

// Curve is the geometry carried by an edge: either a straight line or
// a NURBS curve.
type Curve interface {
	isCurve()
}

// LineCurve is a straight segment between two points.
type LineCurve struct {
	Start, End v3.Vec
}

// NurbsCurve carries a NURBS curve, typically a circular arc.
type NurbsCurve struct {
	Curve *nurbs.Curve
}

func (LineCurve) isCurve()  {}
func (NurbsCurve) isCurve() {}

// Edge connects two vertices along a curve. A closed edge (a full
// circle, such as a cylinder cap rim) has Start == End.
type Edge struct {
	ID    EdgeID
	Curve Curve
	Start VertexID
	End   VertexID
}

// Closed reports whether the edge starts and ends at the same vertex.
func (e Edge) Closed() bool {
	return e.Start == e.End
}

// EdgeRef is an oriented use of an edge by a loop. Reversed means the
// loop traverses the edge from End to Start.
type EdgeRef struct {
	Edge     EdgeID
	Reversed bool
}

// Loop is an ordered cycle of oriented edges bounding a face.
type Loop struct {
	ID    LoopID
	Edges []EdgeRef
}

// SurfaceDef is the geometry carried by a face.
type SurfaceDef interface {
	isSurface()
}

// PlaneSurface is a planar face geometry.
type PlaneSurface struct {
	Plane geom.Plane
}

// NurbsSurface is a NURBS patch face geometry.
type NurbsSurface struct {
	Surface *nurbs.Surface
}

func (PlaneSurface) isSurface() {}
func (NurbsSurface) isSurface() {}

// Face is a surface bounded by loops. A face with no loops spans its
// entire surface (a full sphere, or a cylinder's periodic lateral
// patch).
type Face struct {
	ID      FaceID
	Surface SurfaceDef
	Loops   []LoopID
}

// Solid groups faces into a shell.
type Solid struct {
	ID    SolidID
	Faces []FaceID
}

// BRep is the topological aggregate owning all entities. It is built
// once by a constructor and never mutated afterward; cross-references
// are by ID only.
type BRep struct {
	Vertices []Vertex
	Edges    []Edge
	Loops    []Loop
	Faces    []Face
	Solids   []Solid
}

// BoundingBox returns a conservative axis-aligned bounding box over
// the B-Rep's vertices and surface control points. Control points of
// rational patches overshoot the true surface, so the box may be
// slightly larger than the geometry.
func (b *BRep) BoundingBox() (min, max [3]float64) {
	first := true
	grow := func(p v3.Vec) {
		if first {
			min = [3]float64{p.X, p.Y, p.Z}
			max = min
			first = false
			return
		}
		for i, c := range [3]float64{p.X, p.Y, p.Z} {
			if c < min[i] {
				min[i] = c
			}
			if c > max[i] {
				max[i] = c
			}
		}
	}

	for _, v := range b.Vertices {
		grow(v.Position)
	}
	for _, f := range b.Faces {
		if s, ok := f.Surface.(NurbsSurface); ok && s.Surface != nil {
			for _, row := range s.Surface.ControlPoints {
				for _, p := range row {
					grow(p)
				}
			}
		}
	}
	return min, max
}

// lookup resolves IDs to entity indices. Built once per traversal so
// walks stay linear in the entity count.
type lookup struct {
	vertices map[VertexID]int
	edges    map[EdgeID]int
	loops    map[LoopID]int
	faces    map[FaceID]int
}

func newLookup(b *BRep) *lookup {
	l := &lookup{
		vertices: make(map[VertexID]int, len(b.Vertices)),
		edges:    make(map[EdgeID]int, len(b.Edges)),
		loops:    make(map[LoopID]int, len(b.Loops)),
		faces:    make(map[FaceID]int, len(b.Faces)),
	}
	for i, v := range b.Vertices {
		l.vertices[v.ID] = i
	}
	for i, e := range b.Edges {
		l.edges[e.ID] = i
	}
	for i, lp := range b.Loops {
		l.loops[lp.ID] = i
	}
	for i, f := range b.Faces {
		l.faces[f.ID] = i
	}
	return l
}

// builder accumulates a BRep under construction, deduplicating edges
// by their unordered vertex pair so an edge shared by two loops is
// created once and referenced twice.
type builder struct {
	brep      BRep
	edgeByKey map[[2]int]int
}

func newBuilder() *builder {
	return &builder{edgeByKey: map[[2]int]int{}}
}

func (bd *builder) addVertex(p v3.Vec) VertexID {
	id := VertexID(fmt.Sprintf("v%d", len(bd.brep.Vertices)))
	bd.brep.Vertices = append(bd.brep.Vertices, Vertex{ID: id, Position: p})
	return id
}

// lineEdge returns an oriented reference to the line edge between
// vertex indices from and to, creating the edge on first use. The
// stored edge direction is whichever orientation was seen first;
// Reversed records disagreement with the caller's traversal.
func (bd *builder) lineEdge(from, to int) EdgeRef {
	key := [2]int{from, to}
	if key[0] > key[1] {
		key[0], key[1] = key[1], key[0]
	}

	if i, ok := bd.edgeByKey[key]; ok {
		edge := bd.brep.Edges[i]
		return EdgeRef{Edge: edge.ID, Reversed: edge.Start != bd.brep.Vertices[from].ID}
	}

	id := EdgeID(fmt.Sprintf("e%d", len(bd.brep.Edges)))
	bd.edgeByKey[key] = len(bd.brep.Edges)
	bd.brep.Edges = append(bd.brep.Edges, Edge{
		ID: id,
		Curve: LineCurve{
			Start: bd.brep.Vertices[from].Position,
			End:   bd.brep.Vertices[to].Position,
		},
		Start: bd.brep.Vertices[from].ID,
		End:   bd.brep.Vertices[to].ID,
	})
	return EdgeRef{Edge: id}
}

// addClosedEdge creates a closed curve edge anchored at one vertex.
func (bd *builder) addClosedEdge(c Curve, anchor VertexID) EdgeID {
	id := EdgeID(fmt.Sprintf("e%d", len(bd.brep.Edges)))
	bd.brep.Edges = append(bd.brep.Edges, Edge{ID: id, Curve: c, Start: anchor, End: anchor})
	return id
}

func (bd *builder) addLoop(edges []EdgeRef) LoopID {
	id := LoopID(fmt.Sprintf("l%d", len(bd.brep.Loops)))
	bd.brep.Loops = append(bd.brep.Loops, Loop{ID: id, Edges: edges})
	return id
}

func (bd *builder) addFace(surface SurfaceDef, loops ...LoopID) FaceID {
	id := FaceID(fmt.Sprintf("f%d", len(bd.brep.Faces)))
	bd.brep.Faces = append(bd.brep.Faces, Face{ID: id, Surface: surface, Loops: loops})
	return id
}

func (bd *builder) addSolid(faces []FaceID) SolidID {
	id := SolidID(fmt.Sprintf("s%d", len(bd.brep.Solids)))
	bd.brep.Solids = append(bd.brep.Solids, Solid{ID: id, Faces: faces})
	return id
}
