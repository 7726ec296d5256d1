package brep

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/petersancho/brepkit/pkg/geom"
	"github.com/petersancho/brepkit/pkg/nurbs"
)

// NewBox builds the B-Rep of an axis-aligned box: 8 vertices, 12
// shared edges, 6 quad loops, 6 NURBS-surfaced faces, 1 solid.
func NewBox(w, h, d float64, center v3.Vec) *BRep {
	bd := newBuilder()

	hw, hh, hd := w/2, h/2, d/2
	corners := [8]v3.Vec{
		{X: -hw, Y: -hh, Z: -hd},
		{X: hw, Y: -hh, Z: -hd},
		{X: hw, Y: hh, Z: -hd},
		{X: -hw, Y: hh, Z: -hd},
		{X: -hw, Y: -hh, Z: hd},
		{X: hw, Y: -hh, Z: hd},
		{X: hw, Y: hh, Z: hd},
		{X: -hw, Y: hh, Z: hd},
	}
	for _, c := range corners {
		bd.addVertex(c.Add(center))
	}

	// Counterclockwise as seen from outside, ordered to match the
	// +X,-X,+Y,-Y,+Z,-Z surface panels.
	quads := [6][4]int{
		{1, 2, 6, 5},
		{0, 4, 7, 3},
		{2, 3, 7, 6},
		{0, 1, 5, 4},
		{4, 5, 6, 7},
		{0, 3, 2, 1},
	}

	surfaces := nurbs.BoxSurfaces(w, h, d)
	faces := make([]FaceID, 0, 6)
	for i, quad := range quads {
		refs := make([]EdgeRef, 4)
		for j := range quad {
			refs[j] = bd.lineEdge(quad[j], quad[(j+1)%4])
		}
		loop := bd.addLoop(refs)
		faces = append(faces, bd.addFace(NurbsSurface{Surface: surfaces[i].Translated(center)}, loop))
	}
	bd.addSolid(faces)
	return &bd.brep
}

// NewSphere builds the B-Rep of a sphere: one NURBS face with no
// boundary, since the periodic patch covers the whole surface.
// A near-zero radius degrades to an empty B-Rep.
func NewSphere(radius float64, center v3.Vec) *BRep {
	bd := newBuilder()
	surface := nurbs.SphereSurface(radius)
	if surface == nil {
		return &bd.brep
	}
	face := bd.addFace(NurbsSurface{Surface: surface.Translated(center)})
	bd.addSolid([]FaceID{face})
	return &bd.brep
}

// NewCylinder builds the B-Rep of a Z-axis cylinder: the periodic
// NURBS lateral face carries no loop, and each planar cap is bounded
// by a single closed circle edge anchored at one rim vertex.
// A near-zero radius degrades to an empty B-Rep.
func NewCylinder(radius, height float64, center v3.Vec) *BRep {
	bd := newBuilder()

	surface := nurbs.CylinderSurface(radius, height)
	if surface == nil {
		return &bd.brep
	}
	lateral := bd.addFace(NurbsSurface{Surface: surface.Translated(center)})

	xAxis := v3.Vec{X: 1}
	yAxis := v3.Vec{Y: 1}
	buildCap := func(z float64, normal v3.Vec) FaceID {
		capCenter := center.Add(v3.Vec{Z: z})
		anchor := bd.addVertex(capCenter.Add(xAxis.MulScalar(radius)))
		rim := bd.addClosedEdge(NurbsCurve{
			Curve: nurbs.CircleCurve(capCenter, radius, xAxis, yAxis),
		}, anchor)
		loop := bd.addLoop([]EdgeRef{{Edge: rim}})
		plane := geom.PlaneFromNormal(capCenter, normal)
		return bd.addFace(PlaneSurface{Plane: plane}, loop)
	}

	top := buildCap(height/2, v3.Vec{Z: 1})
	bottom := buildCap(-height/2, v3.Vec{Z: -1})

	bd.addSolid([]FaceID{lateral, top, bottom})
	return &bd.brep
}
