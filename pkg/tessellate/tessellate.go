// Package tessellate converts NURBS curves and surfaces into polylines
// and triangle meshes by adaptive refinement: parameter spans are split
// until a three-point flatness probe passes, so curved regions receive
// more samples than flat ones.
package tessellate

import (
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/petersancho/brepkit/pkg/geom"
	"github.com/petersancho/brepkit/pkg/kernel"
	"github.com/petersancho/brepkit/pkg/nurbs"
)

const (
	// probeRatio places the flatness probe off-center so symmetric
	// curves cannot fool the collinearity test at their midpoint.
	probeRatio = 0.45

	// flatnessTol bounds the squared doubled-area of the probe
	// triangle below which a span counts as flat.
	flatnessTol = 1e-6

	// maxRefineDepth caps recursion; 2^12 spans per axis is far past
	// any useful mesh density.
	maxRefineDepth = 12
)

// Curve samples a NURBS curve into a polyline. Degree-1 curves are
// already polylines and their control points are returned directly.
// Returns nil for a nil curve.
func Curve(c *nurbs.Curve) []v3.Vec {
	if c == nil {
		return nil
	}
	if c.Degree == 1 {
		points := make([]v3.Vec, len(c.ControlPoints))
		copy(points, c.ControlPoints)
		return points
	}

	min, max := c.Domain()
	params := adaptiveParams(c.Point, min, max)
	points := make([]v3.Vec, len(params))
	for i, u := range params {
		points[i] = c.Point(u)
	}
	return points
}

// Surface tessellates a NURBS surface into an indexed triangle mesh.
// Both parameter axes are refined adaptively along three isocurves
// each, then the union of refined parameters is evaluated as a full
// tensor grid so neighboring cells always share edges. UVs are the
// grid parameters normalized into [0,1].
func Surface(s *nurbs.Surface) *kernel.Mesh {
	if s == nil {
		return &kernel.Mesh{}
	}

	uMin, uMax := s.DomainU()
	vMin, vMax := s.DomainV()

	uParams := axisParams(uMin, uMax, func(u, w float64) v3.Vec { return s.Point(u, w) }, vMin, vMax)
	vParams := axisParams(vMin, vMax, func(v, w float64) v3.Vec { return s.Point(w, v) }, uMin, uMax)

	nu, nv := len(uParams), len(vParams)
	mesh := &kernel.Mesh{
		Positions: make([]float32, 0, 3*nu*nv),
		Normals:   make([]float32, 0, 3*nu*nv),
		UVs:       make([]float32, 0, 2*nu*nv),
		Indices:   make([]uint32, 0, 6*(nu-1)*(nv-1)),
	}

	for _, u := range uParams {
		for _, v := range vParams {
			p := s.Point(u, v)
			n := s.Normal(u, v)
			mesh.Positions = append(mesh.Positions, float32(p.X), float32(p.Y), float32(p.Z))
			mesh.Normals = append(mesh.Normals, float32(n.X), float32(n.Y), float32(n.Z))
			mesh.UVs = append(mesh.UVs,
				float32((u-uMin)/(uMax-uMin)),
				float32((v-vMin)/(vMax-vMin)))
		}
	}

	// Two triangles per cell, wound to agree with Su x Sv.
	for i := 0; i < nu-1; i++ {
		for j := 0; j < nv-1; j++ {
			i00 := uint32(i*nv + j)
			i10 := uint32((i+1)*nv + j)
			i11 := uint32((i+1)*nv + j + 1)
			i01 := uint32(i*nv + j + 1)
			mesh.Indices = append(mesh.Indices, i00, i10, i11, i00, i11, i01)
		}
	}
	return mesh
}

// axisParams refines one parameter axis against three isocurves at the
// start, middle, and end of the other axis, and returns the sorted
// union. Using multiple isocurves keeps features visible on only part
// of the surface (a bulge near one edge) from being skipped.
func axisParams(min, max float64, eval func(t, other float64) v3.Vec, otherMin, otherMax float64) []float64 {
	others := [3]float64{otherMin, (otherMin + otherMax) / 2, otherMax}

	var merged []float64
	for _, w := range others {
		w := w
		merged = append(merged, adaptiveParams(func(t float64) v3.Vec { return eval(t, w) }, min, max)...)
	}
	sort.Float64s(merged)

	span := max - min
	out := merged[:1]
	for _, t := range merged[1:] {
		if t-out[len(out)-1] > span*1e-9 {
			out = append(out, t)
		}
	}
	return out
}

// adaptiveParams returns sorted parameters covering [min, max],
// including both endpoints, refined until each span passes the
// flatness probe.
func adaptiveParams(eval func(t float64) v3.Vec, min, max float64) []float64 {
	params := []float64{min}
	refineSpan(eval, min, max, eval(min), eval(max), 0, &params)
	return append(params, max)
}

// refineSpan appends interior parameters for one span. The probe sits
// at probeRatio rather than the midpoint, and a span whose endpoints
// coincide (a closed loop) is always split since collinearity is
// meaningless there.
func refineSpan(eval func(t float64) v3.Vec, t0, t1 float64, p0, p1 v3.Vec, depth int, out *[]float64) {
	if depth >= maxRefineDepth {
		return
	}

	tm := t0 + probeRatio*(t1-t0)
	pm := eval(tm)

	closed := geom.Distance(p0, p1) < geom.EpsilonDistance &&
		geom.Distance(p0, pm) > geom.EpsilonDistance
	if !closed && geom.Collinear(p0, pm, p1, flatnessTol) {
		return
	}

	refineSpan(eval, t0, tm, p0, pm, depth+1, out)
	*out = append(*out, tm)
	refineSpan(eval, tm, t1, pm, p1, depth+1, out)
}
