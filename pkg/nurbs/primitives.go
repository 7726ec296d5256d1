package nurbs

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Primitive surface builders. All surfaces are centered at the origin
// with outward-facing normals (Su x Sv points out of the solid);
// callers place them with Translated.

// bilinearPatch builds a degree 1x1 patch from four corners, indexed
// so that p10-p00 is the u direction and p01-p00 the v direction.
func bilinearPatch(p00, p10, p01, p11 v3.Vec) *Surface {
	return mustSurface(1, 1,
		[][]v3.Vec{{p00, p01}, {p10, p11}},
		[][]float64{{1, 1}, {1, 1}},
		[]float64{0, 0, 1, 1},
		[]float64{0, 0, 1, 1},
	)
}

// BoxSurfaces returns the six panels of a w x h x d box in the order
// +X, -X, +Y, -Y, +Z, -Z.
func BoxSurfaces(w, h, d float64) [6]*Surface {
	hw, hh, hd := w/2, h/2, d/2
	at := func(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

	return [6]*Surface{
		// +X: u along +Y, v along +Z.
		bilinearPatch(at(hw, -hh, -hd), at(hw, hh, -hd), at(hw, -hh, hd), at(hw, hh, hd)),
		// -X: u along +Z, v along +Y.
		bilinearPatch(at(-hw, -hh, -hd), at(-hw, -hh, hd), at(-hw, hh, -hd), at(-hw, hh, hd)),
		// +Y: u along +Z, v along +X.
		bilinearPatch(at(-hw, hh, -hd), at(-hw, hh, hd), at(hw, hh, -hd), at(hw, hh, hd)),
		// -Y: u along +X, v along +Z.
		bilinearPatch(at(-hw, -hh, -hd), at(hw, -hh, -hd), at(-hw, -hh, hd), at(hw, -hh, hd)),
		// +Z: u along +X, v along +Y.
		bilinearPatch(at(-hw, -hh, hd), at(hw, -hh, hd), at(-hw, hh, hd), at(hw, hh, hd)),
		// -Z: u along +Y, v along +X.
		bilinearPatch(at(-hw, -hh, -hd), at(-hw, hh, -hd), at(hw, -hh, -hd), at(hw, hh, -hd)),
	}
}

// CylinderSurface returns the lateral surface of a cylinder of the
// given radius and height about the Z axis: a full-circle rational
// quadratic in u extruded linearly in v from -height/2 to +height/2.
// Returns nil for a near-zero radius.
func CylinderSurface(radius, height float64) *Surface {
	circle := CircleCurve(v3.Vec{}, radius, v3.Vec{X: 1}, v3.Vec{Y: 1})
	if circle == nil {
		return nil
	}
	hh := height / 2

	rows := len(circle.ControlPoints)
	controlPoints := make([][]v3.Vec, rows)
	weights := make([][]float64, rows)
	for i, p := range circle.ControlPoints {
		controlPoints[i] = []v3.Vec{
			{X: p.X, Y: p.Y, Z: -hh},
			{X: p.X, Y: p.Y, Z: hh},
		}
		weights[i] = []float64{circle.Weights[i], circle.Weights[i]}
	}

	return mustSurface(2, 1, controlPoints, weights, circle.Knots, []float64{0, 0, 1, 1})
}

// SphereSurface returns a sphere of the given radius about the origin
// as a single periodic patch: a half-circle meridian from the south to
// the north pole (v direction) revolved a full turn about the Z axis
// (u direction). The poles are degenerate rows of coincident control
// points, as in the standard revolved-surface construction.
// Returns nil for a near-zero radius.
func SphereSurface(radius float64) *Surface {
	// Unit template for the circle of revolution; corner control
	// points carry the sqrt(2) offset and the cos(45) weight.
	unit := CircleCurve(v3.Vec{}, 1, v3.Vec{X: 1}, v3.Vec{Y: 1})

	// Meridian from (0,0,-r) through (r,0,0) to (0,0,r); its X
	// coordinate is the distance from the revolution axis.
	meridian := ArcFromAngles(v3.Vec{}, radius, v3.Vec{Z: -1}, v3.Vec{X: 1}, 0, math.Pi)
	if unit == nil || meridian == nil {
		return nil
	}

	rows := len(unit.ControlPoints)
	cols := len(meridian.ControlPoints)
	controlPoints := make([][]v3.Vec, rows)
	weights := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		controlPoints[i] = make([]v3.Vec, cols)
		weights[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			m := meridian.ControlPoints[j]
			controlPoints[i][j] = v3.Vec{
				X: unit.ControlPoints[i].X * m.X,
				Y: unit.ControlPoints[i].Y * m.X,
				Z: m.Z,
			}
			weights[i][j] = unit.Weights[i] * meridian.Weights[j]
		}
	}

	return mustSurface(2, 2, controlPoints, weights, unit.Knots, meridian.Knots)
}
