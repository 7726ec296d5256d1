package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// parallelDot is the |dot| threshold above which two unit vectors are
// treated as parallel when repairing a plane basis.
const parallelDot = 0.999

// Plane is an orthonormal local frame: a point of origin, a unit
// normal, and two in-plane axes. Degenerate values are legal and are
// repaired by ResolveBasis before use.
type Plane struct {
	Origin v3.Vec
	Normal v3.Vec
	XAxis  v3.Vec
	YAxis  v3.Vec
}

// PlaneFromNormal builds a repaired plane through origin with the given
// normal and derived in-plane axes.
func PlaneFromNormal(origin, normal v3.Vec) Plane {
	return Plane{Origin: origin, Normal: normal}.ResolveBasis()
}

// ResolveBasis repairs a possibly-degenerate plane frame. A near-zero
// normal falls back to the cross product of the axes, then to the
// default up normal. Near-zero or near-parallel axes are rederived from
// the normal with a world-up reference. Repair is a fixed point: calling
// ResolveBasis on an already-valid frame leaves it unchanged up to
// floating point error.
func (p Plane) ResolveBasis() Plane {
	normal := p.Normal
	if normal.Length() < EpsilonDistance {
		normal = p.XAxis.Cross(p.YAxis)
		if normal.Length() < EpsilonDistance {
			normal = UpNormal()
		}
	}
	normal = normal.Normalize()

	x, y := p.XAxis, p.YAxis
	if !axesValid(x, y, normal) {
		ref := UpNormal()
		if math.Abs(normal.Dot(ref)) > parallelDot {
			ref = v3.Vec{X: 1, Y: 0, Z: 0}
		}
		x = ref.Cross(normal).Normalize()
		y = normal.Cross(x)
	} else {
		x = x.Normalize()
		y = y.Normalize()
	}

	return Plane{Origin: p.Origin, Normal: normal, XAxis: x, YAxis: y}
}

// axesValid reports whether the axes are usable as-is: nonzero, not
// parallel to each other, and not parallel to the normal.
func axesValid(x, y, normal v3.Vec) bool {
	if x.Length() < EpsilonDistance || y.Length() < EpsilonDistance {
		return false
	}
	xn, yn := x.Normalize(), y.Normalize()
	if math.Abs(xn.Dot(yn)) > parallelDot {
		return false
	}
	if math.Abs(xn.Dot(normal)) > parallelDot || math.Abs(yn.Dot(normal)) > parallelDot {
		return false
	}
	return true
}

// Project maps a world point to plane-local (u,v) coordinates.
func (p Plane) Project(pt v3.Vec) v2.Vec {
	d := pt.Sub(p.Origin)
	return v2.Vec{X: d.Dot(p.XAxis), Y: d.Dot(p.YAxis)}
}

// Unproject maps plane-local (u,v) coordinates back to a world point.
// It is the exact inverse of Project for points on the plane.
func (p Plane) Unproject(uv v2.Vec) v3.Vec {
	return p.Origin.Add(p.XAxis.MulScalar(uv.X)).Add(p.YAxis.MulScalar(uv.Y))
}
