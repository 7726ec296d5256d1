// Package geom provides the vector and plane math underneath the
// geometry kernel: plane frames with repair, Newell normals, best-fit
// planes, and plane-local 2D projection. Vectors reuse the sdfx vector
// types so the B-Rep model and the kernel backends share one
// representation.
package geom

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	// EpsilonDistance is the distance below which two points are
	// considered coincident.
	EpsilonDistance = 1e-6

	// EpsilonAngle is the angular slack used when classifying arc
	// sweep directions.
	EpsilonAngle = 1e-4
)

// UpNormal is the default normal returned for degenerate inputs.
func UpNormal() v3.Vec {
	return v3.Vec{X: 0, Y: 1, Z: 0}
}

// Lerp interpolates between a and b. t is not clamped.
func Lerp(a, b v3.Vec, t float64) v3.Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}

// Distance returns the distance between two points.
func Distance(a, b v3.Vec) float64 {
	return a.Sub(b).Length()
}

// Distance2D returns the distance between two plane-local points.
func Distance2D(a, b v2.Vec) float64 {
	return a.Sub(b).Length()
}

// NewellNormal computes a polygon normal by Newell's method, summing
// edge-pair contributions. Fewer than 3 points yields the default up
// normal rather than an error.
func NewellNormal(points []v3.Vec) v3.Vec {
	if len(points) < 3 {
		return UpNormal()
	}

	var n v3.Vec
	for i, cur := range points {
		next := points[(i+1)%len(points)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}

	if n.Length() < EpsilonDistance {
		return UpNormal()
	}
	return n.Normalize()
}

// Collinear reports whether three points form a straight line, using
// twice the squared triangle area so no square roots are needed.
func Collinear(p1, p2, p3 v3.Vec, tol float64) bool {
	n := p2.Sub(p1).Cross(p3.Sub(p1))
	return n.Dot(n) < tol
}
