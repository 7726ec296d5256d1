package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	// jacobiMaxIterations bounds the eigen-solver so plane fitting
	// terminates in fixed time regardless of input conditioning.
	jacobiMaxIterations = 32

	// jacobiTolerance is the off-diagonal magnitude at which the
	// rotation loop exits early.
	jacobiTolerance = 1e-10
)

// BestFitPlane fits a plane to a point cloud by minimizing squared
// perpendicular distances: the plane passes through the centroid and
// its normal is the eigenvector of the covariance matrix with the
// smallest eigenvalue. If the eigen-solve degenerates, the Newell
// normal of the points is used instead. Fewer than 3 points yields a
// plane with the default up normal.
func BestFitPlane(points []v3.Vec) Plane {
	if len(points) < 3 {
		var origin v3.Vec
		if len(points) > 0 {
			for _, p := range points {
				origin = origin.Add(p)
			}
			origin = origin.DivScalar(float64(len(points)))
		}
		return PlaneFromNormal(origin, UpNormal())
	}

	var centroid v3.Vec
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.DivScalar(float64(len(points)))

	var cov [3][3]float64
	for _, p := range points {
		d := p.Sub(centroid)
		dv := [3]float64{d.X, d.Y, d.Z}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[i][j] += dv[i] * dv[j]
			}
		}
	}

	eigenvalues, eigenvectors := jacobiEigen(cov)

	smallest := 0
	for i := 1; i < 3; i++ {
		if eigenvalues[i] < eigenvalues[smallest] {
			smallest = i
		}
	}
	normal := v3.Vec{
		X: eigenvectors[0][smallest],
		Y: eigenvectors[1][smallest],
		Z: eigenvectors[2][smallest],
	}

	if normal.Length() < EpsilonDistance {
		normal = NewellNormal(points)
	}

	return PlaneFromNormal(centroid, normal)
}

// jacobiEigen diagonalizes a symmetric 3x3 matrix with cyclic Jacobi
// rotations, pivoting on the largest off-diagonal element. The
// iteration count is capped rather than convergence-checked; for
// geometry covariance matrices the cap is far beyond what is needed.
// Returns eigenvalues and the matrix whose columns are eigenvectors.
func jacobiEigen(m [3][3]float64) ([3]float64, [3][3]float64) {
	a := m
	vecs := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for iter := 0; iter < jacobiMaxIterations; iter++ {
		// Largest off-diagonal element as the pivot.
		p, q := 0, 1
		largest := math.Abs(a[0][1])
		if math.Abs(a[0][2]) > largest {
			p, q = 0, 2
			largest = math.Abs(a[0][2])
		}
		if math.Abs(a[1][2]) > largest {
			p, q = 1, 2
			largest = math.Abs(a[1][2])
		}
		if largest < jacobiTolerance {
			break
		}

		// Rotation angle zeroing a[p][q].
		var t float64
		diff := a[q][q] - a[p][p]
		if math.Abs(diff) < jacobiTolerance {
			t = 1
		} else {
			theta := diff / (2 * a[p][q])
			t = 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
			if theta < 0 {
				t = -t
			}
		}
		c := 1 / math.Sqrt(t*t+1)
		s := t * c

		apq := a[p][q]
		app, aqq := a[p][p], a[q][q]
		a[p][p] = c*c*app - 2*s*c*apq + s*s*aqq
		a[q][q] = s*s*app + 2*s*c*apq + c*c*aqq
		a[p][q] = 0
		a[q][p] = 0
		for k := 0; k < 3; k++ {
			if k == p || k == q {
				continue
			}
			akp, akq := a[k][p], a[k][q]
			a[k][p] = c*akp - s*akq
			a[p][k] = a[k][p]
			a[k][q] = s*akp + c*akq
			a[q][k] = a[k][q]
		}
		for k := 0; k < 3; k++ {
			vkp, vkq := vecs[k][p], vecs[k][q]
			vecs[k][p] = c*vkp - s*vkq
			vecs[k][q] = s*vkp + c*vkq
		}
	}

	return [3]float64{a[0][0], a[1][1], a[2][2]}, vecs
}
