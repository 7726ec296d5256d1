// Package nurbs implements the rational curve and surface forms used
// by the B-Rep kernel: rational quadratic Bezier chains for circular
// arcs, and the primitive box/cylinder/sphere surface patches.
// Evaluation follows the basis-function algorithms of Piegl & Tiller
// (The NURBS Book, 2nd edition).
package nurbs

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrInvalidCurve marks a curve whose arrays violate the NURBS
// invariants. This is a programmer error in a constructor, not bad
// user input, so it surfaces loudly instead of degrading.
var ErrInvalidCurve = errors.New("nurbs: invalid curve data")

// Curve is a rational B-spline curve. The kernel only constructs the
// rational quadratic family (arcs and circles) plus degree-1 lines,
// but evaluation is written for any degree. Immutable once built.
type Curve struct {
	ControlPoints []v3.Vec
	Weights       []float64
	Knots         []float64
	Degree        int
}

// NewCurve builds a curve and validates the NURBS invariants.
func NewCurve(degree int, controlPoints []v3.Vec, weights, knots []float64) (*Curve, error) {
	c := &Curve{
		ControlPoints: controlPoints,
		Weights:       weights,
		Knots:         knots,
		Degree:        degree,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// mustCurve is for the package's own constructors, whose outputs are
// correct by construction.
func mustCurve(degree int, controlPoints []v3.Vec, weights, knots []float64) *Curve {
	c, err := NewCurve(degree, controlPoints, weights, knots)
	if err != nil {
		panic(fmt.Sprintf("nurbs: bad generated curve: %v", err))
	}
	return c
}

// Validate checks the structural invariants relating control points,
// weights, knots, and degree.
func (c *Curve) Validate() error {
	if c.Degree < 1 {
		return fmt.Errorf("%w: degree %d < 1", ErrInvalidCurve, c.Degree)
	}
	if len(c.ControlPoints) == 0 {
		return fmt.Errorf("%w: no control points", ErrInvalidCurve)
	}
	if len(c.Weights) != len(c.ControlPoints) {
		return fmt.Errorf("%w: %d weights for %d control points",
			ErrInvalidCurve, len(c.Weights), len(c.ControlPoints))
	}
	if len(c.Knots) != len(c.ControlPoints)+c.Degree+1 {
		return fmt.Errorf("%w: %d knots, want %d",
			ErrInvalidCurve, len(c.Knots), len(c.ControlPoints)+c.Degree+1)
	}
	for i, w := range c.Weights {
		if w <= 0 {
			return fmt.Errorf("%w: weight[%d] = %v is not positive", ErrInvalidCurve, i, w)
		}
	}
	for i := 1; i < len(c.Knots); i++ {
		if c.Knots[i] < c.Knots[i-1] {
			return fmt.Errorf("%w: knots decrease at index %d", ErrInvalidCurve, i)
		}
	}
	return nil
}

// Domain returns the valid parameter range of the curve.
func (c *Curve) Domain() (min, max float64) {
	return c.Knots[0], c.Knots[len(c.Knots)-1]
}

// Start and End return the curve endpoints. The knot vectors built by
// this package are clamped, so these are the first and last control
// points.
func (c *Curve) Start() v3.Vec { return c.ControlPoints[0] }
func (c *Curve) End() v3.Vec   { return c.ControlPoints[len(c.ControlPoints)-1] }

// Closed reports whether the curve's endpoints coincide.
func (c *Curve) Closed() bool {
	return c.Start().Sub(c.End()).Length() < 1e-9
}

// Point evaluates the curve at parameter u by dividing through the
// homogeneous form.
func (c *Curve) Point(u float64) v3.Vec {
	span := knotSpan(c.Knots, c.Degree, u)
	basis := basisFunctions(span, u, c.Degree, c.Knots)

	var pos v3.Vec
	var w float64
	for j := 0; j <= c.Degree; j++ {
		i := span - c.Degree + j
		wi := c.Weights[i] * basis[j]
		pos = pos.Add(c.ControlPoints[i].MulScalar(wi))
		w += wi
	}
	return pos.DivScalar(w)
}

// knotSpan locates the knot span index containing u
// (Piegl & Tiller A2.1, with the clamped end handled explicitly).
func knotSpan(knots []float64, degree int, u float64) int {
	n := len(knots) - degree - 2
	if u >= knots[n+1] {
		return n
	}
	if u <= knots[degree] {
		return degree
	}
	low, high := degree, n+1
	mid := (low + high) / 2
	for u < knots[mid] || u >= knots[mid+1] {
		if u < knots[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// basisFunctions computes the non-vanishing basis functions at u
// (Piegl & Tiller A2.2).
func basisFunctions(span int, u float64, degree int, knots []float64) []float64 {
	basis := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)

	basis[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		var saved float64
		for r := 0; r < j; r++ {
			temp := basis[r] / (right[r+1] + left[j-r])
			basis[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		basis[j] = saved
	}
	return basis
}

// derivativeBasisFunctions computes basis functions and their first
// derivatives at u (Piegl & Tiller A2.3 limited to one derivative).
// Row 0 holds basis values, row 1 the derivatives.
func derivativeBasisFunctions(span int, u float64, degree int, knots []float64) [2][]float64 {
	ndu := make([][]float64, degree+1)
	for i := range ndu {
		ndu[i] = make([]float64, degree+1)
	}
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)

	ndu[0][0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		var saved float64
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}

	var out [2][]float64
	out[0] = make([]float64, degree+1)
	out[1] = make([]float64, degree+1)
	for j := 0; j <= degree; j++ {
		out[0][j] = ndu[j][degree]
	}

	// First derivative from the lower-degree basis columns.
	for r := 0; r <= degree; r++ {
		var d float64
		rk := r - 1
		pk := degree - 1
		if r >= 1 {
			d = ndu[rk][pk] / ndu[pk+1][rk]
		}
		if r <= pk {
			d -= ndu[r][pk] / ndu[pk+1][r]
		}
		out[1][r] = d * float64(degree)
	}
	return out
}
