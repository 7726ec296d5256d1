package nurbs

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrInvalidSurface marks a surface whose arrays violate the NURBS
// invariants.
var ErrInvalidSurface = errors.New("nurbs: invalid surface data")

// Surface is a rational tensor-product B-spline patch. ControlPoints
// is indexed [u][v]. Immutable once built.
type Surface struct {
	ControlPoints [][]v3.Vec
	Weights       [][]float64
	KnotsU        []float64
	KnotsV        []float64
	DegreeU       int
	DegreeV       int
}

// NewSurface builds a surface and validates the NURBS invariants.
func NewSurface(degreeU, degreeV int, controlPoints [][]v3.Vec, weights [][]float64, knotsU, knotsV []float64) (*Surface, error) {
	s := &Surface{
		ControlPoints: controlPoints,
		Weights:       weights,
		KnotsU:        knotsU,
		KnotsV:        knotsV,
		DegreeU:       degreeU,
		DegreeV:       degreeV,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func mustSurface(degreeU, degreeV int, controlPoints [][]v3.Vec, weights [][]float64, knotsU, knotsV []float64) *Surface {
	s, err := NewSurface(degreeU, degreeV, controlPoints, weights, knotsU, knotsV)
	if err != nil {
		panic(fmt.Sprintf("nurbs: bad generated surface: %v", err))
	}
	return s
}

// Validate checks the structural invariants of the patch.
func (s *Surface) Validate() error {
	if s.DegreeU < 1 || s.DegreeV < 1 {
		return fmt.Errorf("%w: degrees %dx%d", ErrInvalidSurface, s.DegreeU, s.DegreeV)
	}
	if len(s.ControlPoints) == 0 || len(s.ControlPoints[0]) == 0 {
		return fmt.Errorf("%w: empty control net", ErrInvalidSurface)
	}
	cols := len(s.ControlPoints[0])
	if len(s.Weights) != len(s.ControlPoints) {
		return fmt.Errorf("%w: %d weight rows for %d control rows",
			ErrInvalidSurface, len(s.Weights), len(s.ControlPoints))
	}
	for i, row := range s.ControlPoints {
		if len(row) != cols {
			return fmt.Errorf("%w: ragged control net at row %d", ErrInvalidSurface, i)
		}
		if len(s.Weights[i]) != cols {
			return fmt.Errorf("%w: ragged weights at row %d", ErrInvalidSurface, i)
		}
		for j, w := range s.Weights[i] {
			if w <= 0 {
				return fmt.Errorf("%w: weight[%d][%d] = %v is not positive", ErrInvalidSurface, i, j, w)
			}
		}
	}
	if len(s.KnotsU) != len(s.ControlPoints)+s.DegreeU+1 {
		return fmt.Errorf("%w: %d u-knots, want %d",
			ErrInvalidSurface, len(s.KnotsU), len(s.ControlPoints)+s.DegreeU+1)
	}
	if len(s.KnotsV) != cols+s.DegreeV+1 {
		return fmt.Errorf("%w: %d v-knots, want %d",
			ErrInvalidSurface, len(s.KnotsV), cols+s.DegreeV+1)
	}
	return nil
}

// DomainU returns the valid u parameter range.
func (s *Surface) DomainU() (min, max float64) {
	return s.KnotsU[0], s.KnotsU[len(s.KnotsU)-1]
}

// DomainV returns the valid v parameter range.
func (s *Surface) DomainV() (min, max float64) {
	return s.KnotsV[0], s.KnotsV[len(s.KnotsV)-1]
}

// Point evaluates the surface at (u, v).
func (s *Surface) Point(u, v float64) v3.Vec {
	pt, _, _ := s.Derivatives(u, v)
	return pt
}

// Derivatives evaluates the surface point and first partial
// derivatives at (u, v), applying the rational quotient-rule
// correction to the homogeneous derivatives.
func (s *Surface) Derivatives(u, v float64) (pt, su, sv v3.Vec) {
	spanU := knotSpan(s.KnotsU, s.DegreeU, u)
	spanV := knotSpan(s.KnotsV, s.DegreeV, v)
	bu := derivativeBasisFunctions(spanU, u, s.DegreeU, s.KnotsU)
	bv := derivativeBasisFunctions(spanV, v, s.DegreeV, s.KnotsV)

	// Homogeneous point and partials: A = sum w*P, w = sum w.
	var a00, a10, a01 v3.Vec
	var w00, w10, w01 float64
	for i := 0; i <= s.DegreeU; i++ {
		ui := spanU - s.DegreeU + i
		for j := 0; j <= s.DegreeV; j++ {
			vj := spanV - s.DegreeV + j
			wij := s.Weights[ui][vj]
			p := s.ControlPoints[ui][vj].MulScalar(wij)

			b00 := bu[0][i] * bv[0][j]
			b10 := bu[1][i] * bv[0][j]
			b01 := bu[0][i] * bv[1][j]

			a00 = a00.Add(p.MulScalar(b00))
			a10 = a10.Add(p.MulScalar(b10))
			a01 = a01.Add(p.MulScalar(b01))
			w00 += wij * b00
			w10 += wij * b10
			w01 += wij * b01
		}
	}

	pt = a00.DivScalar(w00)
	su = a10.Sub(pt.MulScalar(w10)).DivScalar(w00)
	sv = a01.Sub(pt.MulScalar(w01)).DivScalar(w00)
	return pt, su, sv
}

// Normal returns the unit surface normal at (u, v). At degenerate
// parameterization points (e.g. sphere poles) the partials collapse;
// the evaluation is nudged inside the domain until a usable cross
// product appears, so callers never see NaN.
func (s *Surface) Normal(u, v float64) v3.Vec {
	minU, maxU := s.DomainU()
	minV, maxV := s.DomainV()
	du := (maxU - minU) * 1e-4
	dv := (maxV - minV) * 1e-4

	for attempt := 0; attempt < 4; attempt++ {
		_, su, sv := s.Derivatives(u, v)
		n := su.Cross(sv)
		if n.Length() > 1e-12 {
			return n.Normalize()
		}
		// Step away from the degenerate point.
		if u-minU < maxU-u {
			u += du
		} else {
			u -= du
		}
		if v-minV < maxV-v {
			v += dv
		} else {
			v -= dv
		}
		du *= 10
		dv *= 10
	}
	return v3.Vec{}
}

// Translated returns a copy of the surface with every control point
// offset by d. Primitive surfaces are built about the origin and
// placed with this.
func (s *Surface) Translated(d v3.Vec) *Surface {
	pts := make([][]v3.Vec, len(s.ControlPoints))
	for i, row := range s.ControlPoints {
		pts[i] = make([]v3.Vec, len(row))
		for j, p := range row {
			pts[i][j] = p.Add(d)
		}
	}
	return &Surface{
		ControlPoints: pts,
		Weights:       s.Weights,
		KnotsU:        s.KnotsU,
		KnotsV:        s.KnotsV,
		DegreeU:       s.DegreeU,
		DegreeV:       s.DegreeV,
	}
}
