package nurbs

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/petersancho/brepkit/pkg/geom"
)

// maxSegmentAngle caps each rational quadratic Bezier segment at a
// quarter turn, bounding the weight approximation error.
const maxSegmentAngle = math.Pi / 2

// defaultArcSegments is the base sample count for a full-circle
// polyline.
const defaultArcSegments = 48

// ArcFromAngles represents the circular arc from startAngle to
// endAngle (radians, signed sweep allowed) as a chain of rational
// quadratic Bezier segments of at most 90 degrees each. The arc lies
// in the plane spanned by xAxis/yAxis about center. Consecutive
// segments share their boundary control point, and the knot vector is
// clamped degree 2 with each interior knot doubled.
func ArcFromAngles(center v3.Vec, radius float64, xAxis, yAxis v3.Vec, startAngle, endAngle float64) *Curve {
	sweep := endAngle - startAngle
	if math.Abs(sweep) < geom.EpsilonAngle || radius < geom.EpsilonDistance {
		return nil
	}

	numSegments := int(math.Ceil(math.Abs(sweep) / maxSegmentAngle))
	dtheta := sweep / float64(numSegments)
	w := math.Cos(math.Abs(dtheta) / 2)

	at := func(angle, r float64) v3.Vec {
		return center.
			Add(xAxis.MulScalar(r * math.Cos(angle))).
			Add(yAxis.MulScalar(r * math.Sin(angle)))
	}

	controlPoints := make([]v3.Vec, 0, 2*numSegments+1)
	weights := make([]float64, 0, 2*numSegments+1)
	knots := make([]float64, 0, 2*numSegments+4)

	controlPoints = append(controlPoints, at(startAngle, radius))
	weights = append(weights, 1)
	knots = append(knots, 0, 0, 0)

	for i := 0; i < numSegments; i++ {
		a0 := startAngle + float64(i)*dtheta
		a1 := a0 + dtheta
		bisector := (a0 + a1) / 2

		// Middle control point on the bisector, pushed out so the
		// weighted quadratic passes exactly through the circle.
		controlPoints = append(controlPoints, at(bisector, radius/w))
		weights = append(weights, w)

		controlPoints = append(controlPoints, at(a1, radius))
		weights = append(weights, 1)

		if i < numSegments-1 {
			boundary := float64(i+1) / float64(numSegments)
			knots = append(knots, boundary, boundary)
		}
	}
	knots = append(knots, 1, 1, 1)

	return mustCurve(2, controlPoints, weights, knots)
}

// CircleCurve is the full-circle special case of ArcFromAngles.
func CircleCurve(center v3.Vec, radius float64, xAxis, yAxis v3.Vec) *Curve {
	return ArcFromAngles(center, radius, xAxis, yAxis, 0, 2*math.Pi)
}

// CircleCenter2D returns the circumcenter of three plane-local points
// via the determinant formula. ok is false when the points are
// collinear and no unique circle exists.
func CircleCenter2D(a, b, c v2.Vec) (center v2.Vec, ok bool) {
	denom := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(denom) < geom.EpsilonDistance {
		return v2.Vec{}, false
	}

	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return v2.Vec{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / denom,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / denom,
	}, true
}

// ArcSweep resolves the signed sweep from startAngle to endAngle that
// passes through midAngle: the counterclockwise sweep if midAngle lies
// within it, otherwise the complementary clockwise (negative) sweep.
func ArcSweep(startAngle, midAngle, endAngle float64) float64 {
	ccw := normalizeAngle(endAngle - startAngle)
	mid := normalizeAngle(midAngle - startAngle)
	if mid <= ccw+geom.EpsilonAngle {
		return ccw
	}
	return ccw - 2*math.Pi
}

// normalizeAngle maps an angle into [0, 2pi).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// arcFit2D is the shared 3-point circle fit behind ArcPolyline and
// ArcCurve: project into the plane, find the circumcenter, and resolve
// the sweep branch that passes near the through point.
type arcFit2D struct {
	center     v2.Vec
	radius     float64
	startAngle float64
	sweep      float64
}

func fitArc2D(plane geom.Plane, start, end, through v3.Vec) (arcFit2D, bool) {
	a := plane.Project(start)
	b := plane.Project(end)
	m := plane.Project(through)

	center, ok := CircleCenter2D(a, b, m)
	if !ok {
		return arcFit2D{}, false
	}
	radius := a.Sub(center).Length()
	if radius < geom.EpsilonDistance {
		return arcFit2D{}, false
	}

	angle := func(p v2.Vec) float64 {
		d := p.Sub(center)
		return math.Atan2(d.Y, d.X)
	}
	startAngle := angle(a)
	sweep := ArcSweep(startAngle, angle(m), angle(b))

	return arcFit2D{center: center, radius: radius, startAngle: startAngle, sweep: sweep}, true
}

// ArcPolyline samples the circular arc through three points lying near
// the given plane: from start to end, passing through the through
// point. The sample count scales with the sweep from baseSegments
// (<= 0 selects the default of 48) and is clamped to [8, 2*base].
// Returns nil when the points are collinear in-plane or the fitted
// circle is degenerate.
func ArcPolyline(plane geom.Plane, start, end, through v3.Vec, baseSegments int) []v3.Vec {
	if baseSegments <= 0 {
		baseSegments = defaultArcSegments
	}
	fit, ok := fitArc2D(plane, start, end, through)
	if !ok {
		return nil
	}

	n := int(math.Round(float64(baseSegments) * math.Abs(fit.sweep) / (2 * math.Pi)))
	if n < 8 {
		n = 8
	}
	if max := 2 * baseSegments; max > 8 && n > max {
		n = max
	}

	points := make([]v3.Vec, 0, n+1)
	points = append(points, start)
	for i := 1; i < n; i++ {
		a := fit.startAngle + fit.sweep*float64(i)/float64(n)
		uv := fit.center.Add(v2.Vec{X: math.Cos(a), Y: math.Sin(a)}.MulScalar(fit.radius))
		points = append(points, plane.Unproject(uv))
	}
	points = append(points, end)
	return points
}

// ArcCurve builds the NURBS form of the same 3-point arc. Returns nil
// for collinear or degenerate input.
func ArcCurve(plane geom.Plane, start, end, through v3.Vec) *Curve {
	fit, ok := fitArc2D(plane, start, end, through)
	if !ok {
		return nil
	}
	center := plane.Unproject(fit.center)
	return ArcFromAngles(center, fit.radius, plane.XAxis, plane.YAxis,
		fit.startAngle, fit.startAngle+fit.sweep)
}
