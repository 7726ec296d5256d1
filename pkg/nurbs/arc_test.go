package nurbs

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petersancho/brepkit/pkg/geom"
)

func xyPlane() geom.Plane {
	return geom.Plane{Normal: v3.Vec{Z: 1}, XAxis: v3.Vec{X: 1}, YAxis: v3.Vec{Y: 1}}.ResolveBasis()
}

func TestCircleCenter2D(t *testing.T) {
	// Unit circle through three well-known points.
	center, ok := CircleCenter2D(v2.Vec{X: 1}, v2.Vec{Y: 1}, v2.Vec{X: -1})
	require.True(t, ok)
	assert.InDelta(t, 0, center.X, 1e-12)
	assert.InDelta(t, 0, center.Y, 1e-12)

	// Collinear points have no circumcenter.
	_, ok = CircleCenter2D(v2.Vec{}, v2.Vec{X: 1}, v2.Vec{X: 2})
	assert.False(t, ok)
}

func TestArcSweepBranches(t *testing.T) {
	// Mid point inside the CCW sweep keeps it positive.
	assert.InDelta(t, math.Pi/2, ArcSweep(0, math.Pi/4, math.Pi/2), 1e-12)

	// Mid point outside flips to the CW complement.
	assert.InDelta(t, math.Pi/2-2*math.Pi, ArcSweep(0, math.Pi, math.Pi/2), 1e-12)
}

func TestArcPolylineOnCircle(t *testing.T) {
	pl := xyPlane()
	start := v3.Vec{X: 1}
	end := v3.Vec{X: -1}
	through := v3.Vec{Y: 1}

	pts := ArcPolyline(pl, start, end, through, 48)
	require.NotNil(t, pts)
	require.GreaterOrEqual(t, len(pts), 9)

	assert.Equal(t, start, pts[0])
	assert.Equal(t, end, pts[len(pts)-1])
	for _, p := range pts {
		assert.InDelta(t, 1, p.Length(), 1e-6)
	}

	// The sampled branch passes near the through point.
	best := math.Inf(1)
	for _, p := range pts {
		if d := Distance(p, through); d < best {
			best = d
		}
	}
	assert.Less(t, best, 0.1)
}

func TestArcPolylineCollinearReturnsNil(t *testing.T) {
	pl := xyPlane()
	assert.Nil(t, ArcPolyline(pl, v3.Vec{}, v3.Vec{X: 2}, v3.Vec{X: 1}, 48))
}

func TestArcPolylineSampleCountClamp(t *testing.T) {
	pl := xyPlane()
	// A tiny sweep still yields at least 8 segments.
	start := v3.Vec{X: 1}
	end := v3.Vec{X: math.Cos(0.1), Y: math.Sin(0.1)}
	through := v3.Vec{X: math.Cos(0.05), Y: math.Sin(0.05)}
	pts := ArcPolyline(pl, start, end, through, 48)
	require.NotNil(t, pts)
	assert.Len(t, pts, 9)
}

func TestArcCurveMatchesFit(t *testing.T) {
	pl := xyPlane()
	start := v3.Vec{X: 2}
	end := v3.Vec{Y: 2}
	through := v3.Vec{X: math.Sqrt2, Y: math.Sqrt2}

	c := ArcCurve(pl, start, end, through)
	require.NotNil(t, c)

	assert.InDelta(t, 0, Distance(c.Start(), start), 1e-9)
	assert.InDelta(t, 0, Distance(c.End(), end), 1e-9)
	for i := 0; i <= 32; i++ {
		u := float64(i) / 32
		assert.InDelta(t, 2, c.Point(u).Length(), 1e-9)
	}

	// Collinear input degrades to nil.
	assert.Nil(t, ArcCurve(pl, v3.Vec{}, v3.Vec{X: 2}, v3.Vec{X: 1}))
}
