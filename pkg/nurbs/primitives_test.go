package nurbs

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxSurfacesCornersAndNormals(t *testing.T) {
	faces := BoxSurfaces(2, 4, 6)

	// Face centers sit on the box, normals point outward.
	wantNormals := []v3.Vec{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
	wantCenters := []v3.Vec{
		{X: 1}, {X: -1}, {Y: 2}, {Y: -2}, {Z: 3}, {Z: -3},
	}
	for i, f := range faces {
		require.NotNil(t, f)
		center := f.Point(0.5, 0.5)
		assert.InDelta(t, 0, Distance(center, wantCenters[i]), 1e-12, "face %d", i)
		n := f.Normal(0.5, 0.5)
		assert.InDelta(t, 1, n.Dot(wantNormals[i]), 1e-12, "face %d", i)
	}
}

func TestCylinderSurfaceRadius(t *testing.T) {
	s := CylinderSurface(1.5, 4)

	for i := 0; i <= 16; i++ {
		for j := 0; j <= 4; j++ {
			u := float64(i) / 16
			v := float64(j) / 4
			p := s.Point(u, v)
			r := math.Hypot(p.X, p.Y)
			assert.InDelta(t, 1.5, r, 1e-9)
			assert.GreaterOrEqual(t, p.Z, -2.0-1e-12)
			assert.LessOrEqual(t, p.Z, 2.0+1e-12)
		}
	}

	// Outward normal on the equator line.
	n := s.Normal(0, 0.5)
	assert.InDelta(t, 1, n.X, 1e-9)
}

func TestDegenerateRadiusSurfacesAreNil(t *testing.T) {
	assert.Nil(t, CylinderSurface(0, 2))
	assert.Nil(t, SphereSurface(0))
}

func TestSphereSurfacePointsAtRadius(t *testing.T) {
	s := SphereSurface(2)

	for i := 0; i <= 16; i++ {
		for j := 0; j <= 16; j++ {
			u := float64(i) / 16
			v := float64(j) / 16
			p := s.Point(u, v)
			assert.InDelta(t, 2, p.Length(), 1e-9, "u=%v v=%v", u, v)
		}
	}

	// Poles are at the v extremes.
	assert.InDelta(t, 0, Distance(s.Point(0.25, 0), v3.Vec{Z: -2}), 1e-9)
	assert.InDelta(t, 0, Distance(s.Point(0.25, 1), v3.Vec{Z: 2}), 1e-9)

	// Normals point away from the center, including near the poles.
	for _, uv := range [][2]float64{{0, 0.5}, {0.3, 0.7}, {0.5, 0.001}, {0.9, 0.999}} {
		p := s.Point(uv[0], uv[1])
		n := s.Normal(uv[0], uv[1])
		require.InDelta(t, 1, n.Length(), 1e-9)
		assert.Greater(t, n.Dot(p.Normalize()), 0.99)
	}
}
