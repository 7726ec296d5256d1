// Package triangulate converts simple planar polygons, optionally with
// holes, into triangle index lists. It wraps the poly2tri constrained
// Delaunay tessellator and knows nothing about B-Rep topology.
package triangulate

import (
	poly2tri "github.com/ByteArena/poly2tri-go"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Polygon walks a simple (non-self-intersecting) outer contour and
// zero or more hole contours and returns a flat triangle index list
// over the combined vertex set: indices 0..len(contour)-1 address the
// contour, then the points of each hole in order. Holes with fewer
// than 3 points are not holes; they are skipped entirely and occupy
// no index slots. Degenerate input, fewer than 3 contour points or a
// contour the tessellator rejects, yields an empty list rather than
// an error, since near-degenerate polygons are ordinary interactive
// input.
func Polygon(contour []v2.Vec, holes [][]v2.Vec) []int {
	if len(contour) < 3 {
		return nil
	}

	// poly2tri hands back triangles referencing our input points, so
	// keep a pointer-identity map to recover indices.
	index := make(map[*poly2tri.Point]int, len(contour))
	next := 0

	toPoints := func(pts []v2.Vec) []*poly2tri.Point {
		out := make([]*poly2tri.Point, len(pts))
		for i, p := range pts {
			out[i] = poly2tri.NewPoint(p.X, p.Y)
			index[out[i]] = next
			next++
		}
		return out
	}

	outer := toPoints(contour)
	var holePts [][]*poly2tri.Point
	for _, h := range holes {
		if len(h) < 3 {
			continue
		}
		holePts = append(holePts, toPoints(h))
	}

	return sweep(outer, holePts, index)
}

// sweep runs the tessellator behind a recover fence: poly2tri panics
// on contours it cannot handle (repeated points, self-intersections),
// and those degrade to the empty result.
func sweep(contour []*poly2tri.Point, holes [][]*poly2tri.Point, index map[*poly2tri.Point]int) (indices []int) {
	defer func() {
		if r := recover(); r != nil {
			indices = nil
		}
	}()

	ctx := poly2tri.NewSweepContext(contour, false)
	for _, h := range holes {
		ctx.AddHole(h)
	}
	ctx.Triangulate()

	for _, tri := range ctx.GetTriangles() {
		i0, ok0 := index[tri.Points[0]]
		i1, ok1 := index[tri.Points[1]]
		i2, ok2 := index[tri.Points[2]]
		if !ok0 || !ok1 || !ok2 {
			// Tessellator-inserted point; drop the triangle.
			continue
		}
		indices = append(indices, i0, i1, i2)
	}
	return indices
}
