// Package raster provides the 2D image-plane geometry used to test and
// record object silhouettes: integer convex hulls and a labeled occupancy
// grid with polygon fill.
package raster

import (
	"image"
	"sort"
)

// ConvexHull returns the convex hull of the given pixel points with a fixed
// vertex orientation (clockwise on screen, where image Y grows downward), so
// repeated runs rasterize identically. The input is not modified. Collinear
// input collapses to its two extreme points; hulls with fewer than 3 points
// are degenerate and rasterize to nothing.
func ConvexHull(points []image.Point) []image.Point {
	if len(points) < 2 {
		return append([]image.Point(nil), points...)
	}

	pts := append([]image.Point(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	// drop duplicates so collinearity checks stay well defined
	uniq := pts[:1]
	for _, p := range pts[1:] {
		if p != uniq[len(uniq)-1] {
			uniq = append(uniq, p)
		}
	}
	pts = uniq
	if len(pts) <= 2 {
		return pts
	}

	// Andrew's monotone chain. cross > 0 keeps left turns in a Y-down frame.
	build := func(in []image.Point) []image.Point {
		var chain []image.Point
		for _, p := range in {
			for len(chain) >= 2 && cross(chain[len(chain)-2], chain[len(chain)-1], p) <= 0 {
				chain = chain[:len(chain)-1]
			}
			chain = append(chain, p)
		}
		return chain
	}

	lower := build(pts)
	reversed := make([]image.Point, len(pts))
	for i, p := range pts {
		reversed[len(pts)-1-i] = p
	}
	upper := build(reversed)

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) == 0 {
		// fully collinear set: keep the two extremes
		return []image.Point{pts[0], pts[len(pts)-1]}
	}
	return hull
}

// cross returns the z component of (b-a) x (c-a).
func cross(a, b, c image.Point) int {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
