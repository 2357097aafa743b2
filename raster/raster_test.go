package raster

import (
	"image"
	"testing"

	"go.viam.com/test"
)

func TestConvexHull(t *testing.T) {
	t.Run("square with interior point", func(t *testing.T) {
		pts := []image.Point{
			{4, 4}, {0, 0}, {8, 0}, {8, 8}, {0, 8}, {4, 1},
		}
		hull := ConvexHull(pts)
		test.That(t, hull, test.ShouldResemble, []image.Point{
			{0, 0}, {8, 0}, {8, 8}, {0, 8},
		})
	})

	t.Run("deterministic under input order", func(t *testing.T) {
		a := []image.Point{{0, 0}, {10, 0}, {10, 6}, {0, 6}, {5, 3}}
		b := []image.Point{{5, 3}, {0, 6}, {10, 6}, {10, 0}, {0, 0}}
		test.That(t, ConvexHull(a), test.ShouldResemble, ConvexHull(b))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		pts := []image.Point{{1, 1}, {1, 1}, {3, 1}, {3, 3}, {1, 1}}
		hull := ConvexHull(pts)
		test.That(t, hull, test.ShouldResemble, []image.Point{{1, 1}, {3, 1}, {3, 3}})
	})

	t.Run("collinear points degenerate", func(t *testing.T) {
		pts := []image.Point{{0, 0}, {2, 2}, {4, 4}, {6, 6}}
		hull := ConvexHull(pts)
		test.That(t, len(hull), test.ShouldBeLessThanOrEqualTo, 2)
	})

	t.Run("single point", func(t *testing.T) {
		hull := ConvexHull([]image.Point{{5, 5}})
		test.That(t, len(hull), test.ShouldBeLessThanOrEqualTo, 2)
	})
}

func TestOccupancyFill(t *testing.T) {
	square := func(x0, y0, x1, y1 int) []image.Point {
		return []image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	}

	t.Run("fill writes label", func(t *testing.T) {
		m := NewOccupancyMap(20, 20)
		m.Fill(square(2, 2, 6, 6), 1)
		test.That(t, m.At(4, 4), test.ShouldEqual, int32(1))
		test.That(t, m.At(2, 2), test.ShouldEqual, int32(1))
		test.That(t, m.At(6, 6), test.ShouldEqual, int32(1))
		test.That(t, m.At(7, 4), test.ShouldEqual, int32(0))
		test.That(t, m.At(4, 7), test.ShouldEqual, int32(0))
	})

	t.Run("later fill overwrites", func(t *testing.T) {
		m := NewOccupancyMap(20, 20)
		m.Fill(square(0, 0, 10, 10), 1)
		m.Fill(square(5, 5, 15, 15), 2)
		test.That(t, m.At(2, 2), test.ShouldEqual, int32(1))
		test.That(t, m.At(7, 7), test.ShouldEqual, int32(2))
		test.That(t, m.At(12, 12), test.ShouldEqual, int32(2))
	})

	t.Run("fill clips to the map", func(t *testing.T) {
		m := NewOccupancyMap(8, 8)
		m.Fill(square(-4, -4, 12, 12), 3)
		test.That(t, m.At(0, 0), test.ShouldEqual, int32(3))
		test.That(t, m.At(7, 7), test.ShouldEqual, int32(3))
		test.That(t, m.At(-1, 0), test.ShouldEqual, int32(0))
		test.That(t, m.At(8, 0), test.ShouldEqual, int32(0))
	})

	t.Run("degenerate polygon fills nothing", func(t *testing.T) {
		m := NewOccupancyMap(8, 8)
		m.Fill([]image.Point{{1, 1}, {5, 5}}, 7)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				test.That(t, m.At(x, y), test.ShouldEqual, int32(0))
			}
		}
	})
}

func TestOccupancyOverlaps(t *testing.T) {
	square := func(x0, y0, x1, y1 int) []image.Point {
		return []image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	}

	t.Run("disjoint regions do not overlap", func(t *testing.T) {
		m := NewOccupancyMap(30, 30)
		m.Fill(square(0, 0, 5, 5), 1)
		test.That(t, m.Overlaps(square(10, 10, 15, 15), 0), test.ShouldBeFalse)
	})

	t.Run("shared pixel overlaps", func(t *testing.T) {
		m := NewOccupancyMap(30, 30)
		m.Fill(square(0, 0, 5, 5), 1)
		test.That(t, m.Overlaps(square(5, 5, 10, 10), 0), test.ShouldBeTrue)
	})

	t.Run("excluded label is ignored", func(t *testing.T) {
		m := NewOccupancyMap(30, 30)
		m.Fill(square(0, 0, 5, 5), 1)
		test.That(t, m.Overlaps(square(3, 3, 8, 8), 1), test.ShouldBeFalse)
		m.Fill(square(6, 6, 9, 9), 2)
		test.That(t, m.Overlaps(square(3, 3, 8, 8), 1), test.ShouldBeTrue)
	})

	t.Run("empty map never overlaps", func(t *testing.T) {
		m := NewOccupancyMap(30, 30)
		test.That(t, m.Overlaps(square(0, 0, 29, 29), 0), test.ShouldBeFalse)
	})

	t.Run("degenerate polygon never overlaps", func(t *testing.T) {
		m := NewOccupancyMap(30, 30)
		m.Fill(square(0, 0, 29, 29), 1)
		test.That(t, m.Overlaps([]image.Point{{3, 3}, {9, 9}}, 0), test.ShouldBeFalse)
	})

	t.Run("off-map polygon never overlaps", func(t *testing.T) {
		m := NewOccupancyMap(10, 10)
		m.Fill(square(0, 0, 9, 9), 1)
		test.That(t, m.Overlaps(square(40, 40, 50, 50), 0), test.ShouldBeFalse)
	})
}

func TestHullThenFillRoundTrip(t *testing.T) {
	// A projected box silhouette: hull of its corners must cover each corner
	// pixel once filled.
	corners := []image.Point{
		{12, 10}, {28, 10}, {28, 24}, {12, 24},
		{15, 13}, {25, 13}, {25, 21}, {15, 21},
	}
	hull := ConvexHull(corners)
	m := NewOccupancyMap(40, 40)
	m.Fill(hull, 5)
	for _, c := range corners {
		test.That(t, m.At(c.X, c.Y), test.ShouldEqual, int32(5))
	}
}
