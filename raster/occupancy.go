package raster

import (
	"image"
	"math"
)

// OccupancyMap records which object, if any, covers each pixel of one
// rendered image. Cell values are 0 for empty and a caller-chosen positive
// label otherwise. The map is per-image ephemeral state: it is created
// fresh when 2D constraints are active and discarded at image end.
type OccupancyMap struct {
	width  int
	height int
	cells  []int32
}

// NewOccupancyMap returns an empty map with one cell per image pixel.
func NewOccupancyMap(width, height int) *OccupancyMap {
	return &OccupancyMap{
		width:  width,
		height: height,
		cells:  make([]int32, width*height),
	}
}

// Width returns the map width in pixels.
func (m *OccupancyMap) Width() int { return m.width }

// Height returns the map height in pixels.
func (m *OccupancyMap) Height() int { return m.height }

// At returns the label at the given pixel, 0 outside the map.
func (m *OccupancyMap) At(x, y int) int32 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.cells[y*m.width+x]
}

// Fill rasterizes the convex polygon's interior into the map, writing label
// into every covered pixel. Later fills overwrite earlier ones; the
// placement protocol only fills polygons already confirmed non-overlapping
// when 2D overlap is disallowed. Degenerate polygons cover nothing.
func (m *OccupancyMap) Fill(polygon []image.Point, label int32) {
	m.forEachSpan(polygon, func(y, x0, x1 int) {
		row := m.cells[y*m.width : y*m.width+m.width]
		for x := x0; x <= x1; x++ {
			row[x] = label
		}
	})
}

// Overlaps reports whether any pixel covered by the convex polygon is
// already labeled. Cells holding excludeLabel do not count, which lets a
// re-test of an object's own region ignore itself; pass 0 to exclude
// nothing. A polygon with zero raster area never overlaps.
func (m *OccupancyMap) Overlaps(polygon []image.Point, excludeLabel int32) bool {
	hit := false
	m.forEachSpan(polygon, func(y, x0, x1 int) {
		if hit {
			return
		}
		row := m.cells[y*m.width : y*m.width+m.width]
		for x := x0; x <= x1; x++ {
			if row[x] != 0 && row[x] != excludeLabel {
				hit = true
				return
			}
		}
	})
	return hit
}

// forEachSpan scan-converts the convex polygon and calls fn once per
// scanline with the inclusive pixel span [x0, x1], clipped to the map.
// Polygons with fewer than 3 vertices have zero area and produce no spans.
func (m *OccupancyMap) forEachSpan(polygon []image.Point, fn func(y, x0, x1 int)) {
	if len(polygon) < 3 {
		return
	}

	minY, maxY := polygon[0].Y, polygon[0].Y
	for _, p := range polygon[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= m.height {
		maxY = m.height - 1
	}

	for y := minY; y <= maxY; y++ {
		xMin := math.Inf(1)
		xMax := math.Inf(-1)
		fy := float64(y)
		for i := range polygon {
			p := polygon[i]
			q := polygon[(i+1)%len(polygon)]
			py, qy := float64(p.Y), float64(q.Y)
			if py == qy {
				if py == fy {
					xMin = math.Min(xMin, math.Min(float64(p.X), float64(q.X)))
					xMax = math.Max(xMax, math.Max(float64(p.X), float64(q.X)))
				}
				continue
			}
			if fy < math.Min(py, qy) || fy > math.Max(py, qy) {
				continue
			}
			x := float64(p.X) + (fy-py)*(float64(q.X)-float64(p.X))/(qy-py)
			xMin = math.Min(xMin, x)
			xMax = math.Max(xMax, x)
		}
		if xMin > xMax {
			continue
		}
		x0 := int(math.Ceil(xMin - 0.5))
		x1 := int(math.Floor(xMax + 0.5))
		if x0 < 0 {
			x0 = 0
		}
		if x1 >= m.width {
			x1 = m.width - 1
		}
		if x0 <= x1 {
			fn(y, x0, x1)
		}
	}
}
