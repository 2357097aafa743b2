package placement

import (
	"image"
	"math"

	"github.com/scenegen/scenegen/camera"
	"github.com/scenegen/scenegen/raster"
	"github.com/scenegen/scenegen/scene"
)

// Silhouette projects every bounding-box corner of the object and its
// descendants through the camera and returns the convex hull of the
// resulting pixels. The hull is the object's on-screen footprint proxy;
// objects without bounding geometry produce an empty (degenerate) hull.
func Silhouette(obj *scene.Object, proj *camera.Projector) []image.Point {
	corners := scene.WorldBoundCorners(obj)
	if len(corners) == 0 {
		return nil
	}
	projected := proj.ProjectPoints(corners)
	pixels := make([]image.Point, 0, len(projected))
	for _, p := range projected {
		pixels = append(pixels, image.Point{
			X: int(math.Round(p.X)),
			Y: int(math.Round(p.Y)),
		})
	}
	return raster.ConvexHull(pixels)
}

// countOutsideImage returns how many polygon vertices fall outside the
// image rectangle [0, width) x [0, height).
func countOutsideImage(polygon []image.Point, width, height int) int {
	count := 0
	for _, p := range polygon {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			count++
		}
	}
	return count
}
