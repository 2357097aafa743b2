package spatialmath

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// Leaves hold up to this many triangles before a node splits.
const bvhLeafSize = 4

// bvhNode is one node of a triangle bounding-volume hierarchy. Interior
// nodes carry children and a nil triangle slice; leaves carry triangles and
// nil children. Bounds are in the frame the triangles were built in.
type bvhNode struct {
	minBound r3.Vector
	maxBound r3.Vector

	left  *bvhNode
	right *bvhNode

	triangles []*Triangle
}

// buildBVH builds a hierarchy over the given triangles by recursively
// splitting at the median centroid along the widest centroid axis.
// Returns nil for an empty triangle set.
func buildBVH(triangles []*Triangle) *bvhNode {
	if len(triangles) == 0 {
		return nil
	}
	node := &bvhNode{}
	node.minBound, node.maxBound = computeTrianglesAABB(triangles)
	if len(triangles) <= bvhLeafSize {
		node.triangles = triangles
		return node
	}

	// Split along the axis where centroids spread the most.
	centMin, centMax := triangles[0].Centroid(), triangles[0].Centroid()
	for _, tri := range triangles[1:] {
		c := tri.Centroid()
		centMin = r3.Vector{X: math.Min(centMin.X, c.X), Y: math.Min(centMin.Y, c.Y), Z: math.Min(centMin.Z, c.Z)}
		centMax = r3.Vector{X: math.Max(centMax.X, c.X), Y: math.Max(centMax.Y, c.Y), Z: math.Max(centMax.Z, c.Z)}
	}
	spread := centMax.Sub(centMin)
	axis := func(v r3.Vector) float64 { return v.X }
	if spread.Y > spread.X && spread.Y >= spread.Z {
		axis = func(v r3.Vector) float64 { return v.Y }
	} else if spread.Z > spread.X && spread.Z > spread.Y {
		axis = func(v r3.Vector) float64 { return v.Z }
	}

	sorted := make([]*Triangle, len(triangles))
	copy(sorted, triangles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return axis(sorted[i].Centroid()) < axis(sorted[j].Centroid())
	})

	mid := len(sorted) / 2
	node.left = buildBVH(sorted[:mid])
	node.right = buildBVH(sorted[mid:])
	return node
}

// computeTrianglesAABB returns the axis-aligned bounds of all triangle
// vertices.
func computeTrianglesAABB(triangles []*Triangle) (r3.Vector, r3.Vector) {
	minB := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	maxB := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, tri := range triangles {
		for _, p := range tri.Points() {
			minB = r3.Vector{X: math.Min(minB.X, p.X), Y: math.Min(minB.Y, p.Y), Z: math.Min(minB.Z, p.Z)}
			maxB = r3.Vector{X: math.Max(maxB.X, p.X), Y: math.Max(maxB.Y, p.Y), Z: math.Max(maxB.Z, p.Z)}
		}
	}
	return minB, maxB
}

// aabbOverlap reports whether two axis-aligned boxes overlap or touch.
func aabbOverlap(min1, max1, min2, max2 r3.Vector) bool {
	return min1.X <= max2.X && max1.X >= min2.X &&
		min1.Y <= max2.Y && max1.Y >= min2.Y &&
		min1.Z <= max2.Z && max1.Z >= min2.Z
}

// aabbDistance returns the distance between two axis-aligned boxes, zero if
// they overlap or touch.
func aabbDistance(min1, max1, min2, max2 r3.Vector) float64 {
	dx := math.Max(0, math.Max(min2.X-max1.X, min1.X-max2.X))
	dy := math.Max(0, math.Max(min2.Y-max1.Y, min1.Y-max2.Y))
	dz := math.Max(0, math.Max(min2.Z-max1.Z, min1.Z-max2.Z))
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// transformAABB returns the axis-aligned bounds of the box after the pose is
// applied to it. The result bounds the rotated box, so it may be larger than
// the input.
func transformAABB(minB, maxB r3.Vector, pose Pose) (r3.Vector, r3.Vector) {
	box := &BoundingBox{Min: minB, Max: maxB}
	newMin := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	newMax := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, c := range box.Corners() {
		p := pose.TransformPoint(c)
		newMin = r3.Vector{X: math.Min(newMin.X, p.X), Y: math.Min(newMin.Y, p.Y), Z: math.Min(newMin.Z, p.Z)}
		newMax = r3.Vector{X: math.Max(newMax.X, p.X), Y: math.Max(newMax.Y, p.Y), Z: math.Max(newMax.Z, p.Z)}
	}
	return newMin, newMax
}

// bvhCollidesWithBVH tests two hierarchies, each observed through its own
// pose, for any triangle pair within collisionBuffer of each other. The
// returned distance is exact between the closest triangles actually visited
// and a lower bound otherwise; it is +Inf when either hierarchy is nil.
func bvhCollidesWithBVH(a *bvhNode, poseA Pose, b *bvhNode, poseB Pose, collisionBuffer float64) (bool, float64) {
	if a == nil || b == nil {
		return false, math.Inf(1)
	}

	aMin, aMax := transformAABB(a.minBound, a.maxBound, poseA)
	bMin, bMax := transformAABB(b.minBound, b.maxBound, poseB)
	if d := aabbDistance(aMin, aMax, bMin, bMax); d > collisionBuffer {
		return false, d
	}

	if a.triangles != nil && b.triangles != nil {
		best := math.Inf(1)
		for _, ta := range a.triangles {
			worldA := ta.Transform(poseA)
			for _, tb := range b.triangles {
				d := TriangleDistance(worldA, tb.Transform(poseB))
				if d <= collisionBuffer {
					return true, d
				}
				if d < best {
					best = d
				}
			}
		}
		return false, best
	}

	// Descend the node with children; preferring the larger side keeps the
	// recursion balanced regardless of which argument is the leaf.
	var pairs [2][2]*bvhNode
	if a.triangles == nil {
		pairs = [2][2]*bvhNode{{a.left, b}, {a.right, b}}
	} else {
		pairs = [2][2]*bvhNode{{a, b.left}, {a, b.right}}
	}
	best := math.Inf(1)
	for _, pair := range pairs {
		collides, d := bvhCollidesWithBVH(pair[0], poseA, pair[1], poseB, collisionBuffer)
		if collides {
			return true, d
		}
		if d < best {
			best = d
		}
	}
	return false, best
}
