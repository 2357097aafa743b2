package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Ordered list of unit box vertices.
var boxVertices = [8]r3.Vector{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: -1},
}

// The sets of indices of the box vertices that tile the box exterior.
var boxTriangles = [12][3]int{
	{0, 1, 3},
	{0, 2, 3},
	{0, 1, 5},
	{0, 4, 5},
	{0, 2, 6},
	{0, 4, 6},
	{7, 1, 3},
	{7, 2, 3},
	{7, 1, 5},
	{7, 4, 5},
	{7, 2, 6},
	{7, 4, 6},
}

// BoundingBox is an axis-aligned box given by its extreme corners. It is
// used both as a local-space bound around an object's geometry and as a
// world-space containment region for placement.
type BoundingBox struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// NewBoundingBox returns a bounding box spanning the two corners. Each axis
// is reordered so that Min <= Max; a degenerate (zero-extent) axis is valid.
func NewBoundingBox(a, b r3.Vector) *BoundingBox {
	bb := &BoundingBox{Min: a, Max: b}
	if bb.Min.X > bb.Max.X {
		bb.Min.X, bb.Max.X = bb.Max.X, bb.Min.X
	}
	if bb.Min.Y > bb.Max.Y {
		bb.Min.Y, bb.Max.Y = bb.Max.Y, bb.Min.Y
	}
	if bb.Min.Z > bb.Max.Z {
		bb.Min.Z, bb.Max.Z = bb.Max.Z, bb.Min.Z
	}
	return bb
}

// String returns a human readable representation of the box.
func (bb *BoundingBox) String() string {
	return fmt.Sprintf("Type: BoundingBox | Min: X:%.2f, Y:%.2f, Z:%.2f | Max: X:%.2f, Y:%.2f, Z:%.2f",
		bb.Min.X, bb.Min.Y, bb.Min.Z, bb.Max.X, bb.Max.Y, bb.Max.Z)
}

// Contains reports whether the point lies inside the box, boundary included.
func (bb *BoundingBox) Contains(pt r3.Vector) bool {
	return pt.X >= bb.Min.X && pt.X <= bb.Max.X &&
		pt.Y >= bb.Min.Y && pt.Y <= bb.Max.Y &&
		pt.Z >= bb.Min.Z && pt.Z <= bb.Max.Z
}

// Center returns the center point of the box.
func (bb *BoundingBox) Center() r3.Vector {
	return bb.Min.Add(bb.Max).Mul(0.5)
}

// Corners returns the eight corner points of the box in a fixed order.
func (bb *BoundingBox) Corners() []r3.Vector {
	c := bb.Center()
	half := bb.Max.Sub(c)
	corners := make([]r3.Vector, 0, 8)
	for _, v := range boxVertices {
		corners = append(corners, r3.Vector{
			X: c.X + v.X*half.X,
			Y: c.Y + v.Y*half.Y,
			Z: c.Z + v.Z*half.Z,
		})
	}
	return corners
}

// ToMesh returns a 12-triangle mesh tiling of the box exterior, 2 right
// triangles per face, in the box's own coordinate frame.
func (bb *BoundingBox) ToMesh() *Mesh {
	verts := bb.Corners()
	triangles := make([]*Triangle, 0, 12)
	for _, tri := range boxTriangles {
		triangles = append(triangles, NewTriangle(verts[tri[0]], verts[tri[1]], verts[tri[2]]))
	}
	return NewMesh(NewZeroPose(), triangles, "")
}
