package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBoundingBoxContains(t *testing.T) {
	bb := NewBoundingBox(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1})

	test.That(t, bb.Contains(r3.Vector{}), test.ShouldBeTrue)
	test.That(t, bb.Contains(r3.Vector{X: 1, Y: 1, Z: 1}), test.ShouldBeTrue) // boundary included
	test.That(t, bb.Contains(r3.Vector{X: 1.001}), test.ShouldBeFalse)
	test.That(t, bb.Contains(r3.Vector{Y: -2}), test.ShouldBeFalse)
}

func TestBoundingBoxCornerOrderIndependence(t *testing.T) {
	a := NewBoundingBox(r3.Vector{X: 2, Y: -3, Z: 1}, r3.Vector{X: -2, Y: 3, Z: -1})
	test.That(t, a.Min, test.ShouldResemble, r3.Vector{X: -2, Y: -3, Z: -1})
	test.That(t, a.Max, test.ShouldResemble, r3.Vector{X: 2, Y: 3, Z: 1})
}

func TestBoundingBoxCorners(t *testing.T) {
	bb := NewBoundingBox(r3.Vector{}, r3.Vector{X: 2, Y: 4, Z: 6})
	corners := bb.Corners()
	test.That(t, len(corners), test.ShouldEqual, 8)

	// every corner is an extreme point of the box
	for _, c := range corners {
		test.That(t, c.X == 0 || c.X == 2, test.ShouldBeTrue)
		test.That(t, c.Y == 0 || c.Y == 4, test.ShouldBeTrue)
		test.That(t, c.Z == 0 || c.Z == 6, test.ShouldBeTrue)
	}
}

func TestBoundingBoxToMesh(t *testing.T) {
	bb := NewBoundingBox(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1})
	mesh := bb.ToMesh()
	test.That(t, len(mesh.Triangles()), test.ShouldEqual, 12)

	minB, maxB := computeTrianglesAABB(mesh.Triangles())
	test.That(t, minB, test.ShouldResemble, bb.Min)
	test.That(t, maxB, test.ShouldResemble, bb.Max)

	// a degenerate box still produces a (flat) mesh
	flat := NewBoundingBox(r3.Vector{}, r3.Vector{X: 1, Y: 1})
	test.That(t, len(flat.ToMesh().Triangles()), test.ShouldEqual, 12)
}
