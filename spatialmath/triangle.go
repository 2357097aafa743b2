package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Triangle is the primitive that meshes are built from.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	normal r3.Vector
}

// NewTriangle creates a Triangle from three points. The normal is computed;
// directionality is random since a triangle has no implicit orientation.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
	}
}

// Points returns the three points associated with the triangle.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the triangle's normal vector.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// Centroid returns the centroid of the triangle.
func (t *Triangle) Centroid() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1. / 3.)
}

// Transform returns a new triangle with the pose applied to each point.
func (t *Triangle) Transform(p Pose) *Triangle {
	return NewTriangle(
		p.TransformPoint(t.p0),
		p.TransformPoint(t.p1),
		p.TransformPoint(t.p2),
	)
}

// ClosestPointToPoint takes a point and returns the closest point on the
// triangle to the given point.
func (t *Triangle) ClosestPointToPoint(point r3.Vector) r3.Vector {
	closestPtInside, inside := t.closestInsidePoint(point)
	if inside {
		return closestPtInside
	}

	// If the closest point is outside the triangle, it must be on an edge, so we
	// check each triangle edge for a closest point to the point pt.
	closestPt := ClosestPointSegmentPoint(t.p0, t.p1, point)
	bestDist := point.Sub(closestPt).Norm2()

	newPt := ClosestPointSegmentPoint(t.p1, t.p2, point)
	if newDist := point.Sub(newPt).Norm2(); newDist < bestDist {
		closestPt = newPt
		bestDist = newDist
	}

	newPt = ClosestPointSegmentPoint(t.p2, t.p0, point)
	if newDist := point.Sub(newPt).Norm2(); newDist < bestDist {
		return newPt
	}
	return closestPt
}

// closestInsidePoint returns the closest point on a triangle IF AND ONLY IF
// the query point's projection overlaps the triangle. Otherwise it returns
// the query point.
func (t *Triangle) closestInsidePoint(point r3.Vector) (r3.Vector, bool) {
	eps := 1e-6

	// Parametrize the triangle s.t. a point inside the triangle is
	// Q = p0 + u * e0 + v * e1, when 0 <= u <= 1, 0 <= v <= 1, and
	// 0 <= u + v <= 1. Let e0 = (p1 - p0) and e1 = (p2 - p0).
	// We analytically minimize the distance between the point pt and Q.
	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	a := e0.Norm2()
	b := e0.Dot(e1)
	c := e1.Norm2()
	d := point.Sub(t.p0)
	// The determinant is 0 only if the angle between e1 and e0 is 0
	// (i.e. the triangle has overlapping lines).
	det := (a*c - b*b)
	u := (c*e0.Dot(d) - b*e1.Dot(d)) / det
	v := (-b*e0.Dot(d) + a*e1.Dot(d)) / det
	inside := (0 <= u+eps) && (u <= 1+eps) && (0 <= v+eps) && (v <= 1+eps) && (u+v <= 1+eps)
	return t.p0.Add(e0.Mul(u)).Add(e1.Mul(v)), inside
}

// segmentIntersectsTriangle reports whether the segment [s0,s1] passes
// through the triangle, using the Moller-Trumbore intersection test.
func (t *Triangle) segmentIntersects(s0, s1 r3.Vector) bool {
	dir := s1.Sub(s0)
	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	h := dir.Cross(e1)
	a := e0.Dot(h)
	if a > -floatEpsilon && a < floatEpsilon {
		// Segment parallel to the triangle plane; coplanar contact is
		// caught by the distance checks in TriangleDistance.
		return false
	}
	f := 1.0 / a
	s := s0.Sub(t.p0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return false
	}
	q := s.Cross(e0)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return false
	}
	w := f * e1.Dot(q)
	return w >= 0 && w <= 1
}

// TriangleDistance returns the minimum distance between two triangles,
// zero if they intersect.
func TriangleDistance(a, b *Triangle) float64 {
	aPts := a.Points()
	bPts := b.Points()

	// Any edge of one triangle piercing the other means contact.
	for i := 0; i < 3; i++ {
		if b.segmentIntersects(aPts[i], aPts[(i+1)%3]) {
			return 0
		}
		if a.segmentIntersects(bPts[i], bPts[(i+1)%3]) {
			return 0
		}
	}

	// Otherwise the closest features are vertex-triangle or edge-edge.
	best := aPts[0].Sub(b.ClosestPointToPoint(aPts[0])).Norm()
	for i := 0; i < 3; i++ {
		if d := aPts[i].Sub(b.ClosestPointToPoint(aPts[i])).Norm(); d < best {
			best = d
		}
		if d := bPts[i].Sub(a.ClosestPointToPoint(bPts[i])).Norm(); d < best {
			best = d
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d := SegmentDistanceToSegment(aPts[i], aPts[(i+1)%3], bPts[j], bPts[(j+1)%3])
			if d < best {
				best = d
			}
		}
	}
	return best
}
