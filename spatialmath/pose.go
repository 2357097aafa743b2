// Package spatialmath defines the spatial math primitives used to pose and
// collide scene geometry: rigid transforms, Euler-angle orientations,
// triangles, meshes and axis-aligned bounds.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

const floatEpsilon = 1e-6

// Pose represents a rigid transform in 3D space: a rotation followed by a
// translation. The zero value is not a valid pose; use NewZeroPose.
type Pose struct {
	translation r3.Vector
	rotation    quat.Number
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return Pose{rotation: quat.Number{Real: 1}}
}

// NewPose returns a pose at the given point with the given orientation.
func NewPose(pt r3.Vector, o *EulerAngles) Pose {
	return Pose{translation: pt, rotation: o.Quaternion()}
}

// NewPoseFromPoint returns a pose at the given point with no rotation.
func NewPoseFromPoint(pt r3.Vector) Pose {
	return Pose{translation: pt, rotation: quat.Number{Real: 1}}
}

// Point returns the translation component of the pose.
func (p Pose) Point() r3.Vector {
	return p.translation
}

// Quaternion returns the rotation component of the pose.
func (p Pose) Quaternion() quat.Number {
	return p.rotation
}

// Compose treats the poses as transforms and returns the transform
// equivalent to applying b first, then a.
func Compose(a, b Pose) Pose {
	return Pose{
		translation: a.TransformPoint(b.translation),
		rotation:    quat.Mul(a.rotation, b.rotation),
	}
}

// TransformPoint applies the pose to a point: rotation, then translation.
func (p Pose) TransformPoint(pt r3.Vector) r3.Vector {
	return rotateVector(p.rotation, pt).Add(p.translation)
}

// Invert returns the pose that undoes this one.
func (p Pose) Invert() Pose {
	inv := quat.Conj(p.rotation)
	return Pose{
		translation: rotateVector(inv, p.translation.Mul(-1)),
		rotation:    inv,
	}
}

// rotateVector rotates v by the unit quaternion q.
func rotateVector(q quat.Number, v r3.Vector) r3.Vector {
	qv := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, qv), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// PoseAlmostEqual reports whether two poses are equivalent within a small
// tolerance. Quaternions q and -q represent the same rotation.
func PoseAlmostEqual(a, b Pose) bool {
	if !R3VectorAlmostEqual(a.translation, b.translation, 1e-8) {
		return false
	}
	return QuaternionAlmostEqual(a.rotation, b.rotation, 1e-8)
}

// QuaternionAlmostEqual reports whether two unit quaternions represent
// approximately the same rotation.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	return math.Abs(math.Abs(dot)-1) < tol
}

// R3VectorAlmostEqual reports whether each component of two vectors is equal
// within the given tolerance.
func R3VectorAlmostEqual(a, b r3.Vector, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}
