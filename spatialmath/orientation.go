package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are three rotations about the static world axes, applied X
// first, then Y, then Z (the convention scene tools use for object rotation
// ranges). All values are in radians.
type EulerAngles struct {
	Roll  float64 `json:"roll"`  // rotation about X
	Pitch float64 `json:"pitch"` // rotation about Y
	Yaw   float64 `json:"yaw"`   // rotation about Z
}

// NewZeroOrientation returns an orientation which signifies no rotation.
func NewZeroOrientation() *EulerAngles {
	return &EulerAngles{}
}

// NewEulerAngles returns Euler angles from rotations about the X, Y and Z
// axes, in radians.
func NewEulerAngles(roll, pitch, yaw float64) *EulerAngles {
	return &EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// Quaternion returns the unit quaternion Rz(yaw)*Ry(pitch)*Rx(roll).
func (ea *EulerAngles) Quaternion() quat.Number {
	qx := quat.Number{Real: math.Cos(ea.Roll / 2), Imag: math.Sin(ea.Roll / 2)}
	qy := quat.Number{Real: math.Cos(ea.Pitch / 2), Jmag: math.Sin(ea.Pitch / 2)}
	qz := quat.Number{Real: math.Cos(ea.Yaw / 2), Kmag: math.Sin(ea.Yaw / 2)}
	return quat.Mul(qz, quat.Mul(qy, qx))
}

// OrientationAlmostEqual reports whether two orientations represent
// approximately the same rotation.
func OrientationAlmostEqual(a, b *EulerAngles) bool {
	return QuaternionAlmostEqual(a.Quaternion(), b.Quaternion(), 1e-6)
}
