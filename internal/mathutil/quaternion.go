package mathutil

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// QuatFromAxisAngle returns the unit quaternion rotating by angle (radians)
// about axis. The axis must already be normalized.
func QuatFromAxisAngle(axis Vec3, angle float64) quat.Number {
	s := math.Sin(angle / 2)
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: axis[0] * s,
		Jmag: axis[1] * s,
		Kmag: axis[2] * s,
	}
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
// The quaternion is normalized first so accumulated drift does not scale the result.
func QuatToMat3(q quat.Number) Mat3 {
	if n := quat.Abs(q); n > 0 && n != 1 {
		q = quat.Scale(1/n, q)
	}
	x, y, z, w := q.Imag, q.Jmag, q.Kmag, q.Real
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}
