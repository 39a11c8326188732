package mathutil

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

func mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func (m Mat3) det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

func (m Mat3) transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// rotateByQuat rotates v by q (q·v·q*).
func rotateByQuat(q quat.Number, v Vec3) Vec3 {
	p := quat.Number{Imag: v[0], Jmag: v[1], Kmag: v[2]}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return Vec3{r.Imag, r.Jmag, r.Kmag}
}

// angleDist returns the shortest angular distance between two angles in degrees (0–180).
func angleDist(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return 360 - d
	}
	return d
}
