package mathutil

import (
	"fmt"
	"math"
)

// HPR is an orientation as heading/pitch/roll in degrees, applied as intrinsic
// rotations about Z, then X, then Y: R = Rz(H) × Rx(P) × Ry(R).
type HPR struct {
	Heading float64 // about Z
	Pitch   float64 // about X
	Roll    float64 // about Y
}

func (o HPR) String() string {
	return fmt.Sprintf("HPR{h=%+.2f° p=%+.2f° r=%+.2f°}", o.Heading, o.Pitch, o.Roll)
}

// Mat3 returns the rotation matrix for the orientation.
func (o HPR) Mat3() Mat3 {
	return Mat3Mul(Mat3Mul(RotZ(Deg2Rad(o.Heading)), RotX(Deg2Rad(o.Pitch))), RotY(Deg2Rad(o.Roll)))
}

// Apply rotates v by the orientation.
func (o HPR) Apply(v Vec3) Vec3 {
	return o.Mat3().MulVec3(v)
}

// HPRFromMat3 decomposes a rotation matrix into intrinsic Z-X-Y Euler angles.
//
// With R = Rz(h) Rx(p) Ry(r):
//
//	m[7] (row 2, col 1) =  sin p
//	m[1] (row 0, col 1) = -sin h cos p,  m[4] =  cos h cos p
//	m[6] (row 2, col 0) = -cos p sin r,  m[8] =  cos p cos r
//	(m[0], m[3])        =  Rz(h) (cos r, sin p sin r)
//
// Heading is taken from the first column whenever that column has a usable XY
// part, so R×(1,0,0) survives the round trip even near gimbal lock where h and
// r are individually ill-conditioned. At gimbal lock (cos p == 0) roll is 0.
func HPRFromMat3(m Mat3) HPR {
	cp := math.Hypot(m[6], m[8])
	p := math.Atan2(m[7], cp)

	r := 0.0
	if cp > gimbalEps {
		r = math.Atan2(-m[6], m[8])
	}

	var h float64
	if math.Hypot(m[0], m[3]) >= cp {
		h = math.Atan2(m[3], m[0]) - math.Atan2(math.Sin(p)*math.Sin(r), math.Cos(r))
	} else {
		h = math.Atan2(-m[1], m[4])
	}

	return HPR{
		Heading: Rad2Deg(wrapPi(h)),
		Pitch:   Rad2Deg(p),
		Roll:    Rad2Deg(r),
	}
}

// wrapPi maps a to (-π, π].
func wrapPi(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
