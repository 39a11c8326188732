// Package orient converts direction vectors into the heading/pitch/roll that
// turns the local +X axis onto them, and defines the pose handed to renderers.
package orient

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"mocap-viewer/internal/mathutil"
)

// ErrDegenerateVector is returned when a direction has zero length or a
// non-finite component, so no orientation exists.
var ErrDegenerateVector = errors.New("orient: degenerate direction vector")

// Result is the length of a direction plus the orientation mapping +X onto it.
type Result struct {
	Length float64
	mathutil.HPR
}

func (r Result) String() string {
	return fmt.Sprintf("Result{L=%.4f h=%+.2f° p=%+.2f° r=%+.2f°}", r.Length, r.Heading, r.Pitch, r.Roll)
}

// Pose places a node: Position is its center, Orientation its rotation.
type Pose struct {
	Position    mathutil.Vec3
	Orientation mathutil.HPR
}

func (p Pose) String() string {
	return fmt.Sprintf("Pose{x=%+.4f y=%+.4f z=%+.4f %s}", p.Position[0], p.Position[1], p.Position[2], p.Orientation)
}

// Matrix returns the node's local-to-world transform.
func (p Pose) Matrix() mathutil.Mat4 {
	return mathutil.FromMat3Translation(p.Orientation.Mat3(), p.Position)
}

// Solve returns the length of v and the orientation that rotates (1,0,0) onto
// v's direction.
func Solve(v mathutil.Vec3) (Result, error) {
	if !v.IsFinite() {
		return Result{}, errors.Wrapf(ErrDegenerateVector, "non-finite %v", v)
	}
	l := math.Hypot(math.Hypot(v[0], v[1]), v[2])
	if l == 0 {
		return Result{}, errors.Wrapf(ErrDegenerateVector, "zero length %v", v)
	}

	// Already on the X axis. The sign matters: -X is a half turn, not identity.
	if v[1] == 0 && v[2] == 0 {
		if v[0] > 0 {
			return Result{Length: l}, nil
		}
		return Result{Length: l, HPR: mathutil.HPR{Heading: 180}}, nil
	}

	// Divide per component: 1/l overflows for subnormal lengths.
	x := mathutil.Vec3{v[0] / l, v[1] / l, v[2] / l}

	// UnitX × x == (0, -x.z, x.y); Hypot keeps tiny components from underflowing.
	axis := mathutil.UnitX.Cross(x)
	n := math.Hypot(axis[1], axis[2])

	// Angle between +X and x as atan2(|+X × x|, +X · x); acos loses precision near ±1.
	ang := math.Atan2(n, x[0])
	if n == 0 {
		axis, ang = mathutil.UnitZ, math.Pi
	} else {
		axis = axis.Scale(1 / n)
	}

	q := mathutil.QuatFromAxisAngle(axis, ang)
	return Result{
		Length: l,
		HPR:    mathutil.HPRFromMat3(mathutil.QuatToMat3(q)),
	}, nil
}

// Reconstruct applies r's orientation to (1,0,0) and scales it by r.Length.
func Reconstruct(r Result) mathutil.Vec3 {
	return r.HPR.Apply(mathutil.UnitX).Scale(r.Length)
}
