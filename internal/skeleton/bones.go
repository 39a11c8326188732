// Package skeleton describes bone topology and poses bone primitives between joints.
package skeleton

import (
	"github.com/pkg/errors"

	"mocap-viewer/internal/mathutil"
	"mocap-viewer/internal/orient"
)

// BoneSpec names the two joints a bone runs between. The bone's local +X axis
// points from From to To.
type BoneSpec struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Name is the scene node name of the bone.
func (b BoneSpec) Name() string {
	return b.From + "-" + b.To
}

// DefaultHandLinks is the hand topology: one chain per finger plus the
// forearm stub links.
var DefaultHandLinks = [][]string{
	{"Thumb1", "Thumb2", "Thumb3", "ThumbTip"},
	{"Index1", "Index2", "Index3", "IndexTip"},
	{"Middle1", "Middle2", "Middle3", "MiddleTip"},
	{"Ring1", "Ring2", "Ring3", "RingTip"},
	{"Pinky1", "Pinky2", "Pinky3", "PinkyTip"},
	{"ForearmStub", "Thumb0", "Thumb1"},
	{"ForearmStub", "Pinky0"},
}

// ExpandLinks turns joint chains into bones between consecutive joints.
// Repeated pairs are kept once, in first-seen order.
func ExpandLinks(links [][]string) []BoneSpec {
	seen := make(map[BoneSpec]bool)
	var bones []BoneSpec
	for _, chain := range links {
		for i := 0; i+1 < len(chain); i++ {
			b := BoneSpec{From: chain[i], To: chain[i+1]}
			if seen[b] {
				continue
			}
			seen[b] = true
			bones = append(bones, b)
		}
	}
	return bones
}

// PoseBone returns the pose of a bone primitive spanning p1 → p2: centered on
// the midpoint, with its local +X axis along p2 - p1.
//
// Coincident joints yield an error wrapping orient.ErrDegenerateVector; the
// caller decides whether to hold, hide or skip.
func PoseBone(p1, p2 mathutil.Vec3) (orient.Pose, error) {
	res, err := orient.Solve(p2.Sub(p1))
	if err != nil {
		return orient.Pose{}, errors.Wrap(err, "skeleton: pose bone")
	}
	return orient.Pose{
		Position:    p1.Scale(0.5).Add(p2.Scale(0.5)),
		Orientation: res.HPR,
	}, nil
}

// BoneLength is the cylinder length for a bone spanning p1 → p2.
func BoneLength(p1, p2 mathutil.Vec3) float64 {
	return p1.Distance(p2)
}
