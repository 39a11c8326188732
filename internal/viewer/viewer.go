// Package viewer builds a skeleton scene from motion data and poses it frame
// by frame.
package viewer

import (
	"image/color"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"mocap-viewer/internal/mathutil"
	"mocap-viewer/internal/mesh"
	"mocap-viewer/internal/motion"
	"mocap-viewer/internal/orient"
	"mocap-viewer/internal/scene"
	"mocap-viewer/internal/skeleton"
	"mocap-viewer/internal/viewmatrix"
)

// Degenerate bone policies.
const (
	PolicyHold = "hold"
	PolicyHide = "hide"
)

const (
	sphereRings    = 10
	sphereSegments = 14
	cylSegments    = 12
	axisRadius     = 0.002
)

var axisColors = [3]color.NRGBA{
	{R: 255, A: 255},
	{G: 255, A: 255},
	{B: 255, A: 255},
}

// Options describe what the viewer builds.
type Options struct {
	Bones       []skeleton.BoneSpec
	JointRadius float64
	BoneRadius  float64
	JointColor  color.NRGBA
	BoneColor   color.NRGBA
	// AxesLength is the gizmo axis length; zero disables the gizmo.
	AxesLength float64
	Policy     string
}

// Stats counts what one Update did.
type Stats struct {
	Frame        int
	Posed        int
	Held         int
	Hidden       int
	HiddenJoints int
}

// Degenerate is the number of bones that could not be posed this frame.
func (s Stats) Degenerate() int {
	return s.Held + s.Hidden
}

// Viewer owns the skeleton nodes of a scene.
type Viewer struct {
	scene  scene.Renderer
	table  *motion.Table
	bones  []skeleton.BoneSpec
	policy string
	logger *zap.SugaredLogger

	hidden map[string]bool
}

// JointNode is the scene node name of a joint sphere.
func JointNode(joint string) string {
	return "joint/" + joint
}

// BoneNode is the scene node name of a bone cylinder.
func BoneNode(b skeleton.BoneSpec) string {
	return "bone/" + b.Name()
}

// AxisNode is the scene node name of gizmo axis i (0=X, 1=Y, 2=Z).
func AxisNode(i int) string {
	return "axis/" + [3]string{"x", "y", "z"}[i]
}

// New attaches joint spheres, bone cylinders and the axes gizmo to sc and
// poses them at frame 0.
func New(sc *scene.Scene, table *motion.Table, opts Options, logger *zap.SugaredLogger) (*Viewer, error) {
	if table.NumFrames() == 0 {
		return nil, errors.New("viewer: no frames")
	}
	policy := opts.Policy
	if policy == "" {
		policy = PolicyHold
	}
	if policy != PolicyHold && policy != PolicyHide {
		return nil, errors.Errorf("viewer: unknown degenerate policy %q", policy)
	}

	v := &Viewer{
		scene:  sc,
		table:  table,
		policy: policy,
		logger: logger,
		hidden: make(map[string]bool),
	}

	if opts.AxesLength > 0 {
		if err := attachAxes(sc, opts.AxesLength); err != nil {
			return nil, err
		}
	}

	sphere := mesh.Sphere(opts.JointRadius, sphereRings, sphereSegments, opts.JointColor)
	for _, j := range table.Joints() {
		if _, err := sc.Attach(JointNode(j), sphere); err != nil {
			return nil, errors.Wrap(err, "viewer")
		}
	}

	for _, b := range opts.Bones {
		if !table.HasJoint(b.From) || !table.HasJoint(b.To) {
			logger.Warnw("bone references a joint missing from the data, skipping", "bone", b.Name())
			continue
		}
		first, pose, length, ok := v.firstValid(b)
		if !ok {
			logger.Warnw("bone joints coincide in every frame, skipping", "bone", b.Name())
			continue
		}
		if first > 0 {
			logger.Debugw("bone length taken from later frame", "bone", b.Name(), "frame", first)
		}
		if _, err := sc.Attach(BoneNode(b), mesh.Cylinder(opts.BoneRadius, length, cylSegments, opts.BoneColor)); err != nil {
			return nil, errors.Wrap(err, "viewer")
		}
		if err := sc.SetPose(BoneNode(b), pose); err != nil {
			return nil, errors.Wrap(err, "viewer")
		}
		v.bones = append(v.bones, b)
	}

	if _, err := v.Update(0); err != nil {
		return nil, err
	}
	logger.Infow("skeleton built", "joints", len(table.Joints()), "bones", len(v.bones), "frames", table.NumFrames())
	return v, nil
}

func attachAxes(sc *scene.Scene, length float64) error {
	for i, dir := range []mathutil.Vec3{mathutil.UnitX, mathutil.UnitY, mathutil.UnitZ} {
		pose, err := skeleton.PoseBone(mathutil.Vec3{}, dir.Scale(length))
		if err != nil {
			return errors.Wrap(err, "viewer: axes")
		}
		if _, err := sc.Attach(AxisNode(i), mesh.Cylinder(axisRadius, length, cylSegments, axisColors[i])); err != nil {
			return errors.Wrap(err, "viewer: axes")
		}
		if err := sc.SetPose(AxisNode(i), pose); err != nil {
			return errors.Wrap(err, "viewer: axes")
		}
	}
	return nil
}

// firstValid finds the first frame where the bone's joints differ.
func (v *Viewer) firstValid(b skeleton.BoneSpec) (int, orient.Pose, float64, bool) {
	for f := 0; f < v.table.NumFrames(); f++ {
		p1, err := v.table.Position(b.From, f)
		if err != nil {
			return 0, orient.Pose{}, 0, false
		}
		p2, err := v.table.Position(b.To, f)
		if err != nil {
			return 0, orient.Pose{}, 0, false
		}
		pose, err := skeleton.PoseBone(p1, p2)
		if err != nil {
			continue
		}
		return f, pose, skeleton.BoneLength(p1, p2), true
	}
	return 0, orient.Pose{}, 0, false
}

// Bones returns the bones that were built, in build order.
func (v *Viewer) Bones() []skeleton.BoneSpec {
	return v.bones
}

// CameraTarget is the first joint's position at frame 0.
func (v *Viewer) CameraTarget() mathutil.Vec3 {
	joints := v.table.Joints()
	if len(joints) == 0 {
		return mathutil.Vec3{}
	}
	p, err := v.table.Position(joints[0], 0)
	if err != nil || !p.IsFinite() {
		return mathutil.Vec3{}
	}
	return p
}

// Camera returns a camera at eye looking at CameraTarget.
func (v *Viewer) Camera(eye mathutil.Vec3, fov float64, width, height int) *viewmatrix.Camera {
	return viewmatrix.NewCamera(eye, v.CameraTarget(), fov, width, height)
}

// Update poses every joint and bone for a frame.
func (v *Viewer) Update(frame int) (Stats, error) {
	st := Stats{Frame: frame}
	pos, err := v.table.Frame(frame)
	if err != nil {
		return st, errors.Wrap(err, "viewer: update")
	}

	for _, j := range v.table.Joints() {
		p := pos[j]
		name := JointNode(j)
		if !p.IsFinite() {
			st.HiddenJoints++
			if err := v.setVisible(name, false); err != nil {
				return st, err
			}
			continue
		}
		if err := v.scene.SetPose(name, orient.Pose{Position: p}); err != nil {
			return st, errors.Wrap(err, "viewer: update")
		}
		if err := v.setVisible(name, true); err != nil {
			return st, err
		}
	}

	for _, b := range v.bones {
		name := BoneNode(b)
		pose, err := skeleton.PoseBone(pos[b.From], pos[b.To])
		switch {
		case errors.Is(err, orient.ErrDegenerateVector):
			if v.policy == PolicyHide {
				st.Hidden++
				if err := v.setVisible(name, false); err != nil {
					return st, err
				}
			} else {
				st.Held++
			}
			v.logger.Debugw("degenerate bone", "bone", b.Name(), "frame", frame, "policy", v.policy)
			continue
		case err != nil:
			return st, errors.Wrapf(err, "viewer: bone %s", b.Name())
		}

		if err := v.scene.SetPose(name, pose); err != nil {
			return st, errors.Wrap(err, "viewer: update")
		}
		if err := v.setVisible(name, true); err != nil {
			return st, err
		}
		st.Posed++
	}

	return st, nil
}

// setVisible only touches the scene on a change.
func (v *Viewer) setVisible(name string, visible bool) error {
	if v.hidden[name] == !visible {
		return nil
	}
	if err := v.scene.SetVisible(name, visible); err != nil {
		return errors.Wrap(err, "viewer: update")
	}
	if visible {
		delete(v.hidden, name)
	} else {
		v.hidden[name] = true
	}
	return nil
}

// MaxFrame is the last frame of the motion data.
func (v *Viewer) MaxFrame() int {
	return v.table.MaxFrame()
}
