// Package viewmatrix builds the look-at/perspective camera and projects world
// points to screen space.
package viewmatrix

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mocap-viewer/internal/mathutil"
)

// Default camera settings.
const (
	DefaultFOV  = 40.0 // vertical, degrees
	DefaultNear = 0.01
	DefaultFar  = 100.0
)

// Camera is a perspective camera looking from Eye at Target with +Z up.
type Camera struct {
	Eye    mathutil.Vec3
	Target mathutil.Vec3
	FOV    float64
	Near   float64
	Far    float64

	Width  int
	Height int

	viewProj mgl64.Mat4
}

// DefaultEyeOffset places the eye relative to the target when the given eye
// cannot look at it.
var DefaultEyeOffset = mathutil.Vec3{1, 1, 1}

// NewCamera builds the view-projection for a width×height viewport. An eye
// that coincides with the target, or a non-finite one, is moved to
// target+DefaultEyeOffset.
func NewCamera(eye, target mathutil.Vec3, fov float64, width, height int) *Camera {
	if !target.IsFinite() {
		target = mathutil.Vec3{}
	}
	if !eye.IsFinite() || eye.Distance(target) < 1e-12 {
		eye = target.Add(DefaultEyeOffset)
	}
	c := &Camera{
		Eye:    eye,
		Target: target,
		FOV:    fov,
		Near:   DefaultNear,
		Far:    DefaultFar,
		Width:  width,
		Height: height,
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		c.FOV = DefaultFOV
	}
	c.update()
	return c
}

// Resize rebuilds the projection for a new viewport, e.g. a supersampled one.
func (c *Camera) Resize(width, height int) *Camera {
	cc := *c
	cc.Width, cc.Height = width, height
	cc.update()
	return &cc
}

func (c *Camera) update() {
	eye := toMGL(c.Eye)
	target := toMGL(c.Target)
	up := mgl64.Vec3{0, 0, 1}

	// Looking straight up or down: fall back to +Y as up.
	if dir := target.Sub(eye); dir.Len() > 0 && math.Abs(dir.Normalize().Dot(up)) > 0.999 {
		up = mgl64.Vec3{0, 1, 0}
	}

	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}

	view := mgl64.LookAtV(eye, target, up)
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
	c.viewProj = proj.Mul4(view)
}

// ViewDir returns the unit direction the camera looks along.
func (c *Camera) ViewDir() mathutil.Vec3 {
	return c.Target.Sub(c.Eye).Normalize()
}

// Project maps a world point to pixel coordinates and depth. Depth grows
// toward the camera (z-buffer convention of the rasterizer). ok is false for
// points outside the near/far range.
func (c *Camera) Project(p mathutil.Vec3) (x, y, depth float64, ok bool) {
	clip := c.viewProj.Mul4x1(mgl64.Vec4{p[0], p[1], p[2], 1})
	w := clip[3]
	if !(w >= c.Near) {
		return 0, 0, 0, false
	}
	nx, ny, nz := clip[0]/w, clip[1]/w, clip[2]/w
	if nz < -1 || nz > 1 {
		return 0, 0, 0, false
	}

	x = (nx + 1) * 0.5 * float64(c.Width)
	y = (1 - ny) * 0.5 * float64(c.Height)
	return x, y, -nz, true
}

// ProjectVertices transforms mesh vertices by a node transform and projects
// them. Returns px, py, pz slices (screen X, screen Y, depth) and per-vertex visibility.
func (c *Camera) ProjectVertices(verts []mathutil.Vec3, world mathutil.Mat4) ([]float64, []float64, []float64, []bool) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)
	vis := make([]bool, n)

	for i, v := range verts {
		px[i], py[i], pz[i], vis[i] = c.Project(world.MulPoint(v))
	}

	return px, py, pz, vis
}

func toMGL(v mathutil.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}
