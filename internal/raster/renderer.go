package raster

import (
	"image"
	"image/color"

	"mocap-viewer/internal/mathutil"
	"mocap-viewer/internal/scene"
	"mocap-viewer/internal/viewmatrix"
)

// DefaultBackground is the viewer's dark gray clear color.
var DefaultBackground = color.NRGBA{R: 77, G: 77, B: 77, A: 255}

// Options control a single Render call.
type Options struct {
	// Supersample renders at N times the camera size. Values below 1 mean 1.
	Supersample int
	Background  color.NRGBA
	Light       *LightConfig
}

// Render rasterizes the visible nodes of a scene snapshot as seen by cam.
// The returned image is cam.Width*ss by cam.Height*ss; downsampling is left
// to the caller.
func Render(states []scene.NodeState, cam *viewmatrix.Camera, opts Options) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	if ss > 1 {
		cam = cam.Resize(cam.Width*ss, cam.Height*ss)
	}
	bg := opts.Background
	if bg == (color.NRGBA{}) {
		bg = DefaultBackground
	}
	var lc LightConfig
	if opts.Light != nil {
		lc = *opts.Light
	} else {
		lc = NewLightConfig(mathutil.Vec3{100, -100, 100}, cam.ViewDir())
	}

	fb := NewFrameBuffer(cam.Width, cam.Height, bg)

	for _, st := range states {
		if !st.Visible || st.Mesh == nil || len(st.Mesh.Verts) == 0 {
			continue
		}
		world := st.Pose.Matrix()
		rot := world.Rotation()
		px, py, pz, vis := cam.ProjectVertices(st.Mesh.Verts, world)
		base := st.Mesh.Color

		for _, tri := range st.Mesh.Tris {
			if !vis[tri[0]] || !vis[tri[1]] || !vis[tri[2]] {
				continue
			}
			n := faceNormal(st.Mesh.Verts, tri)
			if n == (mathutil.Vec3{}) {
				continue
			}
			shade := lc.ComputeShade(rot.MulVec3(n))
			r, g, b := lc.ShadeColor(base.R, base.G, base.B, shade)
			RasterizeTriangle(fb, px, py, pz, tri, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)

	return img
}

// faceNormal is the unit normal of a mesh-space triangle, zero when degenerate.
func faceNormal(verts []mathutil.Vec3, tri [3]int) mathutil.Vec3 {
	a, b, c := verts[tri[0]], verts[tri[1]], verts[tri[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-18 {
		return mathutil.Vec3{}
	}
	return n.Normalize()
}
