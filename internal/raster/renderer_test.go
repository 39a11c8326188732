package raster

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mocap-viewer/internal/mathutil"
	"mocap-viewer/internal/mesh"
	"mocap-viewer/internal/orient"
	"mocap-viewer/internal/scene"
	"mocap-viewer/internal/viewmatrix"
)

var purple = color.NRGBA{R: 153, G: 26, B: 255, A: 255}

func sphereState(visible bool) scene.NodeState {
	return scene.NodeState{
		Name:    "ball",
		Mesh:    mesh.Sphere(0.3, 12, 16, purple),
		Visible: visible,
	}
}

func TestRenderSphereCoversCenter(t *testing.T) {
	cam := viewmatrix.NewCamera(mathutil.Vec3{1, 1, 1}, mathutil.Vec3{}, 40, 64, 64)
	img := Render([]scene.NodeState{sphereState(true)}, cam, Options{})

	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 64, img.Bounds().Dy())
	assert.NotEqual(t, DefaultBackground, img.NRGBAAt(32, 32))
	assert.Equal(t, DefaultBackground, img.NRGBAAt(0, 0))
	assert.Equal(t, DefaultBackground, img.NRGBAAt(63, 63))
}

func TestRenderHiddenNodeLeavesBackground(t *testing.T) {
	cam := viewmatrix.NewCamera(mathutil.Vec3{1, 1, 1}, mathutil.Vec3{}, 40, 32, 32)
	bg := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	img := Render([]scene.NodeState{sphereState(false)}, cam, Options{Background: bg})

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			require.Equal(t, bg, img.NRGBAAt(x, y))
		}
	}
}

func TestRenderSupersample(t *testing.T) {
	cam := viewmatrix.NewCamera(mathutil.Vec3{1, 1, 1}, mathutil.Vec3{}, 40, 40, 30)
	img := Render(nil, cam, Options{Supersample: 2})
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
	// camera passed in is untouched
	assert.Equal(t, 40, cam.Width)
}

func TestRenderFollowsPose(t *testing.T) {
	cam := viewmatrix.NewCamera(mathutil.Vec3{0, -3, 0}, mathutil.Vec3{}, 40, 64, 64)
	st := scene.NodeState{
		Name:    "ball",
		Mesh:    mesh.Sphere(0.1, 8, 12, purple),
		Visible: true,
		Pose:    orient.Pose{Position: mathutil.Vec3{0.6, 0, 0}},
	}
	img := Render([]scene.NodeState{st}, cam, Options{})

	x, y, _, ok := cam.Project(st.Pose.Position)
	require.True(t, ok)
	assert.Greater(t, x, 32.0)
	assert.NotEqual(t, DefaultBackground, img.NRGBAAt(int(x), int(y)))
	assert.Equal(t, DefaultBackground, img.NRGBAAt(32, 32))
}

func TestRasterizeTriangleDepthTest(t *testing.T) {
	fb := NewFrameBuffer(8, 8, color.NRGBA{})
	px := []float64{0, 8, 0}
	py := []float64{0, 0, 8}
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	RasterizeTriangle(fb, px, py, []float64{0.5, 0.5, 0.5}, [3]int{0, 1, 2}, red)
	assert.Equal(t, uint8(255), fb.Color[0])
	assert.Equal(t, 0.5, fb.ZBuf[0])

	// farther triangle does not overwrite
	RasterizeTriangle(fb, px, py, []float64{0.1, 0.1, 0.1}, [3]int{0, 1, 2}, blue)
	assert.Equal(t, uint8(255), fb.Color[0])
	assert.Equal(t, uint8(0), fb.Color[2])

	// bottom-right corner is outside the triangle
	assert.True(t, math.IsInf(fb.ZBuf[7*8+7], -1))
}

func TestShadeColorMonotonic(t *testing.T) {
	lc := DefaultLightConfig()
	r1, _, _ := lc.ShadeColor(128, 128, 128, 0.5)
	r2, _, _ := lc.ShadeColor(128, 128, 128, 2.0)
	assert.Less(t, r1, r2)
	r0, g0, b0 := lc.ShadeColor(0, 0, 0, 3)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r0, g0, b0})
}
