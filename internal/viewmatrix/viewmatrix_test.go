package viewmatrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mocap-viewer/internal/mathutil"
)

func TestProjectTargetAtCenter(t *testing.T) {
	c := NewCamera(mathutil.Vec3{1, 1, 1}, mathutil.Vec3{}, 40, 200, 100)

	x, y, _, ok := c.Project(mathutil.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
}

func TestProjectUpIsUp(t *testing.T) {
	c := NewCamera(mathutil.Vec3{2, 0, 0}, mathutil.Vec3{}, 40, 100, 100)

	_, y0, _, ok := c.Project(mathutil.Vec3{})
	require.True(t, ok)
	_, y1, _, ok := c.Project(mathutil.Vec3{0, 0, 0.1})
	require.True(t, ok)
	assert.Less(t, y1, y0, "+Z should be higher on screen")
}

func TestProjectDepthOrdering(t *testing.T) {
	c := NewCamera(mathutil.Vec3{0, -3, 0}, mathutil.Vec3{}, 40, 100, 100)

	_, _, near, ok := c.Project(mathutil.Vec3{0, -1, 0})
	require.True(t, ok)
	_, _, far, ok := c.Project(mathutil.Vec3{0, 1, 0})
	require.True(t, ok)
	assert.Greater(t, near, far)
}

func TestProjectBehindCamera(t *testing.T) {
	c := NewCamera(mathutil.Vec3{0, -3, 0}, mathutil.Vec3{}, 40, 100, 100)
	_, _, _, ok := c.Project(mathutil.Vec3{0, -5, 0})
	assert.False(t, ok)
}

func TestVerticalLookFallsBackToYUp(t *testing.T) {
	c := NewCamera(mathutil.Vec3{0, 0, 5}, mathutil.Vec3{}, 0, 64, 64)
	assert.Equal(t, DefaultFOV, c.FOV)

	x, y, _, ok := c.Project(mathutil.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 32, x, 1e-9)
	assert.InDelta(t, 32, y, 1e-9)
}

func TestResize(t *testing.T) {
	c := NewCamera(mathutil.Vec3{1, 1, 1}, mathutil.Vec3{}, 40, 100, 50)
	big := c.Resize(200, 100)
	assert.Equal(t, 100, c.Width)

	x, y, _, ok := big.Project(mathutil.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)

	px, py, pz, vis := c.ProjectVertices([]mathutil.Vec3{{0, 0, 0}}, mathutil.FromMat3Translation(mathutil.HPR{}.Mat3(), mathutil.Vec3{}))
	assert.Len(t, px, 1)
	assert.Len(t, py, 1)
	assert.Len(t, pz, 1)
	assert.True(t, vis[0])
}

func TestEyeOnTargetIsMoved(t *testing.T) {
	target := mathutil.Vec3{0.1, 0.2, 0.3}
	examples := []mathutil.Vec3{
		target,
		{math.NaN(), 0, 0},
		{math.Inf(1), 0, 0},
	}

	for _, eye := range examples {
		c := NewCamera(eye, target, 40, 64, 48)
		assert.Equal(t, target.Add(DefaultEyeOffset), c.Eye, "eye %v", eye)

		x, y, depth, ok := c.Project(target)
		require.True(t, ok, "eye %v", eye)
		assert.InDelta(t, 32, x, 1e-9)
		assert.InDelta(t, 24, y, 1e-9)
		assert.False(t, math.IsNaN(depth))
	}
}
