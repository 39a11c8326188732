package orient

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mocap-viewer/internal/mathutil"
)

func assertReconstructs(t *testing.T, v mathutil.Vec3) Result {
	t.Helper()
	res, err := Solve(v)
	require.NoError(t, err, "solve %v", v)
	for _, a := range []float64{res.Heading, res.Pitch, res.Roll} {
		require.False(t, math.IsNaN(a) || math.IsInf(a, 0), "solve %v -> %v", v, res)
	}

	// Subnormal inputs only carry a few significant bits; allow a few units in the last place there.
	length := math.Hypot(math.Hypot(v[0], v[1]), v[2])
	floor := 8 * math.SmallestNonzeroFloat64
	assert.InDelta(t, length, res.Length, math.Max(1e-12*length, floor))

	act := Reconstruct(res)
	tol := math.Max(1e-9*length, floor)
	for i := range v {
		assert.InDelta(t, v[i], act[i], tol, "component %d of %v -> %v (%v)", i, v, act, res)
	}
	return res
}

func TestSolveFastPath(t *testing.T) {
	res, err := Solve(mathutil.Vec3{5, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, Result{Length: 5}, res)
}

func TestSolveAntiparallel(t *testing.T) {
	res := assertReconstructs(t, mathutil.Vec3{-5, 0, 0})
	assert.Equal(t, 5.0, res.Length)
}

func TestSolveZeroVector(t *testing.T) {
	_, err := Solve(mathutil.Vec3{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateVector))
}

func TestSolveNonFinite(t *testing.T) {
	for _, v := range []mathutil.Vec3{
		{math.NaN(), 1, 0},
		{0, math.Inf(1), 0},
	} {
		_, err := Solve(v)
		assert.True(t, errors.Is(err, ErrDegenerateVector), "%v", v)
	}
}

func TestSolveExamples(t *testing.T) {
	examples := []mathutil.Vec3{
		{0, 1, 0},
		{0, -1, 0},
		{0, 0, 1},
		{0, 0, -3},
		{1, 1, 1},
		{-1, 2, -3},
		{1e-6, 2, 0},
		{-1, 1e-9, 0},
		{-1, 1e-9, 1e-9},
		{-1, -1e-12, 1e-12},
		{1, 0, 1e-300},
		{-2, 0, 1e-300},
		{0.02, -0.013, 0.005},
		{1e-320, 1e-320, 0},
		{0, 5e-324, 0},
		{5e-324, 0, -5e-324},
	}

	for _, v := range examples {
		assertReconstructs(t, v)
	}
}

func TestSolveSubnormal(t *testing.T) {
	res, err := Solve(mathutil.Vec3{0, 5e-324, 0})
	require.NoError(t, err)
	assert.InDelta(t, 90, res.Heading, 1e-9)
	assert.InDelta(t, 0, res.Pitch, 1e-9)
	assert.Equal(t, 5e-324, res.Length)

	res, err = Solve(mathutil.Vec3{1e-320, 1e-320, 0})
	require.NoError(t, err)
	assert.InDelta(t, 45, res.Heading, 1e-9)
	assert.InDelta(t, 0, res.Pitch, 1e-9)
}

func TestSolveYAxisHeading(t *testing.T) {
	res, err := Solve(mathutil.Vec3{0, 1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 90, res.Heading, 1e-9)
	assert.InDelta(t, 0, res.Pitch, 1e-9)
	assert.InDelta(t, 0, res.Roll, 1e-9)
}

func TestSolveRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		scale := math.Pow(10, rng.Float64()*8-4)
		v := mathutil.Vec3{
			rng.NormFloat64() * scale,
			rng.NormFloat64() * scale,
			rng.NormFloat64() * scale,
		}
		assertReconstructs(t, v)
	}
}

func TestPoseMatrix(t *testing.T) {
	p := Pose{
		Position:    mathutil.Vec3{1, 2, 3},
		Orientation: mathutil.HPR{Heading: 90},
	}
	act := p.Matrix().MulPoint(mathutil.UnitX)
	exp := mathutil.Vec3{1, 3, 3}
	for i := range exp {
		assert.InDelta(t, exp[i], act[i], 1e-12)
	}
}
