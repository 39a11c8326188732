package raster

import (
	"math"

	"mocap-viewer/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters.
type LightConfig struct {
	LightDir  mathutil.Vec3
	RimDir    mathutil.Vec3
	ViewDir   mathutil.Vec3
	HalfMain  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// NewLightConfig returns the standard lighting for a camera looking along
// viewDir, with the key light toward lightPos (world space, +Z up).
func NewLightConfig(lightPos, viewDir mathutil.Vec3) LightConfig {
	lightDir := lightPos.Normalize()
	rimDir := mathutil.Vec3{-lightPos[0], -lightPos[1], lightPos[2] * 0.5}.Normalize()
	viewDir = viewDir.Normalize()

	halfMain := lightDir.Sub(viewDir).Normalize()

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  halfMain,
		Ambient:   0.45,
		Hemi:      0.40,
		Direct:    1.20,
		Rim:       0.50,
		SpecInt:   0.45,
		SpecPow:   12.0,
		Exposure:  1.05,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// DefaultLightConfig is a point light up and to the right of a camera at (1,1,1).
func DefaultLightConfig() LightConfig {
	return NewLightConfig(mathutil.Vec3{100, -100, 100}, mathutil.Vec3{-1, -1, -1})
}

// ComputeShade returns the combined lighting scalar for a face normal.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	// Lambertian (abs for double-sided)
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill, sky is +Z
	hemi := normal[2]*0.25 + 0.75
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := math.Abs(normal.Dot(lc.HalfMain))
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// ShadeColor applies lighting, tone mapping and sRGB encoding to a base color.
func (lc *LightConfig) ShadeColor(r, g, b uint8, shade float64) (uint8, uint8, uint8) {
	k := shade * lc.Exposure
	fr := math.Pow(ACESTonemap(srgbToLinear[r]*k), lc.InvGamma)
	fg := math.Pow(ACESTonemap(srgbToLinear[g]*k), lc.InvGamma)
	fb := math.Pow(ACESTonemap(srgbToLinear[b]*k), lc.InvGamma)
	return clamp255(fr * 255), clamp255(fg * 255), clamp255(fb * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
