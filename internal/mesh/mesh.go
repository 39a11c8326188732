// Package mesh generates the primitive geometry used for joints and bones.
package mesh

import (
	"image/color"
	"math"

	"mocap-viewer/internal/mathutil"
)

// Mesh is an indexed triangle list with a single flat color.
// Meshes are not modified after construction and may be shared between goroutines.
type Mesh struct {
	Verts []mathutil.Vec3
	Tris  [][3]int
	Color color.NRGBA
}

// Sphere returns a UV sphere centered at the origin.
func Sphere(radius float64, rings, segments int, c color.NRGBA) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	m := &Mesh{Color: c}

	// poles + (rings-1) latitude rows
	m.Verts = append(m.Verts, mathutil.Vec3{0, 0, radius})
	for r := 1; r < rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		z := radius * math.Cos(phi)
		rr := radius * math.Sin(phi)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			m.Verts = append(m.Verts, mathutil.Vec3{rr * math.Cos(theta), rr * math.Sin(theta), z})
		}
	}
	south := len(m.Verts)
	m.Verts = append(m.Verts, mathutil.Vec3{0, 0, -radius})

	row := func(r, s int) int { return 1 + (r-1)*segments + s%segments }

	for s := 0; s < segments; s++ {
		m.Tris = append(m.Tris, [3]int{0, row(1, s), row(1, s+1)})
	}
	for r := 1; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			a, b := row(r, s), row(r, s+1)
			lo, hi := row(r+1, s), row(r+1, s+1)
			m.Tris = append(m.Tris, [3]int{a, lo, hi}, [3]int{a, hi, b})
		}
	}
	for s := 0; s < segments; s++ {
		m.Tris = append(m.Tris, [3]int{south, row(rings-1, s+1), row(rings-1, s)})
	}

	return m
}

// Cylinder returns a capped cylinder along local X, from -length/2 to +length/2.
func Cylinder(radius, length float64, segments int, c color.NRGBA) *Mesh {
	if segments < 3 {
		segments = 3
	}

	m := &Mesh{Color: c}
	x0, x1 := -0.5*length, 0.5*length

	for s := 0; s < segments; s++ {
		theta := 2 * math.Pi * float64(s) / float64(segments)
		y, z := radius*math.Cos(theta), radius*math.Sin(theta)
		m.Verts = append(m.Verts, mathutil.Vec3{x0, y, z}, mathutil.Vec3{x1, y, z})
	}
	bottom := len(m.Verts)
	m.Verts = append(m.Verts, mathutil.Vec3{x0, 0, 0}, mathutil.Vec3{x1, 0, 0})
	top := bottom + 1

	for s := 0; s < segments; s++ {
		n := (s + 1) % segments
		b0, t0 := 2*s, 2*s+1
		b1, t1 := 2*n, 2*n+1
		m.Tris = append(m.Tris,
			[3]int{b0, b1, t1},
			[3]int{b0, t1, t0},
			[3]int{bottom, b1, b0},
			[3]int{top, t0, t1},
		)
	}

	return m
}

// Bounds returns the axis-aligned extent of the mesh.
func (m *Mesh) Bounds() (lo, hi mathutil.Vec3) {
	if len(m.Verts) == 0 {
		return lo, hi
	}
	lo, hi = m.Verts[0], m.Verts[0]
	for _, v := range m.Verts[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], v[k])
			hi[k] = math.Max(hi[k], v[k])
		}
	}
	return lo, hi
}
