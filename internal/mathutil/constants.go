package mathutil

var (
	// UnitX is the local bone axis: cylinders are built along +X.
	UnitX = Vec3{1, 0, 0}
	UnitY = Vec3{0, 1, 0}
	UnitZ = Vec3{0, 0, 1}
)

// gimbalEps is the |cos(pitch)| below which heading and roll share an axis.
const gimbalEps = 1e-12
