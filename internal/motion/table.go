// Package motion loads per-frame joint positions from a CSV table whose
// columns are named "<joint>.x", "<joint>.y" and "<joint>.z".
package motion

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"mocap-viewer/internal/mathutil"
)

// JointFrame maps joint name to position for one frame.
type JointFrame map[string]mathutil.Vec3

// Table holds every frame of a motion file, one row per frame.
type Table struct {
	joints []string
	cols   map[string][3]int // joint → column of x, y, z in data
	data   *mat.Dense
}

// Load reads a motion CSV from disk.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "motion: open %s", path)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "motion: load %s", path)
	}
	return t, nil
}

// Read parses a motion CSV. Columns without a '.' (frame index, time) are ignored.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("motion: empty file")
		}
		return nil, errors.Wrap(err, "motion: read header")
	}

	t := &Table{cols: make(map[string][3]int)}

	// source column per data column
	var src []int
	axes := make(map[string]*[3]int)
	for i, name := range header {
		name = strings.TrimSpace(name)
		dot := strings.IndexByte(name, '.')
		if dot <= 0 {
			continue
		}
		joint, axis := name[:dot], name[dot+1:]
		ai := axisIndex(axis)
		if ai < 0 {
			continue
		}
		a, ok := axes[joint]
		if !ok {
			a = &[3]int{-1, -1, -1}
			axes[joint] = a
			t.joints = append(t.joints, joint)
		}
		if a[ai] >= 0 {
			return nil, errors.Errorf("motion: duplicate column %q", name)
		}
		a[ai] = len(src)
		src = append(src, i)
	}

	if len(t.joints) == 0 {
		return nil, errors.New("motion: no <joint>.x/y/z columns in header")
	}
	for _, j := range t.joints {
		a := axes[j]
		for k, c := range a {
			if c < 0 {
				return nil, errors.Errorf("motion: joint %q has no %s column", j, axisNames[k])
			}
		}
		t.cols[j] = *a
	}

	var values []float64
	rows := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "motion: read row %d", rows+1)
		}
		for _, i := range src {
			if i >= len(rec) {
				return nil, errors.Errorf("motion: row %d: missing column %q", rows+1, header[i])
			}
			cell := strings.TrimSpace(rec[i])
			if cell == "" {
				// missing sample
				values = append(values, math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "motion: row %d column %q", rows+1, header[i])
			}
			values = append(values, v)
		}
		rows++
	}

	if rows == 0 {
		return nil, errors.New("motion: no frames")
	}

	t.data = mat.NewDense(rows, len(src), values)
	return t, nil
}

var axisNames = [3]string{"x", "y", "z"}

func axisIndex(s string) int {
	switch strings.ToLower(s) {
	case "x":
		return 0
	case "y":
		return 1
	case "z":
		return 2
	}
	return -1
}

// Joints returns joint names in header order.
func (t *Table) Joints() []string {
	return append([]string(nil), t.joints...)
}

// HasJoint reports whether the table carries the joint.
func (t *Table) HasJoint(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// NumFrames returns the number of rows.
func (t *Table) NumFrames() int {
	r, _ := t.data.Dims()
	return r
}

// MaxFrame returns the index of the last frame.
func (t *Table) MaxFrame() int {
	return t.NumFrames() - 1
}

// Position returns a joint's position at a frame.
func (t *Table) Position(joint string, frame int) (mathutil.Vec3, error) {
	c, ok := t.cols[joint]
	if !ok {
		return mathutil.Vec3{}, errors.Errorf("motion: unknown joint %q", joint)
	}
	if frame < 0 || frame >= t.NumFrames() {
		return mathutil.Vec3{}, errors.Errorf("motion: frame %d out of range [0, %d]", frame, t.MaxFrame())
	}
	return mathutil.Vec3{t.data.At(frame, c[0]), t.data.At(frame, c[1]), t.data.At(frame, c[2])}, nil
}

// Frame returns every joint position at a frame.
func (t *Table) Frame(frame int) (JointFrame, error) {
	if frame < 0 || frame >= t.NumFrames() {
		return nil, errors.Errorf("motion: frame %d out of range [0, %d]", frame, t.MaxFrame())
	}
	jf := make(JointFrame, len(t.joints))
	for _, j := range t.joints {
		c := t.cols[j]
		jf[j] = mathutil.Vec3{t.data.At(frame, c[0]), t.data.At(frame, c[1]), t.data.At(frame, c[2])}
	}
	return jf, nil
}

// Series returns one axis ("x", "y" or "z") of a joint across all frames.
func (t *Table) Series(joint, axis string) ([]float64, error) {
	c, ok := t.cols[joint]
	if !ok {
		return nil, errors.Errorf("motion: unknown joint %q", joint)
	}
	ai := axisIndex(axis)
	if ai < 0 {
		return nil, errors.Errorf("motion: unknown axis %q", axis)
	}
	return mat.Col(nil, c[ai], t.data), nil
}

// Bounds returns the per-axis min and max of a joint over all frames.
// Missing samples are skipped; an axis with no samples reports NaN.
func (t *Table) Bounds(joint string) (lo, hi mathutil.Vec3, err error) {
	c, ok := t.cols[joint]
	if !ok {
		return lo, hi, errors.Errorf("motion: unknown joint %q", joint)
	}
	for k := 0; k < 3; k++ {
		col := mat.Col(nil, c[k], t.data)
		lo[k], hi[k] = math.NaN(), math.NaN()
		for _, v := range col {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(lo[k]) {
				lo[k], hi[k] = v, v
				continue
			}
			if v < lo[k] {
				lo[k] = v
			}
			if v > hi[k] {
				hi[k] = v
			}
		}
	}
	return lo, hi, nil
}
