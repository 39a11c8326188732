// Package trajectory plots joint coordinates over frames.
package trajectory

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"mocap-viewer/internal/motion"
)

// Series is one joint axis over frames. Missing samples are left out.
type Series struct {
	Name string
	XYs  plotter.XYs
}

// Collect builds a series per joint and axis, in argument order.
func Collect(t *motion.Table, joints, axes []string) ([]Series, error) {
	if len(joints) == 0 {
		return nil, errors.New("trajectory: no joints")
	}
	if len(axes) == 0 {
		axes = []string{"x", "y", "z"}
	}

	var out []Series
	for _, j := range joints {
		for _, a := range axes {
			col, err := t.Series(j, a)
			if err != nil {
				return nil, errors.Wrap(err, "trajectory")
			}
			xys := make(plotter.XYs, 0, len(col))
			for f, v := range col {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					continue
				}
				xys = append(xys, plotter.XY{X: float64(f), Y: v})
			}
			out = append(out, Series{Name: j + "." + a, XYs: xys})
		}
	}
	return out, nil
}

// New returns a line plot of the series.
func New(title string, series []Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "position"
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.XYs) == 0 {
			continue
		}
		l, err := plotter.NewLine(s.XYs)
		if err != nil {
			return nil, errors.Wrapf(err, "trajectory: %s", s.Name)
		}
		l.Color = plotutil.Color(i)
		l.Dashes = plotutil.Dashes(i / 3)
		p.Add(l)
		p.Legend.Add(s.Name, l)
	}
	p.Legend.Top = true
	return p, nil
}

// Save plots joints of t and writes the image; the format follows the file
// extension (png, svg, pdf, ...).
func Save(path string, t *motion.Table, joints, axes []string, width, height vg.Length) error {
	series, err := Collect(t, joints, axes)
	if err != nil {
		return err
	}
	p, err := New("joint trajectories", series)
	if err != nil {
		return err
	}
	if width <= 0 {
		width = 8 * vg.Inch
	}
	if height <= 0 {
		height = 4 * vg.Inch
	}
	return errors.Wrapf(p.Save(width, height, path), "trajectory: save %s", path)
}
