// Package report formats motion data and bone poses for the terminal.
package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"mocap-viewer/internal/mathutil"
	"mocap-viewer/internal/motion"
	"mocap-viewer/internal/orient"
	"mocap-viewer/internal/skeleton"
)

// BonePose is one bone's placement at a frame.
type BonePose struct {
	Bone    string        `json:"bone"`
	Center  mathutil.Vec3 `json:"center"`
	Length  float64       `json:"length"`
	Heading float64       `json:"heading"`
	Pitch   float64       `json:"pitch"`
	Roll    float64       `json:"roll"`
	Error   string        `json:"error,omitempty"`
}

// FramePoses poses every bone at a frame. Degenerate bones carry an error
// message instead of a pose; a missing joint is an error.
func FramePoses(t *motion.Table, bones []skeleton.BoneSpec, frame int) ([]BonePose, error) {
	pos, err := t.Frame(frame)
	if err != nil {
		return nil, err
	}

	out := make([]BonePose, 0, len(bones))
	for _, b := range bones {
		p1, ok1 := pos[b.From]
		p2, ok2 := pos[b.To]
		if !ok1 || !ok2 {
			return nil, errors.Errorf("report: bone %s references a joint missing from the data", b.Name())
		}
		bp := BonePose{Bone: b.Name(), Length: skeleton.BoneLength(p1, p2)}
		pose, err := skeleton.PoseBone(p1, p2)
		if err != nil {
			bp.Error = err.Error()
			out = append(out, bp)
			continue
		}
		bp.Center = pose.Position
		bp.Heading = pose.Orientation.Heading
		bp.Pitch = pose.Orientation.Pitch
		bp.Roll = pose.Orientation.Roll
		out = append(out, bp)
	}
	return out, nil
}

// PoseTable renders poses as a text table.
func PoseTable(poses []BonePose) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Bone", "Center", "Length", "H", "P", "R"})
	for i, p := range poses {
		if p.Error != "" {
			t.AppendRow(table.Row{i + 1, p.Bone, "-", fmt.Sprintf("%.4f", p.Length), "degenerate", "", ""})
			continue
		}
		t.AppendRow(table.Row{
			i + 1,
			p.Bone,
			fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f", p.Center[0], p.Center[1], p.Center[2]),
			fmt.Sprintf("%.4f", p.Length),
			fmt.Sprintf("%.2f", p.Heading),
			fmt.Sprintf("%.2f", p.Pitch),
			fmt.Sprintf("%.2f", p.Roll),
		})
	}
	return t.Render()
}

// JointTable lists every joint with its range over the take.
func JointTable(t *motion.Table) (string, error) {
	w := table.NewWriter()
	w.AppendHeader(table.Row{"#", "Joint", "Min", "Max"})
	for i, j := range t.Joints() {
		lo, hi, err := t.Bounds(j)
		if err != nil {
			return "", err
		}
		w.AppendRow(table.Row{
			i + 1,
			j,
			fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f", lo[0], lo[1], lo[2]),
			fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f", hi[0], hi[1], hi[2]),
		})
	}
	w.AppendFooter(table.Row{"", "frames", t.NumFrames(), fmt.Sprintf("max frame %d", t.MaxFrame())})
	return w.Render(), nil
}

// Pose converts a BonePose back to a scene pose.
func (p BonePose) Pose() orient.Pose {
	return orient.Pose{
		Position:    p.Center,
		Orientation: mathutil.HPR{Heading: p.Heading, Pitch: p.Pitch, Roll: p.Roll},
	}
}
