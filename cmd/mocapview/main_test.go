package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mocap-viewer/internal/batch"
	"mocap-viewer/internal/report"
)

const take = `,Wrist.x,Wrist.y,Wrist.z,Index1.x,Index1.y,Index1.z,IndexTip.x,IndexTip.y,IndexTip.z
0,0,0,0,0.05,0,0,0.09,0,0
1,0,0,0,0.05,0.01,0,0.09,0.02,0
`

const cfgJSON = `{"links":[["Wrist","Index1","IndexTip"]],"width":48,"height":36,"supersample":1,"workers":2}`

func writeInputs(t *testing.T) (csvPath, cfgPath string) {
	t.Helper()
	dir := t.TempDir()
	csvPath = filepath.Join(dir, "take.csv")
	cfgPath = filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(csvPath, []byte(take), 0o644))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgJSON), 0o644))
	return csvPath, cfgPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.Metadata = map[string]interface{}{"logger": zaptest.NewLogger(t).Sugar()}
	err := app.Run(append([]string{"mocapview"}, args...))
	return out.String(), err
}

func TestInspect(t *testing.T) {
	csvPath, _ := writeInputs(t)
	out, err := run(t, "inspect", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrist")
	assert.Contains(t, out, "IndexTip")
}

func TestPosesJSON(t *testing.T) {
	csvPath, cfgPath := writeInputs(t)
	out, err := run(t, "--config", cfgPath, "poses", "--frame", "1", "--json", "--input", csvPath)
	require.NoError(t, err)

	var poses []report.BonePose
	require.NoError(t, json.Unmarshal([]byte(out), &poses))
	require.Len(t, poses, 2)
	assert.Equal(t, "Wrist-Index1", poses[0].Bone)
	assert.InDelta(t, 0.025, poses[0].Center[0], 1e-12)
}

func TestPosesDefaultLinksNeedHandJoints(t *testing.T) {
	csvPath, _ := writeInputs(t)
	_, err := run(t, "poses", csvPath)
	assert.ErrorContains(t, err, "missing")
}

func TestRender(t *testing.T) {
	csvPath, cfgPath := writeInputs(t)
	outDir := filepath.Join(t.TempDir(), "out")
	_, err := run(t, "--config", cfgPath, "render", "--output", outDir, "--format", "tga", csvPath)
	require.NoError(t, err)

	for _, f := range []string{"frames/00000.tga", "frames/00001.tga", "manifest.json"} {
		_, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(f)))
		assert.NoError(t, err, f)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "manifest.json"))
	require.NoError(t, err)
	var m batch.Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, 48, m.Width)
	require.Len(t, m.Frames, 2)
	assert.Equal(t, "frame:1 (1)", m.Frames[1].Label)
	assert.Equal(t, 2, m.Frames[1].Posed)
}

func TestRenderStartHold(t *testing.T) {
	csvPath, cfgPath := writeInputs(t)
	outDir := filepath.Join(t.TempDir(), "out")
	_, err := run(t, "--config", cfgPath, "render", "--output", outDir, "--format", "tga",
		"--start", "1", "--hold", "1", "--frames", "2", csvPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "manifest.json"))
	require.NoError(t, err)
	var m batch.Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	require.Len(t, m.Frames, 3)
	var frames []int
	for _, f := range m.Frames {
		frames = append(frames, f.Frame)
	}
	assert.Equal(t, []int{1, 1, 0}, frames)
	assert.Equal(t, "frames/00002.tga", m.Frames[2].Image)
}

func TestPlot(t *testing.T) {
	csvPath, _ := writeInputs(t)
	out := filepath.Join(t.TempDir(), "traj.svg")
	_, err := run(t, "plot", "--output", out, "--joints", "IndexTip", csvPath)
	require.NoError(t, err)
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestRenderBadFormat(t *testing.T) {
	csvPath, _ := writeInputs(t)
	_, err := run(t, "render", "--format", "gif", csvPath)
	assert.ErrorContains(t, err, "unknown format")
}
