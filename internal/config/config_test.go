package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mocap-viewer/internal/batch"
	"mocap-viewer/internal/viewer"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{Input: filepath.Join("data", "take1.csv")})

	assert.Equal(t, filepath.Join("data", "take1-render"), c.OutputDir)
	assert.Equal(t, 1000, c.Width)
	assert.Equal(t, 750, c.Height)
	assert.Equal(t, 2, c.Supersample)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	assert.Equal(t, batch.FormatWebP, c.Format)
	assert.Equal(t, 60.0, c.FPS)
	assert.Equal(t, viewer.PolicyHold, c.Degenerate)
	assert.Equal(t, [3]float64{1, 1, 1}, c.CameraEye)
	assert.Equal(t, 0.004, c.JointRadius)
	assert.Equal(t, 0.005, c.BoneRadius)
	assert.True(t, c.ShowLabel())
	assert.Equal(t, 1.0, c.Axes())
	require.NoError(t, c.Validate())
}

func TestAxesLength(t *testing.T) {
	examples := []struct {
		body string
		want float64
	}{
		{`{}`, 1},
		{`{"axes_length":0}`, 0},
		{`{"axes_length":-1}`, 0},
		{`{"axes_length":0.25}`, 0.25},
	}

	for _, ex := range examples {
		path := filepath.Join(t.TempDir(), "cfg.json")
		require.NoError(t, os.WriteFile(path, []byte(ex.body), 0o644))
		c, err := Load(path)
		require.NoError(t, err)
		c.Resolve(Flags{Input: "x.csv"})
		assert.Equal(t, ex.want, c.Axes(), ex.body)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	body := `{"input":"a.csv","width":320,"height":240,"format":"tga","degenerate_policy":"hide",
		"links":[["A","B","C"]],"label":false}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B", "C"}}, c.Links)

	c.Resolve(Flags{Width: 640, Format: "WEBP"})
	assert.Equal(t, "a.csv", c.Input)
	assert.Equal(t, 640, c.Width)
	assert.Equal(t, 240, c.Height)
	assert.Equal(t, batch.FormatWebP, c.Format)
	assert.Equal(t, viewer.PolicyHide, c.Degenerate)
	assert.False(t, c.ShowLabel())
	require.NoError(t, c.Validate())
}

func TestPlaybackSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"start_frame":4,"frames":-2,"hold_frames":3}`), 0o644))
	c, err := Load(path)
	require.NoError(t, err)

	c.Resolve(Flags{Input: "x.csv", HoldFrames: 5})
	assert.Equal(t, 4, c.StartFrame)
	assert.Equal(t, 0, c.Frames, "negative count plays to the end")
	assert.Equal(t, 5, c.HoldFrames)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "config: parse")
}

func TestValidate(t *testing.T) {
	examples := []struct {
		name string
		edit func(*Config)
		want string
	}{
		{"no input", func(c *Config) { c.Input = "" }, "no input"},
		{"format", func(c *Config) { c.Format = "png" }, "unknown format"},
		{"policy", func(c *Config) { c.Degenerate = "skip" }, "unknown degenerate policy"},
		{"short chain", func(c *Config) { c.Links = [][]string{{"A"}} }, "fewer than two"},
	}

	for _, ex := range examples {
		t.Run(ex.name, func(t *testing.T) {
			c := Config{Input: "x.csv"}
			c.Resolve(Flags{})
			ex.edit(&c)
			assert.ErrorContains(t, c.Validate(), ex.want)
		})
	}
}
