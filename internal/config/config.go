package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"mocap-viewer/internal/batch"
	"mocap-viewer/internal/viewer"
)

// Config holds all input paths and render settings.
type Config struct {
	// Paths
	Input     string `json:"input"`
	OutputDir string `json:"output_dir"`

	// Skeleton
	Links       [][]string `json:"links"`
	JointRadius float64    `json:"joint_radius"`
	BoneRadius  float64    `json:"bone_radius"`
	JointColor  [3]float64 `json:"joint_color"`
	BoneColor   [3]float64 `json:"bone_color"`
	AxesLength  *float64   `json:"axes_length"` // nil means 1; zero or negative disables the gizmo
	Degenerate  string     `json:"degenerate_policy"`

	// Camera
	CameraEye [3]float64 `json:"camera_eye"`
	CameraFOV float64    `json:"camera_fov"`

	// Render settings
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	Format      string  `json:"format"`
	Animate     bool    `json:"animate"`
	FPS         float64 `json:"fps"`
	Label       *bool   `json:"label"`

	// Playback
	StartFrame int `json:"start_frame"`
	Frames     int `json:"frames"` // 0 plays to the end of the take
	HoldFrames int `json:"hold_frames"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Input       string
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Workers     int
	Format      string
	Animate     bool
	FPS         float64
	Degenerate  string
	StartFrame  int
	Frames      int
	HoldFrames  int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Input != "" {
		c.Input = flags.Input
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Animate {
		c.Animate = true
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Degenerate != "" {
		c.Degenerate = flags.Degenerate
	}
	if flags.StartFrame > 0 {
		c.StartFrame = flags.StartFrame
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.HoldFrames > 0 {
		c.HoldFrames = flags.HoldFrames
	}

	// Output next to the input if unset
	if c.OutputDir == "" && c.Input != "" {
		base := strings.TrimSuffix(filepath.Base(c.Input), filepath.Ext(c.Input))
		c.OutputDir = filepath.Join(filepath.Dir(c.Input), base+"-render")
	}

	// Skeleton defaults
	if c.JointRadius <= 0 {
		c.JointRadius = 0.004
	}
	if c.BoneRadius <= 0 {
		c.BoneRadius = 0.005
	}
	if c.JointColor == [3]float64{} {
		c.JointColor = [3]float64{0.6, 0.1, 1.0}
	}
	if c.BoneColor == [3]float64{} {
		c.BoneColor = [3]float64{0.1, 0.6, 0.6}
	}
	if c.AxesLength == nil {
		l := 1.0
		c.AxesLength = &l
	}
	c.Degenerate = strings.ToLower(c.Degenerate)
	if c.Degenerate == "" {
		c.Degenerate = viewer.PolicyHold
	}

	// Camera defaults
	if c.CameraEye == [3]float64{} {
		c.CameraEye = [3]float64{1, 1, 1}
	}
	if c.CameraFOV <= 0 {
		c.CameraFOV = 40
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 1000
	}
	if c.Height <= 0 {
		c.Height = 750
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = batch.FormatWebP
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Label == nil {
		on := true
		c.Label = &on
	}
	if c.StartFrame < 0 {
		c.StartFrame = 0
	}
	if c.Frames < 0 {
		c.Frames = 0
	}
	if c.HoldFrames < 0 {
		c.HoldFrames = 0
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("config: no input file")
	}
	switch c.Format {
	case batch.FormatWebP, batch.FormatTGA:
	default:
		return errors.Errorf("config: unknown format %q (want webp or tga)", c.Format)
	}
	switch c.Degenerate {
	case viewer.PolicyHold, viewer.PolicyHide:
	default:
		return errors.Errorf("config: unknown degenerate policy %q (want hold or hide)", c.Degenerate)
	}
	for i, chain := range c.Links {
		if len(chain) < 2 {
			return errors.Errorf("config: link chain %d has fewer than two joints", i)
		}
	}
	return nil
}

// Axes returns the gizmo axis length; zero when the gizmo is off.
func (c *Config) Axes() float64 {
	if c.AxesLength == nil {
		return 1
	}
	if *c.AxesLength < 0 {
		return 0
	}
	return *c.AxesLength
}

// ShowLabel reports whether the frame label is drawn.
func (c *Config) ShowLabel() bool {
	return c.Label == nil || *c.Label
}
