package batch

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Manifest describes a rendered take.
type Manifest struct {
	Source    string          `json:"source"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	FPS       float64         `json:"fps"`
	Format    string          `json:"format"`
	Animation string          `json:"animation,omitempty"`
	Frames    []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame      int    `json:"frame"`
	Label      string `json:"label"`
	Image      string `json:"image,omitempty"`
	Posed      int    `json:"posed"`
	Degenerate int    `json:"degenerate"`
	Error      string `json:"error,omitempty"`
}

// NewManifest collects the results of a run.
func NewManifest(source string, cfg Config, results []Result) Manifest {
	m := Manifest{
		Source: source,
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Format: cfg.Format,
		Frames: make([]ManifestEntry, len(results)),
	}
	if cfg.Animate {
		m.Animation = AnimationFile
	}
	for i, r := range results {
		e := ManifestEntry{
			Frame:      r.Frame,
			Label:      r.Label,
			Posed:      r.Posed,
			Degenerate: r.Held + r.Hidden,
			Error:      r.Error,
		}
		if r.Success {
			e.Image = r.Image
		}
		m.Frames[i] = e
	}
	return m
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "batch: write manifest")
}
