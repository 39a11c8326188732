package main

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"mocap-viewer/internal/config"
	"mocap-viewer/internal/motion"
	"mocap-viewer/internal/skeleton"
)

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagInput,
		Aliases: []string{"i"},
		Usage:   "joint table `CSV` (or the first argument)",
	}
}

// loadConfig reads --config and applies the command's flags on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	var cfg config.Config
	if path := c.String(flagConfig); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	}

	input := c.String(flagInput)
	if input == "" {
		input = c.Args().First()
	}
	cfg.Resolve(config.Flags{
		Input:       input,
		OutputDir:   c.String(flagOutput),
		Width:       c.Int(flagWidth),
		Height:      c.Int(flagHeight),
		Supersample: c.Int(flagSupersample),
		Workers:     c.Int(flagWorkers),
		Format:      c.String(flagFormat),
		Animate:     c.Bool(flagAnimate),
		FPS:         c.Float64(flagFPS),
		Degenerate:  c.String(flagDegenerate),
		StartFrame:  c.Int(flagStart),
		Frames:      c.Int(flagFrames),
		HoldFrames:  c.Int(flagHold),
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func loadTable(cfg config.Config) (*motion.Table, error) {
	tab, err := motion.Load(cfg.Input)
	if err != nil {
		return nil, errors.Wrap(err, "load motion data")
	}
	return tab, nil
}

// bones returns the configured topology, or the hand topology by default.
func bones(cfg config.Config) []skeleton.BoneSpec {
	if len(cfg.Links) > 0 {
		return skeleton.ExpandLinks(cfg.Links)
	}
	return skeleton.ExpandLinks(skeleton.DefaultHandLinks)
}

func toNRGBA(c [3]float64) color.NRGBA {
	ch := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: 255}
}
