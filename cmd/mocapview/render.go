package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"mocap-viewer/internal/batch"
	"mocap-viewer/internal/mathutil"
	"mocap-viewer/internal/scene"
	"mocap-viewer/internal/viewer"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render every frame of a joint table to images",
		ArgsUsage: "[CSV]",
		Flags: []cli.Flag{
			inputFlag(),
			&cli.StringFlag{Name: flagOutput, Aliases: []string{"o"}, Usage: "output `DIR` (default: <input>-render)"},
			&cli.IntFlag{Name: flagWidth, Usage: "image width (default: 1000)"},
			&cli.IntFlag{Name: flagHeight, Usage: "image height (default: 750)"},
			&cli.IntFlag{Name: flagSupersample, Usage: "supersampling factor (default: 2)"},
			&cli.IntFlag{Name: flagWorkers, Usage: "number of render workers (default: NumCPU)"},
			&cli.StringFlag{Name: flagFormat, Usage: "frame format: webp or tga (default: webp)"},
			&cli.BoolFlag{Name: flagAnimate, Usage: "also write an animated WebP"},
			&cli.Float64Flag{Name: flagFPS, Usage: "animation frame rate (default: 60)"},
			&cli.StringFlag{Name: flagDegenerate, Usage: "degenerate bones: hold or hide (default: hold)"},
			&cli.IntFlag{Name: flagStart, Usage: "first frame to render"},
			&cli.IntFlag{Name: flagFrames, Usage: "number of frames to render, wrapping at the end (default: to the end)"},
			&cli.IntFlag{Name: flagHold, Usage: "repeat the first frame this many extra times"},
		},
		Action: renderAction,
	}
}

func renderAction(c *cli.Context) error {
	logger := loggerFrom(c)
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	tab, err := loadTable(cfg)
	if err != nil {
		return err
	}
	logger.Infow("motion data loaded", "input", cfg.Input, "joints", len(tab.Joints()), "max_frame", tab.MaxFrame())

	sc := scene.New()
	v, err := viewer.New(sc, tab, viewer.Options{
		Bones:       bones(cfg),
		JointRadius: cfg.JointRadius,
		BoneRadius:  cfg.BoneRadius,
		JointColor:  toNRGBA(cfg.JointColor),
		BoneColor:   toNRGBA(cfg.BoneColor),
		AxesLength:  cfg.Axes(),
		Policy:      cfg.Degenerate,
	}, logger)
	if err != nil {
		return err
	}
	cam := v.Camera(mathutil.Vec3(cfg.CameraEye), cfg.CameraFOV, cfg.Width, cfg.Height)

	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bcfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      cfg.Format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Animate:     cfg.Animate,
		FPS:         cfg.FPS,
		Label:       cfg.ShowLabel(),
		Start:       cfg.StartFrame,
		Frames:      cfg.Frames,
		Hold:        cfg.HoldFrames,
	}
	logger.Infow("rendering", "output", cfg.OutputDir, "size", []int{cfg.Width, cfg.Height},
		"format", cfg.Format, "workers", cfg.Workers)

	start := time.Now()
	results, runErr := batch.Run(ctx, bcfg, v, sc, cam, logger)
	if results == nil {
		return runErr
	}

	manifest := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifest, batch.NewManifest(cfg.Input, bcfg, results)); err != nil {
		return err
	}

	success, degenerate := 0, 0
	for _, r := range results {
		if r.Success {
			success++
		}
		degenerate += r.Held + r.Hidden
	}
	logger.Infow("done", "rendered", success, "frames", len(results), "degenerate_bones", degenerate,
		"elapsed", time.Since(start).Round(time.Millisecond), "manifest", manifest)

	if runErr != nil {
		return errors.Wrapf(runErr, "%d of %d frames failed", len(results)-success, len(results))
	}
	return nil
}
