// Package main is the mocapview command: render, inspect and plot motion
// capture joint tables.
package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"mocap-viewer/internal/logging"
)

const (
	// Global flags.
	flagConfig = "config"
	flagDebug  = "debug"

	// Command flags.
	flagInput       = "input"
	flagOutput      = "output"
	flagWidth       = "width"
	flagHeight      = "height"
	flagSupersample = "supersample"
	flagWorkers     = "workers"
	flagFormat      = "format"
	flagAnimate     = "animate"
	flagFPS         = "fps"
	flagDegenerate  = "degenerate"
	flagStart       = "start"
	flagFrames      = "frames"
	flagHold        = "hold"
	flagFrame       = "frame"
	flagJSON        = "json"
	flagJoints      = "joints"
	flagAxes        = "axes"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		os.Stderr.WriteString("mocapview: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	var logger *zap.SugaredLogger

	return &cli.App{
		Name:  "mocapview",
		Usage: "render and inspect motion capture joint tables",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if l, ok := c.App.Metadata["logger"].(*zap.SugaredLogger); ok {
				logger = l
				return nil
			}
			l, err := logging.NewLogger("mocapview", c.Bool(flagDebug))
			if err != nil {
				return err
			}
			logger = l
			c.App.Metadata = map[string]interface{}{"logger": l}
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				_ = logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			renderCommand(),
			inspectCommand(),
			posesCommand(),
			plotCommand(),
		},
	}
}

func loggerFrom(c *cli.Context) *zap.SugaredLogger {
	if l, ok := c.App.Metadata["logger"].(*zap.SugaredLogger); ok {
		return l
	}
	return zap.NewNop().Sugar()
}
