package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"mocap-viewer/internal/report"
)

func posesCommand() *cli.Command {
	return &cli.Command{
		Name:      "poses",
		Usage:     "print bone centers, lengths and HPR angles for one frame",
		ArgsUsage: "[CSV]",
		Flags: []cli.Flag{
			inputFlag(),
			&cli.IntFlag{Name: flagFrame, Aliases: []string{"f"}, Usage: "frame index"},
			&cli.BoolFlag{Name: flagJSON, Usage: "print JSON instead of a table"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			tab, err := loadTable(cfg)
			if err != nil {
				return err
			}
			poses, err := report.FramePoses(tab, bones(cfg), c.Int(flagFrame))
			if err != nil {
				return err
			}

			if c.Bool(flagJSON) {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(poses)
			}
			fmt.Fprintln(c.App.Writer, report.PoseTable(poses))
			return nil
		},
	}
}
