package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"mocap-viewer/internal/report"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "list joints, frame count and per-joint ranges",
		ArgsUsage: "[CSV]",
		Flags:     []cli.Flag{inputFlag()},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			tab, err := loadTable(cfg)
			if err != nil {
				return err
			}
			out, err := report.JointTable(tab)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, out)
			return nil
		},
	}
}
