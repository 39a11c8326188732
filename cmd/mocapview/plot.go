package main

import (
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot/vg"

	"mocap-viewer/internal/trajectory"
)

func plotCommand() *cli.Command {
	return &cli.Command{
		Name:      "plot",
		Usage:     "plot joint coordinates over frames",
		ArgsUsage: "[CSV]",
		Flags: []cli.Flag{
			inputFlag(),
			&cli.StringFlag{Name: flagOutput, Aliases: []string{"o"}, Value: "trajectory.png", Usage: "output `FILE` (.png, .svg, .pdf)"},
			&cli.StringSliceFlag{Name: flagJoints, Aliases: []string{"j"}, Usage: "joints to plot (default: first joint)"},
			&cli.StringSliceFlag{Name: flagAxes, Usage: "axes to plot (default: x, y, z)"},
		},
		Action: func(c *cli.Context) error {
			logger := loggerFrom(c)
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			tab, err := loadTable(cfg)
			if err != nil {
				return err
			}
			joints := c.StringSlice(flagJoints)
			if len(joints) == 0 {
				joints = tab.Joints()[:1]
			}
			out := c.String(flagOutput)
			if err := trajectory.Save(out, tab, joints, c.StringSlice(flagAxes), 8*vg.Inch, 4*vg.Inch); err != nil {
				return err
			}
			logger.Infow("plot written", "path", out, "joints", joints)
			return nil
		},
	}
}
