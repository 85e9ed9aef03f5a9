// Package cli contains the rotationtool command line.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	rutils "go.viam.com/rotationtool/utils"
)

const (
	// Flags.
	generalFlagConfig = "config"
	generalFlagState  = "state"
	generalFlagDebug  = "debug"

	convertFlagFrom    = "from"
	convertFlagDegrees = "degrees"
	convertFlagJSON    = "json"
)

// NewApp returns the rotationtool application writing regular output to out and logs, warnings
// and errors to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "rotationtool",
		Usage:           "convert rotations between quaternion, angle-axis and rotation matrix form",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				EnvVars: []string{rutils.ConfigEnvVar},
				Usage:   "load configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:    generalFlagState,
				EnvVars: []string{rutils.StateEnvVar},
				Usage:   "persist the edited rotation in `FILE` instead of the configured state file",
			},
			&cli.BoolFlag{
				Name:  generalFlagDebug,
				Usage: "enable debug logging",
			},
		},
		Action: EditAction,
		Commands: []*cli.Command{
			{
				Name:   "edit",
				Usage:  "edit the saved rotation in an interactive form",
				Action: EditAction,
			},
			{
				Name:  "convert",
				Usage: "convert one rotation and print all three representations",
				UsageText: "rotationtool convert --from quaternion -- W X Y Z\n" +
					"rotationtool convert --from angle-axis [--degrees] -- ANGLE X Y Z\n" +
					"rotationtool convert --from rotation-matrix -- R11 R21 R31 R12 R22 R32 R13 R23 R33",
				ArgsUsage: "VALUES...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     convertFlagFrom,
						Aliases:  []string{"f"},
						Required: true,
						Usage:    "representation of the input: quaternion, angle-axis or rotation-matrix",
					},
					&cli.BoolFlag{
						Name:  convertFlagDegrees,
						Usage: "read the angle-axis angle in degrees",
					},
					&cli.BoolFlag{
						Name:  convertFlagJSON,
						Usage: "print the result as a JSON record",
					},
				},
				Action: ConvertAction,
			},
			{
				Name:            "state",
				Usage:           "work with the saved rotation",
				HideHelpCommand: true,
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "print the saved rotation",
						Action: StateShowAction,
					},
					{
						Name:   "reset",
						Usage:  "reset the saved rotation to identity",
						Action: StateResetAction,
					},
				},
			},
		},
	}
}
