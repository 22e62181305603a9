// Package command implements the bikestats subcommands.
package command

import (
	"io"

	"github.com/urfave/cli/v2"
)

// NewApp returns the bikestats application writing output to stdout and
// logs to stderr.
func NewApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:        "bikestats",
		Usage:       "bike-sharing rental statistics",
		Description: "bikestats loads the daily and hourly rental tables and reports data quality, descriptive statistics, distributions, correlations and a k-means segmentation of the selected days.",
		Writer:      stdout,
		ErrWriter:   stderr,
		Commands: []*cli.Command{
			ReportCommand(),
			ClusterCommand(),
			ExportCommand(),
		},
	}
}
