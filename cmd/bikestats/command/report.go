package command

import (
	"github.com/hupe1980/bikestats/report"
	"github.com/urfave/cli/v2"
)

// reportCmd prints the full dashboard report.
type reportCmd struct {
	commonCmd
}

// ReportCommand returns a [*cli.Command] printing every report section.
func ReportCommand() *cli.Command {
	cmd := &reportCmd{}
	return &cli.Command{
		Name:        "report",
		Usage:       "bikestats report --day data/day.csv [--hour data/hour.csv] [filters]",
		Description: "report prints data quality, descriptive statistics, the rental distribution, group means, hourly totals, correlations, the temperature fit and the k-means clusters of the selected days.",
		Flags:       cmd.flags(),
		Action:      cmd.action,
	}
}

func (cmd *reportCmd) action(c *cli.Context) error {
	if err := cmd.resolve(c); err != nil {
		return err
	}
	format, err := report.ParseFormat(cmd.cfg.Output.Format)
	if err != nil {
		return err
	}
	f, err := cmd.cfg.Filter.Build()
	if err != nil {
		return err
	}

	dash, data, err := cmd.load(c)
	defer cmd.close()
	if err != nil {
		return err
	}
	rep, err := dash.Analyze(c.Context, data, f, cmd.cfg.Cluster.Spec())
	if err != nil {
		return err
	}
	defer cmd.printMetrics(c)
	return rep.Write(c.App.Writer, format)
}
