package command

import (
	"github.com/hupe1980/bikestats/report"
	"github.com/urfave/cli/v2"
)

// clusterCmd prints only the k-means segmentation.
type clusterCmd struct {
	commonCmd
}

// ClusterCommand returns a [*cli.Command] printing the clustering section.
func ClusterCommand() *cli.Command {
	cmd := &clusterCmd{}
	return &cli.Command{
		Name:        "cluster",
		Usage:       "bikestats cluster --day data/day.csv --k 3 --seed 42",
		Description: "cluster segments the selected days with k-means on two columns, temp and cnt by default.",
		Flags:       cmd.flags(),
		Action:      cmd.action,
	}
}

func (cmd *clusterCmd) action(c *cli.Context) error {
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
	clustering, warnings, err := dash.Cluster(c.Context, data, f, cmd.cfg.Cluster.Spec())
	if err != nil {
		return err
	}

	rep := &report.Report{
		Filter:       f.String(),
		TotalRows:    data.Days.Len(),
		SelectedRows: sizeOf(clustering),
		Warnings:     append(append([]string(nil), data.Warnings...), warnings...),
		Clustering:   clustering,
	}
	defer cmd.printMetrics(c)
	return rep.Write(c.App.Writer, format)
}

func sizeOf(c *report.Clustering) int {
	n := 0
	for _, cl := range c.Clusters {
		n += cl.Size
	}
	return n
}
