package command

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bikestats"
	"github.com/hupe1980/bikestats/cache"
	"github.com/hupe1980/bikestats/config"
	"github.com/urfave/cli/v2"
)

// flag names
const (
	configFlagName      = "config"
	dayFlagName         = "day"
	hourFlagName        = "hour"
	startFlagName       = "start"
	endFlagName         = "end"
	seasonFlagName      = "season"
	tempMinFlagName     = "temp-min"
	tempMaxFlagName     = "temp-max"
	countMinFlagName    = "count-min"
	countMaxFlagName    = "count-max"
	kFlagName           = "k"
	seedFlagName        = "seed"
	maxIterFlagName     = "max-iter"
	toleranceFlagName   = "tolerance"
	xFlagName           = "x"
	yFlagName           = "y"
	assignmentsFlagName = "assignments"
	binsFlagName        = "bins"
	formatFlagName      = "format"
	logLevelFlagName    = "log-level"
	logFormatFlagName   = "log-format"
	memoryLimitFlagName = "memory-limit"
	ioLimitFlagName     = "io-limit"
	metricsFlagName     = "metrics"
	cacheDirFlagName    = "cache-dir"
	cacheSizeFlagName   = "cache-size"
)

var errNoDay = errors.New("no day table: set --day or [data] day")

// commonCmd resolves the settings shared by report and cluster.
type commonCmd struct {
	cfg     config.Config
	metrics *bikestats.BasicMetricsCollector
	cache   *cache.DiskBlockCache
}

func (cmd *commonCmd) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: configFlagName, Usage: "TOML settings file; flags override its values"},
		&cli.StringFlag{Name: dayFlagName, Usage: "daily table: path or file://, s3://, minio://, http(s):// URI"},
		&cli.StringFlag{Name: hourFlagName, Usage: "optional hourly table"},
		&cli.StringFlag{Name: startFlagName, Usage: "first date to keep (YYYY-MM-DD)"},
		&cli.StringFlag{Name: endFlagName, Usage: "last date to keep (YYYY-MM-DD)"},
		&cli.IntSliceFlag{Name: seasonFlagName, Usage: "season codes to keep (1 winter, 2 spring, 3 summer, 4 fall); repeatable"},
		&cli.Float64Flag{Name: tempMinFlagName, Usage: "minimum normalized temperature"},
		&cli.Float64Flag{Name: tempMaxFlagName, Usage: "maximum normalized temperature"},
		&cli.Float64Flag{Name: countMinFlagName, Usage: "minimum daily rentals"},
		&cli.Float64Flag{Name: countMaxFlagName, Usage: "maximum daily rentals"},
		&cli.IntFlag{Name: kFlagName, Usage: "number of clusters (default 3)"},
		&cli.Uint64Flag{Name: seedFlagName, Usage: "random seed for reproducible clustering (0 = random)"},
		&cli.IntFlag{Name: maxIterFlagName, Usage: "k-means iteration cap (default 100)"},
		&cli.Float64Flag{Name: toleranceFlagName, Usage: "k-means convergence tolerance per coordinate"},
		&cli.StringFlag{Name: xFlagName, Usage: "column clustered on the x axis (default temp)"},
		&cli.StringFlag{Name: yFlagName, Usage: "column clustered on the y axis (default cnt)"},
		&cli.BoolFlag{Name: assignmentsFlagName, Usage: "include per-row cluster assignments"},
		&cli.IntFlag{Name: binsFlagName, Usage: "histogram bins (default 30)"},
		&cli.StringFlag{Name: formatFlagName, Usage: "output format: text or json"},
		&cli.StringFlag{Name: logLevelFlagName, Usage: "log level: debug, info, warn or error"},
		&cli.StringFlag{Name: logFormatFlagName, Usage: "log format: text or json"},
		&cli.Int64Flag{Name: memoryLimitFlagName, Usage: "maximum bytes of dataset files held at once"},
		&cli.Int64Flag{Name: ioLimitFlagName, Usage: "read throughput limit in bytes per second"},
		&cli.BoolFlag{Name: metricsFlagName, Usage: "print load, filter and clustering metrics to stderr"},
		&cli.StringFlag{Name: cacheDirFlagName, Usage: "directory caching remote tables between runs"},
		&cli.Int64Flag{Name: cacheSizeFlagName, Usage: "maximum bytes kept in the cache directory (default 256 MiB)"},
	}
}

// resolve loads the config file, if any, and applies the flags set on c.
func (cmd *commonCmd) resolve(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String(configFlagName); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	setString(c, dayFlagName, &cfg.Data.Day)
	setString(c, hourFlagName, &cfg.Data.Hour)
	setString(c, startFlagName, &cfg.Filter.Start)
	setString(c, endFlagName, &cfg.Filter.End)
	if c.IsSet(seasonFlagName) {
		cfg.Filter.Seasons = c.IntSlice(seasonFlagName)
	}
	setBound(c, tempMinFlagName, &cfg.Filter.TempMin)
	setBound(c, tempMaxFlagName, &cfg.Filter.TempMax)
	setBound(c, countMinFlagName, &cfg.Filter.CountMin)
	setBound(c, countMaxFlagName, &cfg.Filter.CountMax)

	if c.IsSet(kFlagName) {
		cfg.Cluster.K = c.Int(kFlagName)
	}
	if c.IsSet(seedFlagName) {
		cfg.Cluster.Seed = c.Uint64(seedFlagName)
	}
	if c.IsSet(maxIterFlagName) {
		cfg.Cluster.MaxIterations = c.Int(maxIterFlagName)
	}
	if c.IsSet(toleranceFlagName) {
		cfg.Cluster.Tolerance = c.Float64(toleranceFlagName)
	}
	setString(c, xFlagName, &cfg.Cluster.X)
	setString(c, yFlagName, &cfg.Cluster.Y)
	if c.IsSet(assignmentsFlagName) {
		cfg.Cluster.Assignments = c.Bool(assignmentsFlagName)
	}

	if c.IsSet(binsFlagName) {
		cfg.Output.Bins = c.Int(binsFlagName)
	}
	setString(c, formatFlagName, &cfg.Output.Format)
	setString(c, logLevelFlagName, &cfg.Output.LogLevel)
	setString(c, logFormatFlagName, &cfg.Output.LogFormat)

	if c.IsSet(memoryLimitFlagName) {
		cfg.Limits.MemoryLimitBytes = c.Int64(memoryLimitFlagName)
	}
	if c.IsSet(ioLimitFlagName) {
		cfg.Limits.IOLimitBytesPerSec = c.Int64(ioLimitFlagName)
	}

	setString(c, cacheDirFlagName, &cfg.Cache.Dir)
	if c.IsSet(cacheSizeFlagName) {
		cfg.Cache.MaxBytes = c.Int64(cacheSizeFlagName)
	}

	if cfg.Data.Day == "" {
		return errNoDay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cmd.cfg = cfg
	return nil
}

func setString(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}

func setBound(c *cli.Context, name string, dst **float64) {
	if c.IsSet(name) {
		v := c.Float64(name)
		*dst = &v
	}
}

// load opens the configured stores and loads the tables.
func (cmd *commonCmd) load(c *cli.Context) (*bikestats.Dashboard, *bikestats.Data, error) {
	logger, err := cmd.cfg.Output.Logger(c.App.ErrWriter)
	if err != nil {
		return nil, nil, err
	}

	opts := []bikestats.Option{
		bikestats.WithLogger(logger),
		bikestats.WithResourceLimits(cmd.cfg.Limits.Resources()),
		bikestats.WithHistogramBins(cmd.cfg.Output.Bins),
		bikestats.WithAssignments(cmd.cfg.Cluster.Assignments),
	}
	if c.Bool(metricsFlagName) {
		cmd.metrics = &bikestats.BasicMetricsCollector{}
		opts = append(opts, bikestats.WithMetricsCollector(cmd.metrics))
	}

	src, err := openSources(c.Context, cmd.cfg.Data.Day, cmd.cfg.Data.Hour)
	if err != nil {
		return nil, nil, err
	}
	if cmd.cfg.Cache.Enabled() {
		if cmd.cache, err = cache.NewDiskBlockCache(cmd.cfg.Cache.DiskConfig()); err != nil {
			return nil, nil, err
		}
		src.withCache(cmd.cache, cmd.cfg.Cache.BlockSize)
	}
	if src.hourStore != nil {
		opts = append(opts, bikestats.WithHourStore(src.hourStore))
	}

	dash := bikestats.New(src.dayStore, opts...)
	data, err := dash.Load(c.Context, src.day.Name, src.hour.Name)
	if err != nil {
		return nil, nil, err
	}
	return dash, data, nil
}

// close flushes the block cache, if any.
func (cmd *commonCmd) close() error {
	if cmd.cache == nil {
		return nil
	}
	return cmd.cache.Close()
}

func (cmd *commonCmd) printMetrics(c *cli.Context) {
	if cmd.metrics == nil {
		return
	}
	s := cmd.metrics.GetStats()
	fmt.Fprintf(c.App.ErrWriter, "metrics: loads=%d rows=%d bytes=%d load_avg=%dns filters=%d selected=%d clusters=%d iterations=%d cluster_avg=%dns\n",
		s.LoadCount, s.LoadRows, s.LoadBytes, s.LoadAvgNanos,
		s.FilterCount, s.FilterSelected,
		s.ClusterCount, s.ClusterIterations, s.ClusterAvgNanos)
}
