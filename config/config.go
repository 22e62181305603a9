// Package config reads bikestats settings from a TOML file.
//
//	[data]
//	day  = "s3://my-bucket/bike-sharing/day.csv.zst"
//	hour = "s3://my-bucket/bike-sharing/hour.csv.zst"
//
//	[filter]
//	start   = "2011-03-01"
//	end     = "2011-09-30"
//	seasons = [2, 3]
//
//	[cluster]
//	k    = 3
//	seed = 42
//
//	[cache]
//	dir       = "/var/cache/bikestats"
//	max_bytes = 67108864
//
// Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hupe1980/bikestats"
	"github.com/hupe1980/bikestats/cache"
	"github.com/hupe1980/bikestats/dataset"
	"github.com/hupe1980/bikestats/filter"
	"github.com/hupe1980/bikestats/report"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the file layout.
type Config struct {
	Data    Data    `toml:"data"`
	Filter  Filter  `toml:"filter"`
	Cluster Cluster `toml:"cluster"`
	Output  Output  `toml:"output"`
	Limits  Limits  `toml:"limits"`
	Cache   Cache   `toml:"cache"`
}

// Data locates the input files. Values are paths or URIs
// (file://, s3://, minio://, http(s)://).
type Data struct {
	Day  string `toml:"day"`
	Hour string `toml:"hour"`
}

// Filter mirrors filter.Filter with dates as YYYY-MM-DD strings.
type Filter struct {
	Start    string   `toml:"start"`
	End      string   `toml:"end"`
	Seasons  []int    `toml:"seasons"`
	TempMin  *float64 `toml:"temp_min"`
	TempMax  *float64 `toml:"temp_max"`
	CountMin *float64 `toml:"count_min"`
	CountMax *float64 `toml:"count_max"`
}

// Cluster mirrors bikestats.ClusterSpec.
type Cluster struct {
	K             int     `toml:"k"`
	MaxIterations int     `toml:"max_iterations"`
	Tolerance     float64 `toml:"tolerance"`
	Seed          uint64  `toml:"seed"`
	X             string  `toml:"x"`
	Y             string  `toml:"y"`
	Assignments   bool    `toml:"assignments"`
}

// Output controls rendering and logging.
type Output struct {
	Format    string `toml:"format"`
	Bins      int    `toml:"bins"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Limits mirrors bikestats.ResourceConfig.
type Limits struct {
	MemoryLimitBytes   int64 `toml:"memory_limit_bytes"`
	MaxConcurrentLoads int64 `toml:"max_concurrent_loads"`
	IOLimitBytesPerSec int64 `toml:"io_limit_bytes_per_sec"`
}

// Cache configures the on-disk block cache for remote tables. An empty Dir
// disables it. Local files are never cached.
type Cache struct {
	Dir       string `toml:"dir"`
	MaxBytes  int64  `toml:"max_bytes"`
	BlockSize int64  `toml:"block_size"`
}

// Enabled reports whether a cache directory is set.
func (c Cache) Enabled() bool {
	return c.Dir != ""
}

// DefaultCacheMaxBytes bounds the disk cache when max_bytes is unset.
const DefaultCacheMaxBytes = 256 << 20

// DiskConfig returns the cache settings for cache.NewDiskBlockCache.
func (c Cache) DiskConfig() cache.DiskCacheConfig {
	maxBytes := c.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultCacheMaxBytes
	}
	return cache.DiskCacheConfig{RootDir: c.Dir, MaxSizeBytes: maxBytes}
}

// Default returns the dashboard defaults.
func Default() Config {
	spec := bikestats.DefaultClusterSpec()
	return Config{
		Cluster: Cluster{K: spec.K, X: spec.XColumn, Y: spec.YColumn},
		Output:  Output{Format: string(report.FormatText), LogLevel: "warn", LogFormat: "text"},
	}
}

// Load reads path on top of Default.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Decode reads r on top of Default.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(names, ", "))
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := c.Filter.Build(); err != nil {
		return fmt.Errorf("%w: filter: %w", ErrInvalidConfig, err)
	}
	if c.Cluster.K < 1 {
		return fmt.Errorf("%w: cluster.k must be positive, got %d", ErrInvalidConfig, c.Cluster.K)
	}
	if c.Cluster.MaxIterations < 0 || c.Cluster.Tolerance < 0 {
		return fmt.Errorf("%w: cluster.max_iterations and cluster.tolerance must not be negative", ErrInvalidConfig)
	}
	if c.Cluster.X == c.Cluster.Y {
		return fmt.Errorf("%w: cluster.x and cluster.y are both %q", ErrInvalidConfig, c.Cluster.X)
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := ParseLevel(c.Output.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Output.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Output.LogFormat)
	}
	if c.Output.Bins < 0 {
		return fmt.Errorf("%w: output.bins must not be negative", ErrInvalidConfig)
	}
	if c.Limits.MemoryLimitBytes < 0 || c.Limits.MaxConcurrentLoads < 0 || c.Limits.IOLimitBytesPerSec < 0 {
		return fmt.Errorf("%w: limits must not be negative", ErrInvalidConfig)
	}
	if c.Cache.MaxBytes < 0 || c.Cache.BlockSize < 0 {
		return fmt.Errorf("%w: cache sizes must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Build converts f into a filter.Filter and validates it.
func (f Filter) Build() (filter.Filter, error) {
	out := filter.Filter{
		Seasons:  f.Seasons,
		TempMin:  f.TempMin,
		TempMax:  f.TempMax,
		CountMin: f.CountMin,
		CountMax: f.CountMax,
	}
	var err error
	if out.Start, err = parseDate(f.Start); err != nil {
		return filter.Filter{}, fmt.Errorf("start: %w", err)
	}
	if out.End, err = parseDate(f.End); err != nil {
		return filter.Filter{}, fmt.Errorf("end: %w", err)
	}
	if err := out.Validate(); err != nil {
		return filter.Filter{}, err
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dataset.DateLayout, s)
}

// Spec returns the clustering parameters.
func (c Cluster) Spec() bikestats.ClusterSpec {
	return bikestats.ClusterSpec{
		K:             c.K,
		MaxIterations: c.MaxIterations,
		Tolerance:     c.Tolerance,
		Seed:          c.Seed,
		XColumn:       c.X,
		YColumn:       c.Y,
	}
}

// Resources returns the load limits.
func (l Limits) Resources() bikestats.ResourceConfig {
	return bikestats.ResourceConfig{
		MemoryLimitBytes:   l.MemoryLimitBytes,
		MaxConcurrentLoads: l.MaxConcurrentLoads,
		IOLimitBytesPerSec: l.IOLimitBytesPerSec,
	}
}

// ParseLevel maps debug, info, warn and error to slog levels.
// An empty string means warn.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// Logger builds the configured logger writing to w.
func (o Output) Logger(w io.Writer) (*bikestats.Logger, error) {
	level, err := ParseLevel(o.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if o.LogFormat == "json" {
		return bikestats.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return bikestats.NewLogger(slog.NewTextHandler(w, opts)), nil
}
