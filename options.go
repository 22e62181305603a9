package bikestats

import (
	"log/slog"

	"github.com/hupe1980/bikestats/blobstore"
	"github.com/hupe1980/bikestats/internal/resource"
	"github.com/hupe1980/bikestats/stats"
)

// ResourceConfig limits how datasets are fetched.
type ResourceConfig = resource.Config

type options struct {
	hourStore        blobstore.BlobStore
	metricsCollector MetricsCollector
	logger           *Logger
	resources        ResourceConfig
	histogramBins    int
	histogramColumn  string
	assignments      bool
}

// Option configures a Dashboard.
type Option func(*options)

// WithHourStore reads the hourly file from a different store than the
// daily one. By default both come from the store passed to New.
func WithHourStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.hourStore = store
	}
}

// WithResourceLimits bounds memory, concurrency and read throughput while
// loading. The zero value tracks memory only and loads both files at once.
//
// Example:
//
//	dash := bikestats.New(store, bikestats.WithResourceLimits(bikestats.ResourceConfig{
//	    MemoryLimitBytes:   64 << 20,
//	    IOLimitBytesPerSec: 4 << 20,
//	}))
func WithResourceLimits(cfg ResourceConfig) Option {
	return func(o *options) {
		o.resources = cfg
	}
}

// WithHistogramBins sets the number of bins of the distribution section.
// Values <= 0 select stats.DefaultBins.
func WithHistogramBins(bins int) Option {
	return func(o *options) {
		if bins <= 0 {
			bins = stats.DefaultBins
		}
		o.histogramBins = bins
	}
}

// WithHistogramColumn sets the column of the distribution section (cnt by default).
func WithHistogramColumn(column string) Option {
	return func(o *options) {
		o.histogramColumn = column
	}
}

// WithAssignments includes the per-row cluster assignments in reports.
func WithAssignments(enabled bool) Option {
	return func(o *options) {
		o.assignments = enabled
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &bikestats.BasicMetricsCollector{}
//	dash := bikestats.New(store, bikestats.WithMetricsCollector(metrics))
//	// ... use dash ...
//	stats := metrics.GetStats()
//	fmt.Printf("Loads: %d, Avg latency: %dns\n", stats.LoadCount, stats.LoadAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := bikestats.NewJSONLogger(slog.LevelInfo)
//	dash := bikestats.New(store, bikestats.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		histogramBins:    stats.DefaultBins,
		histogramColumn:  "cnt",
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
