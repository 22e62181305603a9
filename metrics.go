package bikestats

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after each dataset load (day and hour together).
	// rows is the number of rows decoded, bytes the bytes read from the store.
	RecordLoad(rows int, bytes int64, duration time.Duration, err error)

	// RecordFilter is called after a filter is applied.
	RecordFilter(selected, total int, duration time.Duration)

	// RecordCluster is called after each k-means run.
	RecordCluster(k, iterations int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, int64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordFilter(int, int, time.Duration)         {}
func (NoopMetricsCollector) RecordCluster(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount         atomic.Int64
	LoadErrors        atomic.Int64
	LoadRows          atomic.Int64
	LoadBytes         atomic.Int64
	LoadTotalNanos    atomic.Int64
	FilterCount       atomic.Int64
	FilterSelected    atomic.Int64
	FilterTotalNanos  atomic.Int64
	ClusterCount      atomic.Int64
	ClusterErrors     atomic.Int64
	ClusterIterations atomic.Int64
	ClusterTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(rows int, bytes int64, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadRows.Add(int64(rows))
	b.LoadBytes.Add(bytes)
}

// RecordFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFilter(selected, _ int, duration time.Duration) {
	b.FilterCount.Add(1)
	b.FilterSelected.Add(int64(selected))
	b.FilterTotalNanos.Add(duration.Nanoseconds())
}

// RecordCluster implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCluster(_, iterations int, duration time.Duration, err error) {
	b.ClusterCount.Add(1)
	b.ClusterTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ClusterErrors.Add(1)
		return
	}
	b.ClusterIterations.Add(int64(iterations))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:         b.LoadCount.Load(),
		LoadErrors:        b.LoadErrors.Load(),
		LoadRows:          b.LoadRows.Load(),
		LoadBytes:         b.LoadBytes.Load(),
		LoadAvgNanos:      avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		FilterCount:       b.FilterCount.Load(),
		FilterSelected:    b.FilterSelected.Load(),
		FilterAvgNanos:    avg(b.FilterTotalNanos.Load(), b.FilterCount.Load()),
		ClusterCount:      b.ClusterCount.Load(),
		ClusterErrors:     b.ClusterErrors.Load(),
		ClusterIterations: b.ClusterIterations.Load(),
		ClusterAvgNanos:   avg(b.ClusterTotalNanos.Load(), b.ClusterCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount         int64
	LoadErrors        int64
	LoadRows          int64
	LoadBytes         int64
	LoadAvgNanos      int64
	FilterCount       int64
	FilterSelected    int64
	FilterAvgNanos    int64
	ClusterCount      int64
	ClusterErrors     int64
	ClusterIterations int64
	ClusterAvgNanos   int64
}
