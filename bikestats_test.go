package bikestats

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/hupe1980/bikestats/blobstore"
	"github.com/hupe1980/bikestats/codec"
	"github.com/hupe1980/bikestats/dataset"
	"github.com/hupe1980/bikestats/filter"
	"github.com/hupe1980/bikestats/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, days, hourDays int) *blobstore.MemoryStore {
	t.Helper()
	ctx := context.Background()
	rng := testutil.NewRNG(7)
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "day.csv", []byte(rng.DayCSV(days))))
	if hourDays > 0 {
		hours, err := codec.Compress(codec.Gzip, []byte(rng.HourCSV(hourDays)))
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, "hour.csv.gz", hours))
	}
	return store
}

func TestDashboard_Load(t *testing.T) {
	ctx := context.Background()
	dash := New(newTestStore(t, 60, 2))

	data, err := dash.Load(ctx, "day.csv", "hour.csv.gz")
	require.NoError(t, err)

	assert.Equal(t, 60, data.Days.Len())
	assert.Equal(t, 48, data.Hours.Len())
	assert.Equal(t, []int{dataset.Winter, dataset.Spring}, data.Seasons())

	first, last := data.DateRange()
	assert.Equal(t, testutil.FirstDay, first)
	assert.Equal(t, testutil.FirstDay.AddDate(0, 0, 59), last)
}

func TestDashboard_LoadErrors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 10, 0)
	require.NoError(t, store.Put(ctx, "empty.csv", nil))
	dash := New(store)

	t.Run("MissingDay", func(t *testing.T) {
		_, err := dash.Load(ctx, "nope.csv", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("EmptyDay", func(t *testing.T) {
		_, err := dash.Load(ctx, "empty.csv", "")
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("MissingHourIsWarning", func(t *testing.T) {
		data, err := dash.Load(ctx, "day.csv", "hour.csv")
		require.NoError(t, err)
		assert.False(t, data.HasHours())
		require.Len(t, data.Warnings, 1)
		assert.Contains(t, data.Warnings[0], "hourly data unavailable")
	})
}

func TestDashboard_Analyze(t *testing.T) {
	ctx := context.Background()
	metrics := &BasicMetricsCollector{}
	dash := New(newTestStore(t, 60, 2), WithMetricsCollector(metrics))

	data, err := dash.Load(ctx, "day.csv", "hour.csv.gz")
	require.NoError(t, err)

	spec := DefaultClusterSpec()
	spec.Seed = 1

	rep, err := dash.Analyze(ctx, data, filter.Filter{}, spec)
	require.NoError(t, err)

	assert.Equal(t, "all rows", rep.Filter)
	assert.Equal(t, 60, rep.TotalRows)
	assert.Equal(t, 60, rep.SelectedRows)
	assert.Empty(t, rep.Warnings)

	require.Len(t, rep.Quality, 2)
	assert.Equal(t, "day", rep.Quality[0].Table)
	assert.Equal(t, "hour", rep.Quality[1].Table)

	assert.Len(t, rep.Overall, len(data.Days.Columns()))
	assert.Len(t, rep.Selected, len(data.Days.Columns()))

	require.NotNil(t, rep.Histogram)
	assert.Equal(t, dataset.ColCount, rep.Histogram.Column)
	assert.Len(t, rep.Histogram.Counts, 30)
	assert.Len(t, rep.Histogram.Density, 30)

	require.Len(t, rep.BySeason, 2)
	assert.Equal(t, "winter", rep.BySeason[0].Label)
	assert.Equal(t, 59, rep.BySeason[0].Count)
	assert.NotEmpty(t, rep.ByWeather)

	require.Len(t, rep.Hourly, 24)
	assert.Greater(t, float64(rep.Hourly[8].Sum), float64(rep.Hourly[3].Sum))

	require.NotNil(t, rep.Correlation)
	require.NotNil(t, rep.Fit)
	assert.Positive(t, float64(rep.Fit.Beta))
	assert.Greater(t, float64(rep.Fit.RSquared), 0.5)

	require.NotNil(t, rep.Clustering)
	assert.Equal(t, 3, rep.Clustering.K)
	assert.Len(t, rep.Clustering.Clusters, 3)
	assert.Nil(t, rep.Clustering.Assignments)
	total := 0
	for _, c := range rep.Clustering.Clusters {
		total += c.Size
	}
	assert.Equal(t, 60, total)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Equal(t, int64(108), stats.LoadRows)
	assert.Equal(t, int64(1), stats.FilterCount)
	assert.Equal(t, int64(1), stats.ClusterCount)
	assert.Zero(t, stats.ClusterErrors)

	// The report is JSON encodable even with NaN statistics.
	_, err = json.Marshal(rep)
	require.NoError(t, err)
}

func TestDashboard_AnalyzeSingleRow(t *testing.T) {
	ctx := context.Background()
	dash := New(newTestStore(t, 60, 0))

	data, err := dash.Load(ctx, "day.csv", "")
	require.NoError(t, err)

	// Only 2011-03-01 falls in spring.
	rep, err := dash.Analyze(ctx, data, filter.Filter{Seasons: []int{dataset.Spring}}, DefaultClusterSpec())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.SelectedRows)
	assert.Nil(t, rep.Correlation)
	assert.Nil(t, rep.Fit)
	assert.Nil(t, rep.Hourly)
	require.NotNil(t, rep.Histogram)
	assert.Nil(t, rep.Histogram.Density)

	require.NotNil(t, rep.Clustering)
	assert.Equal(t, 1, rep.Clustering.K)
	assert.True(t, rep.Clustering.Converged)
	assert.Len(t, rep.Warnings, 2)
}

func TestDashboard_AnalyzeNoRows(t *testing.T) {
	ctx := context.Background()
	dash := New(newTestStore(t, 20, 0))

	data, err := dash.Load(ctx, "day.csv", "")
	require.NoError(t, err)

	rep, err := dash.Analyze(ctx, data, filter.Filter{Seasons: []int{dataset.Fall}}, DefaultClusterSpec())
	require.NoError(t, err)
	assert.Zero(t, rep.SelectedRows)
	assert.NotEmpty(t, rep.Overall)
	assert.Nil(t, rep.Selected)
	assert.Nil(t, rep.Clustering)
	assert.Contains(t, rep.Warnings, ErrNoRows.Error())

	_, _, err = dash.Cluster(ctx, data, filter.Filter{Seasons: []int{dataset.Fall}}, DefaultClusterSpec())
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestDashboard_InvalidInput(t *testing.T) {
	ctx := context.Background()
	dash := New(newTestStore(t, 20, 0))

	data, err := dash.Load(ctx, "day.csv", "")
	require.NoError(t, err)

	t.Run("InvalidRange", func(t *testing.T) {
		f := filter.Filter{Start: testutil.FirstDay.AddDate(0, 0, 5), End: testutil.FirstDay}
		_, err := dash.Analyze(ctx, data, f, DefaultClusterSpec())
		assert.ErrorIs(t, err, filter.ErrInvalidRange)
	})

	t.Run("ZeroK", func(t *testing.T) {
		spec := DefaultClusterSpec()
		spec.K = 0
		_, err := dash.Analyze(ctx, data, filter.Filter{}, spec)
		assert.ErrorIs(t, err, ErrInvalidClusterSpec)
	})

	t.Run("UnknownColumn", func(t *testing.T) {
		spec := DefaultClusterSpec()
		spec.YColumn = "sales"
		_, _, err := dash.Cluster(ctx, data, filter.Filter{}, spec)
		require.ErrorIs(t, err, ErrInvalidClusterSpec)

		var mc *ErrMissingColumn
		require.ErrorAs(t, err, &mc)
		assert.Equal(t, "sales", mc.Column)
	})
}

func TestDashboard_ClusterDeterministic(t *testing.T) {
	ctx := context.Background()
	dash := New(newTestStore(t, 90, 0), WithAssignments(true))

	data, err := dash.Load(ctx, "day.csv", "")
	require.NoError(t, err)

	spec := DefaultClusterSpec()
	spec.Seed = 42

	f := filter.Filter{Start: testutil.FirstDay.AddDate(0, 0, 10)}
	a, _, err := dash.Cluster(ctx, data, f, spec)
	require.NoError(t, err)
	b, _, err := dash.Cluster(ctx, data, f, spec)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a.Assignments, 80)
}

func TestDashboard_HourStore(t *testing.T) {
	ctx := context.Background()
	days := newTestStore(t, 10, 0)
	hours := newTestStore(t, 1, 1)

	dash := New(days, WithHourStore(hours))
	data, err := dash.Load(ctx, "day.csv", "hour.csv.gz")
	require.NoError(t, err)
	assert.Equal(t, 10, data.Days.Len())
	assert.Equal(t, 24, data.Hours.Len())
}

func TestDashboard_Logging(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dash := New(newTestStore(t, 30, 0), WithLogger(logger))
	data, err := dash.Load(ctx, "day.csv", "")
	require.NoError(t, err)

	spec := DefaultClusterSpec()
	spec.Seed = 3
	_, _, err = dash.Cluster(ctx, data, filter.Filter{}, spec)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"load completed"`)
	assert.Contains(t, out, `"msg":"filter applied"`)
	assert.Contains(t, out, `"source":"day.csv"`)
}

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	m.RecordLoad(10, 100, 2*time.Millisecond, nil)
	m.RecordLoad(0, 0, 4*time.Millisecond, ErrNotFound)
	m.RecordCluster(3, 7, time.Millisecond, nil)

	s := m.GetStats()
	assert.Equal(t, int64(2), s.LoadCount)
	assert.Equal(t, int64(1), s.LoadErrors)
	assert.Equal(t, int64(10), s.LoadRows)
	assert.Equal(t, int64(100), s.LoadBytes)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), s.LoadAvgNanos)
	assert.Equal(t, int64(7), s.ClusterIterations)
	assert.Zero(t, s.FilterAvgNanos)
}
