package bikestats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/bikestats/blobstore"
	"github.com/hupe1980/bikestats/core"
	"github.com/hupe1980/bikestats/dataset"
	"github.com/hupe1980/bikestats/filter"
	"github.com/hupe1980/bikestats/internal/resource"
	"github.com/hupe1980/bikestats/kmeans"
	"github.com/hupe1980/bikestats/report"
	"github.com/hupe1980/bikestats/stats"
)

// ClusterSpec selects the columns and parameters of the k-means segmentation.
type ClusterSpec struct {
	// K is the number of clusters. It is clamped to the number of selected rows.
	K int
	// MaxIterations caps the assignment/update rounds. 0 uses the kmeans default.
	MaxIterations int
	// Tolerance is the per-coordinate convergence threshold. 0 means exact equality.
	Tolerance float64
	// Seed makes runs reproducible. 0 uses a time-seeded source.
	Seed uint64
	// XColumn and YColumn name the table columns forming each point.
	XColumn string
	YColumn string
}

// DefaultClusterSpec segments days by temperature and rental count.
func DefaultClusterSpec() ClusterSpec {
	return ClusterSpec{
		K:       3,
		XColumn: dataset.ColTemp,
		YColumn: dataset.ColCount,
	}
}

// Validate checks s against the columns of t.
func (s ClusterSpec) Validate(t *dataset.Table) error {
	if s.K < 1 {
		return fmt.Errorf("%w: k must be positive, got %d", ErrInvalidClusterSpec, s.K)
	}
	if s.MaxIterations < 0 || s.Tolerance < 0 {
		return fmt.Errorf("%w: negative iteration cap or tolerance", ErrInvalidClusterSpec)
	}
	for _, c := range []string{s.XColumn, s.YColumn} {
		if !t.Has(c) {
			return fmt.Errorf("%w: %w", ErrInvalidClusterSpec, &ErrMissingColumn{Column: c})
		}
	}
	return nil
}

func (s ClusterSpec) kmeansOptions(logger *Logger) []kmeans.Option {
	opts := []kmeans.Option{kmeans.WithLogger(logger.Logger)}
	if s.MaxIterations > 0 {
		opts = append(opts, kmeans.WithMaxIterations(s.MaxIterations))
	}
	if s.Tolerance > 0 {
		opts = append(opts, kmeans.WithTolerance(s.Tolerance))
	}
	if s.Seed != 0 {
		opts = append(opts, kmeans.WithSeed(s.Seed))
	}
	return opts
}

// Data is a loaded day table, an optional hour table and the filter index
// over the days. It is immutable and safe for concurrent Analyze calls.
type Data struct {
	*dataset.Bundle

	Days  *dataset.Table
	Hours *dataset.Table

	index *filter.Index
}

// Seasons returns the season codes present in the day table.
func (d *Data) Seasons() []int {
	return d.index.Seasons()
}

// DateRange returns the first and last date of the day table.
func (d *Data) DateRange() (first, last time.Time) {
	for i, t := range d.Days.Dates() {
		if i == 0 || t.Before(first) {
			first = t
		}
		if i == 0 || t.After(last) {
			last = t
		}
	}
	return first, last
}

// Dashboard loads the bike-sharing tables and builds reports from them.
type Dashboard struct {
	store  blobstore.BlobStore
	loader *dataset.Loader
	opts   options
}

// New creates a dashboard reading from store.
func New(store blobstore.BlobStore, optFns ...Option) *Dashboard {
	o := applyOptions(optFns)
	if o.hourStore == nil {
		o.hourStore = store
	}
	return &Dashboard{
		store:  store,
		loader: dataset.NewLoader(resource.NewController(o.resources), o.logger.Logger),
		opts:   o,
	}
}

// Load reads the day file and, unless hourName is empty, the hour file.
// A missing hour file is reported in Data.Warnings.
func (d *Dashboard) Load(ctx context.Context, dayName, hourName string) (*Data, error) {
	start := time.Now()

	b, err := d.loader.Load(ctx,
		dataset.Source{Store: d.store, Name: dayName},
		dataset.Source{Store: d.opts.hourStore, Name: hourName},
	)
	if err != nil {
		d.opts.logger.LogLoad(ctx, dayName, 0, err)
		d.opts.metricsCollector.RecordLoad(0, 0, time.Since(start), err)
		return nil, err
	}

	data := &Data{
		Bundle: b,
		Days:   dataset.NewDayTable(b.Days),
		Hours:  dataset.NewHourTable(b.Hours),
	}
	data.index, err = filter.NewIndex(data.Days)
	if err != nil {
		d.opts.logger.LogLoad(ctx, dayName, 0, err)
		d.opts.metricsCollector.RecordLoad(0, b.Bytes, time.Since(start), err)
		return nil, err
	}

	rows := len(b.Days) + len(b.Hours)
	d.opts.logger.LogLoad(ctx, dayName, len(b.Days), nil)
	if b.HasHours() {
		d.opts.logger.LogLoad(ctx, hourName, len(b.Hours), nil)
	}
	d.opts.metricsCollector.RecordLoad(rows, b.Bytes, time.Since(start), nil)
	return data, nil
}

// Select applies f to the day table and returns the selected rows.
func (d *Dashboard) Select(ctx context.Context, data *Data, f filter.Filter) (*dataset.Table, []core.RowID, error) {
	start := time.Now()

	bm, err := data.index.Apply(f)
	if err != nil {
		d.opts.logger.LogFilter(ctx, f.String(), 0, data.Days.Len(), err)
		return nil, nil, err
	}
	rows := filter.Rows(bm)

	selected, err := data.Days.Subset(rows)
	if err != nil {
		d.opts.logger.LogFilter(ctx, f.String(), 0, data.Days.Len(), err)
		return nil, nil, err
	}

	d.opts.logger.LogFilter(ctx, f.String(), len(rows), data.Days.Len(), nil)
	d.opts.metricsCollector.RecordFilter(len(rows), data.Days.Len(), time.Since(start))
	return selected, rows, nil
}

// Cluster runs the k-means segmentation on the rows selected by f.
// It returns ErrNoRows if f selects nothing.
func (d *Dashboard) Cluster(ctx context.Context, data *Data, f filter.Filter, spec ClusterSpec) (*report.Clustering, []string, error) {
	if err := spec.Validate(data.Days); err != nil {
		return nil, nil, err
	}
	selected, _, err := d.Select(ctx, data, f)
	if err != nil {
		return nil, nil, err
	}
	if selected.Len() == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoRows, f)
	}
	return d.cluster(ctx, selected, spec)
}

func (d *Dashboard) cluster(ctx context.Context, t *dataset.Table, spec ClusterSpec) (*report.Clustering, []string, error) {
	var warnings []string

	points, err := t.Points(spec.XColumn, spec.YColumn, nil)
	if err != nil {
		return nil, nil, translateError(spec, err)
	}

	k := spec.K
	if k > len(points) {
		warnings = append(warnings, fmt.Sprintf("k=%d exceeds the %d selected rows; using k=%d", k, len(points), len(points)))
		k = len(points)
	}

	start := time.Now()
	res, err := kmeans.Cluster(points, k, spec.kmeansOptions(d.opts.logger)...)
	d.opts.metricsCollector.RecordCluster(k, iterations(res), time.Since(start), err)
	if err != nil {
		d.opts.logger.LogCluster(ctx, k, 0, false, err)
		return nil, nil, translateError(spec, err)
	}
	d.opts.logger.LogCluster(ctx, k, res.Iterations, res.Converged, nil)

	if !res.Converged {
		warnings = append(warnings, fmt.Sprintf("k-means stopped after %d iterations without converging", res.Iterations))
	}

	c := report.NewClustering(spec.XColumn, spec.YColumn, res)
	if !d.opts.assignments {
		c.Assignments = nil
	}
	return c, warnings, nil
}

func iterations(res *kmeans.Result) int {
	if res == nil {
		return 0
	}
	return res.Iterations
}

// Analyze builds the full report for the rows selected by f. When f
// selects nothing the report holds only the data-quality and overall
// sections plus a warning.
func (d *Dashboard) Analyze(ctx context.Context, data *Data, f filter.Filter, spec ClusterSpec) (*report.Report, error) {
	if err := spec.Validate(data.Days); err != nil {
		return nil, err
	}
	selected, _, err := d.Select(ctx, data, f)
	if err != nil {
		return nil, err
	}

	rep := &report.Report{
		Filter:       f.String(),
		TotalRows:    data.Days.Len(),
		SelectedRows: selected.Len(),
		Warnings:     append([]string(nil), data.Warnings...),
		Overall:      report.NewSummaries(stats.DescribeTable(data.Days)),
	}

	rep.Quality = append(rep.Quality, report.NewQuality("day", data.DayQuality, data.DroppedDays))
	if data.HasHours() {
		rep.Quality = append(rep.Quality, report.NewQuality("hour", data.HourQuality, data.DroppedHours))
	}

	if selected.Len() == 0 {
		rep.Warnings = append(rep.Warnings, ErrNoRows.Error())
		return rep, nil
	}

	rep.Selected = report.NewSummaries(stats.DescribeTable(selected))

	if err := d.distribution(rep, selected); err != nil {
		return nil, err
	}

	if err := groups(rep, selected); err != nil {
		return nil, err
	}

	if data.HasHours() {
		hourly, err := stats.GroupSum(stats.Keys(data.Hours.Column(dataset.ColHour)), data.Hours.Column(dataset.ColCount))
		if err != nil {
			return nil, err
		}
		rep.Hourly = report.NewGroups(hourly, nil)
	}

	if selected.Len() >= 2 {
		m, err := stats.Correlation(selected, nil)
		if err != nil {
			return nil, err
		}
		rep.Correlation = report.NewCorrelation(m)

		fit, err := stats.LinearFit(selected.Column(spec.XColumn), selected.Column(spec.YColumn))
		if err != nil {
			return nil, translateError(spec, err)
		}
		rep.Fit = report.NewFit(spec.XColumn, spec.YColumn, fit)
	} else {
		rep.Warnings = append(rep.Warnings, "correlation and linear fit need at least 2 rows")
	}

	c, warnings, err := d.cluster(ctx, selected, spec)
	if err != nil {
		return nil, err
	}
	rep.Clustering = c
	rep.Warnings = append(rep.Warnings, warnings...)

	return rep, nil
}

func (d *Dashboard) distribution(rep *report.Report, t *dataset.Table) error {
	col := d.opts.histogramColumn
	if !t.Has(col) {
		return &ErrMissingColumn{Column: col}
	}

	h, err := stats.NewHistogram(t.Column(col), d.opts.histogramBins)
	if err != nil {
		return err
	}

	density, err := stats.Density(t.Column(col), h.Centers())
	if err != nil {
		if !errors.Is(err, stats.ErrTooFewSamples) {
			return err
		}
		density = nil
	}
	rep.Histogram = report.NewHistogram(col, h, density)
	return nil
}

func groups(rep *report.Report, t *dataset.Table) error {
	cnt := t.Column(dataset.ColCount)

	bySeason, err := stats.GroupMean(stats.Keys(t.Column(dataset.ColSeason)), cnt)
	if err != nil {
		return err
	}
	rep.BySeason = report.NewGroups(bySeason, dataset.SeasonName)

	byWeather, err := stats.GroupMean(stats.Keys(t.Column(dataset.ColWeather)), cnt)
	if err != nil {
		return err
	}
	rep.ByWeather = report.NewGroups(byWeather, dataset.WeatherName)
	return nil
}
