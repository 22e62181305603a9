package stats

import (
	"errors"
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"github.com/hupe1980/bikestats/dataset"
)

var (
	// ErrLengthMismatch is returned when paired inputs differ in length.
	ErrLengthMismatch = errors.New("stats: length mismatch")
	// ErrTooFewSamples is returned when an estimate needs more data.
	ErrTooFewSamples = errors.New("stats: too few samples")
	// ErrInvalidBins is returned for a non-positive bin count.
	ErrInvalidBins = errors.New("stats: bin count must be positive")
)

// Summary describes one numeric column.
//
// Std is the sample standard deviation. Quartiles interpolate linearly
// between order statistics (Hyndman-Fan R7, the pandas default). With no values every statistic is NaN; with a single value
// Std is NaN.
type Summary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe summarizes xs. NaN values are ignored.
func Describe(name string, xs []float64) Summary {
	sample := stats.Sample{Xs: finite(xs)}
	n := len(sample.Xs)

	s := Summary{Name: name, Count: n}
	if n == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sample.Sort()
	s.Mean = sample.Mean()
	s.Std = math.NaN()
	if n > 1 {
		s.Std = sample.StdDev()
	}
	s.Min, s.Max = sample.Bounds()
	s.Q25 = quantile(sample, 0.25)
	s.Q50 = quantile(sample, 0.5)
	s.Q75 = quantile(sample, 0.75)
	return s
}

// quantile returns the R7 q-quantile of a sorted sample. go-moremath's
// Sample.Quantile implements R8 only.
func quantile(sample stats.Sample, q float64) float64 {
	n := len(sample.Xs)
	if n == 1 || q <= 0 || q >= 1 {
		return sample.Quantile(q)
	}
	h := q * float64(n-1)
	lo := int(h)
	if lo+1 >= n {
		return sample.Xs[n-1]
	}
	return sample.Xs[lo] + (h-float64(lo))*(sample.Xs[lo+1]-sample.Xs[lo])
}

// DescribeTable summarizes every numeric column of t in column order.
func DescribeTable(t *dataset.Table) []Summary {
	cols := t.Columns()
	out := make([]Summary, 0, len(cols))
	for _, c := range cols {
		out = append(out, Describe(c, t.Column(c)))
	}
	return out
}

// finite returns a copy of xs without NaN values.
func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return slices.Clip(out)
}
