package stats

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// DefaultBins is the number of histogram bins on the dashboard.
const DefaultBins = 30

// Histogram holds equal-width bin counts over [Min, Max]. The last bin is
// closed on the right.
type Histogram struct {
	Min    float64
	Max    float64
	Width  float64
	Counts []int
}

// Edges returns the len(Counts)+1 bin boundaries.
func (h Histogram) Edges() []float64 {
	edges := make([]float64, len(h.Counts)+1)
	for i := range edges {
		edges[i] = h.Min + float64(i)*h.Width
	}
	edges[len(edges)-1] = h.Max
	return edges
}

// Centers returns the midpoint of each bin.
func (h Histogram) Centers() []float64 {
	centers := make([]float64, len(h.Counts))
	for i := range centers {
		centers[i] = h.Min + (float64(i)+0.5)*h.Width
	}
	return centers
}

// Total returns the number of binned values.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// NewHistogram bins xs into bins equal-width bins spanning its range.
// If every value is equal the range is widened to [x-0.5, x+0.5].
// NaN values are ignored.
func NewHistogram(xs []float64, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}

	sample := stats.Sample{Xs: finite(xs)}
	if len(sample.Xs) == 0 {
		return Histogram{Counts: make([]int, bins)}, nil
	}

	lo, hi := sample.Bounds()
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	lh := stats.NewLinearHist(lo, hi, bins)
	for _, x := range sample.Xs {
		lh.Add(x)
	}
	_, counts, over := lh.Counts()

	h := Histogram{
		Min:    lo,
		Max:    hi,
		Width:  (hi - lo) / float64(bins),
		Counts: make([]int, bins),
	}
	for i, c := range counts {
		h.Counts[i] = int(c)
	}
	// The maximum lands in the overflow bucket.
	h.Counts[bins-1] += int(over)
	return h, nil
}

// Density evaluates a Gaussian kernel density estimate of xs at each point
// of at, with Scott's rule bandwidth. It returns ErrTooFewSamples for fewer
// than two finite values.
func Density(xs, at []float64) ([]float64, error) {
	sample := stats.Sample{Xs: finite(xs)}
	if len(sample.Xs) < 2 {
		return nil, fmt.Errorf("%w: density needs 2 values, got %d", ErrTooFewSamples, len(sample.Xs))
	}

	if sample.StdDev() == 0 {
		return nil, fmt.Errorf("%w: values have no spread", ErrTooFewSamples)
	}

	// A zero Bandwidth selects Scott's rule.
	kde := &stats.KDE{Sample: sample}

	out := make([]float64, len(at))
	for i, x := range at {
		out[i] = kde.PDF(x)
	}
	return out, nil
}
