package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/hupe1980/bikestats/dataset"
	"github.com/hupe1980/bikestats/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	s := Describe("cnt", []float64{5, 1, 4, 2, 3, math.NaN()})

	assert.Equal(t, "cnt", s.Name)
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 3.0, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), s.Std, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 3.0, s.Q50, 1e-12)
	assert.True(t, s.Min <= s.Q25 && s.Q25 <= s.Q50)
	assert.True(t, s.Q50 <= s.Q75 && s.Q75 <= s.Max)
}

func TestDescribe_Quartiles(t *testing.T) {
	// Linear interpolation between order statistics, as pandas describe().
	tests := []struct {
		name          string
		xs            []float64
		q25, q50, q75 float64
	}{
		{"Four", []float64{4, 1, 3, 2}, 1.75, 2.5, 3.25},
		{"Five", []float64{5, 1, 4, 2, 3}, 2, 3, 4},
		{"Two", []float64{985, 801}, 847, 893, 939},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Describe("cnt", tt.xs)
			assert.InDelta(t, tt.q25, s.Q25, 1e-12)
			assert.InDelta(t, tt.q50, s.Q50, 1e-12)
			assert.InDelta(t, tt.q75, s.Q75, 1e-12)
		})
	}
}

func TestDescribe_Degenerate(t *testing.T) {
	empty := Describe("x", nil)
	assert.Zero(t, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.True(t, math.IsNaN(empty.Max))

	one := Describe("x", []float64{7})
	assert.Equal(t, 1, one.Count)
	assert.Equal(t, 7.0, one.Mean)
	assert.True(t, math.IsNaN(one.Std))
	assert.Equal(t, 7.0, one.Q25)
}

func TestDescribe_DoesNotReorderInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	Describe("x", xs)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestNewHistogram(t *testing.T) {
	h, err := NewHistogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5)
	require.NoError(t, err)

	assert.Equal(t, 0.0, h.Min)
	assert.Equal(t, 10.0, h.Max)
	assert.InDelta(t, 2.0, h.Width, 1e-12)
	assert.Equal(t, []int{2, 2, 2, 2, 3}, h.Counts)
	assert.Equal(t, 11, h.Total())
	assert.Equal(t, []float64{1, 3, 5, 7, 9}, h.Centers())
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, h.Edges())
}

func TestNewHistogram_Edges(t *testing.T) {
	_, err := NewHistogram([]float64{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidBins)

	h, err := NewHistogram(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, h.Counts)

	h, err = NewHistogram([]float64{4, 4, 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.5, h.Min)
	assert.Equal(t, 4.5, h.Max)
	assert.Equal(t, 3, h.Total())
}

func TestDensity(t *testing.T) {
	rng := testutil.NewRNG(3)
	xs := make([]float64, 500)
	for i := range xs {
		xs[i] = rng.Float64()*2 - 1
	}

	at := []float64{-3, 0, 3}
	d, err := Density(xs, at)
	require.NoError(t, err)
	require.Len(t, d, 3)
	assert.Greater(t, d[1], d[0])
	assert.Greater(t, d[1], d[2])
	for _, v := range d {
		assert.GreaterOrEqual(t, v, 0.0)
	}

	_, err = Density([]float64{1}, at)
	assert.ErrorIs(t, err, ErrTooFewSamples)
	_, err = Density([]float64{2, 2, 2}, at)
	assert.ErrorIs(t, err, ErrTooFewSamples)
}

func TestGroupMean(t *testing.T) {
	groups, err := GroupMean([]int{3, 1, 3, 1, 2}, []float64{10, 1, 20, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, []Group{
		{Key: 1, Count: 2, Sum: 4, Mean: 2},
		{Key: 2, Count: 1, Sum: 5, Mean: 5},
		{Key: 3, Count: 2, Sum: 30, Mean: 15},
	}, groups)

	_, err = GroupMean([]int{1}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestGroupSum_Hourly(t *testing.T) {
	hours, err := dataset.ReadHours(strings.NewReader(testutil.NewRNG(5).HourCSV(4)))
	require.NoError(t, err)
	tbl := dataset.NewHourTable(hours)

	groups, err := GroupSum(Keys(tbl.Column(dataset.ColHour)), tbl.Column(dataset.ColCount))
	require.NoError(t, err)
	require.Len(t, groups, 24)

	peak := groups[0]
	for _, g := range groups {
		assert.Equal(t, 4, g.Count)
		if g.Sum > peak.Sum {
			peak = g
		}
	}
	assert.Contains(t, []int{8, 17}, peak.Key)
}

func TestCorrelation(t *testing.T) {
	days, err := dataset.ReadDays(strings.NewReader(testutil.NewRNG(11).DayCSV(200)))
	require.NoError(t, err)
	tbl := dataset.NewDayTable(days)

	m, err := Correlation(tbl, []string{dataset.ColTemp, dataset.ColCount, dataset.ColHoliday})
	require.NoError(t, err)
	require.Len(t, m.Values, 3)

	r, ok := m.At(dataset.ColTemp, dataset.ColCount)
	require.True(t, ok)
	assert.Greater(t, r, 0.9)

	self, _ := m.At(dataset.ColCount, dataset.ColCount)
	assert.InDelta(t, 1.0, self, 1e-9)

	back, _ := m.At(dataset.ColCount, dataset.ColTemp)
	assert.Equal(t, r, back)

	// holiday is constant in the synthetic data.
	h, _ := m.At(dataset.ColHoliday, dataset.ColTemp)
	assert.True(t, math.IsNaN(h))

	_, ok = m.At("nope", dataset.ColTemp)
	assert.False(t, ok)

	_, err = Correlation(tbl, []string{"nope"})
	var mc *dataset.ErrMissingColumn
	assert.ErrorAs(t, err, &mc)

	all, err := Correlation(tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns(), all.Columns)
}

func TestLinearFit(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 3, 5, 7, 9}

	fit, err := LinearFit(xs, ys)
	require.NoError(t, err)
	assert.Equal(t, 5, fit.N)
	assert.InDelta(t, 1.0, fit.Alpha, 1e-9)
	assert.InDelta(t, 2.0, fit.Beta, 1e-9)
	assert.InDelta(t, 1.0, fit.RSquared, 1e-9)
	assert.InDelta(t, 21.0, fit.Predict(10), 1e-9)

	_, err = LinearFit(xs, ys[:2])
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = LinearFit(xs[:1], ys[:1])
	assert.ErrorIs(t, err, ErrTooFewSamples)
}
