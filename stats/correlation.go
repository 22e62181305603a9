package stats

import (
	"fmt"

	"github.com/hupe1980/bikestats/dataset"
	"gonum.org/v1/gonum/stat"
)

// Matrix is a symmetric correlation matrix.
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// At returns the coefficient between columns a and b, and false if either
// is unknown.
func (m Matrix) At(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, c := range m.Columns {
		if c == a {
			i = k
		}
		if c == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// Correlation computes the Pearson correlation between each pair of
// columns of t. Nil columns means every numeric column. A constant column
// correlates as NaN.
func Correlation(t *dataset.Table, columns []string) (Matrix, error) {
	if columns == nil {
		columns = t.Columns()
	}
	data := make([][]float64, len(columns))
	for i, c := range columns {
		if !t.Has(c) {
			return Matrix{}, &dataset.ErrMissingColumn{Column: c}
		}
		data[i] = t.Column(c)
	}
	if t.Len() < 2 {
		return Matrix{}, fmt.Errorf("%w: correlation needs 2 rows, got %d", ErrTooFewSamples, t.Len())
	}

	m := Matrix{Columns: append([]string(nil), columns...), Values: make([][]float64, len(columns))}
	for i := range columns {
		m.Values[i] = make([]float64, len(columns))
	}
	for i := range columns {
		m.Values[i][i] = stat.Correlation(data[i], data[i], nil)
		for j := i + 1; j < len(columns); j++ {
			r := stat.Correlation(data[i], data[j], nil)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// Fit is a least-squares line y = Alpha + Beta*x.
type Fit struct {
	N        int
	Alpha    float64
	Beta     float64
	RSquared float64
}

// Predict evaluates the line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Alpha + f.Beta*x
}

// LinearFit regresses ys on xs.
func LinearFit(xs, ys []float64) (Fit, error) {
	if len(xs) != len(ys) {
		return Fit{}, fmt.Errorf("%w: %d x, %d y", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return Fit{}, fmt.Errorf("%w: fit needs 2 points, got %d", ErrTooFewSamples, len(xs))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Fit{
		N:        len(xs),
		Alpha:    alpha,
		Beta:     beta,
		RSquared: stat.RSquared(xs, ys, nil, alpha, beta),
	}, nil
}
