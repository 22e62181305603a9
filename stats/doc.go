// Package stats computes the descriptive statistics shown on the dashboard:
// column summaries, histograms with a kernel density estimate, grouped
// means and sums, a correlation matrix and a least-squares line.
//
// Summaries and densities use github.com/aclements/go-moremath/stats;
// correlation and regression use gonum.org/v1/gonum/stat.
package stats
