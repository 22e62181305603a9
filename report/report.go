package report

import (
	"github.com/hupe1980/bikestats/dataset"
	"github.com/hupe1980/bikestats/kmeans"
	"github.com/hupe1980/bikestats/stats"
)

// Report is the full dashboard output. Nil sections were not computed.
type Report struct {
	Filter       string   `json:"filter"`
	TotalRows    int      `json:"total_rows"`
	SelectedRows int      `json:"selected_rows"`
	Warnings     []string `json:"warnings,omitempty"`

	Quality     []Quality    `json:"quality,omitempty"`
	Overall     []Summary    `json:"overall,omitempty"`
	Selected    []Summary    `json:"selected,omitempty"`
	Histogram   *Histogram   `json:"histogram,omitempty"`
	BySeason    []Group      `json:"by_season,omitempty"`
	ByWeather   []Group      `json:"by_weather,omitempty"`
	Hourly      []Group      `json:"hourly,omitempty"`
	Correlation *Correlation `json:"correlation,omitempty"`
	Fit         *Fit         `json:"fit,omitempty"`
	Clustering  *Clustering  `json:"clustering,omitempty"`
}

// ClusteringOnly returns a copy of r reduced to its header and clustering section.
func (r *Report) ClusteringOnly() *Report {
	return &Report{
		Filter:       r.Filter,
		TotalRows:    r.TotalRows,
		SelectedRows: r.SelectedRows,
		Warnings:     r.Warnings,
		Clustering:   r.Clustering,
	}
}

// Quality is the data-quality check of one table.
type Quality struct {
	Table      string         `json:"table"`
	Rows       int            `json:"rows"`
	Missing    map[string]int `json:"missing"`
	Duplicates int            `json:"duplicates"`
	Dropped    int            `json:"dropped"`
}

// NewQuality converts a dataset quality check.
func NewQuality(table string, q dataset.Quality, dropped int) Quality {
	return Quality{
		Table:      table,
		Rows:       q.Rows,
		Missing:    q.Missing,
		Duplicates: q.Duplicates,
		Dropped:    dropped,
	}
}

// Summary describes one column.
type Summary struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Mean   Number `json:"mean"`
	Std    Number `json:"std"`
	Min    Number `json:"min"`
	Q25    Number `json:"q25"`
	Q50    Number `json:"q50"`
	Q75    Number `json:"q75"`
	Max    Number `json:"max"`
}

// NewSummaries converts column summaries.
func NewSummaries(in []stats.Summary) []Summary {
	out := make([]Summary, len(in))
	for i, s := range in {
		out[i] = Summary{
			Column: s.Name,
			Count:  s.Count,
			Mean:   Number(s.Mean),
			Std:    Number(s.Std),
			Min:    Number(s.Min),
			Q25:    Number(s.Q25),
			Q50:    Number(s.Q50),
			Q75:    Number(s.Q75),
			Max:    Number(s.Max),
		}
	}
	return out
}

// Histogram is the distribution of one column with its density at each
// bin center.
type Histogram struct {
	Column  string   `json:"column"`
	Edges   []Number `json:"edges"`
	Counts  []int    `json:"counts"`
	Density []Number `json:"density,omitempty"`
}

// NewHistogram converts a histogram; density may be nil.
func NewHistogram(column string, h stats.Histogram, density []float64) *Histogram {
	out := &Histogram{
		Column: column,
		Edges:  numbers(h.Edges()),
		Counts: h.Counts,
	}
	if density != nil {
		out.Density = numbers(density)
	}
	return out
}

// Group is an aggregate over rows sharing a categorical key.
type Group struct {
	Key   int    `json:"key"`
	Label string `json:"label,omitempty"`
	Count int    `json:"count"`
	Sum   Number `json:"sum"`
	Mean  Number `json:"mean"`
}

// NewGroups converts groups, labelling keys with label if non-nil.
func NewGroups(in []stats.Group, label func(int) string) []Group {
	out := make([]Group, len(in))
	for i, g := range in {
		out[i] = Group{Key: g.Key, Count: g.Count, Sum: Number(g.Sum), Mean: Number(g.Mean)}
		if label != nil {
			out[i].Label = label(g.Key)
		}
	}
	return out
}

// Correlation is a Pearson correlation matrix.
type Correlation struct {
	Columns []string   `json:"columns"`
	Values  [][]Number `json:"values"`
}

// NewCorrelation converts a correlation matrix.
func NewCorrelation(m stats.Matrix) *Correlation {
	out := &Correlation{Columns: m.Columns, Values: make([][]Number, len(m.Values))}
	for i, row := range m.Values {
		out.Values[i] = numbers(row)
	}
	return out
}

// Fit is a least-squares line Y = Alpha + Beta*X.
type Fit struct {
	X        string `json:"x"`
	Y        string `json:"y"`
	N        int    `json:"n"`
	Alpha    Number `json:"alpha"`
	Beta     Number `json:"beta"`
	RSquared Number `json:"r_squared"`
}

// NewFit converts a regression result.
func NewFit(x, y string, f stats.Fit) *Fit {
	return &Fit{X: x, Y: y, N: f.N, Alpha: Number(f.Alpha), Beta: Number(f.Beta), RSquared: Number(f.RSquared)}
}

// Point is a centroid position.
type Point struct {
	X Number `json:"x"`
	Y Number `json:"y"`
}

// Cluster is one k-means cluster.
type Cluster struct {
	Index    int   `json:"index"`
	Centroid Point `json:"centroid"`
	Size     int   `json:"size"`
}

// Clustering is the k-means segmentation of the selected rows.
type Clustering struct {
	X             string    `json:"x"`
	Y             string    `json:"y"`
	K             int       `json:"k"`
	Iterations    int       `json:"iterations"`
	Converged     bool      `json:"converged"`
	EmptyClusters int       `json:"empty_cluster_events"`
	Clusters      []Cluster `json:"clusters"`
	Assignments   []int     `json:"assignments,omitempty"`
}

// NewClustering converts a k-means result.
func NewClustering(x, y string, res *kmeans.Result) *Clustering {
	sizes := res.Sizes()
	out := &Clustering{
		X:             x,
		Y:             y,
		K:             len(res.Centroids),
		Iterations:    res.Iterations,
		Converged:     res.Converged,
		EmptyClusters: len(res.EmptyClusters),
		Clusters:      make([]Cluster, len(res.Centroids)),
		Assignments:   res.Assignments,
	}
	for i, c := range res.Centroids {
		out.Clusters[i] = Cluster{Index: i, Centroid: Point{X: Number(c.X), Y: Number(c.Y)}, Size: sizes[i]}
	}
	return out
}
