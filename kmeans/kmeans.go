package kmeans

import (
	"context"
	"log/slog"
	"math"

	"github.com/hupe1980/bikestats/core"
	"github.com/hupe1980/bikestats/distance"
)

// Result is the final state of a clustering run.
type Result struct {
	// Centroids holds exactly k centroids, indexed by cluster id.
	Centroids []core.Point
	// Assignments maps each input point (by index) to a cluster id in [0, k).
	Assignments []int
	// Iterations is the number of assignment/update rounds that ran.
	Iterations int
	// Converged is false when the run stopped at the iteration cap.
	Converged bool
	// EmptyClusters lists every round in which a cluster received no points.
	EmptyClusters []EmptyClusterEvent
}

// Sizes returns the number of points assigned to each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.Centroids))
	for _, c := range r.Assignments {
		sizes[c]++
	}
	return sizes
}

// Members returns the input indexes assigned to cluster c, in input order.
func (r *Result) Members(c int) []int {
	var idx []int
	for i, a := range r.Assignments {
		if a == c {
			idx = append(idx, i)
		}
	}
	return idx
}

// EmptyClusterEvent records a cluster that received no points in a round.
// Its centroid was left unchanged.
type EmptyClusterEvent struct {
	Iteration int
	Cluster   int
	Centroid  core.Point
}

// Cluster partitions points into k clusters.
//
// It fails with ErrInvalidArgument when points is empty, k is outside
// [1, len(points)], any coordinate is not finite, or an option is invalid.
// Cluster has no side effects and is safe for concurrent use with
// independent inputs.
func Cluster(points []core.Point, k int, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)

	if err := validate(points, k, &o); err != nil {
		return nil, err
	}

	n := len(points)
	centroids := o.initial
	if centroids == nil {
		centroids = sampleCentroids(points, k, o.source)
	}

	assignments := make([]int, n)
	counts := make([]int, k)
	means := make([]core.Point, k)
	res := &Result{}

	for iter := 1; iter <= o.maxIterations; iter++ {
		res.Iterations = iter

		// Assignment step
		for i, p := range points {
			assignments[i], _ = distance.Nearest(p, centroids)
		}

		// Update step. Running means stay finite for finite points where
		// plain sums can overflow.
		clear(means)
		clear(counts)
		for i, p := range points {
			c := assignments[i]
			counts[c]++
			cnt := float64(counts[c])
			means[c].X += p.X/cnt - means[c].X/cnt
			means[c].Y += p.Y/cnt - means[c].Y/cnt
		}

		moved := false
		for j := range centroids {
			if counts[j] == 0 {
				ev := retainPreviousCentroid(iter, j, centroids)
				res.EmptyClusters = append(res.EmptyClusters, ev)
				o.logger.LogAttrs(context.Background(), slog.LevelDebug, "empty cluster retained previous centroid",
					slog.Int("iteration", ev.Iteration),
					slog.Int("cluster", ev.Cluster),
					slog.String("centroid", ev.Centroid.String()),
				)
				if o.onEmpty != nil {
					o.onEmpty(ev)
				}
				continue
			}

			next := means[j]
			if !withinTolerance(centroids[j], next, o.tolerance) {
				moved = true
			}
			centroids[j] = next
		}

		o.logger.LogAttrs(context.Background(), slog.LevelDebug, "kmeans iteration",
			slog.Int("iteration", iter),
			slog.Bool("moved", moved),
		)

		if !moved {
			res.Converged = true
			break
		}
	}

	res.Centroids = centroids
	res.Assignments = assignments
	return res, nil
}

// retainPreviousCentroid is the empty-cluster policy: a cluster with no
// points keeps the centroid it had before the round.
func retainPreviousCentroid(iter, cluster int, centroids []core.Point) EmptyClusterEvent {
	return EmptyClusterEvent{
		Iteration: iter,
		Cluster:   cluster,
		Centroid:  centroids[cluster],
	}
}

// sampleCentroids picks k distinct input points uniformly without replacement.
func sampleCentroids(points []core.Point, k int, src Source) []core.Point {
	perm := src.Perm(len(points))
	centroids := make([]core.Point, k)
	for i := range k {
		centroids[i] = points[perm[i]]
	}
	return centroids
}

func withinTolerance(prev, next core.Point, tol float64) bool {
	return math.Abs(prev.X-next.X) <= tol && math.Abs(prev.Y-next.Y) <= tol
}

func validate(points []core.Point, k int, o *options) error {
	n := len(points)
	if n == 0 {
		return invalidArgf("empty point set")
	}
	if k < 1 || k > n {
		return invalidArgf("k must be in [1, %d], got %d", n, k)
	}
	if o.maxIterations < 1 {
		return invalidArgf("max iterations must be positive, got %d", o.maxIterations)
	}
	if o.tolerance < 0 || math.IsNaN(o.tolerance) || math.IsInf(o.tolerance, 0) {
		return invalidArgf("tolerance must be finite and non-negative, got %g", o.tolerance)
	}
	for i, p := range points {
		if !p.IsFinite() {
			return &NonFiniteError{Index: i, Point: p}
		}
	}
	if o.initial != nil {
		if len(o.initial) != k {
			return invalidArgf("got %d initial centroids for k=%d", len(o.initial), k)
		}
		for i, c := range o.initial {
			if !c.IsFinite() {
				return &NonFiniteError{Index: i, Point: c, Initial: true}
			}
		}
	}
	if o.source == nil {
		o.source = globalSource{}
	}
	return nil
}
