package kmeans

import (
	"log/slog"
	"math/rand/v2"

	"github.com/hupe1980/bikestats/core"
)

// DefaultMaxIterations is the iteration cap used when WithMaxIterations is not set.
const DefaultMaxIterations = 100

// Source is the random source used to sample the initial centroids.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Perm returns a pseudo-random permutation of [0, n).
	Perm(n int) []int
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) Perm(n int) []int { return rand.Perm(n) }

type options struct {
	maxIterations int
	tolerance     float64
	source        Source
	initial       []core.Point
	logger        *slog.Logger
	onEmpty       func(EmptyClusterEvent)
}

// Option configures a Cluster call.
type Option func(*options)

// WithMaxIterations caps the number of assignment/update rounds.
// Values below 1 are rejected by Cluster with ErrInvalidArgument.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance sets the largest per-coordinate centroid movement that still
// counts as converged. The default of 0 requires exact equality.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithRand sets the random source used for initial centroid sampling.
// If nil is passed, the global math/rand/v2 generator is used.
func WithRand(src Source) Option {
	return func(o *options) {
		if src == nil {
			src = globalSource{}
		}
		o.source = src
	}
}

// WithSeed is a convenience wrapper for WithRand with a PCG generator seeded
// from seed. Two calls with the same seed and input produce identical results.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.source = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithInitialCentroids bypasses random sampling and starts from the given
// centroids. The slice must hold exactly k finite points; it is copied.
func WithInitialCentroids(centroids []core.Point) Option {
	return func(o *options) {
		o.initial = append([]core.Point(nil), centroids...)
	}
}

// WithLogger configures debug logging of iterations and empty clusters.
// Pass nil to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEmptyClusterHook registers fn to be called every time a cluster
// receives no points and retains its previous centroid.
func WithEmptyClusterHook(fn func(EmptyClusterEvent)) Option {
	return func(o *options) {
		o.onEmpty = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxIterations: DefaultMaxIterations,
		source:        globalSource{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}
