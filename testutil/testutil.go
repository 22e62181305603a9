package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/bikestats/core"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Perm returns a pseudo-random permutation of [0,n).
// It lets an RNG serve as a kmeans.Source.
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// UniformPoints generates num points uniformly inside the rectangle [lo, hi).
func (r *RNG) UniformPoints(num int, lo, hi core.Point) []core.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]core.Point, num)
	for i := range pts {
		pts[i] = core.Point{
			X: lo.X + r.rand.Float64()*(hi.X-lo.X),
			Y: lo.Y + r.rand.Float64()*(hi.Y-lo.Y),
		}
	}
	return pts
}

// GaussianBlobs generates perCenter points around each center with the
// given standard deviation. It returns the points and, for each point,
// the index of the center it was drawn from. Points are interleaved
// (center 0, 1, ..., 0, 1, ...).
func (r *RNG) GaussianBlobs(centers []core.Point, perCenter int, spread float64) ([]core.Point, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]core.Point, 0, len(centers)*perCenter)
	labels := make([]int, 0, len(centers)*perCenter)
	for range perCenter {
		for c, center := range centers {
			pts = append(pts, core.Point{
				X: center.X + r.rand.NormFloat64()*spread,
				Y: center.Y + r.rand.NormFloat64()*spread,
			})
			labels = append(labels, c)
		}
	}
	return pts, labels
}
