package distance

import (
	"math"

	"github.com/hupe1980/bikestats/core"
)

// SquaredEuclidean calculates the squared Euclidean distance between two points.
func SquaredEuclidean(a, b core.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Euclidean calculates the Euclidean distance between two points.
func Euclidean(a, b core.Point) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// Nearest returns the index of the centroid closest to p and its distance.
// Ties are resolved in favour of the lowest index, including distances that
// overflow to +Inf. It returns -1 and +Inf when centroids is empty.
func Nearest(p core.Point, centroids []core.Point) (int, float64) {
	if len(centroids) == 0 {
		return -1, math.Inf(1)
	}

	// Squared distance preserves the ordering of Euclidean distance.
	best := 0
	bestDist := SquaredEuclidean(p, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := SquaredEuclidean(p, centroids[j]); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best, math.Sqrt(bestDist)
}
