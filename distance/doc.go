// Package distance provides Euclidean distance calculations on core.Point.
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	idx, d := distance.Nearest(p, centroids)
package distance
