// Package core holds the small value types shared by every other package:
// row identifiers and two-dimensional points.
package core
