package core

import (
	"fmt"
	"math"
)

// Point is an ordered pair of real numbers.
// In the dashboard X is the normalized temperature and Y the rental count.
type Point struct {
	X float64
	Y float64
}

// IsFinite reports whether neither coordinate is NaN or an infinity.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
