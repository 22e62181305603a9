package kmeans

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bikestats/core"
)

// ErrInvalidArgument is returned for malformed input: an empty point set,
// k outside [1, n], a non-positive iteration cap, a bad tolerance or
// non-finite coordinates.
var ErrInvalidArgument = errors.New("kmeans: invalid argument")

// NonFiniteError reports a point with a NaN or infinite coordinate.
//
// It satisfies errors.Is(err, ErrInvalidArgument).
type NonFiniteError struct {
	// Index is the position of the offending point in its input slice.
	Index int
	Point core.Point
	// Initial is true when the point came from WithInitialCentroids.
	Initial bool
}

func (e *NonFiniteError) Error() string {
	if e.Initial {
		return fmt.Sprintf("kmeans: initial centroid %d %v is not finite", e.Index, e.Point)
	}
	return fmt.Sprintf("kmeans: point %d %v is not finite", e.Index, e.Point)
}

func (e *NonFiniteError) Unwrap() error { return ErrInvalidArgument }

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
