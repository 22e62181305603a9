package filter

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/hupe1980/bikestats/dataset"
)

// ErrInvalidRange is returned for a filter whose lower bound exceeds its
// upper bound, or that names an unknown season.
var ErrInvalidRange = errors.New("filter: invalid range")

// Filter constrains the rows of a table. The zero value selects every row.
type Filter struct {
	// Start and End bound dteday inclusively. Zero means unbounded.
	Start, End time.Time
	// Seasons lists the season codes to keep. Empty means all seasons.
	Seasons []int
	// TempMin and TempMax bound the normalized temperature. Nil means unbounded.
	TempMin, TempMax *float64
	// CountMin and CountMax bound the rental count. Nil means unbounded.
	CountMin, CountMax *float64
}

// Value returns a pointer to v, for the optional bounds of a Filter.
func Value(v float64) *float64 {
	return &v
}

// IsZero reports whether f has no constraints.
func (f Filter) IsZero() bool {
	return f.Start.IsZero() && f.End.IsZero() && len(f.Seasons) == 0 &&
		f.TempMin == nil && f.TempMax == nil && f.CountMin == nil && f.CountMax == nil
}

// Validate checks that every range is well formed.
func (f Filter) Validate() error {
	if !f.Start.IsZero() && !f.End.IsZero() && f.Start.After(f.End) {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidRange,
			f.Start.Format(dataset.DateLayout), f.End.Format(dataset.DateLayout))
	}
	for _, s := range f.Seasons {
		if s < dataset.Winter || s > dataset.Fall {
			return fmt.Errorf("%w: unknown season %d", ErrInvalidRange, s)
		}
	}
	if err := checkBounds("temp", f.TempMin, f.TempMax); err != nil {
		return err
	}
	return checkBounds("count", f.CountMin, f.CountMax)
}

func checkBounds(name string, lo, hi *float64) error {
	if (lo != nil && math.IsNaN(*lo)) || (hi != nil && math.IsNaN(*hi)) {
		return fmt.Errorf("%w: %s bound is NaN", ErrInvalidRange, name)
	}
	if lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("%w: %s min %g > max %g", ErrInvalidRange, name, *lo, *hi)
	}
	return nil
}

func (f Filter) String() string {
	if f.IsZero() {
		return "all rows"
	}
	var parts []string
	if !f.Start.IsZero() || !f.End.IsZero() {
		parts = append(parts, fmt.Sprintf("date %s..%s", fmtDate(f.Start), fmtDate(f.End)))
	}
	if len(f.Seasons) > 0 {
		s := slices.Clone(f.Seasons)
		slices.Sort(s)
		parts = append(parts, fmt.Sprintf("season %v", s))
	}
	if f.TempMin != nil || f.TempMax != nil {
		parts = append(parts, fmt.Sprintf("temp %s..%s", fmtBound(f.TempMin), fmtBound(f.TempMax)))
	}
	if f.CountMin != nil || f.CountMax != nil {
		parts = append(parts, fmt.Sprintf("cnt %s..%s", fmtBound(f.CountMin), fmtBound(f.CountMax)))
	}
	return strings.Join(parts, ", ")
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dataset.DateLayout)
}

func fmtBound(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}
