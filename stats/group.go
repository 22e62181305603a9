package stats

import (
	"fmt"
	"math"
	"slices"
)

// Group aggregates the values sharing one key.
type Group struct {
	Key   int
	Count int
	Sum   float64
	Mean  float64
}

// GroupMean averages values per key, sorted by key.
func GroupMean(keys []int, values []float64) ([]Group, error) {
	return groupBy(keys, values)
}

// GroupSum totals values per key, sorted by key. The groups carry the
// mean as well.
func GroupSum(keys []int, values []float64) ([]Group, error) {
	return groupBy(keys, values)
}

func groupBy(keys []int, values []float64) ([]Group, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}

	byKey := make(map[int]*Group)
	for i, k := range keys {
		if math.IsNaN(values[i]) {
			continue
		}
		g, ok := byKey[k]
		if !ok {
			g = &Group{Key: k}
			byKey[k] = g
		}
		g.Count++
		g.Sum += values[i]
	}

	out := make([]Group, 0, len(byKey))
	for _, g := range byKey {
		g.Mean = g.Sum / float64(g.Count)
		out = append(out, *g)
	}
	slices.SortFunc(out, func(a, b Group) int { return a.Key - b.Key })
	return out, nil
}

// Keys truncates a categorical numeric column to integer keys.
func Keys(col []float64) []int {
	out := make([]int, len(col))
	for i, v := range col {
		out[i] = int(v)
	}
	return out
}
