package filter

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/bikestats/core"
	"github.com/hupe1980/bikestats/dataset"
)

// Index answers Filters over one table.
type Index struct {
	n       int
	seasons map[int]*roaring.Bitmap
	date    sortedColumn
	temp    sortedColumn
	count   sortedColumn
}

// sortedColumn holds a column's finite values in ascending order together
// with the row each came from.
type sortedColumn struct {
	values []float64
	rows   []uint32
}

func newSortedColumn(values []float64) sortedColumn {
	rows := make([]uint32, 0, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			rows = append(rows, uint32(i))
		}
	}
	slices.SortStableFunc(rows, func(a, b uint32) int {
		switch {
		case values[a] < values[b]:
			return -1
		case values[a] > values[b]:
			return 1
		default:
			return 0
		}
	})

	c := sortedColumn{values: make([]float64, len(rows)), rows: rows}
	for i, r := range rows {
		c.values[i] = values[r]
	}
	return c
}

// between returns the rows whose value lies in [lo, hi]; nil bounds are open.
func (c sortedColumn) between(lo, hi *float64) *roaring.Bitmap {
	start, end := 0, len(c.values)
	if lo != nil {
		start = sort.SearchFloat64s(c.values, *lo)
	}
	if hi != nil {
		end = sort.Search(len(c.values), func(i int) bool { return c.values[i] > *hi })
	}
	bm := roaring.New()
	if start < end {
		bm.AddMany(c.rows[start:end])
	}
	return bm
}

// NewIndex indexes the dteday, season, temp and cnt columns of t.
func NewIndex(t *dataset.Table) (*Index, error) {
	for _, col := range []string{dataset.ColSeason, dataset.ColTemp, dataset.ColCount} {
		if !t.Has(col) {
			return nil, &dataset.ErrMissingColumn{Column: col}
		}
	}

	idx := &Index{
		n:       t.Len(),
		seasons: make(map[int]*roaring.Bitmap),
		temp:    newSortedColumn(t.Column(dataset.ColTemp)),
		count:   newSortedColumn(t.Column(dataset.ColCount)),
	}

	for i, s := range t.Column(dataset.ColSeason) {
		code := int(s)
		bm, ok := idx.seasons[code]
		if !ok {
			bm = roaring.New()
			idx.seasons[code] = bm
		}
		bm.Add(uint32(i))
	}

	days := make([]float64, len(t.Dates()))
	for i, d := range t.Dates() {
		days[i] = dayNumber(d)
	}
	idx.date = newSortedColumn(days)

	for _, bm := range idx.seasons {
		bm.RunOptimize()
	}
	return idx, nil
}

func dayNumber(t time.Time) float64 {
	y, m, d := t.Date()
	return float64(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// Len returns the number of indexed rows.
func (idx *Index) Len() int {
	return idx.n
}

// Seasons returns the season codes present in the table, ascending.
func (idx *Index) Seasons() []int {
	out := make([]int, 0, len(idx.seasons))
	for s := range idx.seasons {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Apply returns the rows selected by f.
func (idx *Index) Apply(f Filter) (*roaring.Bitmap, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	result := roaring.New()
	if idx.n > 0 {
		result.AddRange(0, uint64(idx.n))
	}

	if len(f.Seasons) > 0 {
		sets := make([]*roaring.Bitmap, 0, len(f.Seasons))
		for _, s := range f.Seasons {
			if bm, ok := idx.seasons[s]; ok {
				sets = append(sets, bm)
			}
		}
		result.And(roaring.FastOr(sets...))
	}

	if !f.Start.IsZero() || !f.End.IsZero() {
		var lo, hi *float64
		if !f.Start.IsZero() {
			v := dayNumber(f.Start)
			lo = &v
		}
		if !f.End.IsZero() {
			v := dayNumber(f.End)
			hi = &v
		}
		result.And(idx.date.between(lo, hi))
	}

	if f.TempMin != nil || f.TempMax != nil {
		result.And(idx.temp.between(f.TempMin, f.TempMax))
	}
	if f.CountMin != nil || f.CountMax != nil {
		result.And(idx.count.between(f.CountMin, f.CountMax))
	}

	return result, nil
}

// Rows converts a selection into ascending row IDs.
func Rows(bm *roaring.Bitmap) []core.RowID {
	if bm == nil {
		return nil
	}
	out := make([]core.RowID, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, core.RowID(it.Next()))
	}
	return out
}
