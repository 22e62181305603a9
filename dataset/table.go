package dataset

import (
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/bikestats/core"
)

// Table is a column-oriented numeric view of a day or hour table.
// The dteday column is kept separately as dates.
//
// Slices returned by Table methods share its storage and must not be modified.
type Table struct {
	columns []string
	data    map[string][]float64
	dates   []time.Time
}

func newTable(columns []string, n int) *Table {
	t := &Table{
		data:  make(map[string][]float64, len(columns)),
		dates: make([]time.Time, 0, n),
	}
	for _, c := range columns {
		if c == ColDate {
			continue
		}
		t.columns = append(t.columns, c)
		t.data[c] = make([]float64, 0, n)
	}
	return t
}

func (t *Table) appendDay(d *Day) {
	t.dates = append(t.dates, d.Date)
	t.add(ColInstant, float64(d.Instant))
	t.add(ColSeason, float64(d.Season))
	t.add(ColYear, float64(d.Year))
	t.add(ColMonth, float64(d.Month))
	t.add(ColHoliday, float64(d.Holiday))
	t.add(ColWeekday, float64(d.Weekday))
	t.add(ColWorkingDay, float64(d.WorkingDay))
	t.add(ColWeather, float64(d.Weather))
	t.add(ColTemp, d.Temp)
	t.add(ColATemp, d.ATemp)
	t.add(ColHumidity, d.Humidity)
	t.add(ColWindSpeed, d.WindSpeed)
	t.add(ColCasual, float64(d.Casual))
	t.add(ColRegistered, float64(d.Registered))
	t.add(ColCount, float64(d.Count))
}

func (t *Table) add(col string, v float64) {
	t.data[col] = append(t.data[col], v)
}

// NewDayTable builds a table from daily records.
func NewDayTable(days []Day) *Table {
	t := newTable(dayColumns, len(days))
	for i := range days {
		t.appendDay(&days[i])
	}
	return t
}

// NewHourTable builds a table from hourly records.
func NewHourTable(hours []Hour) *Table {
	t := newTable(hourColumns, len(hours))
	for i := range hours {
		t.appendDay(&hours[i].Day)
		t.add(ColHour, float64(hours[i].Hour))
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.dates)
}

// Columns returns the numeric column names in file order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Has reports whether the table has a numeric column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns the values of a numeric column, or nil if it does not exist.
func (t *Table) Column(name string) []float64 {
	return t.data[name]
}

// Dates returns the dteday value of each row.
func (t *Table) Dates() []time.Time {
	return t.dates
}

// Subset returns a new table holding the given rows in order.
func (t *Table) Subset(rows []core.RowID) (*Table, error) {
	if err := t.checkRows(rows); err != nil {
		return nil, err
	}

	out := &Table{
		columns: t.columns,
		data:    make(map[string][]float64, len(t.data)),
		dates:   make([]time.Time, len(rows)),
	}
	for i, r := range rows {
		out.dates[i] = t.dates[r]
	}
	for name, src := range t.data {
		dst := make([]float64, len(rows))
		for i, r := range rows {
			dst[i] = src[r]
		}
		out.data[name] = dst
	}
	return out, nil
}

// Points pairs two columns into points for clustering. A nil rows slice
// selects every row.
func (t *Table) Points(xCol, yCol string, rows []core.RowID) ([]core.Point, error) {
	xs, ok := t.data[xCol]
	if !ok {
		return nil, &ErrMissingColumn{Column: xCol}
	}
	ys, ok := t.data[yCol]
	if !ok {
		return nil, &ErrMissingColumn{Column: yCol}
	}

	if rows == nil {
		pts := make([]core.Point, len(xs))
		for i := range xs {
			pts[i] = core.Point{X: xs[i], Y: ys[i]}
		}
		return pts, nil
	}

	if err := t.checkRows(rows); err != nil {
		return nil, err
	}
	pts := make([]core.Point, len(rows))
	for i, r := range rows {
		pts[i] = core.Point{X: xs[r], Y: ys[r]}
	}
	return pts, nil
}

func (t *Table) checkRows(rows []core.RowID) error {
	n := t.Len()
	for _, r := range rows {
		if int(r) >= n {
			return fmt.Errorf("dataset: row %d out of range [0, %d)", r, n)
		}
	}
	return nil
}
