package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Frame is a CSV file as raw cells.
type Frame struct {
	Header []string
	Rows   [][]string
	// Lines holds the 1-based source line of each row.
	Lines []int
}

// ReadFrame parses CSV from r. The first record is the header.
func ReadFrame(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, csvError(err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	f := &Frame{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := cr.FieldPos(0)
		f.Rows = append(f.Rows, rec)
		f.Lines = append(f.Lines, line)
	}

	if len(f.Rows) == 0 {
		return nil, ErrEmptyDataset
	}
	return f, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ErrParse{Line: pe.Line, Err: pe.Err}
	}
	return err
}

// Len returns the number of data rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Index returns the position of column name, or -1.
func (f *Frame) Index(name string) int {
	for i, h := range f.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Quality summarizes missing and duplicated data.
type Quality struct {
	Rows int
	// Missing maps each column to its number of empty cells.
	Missing map[string]int
	// Duplicates counts rows identical to an earlier row.
	Duplicates int
}

// TotalMissing returns the number of empty cells across all columns.
func (q Quality) TotalMissing() int {
	n := 0
	for _, c := range q.Missing {
		n += c
	}
	return n
}

// Quality computes missing-cell counts per column and the duplicate-row count.
func (f *Frame) Quality() Quality {
	q := Quality{
		Rows:    len(f.Rows),
		Missing: make(map[string]int, len(f.Header)),
	}
	for _, h := range f.Header {
		q.Missing[h] = 0
	}

	seen := make(map[string]struct{}, len(f.Rows))
	for _, row := range f.Rows {
		for i, cell := range row {
			if strings.TrimSpace(cell) == "" && i < len(f.Header) {
				q.Missing[f.Header[i]]++
			}
		}
		key := strings.Join(row, "\x00")
		if _, dup := seen[key]; dup {
			q.Duplicates++
			continue
		}
		seen[key] = struct{}{}
	}
	return q
}

// Complete returns a frame without rows containing empty cells, and the
// number of rows dropped.
func (f *Frame) Complete() (*Frame, int) {
	out := &Frame{Header: f.Header}
	for i, row := range f.Rows {
		if hasEmpty(row) {
			continue
		}
		out.Rows = append(out.Rows, row)
		out.Lines = append(out.Lines, f.Lines[i])
	}
	return out, len(f.Rows) - len(out.Rows)
}

func hasEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) == "" {
			return true
		}
	}
	return false
}

// Days decodes the frame as the daily table.
func (f *Frame) Days() ([]Day, error) {
	idx, err := f.columnIndex(dayColumns)
	if err != nil {
		return nil, err
	}

	days := make([]Day, 0, len(f.Rows))
	for i, row := range f.Rows {
		d := rowDecoder{idx: idx, row: row, line: f.Lines[i]}
		day := d.day()
		if d.err != nil {
			return nil, d.err
		}
		days = append(days, day)
	}
	return days, nil
}

// Hours decodes the frame as the hourly table.
func (f *Frame) Hours() ([]Hour, error) {
	idx, err := f.columnIndex(hourColumns)
	if err != nil {
		return nil, err
	}

	hours := make([]Hour, 0, len(f.Rows))
	for i, row := range f.Rows {
		d := rowDecoder{idx: idx, row: row, line: f.Lines[i]}
		h := Hour{Day: d.day(), Hour: d.int(ColHour)}
		if d.err == nil && (h.Hour < 0 || h.Hour > 23) {
			d.fail(ColHour, fmt.Errorf("hour %d out of range", h.Hour))
		}
		if d.err != nil {
			return nil, d.err
		}
		hours = append(hours, h)
	}
	return hours, nil
}

func (f *Frame) columnIndex(required []string) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	for _, col := range required {
		i := f.Index(col)
		if i < 0 {
			return nil, &ErrMissingColumn{Column: col}
		}
		idx[col] = i
	}
	return idx, nil
}

// ReadDays parses a daily CSV file.
func ReadDays(r io.Reader) ([]Day, error) {
	f, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return f.Days()
}

// ReadHours parses an hourly CSV file.
func ReadHours(r io.Reader) ([]Hour, error) {
	f, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return f.Hours()
}

// rowDecoder keeps the first error so a row decodes in one pass.
type rowDecoder struct {
	idx  map[string]int
	row  []string
	line int
	err  error
}

func (d *rowDecoder) fail(col string, err error) {
	if d.err == nil {
		d.err = &ErrParse{Line: d.line, Column: col, Err: err}
	}
}

func (d *rowDecoder) cell(col string) (string, bool) {
	if d.err != nil {
		return "", false
	}
	s := strings.TrimSpace(d.row[d.idx[col]])
	if s == "" {
		d.fail(col, ErrMissingValue)
		return "", false
	}
	return s, true
}

func (d *rowDecoder) int(col string) int {
	s, ok := d.cell(col)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		d.fail(col, err)
	}
	return v
}

func (d *rowDecoder) float(col string) float64 {
	s, ok := d.cell(col)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		d.fail(col, err)
	}
	return v
}

func (d *rowDecoder) date(col string) time.Time {
	s, ok := d.cell(col)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		d.fail(col, err)
	}
	return t
}

func (d *rowDecoder) day() Day {
	day := Day{
		Instant:    d.int(ColInstant),
		Date:       d.date(ColDate),
		Season:     d.int(ColSeason),
		Year:       d.int(ColYear),
		Month:      d.int(ColMonth),
		Holiday:    d.int(ColHoliday),
		Weekday:    d.int(ColWeekday),
		WorkingDay: d.int(ColWorkingDay),
		Weather:    d.int(ColWeather),
		Temp:       d.float(ColTemp),
		ATemp:      d.float(ColATemp),
		Humidity:   d.float(ColHumidity),
		WindSpeed:  d.float(ColWindSpeed),
		Casual:     d.int(ColCasual),
		Registered: d.int(ColRegistered),
		Count:      d.int(ColCount),
	}
	if d.err == nil && (day.Season < Winter || day.Season > Fall) {
		d.fail(ColSeason, fmt.Errorf("season %d out of range", day.Season))
	}
	return day
}
