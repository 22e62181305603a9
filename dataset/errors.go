package dataset

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a file has no header or no data rows.
var ErrEmptyDataset = errors.New("dataset: empty dataset")

// ErrMissingValue is the cause of an ErrParse for an empty cell.
var ErrMissingValue = errors.New("missing value")

// ErrMissingColumn is returned when a required column is absent from the header.
type ErrMissingColumn struct {
	Column string
}

func (e *ErrMissingColumn) Error() string {
	return fmt.Sprintf("dataset: missing column %q", e.Column)
}

// ErrParse reports a malformed cell or record. Line is 1-based and counts
// the header.
type ErrParse struct {
	Line   int
	Column string
	Err    error
}

func (e *ErrParse) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("dataset: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("dataset: line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *ErrParse) Unwrap() error {
	return e.Err
}
