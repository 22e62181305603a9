package bikestats

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bikestats/blobstore"
	"github.com/hupe1980/bikestats/dataset"
	"github.com/hupe1980/bikestats/kmeans"
)

var (
	// ErrEmptyDataset is returned when the day file has no header or no rows.
	ErrEmptyDataset = dataset.ErrEmptyDataset

	// ErrNotFound is returned when a dataset file does not exist.
	ErrNotFound = blobstore.ErrNotFound

	// ErrNoRows is returned when a filter selects no rows.
	ErrNoRows = errors.New("bikestats: filter selected no rows")

	// ErrInvalidClusterSpec is returned for an unusable ClusterSpec.
	ErrInvalidClusterSpec = errors.New("bikestats: invalid cluster spec")
)

// ErrMissingColumn indicates a required column is absent.
type ErrMissingColumn = dataset.ErrMissingColumn

// ErrParse indicates a malformed cell or record.
type ErrParse = dataset.ErrParse

// ErrClustering wraps a k-means failure with the ClusterSpec that produced it.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrClustering struct {
	Spec  ClusterSpec
	cause error
}

func (e *ErrClustering) Error() string {
	return fmt.Sprintf("bikestats: cluster %s vs %s (k=%d): %v", e.Spec.XColumn, e.Spec.YColumn, e.Spec.K, e.cause)
}

func (e *ErrClustering) Unwrap() error { return e.cause }

func translateError(spec ClusterSpec, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, kmeans.ErrInvalidArgument) {
		return &ErrClustering{Spec: spec, cause: fmt.Errorf("%w: %w", ErrInvalidClusterSpec, err)}
	}

	var mc *ErrMissingColumn
	if errors.As(err, &mc) {
		return &ErrClustering{Spec: spec, cause: err}
	}

	return err
}
