package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/bikestats/blobstore"
	"github.com/hupe1980/bikestats/codec"
	"github.com/hupe1980/bikestats/internal/resource"
	"golang.org/x/sync/errgroup"
)

// Source names a dataset file within a store.
type Source struct {
	Store blobstore.BlobStore
	Name  string
}

func (s Source) String() string {
	return s.Name
}

// Bundle is the result of loading the day and hour tables.
type Bundle struct {
	Days  []Day
	Hours []Hour

	DayQuality  Quality
	HourQuality Quality

	// DroppedDays and DroppedHours count rows skipped for empty cells.
	DroppedDays  int
	DroppedHours int

	// Warnings lists non-fatal problems, such as a missing hour table.
	Warnings []string

	// Bytes is the number of bytes read from the stores (before decompression).
	Bytes int64
}

// HasHours reports whether an hourly table was loaded.
func (b *Bundle) HasHours() bool {
	return len(b.Hours) > 0
}

// Loader reads dataset files.
type Loader struct {
	rc     *resource.Controller
	logger *slog.Logger
}

// NewLoader creates a loader. rc may be nil for no limits; logger may be nil.
func NewLoader(rc *resource.Controller, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{rc: rc, logger: logger}
}

// ReadFrame fetches, decompresses and parses one file. It returns the
// number of bytes read from the store.
func (l *Loader) ReadFrame(ctx context.Context, src Source) (*Frame, int64, error) {
	if src.Store == nil {
		return nil, 0, fmt.Errorf("dataset: %s: no store", src.Name)
	}

	if err := l.rc.AcquireLoad(ctx); err != nil {
		return nil, 0, err
	}
	defer l.rc.ReleaseLoad()

	blob, err := src.Store.Open(ctx, src.Name)
	if err != nil {
		return nil, 0, fmt.Errorf("dataset: open %s: %w", src.Name, err)
	}
	defer blob.Close()

	if size := blob.Size(); size > 0 {
		if err := l.rc.AcquireMemory(size); err != nil {
			return nil, 0, fmt.Errorf("dataset: %s (%d bytes): %w", src.Name, size, err)
		}
		defer l.rc.ReleaseMemory(size)
	}

	rc, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, 0, fmt.Errorf("dataset: read %s: %w", src.Name, err)
	}
	defer rc.Close()

	counted := &countingReader{r: resource.NewRateLimitedReader(ctx, rc, l.rc)}
	dr, err := codec.Decompress(src.Name, counted)
	if err != nil {
		return nil, counted.n, fmt.Errorf("dataset: decompress %s: %w", src.Name, err)
	}
	defer dr.Close()

	f, err := ReadFrame(dr)
	if err != nil {
		return nil, counted.n, fmt.Errorf("dataset: parse %s: %w", src.Name, err)
	}

	l.logger.LogAttrs(ctx, slog.LevelDebug, "dataset file read",
		slog.String("name", src.Name),
		slog.Int("rows", f.Len()),
		slog.Int64("bytes", counted.n),
	)
	return f, counted.n, nil
}

// Load reads the day and hour tables concurrently. The day table is
// required. The hour table is optional: an empty hour.Name skips it, and a
// missing or empty file only adds a warning.
func (l *Loader) Load(ctx context.Context, day, hour Source) (*Bundle, error) {
	var (
		b                   Bundle
		dayBytes, hourBytes int64
		hourWarning         string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		f, n, err := l.ReadFrame(gctx, day)
		dayBytes = n
		if err != nil {
			return err
		}
		b.DayQuality = f.Quality()
		f, b.DroppedDays = f.Complete()
		if f.Len() == 0 {
			return fmt.Errorf("dataset: %s: %w", day.Name, ErrEmptyDataset)
		}
		b.Days, err = f.Days()
		if err != nil {
			return fmt.Errorf("dataset: decode %s: %w", day.Name, err)
		}
		return nil
	})

	if hour.Name != "" {
		g.Go(func() error {
			f, n, err := l.ReadFrame(gctx, hour)
			hourBytes = n
			if errors.Is(err, blobstore.ErrNotFound) || errors.Is(err, ErrEmptyDataset) {
				hourWarning = fmt.Sprintf("hourly data unavailable: %v", err)
				return nil
			}
			if err != nil {
				return err
			}
			b.HourQuality = f.Quality()
			f, b.DroppedHours = f.Complete()
			if f.Len() == 0 {
				hourWarning = fmt.Sprintf("hourly data unavailable: %s has no complete rows", hour.Name)
				return nil
			}
			b.Hours, err = f.Hours()
			if err != nil {
				return fmt.Errorf("dataset: decode %s: %w", hour.Name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.Bytes = dayBytes + hourBytes
	if b.DroppedDays > 0 {
		b.Warnings = append(b.Warnings, fmt.Sprintf("%s: dropped %d incomplete rows", day.Name, b.DroppedDays))
	}
	if b.DroppedHours > 0 {
		b.Warnings = append(b.Warnings, fmt.Sprintf("%s: dropped %d incomplete rows", hour.Name, b.DroppedHours))
	}
	if hourWarning != "" {
		b.Warnings = append(b.Warnings, hourWarning)
	}
	for _, w := range b.Warnings {
		l.logger.WarnContext(ctx, w)
	}
	return &b, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
