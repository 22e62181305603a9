package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/bikestats/blobstore"
	"github.com/hupe1980/bikestats/codec"
	"github.com/hupe1980/bikestats/internal/resource"
	"github.com/hupe1980/bikestats/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(42)
	store := blobstore.NewMemoryStore()

	hourCSV, err := codec.Compress(codec.Zstd, []byte(rng.HourCSV(3)))
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "day.csv", []byte(rng.DayCSV(30))))
	require.NoError(t, store.Put(ctx, "hour.csv.zst", hourCSV))

	l := NewLoader(resource.NewController(resource.Config{}), nil)
	b, err := l.Load(ctx, Source{Store: store, Name: "day.csv"}, Source{Store: store, Name: "hour.csv.zst"})
	require.NoError(t, err)

	assert.Len(t, b.Days, 30)
	assert.Len(t, b.Hours, 72)
	assert.True(t, b.HasHours())
	assert.Equal(t, 30, b.DayQuality.Rows)
	assert.Zero(t, b.DayQuality.TotalMissing())
	assert.Empty(t, b.Warnings)
	assert.Positive(t, b.Bytes)
}

func TestLoader_OptionalHours(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "day.csv", []byte(sampleDays)))
	require.NoError(t, store.Put(ctx, "empty.csv", nil))

	l := NewLoader(nil, nil)
	day := Source{Store: store, Name: "day.csv"}

	t.Run("Skipped", func(t *testing.T) {
		b, err := l.Load(ctx, day, Source{})
		require.NoError(t, err)
		assert.False(t, b.HasHours())
		assert.Empty(t, b.Warnings)
	})

	t.Run("Missing", func(t *testing.T) {
		b, err := l.Load(ctx, day, Source{Store: store, Name: "hour.csv"})
		require.NoError(t, err)
		assert.False(t, b.HasHours())
		require.Len(t, b.Warnings, 1)
		assert.Contains(t, b.Warnings[0], "hourly data unavailable")
	})

	t.Run("Empty", func(t *testing.T) {
		b, err := l.Load(ctx, day, Source{Store: store, Name: "empty.csv"})
		require.NoError(t, err)
		assert.Len(t, b.Days, 3)
		assert.Len(t, b.Warnings, 1)
	})
}

func TestLoader_DayErrors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "empty.csv", nil))
	require.NoError(t, store.Put(ctx, "bad.csv", []byte("instant,cnt\n1,2\n")))

	l := NewLoader(nil, nil)

	_, err := l.Load(ctx, Source{Store: store, Name: "missing.csv"}, Source{})
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	_, err = l.Load(ctx, Source{Store: store, Name: "empty.csv"}, Source{})
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = l.Load(ctx, Source{Store: store, Name: "bad.csv"}, Source{})
	var mc *ErrMissingColumn
	assert.ErrorAs(t, err, &mc)

	_, err = l.Load(ctx, Source{Name: "day.csv"}, Source{})
	assert.Error(t, err)
}

func TestLoader_DropsIncompleteRows(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	in := sampleDays + "4,2011-01-04,1,0,1,0,2,1,1,,0.21,0.59,0.16,108,1454,1562\n"
	require.NoError(t, store.Put(ctx, "day.csv", []byte(in)))

	b, err := NewLoader(nil, nil).Load(ctx, Source{Store: store, Name: "day.csv"}, Source{})
	require.NoError(t, err)
	assert.Len(t, b.Days, 3)
	assert.Equal(t, 1, b.DroppedDays)
	assert.Equal(t, 1, b.DayQuality.Missing[ColTemp])
	require.Len(t, b.Warnings, 1)
	assert.True(t, strings.Contains(b.Warnings[0], "dropped 1"))
}

func TestLoader_MemoryLimit(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "day.csv", []byte(sampleDays)))

	l := NewLoader(resource.NewController(resource.Config{MemoryLimitBytes: 16}), nil)
	_, err := l.Load(ctx, Source{Store: store, Name: "day.csv"}, Source{})
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
}
