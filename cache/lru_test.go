package cache

import (
	"context"
	"testing"

	"github.com/hupe1980/bikestats/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(name string, block int64) Key {
	return Key{Store: "s3://bikes", Name: name, Size: 1000, Block: block}
}

func TestLRUBlockCache(t *testing.T) {
	ctx := context.Background()
	c := NewLRUBlockCache(10, nil)

	c.Set(ctx, key("day.csv", 0), []byte("aaaa"))
	c.Set(ctx, key("day.csv", 1), []byte("bbbb"))

	got, ok := c.Get(ctx, key("day.csv", 0))
	require.True(t, ok)
	assert.Equal(t, "aaaa", string(got))

	// Block 1 is now least recently used and makes room for block 2.
	c.Set(ctx, key("day.csv", 2), []byte("cccc"))
	_, ok = c.Get(ctx, key("day.csv", 1))
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	// Larger than the capacity.
	c.Set(ctx, key("hour.csv", 0), make([]byte, 11))
	_, ok = c.Get(ctx, key("hour.csv", 0))
	assert.False(t, ok)

	s := c.Stats()
	assert.Equal(t, int64(1), s.Hits)
	assert.Equal(t, int64(2), s.Misses)
	assert.Equal(t, int64(8), s.SizeBytes)
}

func TestLRUBlockCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewLRUBlockCache(100, nil)
	c.Set(ctx, key("day.csv", 0), []byte("a"))
	c.Set(ctx, key("day.csv", 1), []byte("b"))
	c.Set(ctx, key("hour.csv", 0), []byte("c"))

	c.Invalidate(func(k Key) bool { return k.SameBlob(key("day.csv", 0)) })
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Close())
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Stats().SizeBytes)
}

func TestLRUBlockCache_ResourceController(t *testing.T) {
	ctx := context.Background()
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 6})
	c := NewLRUBlockCache(100, rc)

	c.Set(ctx, key("day.csv", 0), []byte("aaaa"))
	assert.Equal(t, int64(4), rc.MemoryUsage())

	// The controller refuses a reservation past its limit.
	c.Set(ctx, key("day.csv", 1), []byte("bbbb"))
	_, ok := c.Get(ctx, key("day.csv", 1))
	assert.False(t, ok)

	c.Invalidate(func(Key) bool { return true })
	assert.Zero(t, rc.MemoryUsage())
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "s3://bikes/day.csv@1000#3", key("day.csv", 3).String())
}
