package resource

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Does not fit
	assert.ErrorIs(t, c.AcquireMemory(20), ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(1<<40))
	assert.Equal(t, int64(1<<40), c.MemoryUsage())
	c.ReleaseMemory(1 << 40)
	assert.Zero(t, c.MemoryUsage())
}

func TestController_Loads(t *testing.T) {
	c := NewController(Config{MaxConcurrentLoads: 1})

	require.NoError(t, c.AcquireLoad(context.Background()))
	assert.False(t, c.TryAcquireLoad())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireLoad(ctx), context.DeadlineExceeded)

	c.ReleaseLoad()
	assert.True(t, c.TryAcquireLoad())
	c.ReleaseLoad()
}

func TestController_DefaultLoads(t *testing.T) {
	c := NewController(Config{})
	assert.Equal(t, int64(2), c.Config().MaxConcurrentLoads)
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Zero(t, c.MemoryUsage())
	require.NoError(t, c.AcquireLoad(context.Background()))
	assert.True(t, c.TryAcquireLoad())
	c.ReleaseLoad()
	require.NoError(t, c.AcquireIO(context.Background(), 1<<30))
}

func TestController_AcquireIO_LargerThanBurst(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	// 1.5 bursts: the first is available immediately, the rest needs ~0.5s.
	start := time.Now()
	require.NoError(t, c.AcquireIO(context.Background(), 1<<20+1<<19))
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
}

func TestController_AcquireIO_Canceled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 10})
	require.NoError(t, c.AcquireIO(context.Background(), 10))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireIO(ctx, 10))
}

func TestRateLimitedReader(t *testing.T) {
	data := strings.Repeat("x", 4096)

	t.Run("Unlimited", func(t *testing.T) {
		r := NewRateLimitedReader(context.Background(), strings.NewReader(data), nil)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, data, string(got))
	})

	t.Run("ChunksToBurst", func(t *testing.T) {
		c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
		r := NewRateLimitedReader(context.Background(), bytes.NewReader([]byte(data)), c)

		buf := make([]byte, 2<<20)
		n, err := r.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, len(data), n)
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := NewRateLimitedReader(ctx, strings.NewReader(data), nil)
		_, err := r.Read(make([]byte, 10))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
