package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a reservation would exceed the memory limit.
var ErrMemoryLimitExceeded = errors.New("resource: memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes caps the bytes reserved via AcquireMemory.
	// If 0, usage is only tracked.
	MemoryLimitBytes int64

	// MaxConcurrentLoads is the number of dataset files fetched at once.
	// If 0, defaults to 2 (day and hour in parallel).
	MaxConcurrentLoads int64

	// IOLimitBytesPerSec throttles reads through RateLimitedReader.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller enforces a Config.
type Controller struct {
	cfg Config

	memUsed atomic.Int64

	loadSem *semaphore.Weighted

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentLoads <= 0 {
		cfg.MaxConcurrentLoads = 2
	}

	c := &Controller{
		cfg:     cfg,
		loadSem: semaphore.NewWeighted(cfg.MaxConcurrentLoads),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Config returns the effective limits.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireMemory reserves bytes without blocking. It returns
// ErrMemoryLimitExceeded if the reservation does not fit.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.cfg.MemoryLimitBytes <= 0 {
		c.memUsed.Add(bytes)
		return nil
	}

	for {
		used := c.memUsed.Load()
		if used+bytes > c.cfg.MemoryLimitBytes {
			return ErrMemoryLimitExceeded
		}
		if c.memUsed.CompareAndSwap(used, used+bytes) {
			return nil
		}
	}
}

// ReleaseMemory returns a reservation made by AcquireMemory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireLoad blocks until a load slot is free or ctx is done.
func (c *Controller) AcquireLoad(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}
	return c.loadSem.Acquire(ctx, 1)
}

// TryAcquireLoad reserves a load slot without blocking.
func (c *Controller) TryAcquireLoad() bool {
	if c == nil {
		return true
	}
	return c.loadSem.TryAcquire(1)
}

// ReleaseLoad frees a slot taken by AcquireLoad or TryAcquireLoad.
func (c *Controller) ReleaseLoad() {
	if c == nil {
		return
	}
	c.loadSem.Release(1)
}

// AcquireIO waits until the IO limit allows n bytes. Requests larger than
// the limiter burst are split.
func (c *Controller) AcquireIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := c.ioLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// ioChunk returns the largest read that AcquireIO grants in a single wait.
func (c *Controller) ioChunk() int {
	if c == nil || c.ioLimiter == nil {
		return 0
	}
	return c.ioLimiter.Burst()
}
