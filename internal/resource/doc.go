// Package resource bounds the cost of loading datasets.
//
// A Controller governs three resources:
//
//   - Memory: decoded dataset bytes held at once (fail-fast)
//   - Concurrency: number of dataset files fetched in parallel
//   - IO: bytes per second read from remote stores (token bucket)
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    MaxConcurrentLoads: 2,
//	    IOLimitBytesPerSec: 8 << 20,
//	})
//
//	if err := rc.AcquireLoad(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseLoad()
//
//	r := resource.NewRateLimitedReader(ctx, body, rc)
//
// All methods are safe for concurrent use, and a nil *Controller is a valid
// controller that imposes no limits.
package resource
