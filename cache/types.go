package cache

import (
	"context"
	"fmt"
)

// Key identifies one block of one blob. Blobs are immutable once published,
// so Size is part of the key: a replaced file of another size misses.
type Key struct {
	// Store identifies the backing store, e.g. "s3://my-bucket".
	Store string
	// Name is the blob name within Store.
	Name string
	// Size is the blob size when the block was read.
	Size int64
	// Block is the block index (byte offset / block size).
	Block int64
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s@%d#%d", k.Store, k.Name, k.Size, k.Block)
}

// SameBlob reports whether k and other belong to the same blob.
func (k Key) SameBlob(other Key) bool {
	return k.Store == other.Store && k.Name == other.Name && k.Size == other.Size
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	SizeBytes int64
}

// BlockCache is a byte-oriented cache for immutable blocks.
// Returned slices must be treated as read-only.
type BlockCache interface {
	// Get returns a cached block. ok=false if missing.
	Get(ctx context.Context, key Key) (b []byte, ok bool)
	// Set caches a block. Implementations may copy or retain; caller must treat b as immutable.
	Set(ctx context.Context, key Key, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key Key) bool)
	// Close releases any resources (e.g. background writers).
	Close() error
	// Stats returns cache statistics.
	Stats() Stats
}
