package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/hupe1980/bikestats/cache"
	"golang.org/x/sync/errgroup"
)

// DefaultBlockSize is the caching granularity used when NewCachingStore is
// given a non-positive block size.
const DefaultBlockSize = 256 << 10

// CachingStore wraps a BlobStore and adds block-level read caching. It is
// meant for remote stores: Open still asks the inner store for the blob
// size, so a replaced file of a different size is refetched.
type CachingStore struct {
	inner     BlobStore
	id        string
	cache     cache.BlockCache
	blockSize int64
}

// NewCachingStore creates a CachingStore. id names the inner store in cache
// keys (e.g. "s3://my-bucket") and must differ between stores sharing a cache.
func NewCachingStore(inner BlobStore, id string, c cache.BlockCache, blockSize int64) *CachingStore {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &CachingStore{
		inner:     inner,
		id:        id,
		cache:     c,
		blockSize: blockSize,
	}
}

// Open opens name in the inner store. Blobs of unknown size bypass the cache.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	if b.Size() < 0 {
		return b, nil
	}
	return &cachingBlob{
		inner:     b,
		cache:     s.cache,
		key:       cache.Key{Store: s.id, Name: name, Size: b.Size()},
		blockSize: s.blockSize,
	}, nil
}

// List delegates to the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Invalidate drops every cached block of name.
func (s *CachingStore) Invalidate(name string) {
	s.cache.Invalidate(func(k cache.Key) bool {
		return k.Store == s.id && k.Name == name
	})
}

type cachingBlob struct {
	inner     Blob
	cache     cache.BlockCache
	key       cache.Key // Block is set per lookup
	blockSize int64
}

func (b *cachingBlob) Close() error {
	return b.inner.Close()
}

func (b *cachingBlob) Size() int64 {
	return b.key.Size
}

func (b *cachingBlob) blockKey(blk int64) cache.Key {
	k := b.key
	k.Block = blk
	return k
}

func (b *cachingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if off >= b.Size() {
		return 0, io.EOF
	}

	end := min(off+int64(len(p)), b.Size())
	blocks, err := b.load(ctx, off/b.blockSize, (end-1)/b.blockSize)
	if err != nil {
		return 0, err
	}
	return b.copyBlocks(p, off, blocks)
}

// copyBlocks copies [off, off+len(p)) out of blocks.
func (b *cachingBlob) copyBlocks(p []byte, off int64, blocks map[int64][]byte) (int, error) {
	if off >= b.Size() {
		return 0, io.EOF
	}
	end := min(off+int64(len(p)), b.Size())

	n := 0
	for blk := off / b.blockSize; blk <= (end-1)/b.blockSize; blk++ {
		data, ok := blocks[blk]
		if !ok {
			break
		}
		blkStart := blk * b.blockSize
		lo := max(off, blkStart) - blkStart
		hi := min(end-blkStart, int64(len(data)))
		if hi <= lo {
			break
		}
		n += copy(p[n:], data[lo:hi])
	}

	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// load returns the blocks in [first, last]. Cached blocks come from the
// cache; each run of contiguous missing blocks is fetched with one inner
// read and then cached.
func (b *cachingBlob) load(ctx context.Context, first, last int64) (map[int64][]byte, error) {
	type run struct{ start, count int64 }
	var runs []run

	blocks := make(map[int64][]byte, last-first+1)
	for blk := first; blk <= last; blk++ {
		if data, ok := b.cache.Get(ctx, b.blockKey(blk)); ok {
			blocks[blk] = data
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].start+runs[n-1].count == blk {
			runs[n-1].count++
		} else {
			runs = append(runs, run{start: blk, count: 1})
		}
	}
	if len(runs) == 0 {
		return blocks, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, r := range runs {
		g.Go(func() error {
			start := r.start * b.blockSize
			buf := make([]byte, min(r.count*b.blockSize, b.Size()-start))
			n, err := b.inner.ReadAt(gctx, buf, start)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			buf = buf[:n]

			for i := range r.count {
				lo := i * b.blockSize
				if lo >= int64(len(buf)) {
					break
				}
				hi := min(lo+b.blockSize, int64(len(buf)))
				// Copy so the cache does not pin the whole run.
				data := append([]byte(nil), buf[lo:hi]...)
				b.cache.Set(gctx, b.blockKey(r.start+i), data)

				mu.Lock()
				blocks[r.start+i] = data
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ReadRange loads every block of the range at once, then streams it.
func (b *cachingBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if length < 0 || off+length > b.Size() {
		length = b.Size() - off
	}
	if length <= 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}

	blocks, err := b.load(ctx, off/b.blockSize, (off+length-1)/b.blockSize)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(io.NewSectionReader(loadedBlocks{b: b, blocks: blocks}, off, length)), nil
}

// loadedBlocks serves reads from blocks loaded by ReadRange.
type loadedBlocks struct {
	b      *cachingBlob
	blocks map[int64][]byte
}

func (l loadedBlocks) ReadAt(p []byte, off int64) (int, error) {
	return l.b.copyBlocks(p, off, l.blocks)
}
