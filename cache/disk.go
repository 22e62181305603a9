package cache

import (
	"context"
	"encoding/base64"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/bikestats/internal/hash"
	"golang.org/x/sync/semaphore"
)

// DiskCacheConfig holds configuration for the disk cache.
type DiskCacheConfig struct {
	// RootDir is the directory where cache files are stored.
	RootDir string
	// MaxSizeBytes is the maximum size of the cache in bytes.
	MaxSizeBytes int64
	// MaxConcurrentWrites limits background disk writes.
	// Defaults to 4 if <= 0.
	MaxConcurrentWrites int64
}

// DiskBlockCache implements BlockCache backed by the local filesystem.
// Each blob gets a directory named after its encoded Store, Name and Size;
// each block is a file <block>.blk holding the data and a CRC32C trailer.
type DiskBlockCache struct {
	mu          sync.Mutex
	rootDir     string
	maxSize     int64
	currentSize int64

	writeSem *semaphore.Weighted
	wg       sync.WaitGroup

	items   map[Key]*diskEntry
	lruHead *diskEntry
	lruTail *diskEntry

	hits   atomic.Int64
	misses atomic.Int64
}

type diskEntry struct {
	key        Key
	size       int64
	path       string
	next, prev *diskEntry
}

// NewDiskBlockCache creates the cache directory if needed and indexes the
// blocks already in it.
func NewDiskBlockCache(cfg DiskCacheConfig) (*DiskBlockCache, error) {
	if cfg.RootDir == "" {
		return nil, fmt.Errorf("cache: empty root directory")
	}
	if err := os.MkdirAll(cfg.RootDir, 0o755); err != nil {
		return nil, err
	}

	maxWrites := cfg.MaxConcurrentWrites
	if maxWrites <= 0 {
		maxWrites = 4
	}

	c := &DiskBlockCache{
		rootDir:  cfg.RootDir,
		maxSize:  cfg.MaxSizeBytes,
		items:    make(map[Key]*diskEntry),
		writeSem: semaphore.NewWeighted(maxWrites),
	}
	if err := c.scan(); err != nil {
		return nil, err
	}
	for c.currentSize > c.maxSize && c.lruTail != nil {
		c.evictOne()
	}
	return c, nil
}

func (c *DiskBlockCache) scan() error {
	return filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil //nolint:nilerr // skip unreadable entries
		}
		key, ok := c.parsePath(path)
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // raced with removal
		}
		c.pushFront(&diskEntry{key: key, path: path, size: info.Size()})
		return nil
	})
}

func blobDir(key Key) string {
	id := key.Store + "\x00" + key.Name + "\x00" + strconv.FormatInt(key.Size, 10)
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

func (c *DiskBlockCache) pathOf(key Key) string {
	return filepath.Join(c.rootDir, blobDir(key), strconv.FormatInt(key.Block, 10)+".blk")
}

func (c *DiskBlockCache) parsePath(path string) (Key, bool) {
	rel, err := filepath.Rel(c.rootDir, path)
	if err != nil {
		return Key{}, false
	}
	dir, file := filepath.Split(rel)
	dir = strings.TrimSuffix(dir, string(filepath.Separator))

	blockStr, ok := strings.CutSuffix(file, ".blk")
	if !ok {
		return Key{}, false
	}
	block, err := strconv.ParseInt(blockStr, 10, 64)
	if err != nil {
		return Key{}, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(dir)
	if err != nil {
		return Key{}, false
	}
	parts := strings.Split(string(raw), "\x00")
	if len(parts) != 3 {
		return Key{}, false
	}
	size, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Key{}, false
	}
	return Key{Store: parts[0], Name: parts[1], Size: size, Block: block}, true
}

// Get returns a cached block. A block whose checksum fails is removed.
func (c *DiskBlockCache) Get(_ context.Context, key Key) ([]byte, bool) {
	c.mu.Lock()
	ent, ok := c.items[key]
	if ok {
		c.moveToFront(ent)
	}
	c.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	sealed, err := os.ReadFile(ent.path)
	var data []byte
	if err == nil {
		data, err = hash.Verify(sealed)
	}
	if err != nil {
		c.mu.Lock()
		if cur, ok := c.items[key]; ok && cur == ent {
			_ = os.Remove(ent.path)
			c.remove(ent)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return data, true
}

// Set writes the block in the background. When MaxConcurrentWrites writes
// are in flight it waits for a free writer; the block is dropped only if ctx
// is done first.
func (c *DiskBlockCache) Set(ctx context.Context, key Key, b []byte) {
	c.mu.Lock()
	if ent, ok := c.items[key]; ok {
		c.moveToFront(ent)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	sealed := hash.Seal(b)
	size := int64(len(sealed))
	if size > c.maxSize {
		return
	}

	if err := c.writeSem.Acquire(ctx, 1); err != nil {
		return
	}

	path := c.pathOf(key)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.writeSem.Release(1)

		if err := writeAtomic(path, sealed); err != nil {
			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.items[key]; ok {
			return
		}
		for c.currentSize+size > c.maxSize && c.lruTail != nil {
			c.evictOne()
		}
		c.pushFront(&diskEntry{key: key, path: path, size: size})
	}()
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "tmp-*.part")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}

// Invalidate removes entries matching the predicate and their files.
func (c *DiskBlockCache) Invalidate(predicate func(key Key) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, ent := range c.items {
		if predicate(k) {
			_ = os.Remove(ent.path)
			c.remove(ent)
		}
	}
}

// Close waits for all background writes to complete.
func (c *DiskBlockCache) Close() error {
	c.wg.Wait()
	return nil
}

// Stats implements BlockCache.
func (c *DiskBlockCache) Stats() Stats {
	c.mu.Lock()
	size := c.currentSize
	c.mu.Unlock()
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), SizeBytes: size}
}

// LRU helpers; callers hold mu.

func (c *DiskBlockCache) pushFront(ent *diskEntry) {
	c.items[ent.key] = ent
	c.currentSize += ent.size

	ent.prev = nil
	ent.next = c.lruHead
	if c.lruHead != nil {
		c.lruHead.prev = ent
	}
	c.lruHead = ent
	if c.lruTail == nil {
		c.lruTail = ent
	}
}

func (c *DiskBlockCache) moveToFront(ent *diskEntry) {
	if c.lruHead == ent {
		return
	}
	c.unlink(ent)
	ent.prev = nil
	ent.next = c.lruHead
	if c.lruHead != nil {
		c.lruHead.prev = ent
	}
	c.lruHead = ent
	if c.lruTail == nil {
		c.lruTail = ent
	}
}

func (c *DiskBlockCache) unlink(ent *diskEntry) {
	if ent.prev != nil {
		ent.prev.next = ent.next
	} else {
		c.lruHead = ent.next
	}
	if ent.next != nil {
		ent.next.prev = ent.prev
	} else {
		c.lruTail = ent.prev
	}
	ent.next, ent.prev = nil, nil
}

func (c *DiskBlockCache) remove(ent *diskEntry) {
	c.unlink(ent)
	delete(c.items, ent.key)
	c.currentSize -= ent.size
}

func (c *DiskBlockCache) evictOne() {
	ent := c.lruTail
	_ = os.Remove(ent.path)
	c.remove(ent)
}
