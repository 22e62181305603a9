// Package blobstore provides read access to the dataset files behind a
// dashboard run, wherever they live.
//
// BlobStore is the interface for opening named, immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap support
//   - MemoryStore: in-memory, for tests
//   - HTTPStore: plain HTTP(S) with range requests
//   - s3.Store: Amazon S3 with range reads and parallel downloads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Locations
//
// ParseLocation splits a dataset reference into the store it lives in and
// the blob name:
//
//	day.csv                           -> file, root ".", name "day.csv"
//	/data/bikes/hour.csv.zst          -> file, root "/data/bikes", name "hour.csv.zst"
//	s3://my-bucket/bikes/day.csv      -> s3, root "my-bucket", name "bikes/day.csv"
//	minio://bikes/day.csv.gz          -> minio, root "bikes", name "day.csv.gz"
//	https://example.com/data/day.csv  -> https, root "https://example.com/data", name "day.csv"
//
// # Reading
//
// NewReader adapts a Blob to a sequential io.Reader. Blobs that implement
// RangeReader are streamed with a single request; Mappable blobs are read
// without copying.
//
// # Caching
//
// CachingStore wraps a remote store with a cache.BlockCache:
//
//	dc, _ := cache.NewDiskBlockCache(cache.DiskCacheConfig{RootDir: dir, MaxSizeBytes: 256 << 20})
//	defer dc.Close()
//	store = blobstore.NewCachingStore(store, "s3://my-bucket", dc, 0)
package blobstore
