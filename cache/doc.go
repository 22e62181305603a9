// Package cache keeps blocks of remote dataset files so repeated loads do
// not refetch them.
//
// # Memory
//
// LRUBlockCache holds blocks in memory up to a byte capacity. Reservations
// can be charged to a resource controller so the cache and the loader share
// one memory limit.
//
// # Disk
//
// DiskBlockCache persists blocks under a directory so they survive process
// restarts, which suits the CLI pointed at S3, MinIO or HTTP sources:
//   - Writes happen in the background; Close waits for them
//   - LRU eviction by total size
//   - The index is rebuilt from the directory on startup
//   - Every block carries a CRC32C checksum; corrupt blocks are dropped
//
// Both are used through blobstore.CachingStore.
package cache
