// Package mmap provides read-only memory-mapped access to local dataset files.
//
// # Usage
//
//	m, err := mmap.Open("day.csv")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential) // CSV is scanned front to back
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix: mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (advice is a no-op)
//
// Close is idempotent. Callers must not touch Bytes() after Close returns.
package mmap
