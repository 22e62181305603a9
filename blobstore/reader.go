package blobstore

import (
	"bytes"
	"context"
	"io"
)

// Downloader is an optional interface for stores that can fetch a whole blob
// faster than a single sequential stream, e.g. with parallel range requests.
type Downloader interface {
	Download(ctx context.Context, name string) ([]byte, error)
}

// NewReader returns a sequential reader over the whole blob.
// The caller closes both the reader and the blob.
func NewReader(ctx context.Context, b Blob) (io.ReadCloser, error) {
	if m, ok := b.(Mappable); ok {
		if data, err := m.Bytes(); err == nil {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	}

	if b.Size() == 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}

	if rr, ok := b.(RangeReader); ok {
		return rr.ReadRange(ctx, 0, b.Size())
	}

	return io.NopCloser(io.NewSectionReader(readerAt{ctx: ctx, b: b}, 0, b.Size())), nil
}

// ReadAll reads the named blob into memory.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	if d, ok := store.(Downloader); ok {
		return d.Download(ctx, name)
	}

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	r, err := NewReader(ctx, b)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// readerAt binds a context to a Blob so it satisfies io.ReaderAt.
type readerAt struct {
	ctx context.Context
	b   Blob
}

func (r readerAt) ReadAt(p []byte, off int64) (int, error) {
	return r.b.ReadAt(r.ctx, p, off)
}
