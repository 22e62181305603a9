package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Kind identifies a compression format.
type Kind uint8

const (
	// None reads and writes bytes unchanged.
	None Kind = iota
	// Gzip is RFC 1952 gzip.
	Gzip
	// Zstd is Zstandard (better ratio, good for archived datasets).
	Zstd
	// LZ4 is the LZ4 frame format (fast).
	LZ4
)

// ErrUnknownKind is returned by ParseKind for unrecognized names.
var ErrUnknownKind = errors.New("codec: unknown compression")

var extensions = map[Kind]string{
	Gzip: ".gz",
	Zstd: ".zst",
	LZ4:  ".lz4",
}

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Ext returns the file extension for k, or "" for None.
func (k Kind) Ext() string {
	return extensions[k]
}

// ParseKind parses a compression name as accepted by the CLI.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "gz", "gzip":
		return Gzip, nil
	case "zst", "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// KindOf returns the compression implied by name's extension.
func KindOf(name string) Kind {
	ext := strings.ToLower(path.Ext(name))
	for k, e := range extensions {
		if ext == e {
			return k
		}
	}
	return None
}

// Strip removes a recognized compression extension from name.
func Strip(name string) string {
	if k := KindOf(name); k != None {
		return name[:len(name)-len(k.Ext())]
	}
	return name
}

// Decompress wraps r with the decoder implied by name's extension.
func Decompress(name string, r io.Reader) (io.ReadCloser, error) {
	return NewReader(KindOf(name), r)
}

// NewReader wraps r with a decoder for k. Closing the result does not
// close r.
func NewReader(k Kind, r io.Reader) (io.ReadCloser, error) {
	switch k {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("codec: gzip: %w", err)
		}
		return zr, nil
	case Zstd:
		dec := getZstdDecoder()
		if err := dec.Reset(r); err != nil {
			putZstdDecoder(dec)
			return nil, fmt.Errorf("codec: zstd: %w", err)
		}
		return &zstdReader{dec: dec}, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
}

// NewWriter wraps w with an encoder for k. Close flushes the encoder but
// does not close w.
func NewWriter(k Kind, w io.Writer) (io.WriteCloser, error) {
	switch k {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriterLevel(w, gzip.DefaultCompression)
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
}

// Compress encodes data in one shot.
func Compress(k Kind, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(k, &buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Synchronous decoders so pooled instances hold no goroutines.
var zstdDecoderPool sync.Pool

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// zstdReader returns its decoder to the pool on Close.
type zstdReader struct {
	dec *zstd.Decoder
}

func (z *zstdReader) Read(p []byte) (int, error) {
	if z.dec == nil {
		return 0, io.ErrClosedPipe
	}
	return z.dec.Read(p)
}

func (z *zstdReader) Close() error {
	if z.dec == nil {
		return nil
	}
	_ = z.dec.Reset(nil)
	putZstdDecoder(z.dec)
	z.dec = nil
	return nil
}
