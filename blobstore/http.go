package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPStore implements BlobStore over plain HTTP(S), e.g. raw files on a
// code hosting site. It is read-only and cannot list.
type HTTPStore struct {
	client  *http.Client
	baseURL string
}

// NewHTTPStore creates a store that resolves names relative to baseURL.
// If client is nil, http.DefaultClient is used.
func NewHTTPStore(client *http.Client, baseURL string) *HTTPStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPStore{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *HTTPStore) url(name string) string {
	return s.baseURL + "/" + strings.TrimPrefix(name, "/")
}

// Open issues a HEAD request to check existence and learn the size.
// Servers that omit Content-Length yield a blob of unknown size (-1) that
// can only be streamed.
func (s *HTTPStore) Open(ctx context.Context, name string) (Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url(name), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()

	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	return &httpBlob{client: s.client, url: s.url(name), size: resp.ContentLength}, nil
}

// List is not supported over plain HTTP.
func (s *HTTPStore) List(context.Context, string) ([]string, error) {
	return nil, fmt.Errorf("blobstore: http list: %w", errors.ErrUnsupported)
}

type httpBlob struct {
	client *http.Client
	url    string
	size   int64
}

func (b *httpBlob) Size() int64 {
	return b.size
}

func (b *httpBlob) Close() error {
	return nil
}

func (b *httpBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.size >= 0 && off >= b.size {
		return 0, io.EOF
	}

	rc, err := b.ReadRange(ctx, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n, err := io.ReadFull(rc, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return n, io.EOF
	}
	return n, err
}

// ReadRange streams length bytes from off. A negative length, or a range
// covering the whole blob, is fetched without a Range header.
func (b *httpBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		return nil, err
	}

	whole := off == 0 && (length < 0 || (b.size >= 0 && length >= b.size))
	if !whole {
		if length < 0 {
			req.Header.Set("Range", fmt.Sprintf("bytes=%d-", off))
		} else {
			req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", off, off+length-1))
		}
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}

	want := http.StatusOK
	if !whole {
		want = http.StatusPartialContent
	}
	if err := checkStatus(resp, want); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(resp *http.Response, want int) error {
	switch {
	case resp.StatusCode == want:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("blobstore: %s %s: unexpected status %s", resp.Request.Method, resp.Request.URL, resp.Status)
	}
}
