package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStore(t *testing.T) {
	content := []byte("instant,dteday,cnt\n1,2011-01-01,985\n")
	mux := http.NewServeMux()
	mux.HandleFunc("/data/day.csv", func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "day.csv", time.Time{}, bytes.NewReader(content))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	store := NewHTTPStore(srv.Client(), srv.URL+"/data/")

	t.Run("Open", func(t *testing.T) {
		blob, err := store.Open(ctx, "day.csv")
		require.NoError(t, err)
		defer blob.Close()
		assert.Equal(t, int64(len(content)), blob.Size())

		buf := make([]byte, 6)
		n, err := blob.ReadAt(ctx, buf, 8)
		require.NoError(t, err)
		assert.Equal(t, 6, n)
		assert.Equal(t, "dteday", string(buf))

		r, err := NewReader(ctx, blob)
		require.NoError(t, err)
		defer r.Close()
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "hour.csv")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		_, err := store.List(ctx, "")
		assert.True(t, errors.Is(err, errors.ErrUnsupported))
	})
}
