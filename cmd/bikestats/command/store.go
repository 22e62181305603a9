package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/bikestats/blobstore"
	"github.com/hupe1980/bikestats/blobstore/minio"
	"github.com/hupe1980/bikestats/blobstore/s3"
	"github.com/hupe1980/bikestats/cache"
)

// MinIO connection settings are read from the environment.
const (
	minioEndpointEnv  = "MINIO_ENDPOINT"
	minioAccessKeyEnv = "MINIO_ACCESS_KEY"
	minioSecretKeyEnv = "MINIO_SECRET_KEY"
	minioSecureEnv    = "MINIO_SECURE"
)

// sources are the parsed day and hour references with their stores.
// hourStore is nil when the hour table lives in the day store or is unset.
type sources struct {
	day, hour blobstore.Location
	dayStore  blobstore.BlobStore
	hourStore blobstore.BlobStore
}

func openSources(ctx context.Context, dayRef, hourRef string) (*sources, error) {
	var (
		src sources
		err error
	)
	if src.day, err = blobstore.ParseLocation(dayRef); err != nil {
		return nil, err
	}
	if src.dayStore, err = openStore(ctx, src.day); err != nil {
		return nil, err
	}

	if hourRef == "" {
		return &src, nil
	}
	if src.hour, err = blobstore.ParseLocation(hourRef); err != nil {
		return nil, err
	}
	if !src.hour.SameStore(src.day) {
		if src.hourStore, err = openStore(ctx, src.hour); err != nil {
			return nil, err
		}
	}
	return &src, nil
}

// withCache routes reads of remote stores through c. Local files are read
// directly.
func (src *sources) withCache(c cache.BlockCache, blockSize int64) {
	if src.day.Scheme != blobstore.SchemeFile {
		src.dayStore = blobstore.NewCachingStore(src.dayStore, src.day.StoreID(), c, blockSize)
	}
	if src.hourStore != nil && src.hour.Scheme != blobstore.SchemeFile {
		src.hourStore = blobstore.NewCachingStore(src.hourStore, src.hour.StoreID(), c, blockSize)
	}
}

// openStore returns the store holding loc.
func openStore(ctx context.Context, loc blobstore.Location) (blobstore.BlobStore, error) {
	switch loc.Scheme {
	case blobstore.SchemeFile:
		return blobstore.NewLocalStore(loc.Root), nil
	case blobstore.SchemeS3:
		store, err := s3.New(ctx, loc.Root, "")
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", loc, err)
		}
		return store, nil
	case blobstore.SchemeMinIO:
		endpoint := os.Getenv(minioEndpointEnv)
		if endpoint == "" {
			return nil, fmt.Errorf("open %s: %s is not set", loc, minioEndpointEnv)
		}
		secure := !strings.EqualFold(os.Getenv(minioSecureEnv), "false")
		store, err := minio.Connect(endpoint, os.Getenv(minioAccessKeyEnv), os.Getenv(minioSecretKeyEnv), secure, loc.Root, "")
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", loc, err)
		}
		return store, nil
	case blobstore.SchemeHTTP, blobstore.SchemeHTTPS:
		return blobstore.NewHTTPStore(nil, loc.Root), nil
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", blobstore.ErrInvalidLocation, loc.Scheme)
	}
}
