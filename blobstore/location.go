package blobstore

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Supported location schemes.
const (
	SchemeFile  = "file"
	SchemeS3    = "s3"
	SchemeMinIO = "minio"
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// ErrInvalidLocation is returned for dataset references ParseLocation cannot map to a store.
var ErrInvalidLocation = errors.New("blobstore: invalid location")

// Location identifies a blob: the store it lives in (Scheme + Root) and its Name.
type Location struct {
	Scheme string
	// Root is the directory for file, the bucket for s3/minio and the
	// base URL for http(s).
	Root string
	Name string
}

// ParseLocation parses a dataset reference. References without a scheme are
// local file paths.
func ParseLocation(ref string) (Location, error) {
	if ref == "" {
		return Location{}, fmt.Errorf("%w: empty reference", ErrInvalidLocation)
	}

	scheme, rest, ok := strings.Cut(ref, "://")
	if !ok {
		return fileLocation(ref)
	}

	switch strings.ToLower(scheme) {
	case SchemeFile:
		return fileLocation(rest)
	case SchemeS3, SchemeMinIO:
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return Location{}, fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidLocation, ref)
		}
		return Location{Scheme: strings.ToLower(scheme), Root: bucket, Name: key}, nil
	case SchemeHTTP, SchemeHTTPS:
		u, err := url.Parse(ref)
		if err != nil {
			return Location{}, fmt.Errorf("%w: %w", ErrInvalidLocation, err)
		}
		dir, name := path.Split(u.Path)
		if u.Host == "" || name == "" {
			return Location{}, fmt.Errorf("%w: %q has no file name", ErrInvalidLocation, ref)
		}
		base := url.URL{Scheme: u.Scheme, User: u.User, Host: u.Host, Path: strings.TrimSuffix(dir, "/")}
		return Location{Scheme: u.Scheme, Root: base.String(), Name: name}, nil
	default:
		return Location{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocation, scheme)
	}
}

func fileLocation(p string) (Location, error) {
	dir, name := filepath.Split(filepath.Clean(p))
	if name == "" || name == "." {
		return Location{}, fmt.Errorf("%w: %q has no file name", ErrInvalidLocation, p)
	}
	if dir == "" {
		dir = "."
	}
	return Location{Scheme: SchemeFile, Root: filepath.Clean(dir), Name: name}, nil
}

func (l Location) String() string {
	switch l.Scheme {
	case SchemeFile:
		return filepath.Join(l.Root, l.Name)
	case SchemeHTTP, SchemeHTTPS:
		return l.Root + "/" + l.Name
	default:
		return l.Scheme + "://" + l.Root + "/" + l.Name
	}
}

// StoreID identifies the store of l, e.g. "s3://my-bucket". It is used as
// the store part of cache keys.
func (l Location) StoreID() string {
	switch l.Scheme {
	case SchemeHTTP, SchemeHTTPS:
		return l.Root
	default:
		return l.Scheme + "://" + l.Root
	}
}

// SameStore reports whether l and other can be served by one BlobStore.
func (l Location) SameStore(other Location) bool {
	return l.Scheme == other.Scheme && l.Root == other.Root
}
