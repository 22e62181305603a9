package blobstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		ref  string
		want Location
	}{
		{"day.csv", Location{Scheme: SchemeFile, Root: ".", Name: "day.csv"}},
		{filepath.Join("data", "hour.csv.zst"), Location{Scheme: SchemeFile, Root: "data", Name: "hour.csv.zst"}},
		{"file://day.csv.gz", Location{Scheme: SchemeFile, Root: ".", Name: "day.csv.gz"}},
		{"s3://my-bucket/bikes/day.csv", Location{Scheme: SchemeS3, Root: "my-bucket", Name: "bikes/day.csv"}},
		{"MINIO://bikes/day.csv.lz4", Location{Scheme: SchemeMinIO, Root: "bikes", Name: "day.csv.lz4"}},
		{
			"https://raw.example.com/user/repo/master/data/day.csv",
			Location{Scheme: SchemeHTTPS, Root: "https://raw.example.com/user/repo/master/data", Name: "day.csv"},
		},
		{"http://localhost:8080/day.csv", Location{Scheme: SchemeHTTP, Root: "http://localhost:8080", Name: "day.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseLocation(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	for _, ref := range []string{"", "s3://bucket-only", "s3:///key", "ftp://host/day.csv", "https://example.com/"} {
		t.Run(ref, func(t *testing.T) {
			_, err := ParseLocation(ref)
			assert.ErrorIs(t, err, ErrInvalidLocation)
		})
	}
}

func TestLocation_String(t *testing.T) {
	for _, ref := range []string{"s3://b/k/day.csv", "minio://b/day.csv", "https://example.com/data/day.csv"} {
		loc, err := ParseLocation(ref)
		require.NoError(t, err)
		assert.Equal(t, ref, loc.String())
	}
}

func TestLocation_SameStore(t *testing.T) {
	a, _ := ParseLocation("s3://b/day.csv")
	b, _ := ParseLocation("s3://b/hour.csv")
	c, _ := ParseLocation("s3://other/hour.csv")

	assert.True(t, a.SameStore(b))
	assert.False(t, a.SameStore(c))
}

func TestLocation_StoreID(t *testing.T) {
	s3Loc, _ := ParseLocation("s3://bikes/2011/day.csv")
	assert.Equal(t, "s3://bikes", s3Loc.StoreID())

	httpLoc, _ := ParseLocation("https://example.com/data/day.csv")
	assert.Equal(t, "https://example.com/data", httpLoc.StoreID())
}
