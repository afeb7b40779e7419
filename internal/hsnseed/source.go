package hsnseed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"invonest/internal/port"
	s3storage "invonest/internal/storage/s3"
)

// ErrNoFetcher is returned for an S3 source when no fetcher is configured.
var ErrNoFetcher = errors.New("s3 source given but no object fetcher configured")

// IsRemote reports whether src names an S3 object.
func IsRemote(src string) bool {
	_, _, ok := s3storage.ParseURI(src)
	return ok
}

// ReadSource returns the workbook bytes from a local path or an
// s3://bucket/key URI.
func ReadSource(ctx context.Context, src string, fetcher port.ObjectFetcher) ([]byte, error) {
	if bucket, key, ok := s3storage.ParseURI(src); ok {
		if fetcher == nil {
			return nil, ErrNoFetcher
		}
		data, err := fetcher.Download(ctx, bucket, key)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", src, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	return data, nil
}
