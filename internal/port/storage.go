package port

import "context"

// ObjectFetcher reads whole objects from cloud storage.
type ObjectFetcher interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}
