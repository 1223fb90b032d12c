package ports

import (
	"context"
	"io"
)

// ObjectStorage keeps catalog images and hands back their public URLs.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
	// Remove deletes the object behind a URL returned by Upload. URLs that
	// point outside the bucket are ignored.
	Remove(ctx context.Context, bucket, objectURL string) error
}
