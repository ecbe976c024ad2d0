package minio

import (
	"context"
	"io"
)

// Client provides the object storage operations the record source needs.
//
// This interface is implemented by the concrete *MinioClient type.
type Client interface {
	// Get retrieves an object and returns its contents. An empty bucket
	// means the configured default bucket.
	Get(ctx context.Context, bucket, objectKey string) ([]byte, error)

	// Put uploads an object. size may be -1 when unknown.
	Put(ctx context.Context, bucket, objectKey string, reader io.Reader, size int64) (int64, error)

	// GracefulShutdown releases idle connections.
	GracefulShutdown()
}
