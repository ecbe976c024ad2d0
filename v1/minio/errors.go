package minio

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

var (
	ErrObjectNotFound   = errors.New("object not found")
	ErrBucketNotFound   = errors.New("bucket not found")
	ErrAccessDenied     = errors.New("access denied")
	ErrObjectTooLarge   = errors.New("object too large")
	ErrConnectionFailed = errors.New("minio connection failed")
)

// TranslateError converts MinIO-specific errors into the package sentinels.
// Unknown errors are returned wrapped but otherwise unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return fmt.Errorf("%w: %s", ErrObjectNotFound, resp.Key)
	case "NoSuchBucket":
		return fmt.Errorf("%w: %s", ErrBucketNotFound, resp.BucketName)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %s", ErrAccessDenied, resp.Message)
	}
	return fmt.Errorf("minio: %w", err)
}
