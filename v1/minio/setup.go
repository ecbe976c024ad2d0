package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Logger is the logging contract used by this package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// MinioClient wraps the standard MinIO client.
type MinioClient struct {
	client *minio.Client
	cfg    Config
	logger Logger
}

// NewClient creates and validates a MinIO client.
//
// Example:
//
//	client, err := minio.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//	data, err := client.Get(ctx, "records", "commands.json")
func NewClient(config Config) (*MinioClient, error) {
	client, err := connectToMinio(config)
	if err != nil {
		return nil, err
	}

	m := &MinioClient{client: client, cfg: config}

	timeout := config.ConnectTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := m.validateConnection(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, TranslateError(err))
	}
	return m, nil
}

// connectToMinio creates a new standard MinIO client.
func connectToMinio(cfg Config) (*minio.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})
}

// validateConnection prefers bucket-scoped validation so credentials do not
// need ListAllMyBuckets.
func (m *MinioClient) validateConnection(ctx context.Context) error {
	if bucket := m.cfg.Connection.BucketName; bucket != "" {
		_, err := m.client.BucketExists(ctx, bucket)
		return err
	}
	_, err := m.client.ListBuckets(ctx)
	return err
}

// WithLogger attaches a logger for lifecycle messages.
func (m *MinioClient) WithLogger(logger Logger) *MinioClient {
	m.logger = logger
	return m
}

// Get reads a whole object into memory, refusing objects larger than
// MaxObjectSize.
func (m *MinioClient) Get(ctx context.Context, bucket, objectKey string) ([]byte, error) {
	bucket, err := m.bucket(bucket)
	if err != nil {
		return nil, err
	}

	obj, err := m.client.GetObject(ctx, bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, TranslateError(err)
	}
	defer obj.Close()

	// GetObject is lazy; Stat surfaces a missing key before reading.
	info, err := obj.Stat()
	if err != nil {
		return nil, TranslateError(err)
	}

	limit := m.cfg.MaxObjectSize
	if limit == 0 {
		limit = defaultMaxObjectSize
	}
	if info.Size > limit {
		return nil, fmt.Errorf("%w: %s/%s is %d bytes, limit %d", ErrObjectTooLarge, bucket, objectKey, info.Size, limit)
	}

	var buf bytes.Buffer
	buf.Grow(int(info.Size))
	if _, err := io.Copy(&buf, obj); err != nil {
		return nil, TranslateError(err)
	}

	m.logDebug("minio object read", map[string]interface{}{
		"bucket": bucket,
		"key":    objectKey,
		"bytes":  buf.Len(),
	})
	return buf.Bytes(), nil
}

// Put uploads an object.
func (m *MinioClient) Put(ctx context.Context, bucket, objectKey string, reader io.Reader, size int64) (int64, error) {
	bucket, err := m.bucket(bucket)
	if err != nil {
		return 0, err
	}
	info, err := m.client.PutObject(ctx, bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType(objectKey),
	})
	if err != nil {
		return 0, TranslateError(err)
	}
	return info.Size, nil
}

// MakeBucket creates bucket unless it already exists.
func (m *MinioClient) MakeBucket(ctx context.Context, bucket string) error {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return TranslateError(err)
	}
	if exists {
		return nil
	}
	return TranslateError(m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.cfg.Connection.Region}))
}

// GracefulShutdown marks the end of the client's use. The MinIO client
// holds no resources that need closing.
func (m *MinioClient) GracefulShutdown() {
	m.logInfo("minio client shut down", nil)
}

func (m *MinioClient) bucket(bucket string) (string, error) {
	if bucket != "" {
		return bucket, nil
	}
	if m.cfg.Connection.BucketName == "" {
		return "", fmt.Errorf("%w: no bucket given and no default configured", ErrBucketNotFound)
	}
	return m.cfg.Connection.BucketName, nil
}

// SplitObjectRef splits "bucket/key/with/slashes" into bucket and key. A
// ref without a slash is a key in the default bucket.
func SplitObjectRef(ref string) (bucket, key string) {
	ref = strings.TrimPrefix(ref, "s3://")
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return "", ref
}

func contentType(key string) string {
	if strings.HasSuffix(key, ".json") {
		return "application/json"
	}
	return "application/octet-stream"
}

func (m *MinioClient) logInfo(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Info(msg, nil, fields)
	}
}

func (m *MinioClient) logDebug(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Debug(msg, nil, fields)
	}
}
