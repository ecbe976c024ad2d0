// Package minio reads record files from MinIO or any S3-compatible store.
//
// The ingest command accepts --object bucket/key; the object must hold a
// JSON array of records, decoded with record.Decode:
//
//	client, err := minio.NewClient(minio.Config{Connection: minio.ConnectionConfig{
//	    Endpoint:        "localhost:9000",
//	    AccessKeyID:     os.Getenv("MINIO_ACCESS_KEY"),
//	    SecretAccessKey: os.Getenv("MINIO_SECRET_KEY"),
//	}})
//	bucket, key := minio.SplitObjectRef("records/psadt/commands.json")
//	data, err := client.Get(ctx, bucket, key)
//	records, err := record.Decode(bytes.NewReader(data))
//
// NewClient validates connectivity up front (bucket-scoped when a default
// bucket is configured). Errors are translated to ErrObjectNotFound,
// ErrBucketNotFound, ErrAccessDenied and ErrObjectTooLarge.
package minio
