package minio

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config defines the configuration for the MinIO record source.
type Config struct {
	Connection ConnectionConfig `yaml:"connection"`

	// MaxObjectSize caps how many bytes Get reads. Default 256 MiB.
	MaxObjectSize int64 `yaml:"max_object_size"`

	// ConnectTimeout bounds the startup connectivity check.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// ConnectionConfig contains MinIO server connection details.
type ConnectionConfig struct {
	Endpoint        string `yaml:"endpoint"`          // MinIO server endpoint, e.g., "localhost:9000"
	AccessKeyID     string `yaml:"access_key_id"`     // MinIO access key
	SecretAccessKey string `yaml:"secret_access_key"` // MinIO secret key
	UseSSL          bool   `yaml:"use_ssl"`           // Use SSL (true for "https", false for "http")
	BucketName      string `yaml:"bucket_name"`       // Default bucket name
	Region          string `yaml:"region"`            // Region for the bucket (e.g., "us-east-1")
}

const defaultMaxObjectSize = 256 << 20

// ApplyEnv reads MINIO_* variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		c.Connection.Endpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		c.Connection.AccessKeyID = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		c.Connection.SecretAccessKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		c.Connection.BucketName = v
	}
	if v := os.Getenv("MINIO_REGION"); v != "" {
		c.Connection.Region = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Connection.UseSSL = b
		}
	}
}

// Enabled reports whether an endpoint is configured. MinIO is an optional
// record source.
func (c Config) Enabled() bool {
	return c.Connection.Endpoint != ""
}

// Validate checks the connection settings.
func (c Config) Validate() error {
	if c.Connection.Endpoint == "" {
		return fmt.Errorf("minio endpoint cannot be empty")
	}
	if c.MaxObjectSize < 0 {
		return fmt.Errorf("minio max object size cannot be negative")
	}
	return nil
}
