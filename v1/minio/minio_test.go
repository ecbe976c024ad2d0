package minio

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestSplitObjectRef(t *testing.T) {
	cases := []struct {
		ref, bucket, key string
	}{
		{"records/commands.json", "records", "commands.json"},
		{"s3://records/psadt/commands.json", "records", "psadt/commands.json"},
		{"commands.json", "", "commands.json"},
	}
	for _, tc := range cases {
		bucket, key := SplitObjectRef(tc.ref)
		assert.Equal(t, tc.bucket, bucket, tc.ref)
		assert.Equal(t, tc.key, key, tc.ref)
	}
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil))
	assert.ErrorIs(t, TranslateError(minio.ErrorResponse{Code: "NoSuchKey", Key: "a.json"}), ErrObjectNotFound)
	assert.ErrorIs(t, TranslateError(minio.ErrorResponse{Code: "NoSuchBucket"}), ErrBucketNotFound)
	assert.ErrorIs(t, TranslateError(minio.ErrorResponse{Code: "AccessDenied"}), ErrAccessDenied)

	other := errors.New("boom")
	assert.ErrorIs(t, TranslateError(other), other)
}

func TestConfig(t *testing.T) {
	var cfg Config
	assert.False(t, cfg.Enabled())
	assert.Error(t, cfg.Validate())

	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_USE_SSL", "true")
	cfg.ApplyEnv()
	assert.True(t, cfg.Enabled())
	assert.True(t, cfg.Connection.UseSSL)
	assert.NoError(t, cfg.Validate())
}

func TestMinioGetObject(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			Cmd:          []string{"server", "/data"},
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "minioadmin",
				"MINIO_ROOT_PASSWORD": "minioadmin",
			},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.PortEndpoint(ctx, "9000/tcp", "")
	require.NoError(t, err)

	client, err := NewClient(Config{Connection: ConnectionConfig{
		Endpoint:        endpoint,
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
	}})
	require.NoError(t, err)
	defer client.GracefulShutdown()

	require.NoError(t, client.MakeBucket(ctx, "records"))

	body := []byte(`[{"id": 1, "name": "Show-ADTInstallationPrompt", "synopsis": "Displays a prompt."}]`)
	n, err := client.Put(ctx, "records", "psadt/commands.json", bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, int64(len(body)), n)

	got, err := client.Get(ctx, "records", "psadt/commands.json")
	require.NoError(t, err)
	assert.Equal(t, body, got)

	_, err = client.Get(ctx, "records", "missing.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	client.cfg.MaxObjectSize = 4
	_, err = client.Get(ctx, "records", "psadt/commands.json")
	assert.ErrorIs(t, err, ErrObjectTooLarge)
}
