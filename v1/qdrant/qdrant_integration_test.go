package qdrant

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

const grpcPort = "6334/tcp"

type qdrantContainer struct {
	testcontainers.Container
	host string
	port int
}

// startQdrant runs a Qdrant image with its gRPC port bound to a free host
// port and blocks until the port accepts connections.
func startQdrant(ctx context.Context, t *testing.T) *qdrantContainer {
	t.Helper()

	hostPort, err := freePort()
	require.NoError(t, err)

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "qdrant/qdrant:v1.11.0",
			ExposedPorts: []string{grpcPort},
			HostConfigModifier: func(hc *container.HostConfig) {
				hc.PortBindings = nat.PortMap{
					grpcPort: []nat.PortBinding{{HostPort: strconv.Itoa(hostPort)}},
				}
			},
			WaitingFor: wait.ForListeningPort(grpcPort).WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err, "start qdrant container")
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Errorf("terminate qdrant container: %v", err)
		}
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, grpcPort)
	require.NoError(t, err)

	addr := net.JoinHostPort(host, mapped.Port())
	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 30*time.Second, 500*time.Millisecond, "qdrant not reachable on %s", addr)

	return &qdrantContainer{Container: c, host: host, port: mapped.Int()}
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func TestQdrantWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	ctx := context.Background()
	qc := startQdrant(ctx, t)

	var store vectordb.Store

	app := fxtest.New(t,
		fx.Provide(
			func() *Config {
				return &Config{
					Endpoint:           qc.host,
					Port:               qc.port,
					CheckCompatibility: false,
					Timeout:            10 * time.Second,
				}
			},
			func() Logger { return nopLogger{} },
		),
		FXModule,
		fx.Populate(&store),
	)

	require.NoError(t, app.Start(ctx))
	defer app.RequireStop()

	require.NotNil(t, store)
	assert.NoError(t, store.Health(ctx))

	t.Run("MissingCollection", func(t *testing.T) {
		_, err := store.GetCollection(ctx, "does_not_exist")
		assert.ErrorIs(t, err, vectordb.ErrCollectionNotFound)
	})

	t.Run("SparseCollection", func(t *testing.T) {
		name := "test_sparse"
		require.NoError(t, store.CreateCollection(ctx, vectordb.CollectionSpec{
			Name:         name,
			Mode:         vectordb.ModeSparse,
			SparseField:  "text",
			SparseIDF:    true,
			SparseOnDisk: true,
		}))

		info, err := store.GetCollection(ctx, name)
		require.NoError(t, err)
		capability := info.Capability()
		assert.True(t, capability.SupportsSparse)
		assert.Equal(t, "text", capability.SparseField)
		assert.False(t, capability.SupportsDense)

		err = store.Upsert(ctx, name, []vectordb.Point{
			{ID: vectordb.NumericID(1), Field: "text", Vector: vectordb.NewSparseVector([]uint32{10, 20}, []float32{1, 1}), Payload: map[string]any{"name": "close dialog"}},
			{ID: vectordb.NumericID(2), Field: "text", Vector: vectordb.NewSparseVector([]uint32{30}, []float32{1}), Payload: map[string]any{"name": "copy file"}},
		})
		require.NoError(t, err)

		results, err := store.Search(ctx, vectordb.SearchRequest{
			CollectionName: name,
			Vector:         vectordb.NewSparseVector([]uint32{10}, []float32{1}),
			Using:          "text",
			TopK:           3,
		})
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, vectordb.NumericID(1), results[0].ID)
		assert.Equal(t, "close dialog", results[0].Payload["name"])
	})

	t.Run("DenseCollection", func(t *testing.T) {
		name := "test_dense"
		require.NoError(t, store.CreateCollection(ctx, vectordb.CollectionSpec{
			Name:      name,
			Mode:      vectordb.ModeDense,
			DenseSize: 4,
			Distance:  vectordb.DistanceCosine,
		}))

		err := store.CreateCollection(ctx, vectordb.CollectionSpec{Name: name, Mode: vectordb.ModeDense, DenseSize: 4})
		assert.Error(t, err)

		points := []vectordb.Point{
			{ID: vectordb.UUIDID("00000000-0000-0000-0000-000000000001"), Vector: vectordb.DenseVector([]float32{1, 0, 0, 0})},
			{ID: vectordb.UUIDID("00000000-0000-0000-0000-000000000002"), Vector: vectordb.DenseVector([]float32{0, 1, 0, 0})},
		}
		require.NoError(t, store.Upsert(ctx, name, points))

		results, err := store.Search(ctx, vectordb.SearchRequest{
			CollectionName: name,
			Vector:         vectordb.DenseVector([]float32{0.9, 0.1, 0, 0}),
			TopK:           1,
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, points[0].ID, results[0].ID)
		assert.Greater(t, results[0].Score, float32(0.9))

		names, err := store.ListCollections(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, name)

		require.NoError(t, store.DeleteCollection(ctx, name))
		_, err = store.GetCollection(ctx, name)
		assert.ErrorIs(t, err, vectordb.ErrCollectionNotFound)
	})
}
