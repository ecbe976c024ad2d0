package vectordb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDenseCollection(t *testing.T, s *MemoryStore, name string, size int) {
	t.Helper()
	require.NoError(t, s.CreateCollection(context.Background(), CollectionSpec{
		Name:      name,
		Mode:      ModeDense,
		DenseSize: size,
		Distance:  DistanceCosine,
	}))
}

func TestMemoryStore_CollectionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetCollection(ctx, "docs")
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	newDenseCollection(t, s, "docs", 3)
	require.NoError(t, s.CreateCollection(ctx, CollectionSpec{
		Name:        "cmds",
		Mode:        ModeSparse,
		SparseField: "text",
		SparseIDF:   true,
	}))

	err = s.CreateCollection(ctx, CollectionSpec{Name: "docs", Mode: ModeDense, DenseSize: 3})
	assert.ErrorIs(t, err, ErrCollectionExists)

	names, err := s.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cmds", "docs"}, names)

	info, err := s.GetCollection(ctx, "cmds")
	require.NoError(t, err)
	assert.Equal(t, []string{"text"}, info.SparseFields)
	assert.Empty(t, info.Dense)

	info, err = s.GetCollection(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, []DenseParams{{Size: 3, Distance: DistanceCosine}}, info.Dense)

	require.NoError(t, s.DeleteCollection(ctx, "docs"))
	assert.ErrorIs(t, s.DeleteCollection(ctx, "docs"), ErrCollectionNotFound)
}

func TestMemoryStore_DenseSearch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	newDenseCollection(t, s, "docs", 2)

	require.NoError(t, s.Upsert(ctx, "docs", []Point{
		{ID: NumericID(1), Vector: DenseVector([]float32{1, 0}), Payload: map[string]any{"name": "east"}},
		{ID: NumericID(2), Vector: DenseVector([]float32{0, 1}), Payload: map[string]any{"name": "north"}},
		{ID: NumericID(3), Vector: DenseVector([]float32{1, 1}), Payload: map[string]any{"name": "north-east"}},
	}))

	results, err := s.Search(ctx, SearchRequest{CollectionName: "docs", Vector: DenseVector([]float32{1, 0.1}), TopK: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, NumericID(1), results[0].ID)
	assert.Equal(t, NumericID(3), results[1].ID)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
	assert.Equal(t, "east", results[0].Payload["name"])

	filtered, err := s.Search(ctx, SearchRequest{
		CollectionName: "docs",
		Vector:         DenseVector([]float32{1, 0.1}),
		TopK:           5,
		Filter:         &Filter{Must: []Match{NewMatch("name", "north")}},
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, NumericID(2), filtered[0].ID)
}

func TestMemoryStore_UpsertReplacesPoint(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	newDenseCollection(t, s, "docs", 2)

	require.NoError(t, s.Upsert(ctx, "docs", []Point{{ID: NumericID(7), Vector: DenseVector([]float32{1, 0}), Payload: map[string]any{"v": 1}}}))
	require.NoError(t, s.Upsert(ctx, "docs", []Point{{ID: NumericID(7), Vector: DenseVector([]float32{0, 1}), Payload: map[string]any{"v": 2}}}))

	info, err := s.GetCollection(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.PointCount)

	results, err := s.Search(ctx, SearchRequest{CollectionName: "docs", Vector: DenseVector([]float32{0, 1}), TopK: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Payload["v"])
}

func TestMemoryStore_RejectsMismatchedVectors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	newDenseCollection(t, s, "docs", 2)

	err := s.Upsert(ctx, "docs", []Point{{ID: NumericID(1), Vector: DenseVector([]float32{1, 0, 0})}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = s.Upsert(ctx, "docs", []Point{{ID: NumericID(1), Field: "text", Vector: NewSparseVector([]uint32{1}, []float32{1})}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = s.Upsert(ctx, "missing", []Point{{ID: NumericID(1), Vector: DenseVector([]float32{1, 0})}})
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	_, err = s.Search(ctx, SearchRequest{CollectionName: "docs", Vector: DenseVector([]float32{1, 0}), TopK: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMemoryStore_SparseSearchWithIDF(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateCollection(ctx, CollectionSpec{Name: "cmds", Mode: ModeSparse, SparseField: "text", SparseIDF: true}))

	// index 1 appears everywhere, index 2 only in point 20
	require.NoError(t, s.Upsert(ctx, "cmds", []Point{
		{ID: NumericID(10), Field: "text", Vector: NewSparseVector([]uint32{1}, []float32{1})},
		{ID: NumericID(20), Field: "text", Vector: NewSparseVector([]uint32{1, 2}, []float32{1, 1})},
		{ID: NumericID(30), Field: "text", Vector: NewSparseVector([]uint32{1, 3}, []float32{1, 1})},
	}))

	results, err := s.Search(ctx, SearchRequest{
		CollectionName: "cmds",
		Vector:         NewSparseVector([]uint32{1, 2}, []float32{1, 1}),
		Using:          "text",
		TopK:           3,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, NumericID(20), results[0].ID)
	// ties keep insertion order
	assert.Equal(t, NumericID(10), results[1].ID)
	assert.Equal(t, NumericID(30), results[2].ID)

	// points sharing no term with the query are not returned
	results, err = s.Search(ctx, SearchRequest{CollectionName: "cmds", Vector: NewSparseVector([]uint32{9}, []float32{1}), Using: "text", TopK: 3})
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = s.Search(ctx, SearchRequest{CollectionName: "cmds", Vector: NewSparseVector([]uint32{1}, []float32{1}), Using: "body", TopK: 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
