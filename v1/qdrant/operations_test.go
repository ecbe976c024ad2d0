package qdrant

import (
	"context"
	"encoding/json"
	"testing"

	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

func sparseOnlyInfo(fields ...string) *qdrant.CollectionInfo {
	params := make(map[string]*qdrant.SparseVectorParams, len(fields))
	for _, f := range fields {
		params[f] = &qdrant.SparseVectorParams{}
	}
	return &qdrant.CollectionInfo{
		Status:      qdrant.CollectionStatus_Green,
		PointsCount: qdrant.PtrOf(uint64(3)),
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				SparseVectorsConfig: qdrant.NewSparseVectorsConfig(params),
			},
		},
	}
}

func denseInfo(size uint64) *qdrant.CollectionInfo {
	return &qdrant.CollectionInfo{
		Status: qdrant.CollectionStatus_Green,
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
					Size:     size,
					Distance: qdrant.Distance_Cosine,
				}),
			},
		},
	}
}

func TestGetCollection_Describes(t *testing.T) {
	f := &fakeAPI{info: map[string]*qdrant.CollectionInfo{
		"cmds":  sparseOnlyInfo("text", "alt"),
		"docs":  denseInfo(384),
		"named": {Config: &qdrant.CollectionConfig{Params: &qdrant.CollectionParams{
			VectorsConfig: qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
				"body":  {Size: 8, Distance: qdrant.Distance_Dot},
				"title": {Size: 4, Distance: qdrant.Distance_Cosine},
			}),
		}}},
	}}
	c := newTestClient(f)
	ctx := context.Background()

	cmds, err := c.GetCollection(ctx, "cmds")
	require.NoError(t, err)
	assert.Equal(t, "Green", cmds.Status)
	assert.Equal(t, uint64(3), cmds.PointCount)
	assert.Equal(t, []string{"alt", "text"}, cmds.SparseFields)
	assert.Empty(t, cmds.Dense)

	docs, err := c.GetCollection(ctx, "docs")
	require.NoError(t, err)
	assert.Empty(t, docs.SparseFields)
	assert.Equal(t, []vectordb.DenseParams{{Size: 384, Distance: "Cosine"}}, docs.Dense)

	named, err := c.GetCollection(ctx, "named")
	require.NoError(t, err)
	require.Len(t, named.Dense, 2)
	assert.Equal(t, "body", named.Dense[0].Name)
	assert.Equal(t, "Dot", named.Dense[0].Distance)
	assert.Equal(t, "title", named.Dense[1].Name)
}

func TestGetCollection_ClassifiesErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"not found", status.Error(codes.NotFound, "Collection `x` doesn't exist!"), vectordb.ErrCollectionNotFound},
		{"unavailable", status.Error(codes.Unavailable, "connection refused"), vectordb.ErrStoreUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "deadline exceeded"), vectordb.ErrStoreUnavailable},
		{"context deadline", context.DeadlineExceeded, vectordb.ErrStoreUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(&fakeAPI{err: tc.err})
			_, err := c.GetCollection(context.Background(), "x")
			assert.ErrorIs(t, err, tc.want)
		})
	}

	c := newTestClient(&fakeAPI{})
	_, err := c.GetCollection(context.Background(), "")
	assert.ErrorIs(t, err, vectordb.ErrInvalidArgument)
}

func TestCreateCollection_BuildsRequests(t *testing.T) {
	f := &fakeAPI{}
	c := newTestClient(f)
	ctx := context.Background()

	require.NoError(t, c.CreateCollection(ctx, vectordb.CollectionSpec{
		Name:      "docs",
		Mode:      vectordb.ModeDense,
		DenseSize: 384,
		Distance:  vectordb.DistanceCosine,
	}))
	require.NoError(t, c.CreateCollection(ctx, vectordb.CollectionSpec{
		Name:         "cmds",
		Mode:         vectordb.ModeSparse,
		SparseField:  "text",
		SparseIDF:    true,
		SparseOnDisk: true,
	}))
	require.Len(t, f.created, 2)

	dense := f.created[0]
	assert.Equal(t, "docs", dense.GetCollectionName())
	assert.Equal(t, uint64(384), dense.GetVectorsConfig().GetParams().GetSize())
	assert.Equal(t, qdrant.Distance_Cosine, dense.GetVectorsConfig().GetParams().GetDistance())
	assert.Nil(t, dense.GetSparseVectorsConfig())

	sparse := f.created[1]
	assert.Nil(t, sparse.GetVectorsConfig())
	slot := sparse.GetSparseVectorsConfig().GetMap()["text"]
	require.NotNil(t, slot)
	assert.Equal(t, qdrant.Modifier_Idf, slot.GetModifier())
	assert.True(t, slot.GetIndex().GetOnDisk())

	err := c.CreateCollection(ctx, vectordb.CollectionSpec{Name: "bad", Mode: vectordb.ModeDense})
	assert.ErrorIs(t, err, vectordb.ErrInvalidArgument)
	assert.Len(t, f.created, 2)

	f.err = status.Error(codes.AlreadyExists, "exists")
	err = c.CreateCollection(ctx, vectordb.CollectionSpec{Name: "docs", Mode: vectordb.ModeDense, DenseSize: 3})
	assert.ErrorIs(t, err, vectordb.ErrCollectionExists)
}

func TestUpsert_ConvertsPoints(t *testing.T) {
	f := &fakeAPI{}
	c := newTestClient(f)

	err := c.Upsert(context.Background(), "cmds", []vectordb.Point{
		{
			ID:      vectordb.NumericID(3),
			Field:   "text",
			Vector:  vectordb.NewSparseVector([]uint32{4, 9}, []float32{0.5, 1.5}),
			Payload: map[string]any{"name": "Show-ADTInstallationPrompt", "tags": []any{"ui"}},
		},
		{
			ID:     vectordb.UUIDID("5c56c793-69f3-4fbf-87e6-c4bf54c28c26"),
			Field:  "text",
			Vector: vectordb.NewSparseVector([]uint32{1}, []float32{1}),
		},
	})
	require.NoError(t, err)
	require.Len(t, f.upserts, 1)

	req := f.upserts[0]
	assert.Equal(t, "cmds", req.GetCollectionName())
	assert.True(t, req.GetWait())
	require.Len(t, req.GetPoints(), 2)
	assert.Equal(t, uint64(3), req.GetPoints()[0].GetId().GetNum())
	assert.Equal(t, "5c56c793-69f3-4fbf-87e6-c4bf54c28c26", req.GetPoints()[1].GetId().GetUuid())
	assert.Contains(t, req.GetPoints()[0].GetVectors().GetVectors().GetVectors(), "text")
	assert.Equal(t, "Show-ADTInstallationPrompt", req.GetPoints()[0].GetPayload()["name"].GetStringValue())

	// empty upserts never reach the server
	require.NoError(t, c.Upsert(context.Background(), "cmds", nil))
	assert.Len(t, f.upserts, 1)

	err = c.Upsert(context.Background(), "cmds", []vectordb.Point{{ID: vectordb.NumericID(1), Vector: vectordb.NewSparseVector([]uint32{1}, []float32{1})}})
	assert.ErrorIs(t, err, vectordb.ErrInvalidArgument)
}

func TestSearch_BuildsQueryAndKeepsOrder(t *testing.T) {
	f := &fakeAPI{scored: []*qdrant.ScoredPoint{
		{Id: qdrant.NewIDNum(2), Score: 0.9, Payload: qdrant.NewValueMap(map[string]any{"name": "b"})},
		{Id: qdrant.NewIDNum(1), Score: 0.4, Payload: qdrant.NewValueMap(map[string]any{"name": "a"})},
	}}
	c := newTestClient(f)

	results, err := c.Search(context.Background(), vectordb.SearchRequest{
		CollectionName: "cmds",
		Vector:         vectordb.NewSparseVector([]uint32{7}, []float32{1}),
		Using:          "text",
		TopK:           3,
		Filter:         &vectordb.Filter{Must: []vectordb.Match{vectordb.NewMatch("category", "dialog")}},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, vectordb.NumericID(2), results[0].ID)
	assert.Equal(t, "b", results[0].Payload["name"])
	assert.Equal(t, vectordb.NumericID(1), results[1].ID)

	require.Len(t, f.queries, 1)
	q := f.queries[0]
	assert.Equal(t, "text", q.GetUsing())
	assert.Equal(t, uint64(3), q.GetLimit())
	assert.Len(t, q.GetFilter().GetMust(), 1)

	_, err = c.Search(context.Background(), vectordb.SearchRequest{
		CollectionName: "cmds",
		Vector:         vectordb.NewSparseVector([]uint32{7}, []float32{1}),
		TopK:           3,
	})
	assert.ErrorIs(t, err, vectordb.ErrInvalidArgument)
}

func TestRawCollectionInfo(t *testing.T) {
	c := newTestClient(&fakeAPI{info: map[string]*qdrant.CollectionInfo{"cmds": sparseOnlyInfo("text")}})

	raw, err := c.RawCollectionInfo(context.Background(), "cmds")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "config")
}

func TestCloseIsIdempotent(t *testing.T) {
	f := &fakeAPI{}
	c := newTestClient(f)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, f.closed)
}
