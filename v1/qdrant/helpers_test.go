package qdrant

import (
	"context"

	qdrant "github.com/qdrant/go-client/qdrant"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}

// fakeAPI records requests and returns canned responses.
type fakeAPI struct {
	info    map[string]*qdrant.CollectionInfo
	names   []string
	scored  []*qdrant.ScoredPoint
	err     error
	closed  int
	created []*qdrant.CreateCollection
	upserts []*qdrant.UpsertPoints
	queries []*qdrant.QueryPoints
	deleted []string
}

func (f *fakeAPI) HealthCheck(ctx context.Context) (*qdrant.HealthCheckReply, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &qdrant.HealthCheckReply{Title: "qdrant", Version: "test"}, nil
}

func (f *fakeAPI) ListCollections(ctx context.Context) ([]string, error) {
	return f.names, f.err
}

func (f *fakeAPI) GetCollectionInfo(ctx context.Context, name string) (*qdrant.CollectionInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info[name], nil
}

func (f *fakeAPI) CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error {
	f.created = append(f.created, req)
	return f.err
}

func (f *fakeAPI) DeleteCollection(ctx context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return f.err
}

func (f *fakeAPI) Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
	f.upserts = append(f.upserts, req)
	if f.err != nil {
		return nil, f.err
	}
	return &qdrant.UpdateResult{}, nil
}

func (f *fakeAPI) Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	f.queries = append(f.queries, req)
	return f.scored, f.err
}

func (f *fakeAPI) Close() error {
	f.closed++
	return nil
}

func newTestClient(f *fakeAPI) *QdrantClient {
	return newWithAPI(f, DefaultConfig(), nopLogger{})
}
