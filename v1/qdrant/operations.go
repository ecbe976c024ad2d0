package qdrant

import (
	"context"
	"fmt"
	"sort"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// ListCollections ──────────────────────────────────────────────────────────────
// ListCollections
// ──────────────────────────────────────────────────────────────
//
// ListCollections returns the names of all collections in lexical order.
func (c *QdrantClient) ListCollections(ctx context.Context) ([]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	names, err := c.api.ListCollections(ctx)
	if err != nil {
		return nil, classify("list collections", err)
	}
	sort.Strings(names)
	return names, nil
}

// GetCollection ──────────────────────────────────────────────────────────────
// GetCollection
// ──────────────────────────────────────────────────────────────
//
// GetCollection retrieves metadata about a collection and reduces it to a
// decoupled vectordb.Collection:
//   • Status (e.g., "Green", "Yellow")
//   • Point and indexed vector counts
//   • Dense vector slots (unnamed or named) with size and distance
//   • Sparse vector slot names
//
// A missing collection is reported as vectordb.ErrCollectionNotFound; it is
// never confused with "no sparse support".
//
// Example:
//
//	collection, err := client.GetCollection(ctx, "psadt_commands")
//	if errors.Is(err, vectordb.ErrCollectionNotFound) { ... }
//	capability := collection.Capability()
func (c *QdrantClient) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	info, err := c.collectionInfo(ctx, name)
	if err != nil {
		return nil, err
	}
	return describeCollection(name, info), nil
}

// RawCollectionInfo returns the collection description exactly as Qdrant
// reports it, encoded as indented JSON.
func (c *QdrantClient) RawCollectionInfo(ctx context.Context, name string) ([]byte, error) {
	info, err := c.collectionInfo(ctx, name)
	if err != nil {
		return nil, err
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] encode collection info: %w", err)
	}
	return data, nil
}

func (c *QdrantClient) collectionInfo(ctx context.Context, name string) (*qdrant.CollectionInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: collection name cannot be empty", vectordb.ErrInvalidArgument)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, classify(fmt.Sprintf("get collection %q", name), err)
	}
	return info, nil
}

// CreateCollection ──────────────────────────────────────────────────────────────
// CreateCollection
// ──────────────────────────────────────────────────────────────
//
// CreateCollection creates a dense collection (one vector of spec.DenseSize,
// unnamed unless spec.DenseField is set) or a sparse-only collection with a
// single named sparse slot. The sparse slot can enable the IDF modifier, which
// makes Qdrant apply inverse document frequency at query time, and keep its
// index on disk.
func (c *QdrantClient) CreateCollection(ctx context.Context, spec vectordb.CollectionSpec) error {
	req, err := buildCreateCollection(spec)
	if err != nil {
		return err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return classify(fmt.Sprintf("create collection %q", spec.Name), err)
	}

	c.logger.Info("Created Qdrant collection", nil, map[string]interface{}{
		"collection": spec.Name,
		"mode":       spec.Mode.String(),
	})
	return nil
}

// DeleteCollection removes a collection.
func (c *QdrantClient) DeleteCollection(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: collection name cannot be empty", vectordb.ErrInvalidArgument)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.api.DeleteCollection(ctx, name); err != nil {
		return classify(fmt.Sprintf("delete collection %q", name), err)
	}

	c.logger.Info("Deleted Qdrant collection", nil, map[string]interface{}{"collection": name})
	return nil
}

// Upsert ──────────────────────────────────────────────────────────────
// Upsert
// ──────────────────────────────────────────────────────────────
//
// Upsert sends a single blocking (`Wait=true`) Upsert request for the points.
// Chunking is the caller's job; the workflow batches records itself so that
// failures can be attributed to individual records.
func (c *QdrantClient) Upsert(ctx context.Context, collection string, points []vectordb.Point) error {
	if collection == "" {
		return fmt.Errorf("%w: collection name cannot be empty", vectordb.ErrInvalidArgument)
	}
	if len(points) == 0 {
		return nil
	}

	structs := make([]*qdrant.PointStruct, 0, len(points))
	for i, p := range points {
		ps, err := toPointStruct(p)
		if err != nil {
			return fmt.Errorf("[Qdrant] point %d (id=%s): %w", i, p.ID, err)
		}
		structs = append(structs, ps)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, err := c.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         structs,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return classify(fmt.Sprintf("upsert %d points into %q", len(points), collection), err)
	}

	c.logger.Debug("Upserted points", nil, map[string]interface{}{
		"collection": collection,
		"count":      len(points),
	})
	return nil
}

// Search ──────────────────────────────────────────────────────────────
// Search
// ──────────────────────────────────────────────────────────────
//
// Search runs a Query request with a dense or sparse query vector. Sparse
// queries must name the sparse slot in req.Using. Results are returned in
// the order Qdrant ranks them.
func (c *QdrantClient) Search(ctx context.Context, req vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	if err := validateSearchInput(req); err != nil {
		return nil, err
	}

	query := &qdrant.QueryPoints{
		CollectionName: req.CollectionName,
		Query:          toQuery(req.Vector),
		Limit:          qdrant.PtrOf(uint64(req.TopK)),
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         convertFilter(req.Filter),
	}
	if req.Using != "" {
		query.Using = qdrant.PtrOf(req.Using)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Query(ctx, query)
	if err != nil {
		return nil, classify(fmt.Sprintf("search %q", req.CollectionName), err)
	}

	results, err := parseSearchResults(req.CollectionName, resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Search finished", nil, map[string]interface{}{
		"collection": req.CollectionName,
		"using":      req.Using,
		"results":    len(results),
	})
	return results, nil
}
