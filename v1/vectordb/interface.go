package vectordb

import "context"

// Store is the common interface for all vector stores.
// It covers collection administration, point upserts and similarity search
// for both dense and sparse vectors.
//
// Example usage:
//
//	func NewSearcher(store vectordb.Store) *Searcher {
//	    return &Searcher{store: store}
//	}
//
//	// Works with any implementation:
//	// - *qdrant.Client
//	// - *vectordb.MemoryStore
//
//go:generate mockgen -source=interface.go -destination=mock_store.go -package=vectordb
type Store interface {
	// Health verifies the store is reachable.
	Health(ctx context.Context) error

	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)

	// GetCollection describes a collection. Returns ErrCollectionNotFound
	// when it does not exist.
	GetCollection(ctx context.Context, name string) (*Collection, error)

	// CreateCollection creates a collection from spec. Returns
	// ErrCollectionExists when the name is taken.
	CreateCollection(ctx context.Context, spec CollectionSpec) error

	// DeleteCollection removes a collection and all of its points.
	DeleteCollection(ctx context.Context, name string) error

	// Upsert inserts or replaces points. The call returns after the
	// write has been applied.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to req.TopK results ordered by descending score.
	Search(ctx context.Context, req SearchRequest) ([]SearchResult, error)

	// Close releases the underlying connection.
	Close() error
}
