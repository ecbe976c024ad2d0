// Package qdrant provides a dependency-injected Qdrant implementation of
// vectordb.Store.
//
// The package wraps the official gRPC client (github.com/qdrant/go-client)
// and translates between store-agnostic vectordb types and Qdrant's protobuf
// messages. It integrates with the fx dependency injection framework and
// supports builder-style configuration.
//
// # Core Features
//
//   - Managed client lifecycle with Fx integration
//   - Config struct supporting environment and YAML loading, or a single URL
//   - Automatic health check on client initialization
//   - Dense collections (unnamed or named vector) and sparse-only collections
//     with an IDF modifier and on-disk index
//   - Dense and sparse similarity search through the Query API
//   - Payload match filters
//   - gRPC status codes mapped onto vectordb sentinel errors
//
// # Basic Usage
//
//	import (
//	    "github.com/Aleph-Alpha/vecsearch/v1/qdrant"
//	    "github.com/Aleph-Alpha/vecsearch/v1/vectordb"
//	)
//
//	cfg, err := qdrant.FromURL(os.Getenv("QDRANT_URL"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
//
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{Config: cfg, Logger: log})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	var store vectordb.Store = client
//
//	// Sparse-only collection with one slot named "text"
//	err = store.CreateCollection(ctx, vectordb.CollectionSpec{
//	    Name:         "psadt_commands",
//	    Mode:         vectordb.ModeSparse,
//	    SparseField:  "text",
//	    SparseIDF:    true,
//	    SparseOnDisk: true,
//	})
//
//	results, err := store.Search(ctx, vectordb.SearchRequest{
//	    CollectionName: "psadt_commands",
//	    Vector:         vectordb.NewSparseVector(indices, values),
//	    Using:          "text",
//	    TopK:           5,
//	})
//
// # Errors
//
// Every error returned by QdrantClient wraps one of the vectordb sentinels
// when the failure can be classified:
//
//	NotFound                      → vectordb.ErrCollectionNotFound
//	Unavailable / DeadlineExceeded → vectordb.ErrStoreUnavailable
//	AlreadyExists                 → vectordb.ErrCollectionExists
//	InvalidArgument               → vectordb.ErrInvalidArgument
//
// # Fx Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    fx.Provide(func() *qdrant.Config { return cfg }),
//	)
//
// The module provides *QdrantClient and vectordb.Store and closes the
// connection on shutdown.
package qdrant
