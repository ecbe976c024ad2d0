// Package vectordb provides a store-agnostic abstraction for dense and sparse
// vector collections.
//
// # Overview
//
// The package defines the [Store] interface and the types that flow through it
// (points, vectors, collection descriptions, search requests and results).
// The workflow layer only ever talks to a [Store], so the same ingestion and
// search code runs against Qdrant in production and against [MemoryStore] in
// tests or one-off local runs.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                      workflow.Service                       │
//	│        (probe, ingest, search with sparse→dense fallback)   │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	                           ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                       vectordb.Store                        │
//	│            (common interface + store-agnostic types)        │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	              ┌────────────┴────────────┐
//	              ▼                         ▼
//	      ┌───────────────┐         ┌────────────────┐
//	      │ qdrant.Client │         │ vectordb.Memory │
//	      │  (gRPC)       │         │  Store          │
//	      └───────────────┘         └────────────────┘
//
// # Vectors
//
// A [Vector] carries exactly one representation:
//
//	vectordb.DenseVector([]float32{0.1, 0.2, 0.3})
//	vectordb.NewSparseVector([]uint32{17, 4021}, []float32{0.8, 1.3})
//
// Sparse vectors must have as many values as indices and no index may repeat;
// [SparseVector.Validate] enforces both.
//
// # Capabilities
//
// [Collection.Capability] reduces a collection description to the facts the
// workflow needs: whether a sparse slot exists (and its name) and whether a
// dense vector exists (its name, size and distance). Capabilities are derived
// from a fresh [Store.GetCollection] call every time; nothing is cached.
//
// # Errors
//
// Implementations wrap the sentinels in errors.go so callers can use
// errors.Is regardless of the backing store:
//
//	if errors.Is(err, vectordb.ErrCollectionNotFound) { ... }
//
// # Package Layout
//
//	vectordb/
//	├── interface.go      # Store interface
//	├── types.go          # Mode, Vector, Point, Collection, SearchRequest, ...
//	├── filters.go        # payload match filters
//	├── errors.go         # sentinel errors
//	├── utils.go          # validation and scoring helpers
//	├── memory.go         # in-process Store
//	└── mock_store.go     # gomock mock of Store
package vectordb
