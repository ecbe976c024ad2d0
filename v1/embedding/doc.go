// Package embedding turns text into dense vectors through an HTTP inference
// service and defines the Embedder contract shared with the sparse
// embedder in package sparseembedding.
//
// # Overview
//
// The workflow layer depends on Embedder only:
//
//	Mode() vectordb.Mode
//	Model() string
//	Dimension() int
//	Load(ctx) error
//	EmbedCorpus(ctx, texts) ([]vectordb.Vector, error)
//	EmbedQuery(ctx, text) (vectordb.Vector, error)
//
// DenseEmbedder implements it on top of a Provider. Three providers exist:
//
//   - "inference": OpenAI-compatible POST /embeddings (vLLM, TEI, OpenAI).
//   - "semantic": Aleph Alpha POST /batch_semantic_embed. Documents use the
//     "document" representation, queries the "query" one.
//   - "ollama": POST /api/embed on a local Ollama server.
//
// # Loading
//
// The model is loaded lazily. The first call (or an explicit Load) embeds a
// probe text and checks that the vector length equals Config.Dimension.
// Only a successful load is remembered.
//
// # Errors
//
//   - ErrModelUnavailable: the provider is unreachable, rejects the
//     credentials, does not know the model (HTTP 404) or returns vectors of
//     the wrong length. Callers treat it as fatal.
//   - ErrEmbeddingFailed: a single request failed; other texts may succeed.
//
// # Configuration
//
//	cfg := embedding.NewConfig() // DefaultConfig + EMBEDDING_* variables
//
// Variables: EMBEDDING_PROVIDER, EMBEDDING_ENDPOINT, EMBEDDING_API_KEY,
// EMBEDDING_MODEL, EMBEDDING_DIMENSION, EMBEDDING_HTTP_TIMEOUT_SECONDS,
// EMBEDDING_REQUESTS_PER_SECOND.
//
// Provider calls are paced with a golang.org/x/time/rate limiter when
// RequestsPerSecond is set.
//
// # Dependency Injection (Fx)
//
//	app := fx.New(
//	    fx.Supply(cfg),
//	    embedding.FXModule,
//	    fx.Invoke(func(e *embedding.DenseEmbedder) { ... }),
//	)
package embedding
