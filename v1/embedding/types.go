package embedding

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// Embedder turns text into vectors of a single mode.
//
// EmbedCorpus is used for texts being stored, EmbedQuery for search queries.
// Models may weight the two differently (BM25 does); callers must not mix
// them up.
type Embedder interface {
	// Mode reports whether the embedder produces dense or sparse vectors.
	Mode() vectordb.Mode

	// Model returns the model identifier.
	Model() string

	// Dimension is the fixed dense vector length, or 0 for sparse embedders.
	Dimension() int

	// Load prepares the model. It is called implicitly by the embed methods;
	// calling it up front surfaces ErrModelUnavailable before any work starts.
	Load(ctx context.Context) error

	// EmbedCorpus embeds texts for storage. The result has one vector per text.
	EmbedCorpus(ctx context.Context, texts []string) ([]vectordb.Vector, error)

	// EmbedQuery embeds a single search query.
	EmbedQuery(ctx context.Context, text string) (vectordb.Vector, error)
}

// Purpose tells providers whether a text is stored or searched for.
type Purpose string

const (
	PurposeDocument Purpose = "document"
	PurposeQuery    Purpose = "query"
)

// Provider contract
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Create generates one embedding per text using the specified model.
	Create(ctx context.Context, model string, purpose Purpose, texts []string) ([][]float64, error)
}

// Set holds one embedder per mode.
type Set struct {
	Dense  Embedder
	Sparse Embedder
}

// For returns the embedder for mode.
func (s Set) For(mode vectordb.Mode) (Embedder, error) {
	var e Embedder
	switch mode {
	case vectordb.ModeDense:
		e = s.Dense
	case vectordb.ModeSparse:
		e = s.Sparse
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", vectordb.ErrInvalidArgument, mode)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: no %s embedder configured", ErrModelUnavailable, mode)
	}
	return e, nil
}
