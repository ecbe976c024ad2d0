package embedding

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// warmupText is embedded once on Load to check the model answers with
// vectors of the configured dimension.
const warmupText = "warmup"

// DenseEmbedder is the dense Embedder. It hides all provider details
// (endpoints, HTTP, request shapes) from the workflow layer.
type DenseEmbedder struct {
	provider  Provider
	model     string
	dimension int
	batchSize int
	limiter   *rate.Limiter

	mu     sync.Mutex
	loaded bool
}

// NewDenseEmbedder constructs a DenseEmbedder from Config.
// It validates the config and internally constructs the provider.
func NewDenseEmbedder(cfg *Config) (*DenseEmbedder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}
	return NewDenseEmbedderWithProvider(p, cfg), nil
}

// NewDenseEmbedderWithProvider wires an existing provider. Config fields
// other than model, dimension, pacing and batch size are ignored.
func NewDenseEmbedderWithProvider(p Provider, cfg *Config) *DenseEmbedder {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	batch := cfg.BatchSize
	if batch < 1 {
		batch = 32
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	dim := cfg.Dimension
	if dim <= 0 {
		dim = DefaultDimension
	}

	return &DenseEmbedder{
		provider:  p,
		model:     model,
		dimension: dim,
		batchSize: batch,
		limiter:   rate.NewLimiter(limit, burst),
	}
}

// NewProvider picks the provider implementation named in cfg.Provider.
func NewProvider(cfg *Config) (Provider, error) {
	switch cfg.Provider {
	case "", ProviderInference:
		return NewInferenceProvider(cfg)
	case ProviderSemantic:
		return NewSemanticProvider(cfg)
	case ProviderOllama:
		return NewOllamaProvider(cfg)
	default:
		return nil, fmt.Errorf("embedding: unknown provider %q", cfg.Provider)
	}
}

func (e *DenseEmbedder) Mode() vectordb.Mode { return vectordb.ModeDense }
func (e *DenseEmbedder) Model() string       { return e.model }
func (e *DenseEmbedder) Dimension() int      { return e.dimension }

// Load embeds a probe text and checks its length. Only success is
// remembered, so a transient failure can be retried by the next call.
func (e *DenseEmbedder) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded {
		return nil
	}

	vectors, err := e.create(ctx, PurposeQuery, []string{warmupText})
	if err != nil {
		return fmt.Errorf("%w: load %s via %s: %w", ErrModelUnavailable, e.model, e.provider.Name(), err)
	}
	if err := e.checkDimension(vectors); err != nil {
		return fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	e.loaded = true
	return nil
}

// EmbedCorpus embeds texts in provider batches of at most BatchSize.
func (e *DenseEmbedder) EmbedCorpus(ctx context.Context, texts []string) ([]vectordb.Vector, error) {
	if err := e.Load(ctx); err != nil {
		return nil, err
	}

	out := make([]vectordb.Vector, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))

		vectors, err := e.create(ctx, PurposeDocument, texts[start:end])
		if err != nil {
			return nil, err
		}
		if err := e.checkDimension(vectors); err != nil {
			return nil, err
		}
		for _, v := range vectors {
			out = append(out, vectordb.DenseVector(toFloat32(v)))
		}
	}
	return out, nil
}

// EmbedQuery embeds a single query.
func (e *DenseEmbedder) EmbedQuery(ctx context.Context, text string) (vectordb.Vector, error) {
	if err := e.Load(ctx); err != nil {
		return vectordb.Vector{}, err
	}

	vectors, err := e.create(ctx, PurposeQuery, []string{text})
	if err != nil {
		return vectordb.Vector{}, err
	}
	if err := e.checkDimension(vectors); err != nil {
		return vectordb.Vector{}, err
	}
	return vectordb.DenseVector(toFloat32(vectors[0])), nil
}

// Close allows the embedder to release resources held by the provider.
// Currently this is a no-op unless the provider implements Close().
func (e *DenseEmbedder) Close() error {
	if closer, ok := e.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (e *DenseEmbedder) create(ctx context.Context, purpose Purpose, texts []string) ([][]float64, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	vectors, err := e.provider.Create(ctx, e.model, purpose, texts)
	if err != nil {
		return nil, err
	}
	if err := checkCount(e.provider.Name(), len(vectors), len(texts)); err != nil {
		return nil, err
	}
	return vectors, nil
}

func (e *DenseEmbedder) checkDimension(vectors [][]float64) error {
	for i, v := range vectors {
		if len(v) != e.dimension {
			return fmt.Errorf("%w: %s returned %d dimensions for item %d, want %d",
				ErrModelUnavailable, e.model, len(v), i, e.dimension)
		}
	}
	return nil
}
