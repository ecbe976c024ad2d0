package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// InferenceProvider talks to an OpenAI-compatible /embeddings endpoint
// (vLLM, text-embeddings-inference, OpenAI). Corpus and query texts are
// embedded the same way.
type InferenceProvider struct {
	httpTransport
}

func newTransport(cfg *Config) httpTransport {
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return httpTransport{
		// Remove trailing slash if user added it.
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewInferenceProvider builds a provider for cfg.Endpoint.
func NewInferenceProvider(cfg *Config) (*InferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing EMBEDDING_ENDPOINT")
	}
	return &InferenceProvider{httpTransport: newTransport(cfg)}, nil
}

func (p *InferenceProvider) Name() string { return ProviderInference }

// Create generates embeddings for the given texts using the specified model.
func (p *InferenceProvider) Create(ctx context.Context, model string, _ Purpose, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := map[string]any{
		"model": model,
		"input": texts,
	}

	var parsed struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}

	if err := p.postJSON(ctx, "/embeddings", reqBody, &parsed); err != nil {
		return nil, err
	}
	if err := checkCount(p.Name(), len(parsed.Data), len(texts)); err != nil {
		return nil, err
	}

	// The API reports each item's input position; honour it rather than the
	// array order.
	out := make([][]float64, len(texts))
	for i, d := range parsed.Data {
		idx := d.Index
		if idx < 0 || idx >= len(out) || out[idx] != nil {
			idx = i
		}
		out[idx] = d.Embedding
	}
	return out, nil
}

// SemanticProvider talks to the Aleph Alpha semantic embedding endpoints.
// Documents and queries use the asymmetric "document" and "query"
// representations.
type SemanticProvider struct {
	httpTransport
	normalize bool
}

// NewSemanticProvider builds a provider for cfg.Endpoint.
func NewSemanticProvider(cfg *Config) (*SemanticProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("semantic: missing EMBEDDING_ENDPOINT")
	}
	return &SemanticProvider{httpTransport: newTransport(cfg), normalize: true}, nil
}

func (p *SemanticProvider) Name() string { return ProviderSemantic }

// Create embeds all texts with one /batch_semantic_embed call.
func (p *SemanticProvider) Create(ctx context.Context, model string, purpose Purpose, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := map[string]any{
		"model":          model,
		"prompts":        texts,
		"representation": representation(purpose),
		"normalize":      p.normalize,
	}

	var parsed struct {
		Embeddings [][]float64 `json:"embeddings"`
	}
	if err := p.postJSON(ctx, "/batch_semantic_embed", reqBody, &parsed); err != nil {
		return nil, err
	}
	if err := checkCount(p.Name(), len(parsed.Embeddings), len(texts)); err != nil {
		return nil, err
	}
	return parsed.Embeddings, nil
}

func representation(purpose Purpose) string {
	if purpose == PurposeQuery {
		return "query"
	}
	return "document"
}
