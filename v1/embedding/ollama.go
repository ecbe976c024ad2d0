package embedding

import (
	"context"
	"fmt"
)

// OllamaProvider generates embeddings with a local Ollama server.
type OllamaProvider struct {
	httpTransport
}

// NewOllamaProvider builds a provider for cfg.Endpoint, typically
// http://localhost:11434.
func NewOllamaProvider(cfg *Config) (*OllamaProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("ollama: missing EMBEDDING_ENDPOINT")
	}
	return &OllamaProvider{httpTransport: newTransport(cfg)}, nil
}

func (p *OllamaProvider) Name() string { return ProviderOllama }

// Create calls /api/embed, which accepts a list of inputs.
func (p *OllamaProvider) Create(ctx context.Context, model string, _ Purpose, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := map[string]any{
		"model": model,
		"input": texts,
	}

	var parsed struct {
		Embeddings [][]float64 `json:"embeddings"`
	}
	if err := p.postJSON(ctx, "/api/embed", reqBody, &parsed); err != nil {
		return nil, err
	}
	if err := checkCount(p.Name(), len(parsed.Embeddings), len(texts)); err != nil {
		return nil, err
	}
	return parsed.Embeddings, nil
}
