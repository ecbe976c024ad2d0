package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

func vectorOf(dim int, seed float64) []float64 {
	v := make([]float64, dim)
	for i := range v {
		v[i] = seed + float64(i)/10
	}
	return v
}

// openAIServer answers /embeddings with vectors of dim, one per input.
func openAIServer(t *testing.T, dim int, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Model != "test-model" {
			http.Error(w, "model not found", http.StatusNotFound)
			return
		}

		type item struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		}
		data := make([]item, len(req.Input))
		// reverse the array order; Index keeps the mapping
		for i := range req.Input {
			j := len(req.Input) - 1 - i
			data[i] = item{Index: j, Embedding: vectorOf(dim, float64(len(req.Input[j])))}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(endpoint string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "secret"
	cfg.Model = "test-model"
	cfg.Dimension = 4
	cfg.BatchSize = 2
	return cfg
}

func TestDenseEmbedder_EmbedCorpus(t *testing.T) {
	var calls atomic.Int32
	srv := openAIServer(t, 4, &calls)

	e, err := NewDenseEmbedder(testConfig(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, vectordb.ModeDense, e.Mode())
	assert.Equal(t, "test-model", e.Model())

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vectors, err := e.EmbedCorpus(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	for i, v := range vectors {
		assert.Equal(t, vectordb.ModeDense, v.Mode())
		assert.Len(t, v.Dense, 4)
		assert.InDelta(t, float64(len(texts[i])), v.Dense[0], 1e-6)
	}

	// one warmup call plus three batches of at most two texts
	assert.Equal(t, int32(4), calls.Load())
}

func TestDenseEmbedder_EmbedQueryLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	srv := openAIServer(t, 4, &calls)

	e, err := NewDenseEmbedder(testConfig(srv.URL))
	require.NoError(t, err)

	for range 3 {
		v, err := e.EmbedQuery(context.Background(), "close dialog")
		require.NoError(t, err)
		assert.Len(t, v.Dense, 4)
	}
	assert.Equal(t, int32(4), calls.Load())
}

func TestDenseEmbedder_ModelUnavailable(t *testing.T) {
	srv := openAIServer(t, 4, nil)

	t.Run("unknown model", func(t *testing.T) {
		cfg := testConfig(srv.URL)
		cfg.Model = "missing"
		e, err := NewDenseEmbedder(cfg)
		require.NoError(t, err)

		err = e.Load(context.Background())
		assert.ErrorIs(t, err, ErrModelUnavailable)
		assert.True(t, IsModelUnavailable(err))
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		cfg := testConfig(srv.URL)
		cfg.Dimension = 8
		e, err := NewDenseEmbedder(cfg)
		require.NoError(t, err)

		_, err = e.EmbedQuery(context.Background(), "x")
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("unreachable", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		url := dead.URL
		dead.Close()

		e, err := NewDenseEmbedder(testConfig(url))
		require.NoError(t, err)
		_, err = e.EmbedCorpus(context.Background(), []string{"x"})
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})
}

func TestPostJSON_ServerErrorIsPerRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, err := NewInferenceProvider(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = p.Create(context.Background(), "test-model", PurposeDocument, []string{"x"})
	assert.ErrorIs(t, err, ErrEmbeddingFailed)
	assert.NotErrorIs(t, err, ErrModelUnavailable)
}

func TestPostJSON_PropagatesTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	traceID := trace.TraceID{0x0a, 0x0b, 0x0c, 0x0d, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     trace.SpanID{1, 2, 3, 4, 5, 6, 7, 8},
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	ctx := trace.ContextWithRemoteSpanContext(context.Background(), sc)

	var header atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header.Store(r.Header.Get("traceparent"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": vectorOf(4, 1)}},
		})
	}))
	defer srv.Close()

	p, err := NewInferenceProvider(testConfig(srv.URL))
	require.NoError(t, err)
	_, err = p.Create(ctx, "test-model", PurposeQuery, []string{"x"})
	require.NoError(t, err)

	got, _ := header.Load().(string)
	assert.Contains(t, got, traceID.String())
}

func TestSemanticProvider_Representation(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/batch_semantic_embed", r.URL.Path)
		var req struct {
			Prompts        []string `json:"prompts"`
			Representation string   `json:"representation"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = append(seen, req.Representation)

		out := make([][]float64, len(req.Prompts))
		for i := range out {
			out[i] = vectorOf(4, 1)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": out})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Provider = ProviderSemantic
	e, err := NewDenseEmbedder(cfg)
	require.NoError(t, err)

	_, err = e.EmbedCorpus(context.Background(), []string{"doc"})
	require.NoError(t, err)
	_, err = e.EmbedQuery(context.Background(), "query")
	require.NoError(t, err)

	// warmup, corpus, query
	assert.Equal(t, []string{"query", "document", "query"}, seen)
}

func TestOllamaProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)
		var req struct {
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		out := make([][]float64, len(req.Input))
		for i := range out {
			out[i] = vectorOf(3, float64(i))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": out})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Provider = ProviderOllama
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, p.Name())

	vectors, err := p.Create(context.Background(), "nomic-embed-text", PurposeDocument, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.InDelta(t, 1.0, vectors[1][0], 1e-9)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Provider = "grpc"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Dimension = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Endpoint = ""
	assert.Error(t, cfg.Validate())
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("EMBEDDING_PROVIDER", ProviderOllama)
	t.Setenv("EMBEDDING_ENDPOINT", "http://ollama:11434")
	t.Setenv("EMBEDDING_MODEL", "nomic-embed-text")
	t.Setenv("EMBEDDING_DIMENSION", "768")

	cfg := NewConfig()
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "http://ollama:11434", cfg.Endpoint)
	assert.Equal(t, "nomic-embed-text", cfg.Model)
	assert.Equal(t, 768, cfg.Dimension)
}

func TestSetFor(t *testing.T) {
	dense := NewDenseEmbedderWithProvider(nil, DefaultConfig())
	set := Set{Dense: dense}

	got, err := set.For(vectordb.ModeDense)
	require.NoError(t, err)
	assert.Same(t, dense, got)

	_, err = set.For(vectordb.ModeSparse)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}
