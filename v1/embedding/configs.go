package embedding

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderInference = "inference" // OpenAI-compatible POST /embeddings (vLLM, TEI, OpenAI)
	ProviderSemantic  = "semantic"  // Aleph Alpha POST /semantic_embed, asymmetric query/document
	ProviderOllama    = "ollama"    // Ollama POST /api/embed
)

const (
	DefaultModel     = "BAAI/bge-small-en-v1.5"
	DefaultDimension = 384
)

// EMBEDDING_ENDPOINT must point to the root of the inference service (no
// /embeddings appended). The providers append paths themselves, so callers
// only supply the host base URL.

type Config struct {
	// Provider selects the HTTP API dialect. Defaults to "inference".
	Provider string `yaml:"provider"`

	// Base URL of the inference service.
	Endpoint string `yaml:"endpoint"`

	// Bearer token. Optional for local providers.
	APIKey string `yaml:"api_key"`

	// Model identifier and the length of the vectors it produces.
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`

	// HTTPTimeout bounds a single provider request.
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// RequestsPerSecond paces provider calls. Zero means unlimited.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// BatchSize is the maximum number of texts per provider request.
	BatchSize int `yaml:"batch_size"`
}

// DefaultConfig returns a config for a local OpenAI-compatible server.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderInference,
		Endpoint:    "http://localhost:8080",
		Model:       DefaultModel,
		Dimension:   DefaultDimension,
		HTTPTimeout: 30 * time.Second,
		Burst:       1,
		BatchSize:   32,
	}
}

// NewConfig reads from environment variables on top of DefaultConfig.
func NewConfig() *Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields from EMBEDDING_* environment variables. Unset
// or unparsable values leave the field untouched.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("EMBEDDING_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("EMBEDDING_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("EMBEDDING_DIMENSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Dimension = n
		}
	}
	if v := os.Getenv("EMBEDDING_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("EMBEDDING_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.RequestsPerSecond = f
		}
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderInference, ProviderSemantic, ProviderOllama:
	default:
		return fmt.Errorf("embedding: unknown provider %q", c.Provider)
	}
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_MODEL")
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("embedding: dimension must be positive, got %d", c.Dimension)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("embedding: negative http timeout")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("embedding: negative requests per second")
	}
	return nil
}
