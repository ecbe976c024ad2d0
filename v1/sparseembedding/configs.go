package sparseembedding

import (
	"fmt"
	"os"
)

// ModelBM25 is the only model name this package serves. It matches the
// name Qdrant's tooling uses for the same weighting.
const ModelBM25 = "Qdrant/bm25"

// Config holds BM25 parameters.
type Config struct {
	// Model must be ModelBM25.
	Model string `yaml:"model"`

	// Language selects the Snowball stemmer and stopword list.
	Language string `yaml:"language"`

	// K1 and B are the BM25 saturation and length-normalisation constants.
	K1 float64 `yaml:"k1"`
	B  float64 `yaml:"b"`

	// AvgLen is the assumed average document length in tokens after
	// stopword removal and stemming.
	AvgLen float64 `yaml:"avg_len"`

	// TokenMaxLength drops longer tokens (hashes, base64 blobs).
	TokenMaxLength int `yaml:"token_max_length"`
}

// DefaultConfig returns the standard BM25 parameters for English.
func DefaultConfig() *Config {
	return &Config{
		Model:          ModelBM25,
		Language:       "english",
		K1:             1.2,
		B:              0.75,
		AvgLen:         256,
		TokenMaxLength: 40,
	}
}

// NewConfig reads SPARSE_MODEL and SPARSE_LANGUAGE on top of DefaultConfig.
func NewConfig() *Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SPARSE_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("SPARSE_LANGUAGE"); v != "" {
		c.Language = v
	}
}

// Validate checks the numeric parameters. Model and language are checked
// when the model loads, where they surface as ErrModelUnavailable.
func (c *Config) Validate() error {
	if c.K1 <= 0 {
		return fmt.Errorf("sparseembedding: k1 must be positive, got %v", c.K1)
	}
	if c.B < 0 || c.B > 1 {
		return fmt.Errorf("sparseembedding: b must be within [0, 1], got %v", c.B)
	}
	if c.AvgLen <= 0 {
		return fmt.Errorf("sparseembedding: avg_len must be positive, got %v", c.AvgLen)
	}
	return nil
}
