package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/vecsearch/v1/embedding"
	"github.com/Aleph-Alpha/vecsearch/v1/logger"
	"github.com/Aleph-Alpha/vecsearch/v1/metrics"
	"github.com/Aleph-Alpha/vecsearch/v1/minio"
	"github.com/Aleph-Alpha/vecsearch/v1/postgres"
	"github.com/Aleph-Alpha/vecsearch/v1/qdrant"
	"github.com/Aleph-Alpha/vecsearch/v1/sparseembedding"
	"github.com/Aleph-Alpha/vecsearch/v1/tracer"
	"github.com/Aleph-Alpha/vecsearch/v1/workflow"
)

// Store backends.
const (
	StoreQdrant = "qdrant"
	StoreMemory = "memory"
)

// Config is the whole process configuration. It is built once at startup
// from an optional YAML file and the environment, and handed to the
// packages that need a part of it.
type Config struct {
	// Store selects the vector store backend: qdrant or memory.
	Store string `yaml:"store"`

	Qdrant    qdrant.Config          `yaml:"qdrant"`
	Embedding embedding.Config       `yaml:"embedding"`
	Sparse    sparseembedding.Config `yaml:"sparse"`
	Postgres  postgres.Config        `yaml:"postgres"`
	Minio     minio.Config           `yaml:"minio"`
	Logger    logger.Config          `yaml:"logger"`
	Metrics   metrics.Config         `yaml:"metrics"`
	Tracer    tracer.Config          `yaml:"tracer"`
	Workflow  workflow.Config        `yaml:"workflow"`
}

// Default returns the configuration used when neither a file nor the
// environment says otherwise: a local Qdrant and a local inference server.
func Default() *Config {
	return &Config{
		Store:     StoreQdrant,
		Qdrant:    *qdrant.DefaultConfig(),
		Embedding: *embedding.DefaultConfig(),
		Sparse:    *sparseembedding.DefaultConfig(),
		Logger:    logger.DefaultConfig(),
		Metrics:   metrics.DefaultConfig(),
		Tracer:    tracer.DefaultConfig(),
		Workflow:  workflow.DefaultConfig(),
	}
}

// Load builds the configuration: defaults, then the YAML file at path when
// path is not empty, then environment overrides, then overrides (command
// line flags, in order). The result is validated.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		defer f.Close()
		if err := cfg.decode(f); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode merges YAML from r over cfg. Unknown keys are rejected so that a
// misspelt setting does not silently fall back to its default.
func (c *Config) decode(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv applies environment overrides for every package.
//
// Qdrant is configured either by QDRANT_URL (scheme, host and port in one)
// or by QDRANT_HOST and QDRANT_PORT; QDRANT_API_KEY, QDRANT_USE_TLS and
// QDRANT_TIMEOUT apply in both cases. VECSEARCH_STORE selects the backend.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("VECSEARCH_STORE"); v != "" {
		c.Store = v
	}
	if err := applyQdrantEnv(&c.Qdrant); err != nil {
		return err
	}
	c.Embedding.ApplyEnv()
	c.Sparse.ApplyEnv()
	c.Postgres.ApplyEnv()
	c.Minio.ApplyEnv()
	c.Logger.ApplyEnv()
	c.Metrics.ApplyEnv()
	c.Tracer.ApplyEnv()
	c.Workflow.ApplyEnv()
	return nil
}

func applyQdrantEnv(c *qdrant.Config) error {
	if v := os.Getenv("QDRANT_URL"); v != "" {
		if err := c.ApplyURL(v); err != nil {
			return err
		}
	}
	if v := os.Getenv("QDRANT_HOST"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("QDRANT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: QDRANT_PORT %q is not a number", v)
		}
		c.Port = port
	}
	if v := os.Getenv("QDRANT_API_KEY"); v != "" {
		c.ApiKey = v
	}
	if v := os.Getenv("QDRANT_USE_TLS"); v != "" {
		c.UseTLS = v == "true" || v == "1"
	}
	if v := os.Getenv("QDRANT_TIMEOUT"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("config: QDRANT_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

// parseDuration accepts Go durations ("45s") and plain seconds ("45").
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Validate checks every section that the selected store and sources use.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Store) {
	case StoreQdrant:
		if err := c.Qdrant.Validate(); err != nil {
			return err
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: unknown store %q (want %q or %q)", c.Store, StoreQdrant, StoreMemory)
	}
	c.Store = strings.ToLower(c.Store)

	if err := c.Embedding.Validate(); err != nil {
		return err
	}
	if err := c.Sparse.Validate(); err != nil {
		return err
	}
	if c.Minio.Enabled() {
		if err := c.Minio.Validate(); err != nil {
			return err
		}
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return c.Workflow.Validate()
}
