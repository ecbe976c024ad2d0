package workflow

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

const (
	DefaultBatchSize   = 64
	MaxBatchSize       = 1024
	DefaultSparseField = "text"
)

// Config tunes ingestion and the collections the workflow creates.
type Config struct {
	// BatchSize is the number of points per upsert. Clamped to [1, 1024].
	BatchSize int `yaml:"batch_size" envconfig:"WORKFLOW_BATCH_SIZE"`

	// SparseField names the sparse slot of collections created for sparse
	// ingestion.
	SparseField string `yaml:"sparse_field" envconfig:"WORKFLOW_SPARSE_FIELD"`

	// SparseIDF enables the store-side IDF modifier on created sparse slots.
	// BM25 corpus weights assume it.
	SparseIDF bool `yaml:"sparse_idf" envconfig:"WORKFLOW_SPARSE_IDF"`

	// SparseOnDisk keeps the sparse index of created collections on disk.
	SparseOnDisk bool `yaml:"sparse_on_disk" envconfig:"WORKFLOW_SPARSE_ON_DISK"`

	// DenseField names the dense slot of created dense collections. Empty
	// creates the unnamed default vector.
	DenseField string `yaml:"dense_field" envconfig:"WORKFLOW_DENSE_FIELD"`

	// Distance is the metric of created dense collections.
	Distance string `yaml:"distance" envconfig:"WORKFLOW_DISTANCE"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		BatchSize:    DefaultBatchSize,
		SparseField:  DefaultSparseField,
		SparseIDF:    true,
		SparseOnDisk: true,
		Distance:     vectordb.DistanceCosine,
	}
}

// ApplyEnv overrides fields from the WORKFLOW_* variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("WORKFLOW_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchSize = n
		}
	}
	if v := os.Getenv("WORKFLOW_SPARSE_FIELD"); v != "" {
		c.SparseField = v
	}
	if v := os.Getenv("WORKFLOW_SPARSE_IDF"); v != "" {
		c.SparseIDF = v == "true" || v == "1"
	}
	if v := os.Getenv("WORKFLOW_SPARSE_ON_DISK"); v != "" {
		c.SparseOnDisk = v == "true" || v == "1"
	}
	if v := os.Getenv("WORKFLOW_DENSE_FIELD"); v != "" {
		c.DenseField = v
	}
	if v := os.Getenv("WORKFLOW_DISTANCE"); v != "" {
		c.Distance = v
	}
}

// Validate checks the settings that clamping cannot repair.
func (c Config) Validate() error {
	switch c.Distance {
	case "", vectordb.DistanceCosine, vectordb.DistanceDot, vectordb.DistanceEuclid, vectordb.DistanceManhattan:
	default:
		return fmt.Errorf("%w: unknown distance %q", vectordb.ErrInvalidArgument, c.Distance)
	}
	return nil
}

// normalized fills defaults and clamps the batch size.
func (c Config) normalized() Config {
	switch {
	case c.BatchSize <= 0:
		c.BatchSize = DefaultBatchSize
	case c.BatchSize > MaxBatchSize:
		c.BatchSize = MaxBatchSize
	}
	if c.SparseField == "" {
		c.SparseField = DefaultSparseField
	}
	if c.Distance == "" {
		c.Distance = vectordb.DistanceCosine
	}
	return c
}
