package config

import "go.uber.org/fx"

// Supply puts every section of c into the fx container, in the form each
// package's FXModule asks for.
func (c *Config) Supply() fx.Option {
	return fx.Supply(
		&c.Qdrant,
		&c.Embedding,
		&c.Sparse,
		c.Postgres,
		c.Minio,
		c.Logger,
		c.Metrics,
		c.Tracer,
		c.Workflow,
	)
}
