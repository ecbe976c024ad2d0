// Package config assembles vecsearch's configuration at the process
// boundary.
//
// Values come from three layers, later ones winning: package defaults, an
// optional YAML file, and environment variables. Credentials (QDRANT_API_KEY,
// EMBEDDING_API_KEY, MINIO_SECRET_KEY, POSTGRES_DSN) are expected from the
// environment or a file outside the repository and never have defaults.
//
//	store: qdrant
//	qdrant:
//	  endpoint: localhost
//	  port: 6334
//	embedding:
//	  provider: inference
//	  endpoint: http://localhost:8080
//	  model: BAAI/bge-small-en-v1.5
//	  dimension: 384
//	workflow:
//	  batch_size: 64
//
// Command line flags are applied by the CLI after Load.
package config
