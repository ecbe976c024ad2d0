package embedding

import "errors"

var (
	// ErrModelUnavailable means the model cannot be loaded or reached at all:
	// unknown model, unreachable provider, rejected credentials or a model
	// whose vectors do not have the configured dimension. It is fatal for a
	// run and never retried.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrEmbeddingFailed means a single request failed (rejected input,
	// provider error) while the model itself is usable.
	ErrEmbeddingFailed = errors.New("embedding failed")
)

// IsModelUnavailable reports whether err is or wraps ErrModelUnavailable.
func IsModelUnavailable(err error) bool {
	return errors.Is(err, ErrModelUnavailable)
}
