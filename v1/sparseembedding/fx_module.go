package sparseembedding

import "go.uber.org/fx"

// FXModule provides a *BM25 built from the *Config in the container.
var FXModule = fx.Module("sparseembedding",
	fx.Provide(NewBM25),
)
