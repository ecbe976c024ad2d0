package embedding

import (
	"go.uber.org/fx"
)

// FXModule builds the dense embedder from the *Config in the container and
// releases its HTTP connections on stop. Nothing is fetched from the
// provider until the first Load.
var FXModule = fx.Module("embedding",
	fx.Provide(NewDenseEmbedder),
	fx.Invoke(RegisterEmbeddingLifecycle),
)

func RegisterEmbeddingLifecycle(lc fx.Lifecycle, e *DenseEmbedder) {
	lc.Append(fx.StopHook(e.Close))
}
