package qdrant

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// FXModule provides a connected *QdrantClient and the same client as a
// vectordb.Store, and closes the gRPC connection when the app stops.
//
// It needs a *Config and a Logger in the container:
//
//	app := fx.New(
//	    fx.Supply(cfg.Qdrant),
//	    fx.Provide(fx.Annotate(func(l *logger.Logger) *logger.Logger { return l }, fx.As(new(qdrant.Logger)))),
//	    qdrant.FXModule,
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClient,
		AsStore,
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams are the constructor inputs for NewQdrantClient.
type QdrantParams struct {
	fx.In
	Config *Config
	Logger Logger
}

// AsStore returns c as a vectordb.Store.
func AsStore(c *QdrantClient) vectordb.Store {
	return c
}

// RegisterQdrantLifecycle closes the client once on stop.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	var once sync.Once
	lc.Append(fx.StopHook(func(context.Context) error {
		var err error
		once.Do(func() { err = client.Close() })
		return err
	}))
}
