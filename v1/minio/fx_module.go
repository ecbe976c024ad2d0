package minio

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *MinioClient and Client from the Config in the container
// and logs shutdown.
var FXModule = fx.Module("minio",
	fx.Provide(
		NewClientWithDI,
		fx.Annotate(
			func(m *MinioClient) *MinioClient { return m },
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterLifecycle),
)

// MinioParams groups the dependencies of NewClientWithDI.
type MinioParams struct {
	fx.In

	Config Config
	Logger Logger `optional:"true"`
}

// NewClientWithDI builds the client and attaches the injected logger.
func NewClientWithDI(p MinioParams) (*MinioClient, error) {
	client, err := NewClient(p.Config)
	if err != nil {
		return nil, err
	}
	if p.Logger != nil {
		client.WithLogger(p.Logger)
	}
	return client, nil
}

// RegisterLifecycle shuts the client down when the application stops.
func RegisterLifecycle(lc fx.Lifecycle, mi *MinioClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			mi.GracefulShutdown()
			return nil
		},
	})
}
