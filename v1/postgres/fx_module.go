package postgres

import (
	"context"

	"go.uber.org/fx"
)

// FXModule connects the record-source pool at construction time and closes
// it on stop. Consumers depend on Client; *Postgres is provided too so the
// lifecycle hook can reach the pool.
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgresClientWithDI,
		fx.Annotate(ProvideClient, fx.As(new(Client))),
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

func ProvideClient(pg *Postgres) Client {
	return pg
}

type PostgresParams struct {
	fx.In

	Config Config
}

// NewPostgresClientWithDI connects with the injected Config. The initial
// ping is bounded by ConnectionDetails.ConnectTimeout.
func NewPostgresClientWithDI(p PostgresParams) (*Postgres, error) {
	return NewPostgres(context.Background(), p.Config)
}

func RegisterPostgresLifecycle(lc fx.Lifecycle, pg *Postgres) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pg.Close()
			return nil
		},
	})
}
