package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *Tracer and flushes pending spans on stop.
var FXModule = fx.Module("tracer",
	fx.Provide(NewClient),
	fx.Invoke(RegisterTracerLifecycle),
)

func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if t.tracer == nil {
				return nil
			}
			if t.exporting {
				t.logger.Info("flushing spans", nil)
			}
			return t.Shutdown(ctx)
		},
	})
}
