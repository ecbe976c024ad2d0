package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// FXModule provides *Logger from a logger.Config in the container and
// flushes it on stop.
//
//	app := fx.New(
//	    fx.Supply(logger.Config{Level: "info", ServiceName: "vecsearch"}),
//	    logger.FXModule,
//	    fx.WithLogger(logger.FxEventLogger),
//	)
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle syncs the zap logger when the application stops.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stderr returns EINVAL on Sync for some terminals; nothing is lost.
			_ = client.Zap.Sync()
			return nil
		},
	})
}

// FxEventLogger routes fx's own lifecycle events into the zap logger.
func FxEventLogger(client *Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: client.Zap}
}
