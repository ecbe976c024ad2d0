package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a wrapper around Uber's Zap logger.
type Logger struct {
	// Zap is the underlying zap.Logger instance. It is exposed for fx's
	// event logger and for callers that need zap-specific functionality.
	Zap *zap.Logger

	// tracingEnabled adds trace and span ids to the *WithContext methods.
	tracingEnabled bool
}

// NewLoggerClient builds a JSON logger writing to stderr.
//
// Entries carry ISO8601 timestamps, capitalised levels, the caller and the
// pid and service fields. An unknown level falls back to info; use
// Config.Validate to reject it instead.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Debug, ServiceName: "vecsearch"})
//	log.Info("ingest started", nil, map[string]interface{}{"collection": "cmds"})
func NewLoggerClient(cfg Config) *Logger {
	level, _ := ParseLevel(cfg.Level)

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.DisableStacktrace = true
	zc.EncoderConfig = encoderConfig()
	zc.InitialFields = map[string]interface{}{
		"pid":     os.Getpid(),
		"service": cfg.ServiceName,
	}

	z, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		log.Fatalf("logger: build zap logger: %v", err)
	}
	return &Logger{Zap: z, tracingEnabled: cfg.EnableTracing}
}

func encoderConfig() zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.EncodeDuration = zapcore.MillisDurationEncoder
	return ec
}

// NewFromZap wraps an existing zap logger, typically zap.NewNop() or an
// observer core in tests.
func NewFromZap(z *zap.Logger, enableTracing bool) *Logger {
	return &Logger{Zap: z, tracingEnabled: enableTracing}
}
