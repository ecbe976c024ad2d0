package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
	assert.Error(t, Config{Level: "verbose"}.Validate())
}

func TestConfigApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("ZAP_LOGGER_LEVEL", "debug")
	t.Setenv("LOGGER_ENABLE_TRACING", "true")
	cfg.ApplyEnv()
	assert.Equal(t, Debug, cfg.Level)
	assert.Equal(t, "vecsearch", cfg.ServiceName)
	assert.True(t, cfg.EnableTracing)
}

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewFromZap(zap.New(core), false)

	boom := errors.New("boom")
	log.Warn("fell back", boom, map[string]interface{}{"collection": "cmds"})
	log.Debug("probe", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "cmds", ctx["collection"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "probe", entries[1].Message)
}

func TestLoggerTraceFields(t *testing.T) {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	core, logs := observer.New(zapcore.InfoLevel)
	NewFromZap(zap.New(core), true).InfoWithContext(ctx, "traced", nil)
	NewFromZap(zap.New(core), false).InfoWithContext(ctx, "untraced", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, sc.TraceID().String(), entries[0].ContextMap()["trace_id"])
	assert.Equal(t, sc.SpanID().String(), entries[0].ContextMap()["span_id"])
	assert.NotContains(t, entries[1].ContextMap(), "trace_id")
}

func TestFXModule(t *testing.T) {
	var log *Logger
	app := fxtest.New(t,
		fx.Supply(Config{Level: Error, ServiceName: "test"}),
		FXModule,
		fx.Populate(&log),
	)
	app.RequireStart()
	require.NotNil(t, log)
	assert.False(t, log.Zap.Core().Enabled(zapcore.InfoLevel))
	app.RequireStop()
}
