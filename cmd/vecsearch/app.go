package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap/zapcore"

	"github.com/Aleph-Alpha/vecsearch/v1/config"
	"github.com/Aleph-Alpha/vecsearch/v1/embedding"
	"github.com/Aleph-Alpha/vecsearch/v1/logger"
	"github.com/Aleph-Alpha/vecsearch/v1/metrics"
	"github.com/Aleph-Alpha/vecsearch/v1/minio"
	"github.com/Aleph-Alpha/vecsearch/v1/postgres"
	"github.com/Aleph-Alpha/vecsearch/v1/qdrant"
	"github.com/Aleph-Alpha/vecsearch/v1/sparseembedding"
	"github.com/Aleph-Alpha/vecsearch/v1/tracer"
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
	"github.com/Aleph-Alpha/vecsearch/v1/workflow"
)

const stopTimeout = 15 * time.Second

// app carries state shared by every command run in one process. The
// in-memory store lives here so that --store memory keeps its points
// between commands executed on the same root command.
type app struct {
	memory *vectordb.MemoryStore
}

func newApp() *app {
	return &app{memory: vectordb.NewMemoryStore()}
}

// deps is what a command gets out of the fx graph. The record sources are
// only present when the command asked for them.
type deps struct {
	fx.In

	Service   *workflow.Service
	Store     vectordb.Store
	Embedders embedding.Set
	Logger    *logger.Logger
	Postgres  postgres.Client `optional:"true"`
	Objects   minio.Client    `optional:"true"`
}

// loadConfig builds the configuration from --config, the environment and
// the global flags.
func loadConfig(cmd *cobra.Command, overrides ...func(*config.Config)) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	store, _ := cmd.Flags().GetString("store")
	level, _ := cmd.Flags().GetString("log-level")

	flags := func(c *config.Config) {
		if store != "" {
			c.Store = store
		}
		if level != "" {
			c.Logger.Level = level
		}
	}

	cfg, err := config.Load(path, append([]func(*config.Config){flags}, overrides...)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	return cfg, nil
}

// options assembles the fx graph for cfg. extra carries the record source
// modules a command needs.
func (a *app) options(cfg *config.Config, extra ...fx.Option) []fx.Option {
	opts := []fx.Option{
		cfg.Supply(),
		logger.FXModule,
		fxEventLogger(cfg),
		fx.Provide(
			fx.Annotate(
				func(l *logger.Logger) *logger.Logger { return l },
				fx.As(new(workflow.Logger)),
				fx.As(new(metrics.Logger)),
				fx.As(new(tracer.Logger)),
				fx.As(new(qdrant.Logger)),
				fx.As(new(minio.Logger)),
			),
			fx.Annotate(
				func(m *metrics.Metrics) *metrics.Metrics { return m },
				fx.As(new(workflow.Recorder)),
			),
			fx.Annotate(
				func(t *tracer.Tracer) *tracer.Tracer { return t },
				fx.As(new(workflow.Tracer)),
			),
			func(d *embedding.DenseEmbedder, s *sparseembedding.BM25) embedding.Set {
				return embedding.Set{Dense: d, Sparse: s}
			},
		),
		metrics.FXModule,
		tracer.FXModule,
		embedding.FXModule,
		sparseembedding.FXModule,
		a.storeModule(cfg),
		workflow.FXModule,
	}
	return append(opts, extra...)
}

func (a *app) storeModule(cfg *config.Config) fx.Option {
	if cfg.Store == config.StoreMemory {
		return fx.Provide(func() vectordb.Store { return a.memory })
	}
	return qdrant.FXModule
}

// fxEventLogger keeps fx's own startup chatter out of the output unless
// debug logging was asked for.
func fxEventLogger(cfg *config.Config) fx.Option {
	if level, _ := logger.ParseLevel(cfg.Logger.Level); level == zapcore.DebugLevel {
		return fx.WithLogger(logger.FxEventLogger)
	}
	return fx.NopLogger
}

// run builds and starts the application, hands its dependencies to fn and
// stops the application again, flushing metrics and spans.
func (a *app) run(ctx context.Context, cfg *config.Config, fn func(context.Context, deps) error, extra ...fx.Option) (err error) {
	var d deps
	fxApp := fx.New(append(a.options(cfg, extra...), fx.Invoke(func(in deps) { d = in }))...)
	if err := fxApp.Err(); err != nil {
		return err
	}
	if err := fxApp.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if stopErr := fxApp.Stop(stopCtx); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	return fn(ctx, d)
}
