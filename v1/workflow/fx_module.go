package workflow

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vecsearch/v1/embedding"
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// FXModule provides *Service. It needs a vectordb.Store, an embedding.Set,
// a workflow.Config and a Logger in the container; a Recorder and a Tracer
// are used when present.
var FXModule = fx.Module("workflow",
	fx.Provide(
		NewServiceWithDI,
	),
)

// ServiceParams groups the dependencies of NewServiceWithDI.
type ServiceParams struct {
	fx.In

	Store     vectordb.Store
	Embedders embedding.Set
	Config    Config
	Logger    Logger
	Metrics   Recorder `optional:"true"`
	Tracer    Tracer   `optional:"true"`
}

// NewServiceWithDI builds the Service from injected dependencies.
func NewServiceWithDI(p ServiceParams) (*Service, error) {
	return NewService(p.Store, p.Embedders, p.Config,
		WithLogger(p.Logger),
		WithMetrics(p.Metrics),
		WithTracer(p.Tracer),
	)
}
