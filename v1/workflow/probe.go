package workflow

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/vecsearch/v1/embedding"
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// Probe reports what kinds of vectors collection can hold. It performs one
// read and never mutates the store. A missing collection is
// vectordb.ErrCollectionNotFound, not "no sparse support".
func (s *Service) Probe(ctx context.Context, collection string) (vectordb.Capability, error) {
	ctx, span := s.tracer.StartSpan(ctx, "workflow.probe")
	defer span.End()
	s.tracer.SetAttributes(span, map[string]interface{}{"collection": collection})

	if collection == "" {
		err := fmt.Errorf("%w: collection name is required", vectordb.ErrInvalidArgument)
		s.tracer.RecordErrorOnSpan(span, err)
		return vectordb.Capability{}, err
	}

	info, err := s.store.GetCollection(ctx, collection)
	if err != nil {
		s.tracer.RecordErrorOnSpan(span, err)
		return vectordb.Capability{}, err
	}

	capability := info.Capability()
	s.tracer.SetAttributes(span, map[string]interface{}{
		"supports_sparse": capability.SupportsSparse,
		"supports_dense":  capability.SupportsDense,
	})
	s.logger.Debug("collection probed", nil, map[string]interface{}{
		"collection":      collection,
		"supports_sparse": capability.SupportsSparse,
		"sparse_field":    capability.SparseField,
		"supports_dense":  capability.SupportsDense,
		"dense_size":      capability.DenseSize,
	})
	return capability, nil
}

// checkCapability rejects writing or querying mode vectors from e against a
// collection with capability c.
func checkCapability(collection string, c vectordb.Capability, mode vectordb.Mode, e embedding.Embedder) error {
	switch mode {
	case vectordb.ModeSparse:
		if !c.SupportsSparse {
			return fmt.Errorf("%w: collection %q has no sparse vector field", ErrCapabilityMismatch, collection)
		}
	case vectordb.ModeDense:
		if !c.SupportsDense {
			return fmt.Errorf("%w: collection %q has no dense vector", ErrCapabilityMismatch, collection)
		}
		if dim := e.Dimension(); c.DenseSize != 0 && dim != 0 && c.DenseSize != dim {
			return fmt.Errorf("%w: collection %q stores %d-dimensional vectors, model %s produces %d",
				ErrCapabilityMismatch, collection, c.DenseSize, e.Model(), dim)
		}
	}
	return nil
}

// field returns the vector slot used for mode in a collection with
// capability c.
func field(c vectordb.Capability, mode vectordb.Mode) string {
	if mode == vectordb.ModeSparse {
		return c.SparseField
	}
	return c.DenseField
}
