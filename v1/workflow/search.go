package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// SearchOption adjusts a single Search call.
type SearchOption func(*searchOptions)

type searchOptions struct {
	filter *vectordb.Filter
}

// WithFilter restricts hits to points whose payload matches f.
func WithFilter(f *vectordb.Filter) SearchOption {
	return func(o *searchOptions) {
		o.filter = f
	}
}

// Search embeds query for mode and returns up to limit hits from
// collection in the store's order.
//
// A sparse search against a collection without a sparse slot is answered
// with dense vectors instead. The switch applies to this call only and is
// reported through SearchResponse.FallbackOccurred, a warning log entry and
// the search_fallbacks_total metric. Errors are never partial: any failure
// fails the call.
func (s *Service) Search(ctx context.Context, query string, collection string, mode vectordb.Mode, limit int, opts ...SearchOption) (*SearchResponse, error) {
	start := time.Now()
	defer s.metrics.ObserveDuration(start, "search")

	ctx, span := s.tracer.StartSpan(ctx, "workflow.search")
	defer span.End()
	s.tracer.SetAttributes(span, map[string]interface{}{
		"collection": collection,
		"mode":       string(mode),
		"limit":      limit,
	})

	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}

	resp, err := s.search(ctx, query, collection, mode, limit, o.filter)
	if err != nil {
		s.tracer.RecordErrorOnSpan(span, err)
		return nil, err
	}

	s.tracer.SetAttributes(span, map[string]interface{}{
		"used_mode": string(resp.UsedMode),
		"fallback":  resp.FallbackOccurred,
		"results":   len(resp.Results),
	})
	s.metrics.SearchServed(string(resp.RequestedMode), string(resp.UsedMode))
	return resp, nil
}

func (s *Service) search(ctx context.Context, query string, collection string, mode vectordb.Mode, limit int, filter *vectordb.Filter) (*SearchResponse, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	if mode != vectordb.ModeDense && mode != vectordb.ModeSparse {
		return nil, fmt.Errorf("%w: unknown mode %q", vectordb.ErrInvalidArgument, mode)
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	capability, err := s.Probe(ctx, collection)
	if err != nil {
		return nil, err
	}

	resp := &SearchResponse{
		Collection:    collection,
		Query:         query,
		RequestedMode: mode,
		UsedMode:      mode,
		Results:       []ScoredRecord{},
	}

	if mode == vectordb.ModeSparse && !capability.SupportsSparse {
		resp.UsedMode = vectordb.ModeDense
		resp.FallbackOccurred = true
		s.metrics.SearchFellBack(collection)
		s.logger.Warn("collection has no sparse vector field, searching with dense vectors", nil, map[string]interface{}{
			"collection":     collection,
			"requested_mode": string(mode),
			"used_mode":      string(resp.UsedMode),
		})
	}

	embedder, err := s.embedders.For(resp.UsedMode)
	if err != nil {
		return nil, err
	}
	if err := checkCapability(collection, capability, resp.UsedMode, embedder); err != nil {
		return nil, err
	}

	vector, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if vector.Sparse != nil && vector.Sparse.Len() == 0 {
		// nothing to match, e.g. a query made only of stopwords
		s.logger.Debug("query has no indexable terms", nil, map[string]interface{}{
			"collection": collection,
		})
		return resp, nil
	}

	hits, err := s.store.Search(ctx, vectordb.SearchRequest{
		CollectionName: collection,
		Vector:         vector,
		Using:          field(capability, resp.UsedMode),
		TopK:           limit,
		Filter:         filter,
	})
	if err != nil {
		return nil, err
	}

	for _, hit := range hits {
		resp.Results = append(resp.Results, ScoredRecord{
			ID:     hit.ID,
			Score:  hit.Score,
			Record: hit.Payload,
		})
	}
	return resp, nil
}
