package workflow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Aleph-Alpha/vecsearch/v1/embedding"
	"github.com/Aleph-Alpha/vecsearch/v1/record"
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// pending is a record that has been rendered, identified and embedded and
// is waiting to be written.
type pending struct {
	index int
	rec   record.Record
	point vectordb.Point
}

// Ingest renders, embeds and upserts records into collection as mode
// vectors, creating the collection when it does not exist.
//
// Preparation failures are fatal and happen before any write: the embedder
// cannot be loaded (embedding.ErrModelUnavailable), the store cannot be
// reached (vectordb.ErrStoreUnavailable), or the collection exists without a
// slot for mode (ErrCapabilityMismatch). After that, failures are per
// record: they are listed in the report and the remaining records are still
// ingested. Only cancellation of ctx stops a run midway.
//
// Batches are written one after another, never concurrently. A rejected
// batch is retried point by point so the failure lands on the records that
// caused it.
func (s *Service) Ingest(ctx context.Context, records []record.Record, collection string, mode vectordb.Mode) (*IngestReport, error) {
	start := time.Now()
	defer s.metrics.ObserveDuration(start, "ingest")

	ctx, span := s.tracer.StartSpan(ctx, "workflow.ingest")
	defer span.End()
	s.tracer.SetAttributes(span, map[string]interface{}{
		"collection": collection,
		"mode":       string(mode),
		"records":    len(records),
	})

	report, err := s.ingest(ctx, records, collection, mode)
	if err != nil {
		s.tracer.RecordErrorOnSpan(span, err)
		s.logger.Error("ingestion aborted", err, map[string]interface{}{
			"collection": collection,
			"mode":       string(mode),
			"kind":       KindOf(err),
		})
		return nil, err
	}

	s.tracer.SetAttributes(span, map[string]interface{}{
		"upserted": report.Upserted,
		"failed":   report.Failed,
		"status":   string(report.Status),
	})
	s.logger.Info("ingestion finished", nil, map[string]interface{}{
		"collection": collection,
		"mode":       string(mode),
		"created":    report.Created,
		"total":      report.Total,
		"upserted":   report.Upserted,
		"failed":     report.Failed,
		"status":     string(report.Status),
		"duration":   time.Since(start).String(),
	})
	return report, nil
}

func (s *Service) ingest(ctx context.Context, records []record.Record, collection string, mode vectordb.Mode) (*IngestReport, error) {
	if collection == "" {
		return nil, fmt.Errorf("%w: collection name is required", vectordb.ErrInvalidArgument)
	}
	embedder, err := s.embedders.For(mode)
	if err != nil {
		return nil, err
	}
	if err := embedder.Load(ctx); err != nil {
		return nil, err
	}

	slot, created, err := s.prepareCollection(ctx, collection, mode, embedder)
	if err != nil {
		return nil, err
	}

	report := &IngestReport{
		Collection: collection,
		Mode:       mode,
		Created:    created,
		Total:      len(records),
		Failures:   []RecordFailure{},
	}

	for lo := 0; lo < len(records); lo += s.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hi := min(lo+s.cfg.BatchSize, len(records))

		batch := s.preparePoints(ctx, report, records[lo:hi], lo, slot, embedder)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.writeBatch(ctx, report, collection, batch); err != nil {
			return nil, err
		}
	}

	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].Index < report.Failures[j].Index
	})
	report.Failed = len(report.Failures)
	report.Status = statusOf(report.Total, report.Upserted)
	return report, nil
}

// prepareCollection probes collection and creates it when missing. It
// returns the vector slot to write and whether the collection was created.
func (s *Service) prepareCollection(ctx context.Context, collection string, mode vectordb.Mode, embedder embedding.Embedder) (string, bool, error) {
	capability, err := s.Probe(ctx, collection)
	switch {
	case err == nil:
		if err := checkCapability(collection, capability, mode, embedder); err != nil {
			return "", false, err
		}
		return field(capability, mode), false, nil
	case !errors.Is(err, vectordb.ErrCollectionNotFound):
		return "", false, err
	}

	spec := s.collectionSpec(collection, mode, embedder)
	if err := s.store.CreateCollection(ctx, spec); err != nil {
		// someone else created it between the probe and now
		if errors.Is(err, vectordb.ErrCollectionExists) {
			return s.prepareExisting(ctx, collection, mode, embedder)
		}
		return "", false, err
	}
	s.logger.Info("collection created", nil, map[string]interface{}{
		"collection": collection,
		"mode":       string(mode),
		"dense_size": spec.DenseSize,
	})

	if mode == vectordb.ModeSparse {
		return spec.SparseField, true, nil
	}
	return spec.DenseField, true, nil
}

func (s *Service) prepareExisting(ctx context.Context, collection string, mode vectordb.Mode, embedder embedding.Embedder) (string, bool, error) {
	capability, err := s.Probe(ctx, collection)
	if err != nil {
		return "", false, err
	}
	if err := checkCapability(collection, capability, mode, embedder); err != nil {
		return "", false, err
	}
	return field(capability, mode), false, nil
}

// collectionSpec is the layout of a collection created for mode vectors.
func (s *Service) collectionSpec(collection string, mode vectordb.Mode, embedder embedding.Embedder) vectordb.CollectionSpec {
	spec := vectordb.CollectionSpec{Name: collection, Mode: mode}
	if mode == vectordb.ModeSparse {
		spec.SparseField = s.cfg.SparseField
		spec.SparseIDF = s.cfg.SparseIDF
		spec.SparseOnDisk = s.cfg.SparseOnDisk
		return spec
	}
	spec.DenseSize = embedder.Dimension()
	spec.Distance = s.cfg.Distance
	spec.DenseField = s.cfg.DenseField
	return spec
}

// preparePoints renders, identifies and embeds one batch of records.
// offset is the input position of records[0]. Records that fail are added
// to the report and left out of the result.
func (s *Service) preparePoints(ctx context.Context, report *IngestReport, records []record.Record, offset int, slot string, embedder embedding.Embedder) []pending {
	batch := make([]pending, 0, len(records))
	texts := make([]string, 0, len(records))

	for i, rec := range records {
		index := offset + i
		text, err := record.Render(rec)
		if err != nil {
			s.fail(report, index, rec, err)
			continue
		}
		id, err := rec.PointID(index)
		if err != nil {
			s.fail(report, index, rec, err)
			continue
		}
		batch = append(batch, pending{
			index: index,
			rec:   rec,
			point: vectordb.Point{ID: id, Field: slot, Payload: rec.Payload()},
		})
		texts = append(texts, text)
	}
	if len(batch) == 0 {
		return nil
	}

	vectors, err := embedder.EmbedCorpus(ctx, texts)
	if err == nil && len(vectors) != len(texts) {
		err = fmt.Errorf("%w: expected %d vectors, got %d", embedding.ErrEmbeddingFailed, len(texts), len(vectors))
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		s.logger.Warn("batch embedding failed, embedding records one by one", err, map[string]interface{}{
			"collection": report.Collection,
			"records":    len(batch),
		})
		vectors = s.embedEach(ctx, report, batch, texts, embedder)
	}

	out := batch[:0]
	for i, p := range batch {
		v := vectors[i]
		if v.Dense == nil && v.Sparse == nil {
			// failed in embedEach and already reported
			continue
		}
		if err := validateEmbedding(v); err != nil {
			s.fail(report, p.index, p.rec, err)
			continue
		}
		p.point.Vector = v
		out = append(out, p)
	}
	return out
}

// embedEach embeds texts one at a time. Entries that fail are reported and
// left as zero vectors.
func (s *Service) embedEach(ctx context.Context, report *IngestReport, batch []pending, texts []string, embedder embedding.Embedder) []vectordb.Vector {
	vectors := make([]vectordb.Vector, len(batch))
	for i, text := range texts {
		if ctx.Err() != nil {
			return vectors
		}
		v, err := embedder.EmbedCorpus(ctx, []string{text})
		if err == nil && len(v) != 1 {
			err = fmt.Errorf("%w: expected 1 vector, got %d", embedding.ErrEmbeddingFailed, len(v))
		}
		if err != nil {
			s.fail(report, batch[i].index, batch[i].rec, err)
			continue
		}
		vectors[i] = v[0]
	}
	return vectors
}

// validateEmbedding rejects vectors that cannot be stored or found.
func validateEmbedding(v vectordb.Vector) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %w", embedding.ErrEmbeddingFailed, err)
	}
	if v.Sparse != nil && v.Sparse.Len() == 0 {
		return fmt.Errorf("%w: rendered text has no indexable terms", record.ErrMalformedRecord)
	}
	return nil
}

// writeBatch upserts a prepared batch. When the store rejects the batch as
// a whole, each point is written on its own so that only the offending
// records fail. A store that is unreachable fails the whole batch without
// retries. Only cancellation is returned as an error.
func (s *Service) writeBatch(ctx context.Context, report *IngestReport, collection string, batch []pending) error {
	if len(batch) == 0 {
		return nil
	}

	points := make([]vectordb.Point, len(batch))
	for i, p := range batch {
		points[i] = p.point
	}

	err := s.store.Upsert(ctx, collection, points)
	if err == nil {
		s.upserted(report, collection, len(points))
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, vectordb.ErrStoreUnavailable) {
		for _, p := range batch {
			s.fail(report, p.index, p.rec, err)
		}
		return nil
	}

	s.logger.Warn("batch upsert rejected, retrying point by point", err, map[string]interface{}{
		"collection": collection,
		"points":     len(points),
	})
	for _, p := range batch {
		if err := s.store.Upsert(ctx, collection, []vectordb.Point{p.point}); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.fail(report, p.index, p.rec, err)
			continue
		}
		s.upserted(report, collection, 1)
	}
	return nil
}

func (s *Service) upserted(report *IngestReport, collection string, n int) {
	report.Upserted += n
	s.metrics.PointsUpserted(collection, string(report.Mode), n)
}

func (s *Service) fail(report *IngestReport, index int, rec record.Record, err error) {
	kind := KindOf(err)
	report.Failures = append(report.Failures, RecordFailure{
		Index: index,
		ID:    rec.ID,
		Name:  rec.Name(),
		Kind:  kind,
		Error: err.Error(),
	})
	s.metrics.RecordFailed(kind)
	s.logger.Warn("record not ingested", err, map[string]interface{}{
		"collection": report.Collection,
		"index":      index,
		"id":         rec.ID,
		"kind":       kind,
	})
}
