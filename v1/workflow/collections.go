package workflow

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// describeConcurrency bounds the GetCollection calls made by Describe.
const describeConcurrency = 4

// Describe lists every collection with its details. A collection that
// cannot be read is reported inline with its error; only a failure to list
// collections fails the call. Results keep the store's listing order.
func (s *Service) Describe(ctx context.Context) ([]CollectionInfo, error) {
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	// each goroutine writes its own slot
	infos := make([]CollectionInfo, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(describeConcurrency)
	for i, name := range names {
		g.Go(func() error {
			info := CollectionInfo{Name: name}
			coll, err := s.store.GetCollection(gctx, name)
			if err != nil {
				info.Error = err.Error()
				info.ErrorKind = KindOf(err)
			} else {
				capability := coll.Capability()
				info.Collection = coll
				info.Capability = &capability
			}
			infos[i] = info
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// CreateCollection creates an empty collection laid out for mode vectors,
// the same way Ingest does for a missing collection.
func (s *Service) CreateCollection(ctx context.Context, name string, mode vectordb.Mode) (vectordb.CollectionSpec, error) {
	if name == "" {
		return vectordb.CollectionSpec{}, fmt.Errorf("%w: collection name is required", vectordb.ErrInvalidArgument)
	}
	embedder, err := s.embedders.For(mode)
	if err != nil {
		return vectordb.CollectionSpec{}, err
	}

	spec := s.collectionSpec(name, mode, embedder)
	if err := s.store.CreateCollection(ctx, spec); err != nil {
		return vectordb.CollectionSpec{}, err
	}
	s.logger.Info("collection created", nil, map[string]interface{}{
		"collection": name,
		"mode":       string(mode),
		"dense_size": spec.DenseSize,
	})
	return spec, nil
}

// DeleteCollection removes a collection and its points.
func (s *Service) DeleteCollection(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: collection name is required", vectordb.ErrInvalidArgument)
	}
	if err := s.store.DeleteCollection(ctx, name); err != nil {
		return err
	}
	s.logger.Info("collection deleted", nil, map[string]interface{}{"collection": name})
	return nil
}

// Ping checks that the store answers.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Health(ctx)
}
