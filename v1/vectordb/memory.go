package vectordb

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store for local runs and tests.
// Dense slots are scored with the collection's distance metric, sparse
// slots by dot product (with the IDF modifier when the slot enables it).
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	spec   CollectionSpec
	points map[PointID]*memoryPoint
	seq    uint64
}

type memoryPoint struct {
	id      PointID
	seq     uint64
	vectors map[string]Vector
	payload map[string]any
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]*memoryCollection),
	}
}

// Health always succeeds.
func (s *MemoryStore) Health(ctx context.Context) error {
	return ctx.Err()
}

// ListCollections returns collection names in lexical order.
func (s *MemoryStore) ListCollections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetCollection describes a collection.
func (s *MemoryStore) GetCollection(ctx context.Context, name string) (*Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", name, ErrCollectionNotFound)
	}

	info := &Collection{
		Name:        name,
		Status:      "Green",
		PointCount:  uint64(len(c.points)),
		VectorCount: uint64(len(c.points)),
	}
	switch c.spec.Mode {
	case ModeDense:
		info.Dense = []DenseParams{{Name: c.spec.DenseField, Size: c.spec.DenseSize, Distance: c.spec.Distance}}
	case ModeSparse:
		info.SparseFields = []string{c.spec.SparseField}
	}
	return info, nil
}

// CreateCollection registers a new, empty collection.
func (s *MemoryStore) CreateCollection(ctx context.Context, spec CollectionSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if spec.Mode == ModeDense && spec.Distance == "" {
		spec.Distance = DistanceCosine
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[spec.Name]; ok {
		return fmt.Errorf("collection %q: %w", spec.Name, ErrCollectionExists)
	}
	s.collections[spec.Name] = &memoryCollection{
		spec:   spec,
		points: make(map[PointID]*memoryPoint),
	}
	return nil
}

// DeleteCollection drops a collection. Deleting a missing collection is an error.
func (s *MemoryStore) DeleteCollection(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[name]; !ok {
		return fmt.Errorf("collection %q: %w", name, ErrCollectionNotFound)
	}
	delete(s.collections, name)
	return nil
}

// Upsert stores points, replacing existing ones with the same id. The whole
// call is rejected when any point does not fit the collection.
func (s *MemoryStore) Upsert(ctx context.Context, collection string, points []Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("collection %q: %w", collection, ErrCollectionNotFound)
	}
	for i, p := range points {
		if err := c.accepts(p); err != nil {
			return fmt.Errorf("point %d (id=%s): %w", i, p.ID, err)
		}
	}
	for _, p := range points {
		c.seq++
		mp := &memoryPoint{
			id:      p.ID,
			seq:     c.seq,
			vectors: map[string]Vector{p.Field: p.Vector},
			payload: copyPayload(p.Payload),
		}
		// replaced points keep their original insertion position
		if old, ok := c.points[p.ID]; ok {
			mp.seq = old.seq
		}
		c.points[p.ID] = mp
	}
	return nil
}

// Search scores every point holding a vector in the requested slot.
func (s *MemoryStore) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	if req.TopK <= 0 {
		return nil, fmt.Errorf("%w: top k must be positive", ErrInvalidArgument)
	}
	if err := req.Vector.Validate(); err != nil {
		return nil, err
	}
	if err := req.Filter.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[req.CollectionName]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", req.CollectionName, ErrCollectionNotFound)
	}
	if err := c.accepts(Point{Vector: req.Vector, Field: req.Using}); err != nil {
		return nil, err
	}

	type scored struct {
		p     *memoryPoint
		score float32
	}
	candidates := make([]scored, 0, len(c.points))
	idf := c.idf(req.Using)
	for _, p := range c.points {
		v, ok := p.vectors[req.Using]
		if !ok || !req.Filter.Matches(p.payload) {
			continue
		}
		var score float32
		if req.Vector.Sparse != nil {
			// like Qdrant, sparse search only returns points sharing a term
			var matched bool
			if score, matched = sparseDot(req.Vector.Sparse, v.Sparse, idf); !matched {
				continue
			}
		} else {
			score = denseScore(c.spec.Distance, req.Vector.Dense, v.Dense)
		}
		candidates = append(candidates, scored{p: p, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].p.seq < candidates[j].p.seq
	})
	if len(candidates) > req.TopK {
		candidates = candidates[:req.TopK]
	}

	results := make([]SearchResult, 0, len(candidates))
	for _, cand := range candidates {
		results = append(results, SearchResult{
			ID:             cand.p.id,
			Score:          cand.score,
			Payload:        copyPayload(cand.p.payload),
			CollectionName: req.CollectionName,
		})
	}
	return results, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// accepts checks that a vector fits one of the collection's slots.
func (c *memoryCollection) accepts(p Point) error {
	if err := p.Vector.Validate(); err != nil {
		return err
	}
	switch p.Vector.Mode() {
	case ModeSparse:
		if c.spec.Mode != ModeSparse || p.Field != c.spec.SparseField {
			return fmt.Errorf("%w: collection %q has no sparse vector named %q", ErrInvalidArgument, c.spec.Name, p.Field)
		}
	default:
		if c.spec.Mode != ModeDense || p.Field != c.spec.DenseField {
			return fmt.Errorf("%w: collection %q has no dense vector named %q", ErrInvalidArgument, c.spec.Name, p.Field)
		}
		if len(p.Vector.Dense) != c.spec.DenseSize {
			return fmt.Errorf("%w: expected dense vector of size %d, got %d", ErrInvalidArgument, c.spec.DenseSize, len(p.Vector.Dense))
		}
	}
	return nil
}

// idf returns the IDF weighting for a sparse slot, or nil when the slot does
// not use the modifier.
func (c *memoryCollection) idf(field string) func(uint32) float64 {
	if c.spec.Mode != ModeSparse || !c.spec.SparseIDF || field != c.spec.SparseField {
		return nil
	}
	df := make(map[uint32]int)
	total := 0
	for _, p := range c.points {
		v, ok := p.vectors[field]
		if !ok || v.Sparse == nil {
			continue
		}
		total++
		for _, idx := range v.Sparse.Indices {
			df[idx]++
		}
	}
	return func(idx uint32) float64 {
		return inverseDocumentFrequency(total, df[idx])
	}
}
