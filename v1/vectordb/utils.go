package vectordb

import (
	"fmt"
	"math"
)

// Validate checks that indices and values line up and no index repeats.
func (s SparseVector) Validate() error {
	if len(s.Indices) != len(s.Values) {
		return fmt.Errorf("%w: sparse vector has %d indices but %d values", ErrInvalidArgument, len(s.Indices), len(s.Values))
	}
	seen := make(map[uint32]struct{}, len(s.Indices))
	for _, idx := range s.Indices {
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("%w: sparse vector repeats index %d", ErrInvalidArgument, idx)
		}
		seen[idx] = struct{}{}
	}
	return nil
}

// Validate checks that exactly one representation is set and that it is
// well formed.
func (v Vector) Validate() error {
	switch {
	case v.Sparse != nil && len(v.Dense) > 0:
		return fmt.Errorf("%w: vector carries both dense and sparse values", ErrInvalidArgument)
	case v.Sparse != nil:
		return v.Sparse.Validate()
	case len(v.Dense) == 0:
		return fmt.Errorf("%w: vector is empty", ErrInvalidArgument)
	}
	return nil
}

// Validate checks that s names a collection the store can create.
func (s CollectionSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: collection name cannot be empty", ErrInvalidArgument)
	}
	switch s.Mode {
	case ModeDense:
		if s.DenseSize <= 0 {
			return fmt.Errorf("%w: dense collection %q needs a positive vector size", ErrInvalidArgument, s.Name)
		}
	case ModeSparse:
		if s.SparseField == "" {
			return fmt.Errorf("%w: sparse collection %q needs a sparse field name", ErrInvalidArgument, s.Name)
		}
	default:
		return fmt.Errorf("%w: collection %q has unknown mode %q", ErrInvalidArgument, s.Name, s.Mode)
	}
	return nil
}

// cosineSimilarity returns the cosine of the angle between a and b, or 0 when
// either vector has zero norm.
func cosineSimilarity(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

func dotProduct(a, b []float32) float32 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return float32(dot)
}

func euclidDistance(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}

func manhattanDistance(a, b []float32) float32 {
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return float32(sum)
}

// denseScore scores a candidate so that higher is always better.
func denseScore(distance string, query, stored []float32) float32 {
	switch distance {
	case DistanceDot:
		return dotProduct(query, stored)
	case DistanceEuclid:
		return -euclidDistance(query, stored)
	case DistanceManhattan:
		return -manhattanDistance(query, stored)
	default:
		return cosineSimilarity(query, stored)
	}
}

// sparseDot multiplies matching indices. weight, when non-nil, scales each
// query term (used for the IDF modifier). matched is false when the vectors
// share no index.
func sparseDot(query, stored *SparseVector, weight func(uint32) float64) (score float32, matched bool) {
	values := make(map[uint32]float32, len(stored.Indices))
	for i, idx := range stored.Indices {
		values[idx] = stored.Values[i]
	}
	var sum float64
	for i, idx := range query.Indices {
		v, ok := values[idx]
		if !ok {
			continue
		}
		matched = true
		w := 1.0
		if weight != nil {
			w = weight(idx)
		}
		sum += float64(query.Values[i]) * float64(v) * w
	}
	return float32(sum), matched
}

// inverseDocumentFrequency follows the formula Qdrant applies for the IDF
// modifier: ln(1 + (N - n + 0.5) / (n + 0.5)).
func inverseDocumentFrequency(total, containing int) float64 {
	n := float64(containing)
	return math.Log(1 + (float64(total)-n+0.5)/(n+0.5))
}

func copyPayload(payload map[string]any) map[string]any {
	if payload == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}
