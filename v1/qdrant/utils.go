package qdrant

import (
	"fmt"
	"sort"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// validateSearchInput validates common search parameters
func validateSearchInput(req vectordb.SearchRequest) error {
	if req.CollectionName == "" {
		return fmt.Errorf("%w: collection name cannot be empty", vectordb.ErrInvalidArgument)
	}
	if req.TopK <= 0 {
		return fmt.Errorf("%w: topK must be greater than 0", vectordb.ErrInvalidArgument)
	}
	if err := req.Vector.Validate(); err != nil {
		return err
	}
	if req.Vector.Sparse != nil && req.Using == "" {
		return fmt.Errorf("%w: sparse queries must name the sparse vector", vectordb.ErrInvalidArgument)
	}
	return req.Filter.Validate()
}

// buildCreateCollection turns a store-agnostic spec into a CreateCollection
// request.
func buildCreateCollection(spec vectordb.CollectionSpec) (*qdrant.CreateCollection, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	req := &qdrant.CreateCollection{CollectionName: spec.Name}

	switch spec.Mode {
	case vectordb.ModeDense:
		distance, err := toDistance(spec.Distance)
		if err != nil {
			return nil, err
		}
		params := &qdrant.VectorParams{
			Size:     uint64(spec.DenseSize),
			Distance: distance,
		}
		if spec.DenseField == "" {
			req.VectorsConfig = qdrant.NewVectorsConfig(params)
		} else {
			req.VectorsConfig = qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
				spec.DenseField: params,
			})
		}

	case vectordb.ModeSparse:
		params := &qdrant.SparseVectorParams{}
		if spec.SparseOnDisk {
			params.Index = &qdrant.SparseIndexConfig{OnDisk: qdrant.PtrOf(true)}
		}
		if spec.SparseIDF {
			params.Modifier = qdrant.Modifier_Idf.Enum()
		}
		req.SparseVectorsConfig = qdrant.NewSparseVectorsConfig(map[string]*qdrant.SparseVectorParams{
			spec.SparseField: params,
		})
	}

	return req, nil
}

func toDistance(name string) (qdrant.Distance, error) {
	switch name {
	case "", vectordb.DistanceCosine:
		return qdrant.Distance_Cosine, nil
	case vectordb.DistanceDot:
		return qdrant.Distance_Dot, nil
	case vectordb.DistanceEuclid:
		return qdrant.Distance_Euclid, nil
	case vectordb.DistanceManhattan:
		return qdrant.Distance_Manhattan, nil
	default:
		return qdrant.Distance_UnknownDistance, fmt.Errorf("%w: unknown distance %q", vectordb.ErrInvalidArgument, name)
	}
}

// describeCollection ──────────────────────────────────────────────────────────────
// describeCollection
// ──────────────────────────────────────────────────────────────
//
// describeCollection navigates Qdrant's nested protobuf description
// ("oneof" wrappers for unnamed vs named dense vectors, a map for sparse
// slots) and flattens it into a vectordb.Collection. Map keys are sorted so
// the description does not depend on protobuf map iteration order.
func describeCollection(name string, info *qdrant.CollectionInfo) *vectordb.Collection {
	collection := &vectordb.Collection{
		Name:        name,
		Status:      info.GetStatus().String(),
		PointCount:  info.GetPointsCount(),
		VectorCount: info.GetIndexedVectorsCount(),
	}

	params := info.GetConfig().GetParams()
	if params == nil {
		return collection
	}

	if vc := params.GetVectorsConfig(); vc != nil {
		if p := vc.GetParams(); p != nil {
			collection.Dense = append(collection.Dense, vectordb.DenseParams{
				Size:     int(p.GetSize()),
				Distance: p.GetDistance().String(),
			})
		}
		if m := vc.GetParamsMap().GetMap(); len(m) > 0 {
			for vecName, p := range m {
				collection.Dense = append(collection.Dense, vectordb.DenseParams{
					Name:     vecName,
					Size:     int(p.GetSize()),
					Distance: p.GetDistance().String(),
				})
			}
			sort.Slice(collection.Dense, func(i, j int) bool {
				return collection.Dense[i].Name < collection.Dense[j].Name
			})
		}
	}

	for sparseName := range params.GetSparseVectorsConfig().GetMap() {
		collection.SparseFields = append(collection.SparseFields, sparseName)
	}
	sort.Strings(collection.SparseFields)

	return collection
}
