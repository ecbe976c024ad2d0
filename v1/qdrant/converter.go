package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// ── Points ───────────────────────────────────────────────────────────────────

// toPointStruct converts a vectordb.Point into a Qdrant PointStruct.
// Sparse vectors and named dense vectors go into a vector map keyed by
// p.Field; an unnamed dense vector is sent as the default vector.
func toPointStruct(p vectordb.Point) (*qdrant.PointStruct, error) {
	if err := p.Vector.Validate(); err != nil {
		return nil, err
	}

	var vectors *qdrant.Vectors
	switch {
	case p.Vector.Sparse != nil:
		if p.Field == "" {
			return nil, fmt.Errorf("%w: sparse vectors need a field name", vectordb.ErrInvalidArgument)
		}
		vectors = qdrant.NewVectorsMap(map[string]*qdrant.Vector{
			p.Field: qdrant.NewVectorSparse(p.Vector.Sparse.Indices, p.Vector.Sparse.Values),
		})
	case p.Field != "":
		vectors = qdrant.NewVectorsMap(map[string]*qdrant.Vector{
			p.Field: qdrant.NewVectorDense(p.Vector.Dense),
		})
	default:
		vectors = qdrant.NewVectors(p.Vector.Dense...)
	}

	payload, err := qdrant.TryValueMap(p.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", vectordb.ErrInvalidArgument, err)
	}

	return &qdrant.PointStruct{
		Id:      toPointID(p.ID),
		Vectors: vectors,
		Payload: payload,
	}, nil
}

func toPointID(id vectordb.PointID) *qdrant.PointId {
	if id.IsUUID() {
		return qdrant.NewIDUUID(id.UUID)
	}
	return qdrant.NewIDNum(id.Num)
}

// toQuery builds a nearest-neighbour query for either representation.
func toQuery(v vectordb.Vector) *qdrant.Query {
	if v.Sparse != nil {
		return qdrant.NewQuerySparse(v.Sparse.Indices, v.Sparse.Values)
	}
	return qdrant.NewQuery(v.Dense...)
}

// ── Results ──────────────────────────────────────────────────────────────────

// parseSearchResults converts Qdrant scored points, preserving their order.
func parseSearchResults(collection string, resp []*qdrant.ScoredPoint) ([]vectordb.SearchResult, error) {
	results := make([]vectordb.SearchResult, 0, len(resp))
	for _, point := range resp {
		id, err := extractPointID(point.GetId())
		if err != nil {
			return nil, fmt.Errorf("[Qdrant] %w", err)
		}
		results = append(results, vectordb.SearchResult{
			ID:             id,
			Score:          point.GetScore(),
			Payload:        convertPayload(point.GetPayload()),
			CollectionName: collection,
		})
	}
	return results, nil
}

func extractPointID(id *qdrant.PointId) (vectordb.PointID, error) {
	if id == nil {
		return vectordb.PointID{}, fmt.Errorf("nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return vectordb.NumericID(v.Num), nil
	case *qdrant.PointId_Uuid:
		return vectordb.UUIDID(v.Uuid), nil
	default:
		return vectordb.PointID{}, fmt.Errorf("unexpected PointId type: %T", v)
	}
}

// convertPayload converts a Qdrant payload into plain Go values.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}
