package vectordb

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Mode selects the vector representation used for a collection or request.
type Mode string

const (
	// ModeDense is a fixed-length float vector compared by distance.
	ModeDense Mode = "dense"
	// ModeSparse is a list of (index, weight) pairs compared by dot product.
	ModeSparse Mode = "sparse"
)

// ParseMode converts a user supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDense:
		return ModeDense, nil
	case ModeSparse:
		return ModeSparse, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q (want %q or %q)", ErrInvalidArgument, s, ModeDense, ModeSparse)
	}
}

func (m Mode) String() string { return string(m) }

// Distance metrics understood by the stores.
const (
	DistanceCosine    = "Cosine"
	DistanceDot       = "Dot"
	DistanceEuclid    = "Euclid"
	DistanceManhattan = "Manhattan"
)

// SparseVector is a sparse embedding: Values[i] is the weight of Indices[i].
type SparseVector struct {
	Indices []uint32  `json:"indices"`
	Values  []float32 `json:"values"`
}

// Len returns the number of non-zero entries.
func (s SparseVector) Len() int { return len(s.Indices) }

// Vector holds exactly one of a dense or a sparse representation.
type Vector struct {
	Dense  []float32     `json:"dense,omitempty"`
	Sparse *SparseVector `json:"sparse,omitempty"`
}

// DenseVector wraps a dense embedding.
func DenseVector(values []float32) Vector {
	return Vector{Dense: values}
}

// NewSparseVector wraps a sparse embedding.
func NewSparseVector(indices []uint32, values []float32) Vector {
	return Vector{Sparse: &SparseVector{Indices: indices, Values: values}}
}

// Mode reports which representation v carries.
func (v Vector) Mode() Mode {
	if v.Sparse != nil {
		return ModeSparse
	}
	return ModeDense
}

// PointID identifies a point. Exactly one of Num or UUID is meaningful:
// a non-empty UUID wins.
type PointID struct {
	Num  uint64
	UUID string
}

// NumericID builds a numeric point id.
func NumericID(n uint64) PointID { return PointID{Num: n} }

// UUIDID builds a UUID point id.
func UUIDID(u string) PointID { return PointID{UUID: u} }

// IsUUID reports whether the id is a UUID.
func (id PointID) IsUUID() bool { return id.UUID != "" }

func (id PointID) String() string {
	if id.IsUUID() {
		return id.UUID
	}
	return strconv.FormatUint(id.Num, 10)
}

// MarshalJSON renders numeric ids as JSON numbers and UUIDs as strings.
func (id PointID) MarshalJSON() ([]byte, error) {
	if id.IsUUID() {
		return json.Marshal(id.UUID)
	}
	return []byte(strconv.FormatUint(id.Num, 10)), nil
}

// UnmarshalJSON accepts either form produced by MarshalJSON.
func (id *PointID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = UUIDID(s)
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("point id must be a non-negative integer or a UUID string: %w", err)
	}
	*id = NumericID(n)
	return nil
}

// Point is a single entry in a collection.
type Point struct {
	// ID is the unique identifier of the point
	ID PointID `json:"id"`

	// Vector is the embedding stored with the point
	Vector Vector `json:"vector"`

	// Field names the vector slot. Empty means the unnamed default dense
	// vector; sparse vectors always live in a named slot.
	Field string `json:"field,omitempty"`

	// Payload is the metadata stored with the vector
	Payload map[string]any `json:"payload,omitempty"`
}

// CollectionSpec describes a collection to create.
type CollectionSpec struct {
	Name string `json:"name"`
	Mode Mode   `json:"mode"`

	// Dense settings, used when Mode is ModeDense.
	DenseSize  int    `json:"denseSize,omitempty"`
	Distance   string `json:"distance,omitempty"`
	DenseField string `json:"denseField,omitempty"`

	// Sparse settings, used when Mode is ModeSparse.
	SparseField  string `json:"sparseField,omitempty"`
	SparseIDF    bool   `json:"sparseIdf,omitempty"`
	SparseOnDisk bool   `json:"sparseOnDisk,omitempty"`
}

// DenseParams describes one dense vector slot of a collection.
type DenseParams struct {
	// Name is empty for the unnamed default vector
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

// Collection contains metadata about a vector collection.
type Collection struct {
	// Name is the unique identifier of the collection
	Name string `json:"name"`

	// Status indicates the operational state (e.g., "Green", "Yellow")
	Status string `json:"status"`

	// PointCount is the number of stored points
	PointCount uint64 `json:"pointCount"`

	// VectorCount is the number of indexed vectors
	VectorCount uint64 `json:"vectorCount"`

	// Dense lists the dense vector slots, sorted by name
	Dense []DenseParams `json:"dense,omitempty"`

	// SparseFields lists the sparse vector slot names, sorted
	SparseFields []string `json:"sparseFields,omitempty"`
}

// Capability summarises what kinds of vectors a collection can hold.
type Capability struct {
	SupportsSparse bool   `json:"supportsSparse"`
	SparseField    string `json:"sparseField,omitempty"`
	SupportsDense  bool   `json:"supportsDense"`
	DenseField     string `json:"denseField,omitempty"`
	DenseSize      int    `json:"denseSize,omitempty"`
	Distance       string `json:"distance,omitempty"`
}

// Capability derives the collection's capability. When several sparse or
// dense slots exist the first one in name order is reported, which makes the
// answer stable across calls.
func (c *Collection) Capability() Capability {
	var capability Capability
	if len(c.SparseFields) > 0 {
		fields := append([]string(nil), c.SparseFields...)
		sort.Strings(fields)
		capability.SupportsSparse = true
		capability.SparseField = fields[0]
	}
	if len(c.Dense) > 0 {
		dense := append([]DenseParams(nil), c.Dense...)
		sort.Slice(dense, func(i, j int) bool { return dense[i].Name < dense[j].Name })
		capability.SupportsDense = true
		capability.DenseField = dense[0].Name
		capability.DenseSize = dense[0].Size
		capability.Distance = dense[0].Distance
	}
	return capability
}

// SearchRequest represents a single similarity search query.
type SearchRequest struct {
	// CollectionName is the target collection to search in
	CollectionName string `json:"collectionName"`

	// Vector is the query embedding
	Vector Vector `json:"vector"`

	// Using names the vector slot to search. Required for sparse queries.
	Using string `json:"using,omitempty"`

	// TopK is the maximum number of results to return
	TopK int `json:"maxResults"`

	// Filter optionally restricts results by payload values
	Filter *Filter `json:"filter,omitempty"`
}

// SearchResult represents a single search result with its similarity score.
type SearchResult struct {
	// ID is the unique identifier of the matched point
	ID PointID `json:"id"`

	// Score is the similarity score (higher = more similar)
	Score float32 `json:"score"`

	// Payload contains the metadata stored with the vector
	Payload map[string]any `json:"payload"`

	// CollectionName identifies which collection this result came from
	CollectionName string `json:"collectionName,omitempty"`
}
