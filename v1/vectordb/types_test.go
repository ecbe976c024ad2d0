package vectordb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Sparse ")
	require.NoError(t, err)
	assert.Equal(t, ModeSparse, m)

	m, err = ParseMode("dense")
	require.NoError(t, err)
	assert.Equal(t, ModeDense, m)

	_, err = ParseMode("hybrid")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSparseVectorValidate(t *testing.T) {
	assert.NoError(t, SparseVector{Indices: []uint32{1, 5}, Values: []float32{0.5, 1}}.Validate())
	assert.NoError(t, SparseVector{}.Validate())

	err := SparseVector{Indices: []uint32{1, 5}, Values: []float32{0.5}}.Validate()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = SparseVector{Indices: []uint32{3, 3}, Values: []float32{1, 1}}.Validate()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestVectorValidate(t *testing.T) {
	assert.NoError(t, DenseVector([]float32{1, 2}).Validate())
	assert.NoError(t, NewSparseVector([]uint32{1}, []float32{1}).Validate())
	assert.Error(t, Vector{}.Validate())
	assert.Error(t, Vector{Dense: []float32{1}, Sparse: &SparseVector{}}.Validate())
}

func TestPointIDJSON(t *testing.T) {
	data, err := json.Marshal([]PointID{NumericID(42), UUIDID("5c56c793-69f3-4fbf-87e6-c4bf54c28c26")})
	require.NoError(t, err)
	assert.JSONEq(t, `[42, "5c56c793-69f3-4fbf-87e6-c4bf54c28c26"]`, string(data))

	var ids []PointID
	require.NoError(t, json.Unmarshal(data, &ids))
	assert.Equal(t, NumericID(42), ids[0])
	assert.True(t, ids[1].IsUUID())

	var bad PointID
	assert.Error(t, json.Unmarshal([]byte(`-1`), &bad))
}

func TestCollectionCapability(t *testing.T) {
	t.Run("sparse fields pick the first name in order", func(t *testing.T) {
		c := &Collection{SparseFields: []string{"title", "text"}}
		capability := c.Capability()
		assert.True(t, capability.SupportsSparse)
		assert.Equal(t, "text", capability.SparseField)
		assert.False(t, capability.SupportsDense)
	})

	t.Run("dense only", func(t *testing.T) {
		c := &Collection{Dense: []DenseParams{{Size: 384, Distance: DistanceCosine}}}
		capability := c.Capability()
		assert.False(t, capability.SupportsSparse)
		assert.Empty(t, capability.SparseField)
		assert.True(t, capability.SupportsDense)
		assert.Equal(t, 384, capability.DenseSize)
		assert.Equal(t, DistanceCosine, capability.Distance)
	})

	t.Run("repeated calls agree", func(t *testing.T) {
		c := &Collection{SparseFields: []string{"b", "a", "c"}}
		assert.Equal(t, c.Capability(), c.Capability())
	})
}

func TestFilterMatches(t *testing.T) {
	payload := map[string]any{
		"category":   "dialog",
		"deprecated": false,
		"version":    float64(3),
		"tags":       []any{"ui", "modal"},
		"meta":       map[string]any{"author": "psadt"},
	}

	cases := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"nil filter", nil, true},
		{"string match", &Filter{Must: []Match{NewMatch("category", "dialog")}}, true},
		{"string mismatch", &Filter{Must: []Match{NewMatch("category", "file")}}, false},
		{"bool match", &Filter{Must: []Match{NewMatch("deprecated", false)}}, true},
		{"int against json number", &Filter{Must: []Match{NewMatch("version", int64(3))}}, true},
		{"array element", &Filter{Must: []Match{NewMatch("tags", "modal")}}, true},
		{"nested key", &Filter{Must: []Match{NewMatch("meta.author", "psadt")}}, true},
		{"missing key", &Filter{Must: []Match{NewMatch("absent", "x")}}, false},
		{"must not", &Filter{MustNot: []Match{NewMatch("category", "dialog")}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(payload))
		})
	}
}

func TestFilterValidate(t *testing.T) {
	assert.NoError(t, (&Filter{Must: []Match{NewMatch("a", 1)}}).Validate())
	assert.ErrorIs(t, (&Filter{Must: []Match{NewMatch("", "x")}}).Validate(), ErrInvalidArgument)
	assert.ErrorIs(t, (&Filter{Must: []Match{NewMatch("a", 1.5)}}).Validate(), ErrInvalidArgument)
}
