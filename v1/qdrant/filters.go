package qdrant

import (
	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// convertFilter converts a vectordb.Filter into a Qdrant filter.
// Returns nil when there is nothing to filter on.
func convertFilter(f *vectordb.Filter) *qdrant.Filter {
	if f.IsEmpty() {
		return nil
	}

	filter := &qdrant.Filter{
		Must:    convertMatches(f.Must),
		MustNot: convertMatches(f.MustNot),
	}
	if len(filter.Must) == 0 && len(filter.MustNot) == 0 {
		return nil
	}
	return filter
}

func convertMatches(matches []vectordb.Match) []*qdrant.Condition {
	var conditions []*qdrant.Condition
	for _, m := range matches {
		if cond := convertMatch(m); cond != nil {
			conditions = append(conditions, cond)
		}
	}
	return conditions
}

func convertMatch(m vectordb.Match) *qdrant.Condition {
	switch v := m.Value.(type) {
	case string:
		return qdrant.NewMatch(m.Key, v)
	case bool:
		return qdrant.NewMatchBool(m.Key, v)
	case int:
		return qdrant.NewMatchInt(m.Key, int64(v))
	case int32:
		return qdrant.NewMatchInt(m.Key, int64(v))
	case int64:
		return qdrant.NewMatchInt(m.Key, v)
	case uint32:
		return qdrant.NewMatchInt(m.Key, int64(v))
	case uint64:
		return qdrant.NewMatchInt(m.Key, int64(v))
	default:
		// unsupported type
		return nil
	}
}
