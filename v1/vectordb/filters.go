package vectordb

import (
	"fmt"
	"strings"
)

// Match is an exact-value condition on a payload key. Dotted keys address
// nested objects ("meta.category"). Supported values are string, bool and
// integers.
type Match struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Filter restricts search results by payload. All Must conditions have to
// hold and no MustNot condition may hold.
type Filter struct {
	Must    []Match `json:"must,omitempty"`
	MustNot []Match `json:"mustNot,omitempty"`
}

// NewMatch creates a match condition.
func NewMatch(key string, value any) Match {
	return Match{Key: key, Value: value}
}

// IsEmpty reports whether the filter has no conditions.
func (f *Filter) IsEmpty() bool {
	return f == nil || (len(f.Must) == 0 && len(f.MustNot) == 0)
}

// Validate checks that every condition uses a supported value type.
func (f *Filter) Validate() error {
	if f == nil {
		return nil
	}
	for _, m := range append(append([]Match(nil), f.Must...), f.MustNot...) {
		if m.Key == "" {
			return fmt.Errorf("%w: filter key cannot be empty", ErrInvalidArgument)
		}
		switch m.Value.(type) {
		case string, bool, int, int32, int64, uint32, uint64:
		default:
			return fmt.Errorf("%w: unsupported filter value %T for key %q", ErrInvalidArgument, m.Value, m.Key)
		}
	}
	return nil
}

// Matches evaluates the filter against a payload.
func (f *Filter) Matches(payload map[string]any) bool {
	if f.IsEmpty() {
		return true
	}
	for _, m := range f.Must {
		if !m.matches(payload) {
			return false
		}
	}
	for _, m := range f.MustNot {
		if m.matches(payload) {
			return false
		}
	}
	return true
}

func (m Match) matches(payload map[string]any) bool {
	v, ok := lookupPath(payload, m.Key)
	if !ok {
		return false
	}
	// arrays match when any element matches, as Qdrant does
	if items, ok := v.([]any); ok {
		for _, item := range items {
			if valuesEqual(item, m.Value) {
				return true
			}
		}
		return false
	}
	return valuesEqual(v, m.Value)
}

func lookupPath(payload map[string]any, key string) (any, bool) {
	var cur any = payload
	for _, part := range strings.Split(key, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func valuesEqual(stored, want any) bool {
	switch w := want.(type) {
	case string:
		s, ok := stored.(string)
		return ok && s == w
	case bool:
		b, ok := stored.(bool)
		return ok && b == w
	}
	wf, ok := toFloat(want)
	if !ok {
		return false
	}
	sf, ok := toFloat(stored)
	return ok && sf == wf
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
