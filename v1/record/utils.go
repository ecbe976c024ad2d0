package record

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

func has(fields map[string]any, key string) bool {
	_, ok := fields[key]
	return ok
}

// scalar formats strings, numbers and booleans. Other values report false.
func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case json.Number:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	default:
		return "", false
	}
}

// scalarString is scalar with missing and non-scalar values rendered empty.
func scalarString(v any) string {
	s, _ := scalar(v)
	return s
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeValue converts driver values into the JSON-like types a point
// payload can hold.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case nil, string, bool, float64, int64:
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case [16]byte:
		// uuid columns
		return fmt.Sprintf("%x-%x-%x-%x-%x", x[0:4], x[4:6], x[6:8], x[8:10], x[10:16])
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalizeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeValue(e)
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out
	case fmt.Stringer:
		return x.String()
	default:
		// round-trip through JSON for anything else with a JSON form
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return string(data)
		}
		return decoded
	}
}
