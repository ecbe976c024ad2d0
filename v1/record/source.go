package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a JSON array of objects. Anything else (invalid JSON, a
// top-level object, an array element that is not an object) fails with
// ErrMalformedInput; no partial result is returned.
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrMalformedInput, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of objects: %w", ErrMalformedInput, err)
	}

	records := make([]Record, 0, len(items))
	for i, raw := range items {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: item %d is not an object", ErrMalformedInput, i)
		}
		records = append(records, New(fields))
	}
	return records, nil
}

// LoadFile reads records from a JSON file.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// FromRows turns column-name keyed rows (as returned by a SQL query) into
// records. Driver types are converted to payload-friendly values: times
// become RFC 3339 strings, byte slices strings, integers int64.
func FromRows(rows []map[string]any) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		fields := make(map[string]any, len(row))
		for k, v := range row {
			fields[k] = normalizeValue(v)
		}
		records = append(records, New(fields))
	}
	return records
}
