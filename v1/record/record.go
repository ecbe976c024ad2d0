package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// Record is one item to index. Fields holds the full payload, including the
// "id" key when the source had one; it is stored verbatim with the point.
type Record struct {
	ID     any
	Fields map[string]any
}

// New builds a Record from a decoded object, taking the id from its "id" key.
func New(fields map[string]any) Record {
	if fields == nil {
		fields = map[string]any{}
	}
	return Record{ID: fields["id"], Fields: fields}
}

// Name returns the record's display name for logs and reports: the "name"
// or "title" field when present.
func (r Record) Name() string {
	for _, key := range []string{"name", "title"} {
		if s, ok := r.Fields[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// positionSpace namespaces the ids of records without an id, so they can
// never equal the id derived from an explicit one.
var positionSpace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("vecsearch/record-position"))

// PointID derives the store id for r. index is the record's position in
// its input and is used when the record has no id.
//
//   - non-negative integral numbers become numeric ids
//   - UUID strings are used as they are
//   - any other string or number becomes a UUIDv5 of its text, so re-ingesting
//     the same record overwrites the same point
//   - a missing id becomes a UUIDv5 of index in its own namespace
func (r Record) PointID(index int) (vectordb.PointID, error) {
	switch id := r.ID.(type) {
	case nil:
		return vectordb.UUIDID(uuid.NewSHA1(positionSpace, []byte(strconv.Itoa(index))).String()), nil
	case string:
		if id == "" {
			return vectordb.PointID{}, fmt.Errorf("%w: empty id", ErrMalformedRecord)
		}
		if u, err := uuid.Parse(id); err == nil {
			return vectordb.UUIDID(u.String()), nil
		}
		return hashedID(id), nil
	case json.Number:
		if n, err := strconv.ParseUint(id.String(), 10, 64); err == nil {
			return vectordb.NumericID(n), nil
		}
		return hashedID(id.String()), nil
	case float64:
		if id >= 0 && id == math.Trunc(id) && id < 1<<63 {
			return vectordb.NumericID(uint64(id)), nil
		}
		return hashedID(strconv.FormatFloat(id, 'g', -1, 64)), nil
	case float32:
		return Record{ID: float64(id)}.PointID(index)
	case int:
		return signedID(int64(id)), nil
	case int16:
		return signedID(int64(id)), nil
	case int32:
		return signedID(int64(id)), nil
	case int64:
		return signedID(id), nil
	case uint:
		return vectordb.NumericID(uint64(id)), nil
	case uint32:
		return vectordb.NumericID(uint64(id)), nil
	case uint64:
		return vectordb.NumericID(id), nil
	default:
		return vectordb.PointID{}, fmt.Errorf("%w: id of type %T", ErrMalformedRecord, r.ID)
	}
}

func signedID(n int64) vectordb.PointID {
	if n >= 0 {
		return vectordb.NumericID(uint64(n))
	}
	return hashedID(strconv.FormatInt(n, 10))
}

func hashedID(s string) vectordb.PointID {
	return vectordb.UUIDID(uuid.NewSHA1(uuid.NameSpaceURL, []byte(s)).String())
}

// Payload returns the fields to store with the point.
func (r Record) Payload() map[string]any {
	out := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		out[k] = v
	}
	return out
}

// Render produces the text that is embedded for r. It is a pure function
// of the field values.
//
// Command records (name and synopsis present):
//
//	<name>: <synopsis>
//	<syntax>
//	Parameters:
//	- <name>: <description>
//	Examples:
//	- <title>: <code>
//
// Documentation records (title and content present): "<title>\n<content>".
//
// Anything else: every scalar field except "id" as "<key>: <value>", keys
// sorted, joined by newlines. Blank values are left out.
//
// A rendering that is empty or whitespace only fails with ErrMalformedRecord.
func Render(r Record) (string, error) {
	var (
		text string
		err  error
	)
	switch {
	case has(r.Fields, "name") && has(r.Fields, "synopsis"):
		text, err = renderCommand(r.Fields)
	case has(r.Fields, "title") && has(r.Fields, "content"):
		text = scalarString(r.Fields["title"]) + "\n" + scalarString(r.Fields["content"])
	default:
		text = renderGeneric(r.Fields)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: record renders to empty text", ErrMalformedRecord)
	}
	return text, nil
}

func renderCommand(fields map[string]any) (string, error) {
	if strings.TrimSpace(scalarString(fields["name"])+scalarString(fields["synopsis"])) == "" {
		return "", fmt.Errorf("%w: command without name and synopsis", ErrMalformedRecord)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", scalarString(fields["name"]), scalarString(fields["synopsis"]))

	if has(fields, "syntax") {
		b.WriteString(scalarString(fields["syntax"]))
		b.WriteByte('\n')
	}

	params, err := objectList(fields["parameters"], "parameters")
	if err != nil {
		return "", err
	}
	if len(params) > 0 {
		b.WriteString("Parameters:\n")
		for _, p := range params {
			fmt.Fprintf(&b, "- %s: %s\n", scalarString(p["name"]), scalarString(p["description"]))
		}
	}

	examples, err := objectList(fields["examples"], "examples")
	if err != nil {
		return "", err
	}
	if len(examples) > 0 {
		b.WriteString("Examples:\n")
		for _, e := range examples {
			fmt.Fprintf(&b, "- %s: %s\n", scalarString(e["title"]), scalarString(e["code"]))
		}
	}

	return b.String(), nil
}

func renderGeneric(fields map[string]any) string {
	keys := sortedKeys(fields)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "id" {
			continue
		}
		if s, ok := scalar(fields[k]); ok && strings.TrimSpace(s) != "" {
			lines = append(lines, k+": "+s)
		}
	}
	return strings.Join(lines, "\n")
}

// objectList reads an optional list of objects. A missing or null value is
// an empty list.
func objectList(v any, key string) ([]map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a list", ErrMalformedRecord, key)
	}
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be an object", ErrMalformedRecord, key, i)
		}
		out = append(out, obj)
	}
	return out, nil
}
