package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Aleph-Alpha/vecsearch/v1/embedding"
	"github.com/Aleph-Alpha/vecsearch/v1/record"
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// fakeDense is a bag-of-words dense embedder: every distinct word gets its
// own dimension, so texts sharing words score higher. dim must exceed the
// vocabulary of a test.
type fakeDense struct {
	dim     int
	loadErr error
	// texts containing failOn make EmbedCorpus fail
	failOn  string
	batches int
	vocab   map[string]int
}

func (f *fakeDense) Mode() vectordb.Mode { return vectordb.ModeDense }
func (f *fakeDense) Model() string       { return "fake-bow" }
func (f *fakeDense) Dimension() int      { return f.dim }

func (f *fakeDense) Load(ctx context.Context) error {
	if f.loadErr != nil {
		return fmt.Errorf("%w: %w", embedding.ErrModelUnavailable, f.loadErr)
	}
	return nil
}

func (f *fakeDense) EmbedCorpus(ctx context.Context, texts []string) ([]vectordb.Vector, error) {
	f.batches++
	out := make([]vectordb.Vector, len(texts))
	for i, text := range texts {
		if f.failOn != "" && strings.Contains(text, f.failOn) {
			return nil, fmt.Errorf("%w: provider rejected input", embedding.ErrEmbeddingFailed)
		}
		out[i] = f.embed(text)
	}
	return out, nil
}

func (f *fakeDense) EmbedQuery(ctx context.Context, text string) (vectordb.Vector, error) {
	if err := f.Load(ctx); err != nil {
		return vectordb.Vector{}, err
	}
	return f.embed(text), nil
}

func (f *fakeDense) embed(text string) vectordb.Vector {
	v := make([]float32, f.dim)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if f.vocab == nil {
		f.vocab = map[string]int{}
	}
	for _, w := range words {
		idx, ok := f.vocab[w]
		if !ok {
			// slot 0 is reserved so that no vector has zero norm
			idx = len(f.vocab) + 1
			f.vocab[w] = idx
		}
		v[idx%f.dim]++
	}
	v[0] = 0.01
	return vectordb.DenseVector(v)
}

type recorder struct {
	upserted  map[string]int
	failures  map[string]int
	served    map[string]int
	fallbacks map[string]int
}

func newRecorder() *recorder {
	return &recorder{
		upserted:  map[string]int{},
		failures:  map[string]int{},
		served:    map[string]int{},
		fallbacks: map[string]int{},
	}
}

func (r *recorder) PointsUpserted(collection, mode string, n int) {
	r.upserted[collection+"/"+mode] += n
}
func (r *recorder) RecordFailed(kind string)                   { r.failures[kind]++ }
func (r *recorder) SearchServed(requested, used string)        { r.served[requested+"->"+used]++ }
func (r *recorder) SearchFellBack(collection string)           { r.fallbacks[collection]++ }
func (r *recorder) ObserveDuration(start time.Time, op string) {}

type logEntry struct {
	level string
	msg   string
}

type captureLogger struct {
	entries []logEntry
}

func (l *captureLogger) Info(msg string, _ error, _ ...map[string]interface{}) {
	l.entries = append(l.entries, logEntry{"info", msg})
}
func (l *captureLogger) Debug(msg string, _ error, _ ...map[string]interface{}) {
	l.entries = append(l.entries, logEntry{"debug", msg})
}
func (l *captureLogger) Warn(msg string, _ error, _ ...map[string]interface{}) {
	l.entries = append(l.entries, logEntry{"warn", msg})
}
func (l *captureLogger) Error(msg string, _ error, _ ...map[string]interface{}) {
	l.entries = append(l.entries, logEntry{"error", msg})
}

func (l *captureLogger) count(level string) int {
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

func commandRecords() []record.Record {
	return []record.Record{
		record.New(map[string]any{
			"id":       1,
			"name":     "Show-ADTInstallationPrompt",
			"synopsis": "Displays a custom installation prompt with buttons.",
		}),
		record.New(map[string]any{
			"id":       2,
			"name":     "Close-ADTDialog",
			"synopsis": "Closes the currently open dialog window.",
			"parameters": []any{
				map[string]any{"name": "Force", "description": "Close the dialog without confirmation."},
			},
		}),
		record.New(map[string]any{
			"id":       3,
			"name":     "Start-ADTProcess",
			"synopsis": "Starts an executable and waits for it to exit.",
		}),
		record.New(map[string]any{
			"id":       4,
			"name":     "Remove-ADTFile",
			"synopsis": "Removes files or folders from the system.",
		}),
		record.New(map[string]any{
			"id":       5,
			"name":     "Get-ADTRegistryKey",
			"synopsis": "Reads a registry key value.",
		}),
	}
}
