package main

import (
	"bytes"
	"context"
	"encoding/json"
	"hash/fnv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"
)

const testDim = 32

// newInferenceServer serves an OpenAI-compatible /embeddings endpoint that
// embeds texts as hashed bags of words, and points the embedding config at
// it.
func newInferenceServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/embeddings" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		type item struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		}
		resp := struct {
			Data []item `json:"data"`
		}{}
		for i, text := range req.Input {
			resp.Data = append(resp.Data, item{Index: i, Embedding: bagOfWords(text)})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	setTestEnv(t, srv.URL)
	return srv
}

func setTestEnv(t *testing.T, endpoint string) {
	t.Helper()
	t.Setenv("EMBEDDING_PROVIDER", "inference")
	t.Setenv("EMBEDDING_ENDPOINT", endpoint)
	t.Setenv("EMBEDDING_DIMENSION", "32")
	t.Setenv("VECSEARCH_STORE", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("METRICS_ADDRESS", "")
	t.Setenv("METRICS_PUSHGATEWAY_URL", "")
	t.Setenv("TRACER_ENABLE_EXPORT", "")
	t.Setenv("ZAP_LOGGER_LEVEL", "error")
}

func bagOfWords(text string) []float64 {
	v := make([]float64, testDim)
	v[0] = 0.01
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		v[1+int(h.Sum32()%(testDim-1))]++
	}
	return v
}

// execute runs the CLI with args against the in-memory store of a.
func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd("test", a)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--store", "memory"))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return v
}

const commandsJSON = `[
  {"id": 1, "name": "Show-ADTInstallationPrompt", "synopsis": "Displays a custom installation prompt with buttons."},
  {"id": 2, "name": "Close-ADTDialog", "synopsis": "Closes the currently open dialog window.",
   "parameters": [{"name": "Force", "description": "Close the dialog without confirmation."}]},
  {"id": 3, "name": "Start-ADTProcess", "synopsis": "Starts an executable and waits for it to exit."}
]`

func writeRecords(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write records: %v", err)
	}
	return path
}
