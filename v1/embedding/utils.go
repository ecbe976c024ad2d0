package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// httpTransport carries what every provider needs to talk HTTP.
type httpTransport struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// postJSON sends an HTTP POST request to the inference API.
// It marshals the given body as JSON, attaches required headers,
// classifies HTTP error codes, and decodes the response JSON into `out`.
//
// Classification:
//   - connection failures, 401, 403 and 404 → ErrModelUnavailable
//   - any other non-2xx status, undecodable body → ErrEmbeddingFailed
//   - context cancellation is returned unchanged
func (t *httpTransport) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode request: %w", ErrEmbeddingFailed, err)
	}

	url := t.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrModelUnavailable, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		switch resp.StatusCode {
		case http.StatusNotFound, http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: http %d for %s: %s", ErrModelUnavailable, resp.StatusCode, url, bytes.TrimSpace(msg))
		default:
			return fmt.Errorf("%w: http %d for %s: %s", ErrEmbeddingFailed, resp.StatusCode, url, bytes.TrimSpace(msg))
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: decode response: %w", ErrEmbeddingFailed, err)
		}
	}
	return nil
}

// checkCount verifies a provider returned one vector per input.
func checkCount(provider string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s returned %d embeddings for %d inputs", ErrEmbeddingFailed, provider, got, want)
	}
	return nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
