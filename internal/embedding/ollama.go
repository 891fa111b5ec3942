package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultOllamaBaseURL is the standard local Ollama API endpoint.
const DefaultOllamaBaseURL = "http://localhost:11434/api"

// OllamaEmbedder computes embeddings through a local Ollama server.
type OllamaEmbedder struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// NewOllamaEmbedder creates a client for the given model. An empty baseURL
// falls back to DefaultOllamaBaseURL.
func NewOllamaEmbedder(model, baseURL string) *OllamaEmbedder {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	return &OllamaEmbedder{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// SetTimeout overrides the per-request timeout.
func (e *OllamaEmbedder) SetTimeout(d time.Duration) {
	if d > 0 {
		e.httpClient.Timeout = d
	}
}

// Embed requests an embedding vector for text. All transport and decoding
// failures are reported as common.ErrEmbeddingUnavailable so the pipeline
// can distinguish a missing capability from a validation problem.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody, err := json.Marshal(ollamaEmbeddingRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.baseURL+"/embeddings", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create embedding request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, unavailable(fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var embedResp ollamaEmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, unavailable(fmt.Errorf("decode response: %w", err))
	}
	if len(embedResp.Embedding) == 0 {
		return nil, unavailable(fmt.Errorf("empty embedding for model %s", e.model))
	}

	return embedResp.Embedding, nil
}
