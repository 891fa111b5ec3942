package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindlens/internal/ragctx"
)

// DefaultHFBaseURL is the Hugging Face Inference chat-completions endpoint.
const DefaultHFBaseURL = "https://router.huggingface.co/v1"

// DefaultHFModel is used when no model is configured.
const DefaultHFModel = "meta-llama/Llama-3.1-8B-Instruct"

// Generation parameters for the chat call. Low temperature keeps the
// summary close to the excerpts.
const (
	hfMaxTokens   = 500
	hfTemperature = 0.3
	hfTopP        = 0.9
)

const promptTemplate = `You are MindLens, an empathetic and insightful diary assistant.

User Query: %s

Below are the most relevant diary excerpts retrieved for the query.
Analyze them carefully and produce a thoughtful, coherent summary that addresses the user's request.

Your task:
1. Identify recurring patterns, themes, and emotional tones across the excerpts.
2. Reference specific dates when they appear; otherwise use relative phrasing.
3. Provide empathetic insight: validate the writer's emotions and note emotional shifts or coping strategies.
4. Keep the response concise but meaningful (2-3 paragraphs of natural, reflective prose).
5. Do not fabricate details or events not supported by the excerpts.

Tone: warm, respectful, non-clinical. Write fluent narrative paragraphs, quoting the diary only when it enriches the interpretation.

Diary Excerpts:
%s

Your Summary:
`

// HFSummarizer generates summaries through the Hugging Face Inference API
// using the OpenAI-compatible chat-completions route.
type HFSummarizer struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewHFSummarizer creates a client. Empty baseURL and model fall back to
// the defaults; the token is sent as a bearer credential.
func NewHFSummarizer(model, token, baseURL string) *HFSummarizer {
	if baseURL == "" {
		baseURL = DefaultHFBaseURL
	}
	if model == "" {
		model = DefaultHFModel
	}
	return &HFSummarizer{
		baseURL: baseURL,
		model:   model,
		token:   token,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (h *HFSummarizer) Summarize(ctx context.Context, question string, snippets []ragctx.Snippet) (string, error) {
	reqBody, err := json.Marshal(chatCompletionRequest{
		Model:       h.model,
		Messages:    []chatMessage{{Role: "user", Content: buildPrompt(question, snippets)}},
		MaxTokens:   hfMaxTokens,
		Temperature: hfTemperature,
		TopP:        hfTopP,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		h.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat completion call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode, body)
	}

	var chatResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	answer := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("chat completion returned empty output")
	}
	return answer, nil
}

func buildPrompt(question string, snippets []ragctx.Snippet) string {
	var context strings.Builder
	for _, s := range snippets {
		context.WriteString(s.String())
		context.WriteString("\n")
	}
	return fmt.Sprintf(promptTemplate, question, context.String())
}
