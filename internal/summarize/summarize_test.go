package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mindlens/internal/logging"
	"github.com/dmitrijs2005/mindlens/internal/ragctx"
)

var sampleSnippets = []ragctx.Snippet{
	{
		DocID:     "a",
		Date:      "2026-02-01",
		Text:      "long walk after work, felt lighter",
		Emotions:  []string{"relief"},
		Tags:      []string{"outdoors"},
		Sentiment: "positive",
	},
	{DocID: "b", Date: "2026-02-03", Text: "slept badly again"},
}

type stubBackend struct {
	answer string
	err    error
	calls  int
}

func (s *stubBackend) Summarize(context.Context, string, []ragctx.Snippet) (string, error) {
	s.calls++
	return s.answer, s.err
}

func TestService_EmptySnippets(t *testing.T) {
	backend := &stubBackend{answer: "unused"}
	svc := NewService(backend, logging.NewNopLogger())

	got, err := svc.Summarize(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Equal(t, NoMatchesAnswer, got)
	assert.Zero(t, backend.calls)
}

func TestService_UsesBackend(t *testing.T) {
	backend := &stubBackend{answer: "a generated summary"}
	svc := NewService(backend, logging.NewNopLogger())

	got, err := svc.Summarize(context.Background(), "q", sampleSnippets)
	require.NoError(t, err)
	assert.Equal(t, "a generated summary", got)
}

func TestService_FallsBackOnBackendError(t *testing.T) {
	backend := &stubBackend{err: errors.New("model overloaded")}
	svc := NewService(backend, logging.NewNopLogger())

	got, err := svc.Summarize(context.Background(), "sleep", sampleSnippets)
	require.NoError(t, err)
	assert.Contains(t, got, "Summary for: sleep")
	assert.Contains(t, got, "Found 2 relevant entries")
}

func TestService_NoBackendUsesFormatter(t *testing.T) {
	svc := NewService(nil, logging.NewNopLogger())

	got, err := svc.Summarize(context.Background(), "walks", sampleSnippets)
	require.NoError(t, err)
	assert.Contains(t, got, "1. [2026-02-01] long walk after work, felt lighter")
	assert.Contains(t, got, "Emotions: relief")
	assert.Contains(t, got, "Tags: outdoors")
}

func TestFormatter_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("x", 200)
	got, err := Formatter{}.Summarize(context.Background(), "q",
		[]ragctx.Snippet{{Date: "2026-01-01", Text: long}})
	require.NoError(t, err)
	assert.Contains(t, got, strings.Repeat("x", 150)+"...")
	assert.NotContains(t, got, strings.Repeat("x", 151))
}

func TestHFSummarizer_Success(t *testing.T) {
	var gotReq chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  a warm summary  "}},
			},
		})
	}))
	defer srv.Close()

	h := NewHFSummarizer("some/model", "token123", srv.URL)
	got, err := h.Summarize(context.Background(), "how were my walks", sampleSnippets)
	require.NoError(t, err)
	assert.Equal(t, "a warm summary", got)

	assert.Equal(t, "some/model", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Contains(t, gotReq.Messages[0].Content, "User Query: how were my walks")
	assert.Contains(t, gotReq.Messages[0].Content,
		"- [2026-02-01] long walk after work, felt lighter (emotions: relief; tags: outdoors; sentiment: positive)")
}

func TestHFSummarizer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	h := NewHFSummarizer("", "", srv.URL)
	_, err := h.Summarize(context.Background(), "q", sampleSnippets)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestHFSummarizer_EmptyOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "   "}},
			},
		})
	}))
	defer srv.Close()

	h := NewHFSummarizer("", "", srv.URL)
	_, err := h.Summarize(context.Background(), "q", sampleSnippets)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty output")
}

func TestHFSummarizer_Defaults(t *testing.T) {
	h := NewHFSummarizer("", "", "")
	assert.Equal(t, DefaultHFBaseURL, h.baseURL)
	assert.Equal(t, DefaultHFModel, h.model)
}
