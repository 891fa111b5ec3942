// Package summarize produces a natural-language answer over selected diary
// snippets. Generation is a best-effort capability: a configured backend is
// tried first and any failure falls back to a plain formatted summary, so
// the answer path never hard-fails on a remote model.
package summarize

import (
	"context"

	"github.com/dmitrijs2005/mindlens/internal/logging"
	"github.com/dmitrijs2005/mindlens/internal/ragctx"
)

// Summarizer generates an answer to question grounded in the snippets.
type Summarizer interface {
	Summarize(ctx context.Context, question string, snippets []ragctx.Snippet) (string, error)
}

// NoMatchesAnswer is returned when retrieval found nothing to summarize.
const NoMatchesAnswer = "No matching entries found."

// Service routes summarization to the configured backend and degrades to
// the extractive Formatter when the backend is absent or fails.
type Service struct {
	backend  Summarizer
	fallback Formatter
	log      logging.Logger
}

// NewService wires a Service. A nil backend means fallback-only
// summarization.
func NewService(backend Summarizer, log logging.Logger) *Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Service{backend: backend, log: log}
}

func (s *Service) Summarize(ctx context.Context, question string, snippets []ragctx.Snippet) (string, error) {
	if len(snippets) == 0 {
		return NoMatchesAnswer, nil
	}

	if s.backend == nil {
		return s.fallback.Summarize(ctx, question, snippets)
	}

	answer, err := s.backend.Summarize(ctx, question, snippets)
	if err != nil {
		s.log.Warn(ctx, "summarization backend failed, using formatted summary", "error", err)
		return s.fallback.Summarize(ctx, question, snippets)
	}
	return answer, nil
}
