// Package ragctx selects and formats journal snippets used as grounding
// context for answer generation. It adds no ranking of its own: retrieval
// order is kept, the selector only bounds, deduplicates and renders.
package ragctx

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindlens/internal/models"
	"github.com/dmitrijs2005/mindlens/internal/retrieval"
)

// DefaultMaxSnippets bounds the grounding context when no limit is
// configured.
const DefaultMaxSnippets = 5

// Snippet is one formatted journal excerpt handed to the summarizer.
type Snippet struct {
	DocID     string
	Date      string
	Text      string
	Emotions  []string
	Tags      []string
	Sentiment string
}

// String renders the snippet as a single context line.
func (s Snippet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- [%s] %s", s.Date, s.Text)

	var notes []string
	if len(s.Emotions) > 0 {
		notes = append(notes, "emotions: "+strings.Join(s.Emotions, ", "))
	}
	if len(s.Tags) > 0 {
		notes = append(notes, "tags: "+strings.Join(s.Tags, ", "))
	}
	if s.Sentiment != "" {
		notes = append(notes, "sentiment: "+s.Sentiment)
	}
	if len(notes) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(notes, "; "))
	}
	return b.String()
}

// Searcher is the retrieval capability the selector builds on.
type Searcher interface {
	Search(ctx context.Context, query string, k int, filter retrieval.Filter) ([]models.Entry, error)
}

// Selector turns a question into a bounded, deduplicated snippet list.
type Selector struct {
	search Searcher
	max    int
}

// NewSelector returns a Selector bounded to max snippets; max <= 0 means
// DefaultMaxSnippets.
func NewSelector(search Searcher, max int) *Selector {
	if max <= 0 {
		max = DefaultMaxSnippets
	}
	return &Selector{search: search, max: max}
}

// Select retrieves entries relevant to question and converts them to
// snippets, dropping duplicate doc ids.
func (s *Selector) Select(ctx context.Context, question string, filter retrieval.Filter) ([]Snippet, error) {
	entries, err := s.search.Search(ctx, question, s.max, filter)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(entries))
	var snippets []Snippet
	for _, e := range entries {
		if _, dup := seen[e.DocID]; dup {
			continue
		}
		seen[e.DocID] = struct{}{}
		snippets = append(snippets, Snippet{
			DocID:     e.DocID,
			Date:      e.Date,
			Text:      e.EmbeddingText(),
			Emotions:  e.Emotions,
			Tags:      e.Tags,
			Sentiment: e.Sentiment,
		})
		if len(snippets) == s.max {
			break
		}
	}
	return snippets, nil
}
