package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindlens/internal/ragctx"
)

// formatterExcerptLimit bounds the entry text shown per snippet in the
// extractive summary.
const formatterExcerptLimit = 150

// Formatter is the zero-dependency summarizer: a plain extractive listing
// of the retrieved snippets. It never fails.
type Formatter struct{}

func (Formatter) Summarize(_ context.Context, question string, snippets []ragctx.Snippet) (string, error) {
	if len(snippets) == 0 {
		return NoMatchesAnswer, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summary for: %s\n\n", question)
	fmt.Fprintf(&b, "Found %d relevant entries:\n\n", len(snippets))

	for i, s := range snippets {
		text := s.Text
		if runes := []rune(text); len(runes) > formatterExcerptLimit {
			text = string(runes[:formatterExcerptLimit]) + "..."
		}
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, s.Date, text)
		if len(s.Emotions) > 0 {
			fmt.Fprintf(&b, "   Emotions: %s\n", strings.Join(s.Emotions, ", "))
		}
		if s.Sentiment != "" {
			fmt.Fprintf(&b, "   Sentiment: %s\n", s.Sentiment)
		}
		if len(s.Tags) > 0 {
			fmt.Fprintf(&b, "   Tags: %s\n", strings.Join(s.Tags, ", "))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
