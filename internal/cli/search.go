package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/mindlens/internal/common"
	"github.com/dmitrijs2005/mindlens/internal/retrieval"
)

const defaultSearchResults = 5

// Search runs a semantic query over the journal, optionally restricted by
// emotion and tag filters. An empty query browses by filters alone.
func (a *App) Search(ctx context.Context) error {
	query, err := GetSimpleText(a.reader, "Search query (empty to browse by filters only)", a.out)
	if err != nil {
		return err
	}

	emotions, err := GetList(a.reader, "Filter by emotions (comma-separated, optional)", a.out)
	if err != nil {
		return err
	}

	tags, err := GetList(a.reader, "Filter by tags (comma-separated, optional)", a.out)
	if err != nil {
		return err
	}

	k := defaultSearchResults
	if raw, err := GetSimpleText(a.reader, "Max results (default 5)", a.out); err == nil && raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n > 0 {
			k = n
		}
	}

	entries, err := a.engine.Search(ctx, query, k, retrieval.Filter{Emotions: emotions, Tags: tags})
	if err != nil {
		if errors.Is(err, common.ErrSearchDegraded) || errors.Is(err, common.ErrEmbeddingUnavailable) {
			a.println("Semantic search is unavailable right now. Try an empty query with filters instead.")
			return nil
		}
		return err
	}

	if len(entries) == 0 {
		a.println("No matching entries.")
		return nil
	}
	for _, e := range entries {
		a.println(formatEntry(e))
	}
	return nil
}

// Ask answers a free-form question grounded in retrieved diary snippets.
func (a *App) Ask(ctx context.Context) error {
	question, err := GetSimpleText(a.reader, "Your question", a.out)
	if err != nil {
		return err
	}
	if question == "" {
		a.println("Nothing to ask.")
		return nil
	}

	snippets, err := a.selector.Select(ctx, question, retrieval.Filter{})
	if err != nil {
		if errors.Is(err, common.ErrSearchDegraded) || errors.Is(err, common.ErrEmbeddingUnavailable) {
			a.println("Semantic search is unavailable right now, so questions cannot be answered.")
			return nil
		}
		return err
	}

	answer, err := a.summarizer.Summarize(ctx, question, snippets)
	if err != nil {
		return err
	}

	a.println(answer)
	return nil
}
