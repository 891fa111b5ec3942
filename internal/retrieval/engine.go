package retrieval

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/mindlens/internal/common"
	"github.com/dmitrijs2005/mindlens/internal/embedding"
	"github.com/dmitrijs2005/mindlens/internal/journal"
	"github.com/dmitrijs2005/mindlens/internal/logging"
	"github.com/dmitrijs2005/mindlens/internal/models"
	"github.com/dmitrijs2005/mindlens/internal/vectorindex"
)

// overFetchFactor is how many extra candidates are pulled from the index
// per requested result, to leave room for superseded records and filter
// misses before widening to a full scan.
const overFetchFactor = 4

// Filter restricts search results by labels. A non-empty field matches
// entries sharing at least one of its values; empty fields match anything.
type Filter struct {
	Emotions []string
	Tags     []string
}

// IsEmpty reports whether the filter restricts nothing.
func (f Filter) IsEmpty() bool {
	return len(f.Emotions) == 0 && len(f.Tags) == 0
}

// Engine answers semantic search queries over the journal through the
// vector index. It holds no state of its own beyond the degraded flag.
type Engine struct {
	journal  *journal.Journal
	index    *vectorindex.Index
	embedder embedding.Embedder
	log      logging.Logger
	degraded atomic.Bool
}

func New(j *journal.Journal, ix *vectorindex.Index, emb embedding.Embedder, log logging.Logger) *Engine {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Engine{journal: j, index: ix, embedder: emb, log: log}
}

// SetDegraded switches semantic search off (or back on). While degraded,
// Search fails with common.ErrSearchDegraded; filter-only scans keep
// working because they never touch the index.
func (e *Engine) SetDegraded(v bool) {
	e.degraded.Store(v)
}

// Search returns up to k current entries relevant to query, best match
// first, restricted by filter. An empty query skips the index entirely and
// scans the current view in journal order.
func (e *Engine) Search(ctx context.Context, query string, k int, filter Filter) ([]models.Entry, error) {
	if k <= 0 {
		return nil, nil
	}

	if strings.TrimSpace(query) == "" {
		return e.scan(k, filter), nil
	}

	if e.degraded.Load() {
		return nil, common.ErrSearchDegraded
	}
	if e.index.Size() == 0 {
		return nil, nil
	}

	qvec, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := e.index.Search(qvec, k*overFetchFactor)
	if err != nil {
		return nil, err
	}
	result := e.collect(ctx, hits, k, filter)

	// One widening pass: when filters ate into the over-fetched batch and
	// the index still holds unseen candidates, rank the whole store once.
	if len(result) < k && e.index.Size() > len(hits) {
		hits, err = e.index.Search(qvec, e.index.Size())
		if err != nil {
			return nil, err
		}
		result = e.collect(ctx, hits, k, filter)
	}

	return result, nil
}

// collect maps ranked index hits back to journal records, dropping
// non-current ordinals and filter misses, stopping at k.
func (e *Engine) collect(ctx context.Context, hits []vectorindex.Hit, k int, filter Filter) []models.Entry {
	var result []models.Entry
	for _, hit := range hits {
		if !e.journal.IsCurrent(hit.Ordinal) {
			continue
		}
		entry, err := e.journal.At(hit.Ordinal)
		if err != nil {
			e.log.Warn(ctx, "index ordinal has no journal record, skipping",
				"ordinal", hit.Ordinal, "error", err)
			continue
		}
		if !matches(entry, filter) {
			continue
		}
		result = append(result, entry)
		if len(result) == k {
			break
		}
	}
	return result
}

// scan is the filter-only path: journal order, no embedding, no index.
func (e *Engine) scan(k int, filter Filter) []models.Entry {
	var result []models.Entry
	for _, entry := range e.journal.Current() {
		if !matches(entry, filter) {
			continue
		}
		result = append(result, entry)
		if len(result) == k {
			break
		}
	}
	return result
}

func matches(entry models.Entry, f Filter) bool {
	if len(f.Emotions) > 0 && !intersects(entry.Emotions, f.Emotions) {
		return false
	}
	if len(f.Tags) > 0 && !intersects(entry.Tags, f.Tags) {
		return false
	}
	return true
}

func intersects(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
