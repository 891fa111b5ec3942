package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mindlens/internal/alerts"
	"github.com/dmitrijs2005/mindlens/internal/common"
	"github.com/dmitrijs2005/mindlens/internal/journal"
	"github.com/dmitrijs2005/mindlens/internal/logging"
	"github.com/dmitrijs2005/mindlens/internal/models"
	"github.com/dmitrijs2005/mindlens/internal/risk"
	"github.com/dmitrijs2005/mindlens/internal/vectorindex"
)

type stubEmbedder struct {
	mu    sync.Mutex
	dim   int
	err   error
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	v := make([]float32, s.dim)
	for i, r := range text {
		v[i%s.dim] += float32(r)
	}
	return v, nil
}

type memLedger struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemLedger() *memLedger { return &memLedger{seen: map[string]bool{}} }

func (l *memLedger) MarkIfNew(_ context.Context, docID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen[docID] {
		return false, nil
	}
	l.seen[docID] = true
	return true, nil
}

func (l *memLedger) Alerted(_ context.Context, docID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seen[docID], nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []alerts.Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, e alerts.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return n.err
}

func newTestPipeline(t *testing.T, emb *stubEmbedder) (*Pipeline, *journal.Journal, *vectorindex.Index, *recordingNotifier) {
	t.Helper()
	dir := t.TempDir()

	j, err := journal.Open(filepath.Join(dir, "entries.jsonl"), logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	ix := vectorindex.New(filepath.Join(dir, "index.json"))
	notifier := &recordingNotifier{}

	p := New(j, ix, emb, risk.NewScorer(risk.DefaultLexicon()),
		newMemLedger(), notifier, logging.NewNopLogger())
	return p, j, ix, notifier
}

func TestIngest_RejectsEmptyEntry(t *testing.T) {
	p, j, ix, _ := newTestPipeline(t, &stubEmbedder{dim: 4})

	_, err := p.Ingest(context.Background(), models.ProcessedEntry{Tags: []string{"work"}})
	assert.ErrorIs(t, err, common.ErrEmptyEntry)
	assert.Equal(t, 0, j.Count())
	assert.Equal(t, 0, ix.Size())
}

func TestIngest_PersistsEntryAndVector(t *testing.T) {
	emb := &stubEmbedder{dim: 4}
	p, j, ix, _ := newTestPipeline(t, emb)
	p.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

	entry, err := p.Ingest(context.Background(), models.ProcessedEntry{
		Date:     "14-03-2026",
		Text:     "had a calm walk in the park",
		Emotions: []string{"joy", "relief"},
		Tags:     []string{"outdoors"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.DocID)
	assert.Equal(t, "2026-03-14", entry.Date)
	assert.Equal(t, common.SentimentPositive, entry.Sentiment)
	assert.Equal(t, string(risk.LabelLow), entry.RiskLabel)

	assert.Equal(t, 1, j.Count())
	assert.Equal(t, 1, ix.Size())

	stored, err := j.GetByID(entry.DocID)
	require.NoError(t, err)
	assert.Equal(t, entry.Text, stored.Text)
}

func TestIngest_KeepsExplicitSentiment(t *testing.T) {
	p, _, _, _ := newTestPipeline(t, &stubEmbedder{dim: 4})

	entry, err := p.Ingest(context.Background(), models.ProcessedEntry{
		Text:      "rough day",
		Emotions:  []string{"joy"},
		Sentiment: common.SentimentNegative,
	})
	require.NoError(t, err)
	assert.Equal(t, common.SentimentNegative, entry.Sentiment)
}

func TestIngest_EmbedderDown_NothingWritten(t *testing.T) {
	emb := &stubEmbedder{err: fmt.Errorf("connect: %w", common.ErrEmbeddingUnavailable)}
	p, j, ix, _ := newTestPipeline(t, emb)

	_, err := p.Ingest(context.Background(), models.ProcessedEntry{Text: "anything"})
	assert.ErrorIs(t, err, common.ErrEmbeddingUnavailable)
	assert.Equal(t, 0, j.Count())
	assert.Equal(t, 0, ix.Size())
}

func TestIngest_DimensionMismatch_NothingWritten(t *testing.T) {
	emb := &stubEmbedder{dim: 4}
	p, j, ix, _ := newTestPipeline(t, emb)
	ctx := context.Background()

	_, err := p.Ingest(ctx, models.ProcessedEntry{Text: "first entry"})
	require.NoError(t, err)

	emb.dim = 8
	_, err = p.Ingest(ctx, models.ProcessedEntry{Text: "second entry"})
	assert.ErrorIs(t, err, common.ErrDimensionMismatch)
	assert.Equal(t, 1, j.Count())
	assert.Equal(t, 1, ix.Size())
}

func TestIngest_HighRiskAlertsOnce(t *testing.T) {
	p, _, _, notifier := newTestPipeline(t, &stubEmbedder{dim: 4})
	ctx := context.Background()

	highRisk := "I feel hopeless and worthless, nobody cares"
	entry, err := p.Ingest(ctx, models.ProcessedEntry{Text: highRisk})
	require.NoError(t, err)
	require.Equal(t, string(risk.LabelHigh), entry.RiskLabel)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, entry.DocID, notifier.events[0].DocID)
	assert.Equal(t, string(risk.LabelHigh), notifier.events[0].RiskLabel)

	// a correction of the same entry stays high risk but must not re-alert
	_, err = p.Ingest(ctx, models.ProcessedEntry{
		Text:       highRisk + " still",
		Supersedes: entry.DocID,
	})
	require.NoError(t, err)
	assert.Len(t, notifier.events, 1)
}

func TestIngest_LowRiskDoesNotAlert(t *testing.T) {
	p, _, _, notifier := newTestPipeline(t, &stubEmbedder{dim: 4})

	_, err := p.Ingest(context.Background(), models.ProcessedEntry{Text: "a quiet ordinary day"})
	require.NoError(t, err)
	assert.Empty(t, notifier.events)
}

func TestIngest_NotifierFailureDoesNotFailIngest(t *testing.T) {
	p, j, _, notifier := newTestPipeline(t, &stubEmbedder{dim: 4})
	notifier.err = errors.New("smtp down")

	_, err := p.Ingest(context.Background(),
		models.ProcessedEntry{Text: "I feel hopeless and worthless, nobody cares"})
	require.NoError(t, err)
	assert.Equal(t, 1, j.Count())
}

func TestDelete_AppendsTombstone(t *testing.T) {
	p, j, ix, _ := newTestPipeline(t, &stubEmbedder{dim: 4})
	ctx := context.Background()

	entry, err := p.Ingest(ctx, models.ProcessedEntry{Text: "to be removed"})
	require.NoError(t, err)

	require.NoError(t, p.Delete(ctx, entry.DocID))

	// the original record is still journaled but folded from the view
	assert.Equal(t, 2, j.Count())
	assert.Equal(t, 2, ix.Size())
	assert.Empty(t, j.Current())
	assert.False(t, j.IsCurrent(0))
	assert.False(t, j.IsCurrent(1))
}

func TestDelete_UnknownDocID(t *testing.T) {
	p, j, _, _ := newTestPipeline(t, &stubEmbedder{dim: 4})

	err := p.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 0, j.Count())
}

func TestReconcile_ReembedsMissingTail(t *testing.T) {
	dir := t.TempDir()
	emb := &stubEmbedder{dim: 4}

	j, err := journal.Open(filepath.Join(dir, "entries.jsonl"), logging.NewNopLogger())
	require.NoError(t, err)
	defer j.Close()

	indexPath := filepath.Join(dir, "index.json")
	p := New(j, vectorindex.New(indexPath), emb,
		risk.NewScorer(risk.DefaultLexicon()), nil, nil, logging.NewNopLogger())
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		_, err := p.Ingest(ctx, models.ProcessedEntry{Text: text})
		require.NoError(t, err)
	}

	// simulate a crash between journal append and index persist
	require.NoError(t, os.Remove(indexPath))

	fresh := vectorindex.New(indexPath)
	p2 := New(j, fresh, emb, risk.NewScorer(risk.DefaultLexicon()),
		nil, nil, logging.NewNopLogger())

	require.NoError(t, p2.Reconcile(ctx))
	assert.Equal(t, 3, fresh.Size())
	assert.False(t, p2.Degraded())

	// persisted: a reload sees all three vectors
	reloaded := vectorindex.New(indexPath)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 3, reloaded.Size())
}

func TestReconcile_RebuildsCorruptIndex(t *testing.T) {
	dir := t.TempDir()
	emb := &stubEmbedder{dim: 4}

	j, err := journal.Open(filepath.Join(dir, "entries.jsonl"), logging.NewNopLogger())
	require.NoError(t, err)
	defer j.Close()

	indexPath := filepath.Join(dir, "index.json")
	p := New(j, vectorindex.New(indexPath), emb,
		risk.NewScorer(risk.DefaultLexicon()), nil, nil, logging.NewNopLogger())
	ctx := context.Background()

	_, err = p.Ingest(ctx, models.ProcessedEntry{Text: "one"})
	require.NoError(t, err)
	_, err = p.Ingest(ctx, models.ProcessedEntry{Text: "two"})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(indexPath, []byte("{not json"), 0o600))

	fresh := vectorindex.New(indexPath)
	p2 := New(j, fresh, emb, risk.NewScorer(risk.DefaultLexicon()),
		nil, nil, logging.NewNopLogger())

	require.NoError(t, p2.Reconcile(ctx))
	assert.Equal(t, 2, fresh.Size())
	assert.False(t, p2.Degraded())
}

func TestReconcile_EmbedderDown_Degrades(t *testing.T) {
	dir := t.TempDir()
	emb := &stubEmbedder{dim: 4}

	j, err := journal.Open(filepath.Join(dir, "entries.jsonl"), logging.NewNopLogger())
	require.NoError(t, err)
	defer j.Close()

	indexPath := filepath.Join(dir, "index.json")
	p := New(j, vectorindex.New(indexPath), emb,
		risk.NewScorer(risk.DefaultLexicon()), nil, nil, logging.NewNopLogger())
	ctx := context.Background()

	_, err = p.Ingest(ctx, models.ProcessedEntry{Text: "one"})
	require.NoError(t, err)

	require.NoError(t, os.Remove(indexPath))

	down := &stubEmbedder{err: fmt.Errorf("connect: %w", common.ErrEmbeddingUnavailable)}
	p2 := New(j, vectorindex.New(indexPath), down,
		risk.NewScorer(risk.DefaultLexicon()), nil, nil, logging.NewNopLogger())

	require.NoError(t, p2.Reconcile(ctx))
	assert.True(t, p2.Degraded())
}

// routeEmbedder returns a fixed vector per text, so a test can tell which
// journal entry a given index position holds.
type routeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	err     error
}

func (s *routeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return v, nil
}

func TestIngest_RepairsIndexGapAfterDegradedRestart(t *testing.T) {
	dir := t.TempDir()
	emb := &routeEmbedder{vectors: map[string][]float32{
		"planned the week":                      {1, 0, 0},
		"argument at work about the budget":     {0, 1, 0},
		"booked flights for the summer holiday": {0, 0, 1},
	}}

	j, err := journal.Open(filepath.Join(dir, "entries.jsonl"), logging.NewNopLogger())
	require.NoError(t, err)
	defer j.Close()

	indexPath := filepath.Join(dir, "index.json")
	p := New(j, vectorindex.New(indexPath), emb,
		risk.NewScorer(risk.DefaultLexicon()), nil, nil, logging.NewNopLogger())
	ctx := context.Background()

	_, err = p.Ingest(ctx, models.ProcessedEntry{Text: "planned the week"})
	require.NoError(t, err)

	// crash between journal append and index add: the entry is journaled
	// but its vector never landed
	_, err = j.Append(&models.Entry{
		DocID:     models.NewDocID(),
		Date:      "2026-03-15",
		Text:      "argument at work about the budget",
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// restart with the embedder down: degraded, index still one short
	emb.err = fmt.Errorf("connect: %w", common.ErrEmbeddingUnavailable)
	fresh := vectorindex.New(indexPath)
	p2 := New(j, fresh, emb, risk.NewScorer(risk.DefaultLexicon()),
		nil, nil, logging.NewNopLogger())
	require.NoError(t, p2.Reconcile(ctx))
	require.True(t, p2.Degraded())
	require.Equal(t, 1, fresh.Size())

	// the embedder recovers; the next ingest must close the gap so the
	// new vector lands at its journal ordinal
	emb.err = nil
	_, err = p2.Ingest(ctx, models.ProcessedEntry{Text: "booked flights for the summer holiday"})
	require.NoError(t, err)
	require.Equal(t, 3, j.Count())
	require.Equal(t, 3, fresh.Size())

	hits, err := fresh.Search([]float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Ordinal)

	hits, err = fresh.Search([]float32{0, 0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Ordinal)
}

func TestDelete_RepairsIndexGap(t *testing.T) {
	p, j, ix, _ := newTestPipeline(t, &stubEmbedder{dim: 4})
	ctx := context.Background()

	first, err := p.Ingest(ctx, models.ProcessedEntry{Text: "to be removed"})
	require.NoError(t, err)

	// journaled but never indexed
	_, err = j.Append(&models.Entry{
		DocID:     models.NewDocID(),
		Date:      "2026-03-15",
		Text:      "argument at work about the budget",
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, p.Delete(ctx, first.DocID))
	assert.Equal(t, 3, j.Count())
	assert.Equal(t, 3, ix.Size())
	assert.True(t, j.IsCurrent(1))
}

func TestReconcile_UpToDateIndexIsNoop(t *testing.T) {
	dir := t.TempDir()
	emb := &stubEmbedder{dim: 4}

	j, err := journal.Open(filepath.Join(dir, "entries.jsonl"), logging.NewNopLogger())
	require.NoError(t, err)
	defer j.Close()

	indexPath := filepath.Join(dir, "index.json")
	p := New(j, vectorindex.New(indexPath), emb,
		risk.NewScorer(risk.DefaultLexicon()), nil, nil, logging.NewNopLogger())
	ctx := context.Background()

	_, err = p.Ingest(ctx, models.ProcessedEntry{Text: "one"})
	require.NoError(t, err)

	fresh := vectorindex.New(indexPath)
	p2 := New(j, fresh, emb, risk.NewScorer(risk.DefaultLexicon()),
		nil, nil, logging.NewNopLogger())

	callsBefore := emb.calls
	require.NoError(t, p2.Reconcile(ctx))
	assert.Equal(t, 1, fresh.Size())
	assert.Equal(t, callsBefore, emb.calls)
}
