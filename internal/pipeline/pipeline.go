package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindlens/internal/alerts"
	"github.com/dmitrijs2005/mindlens/internal/common"
	"github.com/dmitrijs2005/mindlens/internal/embedding"
	"github.com/dmitrijs2005/mindlens/internal/journal"
	"github.com/dmitrijs2005/mindlens/internal/logging"
	"github.com/dmitrijs2005/mindlens/internal/models"
	"github.com/dmitrijs2005/mindlens/internal/risk"
	"github.com/dmitrijs2005/mindlens/internal/sentiment"
	"github.com/dmitrijs2005/mindlens/internal/timex"
	"github.com/dmitrijs2005/mindlens/internal/vectorindex"
)

// excerptLimit bounds the entry text carried in a risk event.
const excerptLimit = 120

// Pipeline coordinates the write path: risk scoring, embedding, journal
// append, index update and alerting. A single Pipeline owns the journal and
// the index; all writes go through it.
type Pipeline struct {
	journal  *journal.Journal
	index    *vectorindex.Index
	embedder embedding.Embedder
	scorer   *risk.Scorer
	ledger   alerts.Ledger
	notifier alerts.Notifier
	log      logging.Logger

	// now is a test seam for clock-dependent fields.
	now func() time.Time

	// mu serializes journal append, index add and index persist so the
	// position invariant (journal ordinal == index position) holds.
	mu sync.Mutex

	degraded bool
}

// New wires a Pipeline. The ledger and notifier may be nil, in which case
// no risk events are emitted.
func New(j *journal.Journal, ix *vectorindex.Index, emb embedding.Embedder,
	scorer *risk.Scorer, ledger alerts.Ledger, notifier alerts.Notifier,
	log logging.Logger) *Pipeline {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Pipeline{
		journal:  j,
		index:    ix,
		embedder: emb,
		scorer:   scorer,
		ledger:   ledger,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Ingest processes one entry end to end and returns the durable record.
// When the embedding call fails, nothing is written and the error wraps
// common.ErrEmbeddingUnavailable.
func (p *Pipeline) Ingest(ctx context.Context, in models.ProcessedEntry) (*models.Entry, error) {
	if in.Text == "" && in.AttachmentDesc == "" {
		return nil, common.ErrEmptyEntry
	}

	entry := &models.Entry{
		DocID:          models.NewDocID(),
		Date:           timex.NormalizeDiaryDate(in.Date, p.now),
		Text:           in.Text,
		Emotions:       in.Emotions,
		Tags:           in.Tags,
		Sentiment:      in.Sentiment,
		AttachmentRef:  in.AttachmentRef,
		AttachmentDesc: in.AttachmentDesc,
		Supersedes:     in.Supersedes,
		CreatedAt:      p.now().UTC(),
	}
	if entry.Sentiment == "" {
		entry.Sentiment = sentiment.FromEmotions(entry.Emotions)
	}

	assessment := p.scorer.Score(entry.EmbeddingText())
	entry.RiskScore = assessment.Score
	entry.RiskLabel = string(assessment.Label)

	vector, err := p.embedder.Embed(ctx, entry.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("embedding entry: %w", err)
	}

	p.mu.Lock()
	// A crash between journal append and index add can leave the index
	// short. Repair the gap before this append so the new vector lands
	// at the journal ordinal; the embedder is evidently reachable.
	if err := p.alignLocked(ctx); err != nil {
		p.mu.Unlock()
		return nil, err
	}
	if dim := p.index.Dimension(); dim > 0 && len(vector) != dim {
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: index has %d, got %d",
			common.ErrDimensionMismatch, p.index.Dimension(), len(vector))
	}

	ordinal, err := p.journal.Append(entry)
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}

	pos, err := p.index.Add(vector)
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}
	if pos != ordinal {
		p.mu.Unlock()
		return nil, fmt.Errorf("index position %d out of step with journal ordinal %d",
			pos, ordinal)
	}

	err = p.index.Persist()
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}

	p.log.Info(ctx, "entry indexed",
		"doc_id", entry.DocID, "ordinal", ordinal, "risk_label", entry.RiskLabel)

	if assessment.Label == risk.LabelHigh {
		p.emitAlert(ctx, entry)
	}

	return entry, nil
}

// emitAlert performs the at-most-once notification for a high-risk entry.
// The marker is keyed by the root of the supersede chain, so a correction
// of an already-alerted entry does not alert again.
func (p *Pipeline) emitAlert(ctx context.Context, e *models.Entry) {
	if p.ledger == nil || p.notifier == nil {
		return
	}

	root := p.journal.RootID(e.DocID)
	fresh, err := p.ledger.MarkIfNew(ctx, root)
	if err != nil {
		p.log.Error(ctx, "alert ledger unavailable", "doc_id", e.DocID, "error", err)
		return
	}
	if !fresh {
		return
	}

	event := alerts.Event{
		DocID:     e.DocID,
		RiskLabel: e.RiskLabel,
		Excerpt:   excerpt(e.EmbeddingText()),
	}
	// Delivery is best effort: a failed delivery is logged and not
	// retried, preserving at-most-once.
	if err := p.notifier.Notify(ctx, event); err != nil {
		p.log.Error(ctx, "risk alert delivery failed", "doc_id", e.DocID, "error", err)
	}
}

// Delete appends a tombstone superseding docID. The journal keeps the
// original bytes; readers fold the pair out of the current view. A zero
// vector keeps the index aligned with the journal position.
func (p *Pipeline) Delete(ctx context.Context, docID string) error {
	if _, err := p.journal.GetByID(docID); err != nil {
		return err
	}

	tomb := &models.Entry{
		DocID:      models.NewDocID(),
		Date:       timex.NormalizeDiaryDate("", p.now),
		Supersedes: docID,
		Deleted:    true,
		CreatedAt:  p.now().UTC(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.alignLocked(ctx); err != nil {
		return err
	}

	ordinal, err := p.journal.Append(tomb)
	if err != nil {
		return err
	}
	if dim := p.index.Dimension(); dim > 0 {
		if _, err := p.index.Add(make([]float32, dim)); err != nil {
			return err
		}
		if err := p.index.Persist(); err != nil {
			return err
		}
	}

	p.log.Info(ctx, "entry deleted", "doc_id", docID, "tombstone_ordinal", ordinal)
	return nil
}

// Degraded reports whether the last Reconcile left semantic search
// unavailable. The journal stays usable regardless.
func (p *Pipeline) Degraded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded
}

// Reconcile restores the journal/index invariant at startup. It loads the
// persisted index; a missing tail is re-embedded, an unreadable or
// out-of-step index is rebuilt from scratch. When re-embedding itself
// fails, the pipeline enters degraded mode instead of failing startup.
func (p *Pipeline) Reconcile(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.degraded = false

	if err := p.index.Load(); err != nil {
		if !errors.Is(err, common.ErrIndexCorrupt) {
			return err
		}
		p.log.Warn(ctx, "vector index unreadable, rebuilding", "error", err)
		p.index.Reset()
	}

	count := p.journal.Count()
	switch size := p.index.Size(); {
	case size == count:
		return nil
	case size < count:
		p.log.Info(ctx, "re-embedding journal tail", "from", size, "to", count)
	default:
		// Index ahead of the journal (torn journal tail was truncated
		// after the index persisted). Positions past the journal end
		// are unverifiable, so rebuild everything.
		p.log.Warn(ctx, "vector index ahead of journal, rebuilding",
			"index_size", size, "journal_size", count)
		p.index.Reset()
	}

	if err := p.alignLocked(ctx); err != nil {
		if errors.Is(err, common.ErrEmbeddingUnavailable) {
			p.degraded = true
			p.log.Warn(ctx, "embedder unavailable, entering degraded mode",
				"indexed", p.index.Size(), "journal_size", count, "error", err)
			return nil
		}
		return err
	}

	return p.index.Persist()
}

// alignLocked brings the index up to the journal length, re-embedding any
// entries past the index end. Tombstones get a zero vector so they hold
// their position. The caller holds mu.
func (p *Pipeline) alignLocked(ctx context.Context) error {
	count := p.journal.Count()
	for i := p.index.Size(); i < count; i++ {
		entry, err := p.journal.At(i)
		if err != nil {
			return err
		}
		if dim := p.index.Dimension(); entry.Deleted && dim > 0 {
			// tombstones carry no text; a zero vector holds the position
			if _, err := p.index.Add(make([]float32, dim)); err != nil {
				return err
			}
			continue
		}
		vector, err := p.embedder.Embed(ctx, entry.EmbeddingText())
		if err != nil {
			return fmt.Errorf("re-embedding entry %d: %w", i, err)
		}
		if _, err := p.index.Add(vector); err != nil {
			return err
		}
	}
	return nil
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit])
}
