package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/mindlens/internal/alerts"
	"github.com/dmitrijs2005/mindlens/internal/attachments"
	"github.com/dmitrijs2005/mindlens/internal/config"
	"github.com/dmitrijs2005/mindlens/internal/embedding"
	"github.com/dmitrijs2005/mindlens/internal/filex"
	"github.com/dmitrijs2005/mindlens/internal/journal"
	"github.com/dmitrijs2005/mindlens/internal/logging"
	"github.com/dmitrijs2005/mindlens/internal/models"
	"github.com/dmitrijs2005/mindlens/internal/pipeline"
	"github.com/dmitrijs2005/mindlens/internal/ragctx"
	"github.com/dmitrijs2005/mindlens/internal/resources"
	"github.com/dmitrijs2005/mindlens/internal/retrieval"
	"github.com/dmitrijs2005/mindlens/internal/risk"
	"github.com/dmitrijs2005/mindlens/internal/summarize"
	"github.com/dmitrijs2005/mindlens/internal/vectorindex"
)

// ingester is the write surface the commands need from the pipeline.
type ingester interface {
	Ingest(ctx context.Context, in models.ProcessedEntry) (*models.Entry, error)
	Delete(ctx context.Context, docID string) error
}

// searcher is the read surface the commands need from the retrieval engine.
type searcher interface {
	Search(ctx context.Context, query string, k int, filter retrieval.Filter) ([]models.Entry, error)
}

// App wires the MindLens components behind the interactive commands.
type App struct {
	config *config.Config
	log    logging.Logger

	journal    *journal.Journal
	pipeline   ingester
	engine     searcher
	selector   *ragctx.Selector
	summarizer summarize.Summarizer
	resources  *resources.Service
	contacts   alerts.ContactRepository
	store      attachments.Store

	reconciler interface {
		Reconcile(ctx context.Context) error
		Degraded() bool
	}
	degradedFn func(bool)

	reader *bufio.Reader
	out    io.Writer

	closers []func() error
}

// NewApp builds the full application from configuration: store, index,
// embedder, alert database and the surrounding services.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	ctx := context.Background()

	if err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, err
	}

	j, err := journal.Open(filepath.Join(cfg.DataDir, "entries.jsonl"), log)
	if err != nil {
		return nil, err
	}

	ix := vectorindex.New(filepath.Join(cfg.DataDir, "index.json"))
	embedder := embedding.NewOllamaEmbedder(cfg.EmbeddingModel, cfg.OllamaBaseURL)
	embedder.SetTimeout(cfg.EmbedTimeout)

	lexicon := risk.DefaultLexicon()
	if cfg.RiskLexiconFile != "" {
		lexicon, err = risk.LoadLexicon(cfg.RiskLexiconFile)
		if err != nil {
			_ = j.Close()
			return nil, err
		}
	}
	scorer := risk.NewScorer(lexicon)

	repos, err := alerts.InitDatabase(ctx, filepath.Join(cfg.DataDir, "mindlens.db"))
	if err != nil {
		_ = j.Close()
		return nil, err
	}

	var ledger alerts.Ledger
	var notifier alerts.Notifier
	if cfg.AutoAlertEnabled {
		ledger = repos.Ledger
		notifier = alerts.NewLogNotifier(log)
	}

	p := pipeline.New(j, ix, embedder, scorer, ledger, notifier, log)
	engine := retrieval.New(j, ix, embedder, log)

	store, err := buildAttachmentStore(cfg)
	if err != nil {
		_ = j.Close()
		_ = repos.DB.Close()
		return nil, err
	}

	app := &App{
		config:     cfg,
		log:        log,
		journal:    j,
		pipeline:   p,
		engine:     engine,
		selector:   ragctx.NewSelector(engine, cfg.SummaryMaxSnippets),
		summarizer: buildSummarizer(cfg, log),
		resources:  resources.New(cfg.ResourcesNominatimURL, cfg.ResourcesOverpassURL, log),
		contacts:   repos.Contacts,
		store:      store,
		reconciler: p,
		degradedFn: engine.SetDegraded,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		closers:    []func() error{j.Close, repos.DB.Close},
	}
	return app, nil
}

func buildSummarizer(cfg *config.Config, log logging.Logger) *summarize.Service {
	var backend summarize.Summarizer
	if cfg.LLMBackend == config.LLMBackendHuggingFace {
		backend = summarize.NewHFSummarizer(cfg.HFModel, cfg.HFAPIToken, cfg.HFBaseURL)
	}
	return summarize.NewService(backend, log)
}

func buildAttachmentStore(cfg *config.Config) (attachments.Store, error) {
	if cfg.AttachmentBackend == config.AttachmentBackendS3 {
		return attachments.NewS3Store(attachments.S3Config{
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		}), nil
	}
	return attachments.NewLocalStore(filepath.Join(cfg.DataDir, "attachments"))
}

// Run reconciles the stores and enters the REPL. It blocks until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.reconciler.Reconcile(ctx); err != nil {
		return err
	}
	if a.reconciler.Degraded() {
		a.degradedFn(true)
		a.println("Note: semantic search is unavailable until the embedding service is reachable.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, scanner)
	return nil
}

// Close releases the underlying stores.
func (a *App) Close() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			a.log.Error(context.Background(), "close failed", "error", err)
		}
	}
}
