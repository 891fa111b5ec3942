package config

import "time"

// Backend selectors understood by the app.
const (
	LLMBackendNone        = "none"
	LLMBackendHuggingFace = "huggingface"

	AttachmentBackendLocal = "local"
	AttachmentBackendS3    = "s3"
)

// Config holds runtime settings for the MindLens CLI.
type Config struct {
	// DataDir is the root for the journal, the vector index sidecar, the
	// alert database and locally stored attachments.
	DataDir string

	// Embedding backend (local Ollama server).
	OllamaBaseURL  string
	EmbeddingModel string
	EmbedTimeout   time.Duration

	// Answer generation backend: "none" (formatted summary) or
	// "huggingface".
	LLMBackend string
	HFModel    string
	HFAPIToken string
	HFBaseURL  string

	// SummaryMaxSnippets bounds the grounding context of an answer.
	SummaryMaxSnippets int

	// Attachment storage: "local" or "s3".
	AttachmentBackend string
	S3Region          string
	S3Bucket          string
	S3BaseEndpoint    string
	S3AccessKey       string
	S3SecretKey       string

	// AutoAlertEnabled controls high-risk event emission.
	AutoAlertEnabled bool

	// RiskLexiconFile optionally replaces the built-in risk keyword lists.
	RiskLexiconFile string

	// ResourcesNominatimURL and ResourcesOverpassURL override the public
	// OpenStreetMap endpoints, mainly for tests.
	ResourcesNominatimURL string
	ResourcesOverpassURL  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.OllamaBaseURL = "http://localhost:11434/api"
	c.EmbeddingModel = "nomic-embed-text"
	c.EmbedTimeout = 2 * time.Minute
	c.LLMBackend = LLMBackendNone
	c.HFModel = ""
	c.HFAPIToken = ""
	c.HFBaseURL = ""
	c.SummaryMaxSnippets = 5
	c.AttachmentBackend = AttachmentBackendLocal
	c.AutoAlertEnabled = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
