package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/mindlens/internal/flagx"
	"github.com/dmitrijs2005/mindlens/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the embedding timeout either as a
// string like "90s" or as integer nanoseconds. Only fields present in the
// file override the runtime Config.
type JsonConfig struct {
	DataDir        string         `json:"data_dir"`
	OllamaBaseURL  string         `json:"ollama_base_url"`
	EmbeddingModel string         `json:"embedding_model"`
	EmbedTimeout   timex.Duration `json:"embed_timeout"`

	LLMBackend string `json:"llm_backend"`
	HFModel    string `json:"hf_model"`
	HFAPIToken string `json:"hf_api_token"`
	HFBaseURL  string `json:"hf_base_url"`

	SummaryMaxSnippets int `json:"summary_max_snippets"`

	AttachmentBackend string `json:"attachment_backend"`
	S3Region          string `json:"s3_region"`
	S3Bucket          string `json:"s3_bucket"`
	S3BaseEndpoint    string `json:"s3_base_endpoint"`
	S3AccessKey       string `json:"s3_access_key"`
	S3SecretKey       string `json:"s3_secret_key"`

	AutoAlertEnabled *bool  `json:"auto_alert_enabled"`
	RiskLexiconFile  string `json:"risk_lexicon_file"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; when no
// path is given, nothing is loaded. Read or unmarshal errors panic, the
// caller decides whether to recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlayString(&cfg.DataDir, jc.DataDir)
	overlayString(&cfg.OllamaBaseURL, jc.OllamaBaseURL)
	overlayString(&cfg.EmbeddingModel, jc.EmbeddingModel)
	if jc.EmbedTimeout.Duration > 0 {
		cfg.EmbedTimeout = time.Duration(jc.EmbedTimeout.Duration)
	}

	overlayString(&cfg.LLMBackend, jc.LLMBackend)
	overlayString(&cfg.HFModel, jc.HFModel)
	overlayString(&cfg.HFAPIToken, jc.HFAPIToken)
	overlayString(&cfg.HFBaseURL, jc.HFBaseURL)

	if jc.SummaryMaxSnippets > 0 {
		cfg.SummaryMaxSnippets = jc.SummaryMaxSnippets
	}

	overlayString(&cfg.AttachmentBackend, jc.AttachmentBackend)
	overlayString(&cfg.S3Region, jc.S3Region)
	overlayString(&cfg.S3Bucket, jc.S3Bucket)
	overlayString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	overlayString(&cfg.S3AccessKey, jc.S3AccessKey)
	overlayString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.AutoAlertEnabled != nil {
		cfg.AutoAlertEnabled = *jc.AutoAlertEnabled
	}
	overlayString(&cfg.RiskLexiconFile, jc.RiskLexiconFile)
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
