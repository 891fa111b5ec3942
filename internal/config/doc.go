// Package config loads runtime configuration for the MindLens CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory
//	-m string   embedding model name
//	-o string   Ollama base URL
//	-b string   LLM backend ("none" or "huggingface")
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the embedding timeout, so values
// can be either strings like "90s" or integer nanoseconds:
//
//	{
//	  "data_dir": "/var/lib/mindlens",
//	  "embedding_model": "nomic-embed-text",
//	  "embed_timeout": "90s",
//	  "llm_backend": "huggingface",
//	  "hf_model": "meta-llama/Llama-3.1-8B-Instruct",
//	  "auto_alert_enabled": true
//	}
//
// Fields absent from the JSON file keep their earlier values.
//
// Primary API
//
//   - type Config                     — runtime settings for the app
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
