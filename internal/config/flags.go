package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/mindlens/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory
//	-m string   embedding model name
//	-o string   Ollama base URL
//	-b string   LLM backend ("none" or "huggingface")
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-m", "-o", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.EmbeddingModel, "m", cfg.EmbeddingModel, "embedding model name")
	fs.StringVar(&cfg.OllamaBaseURL, "o", cfg.OllamaBaseURL, "Ollama base URL")
	fs.StringVar(&cfg.LLMBackend, "b", cfg.LLMBackend, "LLM backend (none or huggingface)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
