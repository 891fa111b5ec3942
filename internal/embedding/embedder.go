// Package embedding defines the embedding capability consumed by the core
// and an Ollama-backed implementation.
//
// Embedding is external to the core: the engine only requires that identical
// input yields an identical vector within a process lifetime. Failures
// surface as common.ErrEmbeddingUnavailable; the core never writes anything
// when embedding fails. Callers enforce timeouts through ctx.
package embedding

import "context"

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
