// Package common defines shared constants and sentinel errors used across
// MindLens components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors, rejected before any write.
	ErrEmptyEntry        = errors.New("entry text and attachment description are both empty")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// Capability errors.
	ErrEmbeddingUnavailable = errors.New("embedding capability unavailable")

	// Storage recovery errors.
	ErrIndexCorrupt = errors.New("vector index unreadable")

	// Degraded-mode condition: the journal stays usable but semantic
	// search is not, because the index rebuild itself failed.
	ErrSearchDegraded = errors.New("semantic search unavailable")
)
