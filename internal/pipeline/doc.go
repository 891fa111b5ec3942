// Package pipeline is the write path of the MindLens core.
//
// # Overview
//
// A Pipeline accepts processed entries (transcribed text plus external
// labels) and carries them through risk scoring, sentiment fallback, date
// normalization, embedding, the journal append and the index update, in
// that order. The embedding call comes before any write: when the embedder
// is unavailable, the entry is rejected whole rather than stored
// half-indexed.
//
// # Alerts
//
// A high-risk entry emits one risk event through the Notifier. Emission is
// gated by a durable ledger keyed by the root of the entry's supersede
// chain, so an event fires at most once per underlying entry across
// restarts, recomputation and corrections.
//
// # Recovery
//
// Reconcile restores the journal/index position invariant at startup:
// missing tail vectors are re-embedded, an unreadable index is rebuilt from
// the journal. When the embedder is down during recovery the pipeline runs
// degraded — the journal accepts reads, semantic search stays off.
package pipeline
