// Package journal provides the durable, append-only record store for diary
// entries.
//
// # Overview
//
// The journal is a line-oriented JSONL file: one entry record per line, each
// line independently parseable. A record's ordinal (line position) is the
// shared key with the vector index, which mirrors the journal by position.
// The journal is the source of truth; the index is a derived cache that can
// always be rebuilt from it.
//
// # Durability
//
// Every append is written and fsynced before the call returns. A crash
// mid-write leaves at most one incomplete trailing line, which Open discards
// by truncating the file to the last fully parseable line. A missing file is
// an empty journal, not an error.
//
// # Corrections
//
// Journaled bytes are never rewritten. To correct an entry, append a new
// record with Supersedes set to the original doc id; to delete, append a
// tombstone. Current() and IsCurrent() fold both when building the
// user-visible view.
//
// Key Types
//
//   - type Journal — the store; safe for concurrent readers with one writer
//
// Typical Usage
//
//	j, _ := journal.Open(filepath.Join(dataDir, "entries.jsonl"), log)
//	ordinal, _ := j.Append(&entry)
//	view := j.Current()
package journal
