// Package cli implements the interactive MindLens shell.
//
// # Overview
//
// The App type wires the journal, vector index, embedding client, risk
// scorer, alert stores and the support services behind a small REPL. Each
// command is a method on App; the REPL loop itself only parses the command
// word and dispatches, so it can be tested against a stub implementation of
// the command surface (see execIface).
//
// Input helpers (GetSimpleText, GetMultiline, GetList, GetSecret) read from
// a shared bufio.Reader; GetSecret goes through golang.org/x/term so API
// tokens are never echoed.
//
// Startup runs the store reconciliation before the first prompt: a vector
// index that fell behind the journal is repaired, and if the embedding
// service is unreachable the shell starts with semantic search disabled
// instead of refusing to start.
package cli
