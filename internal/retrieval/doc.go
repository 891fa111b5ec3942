// Package retrieval answers semantic and label-filtered queries over the
// diary journal.
//
// The engine embeds the query, ranks it against the vector index and maps
// the winning ordinals back to journal records, folding out superseded and
// deleted entries on the way. Because filters can discard ranked
// candidates, the index is over-fetched by a fixed factor first; if that
// still yields fewer than k results, the engine widens to ranking the whole
// store exactly once.
//
// Queries with no text fall back to a plain journal-order scan over the
// current view, which stays available even when embedding is down.
package retrieval
