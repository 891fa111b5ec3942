// Package vectorindex maintains the nearest-neighbor index paired with the
// entry journal.
//
// Index position i always embeds the journal record at ordinal i; that
// alignment is the central invariant of the core and is enforced by the
// indexing pipeline, not by the index itself. The index is a derived cache:
// when its file is unreadable, the pipeline rebuilds it by re-embedding the
// journal, which reproduces equivalent search results because embedding is
// deterministic.
//
// Similarity is cosine similarity. Embedding magnitude carries no meaning
// for this domain, only direction.
package vectorindex
