package vectorindex

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/viant/vec/search"

	"github.com/dmitrijs2005/mindlens/internal/common"
	"github.com/dmitrijs2005/mindlens/internal/filex"
)

// Hit is a single nearest-neighbor result.
type Hit struct {
	Ordinal    int
	Similarity float32
}

// Index is an exact flat cosine-similarity index over fixed-dimension
// vectors. The ordinal of a vector is its insertion position and mirrors the
// journal ordinal of the entry it embeds. Safe for concurrent readers with a
// single writer.
type Index struct {
	path string

	mu         sync.RWMutex
	dimension  int
	vectors    [][]float32
	magnitudes []float32
}

// indexFile is the on-disk representation.
type indexFile struct {
	Dimension int         `json:"dimension"`
	Vectors   [][]float32 `json:"vectors"`
}

// New returns an empty index persisted at path. Call Load to read a
// previously persisted state.
func New(path string) *Index {
	return &Index{path: path}
}

// Load replaces the in-memory state with the persisted one. A missing file
// leaves the index empty and is not an error. An unreadable or inconsistent
// file returns an error wrapping common.ErrIndexCorrupt; the caller is
// expected to rebuild from the journal.
func (ix *Index) Load() error {
	data, err := os.ReadFile(ix.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrIndexCorrupt, err)
	}

	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %v", common.ErrIndexCorrupt, err)
	}
	for _, v := range f.Vectors {
		if len(v) != f.Dimension {
			return fmt.Errorf("%w: vector dimension %d, index dimension %d",
				common.ErrIndexCorrupt, len(v), f.Dimension)
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.dimension = f.Dimension
	ix.vectors = f.Vectors
	ix.magnitudes = make([]float32, len(f.Vectors))
	for i, v := range f.Vectors {
		ix.magnitudes[i] = search.Float32s(v).Magnitude()
	}
	return nil
}

// Add appends a vector and returns its ordinal. The dimension is fixed by
// the first vector; later vectors must match exactly or the add is rejected
// with common.ErrDimensionMismatch. Vectors are never truncated or padded.
func (ix *Index) Add(vector []float32) (int, error) {
	if len(vector) == 0 {
		return 0, fmt.Errorf("%w: empty vector", common.ErrDimensionMismatch)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.dimension == 0 {
		ix.dimension = len(vector)
	} else if len(vector) != ix.dimension {
		return 0, fmt.Errorf("%w: got %d, index dimension %d",
			common.ErrDimensionMismatch, len(vector), ix.dimension)
	}

	ix.vectors = append(ix.vectors, vector)
	ix.magnitudes = append(ix.magnitudes, search.Float32s(vector).Magnitude())
	return len(ix.vectors) - 1, nil
}

// Size returns the number of indexed vectors.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

// Dimension returns the fixed vector dimension, or 0 while the index is
// still empty.
func (ix *Index) Dimension() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.dimension
}

// Search returns up to k hits ordered by descending cosine similarity.
// Equal similarities rank the lower ordinal first, so results are
// deterministic.
func (ix *Index) Search(query []float32, k int) ([]Hit, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if k <= 0 || len(ix.vectors) == 0 {
		return nil, nil
	}
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("%w: query dimension %d, index dimension %d",
			common.ErrDimensionMismatch, len(query), ix.dimension)
	}

	qmag := search.Float32s(query).Magnitude()

	hits := make([]Hit, len(ix.vectors))
	for i, v := range ix.vectors {
		var sim float32
		// Zero-magnitude vectors (tombstones) never match.
		if qmag != 0 && ix.magnitudes[i] != 0 {
			sim = 1 - search.Float32s(query).CosineDistance(v)
		}
		hits[i] = Hit{Ordinal: i, Similarity: sim}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Similarity != hits[b].Similarity {
			return hits[a].Similarity > hits[b].Similarity
		}
		return hits[a].Ordinal < hits[b].Ordinal
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Persist writes the index to disk atomically (temp file then rename), so a
// concurrent Load observes either the previous or the new state, never a
// partial file.
func (ix *Index) Persist() error {
	ix.mu.RLock()
	f := indexFile{Dimension: ix.dimension, Vectors: ix.vectors}
	data, err := json.Marshal(f)
	ix.mu.RUnlock()

	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	return filex.WriteFileAtomic(ix.path, data, 0o600)
}

// Reset drops all vectors and the fixed dimension. Used before a full
// rebuild from the journal.
func (ix *Index) Reset() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.dimension = 0
	ix.vectors = nil
	ix.magnitudes = nil
}
