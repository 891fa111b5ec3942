package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/mindlens/internal/common"
	"github.com/dmitrijs2005/mindlens/internal/filex"
	"github.com/dmitrijs2005/mindlens/internal/logging"
	"github.com/dmitrijs2005/mindlens/internal/models"
)

// Journal is the append-only record store of entry metadata. One JSON record
// per line; the ordinal of a record is its line position. Records are never
// rewritten: corrections append a new record carrying Supersedes, deletions
// append a tombstone.
type Journal struct {
	path string
	log  logging.Logger

	mu         sync.RWMutex
	file       *os.File
	records    []models.Entry
	byID       map[string]int
	superseded map[string]struct{}
}

// Open loads the journal at path, creating it if absent. A malformed tail
// (torn write from a crash) is truncated to the last fully parseable line;
// this is logged but is not an error.
func Open(path string, log logging.Logger) (*Journal, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	j := &Journal{
		path:       path,
		log:        log.With("component", "journal"),
		byID:       make(map[string]int),
		superseded: make(map[string]struct{}),
	}

	if err := j.load(); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open journal for append: %w", err)
	}
	j.file = file

	return j, nil
}

func (j *Journal) load() error {
	data, err := os.ReadFile(j.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	validOffset := 0
	offset := 0
	for offset < len(data) {
		nl := bytes.IndexByte(data[offset:], '\n')
		if nl < 0 {
			// incomplete trailing line, no terminator
			break
		}
		line := data[offset : offset+nl]

		var e models.Entry
		if err := json.Unmarshal(line, &e); err != nil {
			j.log.Warn(context.Background(), "dropping malformed journal tail",
				"ordinal", len(j.records), "error", err)
			break
		}

		j.indexRecord(e)
		offset += nl + 1
		validOffset = offset
	}

	if validOffset < len(data) {
		j.log.Warn(context.Background(), "truncating journal to last parseable line",
			"bytes_dropped", len(data)-validOffset)
		if err := os.Truncate(j.path, int64(validOffset)); err != nil {
			return fmt.Errorf("truncate journal: %w", err)
		}
	}

	return nil
}

func (j *Journal) indexRecord(e models.Entry) {
	j.records = append(j.records, e)
	j.byID[e.DocID] = len(j.records) - 1
	if e.Supersedes != "" {
		j.superseded[e.Supersedes] = struct{}{}
	}
}

// Append durably writes one record and returns its ordinal. The line is
// written and fsynced before Append returns, so a crash afterwards cannot
// lose it. DocIDs must be unique across the journal.
func (j *Journal) Append(e *models.Entry) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, exists := j.byID[e.DocID]; exists {
		return 0, fmt.Errorf("doc id %s already journaled", e.DocID)
	}

	line, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("marshal record: %w", err)
	}
	line = append(line, '\n')

	if _, err := j.file.Write(line); err != nil {
		return 0, fmt.Errorf("append record: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return 0, fmt.Errorf("sync journal: %w", err)
	}

	j.indexRecord(*e)
	return len(j.records) - 1, nil
}

// Count returns the number of journaled records, including superseded ones
// and tombstones.
func (j *Journal) Count() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.records)
}

// At returns the record at the given ordinal.
func (j *Journal) At(ordinal int) (models.Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if ordinal < 0 || ordinal >= len(j.records) {
		return models.Entry{}, fmt.Errorf("ordinal %d: %w", ordinal, common.ErrorNotFound)
	}
	return j.records[ordinal], nil
}

// All returns every journaled record in insertion order.
func (j *Journal) All() []models.Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]models.Entry, len(j.records))
	copy(out, j.records)
	return out
}

// Current returns the folded view: superseded records and tombstones are
// dropped, insertion order is preserved.
func (j *Journal) Current() []models.Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []models.Entry
	for _, e := range j.records {
		if j.isCurrentLocked(e) {
			out = append(out, e)
		}
	}
	return out
}

// IsCurrent reports whether the record at ordinal is part of the current
// view (neither superseded nor a tombstone).
func (j *Journal) IsCurrent(ordinal int) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if ordinal < 0 || ordinal >= len(j.records) {
		return false
	}
	return j.isCurrentLocked(j.records[ordinal])
}

func (j *Journal) isCurrentLocked(e models.Entry) bool {
	if e.Deleted {
		return false
	}
	_, superseded := j.superseded[e.DocID]
	return !superseded
}

// GetByID returns the record with the given doc id.
func (j *Journal) GetByID(docID string) (models.Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	ordinal, ok := j.byID[docID]
	if !ok {
		return models.Entry{}, fmt.Errorf("doc id %s: %w", docID, common.ErrorNotFound)
	}
	return j.records[ordinal], nil
}

// RootID follows the Supersedes chain from docID back to the original
// record and returns its doc id. Unknown ids are returned unchanged.
func (j *Journal) RootID(docID string) string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	seen := map[string]struct{}{}
	for {
		if _, cycle := seen[docID]; cycle {
			return docID
		}
		seen[docID] = struct{}{}

		ordinal, ok := j.byID[docID]
		if !ok {
			return docID
		}
		e := j.records[ordinal]
		if e.Supersedes == "" {
			return docID
		}
		docID = e.Supersedes
	}
}

// Close releases the append handle. The journal must not be used afterwards.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}
