package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mindlens/internal/dbx"
)

// SQLiteLedger implements Ledger over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteLedger struct {
	db dbx.DBTX
}

// NewSQLiteLedger returns a ledger bound to the given DBTX.
func NewSQLiteLedger(db dbx.DBTX) *SQLiteLedger {
	return &SQLiteLedger{db: db}
}

// MarkIfNew inserts the marker row, ignoring conflicts. The insert is the
// atomic check-and-set: exactly one caller per doc id gets rows affected 1.
func (r *SQLiteLedger) MarkIfNew(ctx context.Context, docID string) (bool, error) {
	query := ` INSERT INTO alert_markers (doc_id, created_at)
			values (?, ?)
			ON CONFLICT(doc_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, docID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to insert alert marker: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ra == 1, nil
}

// Alerted reports whether a marker row exists for docID.
func (r *SQLiteLedger) Alerted(ctx context.Context, docID string) (bool, error) {
	query := `select count(1) from alert_markers where doc_id=?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, docID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to select alert marker: %w", err)
	}
	return count > 0, nil
}
