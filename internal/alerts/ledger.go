package alerts

import "context"

// Ledger is the durable "already alerted" marker store. It guarantees
// at-most-once alert emission per document across restarts and
// recomputation.
type Ledger interface {
	// MarkIfNew records docID and reports whether it was new. Only the
	// first caller for a given docID sees true.
	MarkIfNew(ctx context.Context, docID string) (bool, error)

	// Alerted reports whether docID has already been marked.
	Alerted(ctx context.Context, docID string) (bool, error)
}
