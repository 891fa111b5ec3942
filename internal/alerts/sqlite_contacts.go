package alerts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mindlens/internal/dbx"
	"github.com/dmitrijs2005/mindlens/internal/models"
)

// SQLiteContactRepository implements ContactRepository using a DBTX
// (either *sql.DB or *sql.Tx).
type SQLiteContactRepository struct {
	db dbx.DBTX
}

// NewSQLiteContactRepository returns a repository bound to the given DBTX.
func NewSQLiteContactRepository(db dbx.DBTX) *SQLiteContactRepository {
	return &SQLiteContactRepository{db: db}
}

// CreateOrUpdate upserts a contact by id. On conflict, name and phone are
// updated.
func (r *SQLiteContactRepository) CreateOrUpdate(ctx context.Context, c *models.Contact) error {
	query := ` INSERT INTO contacts (id, name, phone)
			values (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, phone = excluded.phone
	`
	_, err := r.db.ExecContext(ctx, query, c.Id, c.Name, c.Phone)
	if err != nil {
		return fmt.Errorf("failed to upsert contact: %w", err)
	}
	return nil
}

// GetAll lists all contacts ordered by name.
func (r *SQLiteContactRepository) GetAll(ctx context.Context) ([]models.Contact, error) {
	query := `select id, name, phone from contacts order by name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select contacts: %w", err)
	}
	defer rows.Close()

	var result []models.Contact
	for rows.Next() {
		var item models.Contact
		if err := rows.Scan(&item.Id, &item.Name, &item.Phone); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByID removes a contact. It expects exactly one row to be affected.
func (r *SQLiteContactRepository) DeleteByID(ctx context.Context, id string) error {
	query := `delete from contacts where id=?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}
