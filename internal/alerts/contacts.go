package alerts

import (
	"context"

	"github.com/dmitrijs2005/mindlens/internal/models"
)

// ContactRepository describes CRUD operations for emergency contacts.
// Implementations are typically backed by a local SQLite database.
type ContactRepository interface {
	// CreateOrUpdate inserts a new contact or updates an existing one by Id.
	CreateOrUpdate(ctx context.Context, contact *models.Contact) error

	// GetAll returns all contacts.
	GetAll(ctx context.Context) ([]models.Contact, error)

	// DeleteByID removes a contact.
	DeleteByID(ctx context.Context, id string) error
}
