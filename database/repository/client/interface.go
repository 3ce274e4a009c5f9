package clientRepo

import (
	"context"
	"errors"

	"github.com/vvladislovv/buitifal/models"
)

// ErrNotFound is returned when no client account matches the given id.
var ErrNotFound = errors.New("client account not found")

// ClientRepository defines methods for client account data access.
type ClientRepository interface {
	// GetByID retrieves a client account by its id.
	GetByID(ctx context.Context, id string) (*models.ClientAccount, error)
	// Upsert inserts or replaces a client account.
	Upsert(ctx context.Context, acc *models.ClientAccount) error
}
