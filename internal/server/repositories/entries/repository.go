// Package entries provides persistence for per-user credential entries.
package entries

import (
	"context"

	"passkeeper/internal/server/models"
)

// Repository is the storage contract for credential entries. Every operation
// is scoped to one owning user.
type Repository interface {
	// Upsert inserts or replaces the entry keyed by (user, account),
	// preserving the original creation timestamp on replace.
	Upsert(ctx context.Context, e *models.Entry) error

	// ListByUser returns all entries owned by userID, account-sorted.
	ListByUser(ctx context.Context, userID string) ([]*models.Entry, error)

	// GetByID returns one entry or common.ErrNotFound.
	GetByID(ctx context.Context, userID, id string) (*models.Entry, error)

	// UpdateByID rewrites account, username, and secret of an existing entry,
	// or returns common.ErrNotFound.
	UpdateByID(ctx context.Context, e *models.Entry) error

	// DeleteByID removes one entry or returns common.ErrNotFound.
	DeleteByID(ctx context.Context, userID, id string) error

	// Search matches account and username case-insensitively by substring.
	Search(ctx context.Context, userID, query string) ([]*models.Entry, error)

	// UpdateSecret replaces only the ciphertext of one entry; used during
	// rekey inside a transaction.
	UpdateSecret(ctx context.Context, userID, id, secret string) error
}
