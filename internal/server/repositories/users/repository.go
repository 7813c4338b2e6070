// Package users provides persistence for registered accounts.
package users

import (
	"context"

	"passkeeper/internal/server/models"
)

// Repository is the storage contract for user accounts.
type Repository interface {
	// Create inserts a new user. A duplicate username yields
	// common.ErrUsernameTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user or common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns the user or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// UpdatePasswordHash replaces the stored login-password hash.
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error

	// UpdateEncryptedKey replaces the stored wrapped data key.
	UpdateEncryptedKey(ctx context.Context, id string, encryptedKey string) error
}
