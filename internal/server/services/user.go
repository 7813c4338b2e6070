// Package services contains server-side business logic. This file implements
// UserService: registration, login, token verification, and login-password
// changes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"passkeeper/internal/common"
	"passkeeper/internal/cryptox"
	"passkeeper/internal/server/auth"
	"passkeeper/internal/server/config"
	"passkeeper/internal/server/models"
	"passkeeper/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations. Each user gets a
// random data-encryption key at registration, stored only in wrapped form.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	kek                         []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) (*UserService, error) {
	kek, err := cryptox.KEKFromSecret([]byte(cfg.KeySecret))
	if err != nil {
		return nil, err
	}
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		kek:                         kek,
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}, nil
}

// Register creates a user with a bcrypt password hash and a freshly generated
// wrapped data key. An existing username yields common.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	wrapped, err := cryptox.WrapKey(cryptox.NewKey(), s.kek)
	if err != nil {
		return nil, fmt.Errorf("wrapping data key: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     username,
		PasswordHash: string(hash),
		EncryptedKey: wrapped,
	}

	repo := s.repomanager.Users(s.db)
	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return created, nil
}

// Login verifies the password hash and, on success, issues a signed access
// token. A missing user and a wrong password are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrInternal
	}
	return token, nil
}

// Authorize verifies a token's signature and expiry and returns the user ID.
// There is no revocation list; validity is purely signature plus expiry.
func (s *UserService) Authorize(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// ChangePassword verifies the old login password and replaces its hash. The
// data key is wrapped under the server KEK, not the password, so stored
// entries are untouched.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return common.ErrInvalidCredentials
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return common.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return repo.UpdatePasswordHash(ctx, userID, string(hash))
}
