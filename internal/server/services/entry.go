package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"passkeeper/internal/common"
	"passkeeper/internal/cryptox"
	"passkeeper/internal/dbx"
	"passkeeper/internal/server/config"
	"passkeeper/internal/server/models"
	"passkeeper/internal/server/repositories/repomanager"
)

// ExportedEntry is a decrypted credential as returned by Export.
type ExportedEntry struct {
	Account  string `json:"account"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// EntryService implements per-user credential CRUD. Each call unwraps the
// owner's data key from stored material, so requests are stateless and safely
// concurrent; concurrent edits to the same entry are last-write-wins.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	kek         []byte
}

// NewEntryService constructs an EntryService using repositories and server config.
func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) (*EntryService, error) {
	kek, err := cryptox.KEKFromSecret([]byte(cfg.KeySecret))
	if err != nil {
		return nil, err
	}
	return &EntryService{db: db, repomanager: m, kek: kek}, nil
}

func (s *EntryService) dataKey(ctx context.Context, db dbx.DBTX, userID string) ([]byte, error) {
	user, err := s.repomanager.Users(db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cryptox.UnwrapKey(user.EncryptedKey, s.kek)
}

// Add encrypts the secret under the owner's data key and inserts or replaces
// the entry keyed by (user, account).
func (s *EntryService) Add(ctx context.Context, userID, account, username, secret string) (*models.Entry, error) {
	key, err := s.dataKey(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	blob, err := cryptox.Encrypt(secret, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting secret: %w", err)
	}

	e := &models.Entry{
		ID:       uuid.NewString(),
		UserID:   userID,
		Account:  account,
		Username: username,
		Secret:   blob,
	}
	if err := s.repomanager.Entries(s.db).Upsert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns the user's entries with ciphertext only; decryption is an
// explicit separate step (Reveal, Export).
func (s *EntryService) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	return s.repomanager.Entries(s.db).ListByUser(ctx, userID)
}

// Update rewrites an existing entry, re-encrypting the new secret.
func (s *EntryService) Update(ctx context.Context, userID, id, account, username, secret string) error {
	key, err := s.dataKey(ctx, s.db, userID)
	if err != nil {
		return err
	}

	blob, err := cryptox.Encrypt(secret, key)
	if err != nil {
		return fmt.Errorf("encrypting secret: %w", err)
	}

	e := &models.Entry{ID: id, UserID: userID, Account: account, Username: username, Secret: blob}
	return s.repomanager.Entries(s.db).UpdateByID(ctx, e)
}

// Delete removes one entry or returns common.ErrNotFound.
func (s *EntryService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Entries(s.db).DeleteByID(ctx, userID, id)
}

// Search matches account and username substrings, case-insensitively.
func (s *EntryService) Search(ctx context.Context, userID, query string) ([]*models.Entry, error) {
	return s.repomanager.Entries(s.db).Search(ctx, userID, query)
}

// Reveal decrypts the secret of a single entry.
func (s *EntryService) Reveal(ctx context.Context, userID, id string) (string, error) {
	key, err := s.dataKey(ctx, s.db, userID)
	if err != nil {
		return "", err
	}
	e, err := s.repomanager.Entries(s.db).GetByID(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return cryptox.Decrypt(e.Secret, key)
}

// Export decrypts every entry of the user at once. Call sites must not retain
// the result beyond the immediate export.
func (s *EntryService) Export(ctx context.Context, userID string) ([]ExportedEntry, error) {
	key, err := s.dataKey(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.repomanager.Entries(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]ExportedEntry, 0, len(entries))
	for _, e := range entries {
		plaintext, err := cryptox.Decrypt(e.Secret, key)
		if err != nil {
			return nil, err
		}
		result = append(result, ExportedEntry{Account: e.Account, Username: e.Username, Secret: plaintext})
	}
	return result, nil
}

// Rekey rotates the user's data key: every entry is decrypted under the old
// key and re-encrypted under a fresh one, and the newly wrapped key replaces
// the stored one, all inside a single transaction. If any entry fails to
// decrypt the transaction rolls back with common.ErrKeyMismatch and nothing
// is mutated.
func (s *EntryService) Rekey(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		oldKey, err := s.dataKey(ctx, tx, userID)
		if err != nil {
			return err
		}
		newKey := cryptox.NewKey()

		entries, err := s.repomanager.Entries(tx).ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			plaintext, err := cryptox.Decrypt(e.Secret, oldKey)
			if err != nil {
				if errors.Is(err, common.ErrDecryptionFailed) {
					return common.ErrKeyMismatch
				}
				return err
			}
			blob, err := cryptox.Encrypt(plaintext, newKey)
			if err != nil {
				return fmt.Errorf("re-encrypting entry %s: %w", e.ID, err)
			}
			if err := s.repomanager.Entries(tx).UpdateSecret(ctx, userID, e.ID, blob); err != nil {
				return err
			}
		}

		wrapped, err := cryptox.WrapKey(newKey, s.kek)
		if err != nil {
			return fmt.Errorf("wrapping data key: %w", err)
		}
		return s.repomanager.Users(tx).UpdateEncryptedKey(ctx, userID, wrapped)
	})
}
