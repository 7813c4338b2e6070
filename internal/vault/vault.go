package vault

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"passkeeper/internal/common"
	"passkeeper/internal/cryptox"
)

// Vault exposes the credential operations over a Store. Keys are supplied per
// call; Vault itself holds no key material (that is the Session's job).
type Vault struct {
	store Store
}

// New binds a Vault to its backing store.
func New(store Store) *Vault {
	return &Vault{store: store}
}

// Put encrypts the secret under key and inserts or replaces the entry keyed
// by account. Replacing keeps the original creation timestamp.
func (v *Vault) Put(account, username, secret string, key []byte) error {
	blob, err := cryptox.Encrypt(secret, key)
	if err != nil {
		return fmt.Errorf("encrypting secret: %w", err)
	}

	now := time.Now().UTC()
	e := &Entry{
		Account:   account,
		Username:  username,
		Secret:    blob,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if prev, err := v.store.Get(account); err == nil {
		e.CreatedAt = prev.CreatedAt
	} else if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	return v.store.Put(e)
}

// GetAll lists every entry with its ciphertext. Decryption is a separate,
// explicit step (see Export).
func (v *Vault) GetAll() ([]*Entry, error) {
	return v.store.List()
}

// Delete removes the entry or returns common.ErrNotFound, leaving the store
// unchanged.
func (v *Vault) Delete(account string) error {
	return v.store.Delete(account)
}

// Search returns entries whose account or username contains the query,
// case-insensitively. Secrets are never scanned.
func (v *Vault) Search(query string) ([]*Entry, error) {
	entries, err := v.store.List()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var result []*Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Account), q) ||
			strings.Contains(strings.ToLower(e.Username), q) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Rekey re-encrypts every entry from oldKey to newKey and persists the result
// together with newSalt in one atomic replace. If any entry fails to decrypt
// under oldKey the whole operation aborts with common.ErrKeyMismatch before
// anything is mutated. An interrupted rekey leaves the persisted vault
// unchanged.
func (v *Vault) Rekey(oldKey, newKey, newSalt []byte) error {
	entries, err := v.store.List()
	if err != nil {
		return err
	}

	// Stage everything in memory first; the store is only touched after
	// every entry has been re-encrypted successfully.
	staged := make([]*Entry, 0, len(entries))
	now := time.Now().UTC()
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
			return fmt.Errorf("re-encrypting %q: %w", e.Account, err)
		}
		staged = append(staged, &Entry{
			Account:   e.Account,
			Username:  e.Username,
			Secret:    blob,
			CreatedAt: e.CreatedAt,
			UpdatedAt: now,
		})
	}

	return v.store.ReplaceAll(newSalt, staged)
}

// Export decrypts every entry under key. This is the only operation that
// surfaces all secrets in plaintext at once.
func (v *Vault) Export(key []byte) ([]ExportedEntry, error) {
	entries, err := v.store.List()
	if err != nil {
		return nil, err
	}

	result := make([]ExportedEntry, 0, len(entries))
	for _, e := range entries {
		plaintext, err := cryptox.Decrypt(e.Secret, key)
		if err != nil {
			return nil, err
		}
		result = append(result, ExportedEntry{
			Account:  e.Account,
			Username: e.Username,
			Secret:   plaintext,
		})
	}
	return result, nil
}
