package vault

import (
	"errors"

	"passkeeper/internal/common"
	"passkeeper/internal/cryptox"
)

// ErrVaultLocked is returned when a vault operation is attempted without a
// successful Login.
var ErrVaultLocked = errors.New("vault is locked")

// Session is the master-password gate in front of a Vault. It holds the
// derived key between Login and Logout; no other component keeps key
// material. There is no ambient singleton: callers pass the session to every
// operation.
type Session struct {
	vault *Vault
	store Store
	key   []byte
}

// NewSession creates a locked session over the given store.
func NewSession(store Store) *Session {
	return &Session{vault: New(store), store: store}
}

// Unlocked reports whether a key is currently held.
func (s *Session) Unlocked() bool {
	return s.key != nil
}

// Login derives a key from password and the persisted salt and verifies it by
// probing the decryption of one stored entry. On an empty vault any non-empty
// password succeeds and its key becomes authoritative; a brand-new vault also
// gets its random salt generated and persisted here. A failed probe reports
// common.ErrInvalidMasterPassword and leaves the session locked.
func (s *Session) Login(password []byte) error {
	if len(password) == 0 {
		return common.ErrInvalidMasterPassword
	}

	salt, err := s.store.Salt()
	if err != nil {
		return err
	}
	if salt == nil {
		salt = cryptox.NewSalt()
		if err := s.store.SetSalt(salt); err != nil {
			return err
		}
	}

	key := cryptox.DeriveKey(password, salt)

	entries, err := s.store.List()
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		if _, err := cryptox.Decrypt(entries[0].Secret, key); err != nil {
			if errors.Is(err, common.ErrDecryptionFailed) {
				return common.ErrInvalidMasterPassword
			}
			return err
		}
	}

	s.key = key
	return nil
}

// Logout wipes and discards the in-memory key immediately.
func (s *Session) Logout() {
	common.WipeByteArray(s.key)
	s.key = nil
}

// Put stores a credential under the session key.
func (s *Session) Put(account, username, secret string) error {
	if !s.Unlocked() {
		return ErrVaultLocked
	}
	return s.vault.Put(account, username, secret, s.key)
}

// GetAll lists entries (ciphertext only).
func (s *Session) GetAll() ([]*Entry, error) {
	if !s.Unlocked() {
		return nil, ErrVaultLocked
	}
	return s.vault.GetAll()
}

// Reveal decrypts the secret of a single entry.
func (s *Session) Reveal(account string) (string, error) {
	if !s.Unlocked() {
		return "", ErrVaultLocked
	}
	e, err := s.store.Get(account)
	if err != nil {
		return "", err
	}
	return cryptox.Decrypt(e.Secret, s.key)
}

// Delete removes an entry.
func (s *Session) Delete(account string) error {
	if !s.Unlocked() {
		return ErrVaultLocked
	}
	return s.vault.Delete(account)
}

// Search matches account and username fields case-insensitively.
func (s *Session) Search(query string) ([]*Entry, error) {
	if !s.Unlocked() {
		return nil, ErrVaultLocked
	}
	return s.vault.Search(query)
}

// Export decrypts all entries at once.
func (s *Session) Export() ([]ExportedEntry, error) {
	if !s.Unlocked() {
		return nil, ErrVaultLocked
	}
	return s.vault.Export(s.key)
}

// ChangeMasterPassword verifies the old password exactly as Login does, then
// atomically rekeys every entry under a key derived from the new password and
// a fresh salt. On verification failure nothing is mutated and
// common.ErrInvalidMasterPassword is returned.
func (s *Session) ChangeMasterPassword(oldPassword, newPassword []byte) error {
	if !s.Unlocked() {
		return ErrVaultLocked
	}
	if len(newPassword) == 0 {
		return common.ErrInvalidMasterPassword
	}

	salt, err := s.store.Salt()
	if err != nil {
		return err
	}
	oldKey := cryptox.DeriveKey(oldPassword, salt)

	entries, err := s.store.List()
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		if _, err := cryptox.Decrypt(entries[0].Secret, oldKey); err != nil {
			if errors.Is(err, common.ErrDecryptionFailed) {
				return common.ErrInvalidMasterPassword
			}
			return err
		}
	}

	newSalt := cryptox.NewSalt()
	newKey := cryptox.DeriveKey(newPassword, newSalt)

	if err := s.vault.Rekey(oldKey, newKey, newSalt); err != nil {
		return err
	}

	common.WipeByteArray(s.key)
	s.key = newKey
	return nil
}

// ClearAll destroys the vault contents and its salt, then locks the session.
// Only an explicit "clear all data" action reaches this.
func (s *Session) ClearAll() error {
	if err := s.store.ReplaceAll(nil, nil); err != nil {
		return err
	}
	s.Logout()
	return nil
}
