// Package common contains shared constants and sentinel errors used across
// PassKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// repository-level errors
	ErrNotFound = errors.New("not found")

	// crypto errors
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrKeyMismatch      = errors.New("key mismatch")

	// session / auth errors
	ErrInvalidMasterPassword = errors.New("invalid master password")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUsernameTaken         = errors.New("username already taken")

	// token lifecycle errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// storage I/O errors (disk full, permission denied, connection lost)
	ErrStorageUnavailable = errors.New("storage unavailable")

	// generic internal flow control
	ErrInternal = errors.New("internal error")
)
