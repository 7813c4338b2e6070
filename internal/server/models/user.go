// Package models defines persisted server-side data structures.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash of the login
// password. EncryptedKey holds the user's data-encryption key wrapped under
// the server's key-encryption key; the raw key is never persisted.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	EncryptedKey string
	CreatedAt    time.Time
}
