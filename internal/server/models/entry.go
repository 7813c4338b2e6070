package models

import "time"

// Entry is one stored credential belonging to a single user. Secret holds the
// versioned ciphertext blob produced by the cryptox codec under the owner's
// data key.
type Entry struct {
	ID        string
	UserID    string
	Account   string
	Username  string
	Secret    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
