// Package vault implements the credential vault shared contract: encrypted
// entry storage keyed by account name, with search, atomic rekeying, and the
// master-password session gate used by the local client.
package vault

import "time"

// Entry is a single stored credential. Secret always holds ciphertext
// produced by the cryptox codec; plaintext never appears here.
type Entry struct {
	Account   string    `json:"account"`
	Username  string    `json:"username"`
	Secret    string    `json:"secret"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExportedEntry is a decrypted credential as returned by Export. Call sites
// must treat the value as highly sensitive and not retain it beyond the
// immediate export.
type ExportedEntry struct {
	Account  string `json:"account"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
}
