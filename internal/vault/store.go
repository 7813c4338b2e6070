package vault

// Store is the persistence contract for a single vault: a mapping from
// account name to Entry plus the vault's key-derivation salt.
//
// ReplaceAll is the transaction boundary for rekeying: implementations must
// apply the new salt and the full entry set in one atomic step, leaving the
// persisted vault unchanged when the operation fails partway.
type Store interface {
	// Salt returns the persisted derivation salt, or nil if the vault has
	// never been initialized.
	Salt() ([]byte, error)

	// SetSalt persists the derivation salt without touching entries.
	SetSalt(salt []byte) error

	// Get returns the entry for the given account name or common.ErrNotFound.
	Get(account string) (*Entry, error)

	// Put inserts or replaces the entry keyed by its account name.
	Put(e *Entry) error

	// Delete removes the entry or returns common.ErrNotFound.
	Delete(account string) error

	// List returns all entries in stable (account-sorted) order.
	List() ([]*Entry, error)

	// ReplaceAll atomically replaces the salt and the whole entry set.
	ReplaceAll(salt []byte, entries []*Entry) error
}
