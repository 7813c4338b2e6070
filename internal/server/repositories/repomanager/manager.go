// Package repomanager wires repository constructors to a concrete database
// and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"passkeeper/internal/dbx"
	"passkeeper/internal/server/repositories/entries"
	"passkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run them either directly on the pool or inside a transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
