package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"passkeeper/internal/common"
	"passkeeper/internal/dbx"
	"passkeeper/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, e *models.Entry) error {
	query := `
		INSERT INTO entries (id, user_id, account, username, encrypted_secret)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, account)
		DO UPDATE SET
			username = EXCLUDED.username,
			encrypted_secret = EXCLUDED.encrypted_secret,
			updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.UserID, e.Account, e.Username, e.Secret)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Entry, error) {
	query := `
		SELECT id, user_id, account, username, encrypted_secret, created_at, updated_at
		FROM entries
		WHERE user_id = $1
		ORDER BY account
	`
	return r.queryEntries(ctx, query, userID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Entry, error) {
	query := `
		SELECT id, user_id, account, username, encrypted_secret, created_at, updated_at
		FROM entries
		WHERE user_id = $1 AND id = $2
	`
	e := &models.Entry{}
	err := r.db.QueryRowContext(ctx, query, userID, id).
		Scan(&e.ID, &e.UserID, &e.Account, &e.Username, &e.Secret, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) UpdateByID(ctx context.Context, e *models.Entry) error {
	query := `
		UPDATE entries
		SET account = $3, username = $4, encrypted_secret = $5, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`
	return r.expectOneRow(ctx, query, e.UserID, e.ID, e.Account, e.Username, e.Secret)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, userID, id string) error {
	query := `DELETE FROM entries WHERE user_id = $1 AND id = $2`
	return r.expectOneRow(ctx, query, userID, id)
}

func (r *PostgresRepository) Search(ctx context.Context, userID, query string) ([]*models.Entry, error) {
	// matches account and username only; ciphertext is never scanned
	q := `
		SELECT id, user_id, account, username, encrypted_secret, created_at, updated_at
		FROM entries
		WHERE user_id = $1 AND (account ILIKE '%' || $2 || '%' OR username ILIKE '%' || $2 || '%')
		ORDER BY account
	`
	return r.queryEntries(ctx, q, userID, query)
}

func (r *PostgresRepository) UpdateSecret(ctx context.Context, userID, id, secret string) error {
	query := `
		UPDATE entries
		SET encrypted_secret = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`
	return r.expectOneRow(ctx, query, userID, id, secret)
}

func (r *PostgresRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Entry
	for rows.Next() {
		e := &models.Entry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Account, &e.Username, &e.Secret, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) expectOneRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
