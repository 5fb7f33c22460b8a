// Package revokedtokens provides a PostgreSQL-backed revocation list for
// session tokens, keyed by the token's jti claim.
package revokedtokens

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Revoke records tokenID. Revoking the same id twice is not an error.
func (r *PostgresRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (token_id, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (token_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, tokenID, expiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_id = $1)
	`
	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, tokenID).Scan(&revoked); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return revoked, nil
}

// DeleteExpired drops rows whose tokens would be rejected as expired anyway.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM revoked_tokens
		WHERE expires_at < $1
	`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
