package revokedtokens

import (
	"context"
	"time"
)

// Repository tracks session token ids that were revoked before expiry.
type Repository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
