package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository stores refresh tokens by hash, never in clear text.
type RefreshTokenRepository interface {
	Create(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error
	// Lookup returns ErrRefreshTokenNotFound for unknown tokens. Expired tokens
	// are reported as revoked.
	Lookup(ctx context.Context, token string) (userID string, revoked bool, err error)
	Revoke(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
