package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type RevokedTokenPruner interface {
	PruneRevoked(now time.Time) int
}

type ExpiredRefreshTokenDeleter interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// AuthJobs keeps the token stores from growing without bound.
type AuthJobs struct {
	revoked       RevokedTokenPruner
	refreshTokens ExpiredRefreshTokenDeleter
	now           func() time.Time
}

func NewAuthJobs(revoked RevokedTokenPruner, refreshTokens ExpiredRefreshTokenDeleter) *AuthJobs {
	return &AuthJobs{
		revoked:       revoked,
		refreshTokens: refreshTokens,
		now:           time.Now,
	}
}

func (j *AuthJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("prune_revoked_access_tokens", interval, j.PruneRevokedAccessTokens)
	scheduler.AddJob("delete_expired_refresh_tokens", interval, j.DeleteExpiredRefreshTokens)
}

func (j *AuthJobs) PruneRevokedAccessTokens(ctx context.Context) error {
	if n := j.revoked.PruneRevoked(j.now()); n > 0 {
		slog.Info("Cron: pruned revoked access tokens", "count", n)
	}
	return nil
}

func (j *AuthJobs) DeleteExpiredRefreshTokens(ctx context.Context) error {
	n, err := j.refreshTokens.DeleteExpired(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	if n > 0 {
		slog.Info("Cron: deleted expired refresh tokens", "count", n)
	}
	return nil
}
