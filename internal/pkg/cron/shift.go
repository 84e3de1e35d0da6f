package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ShiftCloser is the part of the attendance service the sweeper drives.
type ShiftCloser interface {
	CloseStaleShifts(ctx context.Context, maxDuration time.Duration) (int, error)
}

// RefreshTokenPurger deletes refresh tokens that can no longer be used.
type RefreshTokenPurger interface {
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}

type ShiftJobs struct {
	shifts        ShiftCloser
	tokens        RefreshTokenPurger
	maxShift      time.Duration
	sweepInterval time.Duration
}

func NewShiftJobs(shifts ShiftCloser, tokens RefreshTokenPurger, maxShift time.Duration, sweepInterval time.Duration) *ShiftJobs {
	return &ShiftJobs{
		shifts:        shifts,
		tokens:        tokens,
		maxShift:      maxShift,
		sweepInterval: sweepInterval,
	}
}

func (j *ShiftJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_shifts", j.sweepInterval, j.AutoCloseStaleShifts)
	scheduler.AddJob("purge_expired_refresh_tokens", 6*time.Hour, j.PurgeExpiredRefreshTokens)
}

// AutoCloseStaleShifts closes shifts that have been open longer than the configured maximum.
func (j *ShiftJobs) AutoCloseStaleShifts(ctx context.Context) error {
	closed, err := j.shifts.CloseStaleShifts(ctx, j.maxShift)
	if err != nil {
		return fmt.Errorf("failed to close stale shifts: %w", err)
	}
	if closed > 0 {
		slog.Info("Cron: Auto-closed stale shifts", "count", closed, "max_shift", j.maxShift)
	}
	return nil
}

func (j *ShiftJobs) PurgeExpiredRefreshTokens(ctx context.Context) error {
	deleted, err := j.tokens.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge refresh tokens: %w", err)
	}
	slog.Info("Cron: Purged expired refresh tokens", "count", deleted)
	return nil
}
