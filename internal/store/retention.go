package store

import (
	"context"
	"log/slog"
	"time"
)

// RetentionCleaner periodically deletes evaluations older than the retention
// window.
type RetentionCleaner struct {
	repo          *Repository
	retentionDays int
	interval      time.Duration
	stop          chan struct{}
}

// NewRetentionCleaner builds a cleaner that sweeps once per day. A
// retentionDays of zero or less disables cleanup.
func NewRetentionCleaner(repo *Repository, retentionDays int) *RetentionCleaner {
	return &RetentionCleaner{
		repo:          repo,
		retentionDays: retentionDays,
		interval:      24 * time.Hour,
		stop:          make(chan struct{}),
	}
}

// Start launches the cleanup loop. It runs one sweep immediately so a
// restart does not postpone overdue deletions by a day.
func (rc *RetentionCleaner) Start() {
	if rc.retentionDays <= 0 {
		slog.Info("evaluation retention cleanup disabled")
		return
	}

	go func() {
		rc.sweep()

		ticker := time.NewTicker(rc.interval)
		defer ticker.Stop()
		for {
			select {
			case <-rc.stop:
				return
			case <-ticker.C:
				rc.sweep()
			}
		}
	}()
}

// Close stops the cleanup loop.
func (rc *RetentionCleaner) Close() error {
	close(rc.stop)
	return nil
}

func (rc *RetentionCleaner) sweep() {
	cutoff := time.Now().UTC().AddDate(0, 0, -rc.retentionDays)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := rc.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("retention cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("retention cleanup completed", "cutoff", cutoff, "deleted", deleted)
	}
}
