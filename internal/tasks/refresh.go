package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fleet_status/internal/fleet"
)

// RefreshName is the scheduler name of the refresh task.
const RefreshName = "fleet_refresh"

// Service is the part of fleet.Service the refresh task drives.
type Service interface {
	Invalidate(ctx context.Context)
	Persist(ctx context.Context) (int, error)
}

// Publisher loads a date and publishes it as current.
type Publisher interface {
	Select(ctx context.Context, date string) (*fleet.Result, bool, error)
}

// Purger removes stored snapshots older than a cutoff.
type Purger interface {
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// RefreshTask refetches the exports, republishes the latest date and records
// every dated status row for history.
type RefreshTask struct {
	service   Service
	publisher Publisher
	purger    Purger // optional
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

// NewRefreshTask creates the task. purger may be nil.
func NewRefreshTask(service Service, publisher Publisher, purger Purger, interval, retention time.Duration) *RefreshTask {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &RefreshTask{
		service:   service,
		publisher: publisher,
		purger:    purger,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

func (t *RefreshTask) Name() string {
	return RefreshName
}

func (t *RefreshTask) Interval() time.Duration {
	return t.interval
}

// Run performs one refresh. A failed load is returned; persistence and purge
// failures are logged so the published result stays current.
func (t *RefreshTask) Run(ctx context.Context) error {
	t.service.Invalidate(ctx)

	res, published, err := t.publisher.Select(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to refresh fleet: %w", err)
	}
	slog.Info("Refreshed fleet",
		"date", res.Date,
		"aircraft", len(res.Aircraft),
		"projections", len(res.Projections),
		"published", published)

	written, err := t.service.Persist(ctx)
	if err != nil {
		slog.Error("Error persisting status history", "error", err)
	} else if written > 0 {
		slog.Debug("Persisted status history", "dates", written)
	}

	if t.purger != nil && t.retention > 0 {
		n, err := t.purger.Purge(ctx, t.now().Add(-t.retention))
		if err != nil {
			slog.Error("Error purging snapshots", "error", err)
		} else if n > 0 {
			slog.Info("Purged expired snapshots", "count", n)
		}
	}
	return nil
}
