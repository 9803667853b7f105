package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"fleet_status/internal/api"
	"fleet_status/internal/config"
	"fleet_status/internal/scheduler"
	"fleet_status/internal/sheets"
	"fleet_status/internal/tasks"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 500 * time.Millisecond

// Daemon represents the main daemon structure
type Daemon struct {
	ctx       context.Context
	cancel    context.CancelFunc
	stack     *Stack
	scheduler *scheduler.Scheduler
	server    *http.Server
	watchDir  string
	group     *errgroup.Group
}

// New creates a new daemon instance
func New(cfg *config.Config) (*Daemon, error) {
	ctx, cancel := context.WithCancel(context.Background())

	stack, err := Open(ctx, cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	sched := scheduler.New(ctx)
	sched.AddTask(tasks.NewRefreshTask(stack.Service, stack.Selector, stack.Purger, cfg.Refresh.Interval, cfg.Refresh.Retention))

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(stack.Selector, stack.Service),
		ReadHeaderTimeout: 10 * time.Second,
	}

	d := &Daemon{
		ctx:       ctx,
		cancel:    cancel,
		stack:     stack,
		scheduler: sched,
		server:    server,
	}
	if dir, ok := stack.Source.(*sheets.DirSource); ok {
		d.watchDir = dir.Dir()
	}
	return d, nil
}

// Start runs the scheduler, the API listener and, for directory sources,
// the export watcher.
func (d *Daemon) Start() error {
	slog.Info("Starting daemon")

	d.scheduler.Start()

	g, gctx := errgroup.WithContext(d.ctx)
	d.group = g

	g.Go(func() error {
		slog.Info("Starting HTTP server", "address", d.server.Addr)
		if err := d.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	if d.watchDir != "" {
		g.Go(func() error {
			err := sheets.Watch(gctx, d.watchDir, watchDebounce, func() {
				slog.Info("Exports changed, refreshing", "dir", d.watchDir)
				d.scheduler.Trigger(tasks.RefreshName)
			})
			if err != nil && gctx.Err() == nil {
				// Periodic refresh still covers the directory
				slog.Error("Export watcher stopped", "error", err)
			}
			return nil
		})
	}

	slog.Info("Daemon started successfully")
	return nil
}

// Wait blocks until a background component fails or the daemon stops.
func (d *Daemon) Wait() error {
	if d.group == nil {
		return nil
	}
	return d.group.Wait()
}

// Stop gracefully stops the daemon
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
	}

	d.cancel()
	if err := d.Wait(); err != nil {
		slog.Error("Background component failed", "error", err)
	}

	d.scheduler.Stop()

	if err := d.stack.Close(); err != nil {
		slog.Error("Error closing resources", "error", err)
	}

	slog.Info("Daemon stopped")
	return nil
}
