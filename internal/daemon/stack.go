package daemon

import (
	"context"
	"fmt"
	"log/slog"

	"fleet_status/internal/cache"
	"fleet_status/internal/config"
	"fleet_status/internal/database"
	"fleet_status/internal/fleet"
	"fleet_status/internal/sheets"
	"fleet_status/internal/tasks"
)

// Stack is the set of long-lived services built from a config. The CLI
// subcommands use it directly; the daemon adds the scheduler and listener.
type Stack struct {
	DB        *database.DB
	Source    sheets.Source
	Snapshots *cache.Snapshots
	Service   *fleet.Service
	Selector  *fleet.Selector
	Purger    tasks.Purger // nil unless snapshots live in SQLite

	closers []func() error
}

// Open builds the stack.
func Open(ctx context.Context, cfg *config.Config) (*Stack, error) {
	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	s := &Stack{DB: db, closers: []func() error{db.Close}}

	store, err := s.openStore(ctx, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Snapshots = cache.NewSnapshots(store, cfg.Cache.TTL)
	s.Source = openSource(cfg)
	s.Service = fleet.NewService(s.Source, s.Snapshots, db.StatusRepository(), fleet.Options{
		YearLookbackDays:  cfg.Planning.YearLookbackDays,
		MonthLookbackDays: cfg.Planning.MonthLookbackDays,
		HorizonYears:      cfg.Planning.HorizonYears,
	})
	s.Selector = fleet.NewSelector(s.Service)
	return s, nil
}

func (s *Stack) openStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		slog.Info("Using in-memory snapshot cache", "size", cfg.Cache.Size, "ttl", cfg.Cache.TTL)
		return cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL), nil
	case config.CacheRedis:
		r, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   "fleet_status:",
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, r.Close)
		slog.Info("Using Redis snapshot cache", "addr", cfg.Redis.Addr, "ttl", cfg.Cache.TTL)
		return r, nil
	default:
		repo := s.DB.SnapshotRepository()
		s.Purger = repo
		slog.Info("Using SQLite snapshot cache", "path", cfg.DBPath, "ttl", cfg.Cache.TTL)
		return repo, nil
	}
}

func openSource(cfg *config.Config) sheets.Source {
	if cfg.Source.Kind == config.SourceDir {
		slog.Info("Reading exports from directory", "dir", cfg.Source.Dir)
		return sheets.NewDirSource(cfg.Source.Dir)
	}
	return sheets.NewClient(sheets.ClientConfig{
		BaseURL:       cfg.Sheets.BaseURL,
		StatusID:      cfg.Sheets.StatusID,
		StatusGID:     cfg.Sheets.StatusGID,
		LedgerID:      cfg.Sheets.LedgerID,
		DetailsGID:    cfg.Sheets.DetailsGID,
		EnginesGID:    cfg.Sheets.EnginesGID,
		PropellersGID: cfg.Sheets.PropellersGID,
		Timeout:       cfg.Sheets.Timeout,
		MaxRetries:    cfg.Sheets.MaxRetries,
	})
}

// Close releases everything Open acquired, newest first.
func (s *Stack) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			slog.Error("Error closing resource", "error", err)
			if first == nil {
				first = err
			}
		}
	}
	s.closers = nil
	return first
}
