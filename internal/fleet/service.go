// Package fleet loads one date of fleet data: it fetches the exports,
// normalizes the status snapshot, extracts and links components, then plans.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fleet_status/internal/cache"
	"fleet_status/internal/components"
	"fleet_status/internal/dates"
	"fleet_status/internal/history"
	"fleet_status/internal/location"
	"fleet_status/internal/models"
	"fleet_status/internal/normalize"
	"fleet_status/internal/planning"
	"fleet_status/internal/sheets"
)

// ErrNoSnapshot is returned when the status table has no row to serve.
var ErrNoSnapshot = errors.New("no status snapshot available")

// StatusStore keeps normalized records by date. It backs history and the
// utilization lookback when the status table no longer reaches far enough.
type StatusStore interface {
	InsertBatch(ctx context.Context, records []models.AircraftRecord) error
	OnOrAfter(ctx context.Context, date string) (string, []models.AircraftRecord, error)
	Inactive(ctx context.Context, tail string) ([]models.AircraftRecord, error)
}

// Options tunes the planning windows.
type Options struct {
	YearLookbackDays  int
	MonthLookbackDays int
	HorizonYears      int
}

// DefaultOptions returns the standard lookbacks and a five-year horizon.
func DefaultOptions() Options {
	return Options{YearLookbackDays: 365, MonthLookbackDays: 120, HorizonYears: 5}
}

// Service loads dated fleet results. It holds no per-load state.
type Service struct {
	source     sheets.Source
	snapshots  *cache.Snapshots
	statuses   StatusStore
	normalizer *normalize.Normalizer
	resolver   components.InstallationResolver
	planner    *planning.Planner
	opts       Options
	now        func() time.Time
}

// NewService wires a service. statuses may be nil.
func NewService(source sheets.Source, snapshots *cache.Snapshots, statuses StatusStore, opts Options) *Service {
	def := DefaultOptions()
	if opts.YearLookbackDays <= 0 {
		opts.YearLookbackDays = def.YearLookbackDays
	}
	if opts.MonthLookbackDays <= 0 {
		opts.MonthLookbackDays = def.MonthLookbackDays
	}
	if opts.HorizonYears <= 0 {
		opts.HorizonYears = def.HorizonYears
	}
	return &Service{
		source:     source,
		snapshots:  snapshots,
		statuses:   statuses,
		normalizer: normalize.New(location.NewResolver()),
		resolver:   components.NewSubstringResolver(),
		planner:    planning.NewPlanner(),
		opts:       opts,
		now:        time.Now,
	}
}

// Load builds the result for date, or for the latest snapshot when date is
// empty or absent from the table. On failure it returns an empty result along
// with the error.
func (s *Service) Load(ctx context.Context, date string) (*Result, error) {
	want := ""
	if date != "" {
		want = dates.Normalize(date)
	}

	var (
		table                        []sheets.StatusRow
		details, engines, propellers [][]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.statusTable(gctx)
		table = rows
		return err
	})
	g.Go(func() error {
		details = s.ledgerRows(gctx, sheets.DetailsExport)
		return nil
	})
	g.Go(func() error {
		engines = s.ledgerRows(gctx, sheets.EnginesExport)
		return nil
	})
	g.Go(func() error {
		propellers = s.ledgerRows(gctx, sheets.PropellersExport)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Empty(want), err
	}

	row, exact, ok := sheets.Select(table, want)
	if !ok {
		return Empty(want), ErrNoSnapshot
	}
	if want != "" && !exact {
		slog.Info("No snapshot for requested date, serving latest", "requested", want, "date", row.Date)
	}

	aircraft, err := s.records(ctx, row)
	if err != nil {
		return Empty(want), err
	}

	now := s.now()
	asOf, err := dates.Parse(row.Date)
	if err != nil {
		asOf = now
	}

	res := Empty(want)
	res.Date = row.Date
	res.Exact = want == "" || exact
	res.Aircraft = aircraft

	var previous []models.AircraftRecord
	if prev, ok := precedingRow(table, row); ok {
		res.Previous = prev.Date
		if previous, err = s.records(ctx, prev); err != nil {
			slog.Warn("Failed to load previous snapshot", "date", prev.Date, "error", err)
			previous = nil
		}
	}
	res.Summary = planning.Summarize(row.Date, aircraft, previous)
	res.Alerts = planning.Alerts(aircraft)

	yearPast := s.pastRecords(ctx, table, row, asOf.AddDate(0, 0, -s.opts.YearLookbackDays))
	monthPast := s.pastRecords(ctx, table, row, asOf.AddDate(0, 0, -s.opts.MonthLookbackDays))
	res.Rates = planning.RateTable{
		Year:  planning.Rates(aircraft, yearPast, s.opts.YearLookbackDays),
		Month: planning.Rates(aircraft, monthPast, s.opts.MonthLookbackDays),
	}

	fleet := components.Extract(details, now)
	res.Ledger = components.ReadLedger(fleet, engines, propellers, s.resolver)
	res.Components = fleet.Ordered()

	res.Horizon = planning.Horizon(now, s.opts.HorizonYears)
	res.Projections = s.planner.Plan(planning.Input{
		Now:      now,
		Aircraft: aircraft,
		Fleet:    fleet,
		Ledger:   res.Ledger,
		Rates:    res.Rates,
	})
	res.Months = planning.Months(now)
	res.Estimates = planning.MonthlyEstimates(now, aircraft, res.Rates)

	slog.Debug("Loaded fleet",
		"date", res.Date,
		"aircraft", len(res.Aircraft),
		"components", len(res.Components),
		"projections", len(res.Projections))
	return res, nil
}

// History groups the inactive periods of tail, or of the whole fleet when
// tail is empty.
func (s *Service) History(ctx context.Context, tail string) ([]models.HistoryRange, error) {
	var records []models.AircraftRecord
	if s.statuses != nil {
		stored, err := s.statuses.Inactive(ctx, tail)
		if err != nil {
			slog.Warn("Failed to read stored status history", "error", err)
		}
		records = stored
	}
	if len(records) == 0 {
		table, err := s.statusTable(ctx)
		if err != nil {
			return []models.HistoryRange{}, err
		}
		for _, row := range table {
			recs, err := s.normalizer.Snapshot(row.Blob, row.Date)
			if err != nil {
				slog.Debug("Skipping unreadable status row", "date", row.Date, "error", err)
				continue
			}
			records = append(records, recs...)
		}
	}

	ranges := history.Group(history.EntriesFrom(records))
	if tail != "" {
		ranges = history.ForTail(ranges, tail)
	}
	if ranges == nil {
		ranges = []models.HistoryRange{}
	}
	return ranges, nil
}

// Persist writes every dated row of the status table to the status store.
// It returns the number of dates written.
func (s *Service) Persist(ctx context.Context) (int, error) {
	if s.statuses == nil {
		return 0, nil
	}
	table, err := s.statusTable(ctx)
	if err != nil {
		return 0, err
	}
	written := 0
	for _, row := range table {
		if _, err := dates.Parse(row.Date); err != nil {
			continue
		}
		recs, err := s.normalizer.Snapshot(row.Blob, row.Date)
		if err != nil {
			slog.Debug("Skipping unreadable status row", "date", row.Date, "error", err)
			continue
		}
		if err := s.statuses.InsertBatch(ctx, recs); err != nil {
			return written, fmt.Errorf("failed to persist status for %s: %w", row.Date, err)
		}
		written++
	}
	return written, nil
}

// Invalidate drops the cached exports so the next load refetches them.
// Normalized per-date snapshots stay until their TTL.
func (s *Service) Invalidate(ctx context.Context) {
	for _, export := range sheets.Exports {
		if err := s.snapshots.Invalidate(ctx, exportKey(export)); err != nil {
			slog.Warn("Failed to invalidate export", "export", export, "error", err)
		}
	}
}

func (s *Service) statusTable(ctx context.Context) ([]sheets.StatusRow, error) {
	key := exportKey(sheets.StatusExport)
	var rows []sheets.StatusRow
	if ok, err := s.snapshots.Load(ctx, key, &rows); err != nil {
		slog.Warn("Failed to read cached status table", "error", err)
	} else if ok && len(rows) > 0 {
		return rows, nil
	}

	body, err := s.source.Fetch(ctx, sheets.StatusExport)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status table: %w", err)
	}
	rows, err = sheets.ParseStatusTable(body)
	if errors.Is(err, sheets.ErrNoData) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse status table: %w", err)
	}
	if err := s.snapshots.Save(ctx, key, rows); err != nil {
		slog.Warn("Failed to cache status table", "error", err)
	}
	return rows, nil
}

// ledgerRows fetches one CSV ledger. A missing ledger only removes the
// component views, so failures are logged and yield no rows.
func (s *Service) ledgerRows(ctx context.Context, export sheets.Export) [][]string {
	key := exportKey(export)
	var rows [][]string
	if ok, err := s.snapshots.Load(ctx, key, &rows); err == nil && ok {
		return rows
	}

	body, err := s.source.Fetch(ctx, export)
	if err != nil {
		slog.Warn("Failed to fetch ledger", "export", export, "error", err)
		return nil
	}
	rows, err = sheets.ReadLedger(body)
	if err != nil {
		slog.Warn("Failed to parse ledger", "export", export, "error", err)
		return nil
	}
	if err := s.snapshots.Save(ctx, key, rows); err != nil {
		slog.Warn("Failed to cache ledger", "export", export, "error", err)
	}
	return rows
}

// records normalizes one status row, going through the date-keyed cache.
func (s *Service) records(ctx context.Context, row sheets.StatusRow) ([]models.AircraftRecord, error) {
	cacheable := row.Date != ""
	key := recordsKey(row.Date)
	if cacheable {
		var cached []models.AircraftRecord
		if ok, err := s.snapshots.Load(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	recs, err := s.normalizer.Snapshot(row.Blob, row.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize snapshot %s: %w", row.Date, err)
	}
	if cacheable {
		if err := s.snapshots.Save(ctx, key, recs); err != nil {
			slog.Warn("Failed to cache snapshot", "date", row.Date, "error", err)
		}
	}
	return recs, nil
}

// pastRecords finds the snapshot nearest on or after target, looking in the
// status table and the status store and keeping the earlier of the two. A
// miss yields nil, which leaves the rates unknown.
func (s *Service) pastRecords(ctx context.Context, table []sheets.StatusRow, today sheets.StatusRow, target time.Time) []models.AircraftRecord {
	want := target.Format(dates.ISO)

	var stored []models.AircraftRecord
	storedDate := ""
	if s.statuses != nil {
		date, recs, err := s.statuses.OnOrAfter(ctx, want)
		if err != nil {
			slog.Warn("Failed to read stored lookback snapshot", "target", want, "error", err)
		} else if date != "" && date < today.Date {
			storedDate, stored = date, recs
		}
	}

	row, ok := sheets.SelectOnOrAfter(table, want)
	if ok && row.Date < today.Date && (storedDate == "" || row.Date <= storedDate) {
		recs, err := s.records(ctx, row)
		if err == nil {
			return recs
		}
		slog.Warn("Failed to load lookback snapshot", "date", row.Date, "error", err)
	}
	return stored
}

// precedingRow returns the row before current in table order.
func precedingRow(table []sheets.StatusRow, current sheets.StatusRow) (sheets.StatusRow, bool) {
	for i := range table {
		if table[i].Date == current.Date && i > 0 {
			return table[i-1], true
		}
	}
	return sheets.StatusRow{}, false
}

func exportKey(export sheets.Export) string {
	return "export:" + string(export)
}

func recordsKey(date string) string {
	return "aircraft:" + date
}
