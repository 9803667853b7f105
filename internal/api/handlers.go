package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"fleet_status/internal/dates"
	"fleet_status/internal/fleet"
	"fleet_status/internal/models"
	"fleet_status/internal/planning"
)

// Selector loads and publishes dated results.
type Selector interface {
	Select(ctx context.Context, date string) (*fleet.Result, bool, error)
	Current() *fleet.Result
}

// HistorySource groups inactive periods.
type HistorySource interface {
	History(ctx context.Context, tail string) ([]models.HistoryRange, error)
}

// Handler holds API route handlers.
type Handler struct {
	selector Selector
	history  HistorySource
}

// NewHandler creates a new Handler.
func NewHandler(selector Selector, history HistorySource) *Handler {
	return &Handler{selector: selector, history: history}
}

var errBadDate = errors.New("invalid date")

// result serves the published result when no date is asked for, and loads
// the requested date otherwise. On failure it writes the response itself
// and returns nil.
func (h *Handler) result(w http.ResponseWriter, r *http.Request, key string) *fleet.Result {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		if cur := h.selector.Current(); cur != nil {
			return cur
		}
	}
	date := ""
	if raw != "" {
		date = dates.Normalize(raw)
		if _, err := dates.Parse(date); err != nil {
			writeJSON(w, http.StatusBadRequest, failureBody(key, errBadDate.Error()))
			return nil
		}
	}

	res, _, err := h.selector.Select(r.Context(), date)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, fleet.ErrNoSnapshot) {
			status = http.StatusNotFound
		}
		slog.Error("load fleet failed", slog.String("date", date), slog.String("error", err.Error()))
		writeJSON(w, status, failureBody(key, err.Error()))
		return nil
	}
	return res
}

// Aircraft handles GET /api/aircraft.
func (h *Handler) Aircraft(w http.ResponseWriter, r *http.Request) {
	res := h.result(w, r, "aircraft")
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":     res.Date,
		"exact":    res.Exact,
		"aircraft": res.Aircraft,
	})
}

// Summary handles GET /api/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	res := h.result(w, r, "diffs")
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":     res.Date,
		"previous": res.Previous,
		"summary":  res.Summary,
	})
}

// Alerts handles GET /api/alerts.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	res := h.result(w, r, "alerts")
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":   res.Date,
		"alerts": res.Alerts,
	})
}

// Components handles GET /api/components.
func (h *Handler) Components(w http.ResponseWriter, r *http.Request) {
	res := h.result(w, r, "components")
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"components": res.Components,
		"ledger":     res.Ledger,
	})
}

// Projections handles GET /api/projections. An optional year, Gregorian or
// Buddhist era, narrows the list to items due that year.
func (h *Handler) Projections(w http.ResponseWriter, r *http.Request) {
	res := h.result(w, r, "projections")
	if res == nil {
		return
	}
	projections := res.Projections
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, failureBody("projections", "invalid year"))
			return
		}
		projections = res.ProjectionsDueIn(dates.NormalizeYear(year))
	}
	buddhist := make([]int, len(res.Horizon))
	for i, y := range res.Horizon {
		buddhist[i] = planning.BuddhistYear(y)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"horizon":        res.Horizon,
		"buddhist_years": buddhist,
		"projections":    projections,
	})
}

// Estimates handles GET /api/estimates.
func (h *Handler) Estimates(w http.ResponseWriter, r *http.Request) {
	res := h.result(w, r, "estimates")
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"months":    res.Months,
		"estimates": res.Estimates,
	})
}

// History handles GET /api/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	tail := r.URL.Query().Get("tail")
	ranges, err := h.history.History(r.Context(), tail)
	if err != nil {
		slog.Error("history failed", slog.String("tail", tail), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, failureBody("history", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tail":    tail,
		"history": ranges,
	})
}
