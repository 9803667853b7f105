// Package api serves fleet results as JSON.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a chi router with the health check and every API route.
func NewRouter(selector Selector, history HistorySource) chi.Router {
	h := NewHandler(selector, history)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/aircraft", h.Aircraft)
		r.Get("/summary", h.Summary)
		r.Get("/alerts", h.Alerts)
		r.Get("/components", h.Components)
		r.Get("/projections", h.Projections)
		r.Get("/estimates", h.Estimates)
		r.Get("/history", h.History)
	})

	return r
}
