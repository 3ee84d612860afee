// Package opsserver serves liveness and pprof endpoints on a side port, away
// from the public API router.
package opsserver

import (
	"encoding/json"
	"net/http"

	"smartsheetsvc/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter returns the ops mux: GET /healthz and /debug/pprof/*.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":          "ok",
			"service_version": internal.Version,
		})
	})
	r.Mount("/debug", middleware.Profiler())

	return r
}
