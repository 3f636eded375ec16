// Package api exposes the liveness probe for the dashboard backend.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter returns the HTTP handler. The only surface is /health.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", health)
	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
