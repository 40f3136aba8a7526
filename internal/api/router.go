package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/vitrina/internal/catalog"
	"github.com/erazemk/vitrina/internal/gateway"
	"github.com/erazemk/vitrina/internal/metrics"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(repo *catalog.Repository, notifier gateway.Notifier, board *gateway.StatusBoard) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Repo: repo, Notifier: notifier}
	enquiriesHandler := &EnquiriesHandler{Repo: repo, Notifier: notifier, Board: board}
	healthHandler := &HealthHandler{Repo: repo}

	mux.HandleFunc("GET /api/types", itemsHandler.Types)

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)

	// Enquiries.
	mux.HandleFunc("POST /api/items/{id}/enquiry", enquiriesHandler.Send)
	mux.HandleFunc("GET /api/items/{id}/enquiry", enquiriesHandler.Status)

	mux.HandleFunc("GET /healthz", healthHandler.Check)
	mux.Handle("GET /metrics", promhttp.Handler())

	return metrics.Middleware(mux)
}
