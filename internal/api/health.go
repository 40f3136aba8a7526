package api

import (
	"net/http"

	"github.com/erazemk/vitrina/internal/catalog"
)

// HealthHandler reports liveness and durable store health.
type HealthHandler struct {
	Repo *catalog.Repository
}

// Check handles GET /healthz. The service stays up while the store is
// failing, so the status code is always 200.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	storage := "ok"
	if h.Repo.Degraded() != nil {
		storage = "degraded"
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "storage": storage})
}
