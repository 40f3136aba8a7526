package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/vitrina/internal/catalog"
	"github.com/erazemk/vitrina/internal/gateway"
)

// EnquiriesHandler handles enquiry endpoints. Enquiries are sent in the
// background; clients poll the status endpoint.
type EnquiriesHandler struct {
	Repo     *catalog.Repository
	Notifier gateway.Notifier
	Board    *gateway.StatusBoard
}

// Send handles POST /api/items/{id}/enquiry.
func (h *EnquiriesHandler) Send(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item, ok := h.Repo.GetByID(id)
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	if err := h.Board.Enquire(r.Context(), h.Notifier, id, item.Name); err != nil {
		if errors.Is(err, gateway.ErrInFlight) {
			jsonError(w, http.StatusConflict, "an enquiry for this item is already being sent")
			return
		}
		slog.Error("starting enquiry", "item_id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to send enquiry")
		return
	}

	jsonResponse(w, http.StatusAccepted, h.Board.Get(id))
}

// Status handles GET /api/items/{id}/enquiry.
func (h *EnquiriesHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.Repo.GetByID(id); !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, h.Board.Get(id))
}
