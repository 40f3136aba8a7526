package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/vitrina/internal/catalog"
	"github.com/erazemk/vitrina/internal/model"
)

// StorageWarningHeader is set on mutating responses while the durable store
// is failing and changes are only kept in memory.
const StorageWarningHeader = "X-Storage-Warning"

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// validationError writes a 400 response listing the failed fields.
func validationError(w http.ResponseWriter, ve *model.ValidationError) {
	jsonResponse(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": ve.Fields,
	})
}

// maxBodySize caps request bodies. Images arrive inline as data URLs, so
// JSON bodies get the same limit as multipart forms.
const maxBodySize = 32 << 20

// errBodyTooLarge is returned by decodeJSON for bodies over maxBodySize.
var errBodyTooLarge = errors.New("request body too large")

// decodeJSON decodes a JSON request body of at most maxBodySize bytes into
// the given target.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return errBodyTooLarge
		}
		return err
	}
	return nil
}

// bodyError writes the response for a request body that could not be read.
func bodyError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		jsonError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	jsonError(w, http.StatusBadRequest, "invalid request body")
}

// storageWarning flags the response if the last store write failed.
func storageWarning(w http.ResponseWriter, repo *catalog.Repository) {
	if repo.Degraded() != nil {
		w.Header().Set(StorageWarningHeader, "changes are kept in memory only and may be lost on restart")
	}
}
