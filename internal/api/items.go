package api

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/erazemk/vitrina/internal/catalog"
	"github.com/erazemk/vitrina/internal/gateway"
	"github.com/erazemk/vitrina/internal/imaging"
	"github.com/erazemk/vitrina/internal/metrics"
	"github.com/erazemk/vitrina/internal/model"
	"github.com/erazemk/vitrina/internal/search"
)

// maxFormMemory is the part of a multipart form kept in memory.
const maxFormMemory = 8 << 20

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	Repo     *catalog.Repository
	Notifier gateway.Notifier
}

type listResponse struct {
	Items   []model.Item `json:"items"`
	Shown   int          `json:"shown"`
	Total   int          `json:"total"`
	Summary string       `json:"summary"`
}

// Types handles GET /api/types.
func (h *ItemsHandler) Types(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, model.ItemTypes)
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	items := h.Repo.Items()
	shown := search.Filter(items, query)
	if strings.TrimSpace(query) != "" {
		metrics.Searches.Inc()
	}

	jsonResponse(w, http.StatusOK, listResponse{
		Items:   shown,
		Shown:   len(shown),
		Total:   len(items),
		Summary: search.Summary(len(shown), len(items)),
	})
}

// Create handles POST /api/items. The body is either a JSON draft or a
// multipart form with the images as files.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	d, err := h.readDraft(w, r)
	if err != nil {
		var ve *model.ValidationError
		switch {
		case errors.As(err, &ve):
			validationError(w, ve)
		case errors.Is(err, errBodyTooLarge):
			bodyError(w, err)
		default:
			jsonError(w, http.StatusBadRequest, "invalid request body")
		}
		return
	}

	if err := d.Validate(); err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			validationError(w, ve)
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid item")
		return
	}
	d = d.Normalize()

	if _, err := h.Notifier.UploadItem(r.Context(), d); err != nil {
		slog.Warn("item upload failed", "name", d.Name, "error", err)
		jsonError(w, http.StatusBadGateway, "Failed to upload item. Please try again.")
		return
	}

	item, err := h.Repo.Add(r.Context(), d)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			validationError(w, ve)
			return
		}
		slog.Error("adding item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	storageWarning(w, h.Repo)
	jsonResponse(w, http.StatusCreated, item)
}

func (h *ItemsHandler) readDraft(w http.ResponseWriter, r *http.Request) (model.Draft, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var d model.Draft
		if err := decodeJSON(w, r, &d); err != nil {
			return model.Draft{}, err
		}
		return d, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return model.Draft{}, errBodyTooLarge
		}
		return model.Draft{}, errors.New("invalid multipart form")
	}

	d := model.Draft{
		Name:        r.FormValue("name"),
		Type:        model.ItemType(r.FormValue("type")),
		Description: r.FormValue("description"),
		CoverImage:  r.FormValue("coverImage"),
	}
	d.AdditionalImages = append(d.AdditionalImages, r.MultipartForm.Value["additionalImages"]...)

	if files := r.MultipartForm.File["cover"]; len(files) > 0 {
		url, err := dataURL(files[0])
		if err != nil {
			return model.Draft{}, &model.ValidationError{Fields: map[string]string{"coverImage": err.Error()}}
		}
		d.CoverImage = url
	}

	for _, fh := range r.MultipartForm.File["images"] {
		url, err := dataURL(fh)
		if err != nil {
			return model.Draft{}, &model.ValidationError{Fields: map[string]string{"additionalImages": err.Error()}}
		}
		d.AdditionalImages = append(d.AdditionalImages, url)
	}

	return d, nil
}

func dataURL(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", fh.Filename, err)
	}
	defer f.Close()

	url, err := imaging.DataURL(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fh.Filename, err)
	}
	return url, nil
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.Repo.GetByID(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p model.Patch
	if err := decodeJSON(w, r, &p); err != nil {
		bodyError(w, err)
		return
	}

	item, err := h.Repo.Update(r.Context(), r.PathValue("id"), p)
	if err != nil {
		var ve *model.ValidationError
		switch {
		case errors.Is(err, model.ErrNotFound):
			jsonError(w, http.StatusNotFound, "item not found")
		case errors.As(err, &ve):
			validationError(w, ve)
		default:
			slog.Error("updating item", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to update item")
		}
		return
	}

	storageWarning(w, h.Repo)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Remove(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		slog.Error("removing item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	storageWarning(w, h.Repo)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
