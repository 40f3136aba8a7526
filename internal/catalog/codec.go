package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/erazemk/vitrina/internal/model"
)

// record is the durable form of an item. CreatedAt is text; Encode and
// Decode are the only places that convert it.
type record struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	CoverImage       string   `json:"coverImage"`
	AdditionalImages []string `json:"additionalImages"`
	CreatedAt        string   `json:"createdAt"`
}

// timeLayouts are tried in order when parsing a stored timestamp. The
// date-only form is what the seed file uses.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// FormatTime renders t in the durable timestamp format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime parses a stored timestamp. Values without a zone are UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Encode serializes items to their durable form.
func Encode(items []model.Item) (string, error) {
	recs := make([]record, len(items))
	for i, item := range items {
		images := item.AdditionalImages
		if images == nil {
			images = []string{}
		}
		recs[i] = record{
			ID:               item.ID,
			Name:             item.Name,
			Type:             string(item.Type),
			Description:      item.Description,
			CoverImage:       item.CoverImage,
			AdditionalImages: images,
			CreatedAt:        FormatTime(item.CreatedAt),
		}
	}

	data, err := json.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("encoding items: %w", err)
	}
	return string(data), nil
}

// Decode parses the durable form produced by Encode. Any record with an
// unparseable timestamp fails the whole decode.
func Decode(data string) ([]model.Item, error) {
	var recs []record
	if err := json.Unmarshal([]byte(data), &recs); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	items := make([]model.Item, 0, len(recs))
	for i, rec := range recs {
		createdAt, err := ParseTime(rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("decoding item %d (%q) createdAt: %w", i, rec.ID, err)
		}
		images := rec.AdditionalImages
		if images == nil {
			images = []string{}
		}
		items = append(items, model.Item{
			ID:               rec.ID,
			Name:             rec.Name,
			Type:             model.ItemType(rec.Type),
			Description:      rec.Description,
			CoverImage:       rec.CoverImage,
			AdditionalImages: images,
			CreatedAt:        createdAt,
		})
	}
	return items, nil
}
