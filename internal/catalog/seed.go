package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/erazemk/vitrina/internal/model"
	"github.com/erazemk/vitrina/seed"
)

type seedRecord struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Type             string   `yaml:"type"`
	Description      string   `yaml:"description"`
	CoverImage       string   `yaml:"coverImage"`
	AdditionalImages []string `yaml:"additionalImages"`
	CreatedAt        string   `yaml:"createdAt"`
}

// SeedItems returns the built-in example items in the order of the embedded
// seed file.
func SeedItems() ([]model.Item, error) {
	return parseSeed(seed.Items())
}

func parseSeed(data []byte) ([]model.Item, error) {
	var recs []seedRecord
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing seed items: %w", err)
	}

	items := make([]model.Item, 0, len(recs))
	seen := make(map[string]bool, len(recs))
	for _, rec := range recs {
		if rec.ID == "" || seen[rec.ID] {
			return nil, fmt.Errorf("seed item %q: missing or duplicate id", rec.Name)
		}
		seen[rec.ID] = true

		createdAt, err := ParseTime(rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("seed item %q: %w", rec.ID, err)
		}

		draft := model.Draft{
			Name:             rec.Name,
			Type:             model.ItemType(rec.Type),
			Description:      rec.Description,
			CoverImage:       rec.CoverImage,
			AdditionalImages: rec.AdditionalImages,
		}
		if err := draft.Validate(); err != nil {
			return nil, fmt.Errorf("seed item %q: %w", rec.ID, err)
		}
		items = append(items, draft.Item(rec.ID, createdAt))
	}
	return items, nil
}
