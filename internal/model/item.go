package model

import (
	"slices"
	"strings"
	"time"
)

// ItemType is the category an item belongs to.
type ItemType string

// Item types, in display order.
const (
	ItemTypeShirt       ItemType = "Shirt"
	ItemTypePant        ItemType = "Pant"
	ItemTypeShoes       ItemType = "Shoes"
	ItemTypeSportsGear  ItemType = "Sports Gear"
	ItemTypeAccessories ItemType = "Accessories"
	ItemTypeElectronics ItemType = "Electronics"
	ItemTypeOther       ItemType = "Other"
)

// ItemTypes lists every valid item type.
var ItemTypes = []ItemType{
	ItemTypeShirt,
	ItemTypePant,
	ItemTypeShoes,
	ItemTypeSportsGear,
	ItemTypeAccessories,
	ItemTypeElectronics,
	ItemTypeOther,
}

// Valid reports whether t is one of ItemTypes.
func (t ItemType) Valid() bool {
	return slices.Contains(ItemTypes, t)
}

// ParseItemType returns the item type named s. Matching is exact.
func ParseItemType(s string) (ItemType, bool) {
	t := ItemType(s)
	return t, t.Valid()
}

// Item is one catalog entry. Items are never mutated in place; updates
// replace the whole value.
type Item struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             ItemType  `json:"type"`
	Description      string    `json:"description"`
	CoverImage       string    `json:"coverImage"`
	AdditionalImages []string  `json:"additionalImages"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ImageCount returns the number of images including the cover.
func (i Item) ImageCount() int {
	return len(i.AdditionalImages) + 1
}

// Images returns the cover followed by the additional images.
func (i Item) Images() []string {
	return append([]string{i.CoverImage}, i.AdditionalImages...)
}

// Clone returns a copy that shares no slices with i.
func (i Item) Clone() Item {
	i.AdditionalImages = slices.Clone(i.AdditionalImages)
	if i.AdditionalImages == nil {
		i.AdditionalImages = []string{}
	}
	return i
}

// Draft is an item before the repository assigns its ID and creation time.
type Draft struct {
	Name             string   `json:"name" validate:"required"`
	Type             ItemType `json:"type" validate:"required,itemtype"`
	Description      string   `json:"description" validate:"required"`
	CoverImage       string   `json:"coverImage" validate:"required"`
	AdditionalImages []string `json:"additionalImages" validate:"dive,required"`
}

// Normalize trims the free-text fields and every image reference.
func (d Draft) Normalize() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.CoverImage = strings.TrimSpace(d.CoverImage)
	images := make([]string, len(d.AdditionalImages))
	for i, img := range d.AdditionalImages {
		images[i] = strings.TrimSpace(img)
	}
	d.AdditionalImages = images
	return d
}

// Validate normalizes the draft and checks the required fields.
func (d Draft) Validate() error {
	return validateStruct(d.Normalize())
}

// Item builds an item from the draft with the given identity.
func (d Draft) Item(id string, createdAt time.Time) Item {
	d = d.Normalize()
	return Item{
		ID:               id,
		Name:             d.Name,
		Type:             d.Type,
		Description:      d.Description,
		CoverImage:       d.CoverImage,
		AdditionalImages: d.AdditionalImages,
		CreatedAt:        createdAt,
	}
}

// DraftOf returns the editable fields of an item.
func DraftOf(i Item) Draft {
	return Draft{
		Name:             i.Name,
		Type:             i.Type,
		Description:      i.Description,
		CoverImage:       i.CoverImage,
		AdditionalImages: slices.Clone(i.AdditionalImages),
	}
}

// Patch holds replacement values for an update. Nil fields are left as is.
type Patch struct {
	Name             *string   `json:"name,omitempty"`
	Type             *ItemType `json:"type,omitempty"`
	Description      *string   `json:"description,omitempty"`
	CoverImage       *string   `json:"coverImage,omitempty"`
	AdditionalImages *[]string `json:"additionalImages,omitempty"`
}

// Apply returns d with the patch applied.
func (p Patch) Apply(d Draft) Draft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.CoverImage != nil {
		d.CoverImage = *p.CoverImage
	}
	if p.AdditionalImages != nil {
		d.AdditionalImages = slices.Clone(*p.AdditionalImages)
	}
	return d
}
