// Package search filters an item collection by a free-text query.
package search

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erazemk/vitrina/internal/model"
)

// Filter returns the items whose name, type or description contains query,
// ignoring case, in their original order. A blank query matches everything.
// The input slice is never modified.
func Filter(items []model.Item, query string) []model.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return slices.Clone(items)
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(query)

	matched := make([]model.Item, 0, len(items))
	for _, item := range items {
		if Matches(lower, item, needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

// Matches reports whether the lower-cased needle occurs in any searchable
// field of item. lower must be the caser used to lower-case needle.
func Matches(lower cases.Caser, item model.Item, needle string) bool {
	fields := [...]string{item.Name, string(item.Type), item.Description}
	for _, f := range fields {
		if strings.Contains(lower.String(f), needle) {
			return true
		}
	}
	return false
}

// Summary describes a filtered result for display.
func Summary(shown, total int) string {
	switch {
	case total == 0:
		return "No items yet"
	case shown == 0:
		return "No items found"
	default:
		return fmt.Sprintf("Showing %d of %d items", shown, total)
	}
}
