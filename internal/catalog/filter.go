// Package catalog derives the visible page of resources from the fetched
// catalog, the search query and the bookmark overlay.
package catalog

import (
	"strings"

	"github.com/dmitrijs2005/resourcehub/internal/models"
	"golang.org/x/text/cases"
)

// Filter keeps the resources whose name or description contains query
// (case-folded) and, when bookmarkOnly is set, that isBookmarked accepts.
// Input order is preserved and the result is never nil.
func Filter(resources []models.Resource, query string, bookmarkOnly bool, isBookmarked func(id string) bool) []models.Resource {
	out := make([]models.Resource, 0, len(resources))

	// Casers keep state and are not shared between calls.
	fold := cases.Fold()
	needle := fold.String(query)

	for _, r := range resources {
		if needle != "" &&
			!strings.Contains(fold.String(r.Name), needle) &&
			!strings.Contains(fold.String(r.Description), needle) {
			continue
		}
		if bookmarkOnly && (isBookmarked == nil || !isBookmarked(r.ID)) {
			continue
		}
		out = append(out, r)
	}

	return out
}
