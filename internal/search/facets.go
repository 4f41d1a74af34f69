package search

import (
	"strings"

	"github.com/starford/raido/internal/models"
)

// PriceRange is the price facet: notes qualify when their own price window
// touches it.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Facets is an explicit structured filter for UI-driven faceted search. It
// bypasses extraction entirely: every present field must hold (AND).
type Facets struct {
	PriceRange   *PriceRange `json:"priceRange,omitempty"`
	Bedrooms     *int        `json:"bedrooms,omitempty"`
	Bathrooms    *float64    `json:"bathrooms,omitempty"`
	PropertyType string      `json:"propertyType,omitempty"`
	Areas        []string    `json:"areas,omitempty"`
	Timeline     string      `json:"timeline,omitempty"`
	PreApproved  *bool       `json:"preApproved,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
}

// Match applies all present facets to one note.
func (f Facets) Match(n *models.ClientNote) bool {
	req := n.Requirements

	if f.PriceRange != nil {
		// The note is excluded only when its window provably misses the
		// requested range; notes without prices pass through.
		if f.PriceRange.Min != nil && req.MaxPrice != nil && *req.MaxPrice < *f.PriceRange.Min {
			return false
		}
		if f.PriceRange.Max != nil && req.MinPrice != nil && *req.MinPrice > *f.PriceRange.Max {
			return false
		}
	}

	if f.Bedrooms != nil && (req.Bedrooms == nil || *req.Bedrooms != *f.Bedrooms) {
		return false
	}
	if f.Bathrooms != nil && (req.Bathrooms == nil || *req.Bathrooms != *f.Bathrooms) {
		return false
	}
	if f.PropertyType != "" && req.PropertyType != f.PropertyType {
		return false
	}

	if len(f.Areas) > 0 && !anyListContains(req.PreferredAreas, f.Areas) {
		return false
	}

	if f.Timeline != "" && n.Timeline != f.Timeline {
		return false
	}
	if f.PreApproved != nil && n.PreApproved != *f.PreApproved {
		return false
	}

	if len(f.Tags) > 0 && !anyListContains(n.Tags, f.Tags) {
		return false
	}

	return true
}

// anyListContains reports whether any list element contains any of the
// wanted substrings, case-insensitively.
func anyListContains(list, wanted []string) bool {
	for _, w := range wanted {
		lw := strings.ToLower(w)
		for _, item := range list {
			if strings.Contains(strings.ToLower(item), lw) {
				return true
			}
		}
	}
	return false
}
