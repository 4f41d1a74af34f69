package search

import (
	"strings"

	"github.com/starford/raido/internal/models"
)

// Clause is one predicate inside a Filter. The exported fields describe the
// predicate for callers (the search endpoints return them so users can see
// how their query was interpreted); match carries the actual check.
type Clause struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value any    `json:"value"`

	match func(n *models.ClientNote) bool
}

// Filter is the structured predicate built from extracted criteria plus
// keyword heuristics. Hard clauses are AND-ed; soft clauses are OR-ed as one
// group; when both exist the soft group is AND-ed onto the hard group. When
// neither fires, Fallback carries the raw query for a keyword OR-search over
// clientName, notes, and tags.
type Filter struct {
	Query    string   `json:"-"`
	Criteria Criteria `json:"-"`
	Hard     []Clause `json:"hard,omitempty"`
	Soft     []Clause `json:"soft,omitempty"`
	Fallback string   `json:"fallback,omitempty"`
}

// BuildFilter converts extracted criteria and the raw query into a Filter.
// Keyword families are checked against the lowercased query independently of
// extraction, so one query can contribute both hard and soft clauses.
func BuildFilter(c Criteria, query string) Filter {
	q := strings.ToLower(query)
	f := Filter{Query: q, Criteria: c}

	if c.Bedrooms != nil {
		want := *c.Bedrooms
		f.Hard = append(f.Hard, Clause{
			Field: "requirements.bedrooms", Op: ">=", Value: want,
			match: func(n *models.ClientNote) bool {
				return n.Requirements.Bedrooms != nil && *n.Requirements.Bedrooms >= want
			},
		})
	}
	if c.Bathrooms != nil {
		want := float64(*c.Bathrooms)
		f.Hard = append(f.Hard, Clause{
			Field: "requirements.bathrooms", Op: ">=", Value: *c.Bathrooms,
			match: func(n *models.ClientNote) bool {
				return n.Requirements.Bathrooms != nil && *n.Requirements.Bathrooms >= want
			},
		})
	}
	if c.MaxPrice != nil {
		want := *c.MaxPrice
		f.Hard = append(f.Hard, Clause{
			Field: "requirements.maxPrice", Op: "<=", Value: want,
			match: func(n *models.ClientNote) bool {
				return n.Requirements.MaxPrice != nil && *n.Requirements.MaxPrice <= want
			},
		})
	}
	if c.MinPrice != nil {
		want := *c.MinPrice
		f.Hard = append(f.Hard, Clause{
			Field: "requirements.minPrice", Op: ">=", Value: want,
			match: func(n *models.ClientNote) bool {
				return n.Requirements.MinPrice != nil && *n.Requirements.MinPrice >= want
			},
		})
	}

	// Client type keywords map onto tags.
	if containsAny(q, "first-time", "first time", "new buyer") {
		f.Soft = append(f.Soft, tagClause("first-time"))
	}
	if containsAny(q, "investor", "investment") {
		f.Soft = append(f.Soft, tagClause("investor"))
	}
	if containsAny(q, "family", "families") {
		f.Soft = append(f.Soft, tagClause("family"))
	}

	// Approval status.
	if containsAny(q, "pre-approval", "pre approval", "approved") {
		f.Soft = append(f.Soft, Clause{
			Field: "preApproved", Op: "==", Value: true,
			match: func(n *models.ClientNote) bool { return n.PreApproved },
		})
	}

	// Urgency keywords map onto the ASAP timeline.
	if containsAny(q, "urgent", "asap", "this month") ||
		containsAny(q, "ready to offer", "make offer") {
		f.Soft = append(f.Soft, Clause{
			Field: "timeline", Op: "==", Value: models.TimelineASAP,
			match: func(n *models.ClientNote) bool { return n.Timeline == models.TimelineASAP },
		})
	}

	// Special feature keywords map onto mustHaves.
	if containsAny(q, "pet-friendly", "pet friendly") {
		f.Soft = append(f.Soft, mustHaveClause("pet"))
	}
	if strings.Contains(q, "pool") {
		f.Soft = append(f.Soft, mustHaveClause("pool"))
	}
	if containsAny(q, "garage", "parking") {
		f.Soft = append(f.Soft, mustHaveClause("garage", "parking"))
	}
	if containsAny(q, "good schools", "schools") {
		f.Soft = append(f.Soft, mustHaveClause("school", "education"))
	}

	// Extracted location matches preferred areas or the note text.
	if c.Location != "" {
		loc := c.Location
		f.Soft = append(f.Soft, Clause{
			Field: "location", Op: "contains", Value: loc,
			match: func(n *models.ClientNote) bool {
				return listContainsAny(n.Requirements.PreferredAreas, loc) ||
					strings.Contains(strings.ToLower(n.Notes), loc)
			},
		})
	}

	if len(f.Hard) == 0 && len(f.Soft) == 0 {
		f.Fallback = q
	}
	return f
}

// Match applies the filter to one note.
func (f *Filter) Match(n *models.ClientNote) bool {
	if f.Fallback != "" {
		return strings.Contains(strings.ToLower(n.ClientName), f.Fallback) ||
			strings.Contains(strings.ToLower(n.Notes), f.Fallback) ||
			listContainsAny(n.Tags, f.Fallback)
	}
	for _, c := range f.Hard {
		if !c.match(n) {
			return false
		}
	}
	if len(f.Soft) == 0 {
		return true
	}
	for _, c := range f.Soft {
		if c.match(n) {
			return true
		}
	}
	return false
}

func tagClause(sub string) Clause {
	return Clause{
		Field: "tags", Op: "contains", Value: sub,
		match: func(n *models.ClientNote) bool { return listContainsAny(n.Tags, sub) },
	}
}

func mustHaveClause(subs ...string) Clause {
	var value any = subs[0]
	if len(subs) > 1 {
		value = strings.Join(subs, "|")
	}
	return Clause{
		Field: "requirements.mustHaves", Op: "contains", Value: value,
		match: func(n *models.ClientNote) bool {
			return listContainsAny(n.Requirements.MustHaves, subs...)
		},
	}
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// listContainsAny reports whether any list element contains any of the
// substrings, case-insensitively.
func listContainsAny(list []string, subs ...string) bool {
	for _, item := range list {
		low := strings.ToLower(item)
		for _, sub := range subs {
			if strings.Contains(low, sub) {
				return true
			}
		}
	}
	return false
}
