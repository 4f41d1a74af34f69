package search

import (
	"regexp"
	"strconv"
	"strings"
)

// budgetBandRatio defines the implied minimum price when a query states an
// exact budget: "500k budget" means maxPrice 500000 and minPrice 400000.
const budgetBandRatio = 0.8

// Criteria is the structured constraint set extracted from a free-text
// query. It is transient: derived per search call and never persisted.
type Criteria struct {
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	Location  string   `json:"location,omitempty"`
}

// IsZero reports whether no criterion was extracted.
func (c Criteria) IsZero() bool {
	return c.Bedrooms == nil && c.Bathrooms == nil &&
		c.MinPrice == nil && c.MaxPrice == nil && c.Location == ""
}

// extractRule pairs a pattern with the assignment it performs. Rules run in
// slice order and later assignments to a field win, so precedence is fixed
// and testable: an exact-budget phrase overrides an explicit max or min.
type extractRule struct {
	re    *regexp.Regexp
	apply func(c *Criteria, m []string)
}

var extractRules = []extractRule{
	{
		re: regexp.MustCompile(`(\d+)\s*(?:bed|bedroom|br)`),
		apply: func(c *Criteria, m []string) {
			if n, err := strconv.Atoi(m[1]); err == nil {
				c.Bedrooms = &n
			}
		},
	},
	{
		re: regexp.MustCompile(`(\d+)\s*(?:bath|bathroom|ba)`),
		apply: func(c *Criteria, m []string) {
			if n, err := strconv.Atoi(m[1]); err == nil {
				c.Bathrooms = &n
			}
		},
	},
	{
		re: regexp.MustCompile(`(?:under|below|less than|max|maximum)\s*\$?(\d+k?)`),
		apply: func(c *Criteria, m []string) {
			v := parseAmount(m[1])
			c.MaxPrice = &v
		},
	},
	{
		re: regexp.MustCompile(`(?:over|above|more than|min|minimum)\s*\$?(\d+k?)`),
		apply: func(c *Criteria, m []string) {
			v := parseAmount(m[1])
			c.MinPrice = &v
		},
	},
	{
		re: regexp.MustCompile(`\$?(\d+k?)\s*(?:budget|price)`),
		apply: func(c *Criteria, m []string) {
			v := parseAmount(m[1])
			lo := v * budgetBandRatio
			c.MaxPrice = &v
			c.MinPrice = &lo
		},
	},
	{
		// Location runs up to the next stop word or end of query.
		re: regexp.MustCompile(`(?:in|at|near|around|close to)\s+([a-z\s]+?)(?:\s+under|\s+over|\s+with|\s+for|$)`),
		apply: func(c *Criteria, m []string) {
			c.Location = strings.TrimSpace(m[1])
		},
	},
}

// Extract parses a free-text query into structured criteria. Matching is
// case-insensitive and never fails: a pattern that does not fire simply
// leaves its criterion unset.
func Extract(query string) Criteria {
	q := strings.ToLower(query)
	var c Criteria
	for _, r := range extractRules {
		if m := r.re.FindStringSubmatch(q); m != nil {
			r.apply(&c, m)
		}
	}
	return c
}

// parseAmount converts a price token to a number, expanding the "k"
// shorthand: "500k" is 500000.
func parseAmount(s string) float64 {
	if k := strings.TrimSuffix(s, "k"); k != s {
		n, _ := strconv.ParseFloat(k, 64)
		return n * 1000
	}
	n, _ := strconv.ParseFloat(s, 64)
	return n
}
