package search

import (
	"sort"
	"strings"

	"github.com/starford/raido/internal/models"
)

// Similar is one entry in a similar-clients result.
type Similar struct {
	Note            models.ClientNote `json:"note"`
	SimilarityScore int               `json:"similarityScore"`
	Relevance       float64           `json:"relevance"`
	Similarities    []string          `json:"similarities"`
}

// FindSimilar scores every note in the pool against the reference by shared
// attributes, excluding the reference itself, and returns hits above the
// similarity threshold sorted descending by score.
func (s Scorer) FindSimilar(ref *models.ClientNote, pool []models.ClientNote) []Similar {
	var out []Similar
	for i := range pool {
		note := &pool[i]
		if note.ID == ref.ID {
			continue
		}
		if sim := s.similarity(ref, note); sim.SimilarityScore > s.W.SimilarityThreshold {
			out = append(out, sim)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SimilarityScore > out[j].SimilarityScore
	})
	return out
}

func (s Scorer) similarity(ref, note *models.ClientNote) Similar {
	a, b := ref.Requirements, note.Requirements
	sim := Similar{Note: *note}

	if a.PropertyType != "" && a.PropertyType == b.PropertyType {
		sim.SimilarityScore += s.W.SamePropertyType
		sim.Similarities = append(sim.Similarities, "same_property_type")
	}

	// Price ranges overlap when the narrower window is non-empty.
	if a.MinPrice != nil && a.MaxPrice != nil && b.MinPrice != nil && b.MaxPrice != nil {
		overlap := min(*a.MaxPrice, *b.MaxPrice) - max(*a.MinPrice, *b.MinPrice)
		if overlap > 0 {
			sim.SimilarityScore += s.W.PriceOverlap
			sim.Similarities = append(sim.Similarities, "price_range_overlap")
		}
	}

	if a.Bedrooms != nil && b.Bedrooms != nil && *a.Bedrooms == *b.Bedrooms {
		sim.SimilarityScore += s.W.SameBedrooms
		sim.Similarities = append(sim.Similarities, "same_bedrooms")
	}
	if a.Bathrooms != nil && b.Bathrooms != nil && *a.Bathrooms == *b.Bathrooms {
		sim.SimilarityScore += s.W.SameBathrooms
		sim.Similarities = append(sim.Similarities, "same_bathrooms")
	}

	if shared := intersect(a.PreferredAreas, b.PreferredAreas); len(shared) > 0 {
		sim.SimilarityScore += len(shared) * s.W.SharedArea
		sim.Similarities = append(sim.Similarities, "shared_areas: "+strings.Join(shared, ", "))
	}
	if shared := intersect(a.MustHaves, b.MustHaves); len(shared) > 0 {
		sim.SimilarityScore += len(shared) * s.W.SharedMustHave
		sim.Similarities = append(sim.Similarities, "shared_must_haves: "+strings.Join(shared, ", "))
	}

	if ref.Timeline == note.Timeline {
		sim.SimilarityScore += s.W.SameTimeline
		sim.Similarities = append(sim.Similarities, "same_timeline")
	}

	sim.Relevance = normalize(float64(sim.SimilarityScore), s.W.SimilarityDivisor)
	return sim
}

// intersect returns the elements of a that also appear in b, preserving a's
// order. Comparison is exact: shared attributes are stored values, not free
// text.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b))
	for _, item := range b {
		set[item] = struct{}{}
	}
	var out []string
	for _, item := range a {
		if _, ok := set[item]; ok {
			out = append(out, item)
		}
	}
	return out
}
