// Package search implements the query understanding core: criteria
// extraction from free-text queries, structured filter building, weighted
// relevance scoring, and client similarity.
//
// Everything in this package is a pure computation over an already-fetched
// snapshot of notes. No I/O, no shared state; safe for concurrent use.
package search

// Weights holds every scoring constant in one place. The values are part of
// the external behavioral contract; use DefaultWeights for the canonical set
// and override individual fields via a tuning file only when you mean it.
type Weights struct {
	// Per-field token weights used by the relevance scorer. Fields not
	// listed fall back to DefaultField.
	Fields       map[string]int `yaml:"fields"`
	DefaultField int            `yaml:"default_field"`

	ExactPhrase int `yaml:"exact_phrase"`

	// Specialized match bonuses.
	PriceInRange   int `yaml:"price_in_range"`
	ExactBedrooms  int `yaml:"exact_bedrooms"`
	ExactBathrooms int `yaml:"exact_bathrooms"`
	UrgentTimeline int `yaml:"urgent_timeline"`
	PreApproved    int `yaml:"pre_approved"`

	// Intent bonuses.
	FamilyIntent     int     `yaml:"family_intent"`
	FirstTimeIntent  int     `yaml:"first_time_intent"`
	InvestmentIntent int     `yaml:"investment_intent"`
	LuxuryIntent     int     `yaml:"luxury_intent"`
	LuxuryPriceFloor float64 `yaml:"luxury_price_floor"`

	// Relevance is reported as min(score/RelevanceDivisor, 1).
	RelevanceDivisor float64 `yaml:"relevance_divisor"`

	// Similarity engine.
	SamePropertyType    int     `yaml:"same_property_type"`
	PriceOverlap        int     `yaml:"price_overlap"`
	SameBedrooms        int     `yaml:"same_bedrooms"`
	SameBathrooms       int     `yaml:"same_bathrooms"`
	SharedArea          int     `yaml:"shared_area"`
	SharedMustHave      int     `yaml:"shared_must_have"`
	SameTimeline        int     `yaml:"same_timeline"`
	SimilarityThreshold int     `yaml:"similarity_threshold"`
	SimilarityDivisor   float64 `yaml:"similarity_divisor"`
}

// DefaultWeights returns the canonical scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Fields: map[string]int{
			"clientName":     25,
			"notes":          20,
			"propertyType":   15,
			"mustHaves":      30,
			"preferredAreas": 25,
			"tags":           35,
			"timeline":       20,
			"meetingType":    15,
			"niceToHaves":    10,
			"dealBreakers":   40,
		},
		DefaultField: 10,

		ExactPhrase: 100,

		PriceInRange:   50,
		ExactBedrooms:  60,
		ExactBathrooms: 60,
		UrgentTimeline: 75,
		PreApproved:    40,

		FamilyIntent:     30,
		FirstTimeIntent:  40,
		InvestmentIntent: 45,
		LuxuryIntent:     35,
		LuxuryPriceFloor: 800000,

		RelevanceDivisor: 200,

		SamePropertyType:    20,
		PriceOverlap:        30,
		SameBedrooms:        15,
		SameBathrooms:       15,
		SharedArea:          25,
		SharedMustHave:      20,
		SameTimeline:        10,
		SimilarityThreshold: 30,
		SimilarityDivisor:   100,
	}
}

// fieldWeight returns the token weight for a searchable field.
func (w Weights) fieldWeight(field string) int {
	if v, ok := w.Fields[field]; ok {
		return v
	}
	return w.DefaultField
}
