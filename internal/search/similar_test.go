package search

import (
	"strings"
	"testing"

	"github.com/starford/raido/internal/models"
)

func TestFindSimilar_ExcludesReference(t *testing.T) {
	ref := note(func(n *models.ClientNote) {
		n.ID = "ref"
		n.Requirements.PropertyType = models.PropertySingleFamily
	})
	pool := []models.ClientNote{*ref}
	if got := scorer().FindSimilar(ref, pool); len(got) != 0 {
		t.Errorf("reference should never match itself, got %d results", len(got))
	}
}

func TestFindSimilar_ThresholdIsStrict(t *testing.T) {
	// Same timeline alone scores 10, below the threshold of 30. Adding the
	// same property type (20) lands exactly on 30, which is still excluded.
	ref := note(func(n *models.ClientNote) {
		n.ID = "ref"
		n.Timeline = models.TimelineASAP
		n.Requirements.PropertyType = models.PropertyCondo
	})
	borderline := note(func(n *models.ClientNote) {
		n.ID = "other"
		n.Timeline = models.TimelineASAP
		n.Requirements.PropertyType = models.PropertyCondo
	})
	got := scorer().FindSimilar(ref, []models.ClientNote{*borderline})
	if len(got) != 0 {
		t.Errorf("score of exactly 30 should not pass a strict > threshold, got %d results", len(got))
	}
}

func TestFindSimilar_AboveThresholdSorted(t *testing.T) {
	ref := note(func(n *models.ClientNote) {
		n.ID = "ref"
		n.Requirements.PropertyType = models.PropertySingleFamily
		n.Requirements.Bedrooms = intp(3)
		n.Requirements.PreferredAreas = []string{"Downtown", "Westside"}
	})
	strong := note(func(n *models.ClientNote) {
		n.ID = "strong"
		n.ClientName = "Strong"
		n.Requirements.PropertyType = models.PropertySingleFamily
		n.Requirements.Bedrooms = intp(3)
		n.Requirements.PreferredAreas = []string{"Downtown"}
	})
	weak := note(func(n *models.ClientNote) {
		n.ID = "weak"
		n.ClientName = "Weak"
		n.Requirements.PropertyType = models.PropertySingleFamily
		n.Requirements.Bedrooms = intp(3)
	})
	got := scorer().FindSimilar(ref, []models.ClientNote{*weak, *strong})
	if len(got) != 2 {
		t.Fatalf("results = %d, want 2", len(got))
	}
	if got[0].Note.ClientName != "Strong" || got[1].Note.ClientName != "Weak" {
		t.Errorf("order = %s, %s; want Strong, Weak", got[0].Note.ClientName, got[1].Note.ClientName)
	}
	if got[0].SimilarityScore <= got[1].SimilarityScore {
		t.Errorf("scores not descending: %d then %d", got[0].SimilarityScore, got[1].SimilarityScore)
	}
}

func TestSimilarity_SharedAreasScalePerArea(t *testing.T) {
	w := DefaultWeights()
	ref := note(func(n *models.ClientNote) {
		n.Requirements.PreferredAreas = []string{"Downtown", "Westside", "Harbor"}
	})
	two := note(func(n *models.ClientNote) {
		n.Requirements.PreferredAreas = []string{"Downtown", "Harbor"}
	})
	sim := scorer().similarity(ref, two)
	// Both notes also share the default timeline.
	want := 2*w.SharedArea + w.SameTimeline
	if sim.SimilarityScore != want {
		t.Errorf("score = %d, want %d", sim.SimilarityScore, want)
	}
	found := false
	for _, s := range sim.Similarities {
		if strings.HasPrefix(s, "shared_areas: ") {
			found = true
			if !strings.Contains(s, "Downtown") || !strings.Contains(s, "Harbor") {
				t.Errorf("shared areas label missing entries: %q", s)
			}
		}
	}
	if !found {
		t.Errorf("expected a shared_areas entry, got %v", sim.Similarities)
	}
}

func TestSimilarity_AbsentFieldsDoNotScore(t *testing.T) {
	// Two notes that both leave propertyType, prices, bedrooms, and
	// bathrooms unset share nothing but the fixture timeline.
	ref := note(func(n *models.ClientNote) { n.ID = "a" })
	other := note(func(n *models.ClientNote) { n.ID = "b" })
	sim := scorer().similarity(ref, other)
	if want := DefaultWeights().SameTimeline; sim.SimilarityScore != want {
		t.Errorf("score = %d, want %d (timeline only)", sim.SimilarityScore, want)
	}
}

func TestSimilarity_PriceOverlap(t *testing.T) {
	ref := note(func(n *models.ClientNote) {
		n.Timeline = models.TimelineASAP
		n.Requirements.MinPrice = floatp(400000)
		n.Requirements.MaxPrice = floatp(600000)
	})
	overlapping := note(func(n *models.ClientNote) {
		n.Requirements.MinPrice = floatp(550000)
		n.Requirements.MaxPrice = floatp(800000)
	})
	disjoint := note(func(n *models.ClientNote) {
		n.Requirements.MinPrice = floatp(700000)
		n.Requirements.MaxPrice = floatp(900000)
	})
	sc := scorer()
	if sim := sc.similarity(ref, overlapping); sim.SimilarityScore != DefaultWeights().PriceOverlap {
		t.Errorf("overlapping windows should score %d, got %d", DefaultWeights().PriceOverlap, sim.SimilarityScore)
	}
	if sim := sc.similarity(ref, disjoint); sim.SimilarityScore != 0 {
		t.Errorf("disjoint windows should score 0, got %d", sim.SimilarityScore)
	}
}
