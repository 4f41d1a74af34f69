package search

import (
	"testing"

	"github.com/starford/raido/internal/models"
)

func TestFacets_EmptyMatchesEverything(t *testing.T) {
	if !(Facets{}).Match(note(nil)) {
		t.Errorf("empty facets should match any note")
	}
}

func TestFacets_PriceRangePassThrough(t *testing.T) {
	f := Facets{PriceRange: &PriceRange{Min: floatp(400000), Max: floatp(600000)}}

	unpriced := note(nil)
	if !f.Match(unpriced) {
		t.Errorf("notes without a price window should pass a price facet")
	}

	inside := note(func(n *models.ClientNote) {
		n.Requirements.MinPrice = floatp(450000)
		n.Requirements.MaxPrice = floatp(550000)
	})
	if !f.Match(inside) {
		t.Errorf("window inside the facet range should pass")
	}

	tooCheap := note(func(n *models.ClientNote) {
		n.Requirements.MaxPrice = floatp(300000)
	})
	if f.Match(tooCheap) {
		t.Errorf("max below the facet min should be excluded")
	}

	tooRich := note(func(n *models.ClientNote) {
		n.Requirements.MinPrice = floatp(700000)
	})
	if f.Match(tooRich) {
		t.Errorf("min above the facet max should be excluded")
	}
}

func TestFacets_ExactFields(t *testing.T) {
	f := Facets{
		Bedrooms:     intp(3),
		PropertyType: models.PropertyCondo,
		Timeline:     models.TimelineASAP,
	}
	hit := note(func(n *models.ClientNote) {
		n.Requirements.Bedrooms = intp(3)
		n.Requirements.PropertyType = models.PropertyCondo
		n.Timeline = models.TimelineASAP
	})
	if !f.Match(hit) {
		t.Errorf("note matching every facet should pass")
	}

	wrongBeds := note(func(n *models.ClientNote) {
		n.Requirements.Bedrooms = intp(4)
		n.Requirements.PropertyType = models.PropertyCondo
		n.Timeline = models.TimelineASAP
	})
	if f.Match(wrongBeds) {
		t.Errorf("bedroom facet is exact, 4 != 3")
	}

	noBeds := note(func(n *models.ClientNote) {
		n.Requirements.PropertyType = models.PropertyCondo
		n.Timeline = models.TimelineASAP
	})
	if f.Match(noBeds) {
		t.Errorf("missing bedrooms should fail an exact bedroom facet")
	}
}

func TestFacets_AreasAndTagsSubstring(t *testing.T) {
	f := Facets{Areas: []string{"downtown"}, Tags: []string{"buyer"}}
	hit := note(func(n *models.ClientNote) {
		n.Requirements.PreferredAreas = []string{"Downtown Core"}
		n.Tags = []string{"first-time-buyer"}
	})
	if !f.Match(hit) {
		t.Errorf("areas and tags should match case-insensitive substrings")
	}
	miss := note(func(n *models.ClientNote) {
		n.Requirements.PreferredAreas = []string{"Downtown Core"}
	})
	if f.Match(miss) {
		t.Errorf("every present facet must hold; missing tag should exclude")
	}
}

func TestFacets_PreApproved(t *testing.T) {
	yes := true
	f := Facets{PreApproved: &yes}
	approved := note(func(n *models.ClientNote) { n.PreApproved = true })
	if !f.Match(approved) || f.Match(note(nil)) {
		t.Errorf("preApproved facet should match only approved notes")
	}
}
