package search

import (
	"strings"
	"testing"

	"github.com/starford/raido/internal/models"
)

func scorer() Scorer { return NewScorer(DefaultWeights()) }

func containsLabel(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

func TestScore_ExactPhrase(t *testing.T) {
	n := note(func(n *models.ClientNote) {
		n.Notes = "wants a quiet street with mature trees"
	})
	res := scorer().Score("quiet street", n)
	if !containsLabel(res.Matches, "exact_phrase_match") {
		t.Fatalf("expected exact_phrase_match, got %v", res.Matches)
	}
	if res.Score < DefaultWeights().ExactPhrase {
		t.Errorf("score %d should include the exact phrase bonus", res.Score)
	}
}

func TestScore_FieldWeights(t *testing.T) {
	inTags := note(func(n *models.ClientNote) { n.Tags = []string{"downtown"} })
	inNotes := note(func(n *models.ClientNote) { n.Notes = "prefers downtown" })
	sc := scorer()
	// "downtown" in tags carries more weight than in free-text notes.
	tagRes := sc.Score("downtown", inTags)
	noteRes := sc.Score("downtown", inNotes)
	if tagRes.Score <= noteRes.Score {
		t.Errorf("tag hit (%d) should outweigh notes hit (%d)", tagRes.Score, noteRes.Score)
	}
}

func TestScore_ShortTokensIgnored(t *testing.T) {
	n := note(func(n *models.ClientNote) { n.Notes = "on a hill" })
	res := scorer().Score("on a", n)
	for _, m := range res.Matches {
		if strings.HasPrefix(m, "notes_") {
			t.Errorf("two-character tokens should not score, got match %q", m)
		}
	}
}

func TestScore_PriceInRange(t *testing.T) {
	n := note(func(n *models.ClientNote) {
		n.Requirements.MinPrice = floatp(400000)
		n.Requirements.MaxPrice = floatp(600000)
	})
	res := scorer().Score("500k", n)
	if !containsLabel(res.Matches, "price_range_match") {
		t.Fatalf("500k should land inside 400k-600k, matches: %v", res.Matches)
	}

	out := scorer().Score("900k", n)
	if containsLabel(out.Matches, "price_range_match") {
		t.Errorf("900k should not land inside 400k-600k")
	}
}

func TestScore_PriceRequiresBothBounds(t *testing.T) {
	n := note(func(n *models.ClientNote) {
		n.Requirements.MaxPrice = floatp(600000)
	})
	res := scorer().Score("500k", n)
	if containsLabel(res.Matches, "price_range_match") {
		t.Errorf("price bonus needs both min and max set")
	}
}

func TestScore_ExactBedroomsAndBathrooms(t *testing.T) {
	n := note(func(n *models.ClientNote) {
		n.Requirements.Bedrooms = intp(3)
		n.Requirements.Bathrooms = floatp(2)
	})
	res := scorer().Score("3 bedroom 2 bath", n)
	if !containsLabel(res.Matches, "bedroom_match") {
		t.Errorf("expected bedroom_match, got %v", res.Matches)
	}
	if !containsLabel(res.Matches, "bathroom_match") {
		t.Errorf("expected bathroom_match, got %v", res.Matches)
	}

	off := note(func(n *models.ClientNote) { n.Requirements.Bedrooms = intp(4) })
	miss := scorer().Score("3 bedroom", off)
	if containsLabel(miss.Matches, "bedroom_match") {
		t.Errorf("3 bedroom query should not exact-match a 4 bedroom client")
	}
}

func TestScore_UrgencyAndApproval(t *testing.T) {
	n := note(func(n *models.ClientNote) {
		n.Timeline = models.TimelineASAP
		n.PreApproved = true
	})
	res := scorer().Score("urgent pre-approved buyers", n)
	if !containsLabel(res.Matches, "urgent_timeline") {
		t.Errorf("expected urgent_timeline, got %v", res.Matches)
	}
	if !containsLabel(res.Matches, "preapproved") {
		t.Errorf("expected preapproved, got %v", res.Matches)
	}

	relaxed := note(nil)
	other := scorer().Score("urgent pre-approved buyers", relaxed)
	if containsLabel(other.Matches, "urgent_timeline") || containsLabel(other.Matches, "preapproved") {
		t.Errorf("bonuses should only fire on matching notes, got %v", other.Matches)
	}
}

func TestScore_IntentBonuses(t *testing.T) {
	family := note(func(n *models.ClientNote) {
		n.Requirements.MustHaves = []string{"good school district", "big yard"}
	})
	if r := scorer().Score("family home with kids", family); !containsLabel(r.Matches, "family_oriented") {
		t.Errorf("expected family_oriented, got %v", r.Matches)
	}

	first := note(func(n *models.ClientNote) { n.Tags = []string{"first-time"} })
	if r := scorer().Score("first time buyer", first); !containsLabel(r.Matches, "first_time_buyer") {
		t.Errorf("expected first_time_buyer, got %v", r.Matches)
	}

	invest := note(func(n *models.ClientNote) {
		n.Requirements.PropertyType = models.PropertyMultiFamily
	})
	if r := scorer().Score("rental investment", invest); !containsLabel(r.Matches, "investment_intent") {
		t.Errorf("expected investment_intent, got %v", r.Matches)
	}

	lux := note(func(n *models.ClientNote) {
		n.Requirements.MaxPrice = floatp(900000)
	})
	if r := scorer().Score("luxury listings", lux); !containsLabel(r.Matches, "luxury_intent") {
		t.Errorf("expected luxury_intent via price floor, got %v", r.Matches)
	}

	modest := note(func(n *models.ClientNote) {
		n.Requirements.MaxPrice = floatp(300000)
	})
	if r := scorer().Score("luxury listings", modest); containsLabel(r.Matches, "luxury_intent") {
		t.Errorf("luxury intent should not fire below the price floor")
	}
}

func TestScore_RelevanceNormalized(t *testing.T) {
	n := note(func(n *models.ClientNote) {
		n.ClientName = "downtown"
		n.Notes = "downtown downtown downtown"
		n.Tags = []string{"downtown"}
		n.Requirements.PreferredAreas = []string{"downtown"}
	})
	res := scorer().Score("downtown", n)
	if res.Relevance < 0 || res.Relevance > 1 {
		t.Fatalf("relevance %f out of [0,1]", res.Relevance)
	}
	weak := scorer().Score("downtown", note(func(n *models.ClientNote) { n.Notes = "downtown" }))
	want := float64(weak.Score) / DefaultWeights().RelevanceDivisor
	if weak.Relevance != want {
		t.Errorf("relevance = %f, want score/divisor = %f", weak.Relevance, want)
	}
}

func TestRank_OrderAndExclusion(t *testing.T) {
	notes := []models.ClientNote{
		*note(func(n *models.ClientNote) { n.ClientName = "A"; n.Notes = "nothing relevant" }),
		*note(func(n *models.ClientNote) { n.ClientName = "B"; n.Notes = "loves downtown" }),
		*note(func(n *models.ClientNote) {
			n.ClientName = "C"
			n.Notes = "downtown condo"
			n.Tags = []string{"downtown"}
		}),
	}
	out := scorer().Rank("downtown", notes)
	if len(out) != 2 {
		t.Fatalf("ranked results = %d, want 2 (zero scores excluded)", len(out))
	}
	if out[0].Note.ClientName != "C" || out[1].Note.ClientName != "B" {
		t.Errorf("order = %s, %s; want C, B", out[0].Note.ClientName, out[1].Note.ClientName)
	}
}

func TestRank_StableOnTies(t *testing.T) {
	notes := []models.ClientNote{
		*note(func(n *models.ClientNote) { n.ClientName = "First"; n.Notes = "downtown" }),
		*note(func(n *models.ClientNote) { n.ClientName = "Second"; n.Notes = "downtown" }),
	}
	out := scorer().Rank("downtown", notes)
	if len(out) != 2 || out[0].Note.ClientName != "First" {
		t.Errorf("equal scores should keep input order, got %+v", out)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		500:     "500",
		500000:  "500,000",
		1250000: "1,250,000",
	}
	for in, want := range cases {
		if got := formatPrice(in); got != want {
			t.Errorf("formatPrice(%v) = %q, want %q", in, got, want)
		}
	}
}
