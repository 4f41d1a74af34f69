package search

import (
	"testing"

	"github.com/starford/raido/internal/models"
)

func intp(v int) *int          { return &v }
func floatp(v float64) *float64 { return &v }

func note(mut func(n *models.ClientNote)) *models.ClientNote {
	n := &models.ClientNote{
		ClientName:  "Test Client",
		MeetingType: models.MeetingInitialConsultation,
		Timeline:    models.TimelineThreeToSix,
		Notes:       "general notes",
	}
	if mut != nil {
		mut(n)
	}
	return n
}

func TestBuildFilter_HardClausesFromCriteria(t *testing.T) {
	f := BuildFilter(Extract("3 bed 2 bath under 600k"), "3 bed 2 bath under 600k")
	if len(f.Hard) != 3 {
		t.Fatalf("hard clauses = %d, want 3", len(f.Hard))
	}
	if f.Fallback != "" {
		t.Errorf("fallback should be empty when clauses exist")
	}

	hit := note(func(n *models.ClientNote) {
		n.Requirements.Bedrooms = intp(3)
		n.Requirements.Bathrooms = floatp(2)
		n.Requirements.MaxPrice = floatp(550000)
	})
	if !f.Match(hit) {
		t.Errorf("note meeting all hard clauses should match")
	}

	over := note(func(n *models.ClientNote) {
		n.Requirements.Bedrooms = intp(3)
		n.Requirements.Bathrooms = floatp(2)
		n.Requirements.MaxPrice = floatp(700000)
	})
	if f.Match(over) {
		t.Errorf("note over the price cap should not match")
	}
}

func TestBuildFilter_HardRequiresFieldPresent(t *testing.T) {
	f := BuildFilter(Extract("4 bedroom"), "4 bedroom")
	missing := note(nil)
	if f.Match(missing) {
		t.Errorf("note without bedrooms set should not satisfy a bedroom clause")
	}
	more := note(func(n *models.ClientNote) { n.Requirements.Bedrooms = intp(5) })
	if !f.Match(more) {
		t.Errorf(">= semantics: 5 bedrooms should satisfy a 4 bedroom query")
	}
}

func TestBuildFilter_SoftTagKeywords(t *testing.T) {
	cases := []struct {
		query string
		tag   string
	}{
		{"first-time buyers", "first-time"},
		{"looking for investors", "investor"},
		{"family homes", "family"},
	}
	for _, tc := range cases {
		f := BuildFilter(Extract(tc.query), tc.query)
		tagged := note(func(n *models.ClientNote) { n.Tags = []string{tc.tag} })
		if !f.Match(tagged) {
			t.Errorf("query %q should match note tagged %q", tc.query, tc.tag)
		}
		plain := note(nil)
		if f.Match(plain) {
			t.Errorf("query %q should not match untagged note", tc.query)
		}
	}
}

func TestBuildFilter_PreApprovedKeyword(t *testing.T) {
	f := BuildFilter(Extract("pre-approval clients"), "pre-approval clients")
	yes := note(func(n *models.ClientNote) { n.PreApproved = true })
	no := note(nil)
	if !f.Match(yes) || f.Match(no) {
		t.Errorf("pre-approval keyword should select only preApproved notes")
	}
}

func TestBuildFilter_UrgencyMapsToASAP(t *testing.T) {
	f := BuildFilter(Extract("urgent buyers"), "urgent buyers")
	asap := note(func(n *models.ClientNote) { n.Timeline = models.TimelineASAP })
	later := note(nil)
	if !f.Match(asap) {
		t.Errorf("urgent query should match ASAP timeline")
	}
	if f.Match(later) {
		t.Errorf("urgent query should not match a relaxed timeline")
	}
}

func TestBuildFilter_FeatureKeywordsMatchMustHaves(t *testing.T) {
	f := BuildFilter(Extract("homes with pool"), "homes with pool")
	pooled := note(func(n *models.ClientNote) {
		n.Requirements.MustHaves = []string{"Pool", "garage"}
	})
	if !f.Match(pooled) {
		t.Errorf("pool keyword should match mustHaves case-insensitively")
	}
}

func TestBuildFilter_HardAndSoftCombine(t *testing.T) {
	// Hard clauses are AND-ed, then the soft group must have at least one hit.
	q := "3 bed family homes"
	f := BuildFilter(Extract(q), q)
	if len(f.Hard) == 0 || len(f.Soft) == 0 {
		t.Fatalf("expected both hard and soft clauses, got %d/%d", len(f.Hard), len(f.Soft))
	}
	both := note(func(n *models.ClientNote) {
		n.Requirements.Bedrooms = intp(3)
		n.Tags = []string{"family"}
	})
	hardOnly := note(func(n *models.ClientNote) {
		n.Requirements.Bedrooms = intp(3)
	})
	if !f.Match(both) {
		t.Errorf("note satisfying hard and soft should match")
	}
	if f.Match(hardOnly) {
		t.Errorf("note missing every soft clause should not match")
	}
}

func TestBuildFilter_LocationClause(t *testing.T) {
	q := "buyers in maple grove"
	f := BuildFilter(Extract(q), q)
	inArea := note(func(n *models.ClientNote) {
		n.Requirements.PreferredAreas = []string{"Maple Grove", "Downtown"}
	})
	inNotes := note(func(n *models.ClientNote) {
		n.Notes = "Wants something near Maple Grove if possible"
	})
	elsewhere := note(nil)
	if !f.Match(inArea) {
		t.Errorf("location should match preferred areas")
	}
	if !f.Match(inNotes) {
		t.Errorf("location should fall through to note text")
	}
	if f.Match(elsewhere) {
		t.Errorf("note with no area mention should not match")
	}
}

func TestBuildFilter_FallbackKeywordSearch(t *testing.T) {
	q := "Johnson"
	f := BuildFilter(Extract(q), q)
	if f.Fallback == "" {
		t.Fatalf("query with no clauses should use fallback")
	}
	byName := note(func(n *models.ClientNote) { n.ClientName = "Sarah Johnson" })
	byNotes := note(func(n *models.ClientNote) { n.Notes = "referred by the Johnsons" })
	byTag := note(func(n *models.ClientNote) { n.Tags = []string{"johnson-referral"} })
	miss := note(nil)
	if !f.Match(byName) || !f.Match(byNotes) || !f.Match(byTag) {
		t.Errorf("fallback should match name, notes, or tags")
	}
	if f.Match(miss) {
		t.Errorf("fallback should not match unrelated note")
	}
}
