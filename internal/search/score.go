package search

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/starford/raido/internal/models"
)

// Scored is one ranked search hit. Matches name the rules that fired;
// Explanations are the human-readable audit trail the API returns alongside
// each result.
type Scored struct {
	Note         models.ClientNote `json:"note"`
	Score        int               `json:"score"`
	Relevance    float64           `json:"relevance"`
	Matches      []string          `json:"matches"`
	Explanations []string          `json:"explanations"`
}

// Scorer computes relevance and similarity scores using a fixed weight set.
type Scorer struct {
	W Weights
}

// NewScorer returns a Scorer over the given weights.
func NewScorer(w Weights) Scorer {
	return Scorer{W: w}
}

// searchableField is one scored text field of a note. Order matters: rules
// fire and explanations accumulate in this sequence.
type searchableField struct {
	name string
	text string
}

func searchableFields(n *models.ClientNote) []searchableField {
	return []searchableField{
		{"clientName", n.ClientName},
		{"notes", n.Notes},
		{"propertyType", n.Requirements.PropertyType},
		{"preferredAreas", strings.Join(n.Requirements.PreferredAreas, " ")},
		{"mustHaves", strings.Join(n.Requirements.MustHaves, " ")},
		{"niceToHaves", strings.Join(n.Requirements.NiceToHaves, " ")},
		{"dealBreakers", strings.Join(n.Requirements.DealBreakers, " ")},
		{"tags", strings.Join(n.Tags, " ")},
		{"timeline", n.Timeline},
		{"meetingType", n.MeetingType},
	}
}

var (
	priceTokenRe = regexp.MustCompile(`\d+k?`)
	bedroomQryRe = regexp.MustCompile(`(\d+)\s*(?:bed|bedroom)`)
	bathQryRe    = regexp.MustCompile(`(\d+)\s*(?:bath|bathroom)`)
	urgencyRe    = regexp.MustCompile(`urgent|asap|immediately|soon`)
	approvedRe   = regexp.MustCompile(`pre.?approved|preapproved`)
	familyRe     = regexp.MustCompile(`family|children|kids|school`)
	familyReqRe  = regexp.MustCompile(`school|family|yard|safe`)
	firstTimeRe  = regexp.MustCompile(`first.?time|starter|beginning`)
	firstTagRe   = regexp.MustCompile(`first.?time|starter`)
	investRe     = regexp.MustCompile(`investment|rental|flip|multi.?family`)
	investTagRe  = regexp.MustCompile(`investment|rental`)
	luxuryRe     = regexp.MustCompile(`luxury|high.?end|premium|executive`)
	luxuryNiceRe = regexp.MustCompile(`pool|luxury|high.?end`)
)

// Score rates one note against a query. Rules accumulate in a fixed order:
// exact phrase, per-token field weights, specialized numeric and keyword
// matches, then intent bonuses. Every fired rule appends a match label and
// an explanation.
func (s Scorer) Score(query string, note *models.ClientNote) Scored {
	q := strings.ToLower(query)
	tokens := queryTokens(q)
	fields := searchableFields(note)

	res := Scored{Note: *note}

	// Exact phrase gets the highest single bonus.
	var full strings.Builder
	for i, f := range fields {
		if i > 0 {
			full.WriteByte(' ')
		}
		full.WriteString(f.text)
	}
	if strings.Contains(strings.ToLower(full.String()), q) {
		res.Score += s.W.ExactPhrase
		res.Matches = append(res.Matches, "exact_phrase_match")
		res.Explanations = append(res.Explanations, fmt.Sprintf("Found exact phrase %q in content", query))
	}

	// Token scoring across all searchable fields.
	for _, token := range tokens {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f.text), token) {
				w := s.W.fieldWeight(f.name)
				res.Score += w
				res.Matches = append(res.Matches, f.name+"_"+token)
				res.Explanations = append(res.Explanations,
					fmt.Sprintf("%q found in %s (weight: %d)", token, f.name, w))
			}
		}
	}

	s.scoreSpecialized(q, note, &res)
	s.scoreIntent(q, note, &res)

	res.Relevance = normalize(float64(res.Score), s.W.RelevanceDivisor)
	return res
}

// scoreSpecialized applies the numeric and status-keyword bonuses.
func (s Scorer) scoreSpecialized(q string, note *models.ClientNote, res *Scored) {
	req := note.Requirements

	// Numeric tokens that land inside the client's price range.
	if req.MinPrice != nil && req.MaxPrice != nil {
		for _, m := range priceTokenRe.FindAllString(q, -1) {
			price := parseAmount(m)
			if price >= *req.MinPrice && price <= *req.MaxPrice {
				res.Score += s.W.PriceInRange
				res.Matches = append(res.Matches, "price_range_match")
				res.Explanations = append(res.Explanations,
					fmt.Sprintf("Price $%s falls within budget range $%s - $%s",
						formatPrice(price), formatPrice(*req.MinPrice), formatPrice(*req.MaxPrice)))
			}
		}
	}

	if m := bedroomQryRe.FindStringSubmatch(q); m != nil && req.Bedrooms != nil {
		if n, _ := strconv.Atoi(m[1]); n == *req.Bedrooms {
			res.Score += s.W.ExactBedrooms
			res.Matches = append(res.Matches, "bedroom_match")
			res.Explanations = append(res.Explanations,
				fmt.Sprintf("Exact bedroom match: %d bedrooms", n))
		}
	}
	if m := bathQryRe.FindStringSubmatch(q); m != nil && req.Bathrooms != nil {
		if n, _ := strconv.Atoi(m[1]); float64(n) == *req.Bathrooms {
			res.Score += s.W.ExactBathrooms
			res.Matches = append(res.Matches, "bathroom_match")
			res.Explanations = append(res.Explanations,
				fmt.Sprintf("Exact bathroom match: %d bathrooms", n))
		}
	}

	if urgencyRe.MatchString(q) && note.Timeline == models.TimelineASAP {
		res.Score += s.W.UrgentTimeline
		res.Matches = append(res.Matches, "urgent_timeline")
		res.Explanations = append(res.Explanations, "Client has urgent timeline matching search intent")
	}
	if approvedRe.MatchString(q) && note.PreApproved {
		res.Score += s.W.PreApproved
		res.Matches = append(res.Matches, "preapproved")
		res.Explanations = append(res.Explanations, "Client is pre-approved for financing")
	}
}

// scoreIntent applies heuristic bonuses for inferred buyer intent.
func (s Scorer) scoreIntent(q string, note *models.ClientNote, res *Scored) {
	req := note.Requirements

	if familyRe.MatchString(q) && anyMatch(req.MustHaves, familyReqRe) {
		res.Score += s.W.FamilyIntent
		res.Matches = append(res.Matches, "family_oriented")
		res.Explanations = append(res.Explanations, "Family-oriented requirements match search intent")
	}
	if firstTimeRe.MatchString(q) && anyMatch(note.Tags, firstTagRe) {
		res.Score += s.W.FirstTimeIntent
		res.Matches = append(res.Matches, "first_time_buyer")
		res.Explanations = append(res.Explanations, "First-time buyer profile matches search intent")
	}
	if investRe.MatchString(q) {
		if strings.Contains(req.PropertyType, models.PropertyMultiFamily) || anyMatch(note.Tags, investTagRe) {
			res.Score += s.W.InvestmentIntent
			res.Matches = append(res.Matches, "investment_intent")
			res.Explanations = append(res.Explanations, "Investment property intent detected")
		}
	}
	if luxuryRe.MatchString(q) {
		if (req.MaxPrice != nil && *req.MaxPrice > s.W.LuxuryPriceFloor) || anyMatch(req.NiceToHaves, luxuryNiceRe) {
			res.Score += s.W.LuxuryIntent
			res.Matches = append(res.Matches, "luxury_intent")
			res.Explanations = append(res.Explanations, "Luxury property requirements detected")
		}
	}
}

// Rank scores every note and returns the hits with score > 0, sorted
// descending by score. The sort is stable: ties keep the snapshot order.
func (s Scorer) Rank(query string, notes []models.ClientNote) []Scored {
	var out []Scored
	for i := range notes {
		if r := s.Score(query, &notes[i]); r.Score > 0 {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// queryTokens splits on whitespace and drops tokens of one or two
// characters, which carry too little signal.
func queryTokens(q string) []string {
	var out []string
	for _, t := range strings.Fields(q) {
		if len(t) > 2 {
			out = append(out, t)
		}
	}
	return out
}

func anyMatch(list []string, re *regexp.Regexp) bool {
	for _, item := range list {
		if re.MatchString(strings.ToLower(item)) {
			return true
		}
	}
	return false
}

func normalize(score, divisor float64) float64 {
	if divisor <= 0 {
		return 0
	}
	if r := score / divisor; r < 1 {
		return r
	}
	return 1
}

// formatPrice renders a price with thousands separators, dropping any
// fractional part (queries only carry whole amounts).
func formatPrice(v float64) string {
	s := strconv.FormatInt(int64(v), 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
