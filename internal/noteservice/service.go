// Package noteservice coordinates the record store and the search core
// behind the API and MCP surfaces.
package noteservice

import (
	"context"
	"fmt"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/search"
	"github.com/starford/raido/internal/store"
)

// Default result limits for the scored search paths.
const (
	DefaultRankedLimit  = 10
	DefaultSimilarLimit = 5
)

// EventPublisher receives note lifecycle events after successful mutations.
type EventPublisher interface {
	PublishNoteEvent(kind, id string)
}

// WeightsProvider hands out the scoring weight set per request, so tuning
// reloads take effect without restarting.
type WeightsProvider interface {
	Current() search.Weights
}

// Service coordinates store and search operations.
type Service struct {
	store   store.Store
	weights WeightsProvider
	events  EventPublisher
}

// NewService creates a new note service. events may be nil when no live
// feed is wanted (MCP mode, tests).
func NewService(st store.Store, weights WeightsProvider, events EventPublisher) *Service {
	return &Service{store: st, weights: weights, events: events}
}

// SearchResponse is the envelope for the direct-filter search path. The
// extracted criteria and filter clauses are part of the contract: callers
// use them to show how the query was interpreted.
type SearchResponse struct {
	Query             string              `json:"query"`
	ExtractedCriteria search.Criteria     `json:"extractedCriteria"`
	Matches           search.Filter       `json:"matches"`
	Results           []models.ClientNote `json:"results"`
	Count             int                 `json:"count"`
}

// RankedResponse is the envelope for the scored search path.
type RankedResponse struct {
	Query        string          `json:"query"`
	TotalResults int             `json:"totalResults"`
	Results      []search.Scored `json:"results"`
}

// SimilarResponse is the envelope for the similar-clients path.
type SimilarResponse struct {
	ClientID       string           `json:"clientId"`
	ClientName     string           `json:"clientName"`
	TotalSimilar   int              `json:"totalSimilar"`
	SimilarClients []search.Similar `json:"similarClients"`
}

// FilterResponse is the envelope for UI-driven faceted search.
type FilterResponse struct {
	Filters      search.Facets       `json:"filters"`
	TotalMatches int                 `json:"totalMatches"`
	Results      []models.ClientNote `json:"results"`
}

// ListResponse is the envelope for plain listings and field searches.
type ListResponse struct {
	Results []models.ClientNote `json:"results"`
	Count   int                 `json:"count"`
}

// CreateNote validates and persists a new note. Absent meeting type and
// timeline get the consultation defaults.
func (s *Service) CreateNote(_ context.Context, n models.ClientNote) (*models.ClientNote, error) {
	if n.MeetingType == "" {
		n.MeetingType = models.MeetingInitialConsultation
	}
	if n.Timeline == "" {
		n.Timeline = models.TimelineThreeToSix
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	created, err := s.store.Create(n)
	if err != nil {
		return nil, err
	}
	s.publish("created", created.ID)
	return created, nil
}

// GetNote returns one note by id.
func (s *Service) GetNote(_ context.Context, id string) (*models.ClientNote, error) {
	if id == "" {
		return nil, apperr.Validation("id is required")
	}
	return s.store.Get(id)
}

// ListNotes returns notes newest-created first with optional pagination and
// tag filter.
func (s *Service) ListNotes(_ context.Context, limit, offset int, tag string) ([]models.ClientNote, int, error) {
	if limit < 0 || offset < 0 {
		return nil, 0, apperr.Validation("limit and offset must be non-negative")
	}
	return s.store.List(limit, offset, tag)
}

// UpdateNote applies a partial patch; id and createdAt are immutable.
func (s *Service) UpdateNote(_ context.Context, id string, p store.Patch) (*models.ClientNote, error) {
	if id == "" {
		return nil, apperr.Validation("id is required")
	}
	updated, err := s.store.Update(id, p)
	if err != nil {
		return nil, err
	}
	s.publish("updated", updated.ID)
	return updated, nil
}

// DeleteNote removes one note by id.
func (s *Service) DeleteNote(_ context.Context, id string) error {
	if id == "" {
		return apperr.Validation("id is required")
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.publish("deleted", id)
	return nil
}

// Search runs the direct-filter path: extract criteria from the query,
// build a structured filter, and apply it against the store.
func (s *Service) Search(_ context.Context, query string) (*SearchResponse, error) {
	if query == "" {
		return nil, apperr.Validation("query is required")
	}
	criteria := search.Extract(query)
	filter := search.BuildFilter(criteria, query)
	results, err := s.store.Find(&filter)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.ClientNote{}
	}
	return &SearchResponse{
		Query:             query,
		ExtractedCriteria: criteria,
		Matches:           filter,
		Results:           results,
		Count:             len(results),
	}, nil
}

// RankedSearch runs the scoring path over a full snapshot and returns the
// top hits. limit 0 means the default.
func (s *Service) RankedSearch(_ context.Context, query string, limit int) (*RankedResponse, error) {
	if query == "" {
		return nil, apperr.Validation("query is required")
	}
	if limit < 0 {
		return nil, apperr.Validation("limit must be non-negative")
	}
	if limit == 0 {
		limit = DefaultRankedLimit
	}

	notes, err := s.store.All()
	if err != nil {
		return nil, err
	}
	scorer := search.NewScorer(s.weights.Current())
	results := scorer.Rank(query, notes)
	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []search.Scored{}
	}
	return &RankedResponse{Query: query, TotalResults: total, Results: results}, nil
}

// Similar finds clients with requirements close to the referenced client's.
func (s *Service) Similar(_ context.Context, id string, limit int) (*SimilarResponse, error) {
	if id == "" {
		return nil, apperr.Validation("clientId is required")
	}
	if limit < 0 {
		return nil, apperr.Validation("limit must be non-negative")
	}
	if limit == 0 {
		limit = DefaultSimilarLimit
	}

	ref, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	pool, err := s.store.All()
	if err != nil {
		return nil, err
	}
	scorer := search.NewScorer(s.weights.Current())
	sims := scorer.FindSimilar(ref, pool)
	total := len(sims)
	if len(sims) > limit {
		sims = sims[:limit]
	}
	if sims == nil {
		sims = []search.Similar{}
	}
	return &SimilarResponse{
		ClientID:       id,
		ClientName:     ref.ClientName,
		TotalSimilar:   total,
		SimilarClients: sims,
	}, nil
}

// Filter applies an explicit structured facet filter, bypassing extraction.
func (s *Service) Filter(_ context.Context, facets search.Facets) (*FilterResponse, error) {
	notes, err := s.store.All()
	if err != nil {
		return nil, err
	}
	results := []models.ClientNote{}
	for i := range notes {
		if facets.Match(&notes[i]) {
			results = append(results, notes[i])
		}
	}
	return &FilterResponse{Filters: facets, TotalMatches: len(results), Results: results}, nil
}

// FieldQuery is the structured field search used by the list page: every
// present field must hold.
type FieldQuery struct {
	Text         string // substring over clientName and notes
	Tag          string // exact tag
	ClientName   string // substring
	MeetingType  string // exact
	PropertyType string // exact
	Timeline     string // exact
}

// FieldSearch filters notes by explicit fields.
func (s *Service) FieldSearch(_ context.Context, q FieldQuery) (*ListResponse, error) {
	notes, err := s.store.All()
	if err != nil {
		return nil, err
	}
	results := []models.ClientNote{}
	for i := range notes {
		if matchFieldQuery(&notes[i], q) {
			results = append(results, notes[i])
		}
	}
	return &ListResponse{Results: results, Count: len(results)}, nil
}

func matchFieldQuery(n *models.ClientNote, q FieldQuery) bool {
	if q.Text != "" && !containsFold(n.ClientName, q.Text) && !containsFold(n.Notes, q.Text) {
		return false
	}
	if q.Tag != "" && !hasTag(n.Tags, q.Tag) {
		return false
	}
	if q.ClientName != "" && !containsFold(n.ClientName, q.ClientName) {
		return false
	}
	if q.MeetingType != "" && n.MeetingType != q.MeetingType {
		return false
	}
	if q.PropertyType != "" && n.Requirements.PropertyType != q.PropertyType {
		return false
	}
	if q.Timeline != "" && n.Timeline != q.Timeline {
		return false
	}
	return true
}

func (s *Service) publish(kind, id string) {
	if s.events != nil {
		s.events.PublishNoteEvent(kind, id)
	}
}
