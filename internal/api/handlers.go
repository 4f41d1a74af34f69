package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/noteservice"
	"github.com/starford/raido/internal/search"
	"github.com/starford/raido/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListNotes handles GET /api/notes.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	tag := q.Get("tag")

	notes, total, err := h.svc.ListNotes(r.Context(), limit, offset, tag)
	if err != nil {
		writeError(w, err, "list notes")
		return
	}
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: notes, Total: total})
}

// GetNote handles GET /api/notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.svc.GetNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "get note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// CreateNote handles POST /api/notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.svc.CreateNote(r.Context(), req.toNote())
	if err != nil {
		writeError(w, err, "create note")
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /api/notes/{id}. The body is a partial patch;
// absent fields are left unchanged, and id/createdAt can never be patched.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var patch store.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.svc.UpdateNote(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err, "update note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/{id}.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "delete note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FieldSearch handles GET /api/search (structured field search).
func (h *Handler) FieldSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.svc.FieldSearch(r.Context(), noteservice.FieldQuery{
		Text:         q.Get("q"),
		Tag:          q.Get("tag"),
		ClientName:   q.Get("clientName"),
		MeetingType:  q.Get("meetingType"),
		PropertyType: q.Get("propertyType"),
		Timeline:     q.Get("timeline"),
	})
	if err != nil {
		writeError(w, err, "field search")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// NaturalSearch handles POST /api/search/natural: the extract-and-filter
// path. The response carries the extracted criteria and filter clauses so
// callers can see how the query was read.
func (h *Handler) NaturalSearch(w http.ResponseWriter, r *http.Request) {
	var req naturalSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	resp, err := h.svc.Search(r.Context(), req.Query)
	if err != nil {
		writeError(w, err, "natural search")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RankedSearch handles POST /api/search/ranked: the weighted scoring path.
func (h *Handler) RankedSearch(w http.ResponseWriter, r *http.Request) {
	var req rankedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	resp, err := h.svc.RankedSearch(r.Context(), req.Query, req.Limit)
	if err != nil {
		writeError(w, err, "ranked search")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Similar handles GET /api/notes/{id}/similar.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	resp, err := h.svc.Similar(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		writeError(w, err, "similar clients")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// FacetFilter handles POST /api/search/filter: explicit structured filter
// for UI-driven faceted search.
func (h *Handler) FacetFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filters *search.Facets `json:"filters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filters == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("filters object is required"))
		return
	}
	resp, err := h.svc.Filter(r.Context(), *req.Filters)
	if err != nil {
		writeError(w, err, "facet filter")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
