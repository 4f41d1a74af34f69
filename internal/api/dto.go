package api

import (
	"time"

	"github.com/starford/raido/internal/models"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	ClientName   string              `json:"clientName"`
	ContactInfo  models.ContactInfo  `json:"contactInfo"`
	MeetingType  string              `json:"meetingType"`
	MeetingDate  time.Time           `json:"meetingDate"`
	Notes        string              `json:"notes"`
	Requirements models.Requirements `json:"requirements"`
	Timeline     string              `json:"timeline"`
	PreApproved  bool                `json:"preApproved"`
	FollowUpDate *time.Time          `json:"followUpDate,omitempty"`
	Tags         []string            `json:"tags"`
}

func (r CreateNoteRequest) toNote() models.ClientNote {
	return models.ClientNote{
		ClientName:   r.ClientName,
		ContactInfo:  r.ContactInfo,
		MeetingType:  r.MeetingType,
		MeetingDate:  r.MeetingDate,
		Notes:        r.Notes,
		Requirements: r.Requirements,
		Timeline:     r.Timeline,
		PreApproved:  r.PreApproved,
		FollowUpDate: r.FollowUpDate,
		Tags:         r.Tags,
	}
}

// NoteListResponse wraps note listings.
type NoteListResponse struct {
	Notes []models.ClientNote `json:"notes"`
	Total int                 `json:"total"`
}

// naturalSearchRequest is the body for POST /search/natural.
type naturalSearchRequest struct {
	Query string `json:"query"`
}

// rankedSearchRequest is the body for POST /search/ranked.
type rankedSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}
