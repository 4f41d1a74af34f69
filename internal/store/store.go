// Package store provides the ClientNote record store backed by SQLite.
package store

import (
	"time"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/search"
)

// Patch is a partial update: nil fields are left unchanged. The id and
// createdAt of a note can never be patched.
type Patch struct {
	ClientName   *string              `json:"clientName,omitempty"`
	ContactInfo  *models.ContactInfo  `json:"contactInfo,omitempty"`
	MeetingType  *string              `json:"meetingType,omitempty"`
	MeetingDate  *time.Time           `json:"meetingDate,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
	Requirements *models.Requirements `json:"requirements,omitempty"`
	Timeline     *string              `json:"timeline,omitempty"`
	PreApproved  *bool                `json:"preApproved,omitempty"`
	FollowUpDate *time.Time           `json:"followUpDate,omitempty"`
	Tags         *[]string            `json:"tags,omitempty"`
}

// Store is the record store contract. Implementations assign ids and
// lifecycle timestamps; search components only ever read from it.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type Store interface {
	// Create persists a new note, assigning its id, createdAt and updatedAt.
	Create(n models.ClientNote) (*models.ClientNote, error)
	// Get returns the note with the given id, or apperr.ErrNotFound.
	Get(id string) (*models.ClientNote, error)
	// List returns notes newest-created first with optional pagination and
	// tag filtering, plus the total count before pagination.
	List(limit, offset int, tag string) ([]models.ClientNote, int, error)
	// All returns a snapshot of every note, newest-created first.
	All() ([]models.ClientNote, error)
	// Update applies a partial patch, stamps updatedAt, and returns the
	// merged note. The merged note is validated before it is written.
	Update(id string, p Patch) (*models.ClientNote, error)
	// Delete removes the note with the given id, or apperr.ErrNotFound.
	Delete(id string) error
	// Find returns the snapshot entries matching a structured filter,
	// newest-created first.
	Find(f *search.Filter) ([]models.ClientNote, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
