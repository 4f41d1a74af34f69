// Package testutil provides shared test helpers for setting up stores and
// note fixtures.
package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

// TestStore creates a temporary SQLite record store that is automatically
// cleaned up.
func TestStore(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 { return &f }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// Note builds a valid note with the given client name and applies any
// mutations.
func Note(name string, muts ...func(*models.ClientNote)) models.ClientNote {
	n := models.ClientNote{
		ClientName:  name,
		MeetingType: models.MeetingInitialConsultation,
		MeetingDate: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		Notes:       "Met to discuss their home search.",
		Timeline:    models.TimelineThreeToSix,
		Tags:        []string{},
	}
	for _, m := range muts {
		m(&n)
	}
	return n
}
