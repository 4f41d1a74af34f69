// Package models defines the domain types for Raido.
package models

import "time"

// Meeting types.
const (
	MeetingInitialConsultation = "Initial Consultation"
	MeetingFollowUp            = "Follow-up"
	MeetingPropertyTour        = "Property Tour"
	MeetingOfferDiscussion     = "Offer Discussion"
)

// Property types.
const (
	PropertySingleFamily = "Single Family"
	PropertyCondo        = "Condo"
	PropertyTownhouse    = "Townhouse"
	PropertyMultiFamily  = "Multi-family"
)

// Timelines.
const (
	TimelineASAP       = "ASAP"
	TimelineOneToThree = "1-3 months"
	TimelineThreeToSix = "3-6 months"
	TimelineSixPlus    = "6+ months"
)

// MeetingTypes lists the accepted meeting type values.
var MeetingTypes = []string{
	MeetingInitialConsultation,
	MeetingFollowUp,
	MeetingPropertyTour,
	MeetingOfferDiscussion,
}

// PropertyTypes lists the accepted property type values.
var PropertyTypes = []string{
	PropertySingleFamily,
	PropertyCondo,
	PropertyTownhouse,
	PropertyMultiFamily,
}

// Timelines lists the accepted timeline values.
var Timelines = []string{
	TimelineASAP,
	TimelineOneToThree,
	TimelineThreeToSix,
	TimelineSixPlus,
}

// ContactInfo holds optional client contact details.
type ContactInfo struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Requirements captures the client's property wish list. Numeric fields are
// pointers so that "not discussed yet" is distinguishable from zero.
type Requirements struct {
	PropertyType   string   `json:"propertyType,omitempty"`
	Bedrooms       *int     `json:"bedrooms,omitempty"`
	Bathrooms      *float64 `json:"bathrooms,omitempty"`
	MinPrice       *float64 `json:"minPrice,omitempty"`
	MaxPrice       *float64 `json:"maxPrice,omitempty"`
	PreferredAreas []string `json:"preferredAreas,omitempty"`
	MustHaves      []string `json:"mustHaves,omitempty"`
	NiceToHaves    []string `json:"niceToHaves,omitempty"`
	DealBreakers   []string `json:"dealBreakers,omitempty"`
}

// ClientNote is the unit of storage: one meeting with one client.
type ClientNote struct {
	ID           string       `json:"id"`
	ClientName   string       `json:"clientName"`
	ContactInfo  ContactInfo  `json:"contactInfo"`
	MeetingType  string       `json:"meetingType"`
	MeetingDate  time.Time    `json:"meetingDate"`
	Notes        string       `json:"notes"`
	Requirements Requirements `json:"requirements"`
	Timeline     string       `json:"timeline"`
	PreApproved  bool         `json:"preApproved"`
	FollowUpDate *time.Time   `json:"followUpDate,omitempty"`
	Tags         []string     `json:"tags"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
