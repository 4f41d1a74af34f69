package models

import (
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func inStrings(values []string) validation.InRule {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return validation.In(args...)
}

// halfStep rejects bathroom counts that are not whole or half numbers.
var halfStep = validation.By(func(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	if f < 0 {
		return errors.New("must be non-negative")
	}
	if math.Mod(f*2, 1) != 0 {
		return errors.New("must be in 0.5 increments")
	}
	return nil
})

var nonNegative = validation.Min(float64(0))

// Validate checks a note before it is persisted. Unknown enum values are a
// validation error rather than being silently normalized.
func (n ClientNote) Validate() error {
	if err := validation.ValidateStruct(&n,
		validation.Field(&n.ClientName, validation.Required),
		validation.Field(&n.MeetingDate, validation.Required),
		validation.Field(&n.Notes, validation.Required),
		validation.Field(&n.MeetingType, validation.Required, inStrings(MeetingTypes)),
		validation.Field(&n.Timeline, validation.Required, inStrings(Timelines)),
	); err != nil {
		return err
	}
	return n.Requirements.Validate()
}

// Validate checks the requirement fields that carry constraints. All fields
// are optional; present values must be sane.
func (r Requirements) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PropertyType, inStrings(PropertyTypes)),
		validation.Field(&r.Bedrooms, validation.Min(0)),
		validation.Field(&r.Bathrooms, halfStep),
		validation.Field(&r.MinPrice, nonNegative),
		validation.Field(&r.MaxPrice, nonNegative),
		validation.Field(&r.PreferredAreas, validation.Each(validation.Required)),
		validation.Field(&r.MustHaves, validation.Each(validation.Required)),
		validation.Field(&r.NiceToHaves, validation.Each(validation.Required)),
		validation.Field(&r.DealBreakers, validation.Each(validation.Required)),
	)
}
