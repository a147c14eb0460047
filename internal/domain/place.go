package domain

import "time"

// PlaceStatus tracks the moderation state of a user-created place.
type PlaceStatus string

const (
	PlaceStatusPending  PlaceStatus = "PENDING"
	PlaceStatusApproved PlaceStatus = "APPROVED"
	PlaceStatusRejected PlaceStatus = "REJECTED"
)

// Valid reports whether the status is one of the known values.
func (s PlaceStatus) Valid() bool {
	return s == PlaceStatusPending || s == PlaceStatusApproved || s == PlaceStatusRejected
}

// Place is a user-submitted place that becomes publicly listed once approved.
type Place struct {
	ID               string
	Name             string
	Category         string
	AddressLine      string
	City             string
	PostalCode       string
	Country          string
	ShortDescription string
	PriceRange       string
	AvgPrice         *int
	OpeningHoursJSON string
	ImageURL         string
	CreatedByID      string
	Status           PlaceStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
