package dto

import (
	"time"

	"github.com/spec-kit/places-service/internal/domain"
)

// PlaceRequest payload for creating or updating a place. Sent as the "data"
// part of a multipart form when a photo accompanies it, or as a plain JSON
// body otherwise.
type PlaceRequest struct {
	Name             string `json:"name"`
	Category         string `json:"category"`
	AddressLine      string `json:"address_line"`
	City             string `json:"city"`
	PostalCode       string `json:"postal_code"`
	Country          string `json:"country"`
	ShortDescription string `json:"short_description"`
	PriceRange       string `json:"price_range,omitempty"`
	AvgPrice         *int   `json:"avg_price,omitempty"`
	OpeningHoursJSON string `json:"opening_hours_json,omitempty"`
}

// ModeratePlaceRequest payload for admin status changes.
type ModeratePlaceRequest struct {
	Status domain.PlaceStatus `json:"status"`
}

// PlaceResponse is the API representation of a place.
type PlaceResponse struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Category         string             `json:"category"`
	AddressLine      string             `json:"address_line"`
	City             string             `json:"city"`
	PostalCode       string             `json:"postal_code"`
	Country          string             `json:"country"`
	ShortDescription string             `json:"short_description"`
	PriceRange       string             `json:"price_range,omitempty"`
	AvgPrice         *int               `json:"avg_price,omitempty"`
	OpeningHoursJSON string             `json:"opening_hours_json,omitempty"`
	ImageURL         string             `json:"image_url,omitempty"`
	Status           domain.PlaceStatus `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
}

// NewPlaceResponse maps a domain place to its API shape.
func NewPlaceResponse(place *domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:               place.ID,
		Name:             place.Name,
		Category:         place.Category,
		AddressLine:      place.AddressLine,
		City:             place.City,
		PostalCode:       place.PostalCode,
		Country:          place.Country,
		ShortDescription: place.ShortDescription,
		PriceRange:       place.PriceRange,
		AvgPrice:         place.AvgPrice,
		OpeningHoursJSON: place.OpeningHoursJSON,
		ImageURL:         place.ImageURL,
		Status:           place.Status,
		CreatedAt:        place.CreatedAt,
	}
}

// NewPlaceResponses maps a slice of places.
func NewPlaceResponses(places []domain.Place) []PlaceResponse {
	items := make([]PlaceResponse, 0, len(places))
	for i := range places {
		items = append(items, NewPlaceResponse(&places[i]))
	}
	return items
}
