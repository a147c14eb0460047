package events

import (
	"time"

	"github.com/spec-kit/places-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPlaceCreated       EventType = "place_created"
	EventPlaceStatusChanged EventType = "place_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	PlaceID    string      `json:"place_id"`
	ActorEmail string      `json:"actor_email"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// PlaceCreatedPayload payload.
type PlaceCreatedPayload struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	City     string `json:"city"`
}

// PlaceStatusChangedPayload payload.
type PlaceStatusChangedPayload struct {
	OldStatus domain.PlaceStatus `json:"old_status"`
	NewStatus domain.PlaceStatus `json:"new_status"`
}
