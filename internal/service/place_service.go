package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/events"
	"github.com/spec-kit/places-service/internal/repository"
	"github.com/spec-kit/places-service/internal/storage"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

// PlaceInput describes place creation/update payloads. For updates, empty
// strings mean "leave unchanged" on optional fields; required fields are
// validated at creation by the handler.
type PlaceInput struct {
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
}

// PlaceService coordinates user-created place workflows. Ownership checks
// live here, on record fields; route-level gating only distinguishes
// public/authenticated/admin.
type PlaceService struct {
	places     repository.PlaceRepository
	files      *storage.FileStore
	dispatcher events.Dispatcher
}

// NewPlaceService constructs the service.
func NewPlaceService(places repository.PlaceRepository, files *storage.FileStore, dispatcher events.Dispatcher) *PlaceService {
	return &PlaceService{places: places, files: files, dispatcher: dispatcher}
}

// Create submits a new place in PENDING status.
func (s *PlaceService) Create(ctx context.Context, ownerID, ownerEmail string, input PlaceInput) (*domain.Place, error) {
	place := &domain.Place{
		Name:             input.Name,
		Category:         input.Category,
		AddressLine:      input.AddressLine,
		City:             input.City,
		PostalCode:       input.PostalCode,
		Country:          input.Country,
		ShortDescription: input.ShortDescription,
		PriceRange:       input.PriceRange,
		AvgPrice:         input.AvgPrice,
		OpeningHoursJSON: input.OpeningHoursJSON,
		ImageURL:         input.ImageURL,
		CreatedByID:      ownerID,
		Status:           domain.PlaceStatusPending,
	}
	if err := s.places.Create(ctx, place); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventPlaceCreated,
		PlaceID:    place.ID,
		ActorEmail: ownerEmail,
		Timestamp:  time.Now(),
		Payload: events.PlaceCreatedPayload{
			Name:     place.Name,
			Category: place.Category,
			City:     place.City,
		},
	})
	return place, nil
}

// GetOwned returns a place if it belongs to the owner.
func (s *PlaceService) GetOwned(ctx context.Context, ownerID, placeID string) (*domain.Place, error) {
	place, err := s.getForOwner(ctx, ownerID, placeID)
	if err != nil {
		return nil, err
	}
	return place, nil
}

// ListMine returns the owner's places regardless of status.
func (s *PlaceService) ListMine(ctx context.Context, ownerID string) ([]domain.Place, error) {
	return s.places.ListByOwner(ctx, ownerID)
}

// UpdateOwned applies changes to an owned place. Editing resets the place to
// PENDING so changes go through moderation again.
func (s *PlaceService) UpdateOwned(ctx context.Context, ownerID, placeID string, input PlaceInput) (*domain.Place, error) {
	place, err := s.getForOwner(ctx, ownerID, placeID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		place.Name = input.Name
	}
	if input.Category != "" {
		place.Category = input.Category
	}
	if input.AddressLine != "" {
		place.AddressLine = input.AddressLine
	}
	if input.City != "" {
		place.City = input.City
	}
	if input.PostalCode != "" {
		place.PostalCode = input.PostalCode
	}
	if input.Country != "" {
		place.Country = input.Country
	}
	if input.ShortDescription != "" {
		place.ShortDescription = input.ShortDescription
	}
	if input.PriceRange != "" {
		place.PriceRange = input.PriceRange
	}
	if input.AvgPrice != nil {
		place.AvgPrice = input.AvgPrice
	}
	if input.OpeningHoursJSON != "" {
		place.OpeningHoursJSON = input.OpeningHoursJSON
	}
	if input.ImageURL != "" && input.ImageURL != place.ImageURL {
		if s.files != nil {
			s.files.DeleteByPublicURL(place.ImageURL)
		}
		place.ImageURL = input.ImageURL
	}
	place.Status = domain.PlaceStatusPending

	if err := s.places.Update(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// DeleteOwned removes an owned place and its stored image.
func (s *PlaceService) DeleteOwned(ctx context.Context, ownerID, placeID string) error {
	place, err := s.getForOwner(ctx, ownerID, placeID)
	if err != nil {
		return err
	}
	if err := s.places.Delete(ctx, place.ID); err != nil {
		return err
	}
	if s.files != nil {
		s.files.DeleteByPublicURL(place.ImageURL)
	}
	return nil
}

// ListPublic returns approved places for the community listing.
func (s *PlaceService) ListPublic(ctx context.Context, filter repository.PlaceFilter) ([]domain.Place, error) {
	return s.places.ListApproved(ctx, filter)
}

// GetPublic returns an approved place by id.
func (s *PlaceService) GetPublic(ctx context.Context, placeID string) (*domain.Place, error) {
	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("place", nil)
		}
		return nil, err
	}
	if place.Status != domain.PlaceStatusApproved {
		return nil, apperrors.NewNotFound("place", nil)
	}
	return place, nil
}

// ListPending returns places awaiting moderation.
func (s *PlaceService) ListPending(ctx context.Context) ([]domain.Place, error) {
	return s.places.ListByStatus(ctx, domain.PlaceStatusPending)
}

// Moderate sets a place's status and emits a status-changed event.
func (s *PlaceService) Moderate(ctx context.Context, actorEmail, placeID string, status domain.PlaceStatus) (*domain.Place, error) {
	if !status.Valid() || status == domain.PlaceStatusPending {
		return nil, apperrors.NewValidationError("status must be APPROVED or REJECTED", nil)
	}

	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("place", nil)
		}
		return nil, err
	}

	oldStatus := place.Status
	place.Status = status
	if err := s.places.Update(ctx, place); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventPlaceStatusChanged,
		PlaceID:    place.ID,
		ActorEmail: actorEmail,
		Timestamp:  time.Now(),
		Payload: events.PlaceStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return place, nil
}

func (s *PlaceService) getForOwner(ctx context.Context, ownerID, placeID string) (*domain.Place, error) {
	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("place", nil)
		}
		return nil, err
	}
	if place.CreatedByID != ownerID {
		return nil, apperrors.NewForbidden("not the owner of this place")
	}
	return place, nil
}

func (s *PlaceService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
