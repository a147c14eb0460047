package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/repository"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

// FavoriteInput describes the payload for adding a favorite.
type FavoriteInput struct {
	PlaceID string
	Name    string
	Address string
}

// FavoriteService manages per-user bookmarks of external places.
type FavoriteService struct {
	favorites repository.FavoriteRepository
}

// NewFavoriteService builds the service.
func NewFavoriteService(favorites repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// List returns the user's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}

// Add stores a favorite; adding the same place twice is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID string, input FavoriteInput) (*domain.Favorite, error) {
	if input.PlaceID == "" {
		return nil, apperrors.NewValidationError("place_id required", nil)
	}
	exists, err := s.favorites.ExistsByUserAndPlace(ctx, userID, input.PlaceID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("place already in favorites", map[string]any{"place_id": input.PlaceID})
	}

	favorite := &domain.Favorite{
		UserID:  userID,
		PlaceID: input.PlaceID,
		Name:    input.Name,
		Address: input.Address,
	}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// Remove deletes a favorite by external place id.
func (s *FavoriteService) Remove(ctx context.Context, userID, placeID string) error {
	if err := s.favorites.DeleteByUserAndPlace(ctx, userID, placeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("favorite", map[string]any{"place_id": placeID})
		}
		return err
	}
	return nil
}
