package dto

import (
	"time"

	"github.com/spec-kit/places-service/internal/domain"
)

// FavoriteRequest payload for bookmarking an external place.
type FavoriteRequest struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// FavoriteResponse is the API representation of a favorite.
type FavoriteResponse struct {
	ID        string    `json:"id"`
	PlaceID   string    `json:"place_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFavoriteResponse maps a domain favorite to its API shape.
func NewFavoriteResponse(favorite *domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        favorite.ID,
		PlaceID:   favorite.PlaceID,
		Name:      favorite.Name,
		Address:   favorite.Address,
		CreatedAt: favorite.CreatedAt,
	}
}
