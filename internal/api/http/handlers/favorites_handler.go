package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/places-service/internal/api/dto"
	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/service"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

// FavoritesHandler manages per-user bookmark endpoints.
type FavoritesHandler struct {
	favorites *service.FavoriteService
}

// NewFavoritesHandler constructs handler.
func NewFavoritesHandler(favoriteService *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favoriteService}
}

// List handles GET /favorites.
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	favorites, err := h.favorites.List(c.Context(), principal.UserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		items = append(items, dto.NewFavoriteResponse(&favorites[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Add handles POST /favorites.
func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	favorite, err := h.favorites.Add(c.Context(), principal.UserID, service.FavoriteInput{
		PlaceID: req.PlaceID,
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFavoriteResponse(favorite)})
}

// Remove handles DELETE /favorites/:placeID.
func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.favorites.Remove(c.Context(), principal.UserID, c.Params("placeID")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "removed"}})
}
