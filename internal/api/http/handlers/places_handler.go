package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/places-service/internal/api/dto"
	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/repository"
	"github.com/spec-kit/places-service/internal/service"
	"github.com/spec-kit/places-service/internal/storage"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

// PlacesHandler manages user-created place endpoints, the public community
// listing and the admin moderation surface.
type PlacesHandler struct {
	places *service.PlaceService
	files  *storage.FileStore
}

// NewPlacesHandler constructs handler.
func NewPlacesHandler(placeService *service.PlaceService, files *storage.FileStore) *PlacesHandler {
	return &PlacesHandler{places: placeService, files: files}
}

// Create handles POST /api/places/user. Accepts multipart with a JSON "data"
// part and an optional "photo" part, or a plain JSON body.
func (h *PlacesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	req, imageURL, err := h.parsePlaceForm(c)
	if err != nil {
		return err
	}
	if req.Name == "" || req.Category == "" || req.AddressLine == "" || req.City == "" {
		return apperrors.NewValidationError("name, category, address_line, city required", nil)
	}

	input := placeInput(req)
	input.ImageURL = imageURL
	place, err := h.places.Create(c.Context(), principal.UserID, principal.Email, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPlaceResponse(place)})
}

// Update handles PATCH/PUT /api/places/user/:id.
func (h *PlacesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	req, imageURL, err := h.parsePlaceForm(c)
	if err != nil {
		return err
	}
	input := placeInput(req)
	input.ImageURL = imageURL

	place, err := h.places.UpdateOwned(c.Context(), principal.UserID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlaceResponse(place)})
}

// Delete handles DELETE /api/places/user/:id.
func (h *PlacesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.places.DeleteOwned(c.Context(), principal.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Mine handles GET /api/places/user/mine.
func (h *PlacesHandler) Mine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	places, err := h.places.ListMine(c.Context(), principal.UserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewPlaceResponses(places)})
}

// GetMine handles GET /api/places/user/:id.
func (h *PlacesHandler) GetMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	place, err := h.places.GetOwned(c.Context(), principal.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlaceResponse(place)})
}

// ListPublic handles GET /api/places/public and the legacy GET /api/places.
func (h *PlacesHandler) ListPublic(c *fiber.Ctx) error {
	filter := repository.PlaceFilter{}
	if city := c.Query("ville", c.Query("city")); city != "" {
		filter.City = &city
	}
	if category := c.Query("type", c.Query("category")); category != "" {
		filter.Category = &category
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
		filter.Offset, _ = strconv.Atoi(c.Query("offset"))
	}

	places, err := h.places.ListPublic(c.Context(), filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewPlaceResponses(places)})
}

// GetPublic handles GET /api/places/public/:id.
func (h *PlacesHandler) GetPublic(c *fiber.Ctx) error {
	place, err := h.places.GetPublic(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlaceResponse(place)})
}

// ListPending handles GET /admin/places/pending.
func (h *PlacesHandler) ListPending(c *fiber.Ctx) error {
	places, err := h.places.ListPending(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewPlaceResponses(places)})
}

// Moderate handles PATCH /admin/places/:id/status.
func (h *PlacesHandler) Moderate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ModeratePlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	place, err := h.places.Moderate(c.Context(), principal.Email, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlaceResponse(place)})
}

// parsePlaceForm reads the request either as multipart ("data" JSON part plus
// optional "photo" file) or as a plain JSON body. Returns the stored image
// URL when a photo was uploaded.
func (h *PlacesHandler) parsePlaceForm(c *fiber.Ctx) (dto.PlaceRequest, string, error) {
	var req dto.PlaceRequest

	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		if data := c.FormValue("data"); data != "" {
			if err := json.Unmarshal([]byte(data), &req); err != nil {
				return req, "", apperrors.NewValidationError("invalid data part", nil)
			}
		}

		fileHeader, err := c.FormFile("photo")
		if err != nil {
			return req, "", nil
		}
		f, err := fileHeader.Open()
		if err != nil {
			return req, "", apperrors.NewValidationError("unreadable photo", nil)
		}
		defer f.Close()

		imageURL, err := h.files.SavePlaceImage(fileHeader.Header.Get("Content-Type"), f)
		if err != nil {
			return req, "", apperrors.NewValidationError(err.Error(), nil)
		}
		return req, imageURL, nil
	}

	if err := c.BodyParser(&req); err != nil {
		return req, "", apperrors.NewValidationError("invalid payload", nil)
	}
	return req, "", nil
}

func placeInput(req dto.PlaceRequest) service.PlaceInput {
	return service.PlaceInput{
		Name:             req.Name,
		Category:         req.Category,
		AddressLine:      req.AddressLine,
		City:             req.City,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		ShortDescription: req.ShortDescription,
		PriceRange:       req.PriceRange,
		AvgPrice:         req.AvgPrice,
		OpeningHoursJSON: req.OpeningHoursJSON,
	}
}
