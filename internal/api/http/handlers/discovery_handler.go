package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/places-service/internal/service"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

// DiscoveryHandler proxies Google Places lookups.
type DiscoveryHandler struct {
	discovery *service.DiscoveryService
}

// NewDiscoveryHandler constructs handler.
func NewDiscoveryHandler(discoveryService *service.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{discovery: discoveryService}
}

// Search handles GET /api/places/google/search?ville=&type=.
func (h *DiscoveryHandler) Search(c *fiber.Ctx) error {
	city := c.Query("ville", c.Query("city"))
	placeType := c.Query("type")
	if city == "" || placeType == "" {
		return apperrors.NewValidationError("ville and type required", nil)
	}

	result, err := h.discovery.SearchByCityAndType(c.Context(), city, placeType)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Details handles GET /api/places/google/details/:placeID.
func (h *DiscoveryHandler) Details(c *fiber.Ctx) error {
	details, err := h.discovery.Details(c.Context(), c.Params("placeID"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(details)
}
