package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/places-service/internal/api/http/handlers"
	"github.com/spec-kit/places-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Users     *handlers.UsersHandler
	Places    *handlers.PlacesHandler
	Favorites *handlers.FavoritesHandler
	Discovery *handlers.DiscoveryHandler
	Gate      fiber.Handler
	MediaDir  string
}

// RoutePolicy is the ordered route classification table. Evaluated
// first-match; anything unmatched requires authentication.
func RoutePolicy() *auth.Policy {
	return auth.NewPolicy([]auth.Rule{
		{Pattern: "/health/*", Requirement: auth.RequirePublic},
		{Pattern: "/media/*", Requirement: auth.RequirePublic},
		{Method: fiber.MethodPost, Pattern: "/auth/register", Requirement: auth.RequirePublic},
		{Method: fiber.MethodPost, Pattern: "/auth/login", Requirement: auth.RequirePublic},
		{Method: fiber.MethodPost, Pattern: "/auth/refresh", Requirement: auth.RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/api/places/public/*", Requirement: auth.RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/api/places/google/*", Requirement: auth.RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/api/places", Requirement: auth.RequirePublic},
		{Pattern: "/admin/*", Requirement: auth.RequireAdmin},
	}, auth.RequireAuthenticated)
}

// RegisterRoutes wires HTTP routes. The gate runs before every handler so
// authentication and role checks always precede business logic.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.MediaDir != "" {
		app.Static("/media", cfg.MediaDir)
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.Users.Me)
	authGroup.Put("/update", cfg.Users.Update)
	authGroup.Delete("/delete", cfg.Users.Delete)

	places := app.Group("/api/places")
	places.Get("/", cfg.Places.ListPublic)
	places.Get("/public", cfg.Places.ListPublic)
	places.Get("/public/:id", cfg.Places.GetPublic)
	places.Get("/google/search", cfg.Discovery.Search)
	places.Get("/google/details/:placeID", cfg.Discovery.Details)

	mine := places.Group("/user")
	mine.Post("/", cfg.Places.Create)
	mine.Get("/mine", cfg.Places.Mine)
	mine.Get("/:id", cfg.Places.GetMine)
	mine.Put("/:id", cfg.Places.Update)
	mine.Patch("/:id", cfg.Places.Update)
	mine.Delete("/:id", cfg.Places.Delete)

	favorites := app.Group("/favorites")
	favorites.Get("/", cfg.Favorites.List)
	favorites.Post("/", cfg.Favorites.Add)
	favorites.Delete("/:placeID", cfg.Favorites.Remove)

	admin := app.Group("/admin")
	admin.Get("/users", cfg.Users.ListUsers)
	admin.Get("/places/pending", cfg.Places.ListPending)
	admin.Patch("/places/:id/status", cfg.Places.Moderate)
}
