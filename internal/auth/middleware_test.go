package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/repository"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

type fakeUsers struct {
	byEmail map[string]*domain.User
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	if f.byEmail == nil {
		f.byEmail = map[string]*domain.User{}
	}
	u.ID = "user-" + strconv.Itoa(len(f.byEmail)+1)
	cpy := *u
	f.byEmail[u.Email] = &cpy
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *domain.User) error {
	for email, existing := range f.byEmail {
		if existing.ID == u.ID {
			delete(f.byEmail, email)
			cpy := *u
			f.byEmail[u.Email] = &cpy
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	for email, existing := range f.byEmail {
		if existing.ID == id {
			delete(f.byEmail, email)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cpy := *u
	return &cpy, nil
}

func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUsers) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		users = append(users, *u)
	}
	return users, nil
}

func newGateApp(t *testing.T, users *fakeUsers, tokens *TokenManager) *fiber.App {
	t.Helper()

	policy := NewPolicy([]Rule{
		{Pattern: "/public/ping", Requirement: RequirePublic},
		{Pattern: "/admin/*", Requirement: RequireAdmin},
	}, RequireAuthenticated)

	middleware := NewAuthMiddleware(tokens, users, zap.NewNop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) (err error) {
		defer func() {
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{"error": domainErr.Message})
				err = nil
			}
		}()
		return c.Next()
	})
	app.Use(middleware.Gate(policy))

	app.Get("/public/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"email": principal.Email, "role": principal.Role})
	})
	app.Get("/admin/ping", func(c *fiber.Ctx) error {
		return c.SendString("admin pong")
	})
	return app
}

func seedUser(t *testing.T, users *fakeUsers, email string, role domain.Role) {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), &domain.User{
		Name:  "Test",
		Email: email,
		Role:  role,
	}))
}

func doRequest(t *testing.T, app *fiber.App, method, target, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestGatePublicRouteBypassesAuth(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{}
	app := newGateApp(t, users, NewTokenManager("s", time.Minute, time.Hour))

	resp := doRequest(t, app, http.MethodGet, "/public/ping", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateMissingOrMalformedHeader(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{}
	tokens := NewTokenManager("s", time.Minute, time.Hour)
	seedUser(t, users, "alice@example.com", domain.RoleUser)
	app := newGateApp(t, users, tokens)

	token, _, err := tokens.Issue("alice@example.com", domain.RoleUser, TokenKindAccess)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Token " + token,
		"lowercase":    "bearer " + token,
		"no space":     "Bearer" + token,
	} {
		resp := doRequest(t, app, http.MethodGet, "/whoami", header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
	}
}

func TestGateRefreshTokenRejectedOnProtectedRoute(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{}
	tokens := NewTokenManager("s", time.Minute, time.Hour)
	seedUser(t, users, "alice@example.com", domain.RoleUser)
	app := newGateApp(t, users, tokens)

	refresh, _, err := tokens.Issue("alice@example.com", domain.RoleUser, TokenKindRefresh)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/whoami", "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateLiveRoleResolution(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{}
	tokens := NewTokenManager("s", time.Minute, time.Hour)
	seedUser(t, users, "alice@example.com", domain.RoleUser)
	app := newGateApp(t, users, tokens)

	// token embeds USER at issuance
	token, _, err := tokens.Issue("alice@example.com", domain.RoleUser, TokenKindAccess)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/admin/ping", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// promote in the store and replay the same token
	users.byEmail["alice@example.com"].Role = domain.RoleAdmin

	resp = doRequest(t, app, http.MethodGet, "/admin/ping", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateDeletedUserRejected(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{}
	tokens := NewTokenManager("s", time.Minute, time.Hour)
	seedUser(t, users, "alice@example.com", domain.RoleUser)
	app := newGateApp(t, users, tokens)

	token, _, err := tokens.Issue("alice@example.com", domain.RoleUser, TokenKindAccess)
	require.NoError(t, err)

	delete(users.byEmail, "alice@example.com")

	resp := doRequest(t, app, http.MethodGet, "/whoami", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
