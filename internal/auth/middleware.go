package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/repository"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

const bearerPrefix = "Bearer "

// Principal represents the authenticated caller for the current request.
// Role always reflects the stored record at request time, never the value
// embedded in the token.
type Principal struct {
	UserID string
	Email  string
	Role   domain.Role
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// Gate classifies the route against the policy and enforces it: public
// routes bypass authentication entirely, everything else is authenticated
// first and then role-checked. Runs before any business handler.
func (m *AuthMiddleware) Gate(policy *Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requirement := policy.Classify(c.Method(), c.Path())
		if requirement == RequirePublic {
			return c.Next()
		}

		principal, err := m.authenticate(c)
		if err != nil {
			return err
		}
		if requirement == RequireAdmin && principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// authenticate resolves a principal from the Authorization header. The
// failure sub-reason is logged but never surfaced to the client.
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*Principal, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		m.logger.Debug("auth rejected", zap.String("reason", "missing header"), zap.String("path", c.Path()))
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		m.logger.Debug("auth rejected", zap.String("reason", "bad scheme"), zap.String("path", c.Path()))
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	claims, err := m.tokens.Verify(strings.TrimPrefix(authHeader, bearerPrefix), TokenKindAccess)
	if err != nil {
		m.logger.Debug("auth rejected", zap.Error(err), zap.String("path", c.Path()))
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	user, err := m.users.GetByEmail(c.UserContext(), claims.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			m.logger.Debug("auth rejected", zap.String("reason", "subject not found"), zap.String("path", c.Path()))
			return nil, apperrors.NewUnauthorized("authentication required")
		}
		return nil, apperrors.MapError(err)
	}

	return &Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
