package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/repository"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

// TokenPair bundles the access/refresh tokens issued for a session.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// RegisterInput describes the registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	City     string
}

// AuthService coordinates registration, login and refresh flows. Tokens are
// never persisted; a session ends only by expiry or client-side discard.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL()),
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account. Duplicate emails are rejected before any
// token logic runs.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewEmailTaken()
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Address:      input.Address,
		City:         input.City,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates credentials and issues an access/refresh pair. Unknown
// email and wrong password fail identically so callers cannot enumerate
// accounts; the sub-reason is logged only.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("login rejected", zap.String("reason", "unknown email"))
			return nil, nil, apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Debug("login rejected", zap.String("reason", "password mismatch"))
		return nil, nil, apperrors.NewUnauthorized("invalid email or password")
	}

	pair, err := s.PairFor(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The role
// is re-resolved from the stored record, not taken from the refresh token,
// and the refresh token itself is returned unchanged (no rotation).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		s.logger.Debug("refresh rejected", zap.Error(err))
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}

	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("refresh rejected", zap.String("reason", "subject not found"))
			return nil, apperrors.NewUnauthorized("invalid refresh token")
		}
		return nil, err
	}

	accessToken, accessExp, err := s.tokens.Issue(user.Email, user.Role, auth.TokenKindAccess)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// PairFor issues a fresh access/refresh pair bound to the user's current
// email and role. Also used after profile updates, where the old subject may
// no longer resolve.
func (s *AuthService) PairFor(user *domain.User) (*TokenPair, error) {
	accessToken, accessExp, err := s.tokens.Issue(user.Email, user.Role, auth.TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.tokens.Issue(user.Email, user.Role, auth.TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Logout no-ops for the stateless JWT approach; sessions end client-side.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
