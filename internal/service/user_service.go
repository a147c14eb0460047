package service

import (
	"context"

	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/repository"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

// UserUpdateInput carries optional profile changes; nil fields are left as-is.
type UserUpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	PhotoURL *string
	Address  *string
	City     *string
}

// UserService manages account profiles.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.BcryptCost}
}

// Get returns the account for an email.
func (s *UserService) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// Update applies profile changes. An email change re-checks uniqueness and
// invalidates previously issued tokens implicitly, since their subject no
// longer resolves; callers should issue a fresh pair afterwards.
func (s *UserService) Update(ctx context.Context, userID string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.PhotoURL != nil {
		user.PhotoURL = *input.PhotoURL
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewEmailTaken()
		}
		user.Email = *input.Email
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account. Outstanding tokens become invalid on the next
// request since subject lookup fails.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	return s.users.Delete(ctx, userID)
}

// List returns all accounts, for the admin surface.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
