package dto

import (
	"time"

	"github.com/spec-kit/places-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest payload for refresh-token exchange.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPairResponse carries an issued session. Field names match the wire
// contract consumed by the web client.
type TokenPairResponse struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

// UserResponse is the account representation without the password hash.
type UserResponse struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	PhotoURL string      `json:"photo_url,omitempty"`
	Address  string      `json:"address,omitempty"`
	City     string      `json:"city,omitempty"`
}

// UpdateUserRequest carries optional profile changes.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	PhotoURL *string `json:"photo_url"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
}

// NewUserResponse maps a domain user to its API shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		PhotoURL: user.PhotoURL,
		Address:  user.Address,
		City:     user.City,
	}
}
