package domain

import "time"

// Role distinguishes regular users from administrators.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	PhotoURL     string
	Address      string
	City         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
