package domain

import "time"

// Favorite bookmarks an external place for a user.
type Favorite struct {
	ID        string
	UserID    string
	PlaceID   string
	Name      string
	Address   string
	CreatedAt time.Time
}
