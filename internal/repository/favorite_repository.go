package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/places-service/internal/domain"
)

// FavoriteRepository encapsulates favorite persistence.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
	ExistsByUserAndPlace(ctx context.Context, userID, placeID string) (bool, error)
	DeleteByUserAndPlace(ctx context.Context, userID, placeID string) error
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository instantiates repository.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	const query = `
        INSERT INTO favorites (user_id, place_id, name, address)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		favorite.UserID,
		favorite.PlaceID,
		favorite.Name,
		favorite.Address,
	).Scan(&favorite.ID, &favorite.CreatedAt)
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	const query = `
        SELECT id, user_id, place_id, name, address, created_at
        FROM favorites WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var fav domain.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.PlaceID, &fav.Name, &fav.Address, &fav.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}

func (r *favoriteRepository) ExistsByUserAndPlace(ctx context.Context, userID, placeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id=$1 AND place_id=$2)`,
		userID, placeID,
	).Scan(&exists)
	return exists, err
}

func (r *favoriteRepository) DeleteByUserAndPlace(ctx context.Context, userID, placeID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id=$1 AND place_id=$2`, userID, placeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
