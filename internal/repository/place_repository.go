package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/places-service/internal/domain"
)

// PlaceFilter captures public listing parameters.
type PlaceFilter struct {
	City     *string
	Category *string
	Limit    int
	Offset   int
}

// PlaceRepository encapsulates place persistence.
type PlaceRepository interface {
	Create(ctx context.Context, place *domain.Place) error
	Update(ctx context.Context, place *domain.Place) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Place, error)
	ListApproved(ctx context.Context, filter PlaceFilter) ([]domain.Place, error)
	ListByStatus(ctx context.Context, status domain.PlaceStatus) ([]domain.Place, error)
}

type placeRepository struct {
	pool *pgxpool.Pool
}

// NewPlaceRepository instantiates repository.
func NewPlaceRepository(pool *pgxpool.Pool) PlaceRepository {
	return &placeRepository{pool: pool}
}

const placeColumns = `id, name, category, address_line, city, postal_code, country, short_description,
        price_range, avg_price, opening_hours_json, image_url, created_by_id, status, created_at, updated_at`

func scanPlace(row pgx.Row) (*domain.Place, error) {
	var place domain.Place
	if err := row.Scan(
		&place.ID,
		&place.Name,
		&place.Category,
		&place.AddressLine,
		&place.City,
		&place.PostalCode,
		&place.Country,
		&place.ShortDescription,
		&place.PriceRange,
		&place.AvgPrice,
		&place.OpeningHoursJSON,
		&place.ImageURL,
		&place.CreatedByID,
		&place.Status,
		&place.CreatedAt,
		&place.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) Create(ctx context.Context, place *domain.Place) error {
	const query = `
        INSERT INTO places (name, category, address_line, city, postal_code, country, short_description,
            price_range, avg_price, opening_hours_json, image_url, created_by_id, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		place.Name,
		place.Category,
		place.AddressLine,
		place.City,
		place.PostalCode,
		place.Country,
		place.ShortDescription,
		place.PriceRange,
		place.AvgPrice,
		place.OpeningHoursJSON,
		place.ImageURL,
		place.CreatedByID,
		place.Status,
	).Scan(&place.ID, &place.CreatedAt, &place.UpdatedAt)
}

func (r *placeRepository) Update(ctx context.Context, place *domain.Place) error {
	const query = `
        UPDATE places SET name=$1, category=$2, address_line=$3, city=$4, postal_code=$5, country=$6,
            short_description=$7, price_range=$8, avg_price=$9, opening_hours_json=$10, image_url=$11,
            status=$12, updated_at=NOW()
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		place.Name,
		place.Category,
		place.AddressLine,
		place.City,
		place.PostalCode,
		place.Country,
		place.ShortDescription,
		place.PriceRange,
		place.AvgPrice,
		place.OpeningHoursJSON,
		place.ImageURL,
		place.Status,
		place.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *placeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM places WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *placeRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	const query = `SELECT ` + placeColumns + ` FROM places WHERE id=$1`
	return scanPlace(r.pool.QueryRow(ctx, query, id))
}

func (r *placeRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Place, error) {
	const query = `SELECT ` + placeColumns + ` FROM places WHERE created_by_id=$1 ORDER BY created_at DESC`
	return r.queryPlaces(ctx, query, ownerID)
}

func (r *placeRepository) ListApproved(ctx context.Context, filter PlaceFilter) ([]domain.Place, error) {
	clauses := []string{"status='APPROVED'"}
	args := []any{}
	idx := 1

	if filter.City != nil {
		clauses = append(clauses, fmt.Sprintf("LOWER(city)=LOWER($%d)", idx))
		args = append(args, *filter.City)
		idx++
	}
	if filter.Category != nil {
		clauses = append(clauses, fmt.Sprintf("category=$%d", idx))
		args = append(args, *filter.Category)
		idx++
	}

	query := `SELECT ` + placeColumns + ` FROM places WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	return r.queryPlaces(ctx, query, args...)
}

func (r *placeRepository) ListByStatus(ctx context.Context, status domain.PlaceStatus) ([]domain.Place, error) {
	const query = `SELECT ` + placeColumns + ` FROM places WHERE status=$1 ORDER BY created_at`
	return r.queryPlaces(ctx, query, status)
}

func (r *placeRepository) queryPlaces(ctx context.Context, query string, args ...any) ([]domain.Place, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, *place)
	}
	return places, rows.Err()
}
