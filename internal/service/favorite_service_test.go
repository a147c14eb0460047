package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/places-service/internal/domain"
	"github.com/spec-kit/places-service/internal/repository"
	apperrors "github.com/spec-kit/places-service/pkg/util/errorutil"
)

type fakeFavorites struct {
	rows []domain.Favorite
	seq  int
}

var _ repository.FavoriteRepository = (*fakeFavorites)(nil)

func (f *fakeFavorites) Create(_ context.Context, favorite *domain.Favorite) error {
	f.seq++
	favorite.ID = "fav-" + strconv.Itoa(f.seq)
	f.rows = append(f.rows, *favorite)
	return nil
}

func (f *fakeFavorites) ListByUser(_ context.Context, userID string) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeFavorites) ExistsByUserAndPlace(_ context.Context, userID, placeID string) (bool, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.PlaceID == placeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFavorites) DeleteByUserAndPlace(_ context.Context, userID, placeID string) error {
	for i, row := range f.rows {
		if row.UserID == userID && row.PlaceID == placeID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func TestFavoriteAddAndList(t *testing.T) {
	t.Parallel()
	svc := NewFavoriteService(&fakeFavorites{})
	ctx := context.Background()

	fav, err := svc.Add(ctx, "user-1", FavoriteInput{PlaceID: "g-123", Name: "Louvre", Address: "Paris"})
	require.NoError(t, err)
	assert.NotEmpty(t, fav.ID)

	listed, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "g-123", listed[0].PlaceID)

	other, err := svc.List(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestFavoriteAddValidatesPlaceID(t *testing.T) {
	t.Parallel()
	svc := NewFavoriteService(&fakeFavorites{})

	_, err := svc.Add(context.Background(), "user-1", FavoriteInput{Name: "No place"})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestFavoriteDuplicateConflicts(t *testing.T) {
	t.Parallel()
	svc := NewFavoriteService(&fakeFavorites{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "user-1", FavoriteInput{PlaceID: "g-123", Name: "Louvre"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, "user-1", FavoriteInput{PlaceID: "g-123", Name: "Louvre again"})
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)

	// same place for another user is fine
	_, err = svc.Add(ctx, "user-2", FavoriteInput{PlaceID: "g-123", Name: "Louvre"})
	assert.NoError(t, err)
}

func TestFavoriteRemove(t *testing.T) {
	t.Parallel()
	svc := NewFavoriteService(&fakeFavorites{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "user-1", FavoriteInput{PlaceID: "g-123", Name: "Louvre"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "user-1", "g-123"))

	err = svc.Remove(ctx, "user-1", "g-123")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
