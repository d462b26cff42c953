//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/client/model"
	"library-backend/internal/infrastructure/database/dbtest"
)

func newClient(email string) *model.Client {
	now := time.Now().UTC()
	return &model.Client{
		ID:           uuid.New(),
		Nom:          "Léa Martin",
		Email:        email,
		PasswordHash: "$2a$12$hash",
		Active:       true,
		Role:         model.RoleClient,
		Wishlist:     []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPostgresClientRepository_CreateAndGet(t *testing.T) {
	repo := NewPostgresClientRepository(dbtest.NewPool(t))
	ctx := context.Background()

	c := newClient("lea@example.com")
	require.NoError(t, repo.Create(ctx, c))
	assert.ErrorIs(t, repo.Create(ctx, newClient("lea@example.com")), model.ErrEmailAlreadyExists)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Email, got.Email)
	assert.Empty(t, got.Wishlist)

	got, err = repo.GetByEmail(ctx, "lea@example.com")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrClientNotFound)
}

func TestPostgresClientRepository_Wishlist(t *testing.T) {
	repo := NewPostgresClientRepository(dbtest.NewPool(t))
	ctx := context.Background()

	c := newClient("lea@example.com")
	require.NoError(t, repo.Create(ctx, c))
	a, b := uuid.New(), uuid.New()

	list, err := repo.AddToWishlist(ctx, c.ID, a)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a}, list)

	list, err = repo.AddToWishlist(ctx, c.ID, b)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, list)

	_, err = repo.AddToWishlist(ctx, c.ID, a)
	assert.ErrorIs(t, err, model.ErrAlreadyInWishlist)

	list, err = repo.RemoveFromWishlist(ctx, c.ID, a)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b}, list)

	_, err = repo.RemoveFromWishlist(ctx, c.ID, a)
	assert.ErrorIs(t, err, model.ErrNotInWishlist)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b}, got.Wishlist)

	_, err = repo.AddToWishlist(ctx, uuid.New(), a)
	assert.ErrorIs(t, err, model.ErrClientNotFound)
}
