//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/emprunt/model"
	"library-backend/internal/infrastructure/database/dbtest"
)

func newEmprunt(clientID uuid.UUID, at time.Time) *model.Emprunt {
	return &model.Emprunt{
		ID:              uuid.New(),
		ClientID:        clientID,
		LivreID:         uuid.New(),
		DateEmprunt:     at,
		DateRetourPrevu: at.Add(14 * 24 * time.Hour),
		Statut:          model.StatutEnCours,
		CreatedAt:       at,
		UpdatedAt:       at,
	}
}

func TestPostgresEmpruntRepository_Lifecycle(t *testing.T) {
	repo := NewPostgresEmpruntRepository(dbtest.NewPool(t))
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	owner := uuid.New()

	first := newEmprunt(owner, base)
	second := newEmprunt(owner, base.Add(time.Hour))
	other := newEmprunt(uuid.New(), base.Add(2*time.Hour))
	for _, e := range []*model.Emprunt{first, second, other} {
		require.NoError(t, repo.Create(ctx, e))
	}

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatutEnCours, got.Statut)
	assert.True(t, got.DateRetourPrevu.Equal(first.DateRetourPrevu))
	assert.Nil(t, got.DateRetourEffectif)

	mine, err := repo.ListByClient(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	returnedAt := base.Add(48 * time.Hour)
	returned, err := repo.MarkReturned(ctx, first.ID, returnedAt)
	require.NoError(t, err)
	assert.Equal(t, model.StatutRetourne, returned.Statut)
	require.NotNil(t, returned.DateRetourEffectif)
	assert.True(t, returned.DateRetourEffectif.Equal(returnedAt))

	_, err = repo.MarkReturned(ctx, first.ID, returnedAt)
	assert.ErrorIs(t, err, model.ErrAlreadyReturned)
	_, err = repo.MarkReturned(ctx, uuid.New(), returnedAt)
	assert.ErrorIs(t, err, model.ErrEmpruntNotFound)

	second.Statut = model.StatutEnRetard
	require.NoError(t, repo.Update(ctx, second))
	got, err = repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatutEnRetard, got.Statut)

	deleted, err := repo.Delete(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.LivreID, deleted.LivreID)
	_, err = repo.Delete(ctx, other.ID)
	assert.ErrorIs(t, err, model.ErrEmpruntNotFound)
}

func TestPostgresEmpruntRepository_RejectsUnknownStatut(t *testing.T) {
	repo := NewPostgresEmpruntRepository(dbtest.NewPool(t))
	e := newEmprunt(uuid.New(), time.Now().UTC())
	e.Statut = "perdu"

	assert.Error(t, repo.Create(context.Background(), e))
}
