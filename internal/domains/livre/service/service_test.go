package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/livre/model"
	"library-backend/internal/domains/livre/repository"
)

func newService(t *testing.T) ServiceInterface {
	t.Helper()
	return NewLivreService(repository.NewMemoryLivreRepository())
}

func createLivre(t *testing.T, svc ServiceInterface, isbn, titre string, quantite int) *model.Livre {
	t.Helper()
	l, err := svc.CreateLivre(context.Background(), model.CreateLivreRequest{
		ISBN:     isbn,
		Titre:    titre,
		Auteur:   "Émile Zola",
		Quantite: quantite,
	})
	require.NoError(t, err)
	return l
}

func TestCreateLivre_Validation(t *testing.T) {
	svc := newService(t)

	_, err := svc.CreateLivre(context.Background(), model.CreateLivreRequest{ISBN: "9782070409228", Auteur: "Zola"})
	assert.Error(t, err)

	_, err = svc.CreateLivre(context.Background(), model.CreateLivreRequest{
		ISBN: "9782070409228", Titre: "Germinal", Auteur: "Zola", Quantite: -1,
	})
	assert.Error(t, err)
}

func TestCreateLivre_DuplicateISBN(t *testing.T) {
	svc := newService(t)
	createLivre(t, svc, "9782070409228", "Germinal", 1)

	_, err := svc.CreateLivre(context.Background(), model.CreateLivreRequest{
		ISBN: "9782070409228", Titre: "Autre", Auteur: "X",
	})
	assert.ErrorIs(t, err, model.ErrISBNAlreadyExists)
}

func TestCheckDisponibilite(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	dispo := createLivre(t, svc, "9782070409228", "Germinal", 2)
	vide := createLivre(t, svc, "9782253004226", "Nana", 0)

	res, err := svc.CheckDisponibilite(ctx, dispo.ID)
	require.NoError(t, err)
	assert.True(t, res.Disponible)
	assert.Equal(t, 2, res.Quantite)

	res, err = svc.CheckDisponibilite(ctx, vide.ID)
	require.NoError(t, err)
	assert.False(t, res.Disponible)

	_, err = svc.CheckDisponibilite(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrLivreNotFound)
}

func TestReserveAndRestock(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	l := createLivre(t, svc, "9782070409228", "Germinal", 1)

	got, err := svc.ReserveCopy(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantite)

	_, err = svc.ReserveCopy(ctx, l.ID)
	assert.ErrorIs(t, err, model.ErrLivreIndisponible)

	got, err = svc.RestockCopy(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantite)
}

func TestReserveCopy_MissingBookIsUnavailable(t *testing.T) {
	svc := newService(t)

	_, err := svc.ReserveCopy(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrLivreIndisponible)
}

func TestReserveCopy_ConcurrentLastCopy(t *testing.T) {
	svc := newService(t)
	l := createLivre(t, svc, "9782070409228", "Germinal", 1)

	var wg sync.WaitGroup
	var ok int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ReserveCopy(context.Background(), l.ID); err == nil {
				atomic.AddInt32(&ok, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	got, err := svc.GetLivre(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantite)
}

func TestListLivres_FilterAndPaging(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	createLivre(t, svc, "9782070409228", "Germinal", 1)
	createLivre(t, svc, "9782253004226", "Nana", 1)
	createLivre(t, svc, "9782070360246", "La Bête humaine", 1)

	res, err := svc.ListLivres(ctx, model.ListLivresRequest{Q: "nana"})
	require.NoError(t, err)
	require.Len(t, res.Livres, 1)
	assert.Equal(t, "Nana", res.Livres[0].Titre)

	res, err = svc.ListLivres(ctx, model.ListLivresRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Livres, 1)
	assert.Equal(t, "Nana", res.Livres[0].Titre)

	res, err = svc.ListLivres(ctx, model.ListLivresRequest{Q: "zola"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, model.DefaultPageSize, res.Limit)
}

func TestUpdateLivre(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	l := createLivre(t, svc, "9782070409228", "Germinal", 1)

	titre := "Germinal (édition poche)"
	q := 5
	got, err := svc.UpdateLivre(ctx, l.ID, model.UpdateLivreRequest{Titre: &titre, Quantite: &q})
	require.NoError(t, err)
	assert.Equal(t, titre, got.Titre)
	assert.Equal(t, 5, got.Quantite)
	assert.Equal(t, "9782070409228", got.ISBN)

	neg := -2
	_, err = svc.UpdateLivre(ctx, l.ID, model.UpdateLivreRequest{Quantite: &neg})
	assert.Error(t, err)

	_, err = svc.UpdateLivre(ctx, uuid.New(), model.UpdateLivreRequest{Titre: &titre})
	assert.ErrorIs(t, err, model.ErrLivreNotFound)
}

func TestDeleteLivre(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	l := createLivre(t, svc, "9782070409228", "Germinal", 1)

	require.NoError(t, svc.DeleteLivre(ctx, l.ID))
	assert.ErrorIs(t, svc.DeleteLivre(ctx, l.ID), model.ErrLivreNotFound)
}
