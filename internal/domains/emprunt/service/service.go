package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/emprunt/model"
	"library-backend/internal/domains/emprunt/repository"
	livreModel "library-backend/internal/domains/livre/model"
)

// LivreStock is the part of the catalogue that moves copies in and out.
type LivreStock interface {
	ReserveCopy(ctx context.Context, id uuid.UUID) (*livreModel.Livre, error)
	RestockCopy(ctx context.Context, id uuid.UUID) (*livreModel.Livre, error)
}

type empruntService struct {
	repo         repository.EmpruntRepository
	stock        LivreStock
	loanDuration time.Duration
	now          func() time.Time
}

func NewEmpruntService(
	repo repository.EmpruntRepository,
	stock LivreStock,
	loanDuration time.Duration,
) ServiceInterface {
	return &empruntService{
		repo:         repo,
		stock:        stock,
		loanDuration: loanDuration,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *empruntService) CreateLoan(ctx context.Context, livreID, clientID uuid.UUID) (*model.Emprunt, error) {
	// Step 1: take the copy. Check and decrement are one step in the store.
	if _, err := s.stock.ReserveCopy(ctx, livreID); err != nil {
		if livreModel.IsIndisponibleError(err) || livreModel.IsNotFoundError(err) {
			return nil, model.ErrLivreIndisponible
		}
		return nil, fmt.Errorf("failed to reserve livre: %w", err)
	}

	// Step 2: persist the loan
	now := s.now()
	emprunt := &model.Emprunt{
		ID:              uuid.New(),
		ClientID:        clientID,
		LivreID:         livreID,
		DateEmprunt:     now,
		DateRetourPrevu: now.Add(s.loanDuration),
		Statut:          model.StatutEnCours,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, emprunt); err != nil {
		// Step 3: give the copy back so stock matches the loans on record
		if _, restockErr := s.stock.RestockCopy(ctx, livreID); restockErr != nil {
			log.Error().Err(restockErr).
				Str("livre_id", livreID.String()).
				Msg("failed to restock livre after emprunt insert failure")
		}
		return nil, fmt.Errorf("failed to create emprunt: %w", err)
	}

	log.Info().
		Str("emprunt_id", emprunt.ID.String()).
		Str("client_id", clientID.String()).
		Str("livre_id", livreID.String()).
		Time("date_retour_prevu", emprunt.DateRetourPrevu).
		Msg("emprunt created")

	return emprunt, nil
}

// =====================================================
// READ
// =====================================================

func (s *empruntService) GetLoanByID(ctx context.Context, id uuid.UUID, requester model.Requester) (*model.Emprunt, error) {
	emprunt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !requester.CanAccess(emprunt.ClientID) {
		return nil, model.ErrPermissionDenied
	}

	return emprunt, nil
}

func (s *empruntService) GetAllLoans(ctx context.Context) ([]model.Emprunt, error) {
	emprunts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(emprunts) == 0 {
		return nil, model.ErrNoEmprunts
	}
	return emprunts, nil
}

func (s *empruntService) GetLoansByClient(
	ctx context.Context,
	clientID uuid.UUID,
	requester model.Requester,
) ([]model.Emprunt, error) {
	if !requester.CanAccess(clientID) {
		return nil, model.ErrPermissionDenied
	}

	emprunts, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(emprunts) == 0 {
		return nil, model.ErrNoEmprunts
	}
	return emprunts, nil
}

// =====================================================
// UPDATE
// =====================================================

func (s *empruntService) UpdateLoan(
	ctx context.Context,
	id uuid.UUID,
	updates map[string]json.RawMessage,
) (*model.Emprunt, error) {
	// Keys are checked before anything is read
	req, err := model.ParseUpdateEmpruntRequest(updates)
	if err != nil {
		return nil, err
	}

	emprunt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(emprunt)
	if err := s.repo.Update(ctx, emprunt); err != nil {
		return nil, err
	}

	log.Info().
		Str("emprunt_id", id.String()).
		Str("statut", string(emprunt.Statut)).
		Msg("emprunt updated")

	return emprunt, nil
}

// =====================================================
// RETURN
// =====================================================

func (s *empruntService) ReturnLoan(
	ctx context.Context,
	id uuid.UUID,
	requester model.Requester,
) (*model.ReturnResult, error) {
	emprunt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !requester.CanAccess(emprunt.ClientID) {
		return nil, model.ErrPermissionDenied
	}

	returned, err := s.repo.MarkReturned(ctx, id, s.now())
	if err != nil {
		return nil, err
	}

	livre, err := s.stock.RestockCopy(ctx, returned.LivreID)
	if err != nil {
		if !livreModel.IsNotFoundError(err) {
			// Reopen the loan so a retry can restock the copy
			if revertErr := s.repo.Update(ctx, emprunt); revertErr != nil {
				log.Error().Err(revertErr).
					Str("emprunt_id", id.String()).
					Msg("failed to reopen emprunt after restock failure")
			}
			return nil, fmt.Errorf("failed to restock livre: %w", err)
		}
		log.Warn().
			Str("emprunt_id", id.String()).
			Str("livre_id", returned.LivreID.String()).
			Msg("returned emprunt references a deleted livre")
		livre = nil
	}

	log.Info().
		Str("emprunt_id", id.String()).
		Str("client_id", returned.ClientID.String()).
		Str("livre_id", returned.LivreID.String()).
		Msg("emprunt returned")

	return &model.ReturnResult{Emprunt: returned, Livre: livre}, nil
}

// =====================================================
// DELETE
// =====================================================

func (s *empruntService) DeleteLoan(ctx context.Context, id uuid.UUID) (*model.Emprunt, error) {
	emprunt, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	// Restocks even when the loan was already returned.
	if _, err := s.stock.RestockCopy(ctx, emprunt.LivreID); err != nil {
		if !livreModel.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to restock livre: %w", err)
		}
		log.Warn().
			Str("emprunt_id", id.String()).
			Str("livre_id", emprunt.LivreID.String()).
			Msg("deleted emprunt references a deleted livre")
	}

	log.Info().
		Str("emprunt_id", id.String()).
		Str("statut", string(emprunt.Statut)).
		Msg("emprunt deleted")

	return emprunt, nil
}
