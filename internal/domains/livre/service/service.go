package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/livre/model"
	"library-backend/internal/domains/livre/repository"
)

type livreService struct {
	repo repository.LivreRepository
}

func NewLivreService(repo repository.LivreRepository) ServiceInterface {
	return &livreService{repo: repo}
}

// =====================================================
// CRUD
// =====================================================

func (s *livreService) CreateLivre(ctx context.Context, req model.CreateLivreRequest) (*model.Livre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	livre := req.ToLivre()
	now := time.Now().UTC()
	livre.ID = uuid.New()
	livre.CreatedAt = now
	livre.UpdatedAt = now

	if err := s.repo.Create(ctx, livre); err != nil {
		return nil, err
	}

	log.Info().Str("livre_id", livre.ID.String()).Str("isbn", livre.ISBN).Msg("livre created")
	return livre, nil
}

func (s *livreService) GetLivre(ctx context.Context, id uuid.UUID) (*model.Livre, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *livreService) ListLivres(ctx context.Context, req model.ListLivresRequest) (*model.ListLivresResponse, error) {
	req.Normalize()

	livres, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list livres: %w", err)
	}

	return &model.ListLivresResponse{
		Livres: livres,
		Total:  total,
		Page:   req.Page,
		Limit:  req.Limit,
	}, nil
}

func (s *livreService) UpdateLivre(ctx context.Context, id uuid.UUID, req model.UpdateLivreRequest) (*model.Livre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	livre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(livre)
	if err := s.repo.Update(ctx, livre); err != nil {
		return nil, err
	}

	log.Info().Str("livre_id", id.String()).Msg("livre updated")
	return livre, nil
}

func (s *livreService) DeleteLivre(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("livre_id", id.String()).Msg("livre deleted")
	return nil
}

// =====================================================
// STOCK
// =====================================================

func (s *livreService) CheckDisponibilite(ctx context.Context, id uuid.UUID) (*model.DisponibiliteResponse, error) {
	livre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.DisponibiliteResponse{
		LivreID:    livre.ID,
		Disponible: livre.CheckDisponibilite(),
		Quantite:   livre.Quantite,
	}, nil
}

func (s *livreService) ReserveCopy(ctx context.Context, id uuid.UUID) (*model.Livre, error) {
	livre, err := s.repo.DecrementQuantite(ctx, id)
	if err != nil {
		if model.IsNotFoundError(err) {
			return nil, model.NewLivreIndisponibleError(id)
		}
		return nil, err
	}

	log.Debug().Str("livre_id", id.String()).Int("quantite", livre.Quantite).Msg("copy reserved")
	return livre, nil
}

func (s *livreService) RestockCopy(ctx context.Context, id uuid.UUID) (*model.Livre, error) {
	livre, err := s.repo.IncrementQuantite(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("livre_id", id.String()).Int("quantite", livre.Quantite).Msg("copy restocked")
	return livre, nil
}
