package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/client/model"
	"library-backend/internal/domains/client/repository"
	livreModel "library-backend/internal/domains/livre/model"
)

const bcryptCost = 12

// LivreReader is the slice of the catalogue the wishlist needs.
type LivreReader interface {
	GetLivre(ctx context.Context, id uuid.UUID) (*livreModel.Livre, error)
}

type clientService struct {
	repo   repository.ClientRepository
	livres LivreReader
}

func NewClientService(repo repository.ClientRepository, livres LivreReader) ServiceInterface {
	return &clientService{repo: repo, livres: livres}
}

// =====================================================
// ACCOUNTS
// =====================================================

func (s *clientService) CreateClient(ctx context.Context, req model.CreateClientRequest) (*model.Client, error) {
	if req.Role == "" {
		req.Role = model.RoleClient
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	client := &model.Client{
		ID:           uuid.New(),
		Nom:          req.Nom,
		Email:        req.NormalizedEmail(),
		PasswordHash: string(hash),
		Adresse:      req.Adresse,
		Active:       true,
		Role:         req.Role,
		Wishlist:     []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	log.Info().Str("client_id", client.ID.String()).Str("role", client.Role).Msg("client created")
	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return s.repo.GetByID(ctx, id)
}

// =====================================================
// WISHLIST
// =====================================================

func (s *clientService) GetWishlist(ctx context.Context, clientID uuid.UUID) (*model.WishlistResponse, error) {
	client, err := s.repo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &model.WishlistResponse{ClientID: clientID, Wishlist: client.Wishlist}, nil
}

func (s *clientService) AddToWishlist(ctx context.Context, clientID, livreID uuid.UUID) (*model.WishlistResponse, error) {
	if _, err := s.livres.GetLivre(ctx, livreID); err != nil {
		if errors.Is(err, livreModel.ErrLivreNotFound) {
			return nil, model.ErrLivreNotFound
		}
		return nil, fmt.Errorf("failed to check livre: %w", err)
	}

	wishlist, err := s.repo.AddToWishlist(ctx, clientID, livreID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("client_id", clientID.String()).Str("livre_id", livreID.String()).Msg("livre added to wishlist")
	return &model.WishlistResponse{ClientID: clientID, Wishlist: wishlist}, nil
}

func (s *clientService) RemoveFromWishlist(ctx context.Context, clientID, livreID uuid.UUID) (*model.WishlistResponse, error) {
	wishlist, err := s.repo.RemoveFromWishlist(ctx, clientID, livreID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("client_id", clientID.String()).Str("livre_id", livreID.String()).Msg("livre removed from wishlist")
	return &model.WishlistResponse{ClientID: clientID, Wishlist: wishlist}, nil
}
