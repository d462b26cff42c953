package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/livre/model"
)

// ServiceInterface defines the catalogue use cases
type ServiceInterface interface {
	CreateLivre(ctx context.Context, req model.CreateLivreRequest) (*model.Livre, error)
	GetLivre(ctx context.Context, id uuid.UUID) (*model.Livre, error)
	ListLivres(ctx context.Context, req model.ListLivresRequest) (*model.ListLivresResponse, error)
	UpdateLivre(ctx context.Context, id uuid.UUID, req model.UpdateLivreRequest) (*model.Livre, error)
	DeleteLivre(ctx context.Context, id uuid.UUID) error

	// CheckDisponibilite reports whether the book can currently be lent.
	CheckDisponibilite(ctx context.Context, id uuid.UUID) (*model.DisponibiliteResponse, error)

	// ReserveCopy takes one copy out of stock. A missing book is reported as unavailable.
	ReserveCopy(ctx context.Context, id uuid.UUID) (*model.Livre, error)

	// RestockCopy puts one copy back.
	RestockCopy(ctx context.Context, id uuid.UUID) (*model.Livre, error)
}
