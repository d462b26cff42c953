package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/livre/model"
)

// LivreRepository defines data access for the book catalogue
type LivreRepository interface {
	Create(ctx context.Context, livre *model.Livre) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Livre, error)
	List(ctx context.Context, req model.ListLivresRequest) ([]model.Livre, int, error)
	Update(ctx context.Context, livre *model.Livre) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementQuantite takes one copy out of stock if quantite > 0.
	// The check and the write happen as a single step.
	// Returns ErrLivreIndisponible when no copy is left and ErrLivreNotFound when the book is missing.
	DecrementQuantite(ctx context.Context, id uuid.UUID) (*model.Livre, error)

	// IncrementQuantite puts one copy back. Returns ErrLivreNotFound when the book is missing.
	IncrementQuantite(ctx context.Context, id uuid.UUID) (*model.Livre, error)
}
