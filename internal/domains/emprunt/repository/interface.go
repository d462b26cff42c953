package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/emprunt/model"
)

// EmpruntRepository defines data access for loan records
type EmpruntRepository interface {
	Create(ctx context.Context, emprunt *model.Emprunt) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Emprunt, error)
	ListAll(ctx context.Context) ([]model.Emprunt, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Emprunt, error)
	Update(ctx context.Context, emprunt *model.Emprunt) error

	// MarkReturned sets statut to retourné and stamps dateRetourEffectif in one conditional step.
	// Returns ErrAlreadyReturned if the loan was already returned.
	MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) (*model.Emprunt, error)

	// Delete removes the loan and returns the record as it was.
	Delete(ctx context.Context, id uuid.UUID) (*model.Emprunt, error)
}
