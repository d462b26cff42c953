package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/client/model"
)

// ClientRepository defines data access for library members
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	GetByEmail(ctx context.Context, email string) (*model.Client, error)

	// AddToWishlist appends livreID unless already present and returns the new wishlist.
	AddToWishlist(ctx context.Context, clientID, livreID uuid.UUID) ([]uuid.UUID, error)

	// RemoveFromWishlist removes livreID if present and returns the new wishlist.
	RemoveFromWishlist(ctx context.Context, clientID, livreID uuid.UUID) ([]uuid.UUID, error)
}
