package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/client/model"
)

// ServiceInterface defines client account and wishlist use cases
type ServiceInterface interface {
	CreateClient(ctx context.Context, req model.CreateClientRequest) (*model.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error)

	GetWishlist(ctx context.Context, clientID uuid.UUID) (*model.WishlistResponse, error)
	AddToWishlist(ctx context.Context, clientID, livreID uuid.UUID) (*model.WishlistResponse, error)
	RemoveFromWishlist(ctx context.Context, clientID, livreID uuid.UUID) (*model.WishlistResponse, error)
}
