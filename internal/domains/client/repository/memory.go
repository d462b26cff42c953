package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/client/model"
)

type memoryClientRepository struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]model.Client
}

func NewMemoryClientRepository() ClientRepository {
	return &memoryClientRepository{clients: make(map[uuid.UUID]model.Client)}
}

func cloneClient(c model.Client) *model.Client {
	c.Wishlist = append([]uuid.UUID(nil), c.Wishlist...)
	return &c
}

func (r *memoryClientRepository) Create(_ context.Context, client *model.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.clients {
		if existing.Email == client.Email {
			return model.ErrEmailAlreadyExists
		}
	}
	r.clients[client.ID] = *cloneClient(*client)
	return nil
}

func (r *memoryClientRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, model.ErrClientNotFound
	}
	return cloneClient(c), nil
}

func (r *memoryClientRepository) GetByEmail(_ context.Context, email string) (*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.clients {
		if c.Email == email {
			return cloneClient(c), nil
		}
	}
	return nil, model.ErrClientNotFound
}

func (r *memoryClientRepository) AddToWishlist(_ context.Context, clientID, livreID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[clientID]
	if !ok {
		return nil, model.ErrClientNotFound
	}
	if c.InWishlist(livreID) {
		return nil, model.ErrAlreadyInWishlist
	}

	c.Wishlist = append(append([]uuid.UUID(nil), c.Wishlist...), livreID)
	c.UpdatedAt = time.Now().UTC()
	r.clients[clientID] = c
	return append([]uuid.UUID(nil), c.Wishlist...), nil
}

func (r *memoryClientRepository) RemoveFromWishlist(_ context.Context, clientID, livreID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[clientID]
	if !ok {
		return nil, model.ErrClientNotFound
	}
	if !c.InWishlist(livreID) {
		return nil, model.ErrNotInWishlist
	}

	remaining := make([]uuid.UUID, 0, len(c.Wishlist))
	for _, id := range c.Wishlist {
		if id != livreID {
			remaining = append(remaining, id)
		}
	}
	c.Wishlist = remaining
	c.UpdatedAt = time.Now().UTC()
	r.clients[clientID] = c
	return append([]uuid.UUID(nil), remaining...), nil
}
