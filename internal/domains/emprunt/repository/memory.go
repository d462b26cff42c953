package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/emprunt/model"
)

type memoryEmpruntRepository struct {
	mu       sync.RWMutex
	emprunts map[uuid.UUID]model.Emprunt
}

func NewMemoryEmpruntRepository() EmpruntRepository {
	return &memoryEmpruntRepository{emprunts: make(map[uuid.UUID]model.Emprunt)}
}

func (r *memoryEmpruntRepository) Create(_ context.Context, e *model.Emprunt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.emprunts[e.ID] = *e
	return nil
}

func (r *memoryEmpruntRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Emprunt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.emprunts[id]
	if !ok {
		return nil, model.ErrEmpruntNotFound
	}
	return &e, nil
}

func (r *memoryEmpruntRepository) filter(keep func(model.Emprunt) bool) []model.Emprunt {
	r.mu.RLock()
	out := make([]model.Emprunt, 0, len(r.emprunts))
	for _, e := range r.emprunts {
		if keep(e) {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateEmprunt.Equal(out[j].DateEmprunt) {
			return out[i].DateEmprunt.After(out[j].DateEmprunt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (r *memoryEmpruntRepository) ListAll(_ context.Context) ([]model.Emprunt, error) {
	return r.filter(func(model.Emprunt) bool { return true }), nil
}

func (r *memoryEmpruntRepository) ListByClient(_ context.Context, clientID uuid.UUID) ([]model.Emprunt, error) {
	return r.filter(func(e model.Emprunt) bool { return e.ClientID == clientID }), nil
}

func (r *memoryEmpruntRepository) Update(_ context.Context, e *model.Emprunt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.emprunts[e.ID]; !ok {
		return model.ErrEmpruntNotFound
	}
	e.UpdatedAt = time.Now().UTC()
	r.emprunts[e.ID] = *e
	return nil
}

func (r *memoryEmpruntRepository) MarkReturned(_ context.Context, id uuid.UUID, at time.Time) (*model.Emprunt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.emprunts[id]
	if !ok {
		return nil, model.ErrEmpruntNotFound
	}
	if e.Statut == model.StatutRetourne {
		return nil, model.ErrAlreadyReturned
	}

	e.Statut = model.StatutRetourne
	e.DateRetourEffectif = &at
	e.UpdatedAt = time.Now().UTC()
	r.emprunts[id] = e
	return &e, nil
}

func (r *memoryEmpruntRepository) Delete(_ context.Context, id uuid.UUID) (*model.Emprunt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.emprunts[id]
	if !ok {
		return nil, model.ErrEmpruntNotFound
	}
	delete(r.emprunts, id)
	return &e, nil
}
