package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/livre/model"
)

// memoryLivreRepository keeps books in a map. Every stock change holds the write lock
// for the whole check-and-write.
type memoryLivreRepository struct {
	mu     sync.RWMutex
	livres map[uuid.UUID]model.Livre
}

func NewMemoryLivreRepository() LivreRepository {
	return &memoryLivreRepository{livres: make(map[uuid.UUID]model.Livre)}
}

func (r *memoryLivreRepository) Create(_ context.Context, livre *model.Livre) error {
	if livre.Quantite < 0 {
		return model.ErrInvalidQuantite
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.livres {
		if existing.ISBN == livre.ISBN {
			return model.ErrISBNAlreadyExists
		}
	}
	r.livres[livre.ID] = *livre
	return nil
}

func (r *memoryLivreRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Livre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.livres[id]
	if !ok {
		return nil, model.NewLivreNotFoundError(id)
	}
	return &l, nil
}

func (r *memoryLivreRepository) List(_ context.Context, req model.ListLivresRequest) ([]model.Livre, int, error) {
	req.Normalize()
	q := strings.ToLower(req.Q)

	r.mu.RLock()
	matched := make([]model.Livre, 0, len(r.livres))
	for _, l := range r.livres {
		if q != "" && !strings.Contains(strings.ToLower(l.Titre), q) && !strings.Contains(strings.ToLower(l.Auteur), q) {
			continue
		}
		if req.CategorieID != nil && (l.CategorieID == nil || *l.CategorieID != *req.CategorieID) {
			continue
		}
		matched = append(matched, l)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Titre != matched[j].Titre {
			return matched[i].Titre < matched[j].Titre
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	total := len(matched)
	start := req.Offset()
	if start > total {
		start = total
	}
	end := start + req.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *memoryLivreRepository) Update(_ context.Context, livre *model.Livre) error {
	if livre.Quantite < 0 {
		return model.ErrInvalidQuantite
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.livres[livre.ID]; !ok {
		return model.NewLivreNotFoundError(livre.ID)
	}
	for id, existing := range r.livres {
		if id != livre.ID && existing.ISBN == livre.ISBN {
			return model.ErrISBNAlreadyExists
		}
	}
	livre.UpdatedAt = time.Now().UTC()
	r.livres[livre.ID] = *livre
	return nil
}

func (r *memoryLivreRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.livres[id]; !ok {
		return model.NewLivreNotFoundError(id)
	}
	delete(r.livres, id)
	return nil
}

func (r *memoryLivreRepository) DecrementQuantite(_ context.Context, id uuid.UUID) (*model.Livre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.livres[id]
	if !ok {
		return nil, model.NewLivreNotFoundError(id)
	}
	if l.Quantite <= 0 {
		return nil, model.NewLivreIndisponibleError(id)
	}
	l.Quantite--
	l.UpdatedAt = time.Now().UTC()
	r.livres[id] = l
	return &l, nil
}

func (r *memoryLivreRepository) IncrementQuantite(_ context.Context, id uuid.UUID) (*model.Livre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.livres[id]
	if !ok {
		return nil, model.NewLivreNotFoundError(id)
	}
	l.Quantite++
	l.UpdatedAt = time.Now().UTC()
	r.livres[id] = l
	return &l, nil
}
