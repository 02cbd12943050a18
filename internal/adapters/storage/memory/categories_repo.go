package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"place-history/internal/domain/categories"
	"place-history/internal/pagination"

	"github.com/google/uuid"
)

type categoriesRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]categories.Category
}

func NewCategoriesRepo() categories.Repository {
	return &categoriesRepo{
		byID: make(map[uuid.UUID]categories.Category),
	}
}

func (r *categoriesRepo) Create(ctx context.Context, c categories.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == uuid.Nil {
		return errors.New("category id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("category already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *categoriesRepo) Update(ctx context.Context, c categories.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return categories.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *categoriesRepo) FindByIDAndClient(ctx context.Context, id, clientID uuid.UUID) (categories.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok || c.ClientID != clientID {
		return categories.Category{}, categories.ErrNotFound
	}
	return c, nil
}

func (r *categoriesRepo) ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]categories.Category, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]categories.Category, 0)
	for _, c := range r.byID {
		if c.ClientID == clientID {
			all = append(all, c)
		}
	}

	// created_at desc, como el orden fijo de los listados
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return pageSlice(all, p), int64(len(all)), nil
}

// pageSlice recorta la página pedida de un slice ya ordenado.
func pageSlice[T any](all []T, p pagination.Params) []T {
	p = p.Normalize()

	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Size
	if end > len(all) {
		end = len(all)
	}

	out := make([]T, end-start)
	copy(out, all[start:end])
	return out
}
