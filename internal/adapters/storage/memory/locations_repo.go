package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"place-history/internal/domain/locations"
	"place-history/internal/pagination"

	"github.com/google/uuid"
)

type visitedRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]locations.VisitedLocation
}

func NewVisitedRepo() locations.VisitedRepository {
	return &visitedRepo{
		byID: make(map[uuid.UUID]locations.VisitedLocation),
	}
}

func (r *visitedRepo) Create(ctx context.Context, l locations.VisitedLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == uuid.Nil {
		return errors.New("location id required")
	}
	if _, exists := r.byID[l.ID]; exists {
		return errors.New("location already exists")
	}
	r.byID[l.ID] = l
	return nil
}

func (r *visitedRepo) ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]locations.VisitedLocation, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]locations.VisitedLocation, 0)
	for _, l := range r.byID {
		if l.ClientID == clientID {
			all = append(all, l)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return pageSlice(all, p), int64(len(all)), nil
}

type favedRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]locations.FavedLocation
}

func NewFavedRepo() locations.FavedRepository {
	return &favedRepo{
		byID: make(map[uuid.UUID]locations.FavedLocation),
	}
}

func (r *favedRepo) Create(ctx context.Context, l locations.FavedLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == uuid.Nil {
		return errors.New("location id required")
	}
	if _, exists := r.byID[l.ID]; exists {
		return errors.New("location already exists")
	}
	r.byID[l.ID] = l
	return nil
}

func (r *favedRepo) GetByID(ctx context.Context, id uuid.UUID) (locations.FavedLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return locations.FavedLocation{}, locations.ErrNotFound
	}
	return l, nil
}

func (r *favedRepo) SetCategory(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok {
		return locations.ErrNotFound
	}
	if categoryID != nil {
		cid := *categoryID
		l.CategoryID = &cid
	} else {
		l.CategoryID = nil
	}
	r.byID[id] = l
	return nil
}

func (r *favedRepo) ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]locations.FavedLocation, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]locations.FavedLocation, 0)
	for _, l := range r.byID {
		if l.ClientID == clientID {
			all = append(all, l)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return pageSlice(all, p), int64(len(all)), nil
}

func (r *favedRepo) ListByCategoryAndClient(ctx context.Context, categoryID, clientID uuid.UUID, p pagination.Params) ([]locations.FavedLocation, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]locations.FavedLocation, 0)
	for _, l := range r.byID {
		if l.ClientID != clientID {
			continue
		}
		if l.CategoryID == nil || *l.CategoryID != categoryID {
			continue
		}
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return pageSlice(all, p), int64(len(all)), nil
}
