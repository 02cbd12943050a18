package memory

import (
	"context"
	"errors"
	"sync"

	"place-history/internal/domain/clients"

	"github.com/google/uuid"
)

type clientsRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]clients.Client
}

func NewClientsRepo() clients.Repository {
	return &clientsRepo{
		byID: make(map[uuid.UUID]clients.Client),
	}
}

func (r *clientsRepo) Create(ctx context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ClientID == uuid.Nil {
		return errors.New("client id required")
	}
	if _, exists := r.byID[c.ClientID]; exists {
		return errors.New("client already exists")
	}
	r.byID[c.ClientID] = c
	return nil
}

func (r *clientsRepo) Exists(ctx context.Context, clientID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[clientID]
	return ok, nil
}
