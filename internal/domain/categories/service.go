package categories

import (
	"context"
	"errors"
	"strings"
	"time"

	"place-history/internal/pagination"
	"place-history/internal/platform/identifier"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const maxNameLen = 100

// ClientChecker evita depender del paquete clients completo.
type ClientChecker interface {
	Exists(ctx context.Context, clientID uuid.UUID) (bool, error)
}

type Service struct {
	repo    Repository
	clients ClientChecker
	now     func() time.Time
}

func NewService(repo Repository, clients ClientChecker) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		now:     time.Now,
	}
}

func (s *Service) Create(ctx context.Context, clientID uuid.UUID, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return Category{}, ErrInvalidInput
	}

	known, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return Category{}, err
	}
	if !known {
		return Category{}, ErrNotFound
	}

	now := s.now()
	c := Category{
		ID:           identifier.New(),
		CategoryName: name,
		CreatedAt:    now,
		UpdatedAt:    now,
		ClientID:     clientID,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

// Update renombra la categoría. CreatedAt es inmutable.
func (s *Service) Update(ctx context.Context, id, clientID uuid.UUID, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return Category{}, ErrInvalidInput
	}

	// El repo distingue fila ausente (ErrNotFound) de falla de
	// infraestructura; esta última sube sin disfrazarse de 404.
	c, err := s.repo.FindByIDAndClient(ctx, id, clientID)
	if err != nil {
		return Category{}, err
	}

	c.CategoryName = name
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id, clientID uuid.UUID) (Category, error) {
	return s.repo.FindByIDAndClient(ctx, id, clientID)
}

func (s *Service) List(ctx context.Context, clientID uuid.UUID, p pagination.Params) (pagination.Page[Category], error) {
	p = p.Normalize()
	items, total, err := s.repo.ListByClient(ctx, clientID, p)
	if err != nil {
		return pagination.Page[Category]{}, err
	}
	return pagination.NewPage(items, p, total), nil
}
