package clients

import (
	"context"
	"time"

	"place-history/internal/platform/identifier"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// IdentifyOrCreate devuelve el candidato si ya es un cliente conocido.
// Si no (nil o desconocido), crea un cliente nuevo con id fresco: un
// candidato bien formado pero desconocido se descarta, no se reusa.
func (s *Service) IdentifyOrCreate(ctx context.Context, candidate *uuid.UUID) (uuid.UUID, error) {
	if candidate != nil {
		known, err := s.repo.Exists(ctx, *candidate)
		if err != nil {
			return uuid.Nil, err
		}
		if known {
			return *candidate, nil
		}
	}

	c := Client{
		ClientID:  identifier.New(),
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return uuid.Nil, err
	}
	return c.ClientID, nil
}

func (s *Service) Exists(ctx context.Context, clientID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, clientID)
}
