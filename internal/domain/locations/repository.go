package locations

import (
	"context"

	"place-history/internal/pagination"

	"github.com/google/uuid"
)

// Las implementaciones devuelven ErrNotFound cuando la fila no existe;
// cualquier otro error es falla de infraestructura y sube tal cual.
type VisitedRepository interface {
	Create(ctx context.Context, l VisitedLocation) error
	ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]VisitedLocation, int64, error)
}

type FavedRepository interface {
	Create(ctx context.Context, l FavedLocation) error
	GetByID(ctx context.Context, id uuid.UUID) (FavedLocation, error)

	// SetCategory escribe el vínculo (nil lo limpia) en una sola sentencia.
	SetCategory(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) error

	ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]FavedLocation, int64, error)
	ListByCategoryAndClient(ctx context.Context, categoryID, clientID uuid.UUID, p pagination.Params) ([]FavedLocation, int64, error)
}
