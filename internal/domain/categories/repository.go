package categories

import (
	"context"

	"place-history/internal/pagination"

	"github.com/google/uuid"
)

// Las implementaciones devuelven ErrNotFound cuando la fila no existe;
// cualquier otro error es falla de infraestructura y sube tal cual.
type Repository interface {
	Create(ctx context.Context, c Category) error
	Update(ctx context.Context, c Category) error

	// FindByIDAndClient combina id + owner en un solo predicado:
	// una categoría de otro cliente es simplemente "not found".
	FindByIDAndClient(ctx context.Context, id, clientID uuid.UUID) (Category, error)

	// ListByClient devuelve la página (created_at desc) y el total.
	ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]Category, int64, error)
}
