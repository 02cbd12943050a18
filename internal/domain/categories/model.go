package categories

import (
	"time"

	"github.com/google/uuid"
)

// Category agrupa faved locations de un cliente. El nombre no es único
// por cliente: se permiten duplicados.
type Category struct {
	ID           uuid.UUID
	CategoryName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ClientID     uuid.UUID
}
