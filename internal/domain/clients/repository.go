package clients

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c Client) error
	Exists(ctx context.Context, clientID uuid.UUID) (bool, error)
}
