package postgres

import (
	"context"
	"database/sql"

	"place-history/internal/domain/clients"

	"github.com/google/uuid"
)

type ClientsRepo struct {
	db *sql.DB
}

func NewClientsRepo(db *sql.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (client_id, created_at)
		VALUES ($1, $2)
	`,
		c.ClientID,
		c.CreatedAt,
	)
	return err
}

func (r *ClientsRepo) Exists(ctx context.Context, clientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM clients WHERE client_id = $1)
	`, clientID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
