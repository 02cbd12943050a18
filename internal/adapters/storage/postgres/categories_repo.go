package postgres

import (
	"context"
	"database/sql"

	"place-history/internal/domain/categories"
	"place-history/internal/pagination"

	"github.com/google/uuid"
)

type CategoriesRepo struct {
	db *sql.DB
}

func NewCategoriesRepo(db *sql.DB) *CategoriesRepo {
	return &CategoriesRepo{db: db}
}

func (r *CategoriesRepo) Create(ctx context.Context, c categories.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, category_name, created_at, updated_at, client_id)
		VALUES ($1, $2, $3, $4, $5)
	`,
		c.ID,
		c.CategoryName,
		c.CreatedAt,
		c.UpdatedAt,
		c.ClientID,
	)
	return err
}

func (r *CategoriesRepo) Update(ctx context.Context, c categories.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories
		SET category_name = $2, updated_at = $3
		WHERE id = $1
	`,
		c.ID,
		c.CategoryName,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return categories.ErrNotFound
	}
	return nil
}

func (r *CategoriesRepo) FindByIDAndClient(ctx context.Context, id, clientID uuid.UUID) (categories.Category, error) {
	// id + owner en un solo predicado: sin ventana entre leer y validar.
	row := r.db.QueryRowContext(ctx, `
		SELECT id, category_name, created_at, updated_at, client_id
		FROM categories
		WHERE id = $1 AND client_id = $2
	`, id, clientID)

	var c categories.Category
	if err := row.Scan(
		&c.ID,
		&c.CategoryName,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.ClientID,
	); err != nil {
		if err == sql.ErrNoRows {
			return categories.Category{}, categories.ErrNotFound
		}
		return categories.Category{}, err
	}
	return c, nil
}

func (r *CategoriesRepo) ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]categories.Category, int64, error) {
	p = p.Normalize()

	var total int64
	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM categories WHERE client_id = $1
	`, clientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category_name, created_at, updated_at, client_id
		FROM categories
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, clientID, p.Size, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]categories.Category, 0)
	for rows.Next() {
		var c categories.Category
		if err := rows.Scan(
			&c.ID,
			&c.CategoryName,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.ClientID,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}

	return out, total, rows.Err()
}
