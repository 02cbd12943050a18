package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"place-history/internal/domain/locations"
	"place-history/internal/pagination"

	"github.com/google/uuid"
)

type VisitedRepo struct {
	db *sql.DB
}

func NewVisitedRepo(db *sql.DB) *VisitedRepo {
	return &VisitedRepo{db: db}
}

func (r *VisitedRepo) Create(ctx context.Context, l locations.VisitedLocation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visited_locations (id, place_desc, latitude, longitude, created_at, client_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		l.ID,
		l.PlaceDesc,
		l.Latitude,
		l.Longitude,
		l.CreatedAt,
		l.ClientID,
	)
	return err
}

func (r *VisitedRepo) ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]locations.VisitedLocation, int64, error) {
	p = p.Normalize()

	var total int64
	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM visited_locations WHERE client_id = $1
	`, clientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, place_desc, latitude, longitude, created_at, client_id
		FROM visited_locations
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, clientID, p.Size, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]locations.VisitedLocation, 0)
	for rows.Next() {
		var l locations.VisitedLocation
		if err := rows.Scan(
			&l.ID,
			&l.PlaceDesc,
			&l.Latitude,
			&l.Longitude,
			&l.CreatedAt,
			&l.ClientID,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}

	return out, total, rows.Err()
}

type FavedRepo struct {
	db *sql.DB
}

func NewFavedRepo(db *sql.DB) *FavedRepo {
	return &FavedRepo{db: db}
}

func (r *FavedRepo) Create(ctx context.Context, l locations.FavedLocation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO faved_locations (id, place_desc, latitude, longitude, created_at, client_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		l.ID,
		l.PlaceDesc,
		l.Latitude,
		l.Longitude,
		l.CreatedAt,
		l.ClientID,
		toNullUUID(l.CategoryID),
	)
	return err
}

func (r *FavedRepo) GetByID(ctx context.Context, id uuid.UUID) (locations.FavedLocation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, place_desc, latitude, longitude, created_at, client_id, category_id
		FROM faved_locations
		WHERE id = $1
	`, id)

	return scanFaved(row.Scan)
}

// SetCategory escribe el vínculo en una sola sentencia; categoryID nil
// lo limpia.
func (r *FavedRepo) SetCategory(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE faved_locations
		SET category_id = $2
		WHERE id = $1
	`, id, toNullUUID(categoryID))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return locations.ErrNotFound
	}
	return nil
}

func (r *FavedRepo) ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]locations.FavedLocation, int64, error) {
	return r.list(ctx, `client_id = $1`, []any{clientID}, p)
}

func (r *FavedRepo) ListByCategoryAndClient(ctx context.Context, categoryID, clientID uuid.UUID, p pagination.Params) ([]locations.FavedLocation, int64, error) {
	return r.list(ctx, `category_id = $1 AND client_id = $2`, []any{categoryID, clientID}, p)
}

func (r *FavedRepo) list(ctx context.Context, where string, args []any, p pagination.Params) ([]locations.FavedLocation, int64, error) {
	p = p.Normalize()

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM faved_locations WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, place_desc, latitude, longitude, created_at, client_id, category_id
		FROM faved_locations
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)

	rows, err := r.db.QueryContext(ctx, query, append(args, p.Size, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]locations.FavedLocation, 0)
	for rows.Next() {
		l, err := scanFaved(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}

	return out, total, rows.Err()
}

func scanFaved(scan func(dest ...any) error) (locations.FavedLocation, error) {
	var l locations.FavedLocation
	var cat uuid.NullUUID

	if err := scan(
		&l.ID,
		&l.PlaceDesc,
		&l.Latitude,
		&l.Longitude,
		&l.CreatedAt,
		&l.ClientID,
		&cat,
	); err != nil {
		if err == sql.ErrNoRows {
			return locations.FavedLocation{}, locations.ErrNotFound
		}
		return locations.FavedLocation{}, err
	}

	if cat.Valid {
		id := cat.UUID
		l.CategoryID = &id
	}
	return l, nil
}

func toNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
