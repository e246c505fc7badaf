package db

import (
	"context"

	"github.com/venuehub/backend/internal/model"
)

func (db *Postgres) EnsureVenueSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS venues (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			capacity INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (db *Postgres) GetVenueList(ctx context.Context) ([]model.Venue, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, address, capacity, created_at, updated_at
		FROM venues
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []model.Venue
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	if venues == nil {
		venues = []model.Venue{}
	}
	return venues, rows.Err()
}

func (db *Postgres) GetVenueByID(ctx context.Context, id int64) (*model.Venue, error) {
	var v model.Venue
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, address, capacity, created_at, updated_at
		FROM venues
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (db *Postgres) CreateVenue(ctx context.Context, req model.VenueRequest) (*model.Venue, error) {
	var v model.Venue
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO venues (name, address, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, address, capacity, created_at, updated_at
	`, req.Name, req.Address, req.Capacity).Scan(
		&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (db *Postgres) UpdateVenue(ctx context.Context, id int64, req model.VenueRequest) (*model.Venue, error) {
	var v model.Venue
	err := db.Pool.QueryRow(ctx, `
		UPDATE venues
		SET name = $2, address = $3, capacity = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, address, capacity, created_at, updated_at
	`, id, req.Name, req.Address, req.Capacity).Scan(
		&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (db *Postgres) DeleteVenue(ctx context.Context, id int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
