package db

import (
	"context"
	"fmt"

	"github.com/venuehub/backend/internal/model"
)

func (db *Postgres) EnsureEventSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS events (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			event_date DATE NOT NULL,
			venue_id BIGINT NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS events_venue_id_idx ON events(venue_id)`,
		`CREATE INDEX IF NOT EXISTS events_event_date_idx ON events(event_date)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const eventColumns = `
	e.id, e.name, e.event_date, e.venue_id, v.name,
	e.created_at, e.updated_at`

func (db *Postgres) GetEventList(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN venues v ON v.id = e.venue_id`

	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Name != "" {
		where = append(where, "LOWER(e.name) = LOWER("+arg(filter.Name)+")")
	}
	if filter.VenueID != 0 {
		where = append(where, "e.venue_id = "+arg(filter.VenueID))
	}
	if !filter.After.IsZero() {
		where = append(where, "e.event_date > "+arg(filter.After))
	}
	if filter.VenueName != "" {
		where = append(where, "v.name = "+arg(filter.VenueName))
	}

	for i, cond := range where {
		if i == 0 {
			query += "\n\t\tWHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	if filter.VenueName != "" {
		query += "\n\t\tORDER BY e.event_date DESC"
	} else {
		query += "\n\t\tORDER BY e.id"
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Name, &e.EventDate, &e.VenueID, &e.VenueName,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, rows.Err()
}

func (db *Postgres) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		WHERE e.id = $1`

	var e model.Event
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.EventDate, &e.VenueID, &e.VenueName,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (db *Postgres) CreateEvent(ctx context.Context, name string, eventDate string, venueID int64) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO events (name, event_date, venue_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`, name, eventDate, venueID).Scan(&id)
	return id, err
}

func (db *Postgres) UpdateEvent(ctx context.Context, id int64, name string, eventDate string, venueID int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE events
		SET name = $2, event_date = $3, venue_id = $4, updated_at = NOW()
		WHERE id = $1
	`, id, name, eventDate, venueID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *Postgres) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
