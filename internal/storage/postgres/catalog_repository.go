package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagepass/stagepass/internal/domain"
)

// CatalogRepository stores venues and events.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) CreateVenue(ctx context.Context, venue domain.Venue) error {
	const stmt = `INSERT INTO venues (id, name, seats) VALUES ($1, $2, $3)`
	if _, err := r.exec(ctx, stmt, venue.ID, venue.Name, venue.Seats); err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	const query = `SELECT id, name, seats FROM venues WHERE id = $1`
	var v domain.Venue
	err := r.queryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.Seats)
	if err != nil {
		return domain.Venue{}, lookupErr(err, domain.ErrVenueNotFound, "get venue")
	}
	return v, nil
}

func (r *CatalogRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, venue_id, name, description, event_start, event_end, for_sale_start, for_sale_end)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		event.ID,
		event.VenueID,
		event.Name,
		event.Description,
		event.EventStart,
		event.EventEnd,
		event.ForSaleStart,
		event.ForSaleEnd,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

const eventColumns = `id, venue_id, name, description, event_start, event_end, for_sale_start, for_sale_end`

func scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.VenueID,
		&e.Name,
		&e.Description,
		&e.EventStart,
		&e.EventEnd,
		&e.ForSaleStart,
		&e.ForSaleEnd,
	)
	return e, err
}

func (r *CatalogRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.queryRow(ctx, query, id))
	if err != nil {
		return domain.Event{}, lookupErr(err, domain.ErrEventNotFound, "get event")
	}
	return e, nil
}

func (r *CatalogRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
UPDATE events
SET venue_id = $2, name = $3, description = $4, event_start = $5, event_end = $6, for_sale_start = $7, for_sale_end = $8
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		event.ID,
		event.VenueID,
		event.Name,
		event.Description,
		event.EventStart,
		event.EventEnd,
		event.ForSaleStart,
		event.ForSaleEnd,
	)
	if err != nil {
		return writeErr(err, "update event")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *CatalogRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at, id`
	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *CatalogRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := scopeTx(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CatalogRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := scopeTx(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *CatalogRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := scopeTx(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
