package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagepass/stagepass/internal/domain"
)

// TicketTypeRepository stores ticket types and the tickets the reconciler
// mints and removes. GetEvent takes the event row lock, which serializes
// reconciliations (and ticket creation) per event for the life of the
// surrounding transaction.
type TicketTypeRepository struct {
	pool *pgxpool.Pool
}

func NewTicketTypeRepository(pool *pgxpool.Pool) *TicketTypeRepository {
	return &TicketTypeRepository{pool: pool}
}

func (r *TicketTypeRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *TicketTypeRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	e, err := scanEvent(r.queryRow(ctx, query, id))
	if err != nil {
		return domain.Event{}, lookupErr(err, domain.ErrEventNotFound, "get event")
	}
	return e, nil
}

func (r *TicketTypeRepository) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	const query = `SELECT id, name, seats FROM venues WHERE id = $1`
	var v domain.Venue
	err := r.queryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.Seats)
	if err != nil {
		return domain.Venue{}, lookupErr(err, domain.ErrVenueNotFound, "get venue")
	}
	return v, nil
}

func (r *TicketTypeRepository) CreateTicketType(ctx context.Context, tt domain.TicketType) error {
	const stmt = `INSERT INTO ticket_types (id, event_id, name, price_cents, seats) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.exec(ctx, stmt, tt.ID, tt.EventID, tt.Name, tt.PriceCents, tt.Seats); err != nil {
		return fmt.Errorf("create ticket type: %w", err)
	}
	return nil
}

func (r *TicketTypeRepository) UpdateTicketType(ctx context.Context, tt domain.TicketType) error {
	const stmt = `UPDATE ticket_types SET name = $3, price_cents = $4, seats = $5 WHERE id = $1 AND event_id = $2`
	tag, err := r.exec(ctx, stmt, tt.ID, tt.EventID, tt.Name, tt.PriceCents, tt.Seats)
	if err != nil {
		return writeErr(err, "update ticket type")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketTypeNotFound
	}
	return nil
}

func (r *TicketTypeRepository) GetTicketType(ctx context.Context, eventID, ticketTypeID string) (domain.TicketType, error) {
	const query = `SELECT id, event_id, name, price_cents, seats FROM ticket_types WHERE id = $1 AND event_id = $2`
	var tt domain.TicketType
	err := r.queryRow(ctx, query, ticketTypeID, eventID).Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.PriceCents, &tt.Seats)
	if err != nil {
		return domain.TicketType{}, lookupErr(err, domain.ErrTicketTypeNotFound, "get ticket type")
	}
	return tt, nil
}

func (r *TicketTypeRepository) ListTicketTypesByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	const query = `SELECT id, event_id, name, price_cents, seats FROM ticket_types WHERE event_id = $1 ORDER BY created_at, id`
	rows, err := r.query(ctx, query, eventID)
	if err != nil {
		return nil, writeErr(err, "list ticket types")
	}
	defer rows.Close()

	types := make([]domain.TicketType, 0)
	for rows.Next() {
		var tt domain.TicketType
		if err := rows.Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.PriceCents, &tt.Seats); err != nil {
			return nil, fmt.Errorf("scan ticket type: %w", err)
		}
		types = append(types, tt)
	}
	return types, rows.Err()
}

func (r *TicketTypeRepository) ListTicketsByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	return listTicketsByEvent(ctx, r.query, eventID)
}

func (r *TicketTypeRepository) CreateTickets(ctx context.Context, tickets []domain.Ticket) error {
	const stmt = `
INSERT INTO tickets (id, event_id, ticket_type_id, seat, created_at)
VALUES ($1, $2, $3, $4, $5)`

	for _, t := range tickets {
		if _, err := r.exec(ctx, stmt, t.ID, t.EventID, t.TicketTypeID, t.Seat, t.CreatedAt); err != nil {
			if sqlstate(err) == stateUniqueViolation {
				return fmt.Errorf("%w: %s", domain.ErrSeatAlreadyAssigned, t.Seat)
			}
			return fmt.Errorf("create ticket: %w", err)
		}
	}
	return nil
}

func (r *TicketTypeRepository) DeleteTickets(ctx context.Context, ticketIDs []string) error {
	const stmt = `DELETE FROM tickets WHERE id = ANY($1)`
	tag, err := r.exec(ctx, stmt, ticketIDs)
	if err != nil {
		return fmt.Errorf("delete tickets: %w", err)
	}
	if int(tag.RowsAffected()) != len(ticketIDs) {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *TicketTypeRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := scopeTx(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *TicketTypeRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := scopeTx(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *TicketTypeRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := scopeTx(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
