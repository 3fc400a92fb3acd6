package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagepass/stagepass/internal/domain"
)

// TicketRepository serves the sales path. GetTicketForUpdate locks both the
// ticket row and the owning event row so a sale never interleaves with a
// reconciliation of the same event.
type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const ticketColumns = `t.id, t.event_id, t.ticket_type_id, t.seat, t.owner_id, t.reserved_until, t.purchase_token, t.purchase_price_cents, t.created_at`

func scanTicket(row pgx.Row) (domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(
		&t.ID,
		&t.EventID,
		&t.TicketTypeID,
		&t.Seat,
		&t.OwnerID,
		&t.ReservedUntil,
		&t.PurchaseToken,
		&t.PurchasePriceCents,
		&t.CreatedAt,
	)
	return t, err
}

func (r *TicketRepository) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets t WHERE t.id = $1`
	return r.getTicket(ctx, query, id)
}

func (r *TicketRepository) GetTicketForUpdate(ctx context.Context, id string) (domain.Ticket, error) {
	query := `
SELECT ` + ticketColumns + `
FROM tickets t
JOIN events e ON e.id = t.event_id
WHERE t.id = $1
FOR UPDATE`
	return r.getTicket(ctx, query, id)
}

func (r *TicketRepository) getTicket(ctx context.Context, query, id string) (domain.Ticket, error) {
	t, err := scanTicket(r.queryRow(ctx, query, id))
	if err != nil {
		return domain.Ticket{}, lookupErr(err, domain.ErrTicketNotFound, "get ticket")
	}
	return t, nil
}

func (r *TicketRepository) UpdateTicket(ctx context.Context, ticket domain.Ticket) error {
	const stmt = `
UPDATE tickets
SET owner_id = $2, reserved_until = $3, purchase_token = $4, purchase_price_cents = $5
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		ticket.ID,
		ticket.OwnerID,
		ticket.ReservedUntil,
		ticket.PurchaseToken,
		ticket.PurchasePriceCents,
	)
	if err != nil {
		return writeErr(err, "update ticket")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) GetTicketType(ctx context.Context, eventID, ticketTypeID string) (domain.TicketType, error) {
	const query = `SELECT id, event_id, name, price_cents, seats FROM ticket_types WHERE id = $1 AND event_id = $2`
	var tt domain.TicketType
	err := r.queryRow(ctx, query, ticketTypeID, eventID).Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.PriceCents, &tt.Seats)
	if err != nil {
		return domain.TicketType{}, lookupErr(err, domain.ErrTicketTypeNotFound, "get ticket type")
	}
	return tt, nil
}

func (r *TicketRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.queryRow(ctx, query, id))
	if err != nil {
		return domain.Event{}, lookupErr(err, domain.ErrEventNotFound, "get event")
	}
	return e, nil
}

func (r *TicketRepository) ListTicketsByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	return listTicketsByEvent(ctx, r.query, eventID)
}

type queryFunc func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

// listTicketsByEvent is shared between the sales and reconciler repositories.
// Ordering is ticket creation order, which the position sequence preserves
// across seat removals and re-additions.
func listTicketsByEvent(ctx context.Context, query queryFunc, eventID string) ([]domain.Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets t WHERE t.event_id = $1 ORDER BY t.position`
	rows, err := query(ctx, q, eventID)
	if err != nil {
		return nil, writeErr(err, "list tickets")
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *TicketRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := scopeTx(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *TicketRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := scopeTx(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *TicketRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := scopeTx(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
