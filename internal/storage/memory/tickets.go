package memory

import (
	"context"

	"github.com/stagepass/stagepass/internal/domain"
)

func cloneTicket(t domain.Ticket) domain.Ticket {
	if t.OwnerID != nil {
		owner := *t.OwnerID
		t.OwnerID = &owner
	}
	if t.ReservedUntil != nil {
		until := *t.ReservedUntil
		t.ReservedUntil = &until
	}
	if t.PurchaseToken != nil {
		token := *t.PurchaseToken
		t.PurchaseToken = &token
	}
	if t.PurchasePriceCents != nil {
		price := *t.PurchasePriceCents
		t.PurchasePriceCents = &price
	}
	return t
}

func (s *Store) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	es, ok := s.findEventByTicket(id)
	if !ok {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()
	t, ok := es.byID[id]
	if !ok {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	return cloneTicket(*t), nil
}

// GetTicketForUpdate returns the ticket with the owning event locked for the
// rest of the WithTx scope. Outside a scope it behaves like GetTicket.
func (s *Store) GetTicketForUpdate(ctx context.Context, id string) (domain.Ticket, error) {
	return s.GetTicket(ctx, id)
}

func (s *Store) UpdateTicket(ctx context.Context, ticket domain.Ticket) error {
	es, ok := s.findEventByTicket(ticket.ID)
	if !ok {
		return domain.ErrTicketNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()
	t, ok := es.byID[ticket.ID]
	if !ok {
		return domain.ErrTicketNotFound
	}
	*t = cloneTicket(ticket)
	return nil
}

func (s *Store) CreateTickets(ctx context.Context, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	es, ok := s.findEvent(tickets[0].EventID)
	if !ok {
		return domain.ErrEventNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()

	created := make([]*domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		t := cloneTicket(ticket)
		es.tickets = append(es.tickets, &t)
		es.byID[t.ID] = &t
		created = append(created, &t)
	}

	s.mu.Lock()
	for _, t := range created {
		s.ticketIdx[t.ID] = es
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) DeleteTickets(ctx context.Context, ticketIDs []string) error {
	if len(ticketIDs) == 0 {
		return nil
	}
	es, ok := s.findEventByTicket(ticketIDs[0])
	if !ok {
		return domain.ErrTicketNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()

	drop := make(map[string]struct{}, len(ticketIDs))
	for _, id := range ticketIDs {
		if _, ok := es.byID[id]; !ok {
			return domain.ErrTicketNotFound
		}
		drop[id] = struct{}{}
	}

	kept := es.tickets[:0]
	for _, t := range es.tickets {
		if _, gone := drop[t.ID]; gone {
			delete(es.byID, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	es.tickets = kept

	s.mu.Lock()
	for id := range drop {
		delete(s.ticketIdx, id)
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) ListTicketsByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	es, ok := s.findEvent(eventID)
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()
	out := make([]domain.Ticket, 0, len(es.tickets))
	for _, t := range es.tickets {
		out = append(out, cloneTicket(*t))
	}
	return out, nil
}
