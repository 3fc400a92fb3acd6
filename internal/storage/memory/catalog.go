package memory

import (
	"context"

	"github.com/stagepass/stagepass/internal/domain"
)

func cloneTicketType(tt domain.TicketType) domain.TicketType {
	tt.Seats = append([]string(nil), tt.Seats...)
	return tt
}

func (s *Store) CreateTicketType(ctx context.Context, tt domain.TicketType) error {
	es, ok := s.findEvent(tt.EventID)
	if !ok {
		return domain.ErrEventNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()
	es.ticketTypes = append(es.ticketTypes, cloneTicketType(tt))
	return nil
}

func (s *Store) UpdateTicketType(ctx context.Context, tt domain.TicketType) error {
	es, ok := s.findEvent(tt.EventID)
	if !ok {
		return domain.ErrEventNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()
	for i := range es.ticketTypes {
		if es.ticketTypes[i].ID == tt.ID {
			es.ticketTypes[i] = cloneTicketType(tt)
			return nil
		}
	}
	return domain.ErrTicketTypeNotFound
}

func (s *Store) GetTicketType(ctx context.Context, eventID, ticketTypeID string) (domain.TicketType, error) {
	es, ok := s.findEvent(eventID)
	if !ok {
		return domain.TicketType{}, domain.ErrEventNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()
	for i := range es.ticketTypes {
		if es.ticketTypes[i].ID == ticketTypeID {
			return cloneTicketType(es.ticketTypes[i]), nil
		}
	}
	return domain.TicketType{}, domain.ErrTicketTypeNotFound
}

func (s *Store) ListTicketTypesByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	es, ok := s.findEvent(eventID)
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()
	out := make([]domain.TicketType, 0, len(es.ticketTypes))
	for i := range es.ticketTypes {
		out = append(out, cloneTicketType(es.ticketTypes[i]))
	}
	return out, nil
}
