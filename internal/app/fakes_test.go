package app

import (
	"context"
	"fmt"

	"github.com/stagepass/stagepass/internal/domain"
)

// fakeStore is an unsynchronized in-memory repository implementing every
// consumer interface in this package. Concurrency behavior is covered by the
// storage tests; these fakes only need to be deterministic.
type fakeStore struct {
	venues      map[string]domain.Venue
	events      map[string]domain.Event
	ticketTypes map[string]domain.TicketType
	tickets     []domain.Ticket
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		venues:      make(map[string]domain.Venue),
		events:      make(map[string]domain.Event),
		ticketTypes: make(map[string]domain.TicketType),
	}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeStore) CreateVenue(_ context.Context, venue domain.Venue) error {
	f.venues[venue.ID] = venue
	return nil
}

func (f *fakeStore) GetVenue(_ context.Context, id string) (domain.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return domain.Venue{}, domain.ErrVenueNotFound
	}
	return v, nil
}

func (f *fakeStore) CreateEvent(_ context.Context, event domain.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeStore) GetEvent(_ context.Context, id string) (domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return e, nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, event domain.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeStore) ListEvents(_ context.Context) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) CreateTicketType(_ context.Context, tt domain.TicketType) error {
	f.ticketTypes[tt.ID] = tt
	return nil
}

func (f *fakeStore) UpdateTicketType(_ context.Context, tt domain.TicketType) error {
	if _, ok := f.ticketTypes[tt.ID]; !ok {
		return domain.ErrTicketTypeNotFound
	}
	f.ticketTypes[tt.ID] = tt
	return nil
}

func (f *fakeStore) GetTicketType(_ context.Context, eventID, ticketTypeID string) (domain.TicketType, error) {
	tt, ok := f.ticketTypes[ticketTypeID]
	if !ok || tt.EventID != eventID {
		return domain.TicketType{}, domain.ErrTicketTypeNotFound
	}
	return tt, nil
}

func (f *fakeStore) ListTicketTypesByEvent(_ context.Context, eventID string) ([]domain.TicketType, error) {
	out := make([]domain.TicketType, 0, len(f.ticketTypes))
	for _, tt := range f.ticketTypes {
		if tt.EventID == eventID {
			out = append(out, tt)
		}
	}
	return out, nil
}

func (f *fakeStore) ListTicketsByEvent(_ context.Context, eventID string) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(f.tickets))
	for _, t := range f.tickets {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateTickets(_ context.Context, tickets []domain.Ticket) error {
	f.tickets = append(f.tickets, tickets...)
	return nil
}

func (f *fakeStore) DeleteTickets(_ context.Context, ticketIDs []string) error {
	drop := make(map[string]struct{}, len(ticketIDs))
	for _, id := range ticketIDs {
		drop[id] = struct{}{}
	}
	kept := f.tickets[:0]
	for _, t := range f.tickets {
		if _, ok := drop[t.ID]; !ok {
			kept = append(kept, t)
		}
	}
	f.tickets = kept
	return nil
}

func (f *fakeStore) GetTicket(_ context.Context, id string) (domain.Ticket, error) {
	for _, t := range f.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Ticket{}, domain.ErrTicketNotFound
}

func (f *fakeStore) GetTicketForUpdate(ctx context.Context, id string) (domain.Ticket, error) {
	return f.GetTicket(ctx, id)
}

func (f *fakeStore) UpdateTicket(_ context.Context, ticket domain.Ticket) error {
	for i, t := range f.tickets {
		if t.ID == ticket.ID {
			f.tickets[i] = ticket
			return nil
		}
	}
	return domain.ErrTicketNotFound
}

// seed helpers

func (f *fakeStore) addVenue(id string, seats ...string) domain.Venue {
	v := domain.Venue{ID: id, Name: "Venue " + id, Seats: seats}
	f.venues[id] = v
	return v
}

func (f *fakeStore) addEvent(id, venueID string) domain.Event {
	e := domain.Event{ID: id, VenueID: venueID, Name: "Event " + id}
	f.events[id] = e
	return e
}

func (f *fakeStore) addTicketType(id, eventID string, priceCents int64, seats ...string) domain.TicketType {
	tt := domain.TicketType{ID: id, EventID: eventID, Name: "Type " + id, PriceCents: priceCents, Seats: seats}
	f.ticketTypes[id] = tt
	return tt
}

func (f *fakeStore) addTicket(id, eventID, ticketTypeID, seat string) domain.Ticket {
	t := domain.Ticket{ID: id, EventID: eventID, TicketTypeID: ticketTypeID, Seat: seat}
	f.tickets = append(f.tickets, t)
	return t
}

func (f *fakeStore) mustTicket(id string) domain.Ticket {
	for _, t := range f.tickets {
		if t.ID == id {
			return t
		}
	}
	panic(fmt.Sprintf("fakeStore: no ticket %s", id))
}
