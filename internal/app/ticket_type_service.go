package app

import (
	"context"
	"fmt"
	"time"

	"github.com/stagepass/stagepass/internal/clock"
	"github.com/stagepass/stagepass/internal/domain"
)

type TicketTypeRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
	CreateTicketType(ctx context.Context, tt domain.TicketType) error
	UpdateTicketType(ctx context.Context, tt domain.TicketType) error
	GetTicketType(ctx context.Context, eventID, ticketTypeID string) (domain.TicketType, error)
	ListTicketTypesByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error)
	ListTicketsByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error)
	CreateTickets(ctx context.Context, tickets []domain.Ticket) error
	DeleteTickets(ctx context.Context, ticketIDs []string) error
}

// TicketTypeService owns ticket types and reconciles the event's tickets
// against each type's seat list: creating a type mints one ticket per seat,
// updating a type adds and removes tickets to match the new list.
type TicketTypeService struct {
	repo  TicketTypeRepository
	clock clock.Clock
}

func NewTicketTypeService(repo TicketTypeRepository, clk clock.Clock) *TicketTypeService {
	return &TicketTypeService{
		repo:  repo,
		clock: clk,
	}
}

type TicketTypeInput struct {
	Name       string
	PriceCents int64
	Seats      []string
}

func (in TicketTypeInput) validate() error {
	if in.Name == "" {
		return domain.ErrTicketTypeNameRequired
	}
	if in.PriceCents < 0 {
		return domain.ErrInvalidPrice
	}
	return nil
}

func (s *TicketTypeService) CreateTicketType(ctx context.Context, eventID string, in TicketTypeInput) (domain.TicketType, error) {
	if eventID == "" {
		return domain.TicketType{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.TicketType{}, err
	}

	now := s.clock.Now()
	tt := domain.TicketType{
		ID:         newID(),
		EventID:    eventID,
		Name:       in.Name,
		PriceCents: in.PriceCents,
		Seats:      sortedUnique(in.Seats),
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEvent(txCtx, eventID)
		if err != nil {
			return err
		}
		venue, err := s.repo.GetVenue(txCtx, event.VenueID)
		if err != nil {
			return err
		}
		existing, err := s.repo.ListTicketsByEvent(txCtx, eventID)
		if err != nil {
			return err
		}

		if err := validateAdditions(tt.Seats, venue, existing); err != nil {
			return err
		}

		if err := s.repo.CreateTicketType(txCtx, tt); err != nil {
			return err
		}
		return s.repo.CreateTickets(txCtx, mintTickets(eventID, tt.ID, tt.Seats, now))
	})
	if err != nil {
		return domain.TicketType{}, err
	}
	return tt, nil
}

// UpdateTicketType applies a new name, price and seat list. The seat list is
// reconciled against the type's current tickets: unchanged seats keep their
// tickets (stable identity), dropped seats have their tickets removed, new
// seats get fresh tickets. A dropped seat whose ticket is reserved or sold
// aborts the whole update before anything is mutated.
func (s *TicketTypeService) UpdateTicketType(ctx context.Context, eventID, ticketTypeID string, in TicketTypeInput) (domain.TicketType, error) {
	if eventID == "" || ticketTypeID == "" {
		return domain.TicketType{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.TicketType{}, err
	}

	now := s.clock.Now()
	updated := domain.TicketType{
		ID:         ticketTypeID,
		EventID:    eventID,
		Name:       in.Name,
		PriceCents: in.PriceCents,
		Seats:      sortedUnique(in.Seats),
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetTicketType(txCtx, eventID, ticketTypeID); err != nil {
			return err
		}
		event, err := s.repo.GetEvent(txCtx, eventID)
		if err != nil {
			return err
		}
		venue, err := s.repo.GetVenue(txCtx, event.VenueID)
		if err != nil {
			return err
		}
		tickets, err := s.repo.ListTicketsByEvent(txCtx, eventID)
		if err != nil {
			return err
		}

		ownSeats := make([]string, 0, len(tickets))
		bySeat := make(map[string]domain.Ticket)
		foreign := make([]domain.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if t.TicketTypeID == ticketTypeID {
				ownSeats = append(ownSeats, t.Seat)
				bySeat[t.Seat] = t
			} else {
				foreign = append(foreign, t)
			}
		}

		added, removed := diffSeats(ownSeats, updated.Seats)

		// Validate everything before touching anything: a partially applied
		// seat edit would leave the operator's single logical change half done.
		if err := validateAdditions(added, venue, foreign); err != nil {
			return err
		}
		removeIDs := make([]string, 0, len(removed))
		for _, seat := range removed {
			t := bySeat[seat]
			if status := t.StatusAt(now); status != domain.TicketStatusAvailable {
				return fmt.Errorf("%w: seat %s is %s", domain.ErrSeatInUse, seat, status)
			}
			removeIDs = append(removeIDs, t.ID)
		}

		if len(removeIDs) > 0 {
			if err := s.repo.DeleteTickets(txCtx, removeIDs); err != nil {
				return err
			}
		}
		if len(added) > 0 {
			if err := s.repo.CreateTickets(txCtx, mintTickets(eventID, ticketTypeID, added, now)); err != nil {
				return err
			}
		}
		return s.repo.UpdateTicketType(txCtx, updated)
	})
	if err != nil {
		return domain.TicketType{}, err
	}
	return updated, nil
}

func (s *TicketTypeService) GetTicketType(ctx context.Context, eventID, ticketTypeID string) (domain.TicketType, error) {
	if eventID == "" || ticketTypeID == "" {
		return domain.TicketType{}, domain.ErrInvalidID
	}
	return s.repo.GetTicketType(ctx, eventID, ticketTypeID)
}

func (s *TicketTypeService) ListTicketTypes(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListTicketTypesByEvent(ctx, eventID)
}

// validateAdditions checks that every seat exists in the venue catalog and is
// not already ticketed by some other ticket type of the event.
func validateAdditions(seats []string, venue domain.Venue, otherTickets []domain.Ticket) error {
	taken := make(map[string]struct{}, len(otherTickets))
	for _, t := range otherTickets {
		taken[t.Seat] = struct{}{}
	}
	for _, seat := range seats {
		if !venue.HasSeat(seat) {
			return fmt.Errorf("%w: %s", domain.ErrSeatNotInVenue, seat)
		}
		if _, ok := taken[seat]; ok {
			return fmt.Errorf("%w: %s", domain.ErrSeatAlreadyAssigned, seat)
		}
	}
	return nil
}

func mintTickets(eventID, ticketTypeID string, seats []string, now time.Time) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(seats))
	for _, seat := range seats {
		tickets = append(tickets, domain.Ticket{
			ID:           newID(),
			EventID:      eventID,
			TicketTypeID: ticketTypeID,
			Seat:         seat,
			CreatedAt:    now,
		})
	}
	return tickets
}
