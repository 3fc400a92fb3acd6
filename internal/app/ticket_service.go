package app

import (
	"context"
	"fmt"
	"time"

	"github.com/stagepass/stagepass/internal/clock"
	"github.com/stagepass/stagepass/internal/domain"
)

type TicketRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetTicket(ctx context.Context, id string) (domain.Ticket, error)
	GetTicketForUpdate(ctx context.Context, id string) (domain.Ticket, error)
	UpdateTicket(ctx context.Context, ticket domain.Ticket) error
	GetTicketType(ctx context.Context, eventID, ticketTypeID string) (domain.TicketType, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ListTicketsByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error)
}

const defaultReservationTTL = 10 * time.Minute

// MaxPageSize bounds the page size accepted by ListEventTickets.
const MaxPageSize = 1000

// TicketService is the sole mutator of ticket state. Every transition is a
// single check-then-write step inside one WithTx scope, so concurrent calls
// on the same ticket serialize and exactly one of two racing reservations
// wins.
type TicketService struct {
	repo  TicketRepository
	clock clock.Clock
	ttl   time.Duration
}

func NewTicketService(repo TicketRepository, clk clock.Clock, opts ...TicketServiceOption) *TicketService {
	svc := &TicketService{
		repo:  repo,
		clock: clk,
		ttl:   defaultReservationTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type TicketServiceOption func(*TicketService)

// WithReservationTTL overrides the default hold duration for new reservations.
func WithReservationTTL(d time.Duration) TicketServiceOption {
	return func(s *TicketService) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (domain.Ticket, error) {
	if ticketID == "" {
		return domain.Ticket{}, domain.ErrInvalidID
	}
	return s.repo.GetTicket(ctx, ticketID)
}

// Reserve places a time-boxed hold for the user. Only an available ticket can
// be reserved; an expired hold counts as available, so re-reserving a lapsed
// ticket overwrites the previous owner.
func (s *TicketService) Reserve(ctx context.Context, ticketID, userID string) (domain.TicketReservation, error) {
	if ticketID == "" {
		return domain.TicketReservation{}, domain.ErrInvalidID
	}
	if userID == "" {
		return domain.TicketReservation{}, domain.ErrUserIDRequired
	}

	now := s.clock.Now()
	until := now.Add(s.ttl)

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.repo.GetTicketForUpdate(txCtx, ticketID)
		if err != nil {
			return err
		}
		if status := ticket.StatusAt(now); status != domain.TicketStatusAvailable {
			return fmt.Errorf("%w: ticket is %s", domain.ErrTicketUnavailable, status)
		}

		ticket.OwnerID = &userID
		ticket.ReservedUntil = &until
		return s.repo.UpdateTicket(txCtx, ticket)
	})
	if err != nil {
		return domain.TicketReservation{}, err
	}

	return domain.TicketReservation{UserID: userID, ReservedUntil: until}, nil
}

// ReleaseReservation cancels the user's hold if one is active. It clears
// ReservedUntil only; the owner field is kept on purpose so that a purchase
// racing a cancellation by the same user still resolves consistently. A
// missing or foreign reservation is a silent no-op to keep cancellation
// idempotent.
func (s *TicketService) ReleaseReservation(ctx context.Context, ticketID, userID string) error {
	if ticketID == "" {
		return domain.ErrInvalidID
	}
	if userID == "" {
		return domain.ErrUserIDRequired
	}

	now := s.clock.Now()

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.repo.GetTicketForUpdate(txCtx, ticketID)
		if err != nil {
			return err
		}
		if ticket.StatusAt(now) != domain.TicketStatusReserved || !ticket.OwnedBy(userID) {
			return nil
		}

		ticket.ReservedUntil = nil
		return s.repo.UpdateTicket(txCtx, ticket)
	})
}

// GetReservation returns the user's active hold, or nil when the ticket is
// not currently reserved by that user.
func (s *TicketService) GetReservation(ctx context.Context, ticketID, userID string) (*domain.TicketReservation, error) {
	if ticketID == "" {
		return nil, domain.ErrInvalidID
	}
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}

	ticket, err := s.repo.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.StatusAt(s.clock.Now()) != domain.TicketStatusReserved || !ticket.OwnedBy(userID) {
		return nil, nil
	}
	return &domain.TicketReservation{
		UserID:        userID,
		ReservedUntil: *ticket.ReservedUntil,
	}, nil
}

type PurchaseInput struct {
	TicketID      string
	PurchaserID   string
	PurchaseToken string
	PriceCents    int64
}

type PurchaseResult struct {
	Purchase domain.TicketPurchase
	Created  bool
}

// Purchase sells the ticket to the purchaser at the ticket type's current
// price. Repeating the call for a ticket already sold to the same purchaser
// is an idempotent success that returns the stored token and price, ignoring
// the new arguments: what matters is the purchase intent, not the payment
// details. ReservedUntil is left as-is on success; sold wins the derivation.
func (s *TicketService) Purchase(ctx context.Context, in PurchaseInput) (PurchaseResult, error) {
	if in.TicketID == "" {
		return PurchaseResult{}, domain.ErrInvalidID
	}
	if in.PurchaserID == "" {
		return PurchaseResult{}, domain.ErrUserIDRequired
	}
	if in.PurchaseToken == "" {
		return PurchaseResult{}, domain.ErrPurchaseTokenRequired
	}

	now := s.clock.Now()
	var result PurchaseResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.repo.GetTicketForUpdate(txCtx, in.TicketID)
		if err != nil {
			return err
		}

		if ticket.PurchaseToken != nil {
			if ticket.OwnedBy(in.PurchaserID) {
				result = PurchaseResult{
					Purchase: domain.TicketPurchase{
						PurchaserID:   in.PurchaserID,
						PurchaseToken: *ticket.PurchaseToken,
						PriceCents:    *ticket.PurchasePriceCents,
					},
				}
				return nil
			}
			return domain.ErrTicketAlreadySold
		}

		if ticket.StatusAt(now) == domain.TicketStatusReserved && !ticket.OwnedBy(in.PurchaserID) {
			return domain.ErrTicketReservedByOther
		}

		tt, err := s.repo.GetTicketType(txCtx, ticket.EventID, ticket.TicketTypeID)
		if err != nil {
			return err
		}
		if in.PriceCents != tt.PriceCents {
			return domain.ErrPriceMismatch
		}

		ticket.OwnerID = &in.PurchaserID
		ticket.PurchaseToken = &in.PurchaseToken
		ticket.PurchasePriceCents = &in.PriceCents
		if err := s.repo.UpdateTicket(txCtx, ticket); err != nil {
			return err
		}

		result = PurchaseResult{
			Purchase: domain.TicketPurchase{
				PurchaserID:   in.PurchaserID,
				PurchaseToken: in.PurchaseToken,
				PriceCents:    in.PriceCents,
			},
			Created: true,
		}
		return nil
	})
	if err != nil {
		return PurchaseResult{}, err
	}
	return result, nil
}

// GetPurchase returns the completed sale, or nil when the ticket is unsold.
func (s *TicketService) GetPurchase(ctx context.Context, ticketID string) (*domain.TicketPurchase, error) {
	if ticketID == "" {
		return nil, domain.ErrInvalidID
	}

	ticket, err := s.repo.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.PurchaseToken == nil {
		return nil, nil
	}
	return &domain.TicketPurchase{
		PurchaserID:   *ticket.OwnerID,
		PurchaseToken: *ticket.PurchaseToken,
		PriceCents:    *ticket.PurchasePriceCents,
	}, nil
}

type ListTicketsInput struct {
	EventID  string
	Status   *domain.TicketStatus
	Page     int
	PageSize int
}

type TicketPage struct {
	Tickets    []domain.Ticket
	Page       int
	PageSize   int
	TotalCount int
}

// ListEventTickets returns one page of the event's tickets in creation order,
// optionally filtered by derived status. Filtering happens before paging.
func (s *TicketService) ListEventTickets(ctx context.Context, in ListTicketsInput) (TicketPage, error) {
	if in.EventID == "" {
		return TicketPage{}, domain.ErrInvalidID
	}
	if in.PageSize <= 0 || in.PageSize > MaxPageSize {
		return TicketPage{}, domain.ErrInvalidPageSize
	}
	if in.Page <= 0 {
		return TicketPage{}, domain.ErrInvalidPage
	}

	if _, err := s.repo.GetEvent(ctx, in.EventID); err != nil {
		return TicketPage{}, err
	}
	tickets, err := s.repo.ListTicketsByEvent(ctx, in.EventID)
	if err != nil {
		return TicketPage{}, err
	}

	now := s.clock.Now()
	filtered := tickets
	if in.Status != nil {
		filtered = make([]domain.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if t.StatusAt(now) == *in.Status {
				filtered = append(filtered, t)
			}
		}
	}

	total := len(filtered)
	if total > 0 {
		lastPage := (total + in.PageSize - 1) / in.PageSize
		if in.Page > lastPage {
			return TicketPage{}, domain.ErrPageOutOfRange
		}
	}

	start := (in.Page - 1) * in.PageSize
	end := start + in.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return TicketPage{
		Tickets:    filtered[start:end],
		Page:       in.Page,
		PageSize:   in.PageSize,
		TotalCount: total,
	}, nil
}
