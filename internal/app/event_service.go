package app

import (
	"context"
	"time"

	"github.com/stagepass/stagepass/internal/domain"
)

type EventRepository interface {
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
	CreateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) error
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

type EventInput struct {
	VenueID      string
	Name         string
	Description  string
	EventStart   time.Time
	EventEnd     time.Time
	ForSaleStart time.Time
	ForSaleEnd   time.Time
}

func (in EventInput) validate() error {
	if in.Name == "" {
		return domain.ErrEventNameRequired
	}
	if in.VenueID == "" {
		return domain.ErrInvalidID
	}
	if !in.EventStart.Before(in.EventEnd) {
		return domain.ErrInvalidEventWindow
	}
	if !in.ForSaleStart.Before(in.ForSaleEnd) {
		return domain.ErrInvalidSaleWindow
	}
	return nil
}

func (s *EventService) CreateEvent(ctx context.Context, in EventInput) (domain.Event, error) {
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}
	if _, err := s.repo.GetVenue(ctx, in.VenueID); err != nil {
		return domain.Event{}, err
	}

	event := domain.Event{
		ID:           newID(),
		VenueID:      in.VenueID,
		Name:         in.Name,
		Description:  in.Description,
		EventStart:   in.EventStart,
		EventEnd:     in.EventEnd,
		ForSaleStart: in.ForSaleStart,
		ForSaleEnd:   in.ForSaleEnd,
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	return s.repo.GetEvent(ctx, id)
}

// UpdateEvent replaces the event's mutable fields. It does not touch tickets:
// venue seat edits never propagate to tickets that already exist.
func (s *EventService) UpdateEvent(ctx context.Context, id string, in EventInput) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}

	current, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	if in.VenueID != current.VenueID {
		if _, err := s.repo.GetVenue(ctx, in.VenueID); err != nil {
			return domain.Event{}, err
		}
	}

	event := domain.Event{
		ID:           id,
		VenueID:      in.VenueID,
		Name:         in.Name,
		Description:  in.Description,
		EventStart:   in.EventStart,
		EventEnd:     in.EventEnd,
		ForSaleStart: in.ForSaleStart,
		ForSaleEnd:   in.ForSaleEnd,
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx)
}
