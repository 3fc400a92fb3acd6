package memory

import (
	"context"
	"sync"

	"github.com/stagepass/stagepass/internal/domain"
)

// Store keeps all state in process memory. Mutations on an event's tickets
// and ticket types serialize on a per-event mutex; a WithTx scope holds every
// event mutex it touched until the scope ends, which gives the services their
// validate-then-mutate exclusivity without any global lock on the hot path.
type Store struct {
	mu         sync.RWMutex
	venues     map[string]domain.Venue
	events     map[string]*eventState
	eventOrder []string
	ticketIdx  map[string]*eventState
}

type eventState struct {
	mu          sync.Mutex
	event       domain.Event
	ticketTypes []domain.TicketType
	tickets     []*domain.Ticket // creation order
	byID        map[string]*domain.Ticket
}

func NewStore() *Store {
	return &Store{
		venues:    make(map[string]domain.Venue),
		events:    make(map[string]*eventState),
		ticketIdx: make(map[string]*eventState),
	}
}

type txKey struct{}

type memTx struct {
	mu   sync.Mutex
	held []*eventState
}

func (tx *memTx) lock(es *eventState) {
	tx.mu.Lock()
	for _, h := range tx.held {
		if h == es {
			tx.mu.Unlock()
			return
		}
	}
	tx.mu.Unlock()

	es.mu.Lock()

	tx.mu.Lock()
	tx.held = append(tx.held, es)
	tx.mu.Unlock()
}

func (tx *memTx) release() {
	tx.mu.Lock()
	held := tx.held
	tx.held = nil
	tx.mu.Unlock()
	for _, es := range held {
		es.mu.Unlock()
	}
}

func txFromContext(ctx context.Context) *memTx {
	tx, _ := ctx.Value(txKey{}).(*memTx)
	return tx
}

// WithTx runs fn inside a locking scope. Nested calls join the outer scope.
// There is no rollback: services validate fully before mutating, so a scope
// that fails has written nothing.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	tx := &memTx{}
	defer tx.release()
	return fn(context.WithValue(ctx, txKey{}, tx))
}

// lockEvent acquires the event mutex, through the tx scope when one is
// active. The returned unlock is a no-op for tx-held locks; those are
// released when the scope ends.
func (s *Store) lockEvent(ctx context.Context, es *eventState) func() {
	if tx := txFromContext(ctx); tx != nil {
		tx.lock(es)
		return func() {}
	}
	es.mu.Lock()
	return es.mu.Unlock
}

func (s *Store) findEvent(id string) (*eventState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	es, ok := s.events[id]
	return es, ok
}

func (s *Store) findEventByTicket(ticketID string) (*eventState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	es, ok := s.ticketIdx[ticketID]
	return es, ok
}

func (s *Store) CreateVenue(_ context.Context, venue domain.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	venue.Seats = append([]string(nil), venue.Seats...)
	s.venues[venue.ID] = venue
	return nil
}

func (s *Store) GetVenue(_ context.Context, id string) (domain.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	venue, ok := s.venues[id]
	if !ok {
		return domain.Venue{}, domain.ErrVenueNotFound
	}
	venue.Seats = append([]string(nil), venue.Seats...)
	return venue, nil
}

func (s *Store) CreateEvent(_ context.Context, event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = &eventState{
		event: event,
		byID:  make(map[string]*domain.Ticket),
	}
	s.eventOrder = append(s.eventOrder, event.ID)
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	es, ok := s.findEvent(id)
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()
	return es.event, nil
}

func (s *Store) UpdateEvent(ctx context.Context, event domain.Event) error {
	es, ok := s.findEvent(event.ID)
	if !ok {
		return domain.ErrEventNotFound
	}
	unlock := s.lockEvent(ctx, es)
	defer unlock()
	es.event = event
	return nil
}

func (s *Store) ListEvents(ctx context.Context) ([]domain.Event, error) {
	s.mu.RLock()
	order := append([]string(nil), s.eventOrder...)
	s.mu.RUnlock()

	events := make([]domain.Event, 0, len(order))
	for _, id := range order {
		es, ok := s.findEvent(id)
		if !ok {
			continue
		}
		unlock := s.lockEvent(ctx, es)
		events = append(events, es.event)
		unlock()
	}
	return events, nil
}
