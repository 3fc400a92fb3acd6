package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stagepass/stagepass/internal/app"
	"github.com/stagepass/stagepass/internal/clock"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/testutil"
)

func TestTicketTypeRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewTicketTypeRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	t.Run("ticket type round trip", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		venueID := testutil.InsertVenue(t, ctx, pool, "Hall", []string{"A1", "A2"})
		eventID := testutil.InsertEvent(t, ctx, pool, venueID, "Concert", start)

		tt := domain.TicketType{
			ID:         uuid.NewString(),
			EventID:    eventID,
			Name:       "VIP",
			PriceCents: 15000,
			Seats:      []string{"A1", "A2"},
		}
		if err := repo.CreateTicketType(ctx, tt); err != nil {
			t.Fatalf("create ticket type: %v", err)
		}

		got, err := repo.GetTicketType(ctx, eventID, tt.ID)
		if err != nil {
			t.Fatalf("get ticket type: %v", err)
		}
		if got.PriceCents != 15000 || len(got.Seats) != 2 {
			t.Fatalf("unexpected ticket type: %+v", got)
		}

		got.PriceCents = 18000
		if err := repo.UpdateTicketType(ctx, got); err != nil {
			t.Fatalf("update ticket type: %v", err)
		}
		got, err = repo.GetTicketType(ctx, eventID, tt.ID)
		if err != nil {
			t.Fatalf("get after update: %v", err)
		}
		if got.PriceCents != 18000 {
			t.Fatalf("expected updated price, got %d", got.PriceCents)
		}

		types, err := repo.ListTicketTypesByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("list ticket types: %v", err)
		}
		if len(types) != 1 {
			t.Fatalf("expected 1 ticket type, got %d", len(types))
		}

		if _, err := repo.GetTicketType(ctx, eventID, uuid.NewString()); !errors.Is(err, domain.ErrTicketTypeNotFound) {
			t.Fatalf("expected ErrTicketTypeNotFound, got %v", err)
		}
	})

	t.Run("duplicate seat insert maps to ErrSeatAlreadyAssigned", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		venueID := testutil.InsertVenue(t, ctx, pool, "Hall", []string{"A1"})
		eventID := testutil.InsertEvent(t, ctx, pool, venueID, "Concert", start)
		ttID := testutil.InsertTicketType(t, ctx, pool, eventID, "VIP", 15000, []string{"A1"})
		testutil.InsertTicket(t, ctx, pool, eventID, ttID, "A1")

		err := repo.CreateTickets(ctx, []domain.Ticket{
			{ID: uuid.NewString(), EventID: eventID, TicketTypeID: ttID, Seat: "A1", CreatedAt: start},
		})
		if !errors.Is(err, domain.ErrSeatAlreadyAssigned) {
			t.Fatalf("expected ErrSeatAlreadyAssigned, got %v", err)
		}
	})

	t.Run("delete of unknown ticket fails", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if err := repo.DeleteTickets(ctx, []string{uuid.NewString()}); !errors.Is(err, domain.ErrTicketNotFound) {
			t.Fatalf("expected ErrTicketNotFound, got %v", err)
		}
	})
}

func TestTicketTypeRepository_ServiceReconciliation(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewTicketTypeRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	venueID := testutil.InsertVenue(t, ctx, pool, "Hall", []string{"A1", "A2", "B1"})
	eventID := testutil.InsertEvent(t, ctx, pool, venueID, "Concert", start)

	svc := app.NewTicketTypeService(repo, clock.NewFixed(start))

	tt, err := svc.CreateTicketType(ctx, eventID, app.TicketTypeInput{
		Name:       "Standard",
		PriceCents: 4500,
		Seats:      []string{"A1", "A2"},
	})
	if err != nil {
		t.Fatalf("create ticket type: %v", err)
	}

	tickets, err := repo.ListTicketsByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("list tickets: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("expected 2 minted tickets, got %d", len(tickets))
	}
	keptID := ""
	for _, ticket := range tickets {
		if ticket.Seat == "A2" {
			keptID = ticket.ID
		}
	}

	if _, err := svc.UpdateTicketType(ctx, eventID, tt.ID, app.TicketTypeInput{
		Name:       "Standard",
		PriceCents: 4500,
		Seats:      []string{"A2", "B1"},
	}); err != nil {
		t.Fatalf("update ticket type: %v", err)
	}

	tickets, err = repo.ListTicketsByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("list tickets after update: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("expected 2 tickets after reconciliation, got %d", len(tickets))
	}
	seats := map[string]string{}
	for _, ticket := range tickets {
		seats[ticket.Seat] = ticket.ID
	}
	if _, gone := seats["A1"]; gone {
		t.Fatalf("expected A1 ticket removed")
	}
	if seats["A2"] != keptID {
		t.Fatalf("unchanged seat must keep its ticket, got %s want %s", seats["A2"], keptID)
	}
	if seats["B1"] == "" {
		t.Fatalf("expected fresh B1 ticket")
	}
}
