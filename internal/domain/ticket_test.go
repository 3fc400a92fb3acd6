package domain

import (
	"testing"
	"time"
)

func TestTicket_StatusAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	owner := "user-1"
	token := "tok-1"
	price := int64(5000)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name   string
		ticket Ticket
		want   TicketStatus
	}{
		{
			name:   "no fields set is available",
			ticket: Ticket{},
			want:   TicketStatusAvailable,
		},
		{
			name:   "active reservation is reserved",
			ticket: Ticket{OwnerID: &owner, ReservedUntil: &future},
			want:   TicketStatusReserved,
		},
		{
			name:   "expired reservation is available",
			ticket: Ticket{OwnerID: &owner, ReservedUntil: &past},
			want:   TicketStatusAvailable,
		},
		{
			name:   "reservation expiring exactly now is available",
			ticket: Ticket{OwnerID: &owner, ReservedUntil: &now},
			want:   TicketStatusAvailable,
		},
		{
			name: "purchase token wins over active reservation",
			ticket: Ticket{
				OwnerID:            &owner,
				ReservedUntil:      &future,
				PurchaseToken:      &token,
				PurchasePriceCents: &price,
			},
			want: TicketStatusSold,
		},
		{
			name: "sold ticket stays sold after reservation lapses",
			ticket: Ticket{
				OwnerID:            &owner,
				ReservedUntil:      &past,
				PurchaseToken:      &token,
				PurchasePriceCents: &price,
			},
			want: TicketStatusSold,
		},
		{
			name:   "owner without reservation is available",
			ticket: Ticket{OwnerID: &owner},
			want:   TicketStatusAvailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ticket.StatusAt(now); got != tc.want {
				t.Fatalf("StatusAt = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTicket_OwnedBy(t *testing.T) {
	t.Parallel()

	owner := "user-1"
	if (Ticket{}).OwnedBy("user-1") {
		t.Fatalf("ticket without owner should not be owned")
	}
	if !(Ticket{OwnerID: &owner}).OwnedBy("user-1") {
		t.Fatalf("expected ticket owned by user-1")
	}
	if (Ticket{OwnerID: &owner}).OwnedBy("user-2") {
		t.Fatalf("ticket owned by user-1 should not match user-2")
	}
}

func TestParseTicketStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"available", "reserved", "sold"} {
		if _, ok := ParseTicketStatus(valid); !ok {
			t.Fatalf("expected %q to parse", valid)
		}
	}
	for _, invalid := range []string{"", "Available", "expired", "held"} {
		if _, ok := ParseTicketStatus(invalid); ok {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}
