package domain

import "time"

type TicketStatus string

const (
	TicketStatusAvailable TicketStatus = "available"
	TicketStatusReserved  TicketStatus = "reserved"
	TicketStatusSold      TicketStatus = "sold"
)

// Ticket is the sellable unit: one seat of one event. Status is never stored;
// it is derived from the raw fields at read time so that reservation expiry
// needs no background process.
type Ticket struct {
	ID                 string
	EventID            string
	TicketTypeID       string
	Seat               string
	OwnerID            *string
	ReservedUntil      *time.Time
	PurchaseToken      *string
	PurchasePriceCents *int64
	CreatedAt          time.Time
}

// StatusAt derives the ticket status at the given instant. A sold ticket stays
// sold regardless of ReservedUntil; a reservation lapses the moment
// ReservedUntil passes.
func (t Ticket) StatusAt(now time.Time) TicketStatus {
	if t.PurchaseToken != nil {
		return TicketStatusSold
	}
	if t.ReservedUntil != nil && t.ReservedUntil.After(now) {
		return TicketStatusReserved
	}
	return TicketStatusAvailable
}

// OwnedBy reports whether the ticket's owner field matches the given user.
func (t Ticket) OwnedBy(userID string) bool {
	return t.OwnerID != nil && *t.OwnerID == userID
}

// TicketReservation is the view of an active hold returned to callers.
type TicketReservation struct {
	UserID        string
	ReservedUntil time.Time
}

// TicketPurchase is the view of a completed sale returned to callers.
type TicketPurchase struct {
	PurchaserID   string
	PurchaseToken string
	PriceCents    int64
}

// ParseTicketStatus maps the wire representation of a status filter. The
// empty string means no filter.
func ParseTicketStatus(s string) (TicketStatus, bool) {
	switch TicketStatus(s) {
	case TicketStatusAvailable, TicketStatusReserved, TicketStatusSold:
		return TicketStatus(s), true
	}
	return "", false
}
