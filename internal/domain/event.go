package domain

import "time"

// Event is a scheduled happening at a venue. Ticket types and tickets are
// owned by the event.
type Event struct {
	ID           string
	VenueID      string
	Name         string
	Description  string
	EventStart   time.Time
	EventEnd     time.Time
	ForSaleStart time.Time
	ForSaleEnd   time.Time
}
