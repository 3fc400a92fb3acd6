package domain

// TicketType groups an event's seats under one name and price. Its seat list
// must be a subset of the venue catalog and must not overlap another ticket
// type of the same event.
type TicketType struct {
	ID         string
	EventID    string
	Name       string
	PriceCents int64
	Seats      []string
}
