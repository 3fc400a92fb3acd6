package domain

// Venue is a physical location with a fixed, ordered catalog of seat labels.
// Seats are immutable once the venue is created; tickets reference them by
// label.
type Venue struct {
	ID    string
	Name  string
	Seats []string
}

// HasSeat reports whether the label is part of the venue's seat catalog.
func (v Venue) HasSeat(seat string) bool {
	for _, s := range v.Seats {
		if s == seat {
			return true
		}
	}
	return false
}
