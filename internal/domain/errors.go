package domain

import "errors"

var (
	ErrVenueNotFound      = errors.New("venue not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrTicketNotFound     = errors.New("ticket not found")

	ErrVenueNameRequired      = errors.New("venue name required")
	ErrSeatsRequired          = errors.New("at least one seat required")
	ErrDuplicateSeat          = errors.New("duplicate seat label")
	ErrEventNameRequired      = errors.New("event name required")
	ErrInvalidEventWindow     = errors.New("event start must be before event end")
	ErrInvalidSaleWindow      = errors.New("sale start must be before sale end")
	ErrTicketTypeNameRequired = errors.New("ticket type name required")
	ErrInvalidPrice           = errors.New("price must not be negative")
	ErrUserIDRequired         = errors.New("user id required")
	ErrPurchaseTokenRequired  = errors.New("purchase token required")
	ErrInvalidID              = errors.New("invalid id")

	ErrSeatNotInVenue      = errors.New("seat not in venue")
	ErrSeatAlreadyAssigned = errors.New("seat already assigned to another ticket type")
	ErrSeatInUse           = errors.New("seat in use")

	ErrTicketUnavailable     = errors.New("ticket unavailable")
	ErrTicketReservedByOther = errors.New("ticket reserved by another user")
	ErrTicketAlreadySold     = errors.New("ticket already sold")
	ErrPriceMismatch         = errors.New("price does not match ticket type price")

	ErrInvalidPage     = errors.New("page must be positive")
	ErrInvalidPageSize = errors.New("page size out of range")
	ErrPageOutOfRange  = errors.New("page out of range")
)
