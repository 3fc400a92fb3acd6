package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stagepass/stagepass/internal/domain"
)

const (
	codeNotFound            = "not_found"
	codeVenueNotFound       = "venue_not_found"
	codeEventNotFound       = "event_not_found"
	codeTicketTypeNotFound  = "ticket_type_not_found"
	codeTicketNotFound      = "ticket_not_found"
	codeReservationNotFound = "reservation_not_found"
	codePurchaseNotFound    = "purchase_not_found"

	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidArgument    = "invalid_argument"
	codeInvalidQuery       = "invalid_query"
	codePriceMismatch      = "price_mismatch"
	codePageOutOfRange     = "page_out_of_range"

	codeTicketUnavailable   = "ticket_unavailable"
	codeReservedByOther     = "ticket_reserved_by_other"
	codeAlreadySold         = "ticket_already_sold"
	codeSeatInUse           = "seat_in_use"
	codeSeatNotInVenue      = "seat_not_in_venue"
	codeSeatAlreadyAssigned = "seat_already_assigned"

	codeForbidden     = "forbidden"
	codeInternalError = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps a service error to the HTTP contract: 404 for missing
// entities, 400 for bad input including a stale price, 409 for state
// conflicts.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrVenueNotFound):
		writeError(w, http.StatusNotFound, codeVenueNotFound, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrTicketTypeNotFound):
		writeError(w, http.StatusNotFound, codeTicketTypeNotFound, err.Error())
	case errors.Is(err, domain.ErrTicketNotFound):
		writeError(w, http.StatusNotFound, codeTicketNotFound, err.Error())

	case errors.Is(err, domain.ErrTicketUnavailable):
		writeError(w, http.StatusConflict, codeTicketUnavailable, err.Error())
	case errors.Is(err, domain.ErrTicketReservedByOther):
		writeError(w, http.StatusConflict, codeReservedByOther, err.Error())
	case errors.Is(err, domain.ErrTicketAlreadySold):
		writeError(w, http.StatusConflict, codeAlreadySold, err.Error())
	case errors.Is(err, domain.ErrSeatInUse):
		writeError(w, http.StatusConflict, codeSeatInUse, err.Error())
	case errors.Is(err, domain.ErrSeatNotInVenue):
		writeError(w, http.StatusConflict, codeSeatNotInVenue, err.Error())
	case errors.Is(err, domain.ErrSeatAlreadyAssigned):
		writeError(w, http.StatusConflict, codeSeatAlreadyAssigned, err.Error())

	case errors.Is(err, domain.ErrPriceMismatch):
		writeError(w, http.StatusBadRequest, codePriceMismatch, err.Error())
	case errors.Is(err, domain.ErrPageOutOfRange):
		writeError(w, http.StatusBadRequest, codePageOutOfRange, err.Error())
	case errors.Is(err, domain.ErrInvalidPage),
		errors.Is(err, domain.ErrInvalidPageSize):
		writeError(w, http.StatusBadRequest, codeInvalidQuery, err.Error())
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrVenueNameRequired),
		errors.Is(err, domain.ErrSeatsRequired),
		errors.Is(err, domain.ErrDuplicateSeat),
		errors.Is(err, domain.ErrEventNameRequired),
		errors.Is(err, domain.ErrInvalidEventWindow),
		errors.Is(err, domain.ErrInvalidSaleWindow),
		errors.Is(err, domain.ErrTicketTypeNameRequired),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrUserIDRequired),
		errors.Is(err, domain.ErrPurchaseTokenRequired):
		writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())

	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
