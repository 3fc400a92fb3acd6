package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stagepass/stagepass/internal/domain"
)

// ReservationService is the minimal interface needed by the reservation
// endpoints.
type ReservationService interface {
	Reserve(ctx context.Context, ticketID, userID string) (domain.TicketReservation, error)
	ReleaseReservation(ctx context.Context, ticketID, userID string) error
	GetReservation(ctx context.Context, ticketID, userID string) (*domain.TicketReservation, error)
}

type createReservationRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type reservationResponse struct {
	UserID        string    `json:"user_id"`
	ReservedUntil time.Time `json:"reserved_until"`
}

// HandleCreateReservation returns an HTTP handler for placing a hold on a
// ticket.
func HandleCreateReservation(svc ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReservationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
			return
		}

		ticketID := chi.URLParam(r, "ticketID")
		res, err := svc.Reserve(r.Context(), ticketID, req.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Location", "/tickets/"+ticketID+"/reservations/"+res.UserID)
		writeJSON(w, http.StatusCreated, reservationResponse{
			UserID:        res.UserID,
			ReservedUntil: res.ReservedUntil,
		})
	}
}

// HandleGetReservation returns an HTTP handler for fetching the caller's
// active hold. An expired or foreign hold reads as not found.
func HandleGetReservation(svc ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.GetReservation(r.Context(), chi.URLParam(r, "ticketID"), chi.URLParam(r, "userID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if res == nil {
			writeError(w, http.StatusNotFound, codeReservationNotFound, "reservation not found")
			return
		}
		writeJSON(w, http.StatusOK, reservationResponse{
			UserID:        res.UserID,
			ReservedUntil: res.ReservedUntil,
		})
	}
}

// HandleDeleteReservation returns an HTTP handler for cancelling a hold.
// Cancellation is idempotent; releasing a hold that is absent or owned by
// someone else still returns 204.
func HandleDeleteReservation(svc ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.ReleaseReservation(r.Context(), chi.URLParam(r, "ticketID"), chi.URLParam(r, "userID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
