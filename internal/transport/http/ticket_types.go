package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stagepass/stagepass/internal/app"
	"github.com/stagepass/stagepass/internal/domain"
)

// TicketTypeService is the minimal interface needed by the ticket type
// endpoints. Create and update both reconcile the event's tickets against the
// submitted seat list.
type TicketTypeService interface {
	CreateTicketType(ctx context.Context, eventID string, in app.TicketTypeInput) (domain.TicketType, error)
	UpdateTicketType(ctx context.Context, eventID, ticketTypeID string, in app.TicketTypeInput) (domain.TicketType, error)
	GetTicketType(ctx context.Context, eventID, ticketTypeID string) (domain.TicketType, error)
	ListTicketTypes(ctx context.Context, eventID string) ([]domain.TicketType, error)
}

type ticketTypeRequest struct {
	Name       string   `json:"name" validate:"required"`
	PriceCents int64    `json:"price_cents" validate:"gte=0"`
	Seats      []string `json:"seats" validate:"dive,required"`
}

type ticketTypeResponse struct {
	ID         string   `json:"id"`
	EventID    string   `json:"event_id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"`
	Seats      []string `json:"seats"`
}

func toTicketTypeResponse(tt domain.TicketType) ticketTypeResponse {
	return ticketTypeResponse{
		ID:         tt.ID,
		EventID:    tt.EventID,
		Name:       tt.Name,
		PriceCents: tt.PriceCents,
		Seats:      tt.Seats,
	}
}

// HandleCreateTicketType returns an HTTP handler for creating a ticket type
// and minting its tickets.
func HandleCreateTicketType(svc TicketTypeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ticketTypeRequest
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

		eventID := chi.URLParam(r, "eventID")
		tt, err := svc.CreateTicketType(r.Context(), eventID, app.TicketTypeInput{
			Name:       req.Name,
			PriceCents: req.PriceCents,
			Seats:      req.Seats,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Location", "/events/"+eventID+"/tickettypes/"+tt.ID)
		writeJSON(w, http.StatusCreated, toTicketTypeResponse(tt))
	}
}

// HandleUpdateTicketType returns an HTTP handler for updating a ticket type,
// reconciling the event's tickets against the new seat list.
func HandleUpdateTicketType(svc TicketTypeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ticketTypeRequest
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

		tt, err := svc.UpdateTicketType(
			r.Context(),
			chi.URLParam(r, "eventID"),
			chi.URLParam(r, "ticketTypeID"),
			app.TicketTypeInput{
				Name:       req.Name,
				PriceCents: req.PriceCents,
				Seats:      req.Seats,
			},
		)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTicketTypeResponse(tt))
	}
}

// HandleGetTicketType returns an HTTP handler for fetching one ticket type.
func HandleGetTicketType(svc TicketTypeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tt, err := svc.GetTicketType(r.Context(), chi.URLParam(r, "eventID"), chi.URLParam(r, "ticketTypeID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTicketTypeResponse(tt))
	}
}

// HandleListTicketTypes returns an HTTP handler for listing an event's ticket
// types.
func HandleListTicketTypes(svc TicketTypeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := svc.ListTicketTypes(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]ticketTypeResponse, 0, len(types))
		for _, tt := range types {
			resp = append(resp, toTicketTypeResponse(tt))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
