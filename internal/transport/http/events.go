package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stagepass/stagepass/internal/app"
	"github.com/stagepass/stagepass/internal/domain"
)

// EventService is the minimal interface needed by the event endpoints.
type EventService interface {
	CreateEvent(ctx context.Context, in app.EventInput) (domain.Event, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	UpdateEvent(ctx context.Context, id string, in app.EventInput) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

type eventRequest struct {
	VenueID      string    `json:"venue_id" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	Description  string    `json:"description"`
	EventStart   time.Time `json:"event_start" validate:"required"`
	EventEnd     time.Time `json:"event_end" validate:"required"`
	ForSaleStart time.Time `json:"for_sale_start" validate:"required"`
	ForSaleEnd   time.Time `json:"for_sale_end" validate:"required"`
}

func (req eventRequest) toInput() app.EventInput {
	return app.EventInput{
		VenueID:      req.VenueID,
		Name:         req.Name,
		Description:  req.Description,
		EventStart:   req.EventStart,
		EventEnd:     req.EventEnd,
		ForSaleStart: req.ForSaleStart,
		ForSaleEnd:   req.ForSaleEnd,
	}
}

type eventResponse struct {
	ID           string    `json:"id"`
	VenueID      string    `json:"venue_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	EventStart   time.Time `json:"event_start"`
	EventEnd     time.Time `json:"event_end"`
	ForSaleStart time.Time `json:"for_sale_start"`
	ForSaleEnd   time.Time `json:"for_sale_end"`
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:           e.ID,
		VenueID:      e.VenueID,
		Name:         e.Name,
		Description:  e.Description,
		EventStart:   e.EventStart,
		EventEnd:     e.EventEnd,
		ForSaleStart: e.ForSaleStart,
		ForSaleEnd:   e.ForSaleEnd,
	}
}

// HandleCreateEvent returns an HTTP handler for creating events.
func HandleCreateEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
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

		event, err := svc.CreateEvent(r.Context(), req.toInput())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Location", "/events/"+event.ID)
		writeJSON(w, http.StatusCreated, toEventResponse(event))
	}
}

// HandleGetEvent returns an HTTP handler for fetching one event.
func HandleGetEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.GetEvent(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(event))
	}
}

// HandleUpdateEvent returns an HTTP handler for replacing an event's fields.
func HandleUpdateEvent(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
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

		event, err := svc.UpdateEvent(r.Context(), chi.URLParam(r, "eventID"), req.toInput())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(event))
	}
}

// HandleListEvents returns an HTTP handler for listing events.
func HandleListEvents(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.ListEvents(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]eventResponse, 0, len(events))
		for _, e := range events {
			resp = append(resp, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
