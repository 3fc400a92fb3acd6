package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stagepass/stagepass/internal/app"
	"github.com/stagepass/stagepass/internal/domain"
)

// VenueService is the minimal interface needed by the venue endpoints.
type VenueService interface {
	CreateVenue(ctx context.Context, in app.CreateVenueInput) (domain.Venue, error)
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
}

type createVenueRequest struct {
	Name  string   `json:"name" validate:"required"`
	Seats []string `json:"seats" validate:"required,min=1,dive,required"`
}

type venueResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Seats []string `json:"seats"`
}

// HandleCreateVenue returns an HTTP handler for creating venues.
func HandleCreateVenue(svc VenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVenueRequest
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

		venue, err := svc.CreateVenue(r.Context(), app.CreateVenueInput{
			Name:  req.Name,
			Seats: req.Seats,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Location", "/venues/"+venue.ID)
		writeJSON(w, http.StatusCreated, venueResponse{
			ID:    venue.ID,
			Name:  venue.Name,
			Seats: venue.Seats,
		})
	}
}

// HandleGetVenue returns an HTTP handler for fetching one venue.
func HandleGetVenue(svc VenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venue, err := svc.GetVenue(r.Context(), chi.URLParam(r, "venueID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, venueResponse{
			ID:    venue.ID,
			Name:  venue.Name,
			Seats: venue.Seats,
		})
	}
}
