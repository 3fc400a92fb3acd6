package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stagepass/stagepass/internal/app"
	"github.com/stagepass/stagepass/internal/clock"
	"github.com/stagepass/stagepass/internal/domain"
)

// TicketReader is the minimal interface needed by the ticket read endpoints.
type TicketReader interface {
	GetTicket(ctx context.Context, ticketID string) (domain.Ticket, error)
	ListEventTickets(ctx context.Context, in app.ListTicketsInput) (app.TicketPage, error)
}

const (
	defaultPage     = 1
	defaultPageSize = 50
)

type ticketResponse struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	TicketTypeID string `json:"ticket_type_id"`
	Seat         string `json:"seat"`
	Status       string `json:"status"`
}

func toTicketResponse(t domain.Ticket, now time.Time) ticketResponse {
	return ticketResponse{
		ID:           t.ID,
		EventID:      t.EventID,
		TicketTypeID: t.TicketTypeID,
		Seat:         t.Seat,
		Status:       string(t.StatusAt(now)),
	}
}

// HandleGetTicket returns an HTTP handler for fetching one ticket with its
// derived status.
func HandleGetTicket(svc TicketReader, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticket, err := svc.GetTicket(r.Context(), chi.URLParam(r, "ticketID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTicketResponse(ticket, clk.Now()))
	}
}

type ticketPageResponse struct {
	Tickets    []ticketResponse `json:"tickets"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalCount int              `json:"total_count"`
}

// HandleListEventTickets returns an HTTP handler for listing an event's
// tickets, optionally filtered by status. Paging defaults are applied here;
// the service enforces the bounds.
func HandleListEventTickets(svc TicketReader, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := app.ListTicketsInput{
			EventID:  chi.URLParam(r, "eventID"),
			Page:     defaultPage,
			PageSize: defaultPageSize,
		}

		q := r.URL.Query()
		if raw := q.Get("page"); raw != "" {
			page, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidQuery, "page must be an integer")
				return
			}
			in.Page = page
		}
		if raw := q.Get("pageSize"); raw != "" {
			size, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidQuery, "pageSize must be an integer")
				return
			}
			in.PageSize = size
		}
		if raw := q.Get("status"); raw != "" {
			status, ok := domain.ParseTicketStatus(raw)
			if !ok {
				writeError(w, http.StatusBadRequest, codeInvalidQuery, "unknown status filter")
				return
			}
			in.Status = &status
		}

		page, err := svc.ListEventTickets(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		now := clk.Now()
		resp := ticketPageResponse{
			Tickets:    make([]ticketResponse, 0, len(page.Tickets)),
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalCount: page.TotalCount,
		}
		for _, t := range page.Tickets {
			resp.Tickets = append(resp.Tickets, toTicketResponse(t, now))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
