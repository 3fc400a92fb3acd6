package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/stagepass/stagepass/internal/app"
	"github.com/stagepass/stagepass/internal/clock"
	"github.com/stagepass/stagepass/internal/storage/memory"
)

func newTestRouter(t *testing.T, clk clock.Clock) http.Handler {
	t.Helper()
	store := memory.NewStore()
	return NewRouter(Config{
		Venues:      app.NewVenueService(store),
		Events:      app.NewEventService(store),
		TicketTypes: app.NewTicketTypeService(store, clk),
		Tickets:     app.NewTicketService(store, clk),
		Clock:       clk,
		Logger:      zerolog.Nop(),
		CORSOrigins: []string{"http://localhost:5173"},
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

type venueBody struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Seats []string `json:"seats"`
}

type eventBody struct {
	ID      string `json:"id"`
	VenueID string `json:"venue_id"`
	Name    string `json:"name"`
}

type ticketTypeBody struct {
	ID         string   `json:"id"`
	EventID    string   `json:"event_id"`
	PriceCents int64    `json:"price_cents"`
	Seats      []string `json:"seats"`
}

type ticketBody struct {
	ID     string `json:"id"`
	Seat   string `json:"seat"`
	Status string `json:"status"`
}

type ticketPageBody struct {
	Tickets    []ticketBody `json:"tickets"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalCount int          `json:"total_count"`
}

type purchaseBody struct {
	PurchaserID   string `json:"purchaser_id"`
	PurchaseToken string `json:"purchase_token"`
	PriceCents    int64  `json:"price_cents"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func eventPayload(venueID string) map[string]any {
	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	return map[string]any{
		"venue_id":       venueID,
		"name":           "Summer Concert",
		"description":    "Open air",
		"event_start":    start,
		"event_end":      start.Add(3 * time.Hour),
		"for_sale_start": start.Add(-30 * 24 * time.Hour),
		"for_sale_end":   start,
	}
}

func TestRouter_HappyPath(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h := newTestRouter(t, clock.NewFixed(now))

	rec := doJSON(t, h, http.MethodPost, "/venues", map[string]any{
		"name":  "Grand Hall",
		"seats": []string{"A1", "A2", "B1"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	venue := decode[venueBody](t, rec)
	require.NotEmpty(t, venue.ID)
	require.Equal(t, "/venues/"+venue.ID, rec.Header().Get("Location"))

	rec = doJSON(t, h, http.MethodGet, "/venues/"+venue.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/events", eventPayload(venue.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	event := decode[eventBody](t, rec)
	require.NotEmpty(t, event.ID)

	rec = doJSON(t, h, http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events := decode[[]eventBody](t, rec)
	require.Len(t, events, 1)

	renamed := eventPayload(venue.ID)
	renamed["name"] = "Renamed Concert"
	rec = doJSON(t, h, http.MethodPut, "/events/"+event.ID, renamed)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Renamed Concert", decode[eventBody](t, rec).Name)

	rec = doJSON(t, h, http.MethodPost, "/events/"+event.ID+"/tickettypes", map[string]any{
		"name":        "VIP",
		"price_cents": 15000,
		"seats":       []string{"A1", "A2"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tt := decode[ticketTypeBody](t, rec)
	require.Len(t, tt.Seats, 2)

	rec = doJSON(t, h, http.MethodGet, "/events/"+event.ID+"/tickets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[ticketPageBody](t, rec)
	require.Equal(t, 2, page.TotalCount)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 50, page.PageSize)
	for _, ticket := range page.Tickets {
		require.Equal(t, "available", ticket.Status)
	}
	ticketID := page.Tickets[0].ID

	rec = doJSON(t, h, http.MethodPost, "/tickets/"+ticketID+"/reservations", map[string]any{
		"user_id": "user-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "/tickets/"+ticketID+"/reservations/user-1", rec.Header().Get("Location"))

	rec = doJSON(t, h, http.MethodGet, "/tickets/"+ticketID+"/reservations/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/tickets/"+ticketID+"/reservations/user-2", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "reservation_not_found", decode[errorBody](t, rec).Code)

	rec = doJSON(t, h, http.MethodPost, "/tickets/"+ticketID+"/purchase", map[string]any{
		"purchaser_id":   "user-2",
		"purchase_token": "tok-2",
		"price_cents":    15000,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "ticket_reserved_by_other", decode[errorBody](t, rec).Code)

	rec = doJSON(t, h, http.MethodPost, "/tickets/"+ticketID+"/purchase", map[string]any{
		"purchaser_id":   "user-1",
		"purchase_token": "tok-1",
		"price_cents":    9999,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "price_mismatch", decode[errorBody](t, rec).Code)

	rec = doJSON(t, h, http.MethodPost, "/tickets/"+ticketID+"/purchase", map[string]any{
		"purchaser_id":   "user-1",
		"purchase_token": "tok-1",
		"price_cents":    15000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bought := decode[purchaseBody](t, rec)
	require.Equal(t, "tok-1", bought.PurchaseToken)

	rec = doJSON(t, h, http.MethodPost, "/tickets/"+ticketID+"/purchase", map[string]any{
		"purchaser_id":   "user-1",
		"purchase_token": "tok-replayed",
		"price_cents":    11111,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	repeat := decode[purchaseBody](t, rec)
	require.Equal(t, "tok-1", repeat.PurchaseToken)
	require.Equal(t, int64(15000), repeat.PriceCents)

	rec = doJSON(t, h, http.MethodGet, "/tickets/"+ticketID+"/purchase", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/tickets/"+ticketID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "sold", decode[ticketBody](t, rec).Status)

	rec = doJSON(t, h, http.MethodGet, "/events/"+event.ID+"/tickets?status=sold", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decode[ticketPageBody](t, rec).TotalCount)
}

func TestRouter_ReservationExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewAdjustable(now)
	h := newTestRouter(t, clk)

	ticketID := setupSingleTicket(t, h)

	rec := doJSON(t, h, http.MethodPost, "/tickets/"+ticketID+"/reservations", map[string]any{"user_id": "user-1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/tickets/"+ticketID, nil)
	require.Equal(t, "reserved", decode[ticketBody](t, rec).Status)

	clk.Advance(11 * time.Minute)

	rec = doJSON(t, h, http.MethodGet, "/tickets/"+ticketID, nil)
	require.Equal(t, "available", decode[ticketBody](t, rec).Status)

	rec = doJSON(t, h, http.MethodGet, "/tickets/"+ticketID+"/reservations/user-1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/tickets/"+ticketID+"/reservations", map[string]any{"user_id": "user-2"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestRouter_ReservationRelease(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h := newTestRouter(t, clock.NewFixed(now))
	ticketID := setupSingleTicket(t, h)

	rec := doJSON(t, h, http.MethodPost, "/tickets/"+ticketID+"/reservations", map[string]any{"user_id": "user-1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Foreign release is a 204 no-op.
	rec = doJSON(t, h, http.MethodDelete, "/tickets/"+ticketID+"/reservations/user-2", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/tickets/"+ticketID, nil)
	require.Equal(t, "reserved", decode[ticketBody](t, rec).Status)

	rec = doJSON(t, h, http.MethodDelete, "/tickets/"+ticketID+"/reservations/user-1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/tickets/"+ticketID, nil)
	require.Equal(t, "available", decode[ticketBody](t, rec).Status)

	rec = doJSON(t, h, http.MethodDelete, "/tickets/"+ticketID+"/reservations/user-1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_BadRequests(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h := newTestRouter(t, clock.NewFixed(now))

	t.Run("unknown JSON field", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/venues", map[string]any{
			"name": "Hall", "seats": []string{"A1"}, "bogus": true,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid_request_body", decode[errorBody](t, rec).Code)
	})

	t.Run("missing required field", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/venues", map[string]any{"seats": []string{"A1"}})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid_argument", decode[errorBody](t, rec).Code)
	})

	t.Run("unknown status filter", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/events/missing/tickets?status=expired", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid_query", decode[errorBody](t, rec).Code)
	})

	t.Run("non-integer page", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/events/missing/tickets?page=abc", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/nope", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "not_found", decode[errorBody](t, rec).Code)
	})

	t.Run("unknown venue", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/venues/missing", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "venue_not_found", decode[errorBody](t, rec).Code)
	})
}

// setupSingleTicket provisions venue, event and a one-seat ticket type over
// the API and returns the minted ticket's ID.
func setupSingleTicket(t *testing.T, h http.Handler) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/venues", map[string]any{
		"name":  "Hall",
		"seats": []string{"A1"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	venue := decode[venueBody](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/events", eventPayload(venue.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	event := decode[eventBody](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/events/"+event.ID+"/tickettypes", map[string]any{
		"name":        "Standard",
		"price_cents": 4500,
		"seats":       []string{"A1"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/events/"+event.ID+"/tickets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[ticketPageBody](t, rec)
	require.Len(t, page.Tickets, 1)
	return page.Tickets[0].ID
}
