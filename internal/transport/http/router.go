package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/stagepass/stagepass/internal/clock"
)

var validate = validator.New()

// TicketSalesService bundles the ticket-facing interfaces the router mounts
// under /tickets and /events/{eventID}/tickets.
type TicketSalesService interface {
	TicketReader
	ReservationService
	PurchaseService
}

type Config struct {
	Venues      VenueService
	Events      EventService
	TicketTypes TicketTypeService
	Tickets     TicketSalesService
	Clock       clock.Clock
	Logger      zerolog.Logger
	CORSOrigins []string
}

// NewRouter assembles the HTTP surface.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(cfg.Logger))
	r.Use(CORS(cfg.CORSOrigins))

	r.Get("/health", HealthHandler)

	r.Route("/venues", func(r chi.Router) {
		r.Post("/", HandleCreateVenue(cfg.Venues))
		r.Get("/{venueID}", HandleGetVenue(cfg.Venues))
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", HandleCreateEvent(cfg.Events))
		r.Get("/", HandleListEvents(cfg.Events))
		r.Get("/{eventID}", HandleGetEvent(cfg.Events))
		r.Put("/{eventID}", HandleUpdateEvent(cfg.Events))

		r.Route("/{eventID}/tickettypes", func(r chi.Router) {
			r.Post("/", HandleCreateTicketType(cfg.TicketTypes))
			r.Get("/", HandleListTicketTypes(cfg.TicketTypes))
			r.Get("/{ticketTypeID}", HandleGetTicketType(cfg.TicketTypes))
			r.Put("/{ticketTypeID}", HandleUpdateTicketType(cfg.TicketTypes))
		})

		r.Get("/{eventID}/tickets", HandleListEventTickets(cfg.Tickets, cfg.Clock))
	})

	r.Route("/tickets/{ticketID}", func(r chi.Router) {
		r.Get("/", HandleGetTicket(cfg.Tickets, cfg.Clock))
		r.Post("/reservations", HandleCreateReservation(cfg.Tickets))
		r.Get("/reservations/{userID}", HandleGetReservation(cfg.Tickets))
		r.Delete("/reservations/{userID}", HandleDeleteReservation(cfg.Tickets))
		r.Post("/purchase", HandleCreatePurchase(cfg.Tickets))
		r.Get("/purchase", HandleGetPurchase(cfg.Tickets))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}
