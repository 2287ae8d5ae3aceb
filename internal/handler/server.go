// Package handler implements the HTTP surface of the trip store.
// All handlers are methods on Server. They are split into resource-specific
// files (trip.go, booking.go, etc.) but share the same Server struct so they
// can reach its dependencies.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/tripstore/internal/catalog"
	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/itinerary"
	"github.com/pkordes/tripstore/internal/middleware"
	"github.com/pkordes/tripstore/internal/service"
	"github.com/pkordes/tripstore/internal/views"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interfaces here (in the consumer package) lets handler tests
// inject a mock without building a store.
type TripServicer interface {
	AddTrip(in domain.TripInput) (domain.Trip, error)
	UpdateTrip(id string, patch domain.TripPatch) error
	DeleteTrip(id string)
	SetReview(id string, in domain.ReviewInput) (domain.Trip, error)
	Trip(id string) (service.TripView, error)
	SortedTrips(f views.TripFilter) []domain.Trip
	Stats() views.TravelStats
}

// ItineraryServicer defines the itinerary operations of one trip.
type ItineraryServicer interface {
	AddItineraryItem(tripID string, in domain.ItemInput) (domain.ItineraryItem, error)
	UpdateItineraryItem(tripID, itemID string, patch domain.ItemPatch) error
	ToggleItineraryItem(tripID, itemID string) error
	DeleteItineraryItem(tripID, itemID string)
	ItineraryItem(tripID, itemID string) (domain.ItineraryItem, error)
	Itinerary(tripID string) ([]itinerary.Day, error)
}

// BookingServicer defines the booking operations.
type BookingServicer interface {
	AddBooking(in domain.BookingInput) (domain.Booking, error)
	BookFromCatalog(req catalog.Request) (domain.Booking, error)
	CancelBooking(id string)
	Bookings() []domain.Booking
	Booking(id string) (domain.Booking, error)
	UpcomingBookings() []domain.Booking
	BookingHistory(f views.BookingFilter) []domain.Booking
}

// SavedServicer defines the saved-item operations.
type SavedServicer interface {
	AddSavedItem(item domain.SavedItem) error
	RemoveSavedItem(id string)
	ToggleSavedItem(item domain.SavedItem) (bool, error)
	IsItemSaved(id string) bool
	SavedItems() []domain.SavedItem
}

// ExportServicer produces the flat export rows.
type ExportServicer interface {
	Export() []domain.ExportRow
}

// EventSource feeds the health check and the change-event stream.
type EventSource interface {
	Loaded() bool
	Subscribe() (<-chan service.Event, func())
}

// Services bundles every dependency of Server. A nil field leaves its routes
// answering 500, which is only useful in tests.
type Services struct {
	Trips     TripServicer
	Itinerary ItineraryServicer
	Bookings  BookingServicer
	Saved     SavedServicer
	Export    ExportServicer
	Events    EventSource
}

// FromDataContext uses dc for every service.
func FromDataContext(dc *service.DataContext) Services {
	return Services{Trips: dc, Itinerary: dc, Bookings: dc, Saved: dc, Export: dc, Events: dc}
}

// Options configures the router around the handlers. Zero fields get defaults.
type Options struct {
	Logger *slog.Logger
	// CORSOrigins are the allowed cross-origin callers. Empty disables CORS.
	CORSOrigins []string
	// MaxBodyBytes caps request bodies. Zero or less disables the cap.
	MaxBodyBytes int64
	// Metrics serves GET /metrics when non-nil.
	Metrics http.Handler
	// Location formats times in the itinerary PDF. Defaults to time.Local.
	Location *time.Location
	// KeepAlive is the comment interval on idle event streams. Defaults to 15s.
	KeepAlive time.Duration
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	trips     TripServicer
	itinerary ItineraryServicer
	bookings  BookingServicer
	saved     SavedServicer
	export    ExportServicer
	events    EventSource

	log  *slog.Logger
	opts Options
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.KeepAlive <= 0 {
		opts.KeepAlive = 15 * time.Second
	}
	return &Server{
		trips:     svc.Trips,
		itinerary: svc.Itinerary,
		bookings:  svc.Bookings,
		saved:     svc.Saved,
		export:    svc.Export,
		events:    svc.Events,
		log:       opts.Logger,
		opts:      opts,
	}
}

// Routes returns the full router.
// Middleware is applied in order: RequestID, RealIP, SlogLogger, Recoverer,
// CORS, MaxBodySize. RequestID generates a trace ID per request, RealIP reads
// X-Forwarded-For / X-Real-IP, SlogLogger writes one structured line per
// request and Recoverer turns panics into 500s.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(middleware.NewCORSHandler(s.opts.CORSOrigins))
	}
	r.Use(middleware.NewMaxBodySizeHandler(s.opts.MaxBodyBytes))

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.listTrips)
		r.Post("/", s.createTrip)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getTrip)
			r.Patch("/", s.updateTrip)
			r.Delete("/", s.deleteTrip)
			r.Put("/review", s.putReview)
			r.Get("/itinerary", s.getItinerary)
			r.Post("/itinerary", s.addItineraryItem)
			r.Get("/itinerary.pdf", s.getItineraryPDF)
			r.Patch("/itinerary/{itemId}", s.updateItineraryItem)
			r.Delete("/itinerary/{itemId}", s.deleteItineraryItem)
			r.Post("/itinerary/{itemId}/toggle", s.toggleItineraryItem)
		})
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", s.listBookings)
		r.Post("/", s.createBooking)
		r.Get("/upcoming", s.listUpcomingBookings)
		r.Get("/history", s.listBookingHistory)
		r.Post("/catalog", s.bookFromCatalog)
		r.Post("/{id}/cancel", s.cancelBooking)
	})

	r.Route("/saved", func(r chi.Router) {
		r.Get("/", s.listSaved)
		r.Post("/", s.addSaved)
		r.Get("/{id}", s.getSaved)
		r.Delete("/{id}", s.deleteSaved)
		r.Post("/{id}/toggle", s.toggleSaved)
	})

	r.Get("/stats", s.getStats)
	r.Get("/catalog/{kind}", s.getCatalog)
	r.Get("/export", s.getExport)
	r.Get("/events", s.streamEvents)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	return r
}
