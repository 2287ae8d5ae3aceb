package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripstore/internal/catalog"
	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/views"
)

// listBookings handles GET /bookings. Bookings are returned in insertion order.
func (s *Server) listBookings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.bookings.Bookings())
}

// listUpcomingBookings handles GET /bookings/upcoming.
func (s *Server) listUpcomingBookings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.bookings.UpcomingBookings())
}

// listBookingHistory handles GET /bookings/history.
// Supports ?q=, ?status=, ?type=, ?page= and ?limit=.
func (s *Server) listBookingHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f views.BookingFilter
	query, err := queryString(q, "q")
	if err != nil {
		badQuery(w, err)
		return
	}
	status, err := queryString(q, "status")
	if err != nil {
		badQuery(w, err)
		return
	}
	typ, err := queryString(q, "type")
	if err != nil {
		badQuery(w, err)
		return
	}
	params, err := paginationParams(q)
	if err != nil {
		badQuery(w, err)
		return
	}
	f.Query = query
	f.Status = domain.BookingStatus(status)
	f.Type = domain.BookingType(typ)

	history := s.bookings.BookingHistory(f)
	w.Header().Set("X-Total-Count", strconv.Itoa(len(history)))
	writeJSON(w, http.StatusOK, paginate(history, params))
}

// createBooking handles POST /bookings with a fully described booking.
func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingInput
	if !decode(w, r, &in) {
		return
	}
	b, err := s.bookings.AddBooking(in)
	if err != nil {
		s.fail(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// bookFromCatalog handles POST /bookings/catalog. The price and details are
// computed from the catalog entry.
func (s *Server) bookFromCatalog(w http.ResponseWriter, r *http.Request) {
	var req catalog.Request
	if !decode(w, r, &req) {
		return
	}
	b, err := s.bookings.BookFromCatalog(req)
	if err != nil {
		s.fail(w, r, err, "catalog item not found")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// cancelBooking handles POST /bookings/{id}/cancel. Cancelling twice is not an error.
func (s *Server) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.bookings.Booking(id); err != nil {
		s.fail(w, r, err, "booking not found")
		return
	}
	s.bookings.CancelBooking(id)
	b, err := s.bookings.Booking(id)
	if err != nil {
		s.fail(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// getCatalog handles GET /catalog/{kind}.
func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	listing, err := catalog.List(catalog.Kind(chi.URLParam(r, "kind")))
	if err != nil {
		s.fail(w, r, err, "unknown catalog")
		return
	}
	writeJSON(w, http.StatusOK, listing)
}
