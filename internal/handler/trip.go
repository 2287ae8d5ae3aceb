package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/views"
)

// listTrips handles GET /trips.
// Supports ?q=, ?status=, ?page= and ?limit=. Trips are ordered ongoing,
// upcoming, completed, then by start date.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
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
	params, err := paginationParams(q)
	if err != nil {
		badQuery(w, err)
		return
	}

	trips := s.trips.SortedTrips(views.TripFilter{Query: query, Status: domain.TripStatus(status)})
	w.Header().Set("X-Total-Count", strconv.Itoa(len(trips)))
	writeJSON(w, http.StatusOK, paginate(trips, params))
}

// createTrip handles POST /trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var in domain.TripInput
	if !decode(w, r, &in) {
		return
	}
	created, err := s.trips.AddTrip(in)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	view, err := s.trips.Trip(created.ID)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// getTrip handles GET /trips/{id}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	view, err := s.trips.Trip(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// updateTrip handles PATCH /trips/{id}.
// The store ignores unknown ids, so existence is checked first to answer 404.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.trips.Trip(id); err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	var patch domain.TripPatch
	if !decode(w, r, &patch) {
		return
	}
	if err := s.trips.UpdateTrip(id, patch); err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	view, err := s.trips.Trip(id)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// deleteTrip handles DELETE /trips/{id}. Deleting an unknown trip is not an error.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	s.trips.DeleteTrip(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// putReview handles PUT /trips/{id}/review. Only completed trips accept a review.
func (s *Server) putReview(w http.ResponseWriter, r *http.Request) {
	var in domain.ReviewInput
	if !decode(w, r, &in) {
		return
	}
	trip, err := s.trips.SetReview(chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// getStats handles GET /stats.
func (s *Server) getStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.trips.Stats())
}
