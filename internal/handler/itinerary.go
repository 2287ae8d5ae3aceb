package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripstore/internal/domain"
)

// getItinerary handles GET /trips/{id}/itinerary.
// Items are grouped by calendar day, days ascending, items by start time.
func (s *Server) getItinerary(w http.ResponseWriter, r *http.Request) {
	days, err := s.itinerary.Itinerary(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// addItineraryItem handles POST /trips/{id}/itinerary.
func (s *Server) addItineraryItem(w http.ResponseWriter, r *http.Request) {
	var in domain.ItemInput
	if !decode(w, r, &in) {
		return
	}
	item, err := s.itinerary.AddItineraryItem(chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// updateItineraryItem handles PATCH /trips/{id}/itinerary/{itemId}.
func (s *Server) updateItineraryItem(w http.ResponseWriter, r *http.Request) {
	tripID, itemID := chi.URLParam(r, "id"), chi.URLParam(r, "itemId")
	if _, err := s.itinerary.ItineraryItem(tripID, itemID); err != nil {
		s.fail(w, r, err, "itinerary item not found")
		return
	}
	var patch domain.ItemPatch
	if !decode(w, r, &patch) {
		return
	}
	if err := s.itinerary.UpdateItineraryItem(tripID, itemID, patch); err != nil {
		s.fail(w, r, err, "itinerary item not found")
		return
	}
	s.writeItem(w, r, tripID, itemID)
}

// toggleItineraryItem handles POST /trips/{id}/itinerary/{itemId}/toggle.
func (s *Server) toggleItineraryItem(w http.ResponseWriter, r *http.Request) {
	tripID, itemID := chi.URLParam(r, "id"), chi.URLParam(r, "itemId")
	if _, err := s.itinerary.ItineraryItem(tripID, itemID); err != nil {
		s.fail(w, r, err, "itinerary item not found")
		return
	}
	if err := s.itinerary.ToggleItineraryItem(tripID, itemID); err != nil {
		s.fail(w, r, err, "itinerary item not found")
		return
	}
	s.writeItem(w, r, tripID, itemID)
}

// deleteItineraryItem handles DELETE /trips/{id}/itinerary/{itemId}.
func (s *Server) deleteItineraryItem(w http.ResponseWriter, r *http.Request) {
	s.itinerary.DeleteItineraryItem(chi.URLParam(r, "id"), chi.URLParam(r, "itemId"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeItem(w http.ResponseWriter, r *http.Request, tripID, itemID string) {
	item, err := s.itinerary.ItineraryItem(tripID, itemID)
	if err != nil {
		s.fail(w, r, err, "itinerary item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}
